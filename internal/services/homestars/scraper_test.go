package homestars

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestScraper(t *testing.T, handler http.Handler) (*httptest.Server, *Scraper) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	scraper := NewScraper(Config{SearchBaseURL: server.URL + "/search"},
		WithSleeper(func(time.Duration) {}),
		WithRandSource(rand.NewSource(1)),
	)
	return server, scraper
}

func TestFindListingURLUnwrapsRedirect(t *testing.T) {
	_, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "ACME Electric Toronto homestars site:homestars.com" {
			t.Fatalf("query = %q", q)
		}
		io.WriteString(w, `<html><body>
			<a href="/url?q=https%3A%2F%2Fhomestars.com%2Fcompanies%2Facme-electric&sa=U">ACME Electric</a>
		</body></html>`)
	}))

	got, err := scraper.FindListingURL(context.Background(), "ACME Electric", "Toronto")
	if err != nil {
		t.Fatalf("FindListingURL: %v", err)
	}
	if want := "https://homestars.com/companies/acme-electric"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestFindListingURLNormalizesName(t *testing.T) {
	_, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "Acme Electric Toronto homestars site:homestars.com" {
			t.Fatalf("query = %q", q)
		}
		fmt.Fprint(w, `<html><body></body></html>`)
	}))

	if _, err := scraper.FindListingURL(context.Background(), "ACME   ELECTRIC", "Toronto"); err != nil {
		t.Fatalf("FindListingURL: %v", err)
	}
}

func TestFindListingURLAcceptsDirectLinks(t *testing.T) {
	_, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://example.com/other">other</a>
			<a href="https://homestars.com/on/toronto/acme-electric">ACME</a>
		</body></html>`)
	}))

	got, err := scraper.FindListingURL(context.Background(), "ACME Electric", "Toronto")
	if err != nil {
		t.Fatalf("FindListingURL: %v", err)
	}
	if want := "https://homestars.com/on/toronto/acme-electric"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestFindListingURLNoMatch(t *testing.T) {
	_, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="https://example.com">nothing relevant</a></body></html>`)
	}))

	got, err := scraper.FindListingURL(context.Background(), "Ghost Wiring", "Barrie")
	if err != nil {
		t.Fatalf("FindListingURL: %v", err)
	}
	if got != "" {
		t.Fatalf("url = %q, want empty", got)
	}
}

func TestScrapePageExtractsRatingAndReviews(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		rating  float64
		reviews int
	}{
		{
			name:    "out of ten",
			body:    `<html><body><div>9.4 out of 10</div><div>128 reviews</div></body></html>`,
			rating:  9.4,
			reviews: 128,
		},
		{
			name:    "slash ten",
			body:    `<html><body><span>8.7 / 10</span><span>based on 42 homeowners</span></body></html>`,
			rating:  8.7,
			reviews: 42,
		},
		{
			name:    "rating label",
			body:    `<html><body><p>Rating: 7.9</p><p>15 ratings</p></body></html>`,
			rating:  7.9,
			reviews: 15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))

			listing, ok, err := scraper.ScrapePage(context.Background(), server.URL+"/companies/acme")
			if err != nil {
				t.Fatalf("ScrapePage: %v", err)
			}
			if !ok {
				t.Fatal("expected a rating")
			}
			if listing.Rating != tt.rating {
				t.Fatalf("rating = %v, want %v", listing.Rating, tt.rating)
			}
			if listing.ReviewCount == nil || *listing.ReviewCount != tt.reviews {
				t.Fatalf("review count = %v, want %d", listing.ReviewCount, tt.reviews)
			}
		})
	}
}

func TestScrapePageWithoutRating(t *testing.T) {
	server, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Write the first review for this company</p></body></html>`)
	}))

	listing, ok, err := scraper.ScrapePage(context.Background(), server.URL+"/companies/acme")
	if err != nil {
		t.Fatalf("ScrapePage: %v", err)
	}
	if ok {
		t.Fatalf("expected no rating, got %+v", listing)
	}
}

func TestLookupEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><a href="%s/companies/acme-electric?ref=homestars.com/companies/acme">ACME</a></body></html>`, server.URL)
	})
	mux.HandleFunc("/companies/acme-electric", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>9.1 out of 10 from 56 reviews</body></html>`)
	})
	server, scraper := newTestScraper(t, mux)

	listing, ok, err := scraper.Lookup(context.Background(), "ACME Electric", "Toronto")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a listing")
	}
	if listing.Rating != 9.1 {
		t.Fatalf("rating = %v", listing.Rating)
	}
	if listing.ReviewCount == nil || *listing.ReviewCount != 56 {
		t.Fatalf("review count = %v", listing.ReviewCount)
	}
	if listing.URL == "" {
		t.Fatal("listing URL is empty")
	}
}

func TestLookupMissingListing(t *testing.T) {
	_, scraper := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>no results</body></html>`)
	}))

	_, ok, err := scraper.Lookup(context.Background(), "Ghost Wiring", "Barrie")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected no listing")
	}
}
