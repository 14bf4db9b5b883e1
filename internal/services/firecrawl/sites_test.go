package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// scrapeRecorder serves canned extractions keyed by URL substring and keeps
// the order pages were requested in.
type scrapeRecorder struct {
	t       *testing.T
	replies map[string]any
	urls    []string
}

func (s *scrapeRecorder) handler(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Fatalf("decode request: %v", err)
	}
	s.urls = append(s.urls, req.URL)
	for fragment, reply := range s.replies {
		if strings.Contains(req.URL, fragment) {
			jsonReply(s.t, w, reply)
			return
		}
	}
	http.Error(w, `{"success":false}`, http.StatusNotFound)
}

func newScrapeServer(t *testing.T, replies map[string]any) (*scrapeRecorder, *Client) {
	t.Helper()
	recorder := &scrapeRecorder{t: t, replies: replies}
	server := httptest.NewServer(http.HandlerFunc(recorder.handler))
	t.Cleanup(server.Close)
	return recorder, NewClient(Config{APIKey: "fc-key", BaseURL: server.URL})
}

func TestScrapeYelpPrefersCanadianDomain(t *testing.T) {
	recorder, client := newScrapeServer(t, map[string]any{
		"yelp.ca": map[string]any{"rating": 4.5, "review_count": 37},
	})

	rating, result, err := client.ScrapeYelp(context.Background(), "ACME Electric Ltd.", "Toronto")
	if err != nil {
		t.Fatalf("ScrapeYelp: %v", err)
	}
	if !result.Found || result.Credits != 1 {
		t.Fatalf("result = %+v", result)
	}
	if rating.Rating != 4.5 || rating.ReviewCount != 37 {
		t.Fatalf("rating = %+v", rating)
	}
	if len(recorder.urls) != 1 {
		t.Fatalf("urls = %v", recorder.urls)
	}
	if want := "https://www.yelp.ca/biz/acme-electric-ltd-toronto"; recorder.urls[0] != want {
		t.Fatalf("url = %q, want %q", recorder.urls[0], want)
	}
}

func TestScrapeYelpFallsBackToDotCom(t *testing.T) {
	recorder, client := newScrapeServer(t, map[string]any{
		"yelp.com": map[string]any{"rating": 3.5, "review_count": 9},
	})

	rating, result, err := client.ScrapeYelp(context.Background(), "Bright Spark", "Ottawa")
	if err != nil {
		t.Fatalf("ScrapeYelp: %v", err)
	}
	if !result.Found || rating.Rating != 3.5 {
		t.Fatalf("result=%+v rating=%+v", result, rating)
	}
	if len(recorder.urls) != 2 {
		t.Fatalf("urls = %v", recorder.urls)
	}
	if !strings.Contains(recorder.urls[0], "yelp.ca") || !strings.Contains(recorder.urls[1], "yelp.com") {
		t.Fatalf("urls = %v", recorder.urls)
	}
}

func TestScrapeYelpNormalizesBusinessName(t *testing.T) {
	recorder, client := newScrapeServer(t, map[string]any{
		"yelp.ca": map[string]any{"rating": 4.0, "review_count": 12},
	})

	_, result, err := client.ScrapeYelp(context.Background(), "ACME   ELECTRIC   LTD.", "Toronto")
	if err != nil {
		t.Fatalf("ScrapeYelp: %v", err)
	}
	if !result.Found {
		t.Fatalf("result = %+v", result)
	}
	if want := "https://www.yelp.ca/biz/acme-electric-ltd-toronto"; recorder.urls[0] != want {
		t.Fatalf("url = %q, want %q", recorder.urls[0], want)
	}
}

func TestScrapeYelpMissCostsNothing(t *testing.T) {
	_, client := newScrapeServer(t, nil)

	_, result, err := client.ScrapeYelp(context.Background(), "Nowhere Electric", "Ottawa")
	if err != nil {
		t.Fatalf("ScrapeYelp: %v", err)
	}
	if result.Found || result.Credits != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestScrapeHomeStarsUsesCompanySlug(t *testing.T) {
	recorder, client := newScrapeServer(t, map[string]any{
		"homestars.com": map[string]any{"rating": 9.2, "review_count": 104},
	})

	rating, result, err := client.ScrapeHomeStars(context.Background(), "Best Choice Electrical")
	if err != nil {
		t.Fatalf("ScrapeHomeStars: %v", err)
	}
	if !result.Found || rating.Rating != 9.2 || rating.ReviewCount != 104 {
		t.Fatalf("result=%+v rating=%+v", result, rating)
	}
	if want := "https://homestars.com/companies/best-choice-electrical"; recorder.urls[0] != want {
		t.Fatalf("url = %q, want %q", recorder.urls[0], want)
	}
}

func TestScrapeBBBTriesRegionsUntilHit(t *testing.T) {
	recorder, client := newScrapeServer(t, map[string]any{
		"eastern-ontario": map[string]any{"rating": "A+"},
	})

	grade, result, err := client.ScrapeBBB(context.Background(), "ACME Electric", "Kingston", "ON")
	if err != nil {
		t.Fatalf("ScrapeBBB: %v", err)
	}
	if !result.Found || grade.Rating != "A+" {
		t.Fatalf("result=%+v grade=%+v", result, grade)
	}
	if len(recorder.urls) != 2 {
		t.Fatalf("urls = %v", recorder.urls)
	}
	if !strings.Contains(recorder.urls[0], "/ca/on/central-western-ontario/kingston/acme-electric") {
		t.Fatalf("first url = %q", recorder.urls[0])
	}
}

func TestScrapeBBBMissAfterAllRegions(t *testing.T) {
	recorder, client := newScrapeServer(t, nil)

	_, result, err := client.ScrapeBBB(context.Background(), "Ghost Wiring", "Barrie", "")
	if err != nil {
		t.Fatalf("ScrapeBBB: %v", err)
	}
	if result.Found || result.Credits != 0 {
		t.Fatalf("result = %+v", result)
	}
	if len(recorder.urls) != 3 {
		t.Fatalf("urls = %v", recorder.urls)
	}
}
