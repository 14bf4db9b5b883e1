package homestars

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"finderhub/internal/services"
	"finderhub/internal/textutil"
)

const (
	defaultSearchBaseURL = "https://www.google.com/search"
	defaultHTTPTimeout   = 15 * time.Second
)

// Browser strings rotated across requests so the scraper does not present a
// single fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/537.36",
}

var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d\.\d)\s*out of\s*10`),
	regexp.MustCompile(`(?i)rating["\s:]+(\d\.\d)`),
	regexp.MustCompile(`(?i)(\d\.\d)\s*/\s*10`),
}

var reviewCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s+reviews?`),
	regexp.MustCompile(`(?i)(\d+)\s+ratings?`),
	regexp.MustCompile(`(?i)based on\s+(\d+)`),
}

// Listing is what a successful lookup produces. Rating is on the platform's
// 10-point scale; ReviewCount is nil when the page shows a rating without a
// visible count.
type Listing struct {
	URL         string
	Rating      float64
	ReviewCount *int
}

// Config captures the scraper's tunables.
type Config struct {
	SearchBaseURL  string
	TimeoutSeconds int
}

// Scraper discovers and scrapes company pages.
type Scraper struct {
	cfg        Config
	httpClient *http.Client
	rng        *rand.Rand
	sleep      func(time.Duration)
}

// Option customizes the scraper.
type Option func(*Scraper)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithSleeper replaces the polite-delay sleep, letting tests run without
// real waits.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(s *Scraper) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithRandSource seeds header rotation and delay jitter deterministically.
func WithRandSource(source rand.Source) Option {
	return func(s *Scraper) {
		if source != nil {
			s.rng = rand.New(source)
		}
	}
}

// NewScraper constructs a scraper.
func NewScraper(cfg Config, opts ...Option) *Scraper {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	scraper := &Scraper{
		cfg:        Config{SearchBaseURL: strings.TrimSpace(cfg.SearchBaseURL)},
		httpClient: &http.Client{Timeout: timeout},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(scraper)
	}
	if scraper.cfg.SearchBaseURL == "" {
		scraper.cfg.SearchBaseURL = defaultSearchBaseURL
	}
	return scraper
}

// Lookup finds a business's company page and scrapes its rating. A missing
// listing or a page without a visible rating returns ok=false with no error.
func (s *Scraper) Lookup(ctx context.Context, businessName, city string) (Listing, bool, error) {
	pageURL, err := s.FindListingURL(ctx, businessName, city)
	if err != nil {
		return Listing{}, false, err
	}
	if pageURL == "" {
		return Listing{}, false, nil
	}

	// Polite delay between the search hit and the page fetch.
	s.sleep(time.Duration(2000+s.rng.Intn(2000)) * time.Millisecond)

	listing, ok, err := s.ScrapePage(ctx, pageURL)
	if err != nil {
		return Listing{URL: pageURL}, false, err
	}
	return listing, ok, nil
}

// FindListingURL searches the web for the business's company page and
// returns the first result URL, or "" when nothing matches.
func (s *Scraper) FindListingURL(ctx context.Context, businessName, city string) (string, error) {
	businessName = textutil.NormalizeName(businessName)
	query := fmt.Sprintf("%s %s homestars site:homestars.com", businessName, city)
	searchURL := s.cfg.SearchBaseURL + "?q=" + url.QueryEscape(query)

	doc, status, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "homestars", "search", businessName, err)
	}
	if status != http.StatusOK {
		return "", nil
	}

	// Redirect hrefs keep the destination percent-encoded, so unwrap before
	// matching on the company-page path.
	var found string
	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		resolved := unwrapRedirect(href)
		if resolved == "" {
			return true
		}
		if strings.Contains(resolved, "homestars.com/companies/") || strings.Contains(resolved, "homestars.com/on/") {
			found = resolved
			return false
		}
		return true
	})
	return found, nil
}

// ScrapePage pulls the rating and review count out of a company page.
func (s *Scraper) ScrapePage(ctx context.Context, pageURL string) (Listing, bool, error) {
	doc, status, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return Listing{}, false, services.Wrap(services.ErrTransient, "homestars", "scrape", pageURL, err)
	}
	if status != http.StatusOK {
		return Listing{}, false, nil
	}

	text := pageText(doc)

	listing := Listing{URL: pageURL}
	for _, pattern := range ratingPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			listing.Rating, _ = strconv.ParseFloat(match[1], 64)
			break
		}
	}
	if listing.Rating == 0 {
		return listing, false, nil
	}

	for _, pattern := range reviewCountPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			if count, err := strconv.Atoi(match[1]); err == nil {
				listing.ReviewCount = &count
			}
			break
		}
	}
	return listing, true, nil
}

// pageText flattens the document to plain text with whitespace between text
// nodes. goquery's Text() concatenates adjacent nodes with no separator,
// which fuses the numbers the patterns above match on.
func pageText(doc *goquery.Document) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	return strings.Join(parts, " ")
}

func (s *Scraper) fetchDocument(ctx context.Context, target string) (*goquery.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgents[s.rng.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-CA,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return doc, resp.StatusCode, nil
}

// unwrapRedirect extracts the destination from a search-engine redirect link
// like /url?q=https://homestars.com/...&sa=U. Direct links pass through.
func unwrapRedirect(href string) string {
	if idx := strings.Index(href, "/url?q="); idx >= 0 {
		target := href[idx+len("/url?q="):]
		if amp := strings.Index(target, "&"); amp >= 0 {
			target = target[:amp]
		}
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
		return target
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}
