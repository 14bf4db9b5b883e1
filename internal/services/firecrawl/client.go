package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finderhub/internal/services"
	"finderhub/internal/textutil"
)

const (
	defaultBaseURL     = "https://api.firecrawl.dev/v2"
	defaultHTTPTimeout = 60 * time.Second

	// CreditsPerScrape is what one successful extraction is billed against
	// the spend ledger.
	CreditsPerScrape int64 = 1
)

// Config captures the connection settings for the scraping API.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client wraps the /scrape endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a scraping client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

type scrapeRequest struct {
	URL     string         `json:"url"`
	Formats []scrapeFormat `json:"formats"`
}

type scrapeFormat struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		JSON    json.RawMessage `json:"json"`
		Extract json.RawMessage `json:"extract"`
	} `json:"data"`
}

// scrapeJSON fetches a single URL with AI extraction, decoding the extracted
// payload into target. It returns false when the page yielded no extractable
// data; transport and authentication failures return an error.
func (c *Client) scrapeJSON(ctx context.Context, pageURL, prompt string, target any) (bool, error) {
	if c.cfg.APIKey == "" {
		return false, services.Wrap(services.ErrConfiguration, "firecrawl", "scrape", "api key is required", nil)
	}

	encoded, err := json.Marshal(scrapeRequest{
		URL:     pageURL,
		Formats: []scrapeFormat{{Type: "json", Prompt: prompt}},
	})
	if err != nil {
		return false, fmt.Errorf("firecrawl scrape: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/scrape", bytes.NewReader(encoded))
	if err != nil {
		return false, fmt.Errorf("firecrawl scrape: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, services.Wrap(services.ErrTransient, "firecrawl", "scrape", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, services.Wrap(services.ErrTransient, "firecrawl", "scrape", "read body", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return false, services.Wrap(services.ErrConfiguration, "firecrawl", "scrape",
			fmt.Sprintf("http %d: %s", resp.StatusCode, textutil.Snippet(string(body), 160)), nil)
	}
	if resp.StatusCode != http.StatusOK {
		// Target pages that do not exist come back as scrape failures; treat
		// them as a miss rather than an error so the batch keeps moving.
		return false, nil
	}

	var decoded scrapeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return false, fmt.Errorf("firecrawl scrape: decode response: %w", err)
	}
	if !decoded.Success {
		return false, nil
	}

	payload := decoded.Data.JSON
	if len(payload) == 0 || string(payload) == "null" {
		payload = decoded.Data.Extract
	}
	if len(payload) == 0 || string(payload) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("firecrawl scrape: decode extraction: %w", err)
	}
	return true, nil
}
