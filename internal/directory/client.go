package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"finderhub/internal/services"
	"finderhub/internal/textutil"
)

const defaultRequestTimeout = 30 * time.Second

// Config captures the connection settings for the directory backend.
type Config struct {
	BaseURL        string
	APIKey         string
	Table          string
	TimeoutSeconds int
}

// Client wraps the PostgREST endpoint for the provider table.
type Client struct {
	http  *resty.Client
	table string
}

// NewClient builds a directory client. BaseURL and APIKey are required.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "directory", "new client", "base url is required", nil)
	}
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "directory", "new client", "api key is required", nil)
	}
	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		table = "providers"
	}
	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetTimeout(timeout).
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, table: table}, nil
}

// WithHTTPClient swaps the underlying resty client, used by tests.
func (c *Client) WithHTTPClient(httpClient *resty.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

// FetchBatch returns one page of providers matching the query.
func (c *Client) FetchBatch(ctx context.Context, query BatchQuery) ([]Provider, error) {
	if query.BatchSize <= 0 {
		return nil, services.Wrap(services.ErrValidation, "directory", "fetch batch", "batch size must be positive", nil)
	}

	params := map[string]string{
		"select": query.selectList(),
		"order":  "id.asc",
		"limit":  strconv.Itoa(query.BatchSize),
		"offset": strconv.Itoa(query.offset()),
	}
	if field := strings.TrimSpace(query.MissingField); field != "" {
		params[field] = "is.null"
	}
	if category := strings.TrimSpace(query.Category); category != "" {
		params["category"] = "eq." + category
	}

	var providers []Provider
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&providers).
		// PostgREST responses are always JSON; decode them even when a proxy
		// strips or rewrites the Content-Type header.
		ForceContentType("application/json").
		Get("/" + c.table)
	if err != nil {
		return nil, wrapTransportError("fetch batch", err)
	}
	if resp.IsError() {
		return nil, services.Wrap(services.ErrExternalService, "directory", "fetch batch",
			fmt.Sprintf("http %d: %s", resp.StatusCode(), textutil.Snippet(string(resp.Body()), 200)), nil)
	}
	return providers, nil
}

// Update PATCHes enriched fields onto a single provider row. Passing no
// fields is a no-op, not an error.
func (c *Client) Update(ctx context.Context, providerID string, fields map[string]any) error {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return services.Wrap(services.ErrValidation, "directory", "update", "provider id is required", nil)
	}
	if len(fields) == 0 {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+providerID).
		SetHeader("Prefer", "return=minimal").
		SetBody(fields).
		Patch("/" + c.table)
	if err != nil {
		return wrapTransportError("update", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return services.Wrap(services.ErrExternalService, "directory", "update",
			fmt.Sprintf("http %d: %s", resp.StatusCode(), textutil.Snippet(string(resp.Body()), 200)), nil)
	}
	return nil
}

func wrapTransportError(operation string, err error) error {
	marker := services.ErrTransient
	if errors.Is(err, context.DeadlineExceeded) {
		marker = services.ErrTimeout
	}
	return services.Wrap(marker, "directory", operation, "", err)
}
