// Package swapi fetches pages from the Star Wars API catalog source.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Resource names accepted by FirstPage.
const (
	ResourcePlanets = "planets"
	ResourcePeople  = "people"
)

// maxPageBytes bounds a single page body.
const maxPageBytes = 4 << 20

// Page is one page of a paginated listing. Next is nil on the last page.
type Page struct {
	Count   int              `json:"count"`
	Next    *string          `json:"next"`
	Results []map[string]any `json:"results"`
}

// Client fetches listing pages over HTTP.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient returns a Client rooted at baseURL with a fixed per-request timeout.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FirstPage returns the address of the first listing page for resource.
func (c *Client) FirstPage(resource string) string {
	return c.baseURL + "/" + resource + "/"
}

// FetchPage downloads and parses one listing page.
func (c *Client) FetchPage(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	return DecodePage(io.LimitReader(resp.Body, maxPageBytes))
}

// DecodePage parses a listing page. Numbers are kept as json.Number so they
// can be rendered exactly as the source sent them.
func DecodePage(r io.Reader) (*Page, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var page Page
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("decode page: missing results array")
	}
	if page.Next != nil && *page.Next == "" {
		page.Next = nil
	}
	return &page, nil
}

// Text renders a source field as stored text: missing or null becomes "",
// numbers keep their source spelling and strings pass through.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
