// Package soda queries Socrata Open Data (SODA) aggregation endpoints such
// as the NYC street tree census.
package soda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTreesURL is the 2015 NYC street tree census resource.
	DefaultTreesURL = "https://data.cityofnewyork.us/resource/nwxe-4ae8.json"

	// DefaultPageSize is the API's default row limit per request.
	DefaultPageSize = 1000

	// DefaultPages covers the ~4,600 species/borough/health/steward groups.
	DefaultPages = 5

	// DefaultParallel fetches pages one at a time.
	DefaultParallel = 1

	userAgent = "nycviz"
)

// Row is one decoded result row. SoQL returns aggregates as strings.
type Row map[string]any

// Query is a SoQL aggregation query.
type Query struct {
	Select []string
	Group  []string
	Limit  int
	Offset int
}

// Encode renders the query string. Spaces are encoded as %20, not '+'.
func (q Query) Encode() string {
	var parts []string
	if len(q.Select) > 0 {
		parts = append(parts, "$select="+escape(strings.Join(q.Select, ",")))
	}
	if len(q.Group) > 0 {
		parts = append(parts, "$group="+escape(strings.Join(q.Group, ",")))
	}
	if q.Limit > 0 {
		parts = append(parts, "$limit="+strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		parts = append(parts, "$offset="+strconv.Itoa(q.Offset))
	}
	return strings.Join(parts, "&")
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Client fetches rows from one SODA resource.
type Client struct {
	httpClient  *http.Client
	resourceURL string
	appToken    string
	parallel    int
}

// NewClient creates a client for the given resource URL. The app token is
// optional; without it requests are subject to shared rate limits.
func NewClient(resourceURL, appToken string) (*Client, error) {
	if resourceURL == "" {
		return nil, fmt.Errorf("resource URL is required")
	}
	if _, err := url.Parse(resourceURL); err != nil {
		return nil, fmt.Errorf("parsing resource URL: %w", err)
	}
	return &Client{
		httpClient:  &http.Client{},
		resourceURL: resourceURL,
		appToken:    appToken,
		parallel:    DefaultParallel,
	}, nil
}

// SetParallel sets how many pages FetchPages requests at once. Values
// below 1 are treated as 1.
func (c *Client) SetParallel(n int) {
	if n < 1 {
		n = 1
	}
	c.parallel = n
}

// FetchPage runs a single query.
func (c *Client) FetchPage(ctx context.Context, q Query) (rows []Row, err error) {
	u := c.resourceURL
	if enc := q.Encode(); enc != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return rows, nil
}

// FetchPages fetches a fixed number of pages at offsets 0, pageSize,
// 2*pageSize, ... and concatenates them in offset order. At most the
// client's parallel limit is in flight; by default pages go out one at a
// time. The first failed page stops the fetch and fails it; there is no
// retry.
func (c *Client) FetchPages(ctx context.Context, q Query, pages, pageSize int) ([]Row, error) {
	if pages <= 0 {
		return nil, fmt.Errorf("pages must be positive, got %d", pages)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	results := make([][]Row, pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i := 0; i < pages; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		page := q
		page.Limit = pageSize
		page.Offset = i * pageSize
		g.Go(func() error {
			rows, err := c.FetchPage(gctx, page)
			if err != nil {
				return fmt.Errorf("fetching page at offset %d: %w", page.Offset, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching pages: %w", err)
	}

	var all []Row
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, nil
}
