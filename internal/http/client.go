// Package http provides the small HTTP client used by the scraper.
//
// LearnItFirst.com rejects requests that carry a default programmatic
// User-Agent, so every request goes out with a browser-like identifier.
// There are no retries anywhere: a failed fetch surfaces immediately.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is the browser-like identifier sent with every request.
// The site blocks obviously programmatic clients.
const DefaultUserAgent = "Chromium/Linux"

// StatusError is returned by Get when the server answers with a non-200
// status. Callers branch on Code with errors.As, e.g. to detect a missing
// course page (404).
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client wraps HTTP operations with the site-specific configuration.
//
// Example usage:
//
//	client := http.NewClient("")
//	page, err := client.GetString(ctx, "http://www.learnitfirst.com/Course/160/default.aspx")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client with a 60 second timeout. An empty userAgent
// selects DefaultUserAgent.
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header. A non-200 response
// is returned as a *StatusError; transport failures come back unwrapped.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a
// string. This is a convenience wrapper around Get for fetching HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
