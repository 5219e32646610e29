package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned when a request completes with a non-success
// HTTP status. Callers inspect Code to distinguish a missing show (404)
// from a missing season (302 on a no-follow request).
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client wraps HTTP operations for the station site.
//
// Client provides:
//   - A configured User-Agent header
//   - Timeout handling
//   - A no-follow variant for existence checks that rely on redirects
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch a show page
//	html, err := client.GetString(ctx, "https://watch.opb.org/show/oregon-art-beat/episodes/")
//
//	// Fetch a season page without following redirects; a 302 means
//	// the season does not exist
//	html, err = client.GetStringNoFollow(ctx, seasonURL)
type Client struct {
	httpClient *http.Client
	noFollow   *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client for station pages.
//
// The client is configured with a 60 second timeout. The no-follow
// variant shares the timeout but reports redirects to the caller
// instead of following them.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		noFollow: &http.Client{
			Timeout: 60 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: "opb-downloader",
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header. A response
// status outside the 2xx range is returned as a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, c.httpClient, url)
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

// GetStringNoFollow performs a GET request without following redirects.
//
// A redirect status (or any other non-2xx status) is returned as a
// *StatusError, which lets callers treat a 302 from a season URL as
// "season does not exist".
func (c *Client) GetStringNoFollow(ctx context.Context, url string) (string, error) {
	body, err := c.do(ctx, c.noFollow, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
// Use this for small files like episode thumbnails.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}

func (c *Client) do(ctx context.Context, hc *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}
