// Package fetch retrieves raw feed bytes over HTTP. It classifies failures
// into status errors (the source answered, but not with a 2xx) and transport
// errors (the source was never reached) so callers can report them apart.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent    = "ecofinds-catalogue/1.0 (+https://github.com/ecofinds/catalogue-service)"
	acceptHeader = "application/xml, text/xml, application/rss+xml, application/atom+xml;q=0.9, */*;q=0.1"
)

// StatusError is a non-2xx response from the feed source. The body is
// discarded; only status code and reason phrase are carried.
type StatusError struct {
	URL    string
	Status int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed source returned %d %s for %s", e.Status, e.Reason, e.URL)
}

// TransportError is a network-level failure reaching the feed source (DNS,
// connection refused, timeout).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach feed source %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client fetches feed documents. Redirects are followed by the underlying
// http.Client default policy.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a feed client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchFeed retrieves the raw feed body for a URL. No retries: a failed fetch
// aborts the import run and is the caller's to handle.
func (c *Client) FetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			URL:    url,
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return body, nil
}
