package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher downloads pages over HTTP
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher whose requests time out after timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)

	return &Fetcher{client: client}
}

// Get returns the body of a successful GET. Any non-2xx status is an error.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

// StatusError reports an unexpected HTTP status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}
