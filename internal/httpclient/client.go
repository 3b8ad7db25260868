// Package httpclient provides the retrying HTTP client used to reach the
// external catalogs and the validation tools
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultTimeout is the default timeout for a single HTTP attempt
	DefaultTimeout = 120 * time.Second

	// DefaultRetryMax is the default number of retries after the first attempt
	DefaultRetryMax = 5

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "atlas-sync/1.0"
)

// Client is an interface for HTTP operations
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/clevercanary/atlas-sync/internal/httpclient Client
type Client interface {
	// Get performs an HTTP GET request and returns the response body.
	// A non-2xx status is returned as an *HTTPError.
	Get(ctx context.Context, url string) ([]byte, error)

	// PostJSON posts payload encoded as JSON and returns the response body.
	// A non-2xx status is returned as an *HTTPError carrying the body.
	PostJSON(ctx context.Context, url string, payload any) ([]byte, error)
}

// Option configures a DefaultClient
type Option func(*DefaultClient)

// WithTimeout sets the timeout of each attempt
func WithTimeout(timeout time.Duration) Option {
	return func(c *DefaultClient) {
		if timeout > 0 {
			c.retryClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryMax sets how many times a failed request is retried
func WithRetryMax(retryMax int) Option {
	return func(c *DefaultClient) {
		c.retryClient.RetryMax = retryMax
	}
}

// WithRetryWait sets the bounds of the exponential wait between retries
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *DefaultClient) {
		c.retryClient.RetryWaitMin = minWait
		c.retryClient.RetryWaitMax = maxWait
	}
}

// WithLogger sets the logger used to report retries
func WithLogger(logger *slog.Logger) Option {
	return func(c *DefaultClient) {
		c.retryClient.Logger = logger
	}
}

// DefaultClient retries connection errors and 5xx/429 responses with
// exponential backoff
type DefaultClient struct {
	retryClient *retryablehttp.Client
}

// NewDefaultClient creates a new retrying HTTP client
func NewDefaultClient(opts ...Option) *DefaultClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = DefaultTimeout
	retryClient.RetryMax = DefaultRetryMax
	retryClient.Logger = slog.Default()
	retryClient.ErrorHandler = lastResponseErrorHandler

	c := &DefaultClient{retryClient: retryClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request
func (c *DefaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, url)
}

// PostJSON performs an HTTP POST request with a JSON body
func (c *DefaultClient) PostJSON(ctx context.Context, url string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, url)
}

// lastResponseErrorHandler hands back the last response once retries are
// exhausted so its status and body can be reported
func lastResponseErrorHandler(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

func (c *DefaultClient) do(req *retryablehttp.Request, url string) ([]byte, error) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.retryClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.ContentLength > MaxResponseSize {
		return nil, fmt.Errorf("response size %d bytes exceeds maximum allowed size of %d bytes",
			resp.ContentLength, MaxResponseSize)
	}

	// +1 to detect if the limit was exceeded
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size of %d bytes", MaxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url, Message: resp.Status, Body: body}
	}

	return body, nil
}
