package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-OK status code: %d", e.Code)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
	UserAgent       string
	Logger          *zap.Logger
}

// Client is a thin wrapper around http.Client for JSON APIs.
type Client struct {
	httpClient      *http.Client
	userAgent       string
	retryMaxElapsed time.Duration
	logger          *zap.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		httpClient:      &http.Client{Timeout: opts.Timeout},
		userAgent:       opts.UserAgent,
		retryMaxElapsed: opts.RetryMaxElapsed,
		logger:          opts.Logger,
	}
}

// GetJSON sends a GET request and decodes the JSON response body into out.
// Transport errors, 5xx and 429 responses are retried with exponential
// backoff until RetryMaxElapsed has passed or ctx is done. A zero
// RetryMaxElapsed disables retries.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	attempt := 0
	op := func() error {
		attempt++
		err := c.getOnce(ctx, url, out)
		if err == nil {
			return nil
		}
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return err
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return backoff.Permanent(err)
		}
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return backoff.Permanent(err)
		}
		c.logger.Warn("request failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	if c.retryMaxElapsed <= 0 {
		return unwrapPermanent(op())
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = c.retryMaxElapsed
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

// DecodeError wraps a failure to parse a response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (c *Client) getOnce(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: url}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &DecodeError{Err: err}
		}
	}
	return nil
}

func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}
