// Package feedjson is the shared HTTP client for third-party JSON feeds
// every source adapter fetches through it so retry and error mapping stay uniform
package feedjson

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultUA       = "oasis-feeds"
	defaultAttempts = 3
	defaultBackoff  = time.Second
	maxBody         = 8 << 20
)

// Options configures the Client
type Options struct {
	UserAgent string
	Timeout   time.Duration

	// Attempts is the total number of tries per request, Backoff the linear step between them
	// (attempt n waits n*Backoff)
	Attempts int
	Backoff  time.Duration
}

// Client is a small GET-only client with linear retry
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Attempts <= 0 {
		o.Attempts = defaultAttempts
	}
	if o.Backoff <= 0 {
		o.Backoff = defaultBackoff
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("feedjson"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Get fetches url and returns the raw body
// transport failures and non-2xx statuses are retried; the last failure is returned as a network error
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var last error
	for attempt := 1; attempt <= c.opts.Attempts; attempt++ {
		body, err := c.once(ctx, url, header)
		if err == nil {
			return body, nil
		}
		last = err
		if attempt == c.opts.Attempts || !perr.IsRetryable(err) {
			break
		}
		back := time.Duration(attempt) * c.opts.Backoff
		logger.C(ctx).Warn().
			Err(err).
			Str("url", redact(url)).
			Int("attempt", attempt).
			Dur("retry_in", back).
			Msg("feed fetch failed; retrying")
		if err := c.sleep(ctx, back); err != nil {
			return nil, perr.FromTransport(err, "feed fetch")
		}
	}
	return nil, last
}

func (c *Client) once(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "feed request %s", redact(url))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.FromTransport(err, "feed fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("url", redact(url)).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("feed http response")

	if err := perr.FromStatus(resp.StatusCode, redact(url)); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, perr.FromTransport(err, "feed read")
	}
	return body, nil
}

// Do fetches url and walks the array at path, handing each object element to fn
func (c *Client) Do(ctx context.Context, url string, header http.Header, fn func(item []byte) error, path ...string) error {
	body, err := c.Get(ctx, url, header)
	if err != nil {
		return err
	}
	return Each(body, fn, path...)
}
