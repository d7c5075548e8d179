// Package httpx is the shared HTTP transport for all scanner plugins.
// It bounds in-flight requests with a permit pool, retries connection
// failures with exponential backoff and paces the request rate so a
// scan cannot flood its target.
package httpx

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"bytemomo/barracuda/internal/domain"
)

// Config holds the transport settings, fixed at construction.
type Config struct {
	// MaxConcurrentRequests bounds simultaneous in-flight requests
	// across every caller sharing this client.
	MaxConcurrentRequests int
	// RequestTimeout bounds a single HTTP exchange.
	RequestTimeout time.Duration
	// RetryAttempts is the number of retries after the first attempt.
	RetryAttempts int
	// DelayBetweenRequests is the minimum pause inserted after each
	// completed request, applied while the permit is still held.
	DelayBetweenRequests time.Duration
	// RequestsPerSecond is an optional ceiling on the overall request
	// rate. Zero means no ceiling beyond the permit/delay pacing.
	RequestsPerSecond int

	UserAgent       string
	FollowRedirects bool
	VerifyTLS       bool
	Proxy           string

	// MaxResponseBytes caps how much of a response body is drained.
	MaxResponseBytes int64

	// BackoffUnit is the base of the 2^attempt retry backoff.
	// Defaults to one second; tests shrink it.
	BackoffUnit time.Duration
}

// DefaultConfig returns the stock transport settings.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentRequests: 10,
		RequestTimeout:        30 * time.Second,
		RetryAttempts:         3,
		DelayBetweenRequests:  100 * time.Millisecond,
		UserAgent:             "barracuda/" + Version + " security scanner",
		FollowRedirects:       true,
		VerifyTLS:             true,
		MaxResponseBytes:      1 << 20,
		BackoffUnit:           time.Second,
	}
}

// Version of the scanner, stamped into the default user agent and the
// scan metadata.
const Version = "0.1.0"

// Response is a fully drained HTTP response. Plugins never hold open
// bodies, so a slow consumer cannot pin a connection.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        string
	Elapsed    time.Duration
}

// RequestOptions carries per-call overrides.
type RequestOptions struct {
	Headers map[string]string
	// Params are appended to the URL query string.
	Params map[string]string
	Body   []byte
	// ContentType is set when Body is present.
	ContentType string
	// FollowRedirects overrides the client default when non-nil.
	FollowRedirects *bool
}

// Client executes HTTP operations for the scanner. Safe for concurrent
// use; the permit pool and the rate limiter are its only shared state.
type Client struct {
	cfg      Config
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
	follow   *http.Client
	noFollow *http.Client
}

// New builds a client from the given configuration. Zero values fall
// back to DefaultConfig.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.MaxConcurrentRequests <= 0 {
		cfg.MaxConcurrentRequests = def.MaxConcurrentRequests
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = def.MaxResponseBytes
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = def.BackoffUnit
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        cfg.MaxConcurrentRequests * 2,
		MaxIdleConnsPerHost: cfg.MaxConcurrentRequests,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS,
		},
	}
	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			log.WithField("proxy", cfg.Proxy).Warn("Ignoring malformed proxy URL")
		}
	}

	c := &Client{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrentRequests)),
		follow: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		noFollow: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)
	}
	return c
}

// Config returns a copy of the settings the client was built with.
func (c *Client) Config() Config { return c.cfg }

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, opts)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, opts)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPut, url, opts)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, url, opts)
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodHead, url, opts)
}

// Options performs an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, url, opts)
}

// Do executes one HTTP operation. It blocks for a concurrency permit,
// attempts the request up to RetryAttempts+1 times on connection-level
// failures with 2^attempt backoff, and holds the permit through the
// configured inter-request delay so the effective rate stays bounded
// by MaxConcurrentRequests / DelayBetweenRequests.
//
// HTTP error statuses are ordinary responses, never retried. Exhausted
// retries surface as an error wrapping domain.ErrTransport.
func (c *Client) Do(ctx context.Context, method, rawURL string, opts *RequestOptions) (*Response, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer func() {
		c.pace(ctx)
		c.sem.Release(1)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryAttempts; attempt++ {
		req, err := c.buildRequest(ctx, method, rawURL, opts)
		if err != nil {
			// Malformed input, not a transient failure.
			return nil, err
		}

		start := time.Now()
		resp, err := c.pick(opts).Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < c.cfg.RetryAttempts {
				backoff := c.cfg.BackoffUnit << attempt
				log.WithFields(log.Fields{
					"method":  method,
					"url":     rawURL,
					"attempt": attempt + 1,
					"backoff": backoff,
				}).Debug("Request failed, retrying")
				if err := sleep(ctx, backoff); err != nil {
					return nil, err
				}
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
		resp.Body.Close()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < c.cfg.RetryAttempts {
				if err := sleep(ctx, c.cfg.BackoffUnit<<attempt); err != nil {
					return nil, err
				}
			}
			continue
		}

		elapsed := time.Since(start)
		log.WithFields(log.Fields{
			"method":  method,
			"url":     rawURL,
			"status":  resp.StatusCode,
			"elapsed": elapsed,
		}).Debug("Request completed")

		return &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       body,
			URL:        resp.Request.URL.String(),
			Elapsed:    elapsed,
		}, nil
	}

	log.WithFields(log.Fields{
		"method":   method,
		"url":      rawURL,
		"attempts": c.cfg.RetryAttempts + 1,
		"error":    lastErr,
	}).Error("Request failed after all attempts")
	return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, rawURL, lastErr)
}

func (c *Client) buildRequest(ctx context.Context, method, rawURL string, opts *RequestOptions) (*http.Request, error) {
	target := rawURL
	if opts != nil && len(opts.Params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse request URL %q: %w", rawURL, err)
		}
		q := u.Query()
		for k, v := range opts.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	var body io.Reader
	if opts != nil && len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request for %q: %w", method, rawURL, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if opts != nil {
		if opts.ContentType != "" {
			req.Header.Set("Content-Type", opts.ContentType)
		}
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

// pick selects the redirect policy for this call.
func (c *Client) pick(opts *RequestOptions) *http.Client {
	follow := c.cfg.FollowRedirects
	if opts != nil && opts.FollowRedirects != nil {
		follow = *opts.FollowRedirects
	}
	if follow {
		return c.follow
	}
	return c.noFollow
}

// pace applies the inter-request delay while the permit is still held.
func (c *Client) pace(ctx context.Context) {
	if c.cfg.DelayBetweenRequests <= 0 {
		return
	}
	_ = sleep(ctx, c.cfg.DelayBetweenRequests)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
