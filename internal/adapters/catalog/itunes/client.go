// Package itunes provides a resilient iTunes Lookup API client for the
// catalog service
package itunes

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "asolens/internal/platform/errors"
	"asolens/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://itunes.apple.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "asolens-catalog"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond

	// Apple throttles the lookup endpoint to roughly 20 calls per minute
	defaultRatePerMin = 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// Requests per minute, paced client side before a request leaves
	RatePerMin int
}

// Client is a minimal iTunes lookup client with client-side pacing
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RatePerMin <= 0 {
		o.RatePerMin = defaultRatePerMin
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(float64(o.RatePerMin)/60), 1),
		log:     *logger.Named("itunes"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// do issues one paced GET with retries on transient failures. A 404 is
// permanent and never retried
func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.opts.BaseURL + path + "?" + q.Encode()
	attempts := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "itunes new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "itunes do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("itunes transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		retryAfter := parseRetryAfter(resp.Header)
		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Int("retry_after_s", retryAfter).
			Msg("itunes http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.Newf(perr.ErrorCodeNotFound, "itunes app not found")
		case http.StatusTooManyRequests, http.StatusForbidden:
			wait := time.Duration(retryAfter) * time.Second
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "itunes rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("itunes rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "itunes transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("itunes transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnknown, "itunes unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) shouldRetry(attempt int) bool { return attempt < c.opts.MaxRetries }

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func parseRetryAfter(h http.Header) int {
	if v := h.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
