// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP helper shared by the API clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseDelay is the first backoff step when a Retrier has no BaseDelay.
// Tests override this to avoid real sleeps.
var DefaultBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// Waiter blocks until another request may be sent. *rate.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Retrier sends requests, retrying on HTTP 429 and 503 with exponential
// backoff. A Retry-After header given in seconds overrides the computed delay.
type Retrier struct {
	Client *http.Client

	// Limiter, when set, is waited on before every attempt including retries.
	Limiter Waiter

	// MaxRetries defaults to 3 when zero or negative.
	MaxRetries int

	// BaseDelay doubles per attempt; zero means DefaultBaseDelay.
	BaseDelay time.Duration

	Logger *zap.Logger
}

// Do sends req and returns the first response that is not retryable. After
// exhausting retries the last retryable response is returned so the caller
// can inspect its status. If ctx ends while waiting, Do returns ctx.Err().
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	base := r.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		delay := base << attempt
		if ra, ok := retryAfter(resp.Header); ok {
			delay = ra
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Debug("upstream throttled, backing off",
			zap.String("host", req.URL.Host),
			zap.Int("status", resp.StatusCode),
			zap.Duration("delay", delay),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func retryAfter(h http.Header) (time.Duration, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
