// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for catalog requests.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay is the first backoff after a 429 response. Each further
// attempt doubles it. Tests shrink it.
var RetryBaseDelay = 10 * time.Second

// maxRetryAfter caps a server-supplied Retry-After.
const maxRetryAfter = 5 * time.Minute

const defaultMaxRetries = 5

// now is replaced in tests that exercise HTTP-date Retry-After values.
var now = time.Now

// DoWithRetry sends req and retries only on HTTP 429 (Too Many Requests).
// Transport errors and every other status go back to the caller after the
// first attempt, so catalog outages still fail fast.
//
// A Retry-After header (seconds or HTTP-date) wins over the computed
// backoff when it is longer. maxRetries <= 0 means 5. Cancelling ctx during
// a wait returns ctx.Err(). When retries run out the last 429 response is
// returned for the caller to classify.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log zerolog.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.Warn().
			Str("url", req.URL.Redacted()).
			Dur("wait", wait).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("catalog rate limited")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff returns RetryBaseDelay * 2^attempt, or the Retry-After hint when
// that is longer.
func backoff(attempt int, retryAfterHeader string) time.Duration {
	d := RetryBaseDelay << attempt
	if ra := retryAfter(retryAfterHeader); ra > d {
		d = ra
	}
	return d
}

// retryAfter parses a Retry-After value. Unparseable or past values yield
// zero; large values are capped at maxRetryAfter.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}

	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = t.Sub(now())
	}

	switch {
	case d <= 0:
		return 0
	case d > maxRetryAfter:
		return maxRetryAfter
	default:
		return d
	}
}
