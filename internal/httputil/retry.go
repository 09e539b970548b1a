// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the search providers.
package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryBaseDelay controls the first backoff interval after a throttled or
// failed request. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// errRetryable marks a response whose status is worth another attempt.
var errRetryable = errors.New("retryable status")

// Retryable reports whether an HTTP status signals a transient provider
// condition: throttling (429) or temporary unavailability (503).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries transport errors and
// retryable statuses with exponential backoff. The delay starts at
// RetryBaseDelay and doubles each attempt.
//
// When maxRetries is 0 the default (3) is used. Bodies of discarded
// responses are drained and closed. If the context is cancelled during a
// backoff wait the function returns ctx.Err(). After exhausting retries
// the last throttled response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = RetryBaseDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = RetryBaseDelay << maxRetries
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxRetries)), ctx)

	var last *http.Response
	op := func() error {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		discard(last)
		last = resp
		if Retryable(resp.StatusCode) {
			return errRetryable
		}
		return nil
	}

	err := backoff.Retry(op, policy)
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errRetryable) && ctx.Err() == nil:
		return last, nil
	default:
		discard(last)
		return nil, err
	}
}

func discard(resp *http.Response) {
	if resp == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
