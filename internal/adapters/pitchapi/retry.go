package pitchapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 500 * time.Millisecond
)

// retryPolicy retries transport errors, 429 and 5xx responses with
// exponential backoff. A Retry-After header replaces the computed delay.
type retryPolicy struct {
	attempts int
	backoff  time.Duration
}

func (p retryPolicy) normalized() retryPolicy {
	if p.attempts <= 0 {
		p.attempts = DefaultMaxAttempts
	}
	if p.backoff <= 0 {
		p.backoff = DefaultBackoff
	}
	return p
}

// do sends req until it gets a response worth returning. req must have a
// GetBody when it carries a body, which http.NewRequest sets for in-memory
// readers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	policy := c.retry.normalized()
	ctx := req.Context()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pitchapi: request canceled: %w", err)
		}
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("pitchapi: reset request body: %w", err)
			}
			req.Body = body
		}

		// #nosec G107 -- URL built from the configured analyzer base URL
		resp, err := c.httpClient.Do(req)
		wait, retry := retryable(resp, err)
		if !retry {
			return resp, err
		}

		if err != nil {
			log.Printf("WARN pitchapi: attempt %d/%d failed: %v", attempt, policy.attempts, err)
		} else {
			log.Printf("WARN pitchapi: attempt %d/%d got status %d", attempt, policy.attempts, resp.StatusCode)
			_ = resp.Body.Close()
		}

		if attempt == policy.attempts {
			if err != nil {
				return nil, fmt.Errorf("pitchapi: giving up after %d attempts: %w", attempt, err)
			}
			return nil, fmt.Errorf("pitchapi: giving up after %d attempts: status %d", attempt, resp.StatusCode)
		}

		if wait <= 0 {
			wait = policy.backoff << (attempt - 1)
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func retryable(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return retryAfter(resp.Header.Get("Retry-After")), true
	}
	return 0, false
}

// retryAfter parses either delta-seconds or an HTTP date.
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(v); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("pitchapi: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
