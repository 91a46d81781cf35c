// Package fetch wraps upstream HTTP calls in the bounded retry policy
// shared by both data sources. Each attempt is separately limited by the
// caller's http.Client timeout, so a hung upstream cannot stall the retry
// loop past its budget.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	baseDelay = 100 * time.Millisecond
	maxDelay  = 1600 * time.Millisecond
)

// HTTPError is a non-2xx upstream response.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.URL, e.Status)
}

// WithRetry runs fn up to attempts times with exponential backoff
// (100ms doubling, capped at 1.6s, no jitter). The last error is returned
// once the budget is exhausted. Every failed attempt is logged under label.
func WithRetry[T any](ctx context.Context, label string, attempts uint, fn func() (T, error)) (T, error) {
	var result T
	err := retry.Do(
		func() error {
			var err error
			result, err = fn()
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(baseDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[retry] %s: attempt %d/%d failed: %v", label, n+1, attempts, err)
		}),
	)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// ReadBody drains a 2xx response body or converts a non-2xx status into an
// HTTPError. The body is always closed.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, URL: resp.Request.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
