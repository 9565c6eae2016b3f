package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// RetryHandler runs a request in a bounded loop with a fixed delay between attempts
type RetryHandler struct {
	maxAttempts int
	delay       time.Duration
	logger      zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxAttempts int           `json:"max_attempts"`
	Delay       time.Duration `json:"delay"`
}

// NewRetryHandler creates a new retry handler. MaxAttempts below 1 is treated as 1.
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryHandler{
		maxAttempts: maxAttempts,
		delay:       config.Delay,
		logger:      logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// MaxAttempts returns the total number of attempts, including the first
func (rh *RetryHandler) MaxAttempts() int {
	return rh.maxAttempts
}

// WaitForRetry waits the fixed delay or until ctx is done
func (rh *RetryHandler) WaitForRetry(ctx context.Context) error {
	if rh.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(rh.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DoWithRetry executes doFunc until it succeeds or the attempts are exhausted.
// Any error from doFunc counts as a failed attempt. Requests must not carry a
// body, since the same request is replayed.
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= rh.maxAttempts; attempt++ {
		resp, err := doFunc(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, errorwrapper.WrapError(ctx.Err(), "request aborted")
		}

		if attempt == rh.maxAttempts {
			break
		}

		rh.logger.Debug().
			Str("url", req.URL).
			Int("attempt", attempt).
			Int("max_attempts", rh.maxAttempts).
			Dur("delay", rh.delay).
			Err(err).
			Msg("Request failed, retrying after delay")

		if err := rh.WaitForRetry(ctx); err != nil {
			return nil, errorwrapper.WrapError(err, "request aborted while waiting to retry")
		}
	}

	rh.logger.Debug().
		Str("url", req.URL).
		Int("attempt", rh.maxAttempts).
		Err(lastErr).
		Msg("Request failed, no attempts left")

	return nil, errorwrapper.WrapError(lastErr, fmt.Sprintf("all %d attempts failed", rh.maxAttempts))
}
