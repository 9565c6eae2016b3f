package httpclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryHandler_StopsAtMaxAttempts(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{MaxAttempts: 2, Delay: time.Millisecond}, zerolog.Nop())
	attempts := 0
	failure := errors.New("boom")

	resp, err := rh.DoWithRetry(context.Background(), func(*HTTPRequest) (*HTTPResponse, error) {
		attempts++
		return nil, failure
	}, &HTTPRequest{URL: "http://example.invalid"})

	assert.Nil(t, resp)
	require.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Equal(t, 2, attempts)
}

func TestRetryHandler_SucceedsFirstTime(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{MaxAttempts: 2, Delay: time.Hour}, zerolog.Nop())
	attempts := 0

	resp, err := rh.DoWithRetry(context.Background(), func(*HTTPRequest) (*HTTPResponse, error) {
		attempts++
		return &HTTPResponse{StatusCode: 200}, nil
	}, &HTTPRequest{})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, attempts)
}

func TestRetryHandler_ClampsAttempts(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{MaxAttempts: 0}, zerolog.Nop())
	assert.Equal(t, 1, rh.MaxAttempts())
}

func TestRetryHandler_WaitForRetryHonoursContext(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{MaxAttempts: 2, Delay: time.Hour}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rh.WaitForRetry(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
