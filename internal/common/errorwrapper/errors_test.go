package errorwrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapError(base, "loading history")
	assert.EqualError(t, wrapped, "loading history: boom")
	assert.ErrorIs(t, wrapped, base)

	assert.NoError(t, WrapError(nil, "ignored"))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("operation timed out")

	wrapped := WrapErrorf(base, "GET %s", "https://example.com")
	assert.EqualError(t, wrapped, "GET https://example.com: operation timed out")
	assert.ErrorIs(t, wrapped, base)
	assert.NoError(t, WrapErrorf(nil, "GET %s", "ignored"))
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigurationError
		want string
	}{
		{
			name: "section and field",
			err:  NewConfigurationError("notification_config", "discord_webhook_url", "is required"),
			want: "configuration error in section 'notification_config', field 'discord_webhook_url': is required",
		},
		{
			name: "section only",
			err:  NewConfigurationError("titles", "", "no titles configured"),
			want: "configuration error in section 'titles': no titles configured",
		},
		{
			name: "reason only",
			err:  NewConfigurationError("", "", "unreadable"),
			want: "configuration error: unreadable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	refused := errors.New("connection refused")
	err := NewNetworkError("https://example.com", "dial failed", refused)

	assert.ErrorIs(t, err, refused)
	assert.Contains(t, err.Error(), "dial failed")
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPErrorWithURL(503, "unavailable", "https://example.com")
	assert.Equal(t, "HTTP 503 error for URL 'https://example.com': unavailable", err.Error())

	var target *HTTPError
	assert.True(t, errors.As(WrapError(err, "send"), &target))
	assert.Equal(t, 503, target.StatusCode)
}
