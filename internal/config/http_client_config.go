package config

import "time"

// HTTPClientConfig defines transport, timeout and retry settings for outbound requests
type HTTPClientConfig struct {
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" validate:"min=1"`
	RetryDelaySeconds  int    `json:"retry_delay_seconds,omitempty" yaml:"retry_delay_seconds,omitempty" toml:"retry_delay_seconds,omitempty" validate:"min=0"`
	MaxAttempts        int    `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" toml:"max_attempts,omitempty" validate:"min=1,max=10"`
	FollowRedirects    bool   `json:"follow_redirects" yaml:"follow_redirects" toml:"follow_redirects"`
	MaxRedirects       int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" toml:"max_redirects,omitempty" validate:"min=0"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent,omitempty"`
	EnableHTTP2        bool   `json:"enable_http2" yaml:"enable_http2" toml:"enable_http2"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify" toml:"insecure_skip_verify"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TimeoutSeconds:     DefaultHTTPTimeoutSeconds,
		RetryDelaySeconds:  DefaultHTTPRetryDelaySeconds,
		MaxAttempts:        DefaultHTTPMaxAttempts,
		FollowRedirects:    true,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		UserAgent:          DefaultHTTPUserAgent,
		EnableHTTP2:        true,
		InsecureSkipVerify: false,
	}
}

// Timeout returns the per-request timeout
func (c HTTPClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the fixed delay between attempts
func (c HTTPClientConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}
