package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

const maxErrorBodySize = 1024

// HTTPClient wraps net/http.Client with the fetch/send policies used by the pipeline:
// GET is retried by a RetryHandler, POST is a single attempt.
type HTTPClient struct {
	client       *http.Client
	config       HTTPClientConfig
	logger       zerolog.Logger
	retryHandler *RetryHandler
}

// NewHTTPClient creates a new HTTP client with the given configuration using net/http
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	logger = logger.With().Str("component", "HTTPClient").Logger()

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: config.TLSHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_attempts", config.MaxAttempts).
		Dur("retry_delay", config.RetryDelay).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
		retryHandler: NewRetryHandler(RetryHandlerConfig{
			MaxAttempts: config.MaxAttempts,
			Delay:       config.RetryDelay,
		}, logger),
	}, nil
}

// Do performs a single HTTP request and returns the response whatever its status.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create HTTP request")
	}

	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errorwrapper.NewNetworkError(req.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if c.config.MaxContentSize > 0 {
		reader = io.LimitReader(resp.Body, c.config.MaxContentSize)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errorwrapper.NewNetworkError(req.URL, "failed to read response body", err)
	}

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       body,
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// doChecked performs a single request and turns a non-2xx status into an errorwrapper.HTTPError
func (c *HTTPClient) doChecked(req *HTTPRequest) (*HTTPResponse, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, truncateBody(resp.Body), req.URL)
	}
	return resp, nil
}

// Fetch performs a GET and returns the body of a 2xx response. Timeouts,
// transport errors and error statuses are retried by the RetryHandler; the
// returned error means every attempt failed.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.logger.Debug().Str("url", url).Msg("GET")

	req := &HTTPRequest{
		URL:     url,
		Method:  http.MethodGet,
		Headers: map[string]string{"Accept": "application/json"},
		Context: ctx,
	}

	resp, err := c.retryHandler.DoWithRetry(ctx, c.doChecked, req)
	if err != nil {
		c.logFetchFailure(url, err)
		return nil, err
	}

	return resp.Body, nil
}

// logFetchFailure logs an exhausted GET. Timeouts are routine for the lookup
// API and stay at warn; cancellation is not a failure of the remote side.
func (c *HTTPClient) logFetchFailure(url string, err error) {
	var event *zerolog.Event
	switch {
	case errors.Is(err, context.Canceled):
		event = c.logger.Debug()
	case IsTimeout(err):
		event = c.logger.Warn()
	default:
		event = c.logger.Error()
	}

	var httpErr *errorwrapper.HTTPError
	if errors.As(err, &httpErr) {
		event = event.Int("status_code", httpErr.StatusCode)
	}

	event.Err(err).Str("url", url).Int("attempts", c.retryHandler.MaxAttempts()).Msg("GET failed")
}

// PostJSON sends payload as a JSON document in a single attempt. Any transport
// failure or non-2xx status is returned as an error.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal JSON payload")
	}

	req := &HTTPRequest{
		URL:    url,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body:    bytes.NewReader(body),
		Context: ctx,
	}

	if _, err := c.doChecked(req); err != nil {
		c.logger.Debug().Err(err).Msg("POST failed")
		return err
	}

	c.logger.Debug().Int("bytes", len(body)).Msg("POST delivered")
	return nil
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBodySize {
		body = body[:maxErrorBodySize]
	}
	return string(body)
}
