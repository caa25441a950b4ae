package http

import (
	"net/http"
	"time"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger avatax.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging. Retry attempts are logged
// too when retries are enabled.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the timeout applied to every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig enables transport retries for connection errors, 429 and
// 5xx responses.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, keeping its timeout
// unless one was already set on it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient == nil {
			return
		}

		if httpClient.Timeout == 0 {
			httpClient.Timeout = c.httpClient.HTTPClient.Timeout
		}

		c.httpClient.HTTPClient = httpClient
	}
}
