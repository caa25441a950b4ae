// Package http is the shared transport behind every API call. It sends fully
// assembled requests and hands back status, headers and body untouched;
// deciding what a status means is left to the caller.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Request is a fully assembled HTTP request.
type Request struct {
	Method string
	// URL is absolute, query string included.
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the raw outcome of a request that reached the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends requests synchronously or in the background.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	DoAsync(ctx context.Context, req *Request) *avatax.Future[*Response]
}

// Client is the Transport implementation on go-retryablehttp.
type Client struct {
	httpClient *retryablehttp.Client
	logger     avatax.Logger
	debug      bool
	userAgent  string
}

// NewClient creates a new transport. Retries are off unless enabled with
// WithRetryConfig.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		httpClient: retryClient,
		userAgent:  constants.DefaultAppName,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil && retryClient.RetryMax > 0 {
		retryClient.Logger = leveledLogger{logger: client.logger}
	}

	return client
}

// Do sends req and returns whatever response the server produced, including
// non-2xx ones. A request that never got a response fails with a
// *ConnectionError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.NewString()

	var rawBody interface{}
	if len(req.Body) > 0 {
		rawBody = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if httpReq.Header.Get("User-Agent") == "" && c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        req.URL,
			"headers":    redactHeaders(httpReq.Header),
			"body_bytes": len(req.Body),
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil && resp == nil {
		if c.debug && c.logger != nil {
			c.logger.Debug("HTTP Failure", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
				"duration":   time.Since(start).String(),
			})
		}

		return nil, &ConnectionError{Method: req.Method, URL: req.URL, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Method: req.Method, URL: req.URL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id": requestID,
			"status":     resp.StatusCode,
			"headers":    resp.Header,
			"body":       string(bytes.TrimSpace(body)),
			"duration":   time.Since(start).String(),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// DoAsync sends req on a new goroutine.
func (c *Client) DoAsync(ctx context.Context, req *Request) *avatax.Future[*Response] {
	return avatax.Go(func() (*Response, error) {
		return c.Do(ctx, req)
	})
}

func redactHeaders(header http.Header) http.Header {
	redacted := header.Clone()
	if redacted.Get("Authorization") != "" {
		redacted.Set("Authorization", constants.MaskedSecret)
	}

	return redacted
}
