// Package pipeline turns operation descriptors plus call arguments into HTTP
// requests, and HTTP outcomes into typed results or *avatax.APIError values.
// Every API operation, synchronous or asynchronous, goes through the same
// build, dispatch and interpret steps.
package pipeline

import (
	"context"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// Authenticator attaches credentials to an outgoing request.
type Authenticator interface {
	Authorize(ctx context.Context, header http.Header) error
}

// Config configures a Pipeline.
type Config struct {
	// BaseURL is the scheme and host, optionally with a path prefix.
	BaseURL string
	// Transport sends the requests.
	Transport avahttp.Transport
	// Auth attaches credentials. Nil sends requests anonymously.
	Auth Authenticator
	// ClientHeader is the X-Avalara-Client value, see ClientHeader.
	ClientHeader string
	// Logger receives a debug record per call. Optional.
	Logger avatax.Logger
	// Metrics records call outcomes. Optional.
	Metrics *Metrics
}

// Pipeline executes operations against one API surface. It holds no
// per-call state and is safe for concurrent use.
type Pipeline struct {
	baseURL      string
	transport    avahttp.Transport
	auth         Authenticator
	clientHeader string
	logger       avatax.Logger
	metrics      *Metrics
}

// New creates a new pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		transport:    cfg.Transport,
		auth:         cfg.Auth,
		clientHeader: cfg.ClientHeader,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
	}
}

// ClientHeader composes the X-Avalara-Client header value.
func ClientHeader(appName, appVersion, sdkVersion, machineName string) string {
	return strings.Join([]string{
		appName,
		appVersion,
		constants.SDKPlatform,
		sdkVersion,
		machineName,
	}, "; ")
}
