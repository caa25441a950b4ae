package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

var pingOp = &pipeline.Descriptor{
	Name:     "Utilities.Ping",
	Method:   http.MethodGet,
	Path:     "/api/v2/utilities/ping",
	Produces: []string{constants.ContentTypeJSON},
	Returns:  pipeline.JSON[avatax.PingResult](),
}

// UtilitiesClient implements avatax.UtilitiesClient.
type UtilitiesClient struct {
	pipeline *pipeline.Pipeline
}

// NewUtilitiesClient creates a new utilities client.
func NewUtilitiesClient(p *pipeline.Pipeline) *UtilitiesClient {
	return &UtilitiesClient{pipeline: p}
}

// Ping implements avatax.UtilitiesClient.Ping.
func (c *UtilitiesClient) Ping(ctx context.Context) (*avatax.PingResult, error) {
	return pipeline.Call[avatax.PingResult](ctx, c.pipeline, pingOp, pipeline.Args{})
}

// PingAsync implements avatax.UtilitiesClient.PingAsync.
func (c *UtilitiesClient) PingAsync(ctx context.Context) *avatax.Future[*avatax.PingResult] {
	return pipeline.CallAsync[avatax.PingResult](ctx, c.pipeline, pingOp, pipeline.Args{})
}
