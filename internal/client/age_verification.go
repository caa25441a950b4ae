package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

var verifyAgeOp = &pipeline.Descriptor{
	Name:   "AgeVerification.VerifyAge",
	Method: http.MethodPost,
	Path:   "/api/v2/ageverification/verify",
	Params: []pipeline.ParamSpec{
		{Name: "simulatedFailureCode", In: pipeline.InQuery, Enum: avatax.AgeVerifyFailureCodes()},
		{Name: "request", In: pipeline.InBody, Required: true},
	},
	Consumes: []string{constants.ContentTypeJSON},
	Produces: []string{constants.ContentTypeJSON},
	Returns:  pipeline.JSON[avatax.AgeVerifyResult](),
}

// AgeVerificationClient implements avatax.AgeVerificationClient.
type AgeVerificationClient struct {
	pipeline *pipeline.Pipeline
}

// NewAgeVerificationClient creates a new age verification client.
func NewAgeVerificationClient(p *pipeline.Pipeline) *AgeVerificationClient {
	return &AgeVerificationClient{pipeline: p}
}

func ageArgs(req *avatax.AgeVerifyRequest, simulatedFailureCode avatax.AgeVerifyFailureCode) pipeline.Args {
	args := pipeline.Args{Body: req}
	if simulatedFailureCode != "" {
		args.Query = map[string]any{"simulatedFailureCode": simulatedFailureCode}
	}

	return args
}

// VerifyAge implements avatax.AgeVerificationClient.VerifyAge.
func (c *AgeVerificationClient) VerifyAge(ctx context.Context, req *avatax.AgeVerifyRequest, simulatedFailureCode avatax.AgeVerifyFailureCode) (*avatax.AgeVerifyResult, error) {
	return pipeline.Call[avatax.AgeVerifyResult](ctx, c.pipeline, verifyAgeOp, ageArgs(req, simulatedFailureCode))
}

// VerifyAgeAsync implements avatax.AgeVerificationClient.VerifyAgeAsync.
func (c *AgeVerificationClient) VerifyAgeAsync(ctx context.Context, req *avatax.AgeVerifyRequest, simulatedFailureCode avatax.AgeVerifyFailureCode) *avatax.Future[*avatax.AgeVerifyResult] {
	return pipeline.CallAsync[avatax.AgeVerifyResult](ctx, c.pipeline, verifyAgeOp, ageArgs(req, simulatedFailureCode))
}
