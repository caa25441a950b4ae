package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

const shipmentPath = "/api/v2/companies/{companyCode}/transactions/{transactionCode}/shipment/"

var shipmentParams = []pipeline.ParamSpec{
	{Name: "companyCode", In: pipeline.InPath, Required: true},
	{Name: "transactionCode", In: pipeline.InPath, Required: true},
	{Name: "documentType", In: pipeline.InQuery, Enum: avatax.DocumentTypes()},
}

var shipmentErrors = map[int]pipeline.Decode{
	http.StatusBadRequest:   pipeline.JSON[avatax.ErrorDetails](),
	http.StatusUnauthorized: pipeline.JSON[avatax.ErrorDetails](),
	http.StatusNotFound:     pipeline.JSON[avatax.ErrorDetails](),
	http.StatusConflict:     pipeline.JSON[avatax.ErrorDetails](),
}

var (
	deregisterShipmentOp = &pipeline.Descriptor{
		Name:      "ShippingVerification.DeregisterShipment",
		Method:    http.MethodDelete,
		Path:      shipmentPath + "registration",
		Params:    shipmentParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.Empty(),
		Responses: shipmentErrors,
	}
	registerShipmentOp = &pipeline.Descriptor{
		Name:      "ShippingVerification.RegisterShipment",
		Method:    http.MethodPut,
		Path:      shipmentPath + "registration",
		Params:    shipmentParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.Empty(),
		Responses: shipmentErrors,
	}
	registerShipmentIfCompliantOp = &pipeline.Descriptor{
		Name:      "ShippingVerification.RegisterShipmentIfCompliant",
		Method:    http.MethodPut,
		Path:      shipmentPath + "registerIfCompliant",
		Params:    shipmentParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.ShippingVerifyResult](),
		Responses: shipmentErrors,
	}
	verifyShipmentOp = &pipeline.Descriptor{
		Name:      "ShippingVerification.VerifyShipment",
		Method:    http.MethodGet,
		Path:      shipmentPath + "verify",
		Params:    shipmentParams,
		Produces:  []string{constants.ContentTypeJSON},
		Returns:   pipeline.JSON[avatax.ShippingVerifyResult](),
		Responses: shipmentErrors,
	}
)

// ShippingVerificationClient implements avatax.ShippingVerificationClient.
type ShippingVerificationClient struct {
	pipeline *pipeline.Pipeline
}

// NewShippingVerificationClient creates a new shipping verification client.
func NewShippingVerificationClient(p *pipeline.Pipeline) *ShippingVerificationClient {
	return &ShippingVerificationClient{pipeline: p}
}

// shipmentArgs maps req onto the shipment parameters. A nil req leaves the
// required path parameters absent, which the pipeline reports.
func shipmentArgs(req *avatax.ShipmentRequest) pipeline.Args {
	if req == nil {
		return pipeline.Args{}
	}

	query := map[string]any{}
	if req.DocumentType != "" {
		query["documentType"] = req.DocumentType
	}

	return pipeline.Args{
		Path: map[string]any{
			"companyCode":     req.CompanyCode,
			"transactionCode": req.TransactionCode,
		},
		Query: query,
	}
}

// DeregisterShipment implements avatax.ShippingVerificationClient.DeregisterShipment.
func (c *ShippingVerificationClient) DeregisterShipment(ctx context.Context, req *avatax.ShipmentRequest) error {
	return pipeline.Exec(ctx, c.pipeline, deregisterShipmentOp, shipmentArgs(req))
}

// DeregisterShipmentAsync implements avatax.ShippingVerificationClient.DeregisterShipmentAsync.
func (c *ShippingVerificationClient) DeregisterShipmentAsync(ctx context.Context, req *avatax.ShipmentRequest) *avatax.Future[avatax.Empty] {
	return pipeline.ExecAsync(ctx, c.pipeline, deregisterShipmentOp, shipmentArgs(req))
}

// RegisterShipment implements avatax.ShippingVerificationClient.RegisterShipment.
func (c *ShippingVerificationClient) RegisterShipment(ctx context.Context, req *avatax.ShipmentRequest) error {
	return pipeline.Exec(ctx, c.pipeline, registerShipmentOp, shipmentArgs(req))
}

// RegisterShipmentAsync implements avatax.ShippingVerificationClient.RegisterShipmentAsync.
func (c *ShippingVerificationClient) RegisterShipmentAsync(ctx context.Context, req *avatax.ShipmentRequest) *avatax.Future[avatax.Empty] {
	return pipeline.ExecAsync(ctx, c.pipeline, registerShipmentOp, shipmentArgs(req))
}

// RegisterShipmentIfCompliant implements avatax.ShippingVerificationClient.RegisterShipmentIfCompliant.
func (c *ShippingVerificationClient) RegisterShipmentIfCompliant(ctx context.Context, req *avatax.ShipmentRequest) (*avatax.ShippingVerifyResult, error) {
	return pipeline.Call[avatax.ShippingVerifyResult](ctx, c.pipeline, registerShipmentIfCompliantOp, shipmentArgs(req))
}

// RegisterShipmentIfCompliantAsync implements avatax.ShippingVerificationClient.RegisterShipmentIfCompliantAsync.
func (c *ShippingVerificationClient) RegisterShipmentIfCompliantAsync(ctx context.Context, req *avatax.ShipmentRequest) *avatax.Future[*avatax.ShippingVerifyResult] {
	return pipeline.CallAsync[avatax.ShippingVerifyResult](ctx, c.pipeline, registerShipmentIfCompliantOp, shipmentArgs(req))
}

// VerifyShipment implements avatax.ShippingVerificationClient.VerifyShipment.
func (c *ShippingVerificationClient) VerifyShipment(ctx context.Context, req *avatax.ShipmentRequest) (*avatax.ShippingVerifyResult, error) {
	return pipeline.Call[avatax.ShippingVerifyResult](ctx, c.pipeline, verifyShipmentOp, shipmentArgs(req))
}

// VerifyShipmentAsync implements avatax.ShippingVerificationClient.VerifyShipmentAsync.
func (c *ShippingVerificationClient) VerifyShipmentAsync(ctx context.Context, req *avatax.ShipmentRequest) *avatax.Future[*avatax.ShippingVerifyResult] {
	return pipeline.CallAsync[avatax.ShippingVerifyResult](ctx, c.pipeline, verifyShipmentOp, shipmentArgs(req))
}
