package avatax

import (
	"context"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"golang.org/x/sync/errgroup"
)

// ShipmentBatchResult is the outcome of verifying one shipment in a batch.
type ShipmentBatchResult struct {
	Request  ShipmentRequest
	Result   *ShippingVerifyResult
	Error    error
	Duration time.Duration
}

// Success reports whether the shipment was verified without error.
func (r ShipmentBatchResult) Success() bool {
	return r.Error == nil
}

// BatchVerifier verifies many shipments with bounded concurrency.
type BatchVerifier struct {
	client      ShippingVerificationClient
	concurrency int
	timeout     time.Duration
}

// NewBatchVerifier creates a new batch verifier. A non-positive concurrency
// selects the default limit.
func NewBatchVerifier(client ShippingVerificationClient, concurrency int) *BatchVerifier {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchVerifier{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-shipment timeout.
func (b *BatchVerifier) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Verify runs VerifyShipment for every request. Results are returned in
// request order; a failed shipment does not stop the others.
func (b *BatchVerifier) Verify(ctx context.Context, requests []ShipmentRequest) []ShipmentBatchResult {
	results := make([]ShipmentBatchResult, len(requests))

	var group errgroup.Group

	group.SetLimit(b.concurrency)

	for index, request := range requests {
		index := index
		request := request
		group.Go(func() error {
			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result, err := b.client.VerifyShipment(opCtx, &request)

			results[index] = ShipmentBatchResult{
				Request:  request,
				Result:   result,
				Error:    err,
				Duration: time.Since(start),
			}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// VerifyShipments verifies requests with the default concurrency limit.
func VerifyShipments(ctx context.Context, client ShippingVerificationClient, requests []ShipmentRequest) []ShipmentBatchResult {
	return NewBatchVerifier(client, 0).Verify(ctx, requests)
}
