package avatax_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockShipping records VerifyShipment calls and fails for unknown companies.
type mockShipping struct {
	avatax.ShippingVerificationClient

	mu       sync.Mutex
	calls    []string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (m *mockShipping) VerifyShipment(ctx context.Context, req *avatax.ShipmentRequest) (*avatax.ShippingVerifyResult, error) {
	current := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)

	for {
		peak := m.peak.Load()
		if current <= peak || m.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	time.Sleep(5 * time.Millisecond)

	m.mu.Lock()
	m.calls = append(m.calls, req.TransactionCode)
	m.mu.Unlock()

	if req.CompanyCode != "DEFAULT" {
		return nil, &avatax.APIError{Operation: "ShippingVerification.VerifyShipment", StatusCode: 404}
	}

	return &avatax.ShippingVerifyResult{Compliant: true}, nil
}

func TestBatchVerifier_Verify(t *testing.T) {
	t.Parallel()

	mock := &mockShipping{}
	requests := []avatax.ShipmentRequest{
		{CompanyCode: "DEFAULT", TransactionCode: "INV-1"},
		{CompanyCode: "MISSING", TransactionCode: "INV-2"},
		{CompanyCode: "DEFAULT", TransactionCode: "INV-3"},
		{CompanyCode: "DEFAULT", TransactionCode: "INV-4"},
		{CompanyCode: "DEFAULT", TransactionCode: "INV-5"},
	}

	results := avatax.NewBatchVerifier(mock, 2).Verify(context.Background(), requests)

	require.Len(t, results, len(requests))

	for i, result := range results {
		assert.Equal(t, requests[i], result.Request)
	}

	assert.True(t, results[0].Success())
	assert.True(t, results[0].Result.Compliant)
	assert.False(t, results[1].Success())
	assert.True(t, avatax.IsNotFound(results[1].Error))
	assert.Nil(t, results[1].Result)

	assert.Len(t, mock.calls, len(requests))
	assert.LessOrEqual(t, mock.peak.Load(), int32(2))
}

func TestVerifyShipments_Empty(t *testing.T) {
	t.Parallel()

	results := avatax.VerifyShipments(context.Background(), &mockShipping{}, nil)
	assert.Empty(t, results)
}
