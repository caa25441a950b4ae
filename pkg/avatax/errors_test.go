package avatax_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *avatax.APIError
		expected string
	}{
		{
			name: "transport failure",
			err: &avatax.APIError{
				Operation: "Utilities.Ping",
				Err:       errors.New("connection refused"),
			},
			expected: "avatax: Utilities.Ping: transport failure: connection refused",
		},
		{
			name: "avatax error object",
			err: &avatax.APIError{
				Operation:  "ShippingVerification.VerifyShipment",
				StatusCode: http.StatusNotFound,
				Body:       []byte(`{"error":{"code":"EntityNotFoundError","message":"Transaction not found"}}`),
			},
			expected: "avatax: ShippingVerification.VerifyShipment: HTTP 404: Transaction not found",
		},
		{
			name: "string error",
			err: &avatax.APIError{
				Operation:  "ShippingVerification.DeregisterShipment",
				StatusCode: http.StatusConflict,
				Body:       []byte(`{"error":"already deregistered"}`),
			},
			expected: "avatax: ShippingVerification.DeregisterShipment: HTTP 409: already deregistered",
		},
		{
			name: "oauth error",
			err: &avatax.APIError{
				Operation:  "OAuth.Token",
				StatusCode: http.StatusBadRequest,
				Body:       []byte(`{"error":"invalid_client","error_description":"unknown client"}`),
			},
			expected: "avatax: OAuth.Token: HTTP 400: unknown client",
		},
		{
			name: "plain text body",
			err: &avatax.APIError{
				Operation:  "Users.Get",
				StatusCode: http.StatusBadGateway,
				Body:       []byte("upstream unavailable\n"),
			},
			expected: "avatax: Users.Get: HTTP 502: upstream unavailable",
		},
		{
			name: "empty body",
			err: &avatax.APIError{
				Operation:  "Users.Delete",
				StatusCode: http.StatusForbidden,
			},
			expected: "avatax: Users.Delete: HTTP 403",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_IsTransportFailure(t *testing.T) {
	t.Parallel()

	assert.True(t, (&avatax.APIError{Err: errBoom}).IsTransportFailure())
	assert.False(t, (&avatax.APIError{StatusCode: 500, Body: []byte("x")}).IsTransportFailure())
}

func TestErrorDetail(t *testing.T) {
	t.Parallel()

	details := &avatax.ErrorDetails{Error: &avatax.ErrorDetailsError{Message: "conflict"}}
	err := fmt.Errorf("deregistering: %w", &avatax.APIError{
		Operation:  "ShippingVerification.DeregisterShipment",
		StatusCode: http.StatusConflict,
		Detail:     details,
	})

	got, ok := avatax.ErrorDetail[avatax.ErrorDetails](err)
	require.True(t, ok)
	assert.Same(t, details, got)

	_, ok = avatax.ErrorDetail[avatax.IAMDSError](err)
	assert.False(t, ok)

	_, ok = avatax.ErrorDetail[avatax.ErrorDetails](errBoom)
	assert.False(t, ok)

	assert.True(t, avatax.IsConflict(err))
	assert.False(t, avatax.IsNotFound(err))
	assert.Equal(t, http.StatusConflict, avatax.StatusCode(err))
	assert.Equal(t, 0, avatax.StatusCode(errBoom))
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, avatax.IsNotFound(&avatax.APIError{StatusCode: http.StatusNotFound}))
	assert.True(t, avatax.IsUnauthorized(&avatax.APIError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, avatax.IsUnauthorized(nil))
}

func TestInvalidArgumentError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &avatax.InvalidArgumentError{
		Operation: "ShippingVerification.VerifyShipment",
		Parameter: "companyCode",
		Reason:    "is required",
	})

	require.ErrorIs(t, err, avatax.ErrInvalidArgument)
	assert.NotErrorIs(t, err, avatax.ErrConfiguration)
	assert.Contains(t, err.Error(), `invalid argument "companyCode": is required`)
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	err := &avatax.ConfigurationError{Field: "Environment", Reason: `unknown environment "staging"`}
	require.ErrorIs(t, err, avatax.ErrConfiguration)
	assert.Equal(t, `avatax: invalid configuration Environment: unknown environment "staging"`, err.Error())

	bare := &avatax.ConfigurationError{Reason: "config is nil"}
	assert.Equal(t, "avatax: invalid configuration: config is nil", bare.Error())
}
