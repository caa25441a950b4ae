package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

const testTransactionCode = "575f7201-ae11-483a-bc4e-0b3f948e4397"

func shipment(documentType avatax.DocumentType) *avatax.ShipmentRequest {
	return &avatax.ShipmentRequest{
		CompanyCode:     "DEFAULT",
		TransactionCode: testTransactionCode,
		DocumentType:    documentType,
	}
}

func execResult(err error) (*avatax.Empty, error) {
	if err != nil {
		return nil, err
	}

	return &avatax.Empty{}, nil
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestShippingVerificationClient_DeregisterShipment(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[avatax.Empty]{
		{
			Name:          "deregisters a shipment",
			ExpectedPath:  "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/registration",
			ExpectedQuery: "documentType=SalesInvoice",
			StatusCode:    http.StatusOK,
		},
		{
			Name:          "conflict",
			ExpectedPath:  "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/registration",
			ExpectedQuery: "documentType=SalesInvoice",
			StatusCode:    http.StatusConflict,
			Response:      map[string]interface{}{"error": "Shipment is not registered"},
			WantErr:       true,
			ErrMessage:    "Shipment is not registered",
		},
	}

	RunOperationTests(t, http.MethodDelete, tests, func(c *Client) (*avatax.Empty, error) {
		return execResult(c.ShippingVerification().DeregisterShipment(context.Background(), shipment(avatax.DocumentTypeSalesInvoice)))
	})
}

func TestShippingVerificationClient_DeregisterShipmentConflictDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"ShipmentNotRegistered","message":"not registered","target":"HttpRequest"}}`))
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	err := client.ShippingVerification().DeregisterShipment(context.Background(), shipment(""))
	require.Error(t, err)
	assert.True(t, avatax.IsConflict(err))

	detail, ok := avatax.ErrorDetail[avatax.ErrorDetails](err)
	require.True(t, ok)
	require.NotNil(t, detail.Error)
	assert.Equal(t, "ShipmentNotRegistered", detail.Error.Code)
	assert.Equal(t, "HttpRequest", detail.Error.Target)

	var apiErr *avatax.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ShippingVerification.DeregisterShipment", apiErr.Operation)
	assert.Equal(t, "application/json", apiErr.Headers.Get("Content-Type"))
}

func TestShippingVerificationClient_RegisterShipment(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[avatax.Empty]{
		{
			Name:         "registers without a document type",
			ExpectedPath: "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/registration",
			StatusCode:   http.StatusOK,
		},
		{
			Name:         "not found",
			ExpectedPath: "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/registration",
			StatusCode:   http.StatusNotFound,
			Response: map[string]interface{}{
				"error": map[string]interface{}{"code": "EntityNotFoundError", "message": "Transaction not found"},
			},
			WantErr:    true,
			ErrMessage: "Transaction not found",
		},
	}

	RunOperationTests(t, http.MethodPut, tests, func(c *Client) (*avatax.Empty, error) {
		return execResult(c.ShippingVerification().RegisterShipment(context.Background(), shipment("")))
	})
}

func TestShippingVerificationClient_RegisterShipmentIfCompliant(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[avatax.ShippingVerifyResult]{
		{
			Name:          "not compliant",
			ExpectedPath:  "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/registerIfCompliant",
			ExpectedQuery: "documentType=SalesOrder",
			StatusCode:    http.StatusOK,
			Response: map[string]interface{}{
				"compliant":    false,
				"message":      "Transaction is not compliant",
				"failureCodes": []string{"BelowLegalDrinkingAge"},
				"lines": []map[string]interface{}{
					{"resultCode": "NotCompliant", "lineNumber": "1", "failureCodes": []string{"BelowLegalDrinkingAge"}},
				},
			},
			Check: func(t *testing.T, result *avatax.ShippingVerifyResult) {
				t.Helper()

				assert.False(t, result.Compliant)
				assert.Equal(t, []avatax.ShippingFailureCode{avatax.ShippingFailureBelowLegalDrinkingAge}, result.FailureCodes)
				require.Len(t, result.Lines, 1)
				assert.Equal(t, avatax.ShippingResultNotCompliant, result.Lines[0].ResultCode)
			},
		},
	}

	RunOperationTests(t, http.MethodPut, tests, func(c *Client) (*avatax.ShippingVerifyResult, error) {
		return c.ShippingVerification().RegisterShipmentIfCompliant(context.Background(), shipment(avatax.DocumentTypeSalesOrder))
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestShippingVerificationClient_VerifyShipment(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[avatax.ShippingVerifyResult]{
		{
			Name:         "compliant",
			ExpectedPath: "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/verify",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"compliant": true, "message": "Transaction is compliant"},
			Check: func(t *testing.T, result *avatax.ShippingVerifyResult) {
				t.Helper()

				assert.True(t, result.Compliant)
				assert.Equal(t, "Transaction is compliant", result.Message)
			},
		},
		{
			Name:         "unauthorized",
			ExpectedPath: "/api/v2/companies/DEFAULT/transactions/" + testTransactionCode + "/shipment/verify",
			StatusCode:   http.StatusUnauthorized,
			Response: map[string]interface{}{
				"error": map[string]interface{}{"code": "AuthenticationException", "message": "Authentication failed"},
			},
			WantErr:    true,
			ErrMessage: "HTTP 401",
		},
	}

	RunOperationTests(t, http.MethodGet, tests, func(c *Client) (*avatax.ShippingVerifyResult, error) {
		return c.ShippingVerification().VerifyShipment(context.Background(), shipment(""))
	})
}

func TestShippingVerificationClient_EscapesPathValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/companies/ACME%20US/transactions/INV%2F42/shipment/verify", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"compliant":true}`))
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	result, err := client.ShippingVerification().VerifyShipment(context.Background(), &avatax.ShipmentRequest{
		CompanyCode:     "ACME US",
		TransactionCode: "INV/42",
	})
	require.NoError(t, err)
	assert.True(t, result.Compliant)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestShippingVerificationClient_InvalidArguments(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := NewTestClient(t, server)
	shipping := client.ShippingVerification()

	tests := []struct {
		name      string
		req       *avatax.ShipmentRequest
		parameter string
	}{
		{
			name:      "nil request",
			req:       nil,
			parameter: "companyCode",
		},
		{
			name:      "empty company code",
			req:       &avatax.ShipmentRequest{TransactionCode: testTransactionCode},
			parameter: "companyCode",
		},
		{
			name:      "empty transaction code",
			req:       &avatax.ShipmentRequest{CompanyCode: "DEFAULT"},
			parameter: "transactionCode",
		},
		{
			name: "unknown document type",
			req: &avatax.ShipmentRequest{
				CompanyCode:     "DEFAULT",
				TransactionCode: testTransactionCode,
				DocumentType:    "Receipt",
			},
			parameter: "documentType",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := shipping.DeregisterShipment(context.Background(), tt.req)

			var argErr *avatax.InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.parameter, argErr.Parameter)
			assert.Equal(t, "ShippingVerification.DeregisterShipment", argErr.Operation)

			_, err = shipping.VerifyShipmentAsync(context.Background(), tt.req).Get()
			require.ErrorIs(t, err, avatax.ErrInvalidArgument)
		})
	}

	assert.Equal(t, int32(0), requests.Load())
}

func TestShippingVerificationClient_Async(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"Shipment is not registered"}`))

			return
		}

		_, _ = w.Write([]byte(`{"compliant":true}`))
	}))
	defer server.Close()

	client := NewTestClient(t, server)
	shipping := client.ShippingVerification()

	_, err := shipping.DeregisterShipmentAsync(context.Background(), shipment("")).Wait(context.Background())
	require.Error(t, err)

	detail, ok := avatax.ErrorDetail[avatax.ErrorDetails](err)
	require.True(t, ok)
	assert.Equal(t, "Shipment is not registered", detail.Error.Message)

	_, err = shipping.RegisterShipmentAsync(context.Background(), shipment("")).Get()
	require.NoError(t, err)

	result, err := shipping.RegisterShipmentIfCompliantAsync(context.Background(), shipment("")).Get()
	require.NoError(t, err)
	assert.True(t, result.Compliant)

	var order []string

	done := make(chan struct{})

	shipping.VerifyShipmentAsync(context.Background(), shipment("")).
		OnComplete(func(result *avatax.ShippingVerifyResult, err error) {
			order = append(order, "first")
		}).
		OnComplete(func(result *avatax.ShippingVerifyResult, err error) {
			order = append(order, "second")
			close(done)
		})

	<-done
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestShippingVerificationClient_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewTestClient(t, server)
	server.Close()

	_, err := client.ShippingVerification().VerifyShipment(context.Background(), shipment(""))

	var apiErr *avatax.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTransportFailure())
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Nil(t, apiErr.Headers)
	assert.Nil(t, apiErr.Body)
	assert.False(t, errors.Is(err, avatax.ErrInvalidArgument))
}
