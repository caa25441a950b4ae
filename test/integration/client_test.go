//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox_Ping(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCredentials(t)

	client := config.NewPasswordClient(t)

	result, err := client.Utilities().Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Authenticated)
	assert.NotEmpty(t, result.Version)
}

func TestSandbox_VerifyUnknownShipment(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCredentials(t)

	client := config.NewPasswordClient(t)

	_, err := client.ShippingVerification().VerifyShipment(context.Background(), &avatax.ShipmentRequest{
		CompanyCode:     config.CompanyCode,
		TransactionCode: GenerateTestName("missing"),
	})
	require.Error(t, err)

	var apiErr *avatax.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotZero(t, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Body)

	detail, ok := avatax.ErrorDetail[avatax.ErrorDetails](err)
	if ok {
		require.NotNil(t, detail.Error)
		assert.NotEmpty(t, detail.Error.Message)
	}
}

func TestSandbox_DeregisterUnknownShipmentAsync(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCredentials(t)

	client := config.NewPasswordClient(t)

	future := client.ShippingVerification().DeregisterShipmentAsync(context.Background(), &avatax.ShipmentRequest{
		CompanyCode:     config.CompanyCode,
		TransactionCode: GenerateTestName("missing"),
		DocumentType:    avatax.DocumentTypeSalesInvoice,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := future.Wait(ctx)
	require.Error(t, err)

	var apiErr *avatax.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsTransportFailure())
}

func TestSandbox_VerifyAgeSimulatedFailure(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCredentials(t)

	client := config.NewPasswordClient(t)

	result, err := client.AgeVerification().VerifyAge(context.Background(), &avatax.AgeVerifyRequest{
		FirstName: "Alex",
		LastName:  "Smith",
		Address: avatax.AgeVerifyRequestAddress{
			Line1:      "255 S King St",
			City:       "Seattle",
			Region:     "WA",
			Country:    "US",
			PostalCode: "98104",
		},
		DOB: avatax.NewDate(1990, time.January, 15),
	}, avatax.AgeVerifyFailureUnderAge)
	require.NoError(t, err)
	assert.False(t, result.IsOfAge)
	assert.Contains(t, result.FailureCodes, avatax.AgeVerifyFailureUnderAge)
}

func TestSandbox_InvalidArgumentSendsNothing(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCredentials(t)

	client := config.NewPasswordClient(t)

	_, err := client.ShippingVerification().VerifyShipment(context.Background(), &avatax.ShipmentRequest{
		CompanyCode:  config.CompanyCode,
		DocumentType: "NotADocumentType",
	})
	require.ErrorIs(t, err, avatax.ErrInvalidArgument)

	var invalid *avatax.InvalidArgumentError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "transactionCode", invalid.Parameter)
}

func TestSandbox_IAMDSUsers(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingClientCredentials(t)

	client := config.NewClientCredentialsClient(t)
	ctx := context.Background()

	users, err := client.IAMDS().Users().List(ctx, &avatax.ListOptions{Top: 5, Count: true})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(users.Items), 5)

	if len(users.Items) == 0 {
		return
	}

	user, err := client.IAMDS().Users().Get(ctx, users.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, users.Items[0].ID, user.ID)
}
