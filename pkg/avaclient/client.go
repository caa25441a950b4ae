package avaclient

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/avatax-client/internal/client"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// New creates a new AvaTax client. Configuration problems are reported as
// *avatax.ConfigurationError; a debug log path that cannot be opened is
// reported as the underlying *os.PathError.
func New(ctx context.Context, config *avatax.Config) (avatax.Client, error) {
	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithPassword creates a new client using username/password authentication.
func NewWithPassword(ctx context.Context, environment, username, password string) (avatax.Client, error) {
	return New(ctx, &avatax.Config{
		Environment: environment,
		Username:    username,
		Password:    password,
	})
}

// NewWithToken creates a new client with a pre-issued bearer token.
func NewWithToken(ctx context.Context, environment, token string) (avatax.Client, error) {
	return New(ctx, &avatax.Config{
		Environment: environment,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using OAuth2 client credentials.
func NewWithClientCredentials(ctx context.Context, environment, clientID, clientSecret string) (avatax.Client, error) {
	return New(ctx, &avatax.Config{
		Environment:  environment,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}
