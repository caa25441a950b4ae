package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fivetwenty-io/avatax-client/internal/auth"
	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/logging"
	"github.com/fivetwenty-io/avatax-client/pkg/avaclient"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/spf13/viper"
)

// cliClient closes the shared token store together with the client.
type cliClient struct {
	avatax.Client

	store *avaclient.NATSTokenStore
}

// Close implements avatax.Client.Close.
func (c *cliClient) Close() error {
	err := c.Client.Close()

	if c.store != nil {
		err = errors.Join(err, c.store.Close())
	}

	return err
}

// CreateClient builds a client from the CLI configuration. It fails with
// constants.ErrNoCredentials when nothing is configured.
func CreateClient(ctx context.Context) (avatax.Client, error) {
	return createClient(ctx, loadConfig(), true)
}

func hasCredentials(config *Config) bool {
	return config.Username != "" || config.AccessToken != "" || config.ClientID != ""
}

func createClient(ctx context.Context, config *Config, requireAuth bool) (avatax.Client, error) {
	if requireAuth && !hasCredentials(config) {
		return nil, constants.ErrNoCredentials
	}

	logger := logging.NewConsole(os.Stderr, viper.GetBool("verbose"))

	clientConfig := buildClientConfig(config)
	clientConfig.Logger = logger

	var natsStore *avaclient.NATSTokenStore

	if config.ClientID != "" {
		store, err := createTokenStore(ctx, config, logger)
		if err != nil {
			return nil, err
		}

		clientConfig.TokenStore = store

		natsStore, _ = store.(*avaclient.NATSTokenStore)
	}

	client, err := avaclient.New(ctx, clientConfig)
	if err != nil {
		if natsStore != nil {
			_ = natsStore.Close()
		}

		return nil, err
	}

	return &cliClient{Client: client, store: natsStore}, nil
}

// buildClientConfig maps the CLI configuration onto avatax.Config.
func buildClientConfig(config *Config) *avatax.Config {
	return &avatax.Config{
		Environment:  config.Environment,
		BaseURL:      config.BaseURL,
		IAMDSBaseURL: config.IAMDSBaseURL,
		TokenURL:     config.TokenURL,
		Username:     config.Username,
		Password:     config.Password,
		AccessToken:  config.AccessToken,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scope:        config.Scope,
		AppName:      config.AppName,
		AppVersion:   config.AppVersion,
		MachineName:  config.MachineName,
		HTTPTimeout:  constants.DefaultHTTPTimeout,
		Debug:        viper.GetBool("debug"),
		DebugLogPath: config.DebugLogPath,
	}
}

// createTokenStore shares tokens through NATS when configured, and otherwise
// caches them in the config file.
func createTokenStore(ctx context.Context, config *Config, logger avatax.Logger) (avatax.TokenStore, error) {
	if config.NATSURL != "" {
		bucket := config.NATSBucket
		if bucket == "" {
			bucket = constants.DefaultTokenBucket
		}

		store, err := avaclient.NewNATSTokenStore(ctx, avaclient.NATSTokenStoreConfig{
			URL:    config.NATSURL,
			Bucket: bucket,
			Key:    constants.DefaultTokenStoreKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open token store: %w", err)
		}

		return store, nil
	}

	memory := auth.NewMemoryStore()
	if config.CachedToken != "" {
		token := &avatax.Token{AccessToken: config.CachedToken, TokenType: "Bearer"}
		if config.CachedTokenExpiresAt != nil {
			token.ExpiresAt = *config.CachedTokenExpiresAt
		}

		memory.Set(token)
	}

	return auth.NewPersistingStore(memory, NewConfigPersister(), logger), nil
}
