package commands_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/avatax-client/cmd/avatax/commands"
	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage CLI configuration", cmd.Short)
	assert.ElementsMatch(t, []string{"show", "set", "unset"}, subcommandNames(cmd))

	set := findSubcommand(cmd, "set")
	require.NotNil(t, set)
	assert.Equal(t, "set KEY VALUE", set.Use)
	require.Error(t, set.Args(set, []string{"environment"}))

	unset := findSubcommand(cmd, "unset")
	require.NotNil(t, unset)
	assert.Equal(t, "unset KEY", unset.Use)
}

func TestConfigSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		check   func(t *testing.T, config *commands.Config)
	}{
		{
			name:  "environment",
			key:   "environment",
			value: "production",
			check: func(t *testing.T, config *commands.Config) {
				t.Helper()
				assert.Equal(t, "production", config.Environment)
			},
		},
		{
			name:  "client secret",
			key:   "client_secret",
			value: "s3cret",
			check: func(t *testing.T, config *commands.Config) {
				t.Helper()
				assert.Equal(t, "s3cret", config.ClientSecret)
			},
		},
		{
			name:  "output",
			key:   "output",
			value: "yaml",
			check: func(t *testing.T, config *commands.Config) {
				t.Helper()
				assert.Equal(t, "yaml", config.Output)
			},
		},
		{name: "invalid output", key: "output", value: "xml", wantErr: constants.ErrInvalidOutputFormat},
		{name: "unknown key", key: "colour", value: "red", wantErr: constants.ErrUnknownConfigKey},
		{name: "cached token", key: "cached_token", value: "abc", wantErr: constants.ErrUnknownConfigKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := &commands.Config{}

			err := config.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, config)
		})
	}
}

func TestConfigUnset(t *testing.T) {
	t.Parallel()

	config := &commands.Config{Environment: "sandbox", BaseURL: "http://localhost", Password: "pw"}

	require.NoError(t, config.Unset("base_url"))
	assert.Empty(t, config.BaseURL)
	assert.Equal(t, "sandbox", config.Environment)

	err := config.Unset("password")
	require.ErrorIs(t, err, constants.ErrSecretsCannotUnset)
	assert.Equal(t, "pw", config.Password)

	require.ErrorIs(t, config.Unset("nope"), constants.ErrUnknownConfigKey)
}

func TestConfigMaskedAndClearCredentials(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	config := &commands.Config{
		Environment:          "sandbox",
		Username:             "user",
		Password:             "pw",
		AccessToken:          "token",
		ClientID:             "client",
		ClientSecret:         "secret",
		CachedToken:          "cached",
		CachedTokenExpiresAt: &expires,
	}

	masked := config.Masked()
	assert.Equal(t, "user", masked.Username)
	assert.Equal(t, "client", masked.ClientID)
	assert.Equal(t, constants.MaskedSecret, masked.Password)
	assert.Equal(t, constants.MaskedSecret, masked.AccessToken)
	assert.Equal(t, constants.MaskedSecret, masked.ClientSecret)
	assert.Equal(t, constants.MaskedSecret, masked.CachedToken)
	assert.Equal(t, "pw", config.Password, "original is untouched")

	assert.Empty(t, (&commands.Config{}).Masked().Password)

	config.ClearCredentials()
	assert.Equal(t, "sandbox", config.Environment)
	assert.Empty(t, config.Username)
	assert.Empty(t, config.Password)
	assert.Empty(t, config.AccessToken)
	assert.Empty(t, config.ClientID)
	assert.Empty(t, config.ClientSecret)
	assert.Empty(t, config.CachedToken)
	assert.Nil(t, config.CachedTokenExpiresAt)
}

func TestConfigKeys(t *testing.T) {
	t.Parallel()

	config := &commands.Config{}
	for _, key := range config.Keys() {
		if key == "output" {
			continue
		}

		require.NoError(t, config.Set(key, "value"), key)
	}
}
