package commands_test

import (
	"testing"

	"github.com/fivetwenty-io/avatax-client/cmd/avatax/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Display version information", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.Equal(t, "Login to AvaTax", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	for _, name := range []string{"username", "password", "access-token", "client-id", "client-secret"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "u", cmd.Flags().Lookup("username").Shorthand)
	assert.Equal(t, "p", cmd.Flags().Lookup("password").Shorthand)
}

func TestNewLogoutCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLogoutCommand()
	assert.Equal(t, "logout", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewPingCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewPingCommand()
	assert.Equal(t, "ping", cmd.Use)
	assert.Equal(t, "Check connectivity and credentials", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewAgeCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewAgeCommand()
	assert.Equal(t, "age", cmd.Use)
	assert.Equal(t, []string{"verify"}, subcommandNames(cmd))

	verify := findSubcommand(cmd, "verify")
	require.NotNil(t, verify)
	assert.NotNil(t, verify.RunE)

	for _, name := range []string{"first-name", "last-name", "line1", "city", "region", "country", "postal-code", "dob", "simulate-failure"} {
		assert.NotNil(t, verify.Flags().Lookup(name), name)
	}

	assert.Equal(t, "US", verify.Flags().Lookup("country").DefValue)
	assert.Contains(t, verify.Flags().Lookup("simulate-failure").Usage, "under_age")
}

func TestAgeVerifyRequiresDateOfBirth(t *testing.T) {
	t.Parallel()

	verify := findSubcommand(commands.NewAgeCommand(), "verify")
	require.NotNil(t, verify)

	err := verify.RunE(verify, nil)
	require.ErrorIs(t, err, commands.ErrDateOfBirthRequired)
}

func TestAgeVerifyRejectsBadDate(t *testing.T) {
	t.Parallel()

	verify := findSubcommand(commands.NewAgeCommand(), "verify")
	require.NotNil(t, verify)
	require.NoError(t, verify.Flags().Set("dob", "01/02/1990"))

	err := verify.RunE(verify, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --dob")
}
