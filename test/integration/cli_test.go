//go:build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Version(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("version", "--output", "json")
	require.NoError(t, err, stderr)

	var info map[string]string
	DecodeJSONOutput(t, stdout, &info)
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit")
}

func TestCLI_LoginPingLogout(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)
	config.SkipIfMissingCredentials(t)

	runner := NewCommandRunner(config, t)

	require.NoError(t, runner.Login())

	stdout, stderr, err := runner.Run("ping", "--output", "json")
	require.NoError(t, err, stderr)

	var ping map[string]any
	DecodeJSONOutput(t, stdout, &ping)
	assert.Equal(t, true, ping["authenticated"])

	stdout, stderr, err = runner.Run("config", "show", "--output", "json")
	require.NoError(t, err, stderr)
	assert.NotContains(t, stdout, config.Password)

	stdout, stderr, err = runner.Run("logout")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Logged out")
}

func TestCLI_ShippingVerifyUnknownTransaction(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)
	config.SkipIfMissingCredentials(t)

	runner := NewCommandRunner(config, t)
	require.NoError(t, runner.Login())

	_, stderr, err := runner.Run("shipping", "verify", config.CompanyCode, GenerateTestName("missing"))
	require.Error(t, err)
	assert.Contains(t, stderr, "ShippingVerification.VerifyShipment")
}
