//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/avatax-client/pkg/avaclient"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	CompanyCode  string
	AvataxPath   string
	Verbose      bool
}

// LoadTestConfig loads configuration from AVATAX_* environment variables.
func LoadTestConfig() *TestConfig {
	companyCode := os.Getenv("AVATAX_COMPANY_CODE")
	if companyCode == "" {
		companyCode = "DEFAULT"
	}

	return &TestConfig{
		Username:     os.Getenv("AVATAX_USERNAME"),
		Password:     os.Getenv("AVATAX_PASSWORD"),
		ClientID:     os.Getenv("AVATAX_CLIENT_ID"),
		ClientSecret: os.Getenv("AVATAX_CLIENT_SECRET"),
		CompanyCode:  companyCode,
		AvataxPath:   getAvataxPath(),
		Verbose:      os.Getenv("AVATAX_VERBOSE") == "true",
	}
}

// getAvataxPath determines the path to the avatax binary.
func getAvataxPath() string {
	if path := os.Getenv("AVATAX_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../avatax",
		"./avatax",
		"../avatax",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "avatax"
}

// SkipIfMissingCredentials skips the test unless sandbox account credentials
// are configured.
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()

	if config.Username == "" || config.Password == "" {
		t.Skip("AVATAX_USERNAME/AVATAX_PASSWORD not set, skipping integration test")
	}
}

// SkipIfMissingClientCredentials skips the test unless OAuth2 client
// credentials are configured.
func (config *TestConfig) SkipIfMissingClientCredentials(t *testing.T) {
	t.Helper()

	if config.ClientID == "" || config.ClientSecret == "" {
		t.Skip("AVATAX_CLIENT_ID/AVATAX_CLIENT_SECRET not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the avatax binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath(config.AvataxPath)
	if err != nil {
		t.Skipf("avatax binary not found at %s, skipping integration test", config.AvataxPath)
	}
}

// NewPasswordClient creates a sandbox client with account credentials.
func (config *TestConfig) NewPasswordClient(t *testing.T) avatax.Client {
	t.Helper()

	client, err := avaclient.New(context.Background(), &avatax.Config{
		Environment: "sandbox",
		Username:    config.Username,
		Password:    config.Password,
		AppName:     "avatax-client-integration",
		AppVersion:  "1.0",
		Debug:       config.Verbose,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// NewClientCredentialsClient creates a sandbox client with OAuth2 client
// credentials.
func (config *TestConfig) NewClientCredentialsClient(t *testing.T) avatax.Client {
	t.Helper()

	client, err := avaclient.New(context.Background(), &avatax.Config{
		Environment:  "sandbox",
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		AppName:      "avatax-client-integration",
		AppVersion:   "1.0",
		Debug:        config.Verbose,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// CommandRunner provides utilities for running avatax commands against an
// isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an avatax command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, runner.config.AvataxPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.AvataxPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login stores the account credentials in the runner's config file.
func (runner *CommandRunner) Login() error {
	_, stderr, err := runner.Run("login",
		"--username", runner.config.Username,
		"--password", runner.config.Password)
	if err != nil {
		return fmt.Errorf("failed to login: %s: %w", stderr, err)
	}

	return nil
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// DecodeJSONOutput decodes command output produced with --output json.
func DecodeJSONOutput(t *testing.T, output string, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), v), "output: %s", output)
}
