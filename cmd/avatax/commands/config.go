package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".avatax"
	configFileName = "config.yml"
)

// Config represents the CLI configuration.
type Config struct {
	Environment  string `json:"environment,omitempty"    yaml:"environment,omitempty"`
	BaseURL      string `json:"base_url,omitempty"       yaml:"base_url,omitempty"`
	IAMDSBaseURL string `json:"iamds_base_url,omitempty" yaml:"iamds_base_url,omitempty"`
	TokenURL     string `json:"token_url,omitempty"      yaml:"token_url,omitempty"`

	Username     string `json:"username,omitempty"      yaml:"username,omitempty"`
	Password     string `json:"password,omitempty"      yaml:"password,omitempty"`
	AccessToken  string `json:"access_token,omitempty"  yaml:"access_token,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Scope        string `json:"scope,omitempty"         yaml:"scope,omitempty"`

	AppName     string `json:"app_name,omitempty"     yaml:"app_name,omitempty"`
	AppVersion  string `json:"app_version,omitempty"  yaml:"app_version,omitempty"`
	MachineName string `json:"machine_name,omitempty" yaml:"machine_name,omitempty"`

	Output       string `json:"output,omitempty"         yaml:"output,omitempty"`
	DebugLogPath string `json:"debug_log_path,omitempty" yaml:"debug_log_path,omitempty"`

	// Shared token cache. When NATSURL is empty, client credential tokens are
	// cached in this file.
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	NATSBucket string `json:"nats_bucket,omitempty" yaml:"nats_bucket,omitempty"`

	CachedToken          string     `json:"cached_token,omitempty"            yaml:"cached_token,omitempty"`
	CachedTokenExpiresAt *time.Time `json:"cached_token_expires_at,omitempty" yaml:"cached_token_expires_at,omitempty"`
}

// secretKeys are masked by config show and cleared by logout.
var secretKeys = []string{"password", "access_token", "client_secret", "cached_token"}

// stringFields maps configuration keys to their fields.
func (c *Config) stringFields() map[string]*string {
	return map[string]*string{
		"environment":    &c.Environment,
		"base_url":       &c.BaseURL,
		"iamds_base_url": &c.IAMDSBaseURL,
		"token_url":      &c.TokenURL,
		"username":       &c.Username,
		"password":       &c.Password,
		"access_token":   &c.AccessToken,
		"client_id":      &c.ClientID,
		"client_secret":  &c.ClientSecret,
		"scope":          &c.Scope,
		"app_name":       &c.AppName,
		"app_version":    &c.AppVersion,
		"machine_name":   &c.MachineName,
		"output":         &c.Output,
		"debug_log_path": &c.DebugLogPath,
		"nats_url":       &c.NATSURL,
		"nats_bucket":    &c.NATSBucket,
		"cached_token":   &c.CachedToken,
	}
}

// Keys returns the settable configuration keys in display order.
func (c *Config) Keys() []string {
	return []string{
		"environment", "base_url", "iamds_base_url", "token_url",
		"username", "password", "access_token", "client_id", "client_secret", "scope",
		"app_name", "app_version", "machine_name",
		"output", "debug_log_path", "nats_url", "nats_bucket",
	}
}

// Set assigns a configuration value.
func (c *Config) Set(key, value string) error {
	if key == "output" && !slices.Contains([]string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML}, value) {
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, value)
	}

	field, ok := c.stringFields()[key]
	if !ok || key == "cached_token" {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	*field = value

	return nil
}

// Unset clears a configuration value. Secrets are cleared by logout.
func (c *Config) Unset(key string) error {
	if slices.Contains(secretKeys, key) {
		return fmt.Errorf("%w: %s", constants.ErrSecretsCannotUnset, key)
	}

	field, ok := c.stringFields()[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	*field = ""

	return nil
}

// ClearCredentials removes every stored credential and cached token.
func (c *Config) ClearCredentials() {
	c.Username = ""
	c.Password = ""
	c.AccessToken = ""
	c.ClientID = ""
	c.ClientSecret = ""
	c.CachedToken = ""
	c.CachedTokenExpiresAt = nil
}

// Masked returns a copy with secrets replaced by a placeholder.
func (c *Config) Masked() *Config {
	masked := *c

	fields := masked.stringFields()
	for _, key := range secretKeys {
		*fields[key] = maskSecret(*fields[key])
	}

	return &masked
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the AvaTax CLI configuration stored in $HOME/.avatax/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			return outputResult(config, func() error {
				return displayConfigTable(config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value, e.g. 'avatax config set environment sandbox'",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := config.Set(key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if slices.Contains(secretKeys, key) {
				value = constants.MaskedSecret
			}

			return outputConfigUpdateResult("Set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Credentials are removed with 'avatax logout'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := config.Unset(key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult("Unset", key, "")
		},
	}
}

// loadConfig reads the configuration from viper, which merges the config
// file, AVATAX_* environment variables and bound flags.
func loadConfig() *Config {
	config := &Config{}

	for key, field := range config.stringFields() {
		*field = viper.GetString(key)
	}

	if viper.IsSet("cached_token_expires_at") {
		expiresAt := viper.GetTime("cached_token_expires_at")
		if !expiresAt.IsZero() {
			config.CachedTokenExpiresAt = &expiresAt
		}
	}

	return config
}

// configFilePath returns the file in use, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, configDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, configFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep viper in step so later reads in this process see the new values.
	for key, field := range config.stringFields() {
		viper.Set(key, *field)
	}

	if config.CachedTokenExpiresAt != nil {
		viper.Set("cached_token_expires_at", *config.CachedTokenExpiresAt)
	} else {
		viper.Set("cached_token_expires_at", nil)
	}

	return nil
}

func displayConfigTable(config *Config) error {
	fields := config.stringFields()

	rows := make([][]string, 0, len(fields))
	for _, key := range config.Keys() {
		if *fields[key] != "" {
			rows = append(rows, []string{key, *fields[key]})
		}
	}

	if config.CachedToken != "" {
		expires := constants.NotAvailable
		if config.CachedTokenExpiresAt != nil {
			expires = config.CachedTokenExpiresAt.Format(time.RFC3339)
		}

		rows = append(rows, []string{"cached_token_expires_at", expires})
	}

	return renderProperties(rows)
}

func outputConfigUpdateResult(action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return outputResult(result, func() error {
		rows := [][]string{{"Action", action}, {"Key", key}}
		if value != "" {
			rows = append(rows, []string{"Value", value})
		}

		return renderProperties(rows)
	})
}
