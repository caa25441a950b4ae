package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/avatax-client/cmd/avatax/commands"
	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "avatax",
	Short: "AvaTax shipping, age verification and identity CLI",
	Long: `A command-line interface for the Avalara AvaTax REST API.

It verifies and registers shipments, verifies ages, and manages users and
groups in the Avalara identity service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.avatax/config.yml)")
	rootCmd.PersistentFlags().StringP("environment", "e", "", "environment (sandbox or production)")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "log HTTP requests and responses")
	rootCmd.PersistentFlags().String("debug-log", "", "write debug records to this file")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("environment"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("debug_log_path", rootCmd.PersistentFlags().Lookup("debug-log"))

	viper.SetDefault("environment", constants.EnvironmentSandbox)
	viper.SetDefault("app_name", "avatax-cli")
	viper.SetDefault("app_version", version)

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewShippingCommand())
	rootCmd.AddCommand(commands.NewAgeCommand())
	rootCmd.AddCommand(commands.NewIAMDSCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".avatax")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.avatax/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// AVATAX_USERNAME, AVATAX_CLIENT_ID, ...
	viper.SetEnvPrefix("AVATAX")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
