package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity and credentials",
		Long:  "Call the AvaTax ping endpoint and report the service version and how the call was authenticated",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx, loadConfig(), false)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.Utilities().Ping(ctx)
			if err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			return outputResult(result, func() error {
				return renderProperties(pingRows(result))
			})
		},
	}
}

func pingRows(result *avatax.PingResult) [][]string {
	rows := [][]string{
		{"Version", orNotAvailable(result.Version)},
		{"Authenticated", formatBool(result.Authenticated)},
		{"Authentication Type", orNotAvailable(result.AuthenticationType)},
	}

	if result.AuthenticatedUserName != "" {
		rows = append(rows, []string{"User", result.AuthenticatedUserName})
	}

	if result.AuthenticatedAccountID != 0 {
		rows = append(rows, []string{"Account ID", strconv.FormatInt(result.AuthenticatedAccountID, 10)})
	}

	return rows
}
