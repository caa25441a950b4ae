package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Static errors for err113 compliance.
var (
	ErrNotAuthenticated  = errors.New("the service did not accept the credentials")
	ErrUsernameRequired  = errors.New("username is required")
	ErrClientIDAndSecret = errors.New("client secret is required with --client-id")
)

// loginCredentials are the credentials given on the command line or prompted.
type loginCredentials struct {
	username     string
	password     string
	accessToken  string
	clientID     string
	clientSecret string
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var creds loginCredentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to AvaTax",
		Long: `Store AvaTax credentials after checking them against the ping endpoint.

Exactly one kind of credential is stored: a username and password, a bearer
token (--access-token), or OAuth2 client credentials (--client-id).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := creds.complete()
			if err != nil {
				return err
			}

			creds.apply(config)

			ctx := context.Background()

			client, err := createClient(ctx, config, true)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer func() { _ = client.Close() }()

			result, err := client.Utilities().Ping(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to AvaTax: %w", err)
			}

			if !result.Authenticated {
				return ErrNotAuthenticated
			}

			// The token fetched by the ping was written to the config by the
			// token store.
			cached := loadConfig()
			config.CachedToken = cached.CachedToken
			config.CachedTokenExpiresAt = cached.CachedTokenExpiresAt

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			return outputResult(result, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s\n", orNotAvailable(config.Environment))

				return renderProperties(pingRows(result))
			})
		},
	}

	cmd.Flags().StringVarP(&creds.username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&creds.accessToken, "access-token", "", "pre-issued bearer token")
	cmd.Flags().StringVar(&creds.clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&creds.clientSecret, "client-secret", "", "OAuth2 client secret (prompted when omitted)")

	return cmd
}

// complete prompts for whatever the flags left out.
func (c *loginCredentials) complete() error {
	switch {
	case c.accessToken != "":
		return nil
	case c.clientID != "":
		if c.clientSecret == "" {
			secret, err := promptSecret("Client secret: ")
			if err != nil {
				return err
			}

			c.clientSecret = secret
		}

		if c.clientSecret == "" {
			return ErrClientIDAndSecret
		}

		return nil
	}

	if c.username == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Username: ")
		username, _ := reader.ReadString('\n')
		c.username = strings.TrimSpace(username)
	}

	if c.username == "" {
		return ErrUsernameRequired
	}

	if c.password == "" {
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		c.password = password
	}

	return nil
}

// apply replaces the stored credentials with c.
func (c *loginCredentials) apply(config *Config) {
	config.ClearCredentials()

	config.Username = c.username
	config.Password = c.password
	config.AccessToken = c.accessToken
	config.ClientID = c.clientID
	config.ClientSecret = c.clientSecret
}

func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	fmt.Println()

	return string(secret), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from AvaTax",
		Long:  "Remove stored credentials and cached tokens from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.ClearCredentials()

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}
