package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/avatax-client/internal/auth"
	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/internal/logging"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("configuration is required")
)

// Client implements the avatax.Client interface.
type Client struct {
	httpClient *http.Client
	logger     avatax.Logger
	debugSink  *os.File

	avatax *pipeline.Pipeline
	iamds  *pipeline.Pipeline

	// Resource clients
	shipping  avatax.ShippingVerificationClient
	age       avatax.AgeVerificationClient
	utilities avatax.UtilitiesClient
	iamdsAPI  avatax.IAMDSClient
}

// hosts are the resolved base URLs of one environment.
type hosts struct {
	avatax   string
	iamds    string
	tokenURL string
}

// resolveHosts picks the hosts of the configured environment and applies the
// overrides.
func resolveHosts(config *avatax.Config) (hosts, error) {
	var resolved hosts

	switch config.Environment {
	case constants.EnvironmentSandbox:
		resolved = hosts{
			avatax:   constants.AvaTaxSandboxHost,
			iamds:    constants.IAMDSSandboxHost,
			tokenURL: constants.IdentitySandboxHost + constants.TokenPath,
		}
	case constants.EnvironmentProduction:
		resolved = hosts{
			avatax:   constants.AvaTaxProductionHost,
			iamds:    constants.IAMDSProductionHost,
			tokenURL: constants.IdentityProductionHost + constants.TokenPath,
		}
	case "":
		if config.BaseURL == "" {
			return hosts{}, &avatax.ConfigurationError{Field: "Environment", Reason: "is required when BaseURL is not set"}
		}

		base := strings.TrimSuffix(config.BaseURL, "/")
		resolved = hosts{avatax: base, iamds: base, tokenURL: base + constants.TokenPath}
	default:
		return hosts{}, &avatax.ConfigurationError{
			Field:  "Environment",
			Reason: fmt.Sprintf("unknown environment %q, want %q or %q", config.Environment, constants.EnvironmentSandbox, constants.EnvironmentProduction),
		}
	}

	if config.BaseURL != "" {
		resolved.avatax = config.BaseURL
	}

	if config.IAMDSBaseURL != "" {
		resolved.iamds = config.IAMDSBaseURL
	}

	if config.TokenURL != "" {
		resolved.tokenURL = config.TokenURL
	}

	return resolved, nil
}

// validateCredentials rejects ambiguous credential combinations.
func validateCredentials(config *avatax.Config) error {
	hasBasic := config.Username != "" || config.Password != ""
	hasToken := config.AccessToken != ""
	hasClient := config.ClientID != "" || config.ClientSecret != ""

	switch {
	case hasBasic && (hasToken || hasClient):
		return &avatax.ConfigurationError{Reason: "username/password cannot be combined with token credentials"}
	case hasBasic && (config.Username == "" || config.Password == ""):
		return &avatax.ConfigurationError{Field: "Password", Reason: "username and password must both be set"}
	case hasToken && hasClient:
		return &avatax.ConfigurationError{Field: "AccessToken", Reason: "cannot be combined with client credentials"}
	case hasClient && (config.ClientID == "" || config.ClientSecret == ""):
		return &avatax.ConfigurationError{Field: "ClientSecret", Reason: auth.ErrMissingClientID.Error()}
	}

	return nil
}

// createLogger returns the configured logger, or a zerolog logger on w.
func createLogger(config *avatax.Config, w io.Writer) avatax.Logger {
	if config.Logger != nil {
		return config.Logger
	}

	if w == nil {
		w = os.Stderr
	}

	return logging.New(w, config.Debug)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *avatax.Config, debugLogger avatax.Logger) []http.Option {
	httpOpts := []http.Option{
		http.WithTimeout(config.HTTPTimeout),
		http.WithUserAgent(appName(config) + "/" + appVersion(config)),
	}

	if debugLogger != nil {
		httpOpts = append(httpOpts, http.WithLogger(debugLogger))
	}

	if config.Debug || config.DebugLogPath != "" {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// createAuthenticator builds the authenticator for the configured credentials.
// It returns nil when no credentials are configured.
func createAuthenticator(config *avatax.Config, tokenURL string, transport http.Transport, clientHeader string, logger avatax.Logger) (pipeline.Authenticator, error) {
	switch {
	case config.Username != "":
		return auth.Basic{Username: config.Username, Password: config.Password}, nil
	case config.AccessToken != "":
		return auth.Bearer{Manager: auth.NewStaticTokenManager(config.AccessToken)}, nil
	case config.ClientID != "":
		scope := config.Scope
		if scope == "" {
			scope = constants.DefaultScope
		}

		manager, err := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     tokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scope:        scope,
			Transport:    transport,
			ClientHeader: clientHeader,
			Store:        config.TokenStore,
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating token manager: %w", err)
		}

		return auth.Bearer{Manager: manager}, nil
	}

	return nil, nil //nolint:nilnil // anonymous access
}

func appName(config *avatax.Config) string {
	if config.AppName != "" {
		return config.AppName
	}

	return constants.DefaultAppName
}

func appVersion(config *avatax.Config) string {
	if config.AppVersion != "" {
		return config.AppVersion
	}

	return constants.DefaultAppVersion
}

func machineName(config *avatax.Config) string {
	if config.MachineName != "" {
		return config.MachineName
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return constants.UnknownMachine
	}

	return hostname
}

// New creates a new AvaTax client. The debug log sink, when configured, is
// opened here so that a bad path fails construction rather than a call. A
// cancelled ctx fails construction before any resource is acquired.
func New(ctx context.Context, config *avatax.Config) (*Client, error) {
	if config == nil {
		return nil, &avatax.ConfigurationError{Reason: ErrConfigRequired.Error()}
	}

	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	resolved, err := resolveHosts(config)
	if err != nil {
		return nil, err
	}

	err = validateCredentials(config)
	if err != nil {
		return nil, err
	}

	client := &Client{}

	var debugLogger avatax.Logger

	if config.DebugLogPath != "" {
		sink, err := logging.OpenDebugSink(config.DebugLogPath)
		if err != nil {
			return nil, err
		}

		client.debugSink = sink
		debugLogger = logging.New(sink, true)
	}

	logWriter := config.DebugWriter
	if logWriter == nil && client.debugSink != nil {
		logWriter = client.debugSink
	}

	client.logger = createLogger(config, logWriter)
	if debugLogger == nil {
		debugLogger = client.logger
	}

	var metrics *pipeline.Metrics

	if config.MetricsRegisterer != nil {
		metrics, err = pipeline.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			_ = client.Close()

			return nil, &avatax.ConfigurationError{Field: "MetricsRegisterer", Reason: err.Error()}
		}
	}

	client.httpClient = http.NewClient(createHTTPClientOptions(config, debugLogger)...)

	machine := machineName(config)
	avataxHeader := pipeline.ClientHeader(appName(config), appVersion(config), constants.ShippingSDKVersion, machine)
	iamdsHeader := pipeline.ClientHeader(appName(config), appVersion(config), constants.IAMDSSDKVersion, machine)

	authenticator, err := createAuthenticator(config, resolved.tokenURL, client.httpClient, avataxHeader, client.logger)
	if err != nil {
		_ = client.Close()

		return nil, &avatax.ConfigurationError{Field: "ClientID", Reason: err.Error()}
	}

	client.avatax = pipeline.New(pipeline.Config{
		BaseURL:      resolved.avatax,
		Transport:    client.httpClient,
		Auth:         authenticator,
		ClientHeader: avataxHeader,
		Logger:       client.logger,
		Metrics:      metrics,
	})
	client.iamds = pipeline.New(pipeline.Config{
		BaseURL:      resolved.iamds,
		Transport:    client.httpClient,
		Auth:         authenticator,
		ClientHeader: iamdsHeader,
		Logger:       client.logger,
		Metrics:      metrics,
	})

	// Initialize resource clients
	client.initializeResourceClients()

	client.logger.Debug("client created", map[string]interface{}{
		"avatax_host": resolved.avatax,
		"iamds_host":  resolved.iamds,
		"environment": config.Environment,
	})

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.shipping = NewShippingVerificationClient(c.avatax)
	c.age = NewAgeVerificationClient(c.avatax)
	c.utilities = NewUtilitiesClient(c.avatax)
	c.iamdsAPI = NewIAMDSClient(c.iamds)
}

// Resource client accessors

// ShippingVerification implements avatax.Client.ShippingVerification.
func (c *Client) ShippingVerification() avatax.ShippingVerificationClient {
	return c.shipping
}

// AgeVerification implements avatax.Client.AgeVerification.
func (c *Client) AgeVerification() avatax.AgeVerificationClient {
	return c.age
}

// Utilities implements avatax.Client.Utilities.
func (c *Client) Utilities() avatax.UtilitiesClient {
	return c.utilities
}

// IAMDS implements avatax.Client.IAMDS.
func (c *Client) IAMDS() avatax.IAMDSClient {
	return c.iamdsAPI
}

// Close implements avatax.Client.Close.
func (c *Client) Close() error {
	if c.debugSink == nil {
		return nil
	}

	err := c.debugSink.Close()
	c.debugSink = nil

	if err != nil {
		return fmt.Errorf("closing debug log: %w", err)
	}

	return nil
}
