package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and debug log files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for the shared transport.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for token acquisition.
	ShortHTTPTimeout = 10 * time.Second
)

// Transport retry limits. The pipeline itself never retries; these only apply
// when a caller opts into socket-level retries on the shared transport.
const (
	// DefaultRetryMax disables transport retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3
)

// Environments.
const (
	// EnvironmentSandbox selects the sandbox hosts.
	EnvironmentSandbox = "sandbox"

	// EnvironmentProduction selects the production hosts.
	EnvironmentProduction = "production"
)

// AvaTax REST hosts (Shipping Verification, Age Verification, Utilities).
const (
	AvaTaxSandboxHost    = "https://sandbox-rest.avatax.com"
	AvaTaxProductionHost = "https://rest.avatax.com"
)

// IAMDS hosts.
const (
	IAMDSSandboxHost    = "https://api.sbx.avalara.com/iam"
	IAMDSProductionHost = "https://api.avalara.com/iam"
)

// Avalara identity hosts used for OAuth2 token acquisition.
const (
	IdentitySandboxHost    = "https://ai-sbx.avlr.sh"
	IdentityProductionHost = "https://identity.avalara.com"

	// TokenPath is the token endpoint path on the identity host.
	TokenPath = "/connect/token"
)

// Client identification.
const (
	// ClientHeader carries the client identification string.
	ClientHeader = "X-Avalara-Client"

	// SDKPlatform is the fixed platform tag in the client identification string.
	SDKPlatform = "GoRestClient"

	// ShippingSDKVersion is the version line for the AvaTax shipping and age
	// verification surfaces.
	ShippingSDKVersion = "24.8.2"

	// IAMDSSDKVersion is the version line for the IAMDS surface.
	IAMDSSDKVersion = "2.1.0"

	// DefaultAppName is used when the caller does not identify itself.
	DefaultAppName = "avatax-client"

	// DefaultAppVersion is used when the caller does not identify itself.
	DefaultAppVersion = "dev"

	// UnknownMachine is reported when the hostname cannot be determined.
	UnknownMachine = "unknown"
)

// Content types.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// DefaultTokenStoreKey is the key used for cached tokens.
	DefaultTokenStoreKey = "avatax.token"

	// DefaultTokenBucket is the NATS KV bucket used for shared tokens.
	DefaultTokenBucket = "avatax_tokens"

	// DefaultScope is requested when no scope is configured.
	DefaultScope = "avatax_api"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2
)

// Metrics.
const (
	MetricsNamespace = "avatax"
	MetricsSubsystem = "client"
)
