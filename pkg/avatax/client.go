package avatax

import (
	"context"
	"io"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/prometheus/client_golang/prometheus"
)

// Empty is the result type of operations whose success response carries no body.
type Empty = struct{}

// ShippingVerificationClient covers the shipment verification and registration
// endpoints of AvaTax.
type ShippingVerificationClient interface {
	DeregisterShipment(ctx context.Context, req *ShipmentRequest) error
	DeregisterShipmentAsync(ctx context.Context, req *ShipmentRequest) *Future[Empty]
	RegisterShipment(ctx context.Context, req *ShipmentRequest) error
	RegisterShipmentAsync(ctx context.Context, req *ShipmentRequest) *Future[Empty]
	RegisterShipmentIfCompliant(ctx context.Context, req *ShipmentRequest) (*ShippingVerifyResult, error)
	RegisterShipmentIfCompliantAsync(ctx context.Context, req *ShipmentRequest) *Future[*ShippingVerifyResult]
	VerifyShipment(ctx context.Context, req *ShipmentRequest) (*ShippingVerifyResult, error)
	VerifyShipmentAsync(ctx context.Context, req *ShipmentRequest) *Future[*ShippingVerifyResult]
}

// AgeVerificationClient covers the age verification endpoint of AvaTax.
type AgeVerificationClient interface {
	// VerifyAge checks whether the person described by req is of age. A
	// non-empty simulatedFailureCode makes the sandbox fail with that code.
	VerifyAge(ctx context.Context, req *AgeVerifyRequest, simulatedFailureCode AgeVerifyFailureCode) (*AgeVerifyResult, error)
	VerifyAgeAsync(ctx context.Context, req *AgeVerifyRequest, simulatedFailureCode AgeVerifyFailureCode) *Future[*AgeVerifyResult]
}

// UtilitiesClient covers the AvaTax utility endpoints.
type UtilitiesClient interface {
	Ping(ctx context.Context) (*PingResult, error)
	PingAsync(ctx context.Context) *Future[*PingResult]
}

// UsersClient covers IAMDS user management.
type UsersClient interface {
	List(ctx context.Context, opts *ListOptions) (*UserList, error)
	ListAsync(ctx context.Context, opts *ListOptions) *Future[*UserList]
	Get(ctx context.Context, userID string) (*User, error)
	GetAsync(ctx context.Context, userID string) *Future[*User]
	Create(ctx context.Context, user *User) (*User, error)
	CreateAsync(ctx context.Context, user *User) *Future[*User]
	Delete(ctx context.Context, userID string) error
	DeleteAsync(ctx context.Context, userID string) *Future[Empty]
}

// GroupsClient covers IAMDS group management.
type GroupsClient interface {
	List(ctx context.Context, opts *ListOptions) (*GroupList, error)
	ListAsync(ctx context.Context, opts *ListOptions) *Future[*GroupList]
	Get(ctx context.Context, groupID string) (*Group, error)
	GetAsync(ctx context.Context, groupID string) *Future[*Group]
	ListMembers(ctx context.Context, groupID string, opts *ListOptions) (*MemberList, error)
	ListMembersAsync(ctx context.Context, groupID string, opts *ListOptions) *Future[*MemberList]
}

// IAMDSClient provides access to the identity and access management service.
type IAMDSClient interface {
	Users() UsersClient
	Groups() GroupsClient
}

// Client is the root of the API. It is safe for concurrent use.
type Client interface {
	ShippingVerification() ShippingVerificationClient
	AgeVerification() AgeVerificationClient
	Utilities() UtilitiesClient
	IAMDS() IAMDSClient

	// Close releases the debug log sink, if one was opened.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Token is an OAuth2 access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Scope       string    `json:"scope,omitempty"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be used, keeping a 30 second
// margin before expiry.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore persists OAuth2 tokens between calls, and optionally between
// processes.
type TokenStore interface {
	// Load returns the stored token, or nil when none is stored.
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
}

// Config represents client configuration for building an avatax.Client.
//
// # Authentication
//
// Exactly one credential kind may be configured:
//  1. Username/Password: sent as HTTP Basic auth on every call.
//  2. AccessToken: sent as a static Bearer token.
//  3. ClientID/ClientSecret: an OAuth2 client_credentials token is fetched
//     from TokenURL and cached in TokenStore.
//
// Configuring Basic credentials together with any token credential is a
// ConfigurationError. With no credentials, requests are sent anonymously.
//
// # Environment
//
// Environment selects the fixed AvaTax, IAMDS and identity hosts and must be
// "sandbox" or "production". BaseURL and IAMDSBaseURL override the selected
// hosts, which is how tests point the client at a local server.
type Config struct {
	// Environment is "sandbox" or "production".
	Environment string
	// BaseURL overrides the AvaTax host.
	BaseURL string
	// IAMDSBaseURL overrides the IAMDS host.
	IAMDSBaseURL string

	// Username and Password enable HTTP Basic auth.
	Username string
	Password string
	// AccessToken is a pre-issued bearer token.
	AccessToken string
	// ClientID and ClientSecret enable the OAuth2 client_credentials grant.
	ClientID     string
	ClientSecret string
	// TokenURL overrides the identity token endpoint.
	TokenURL string
	// Scope is the OAuth2 scope requested with client credentials.
	Scope string
	// TokenStore caches OAuth2 tokens. Defaults to an in-memory store.
	TokenStore TokenStore

	// AppName, AppVersion and MachineName identify the caller in the
	// X-Avalara-Client header. MachineName defaults to the host name.
	AppName     string
	AppVersion  string
	MachineName string

	// HTTPTimeout bounds every request on the shared transport.
	HTTPTimeout time.Duration
	// RetryMax enables transport level retries. The default of 0 means every
	// failure is surfaced to the caller as is.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request and response logging.
	Debug bool
	// DebugLogPath names a file that receives debug records. It is opened
	// when the client is built.
	DebugLogPath string
	// Logger receives client logs. Defaults to a zerolog logger on stderr,
	// or on the debug log file when DebugLogPath is set.
	Logger Logger
	// DebugWriter is used instead of stderr when no Logger is given.
	DebugWriter io.Writer

	// MetricsRegisterer receives the call counters and latency histograms.
	// Metrics are disabled when nil.
	MetricsRegisterer prometheus.Registerer
}

// OAuthError is the documented error payload of the identity token endpoint.
type OAuthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}
