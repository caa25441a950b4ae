package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/internal/pipeline"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

var tokenDescriptor = &pipeline.Descriptor{
	Name:   "OAuth.Token",
	Method: http.MethodPost,
	Path:   "",
	Params: []pipeline.ParamSpec{
		{Name: "grant_type", In: pipeline.InForm, Required: true, Enum: []string{"client_credentials"}},
		{Name: "scope", In: pipeline.InForm},
	},
	Consumes: []string{constants.ContentTypeForm},
	Produces: []string{constants.ContentTypeJSON},
	Returns:  pipeline.JSON[avatax.Token](),
	Responses: map[int]pipeline.Decode{
		http.StatusBadRequest:   pipeline.JSON[avatax.OAuthError](),
		http.StatusUnauthorized: pipeline.JSON[avatax.OAuthError](),
	},
}

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	// TokenURL is the full token endpoint URL.
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
	// Transport sends the token requests.
	Transport avahttp.Transport
	// ClientHeader is sent as X-Avalara-Client.
	ClientHeader string
	// Store caches tokens. Defaults to a MemoryStore.
	Store avatax.TokenStore
	// Logger receives token lifecycle events. Optional.
	Logger avatax.Logger
	// Timeout bounds each token request. Defaults to constants.ShortHTTPTimeout.
	Timeout time.Duration
}

// OAuth2TokenManager fetches client_credentials tokens through the request
// pipeline and caches them until shortly before they expire.
type OAuth2TokenManager struct {
	pipeline *pipeline.Pipeline
	scope    string
	store    avatax.TokenStore
	logger   avatax.Logger
	timeout  time.Duration
	mutex    sync.Mutex
	now      func() time.Time
}

// NewOAuth2TokenManager creates a new token manager.
func NewOAuth2TokenManager(config *OAuth2Config) (*OAuth2TokenManager, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, ErrMissingClientID
	}

	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.ShortHTTPTimeout
	}

	return &OAuth2TokenManager{
		pipeline: pipeline.New(pipeline.Config{
			BaseURL:      config.TokenURL,
			Transport:    config.Transport,
			Auth:         Basic{Username: config.ClientID, Password: config.ClientSecret},
			ClientHeader: config.ClientHeader,
			Logger:       config.Logger,
		}),
		scope:   config.Scope,
		store:   store,
		logger:  config.Logger,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

// GetToken returns a cached token, fetching a new one when the cached token
// is missing or about to expire.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, err := m.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("loading cached token: %w", err)
	}

	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err = m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) (*avatax.Token, error) {
	form := map[string]any{"grant_type": "client_credentials"}
	if m.scope != "" {
		form["scope"] = m.scope
	}

	fetchCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	token, err := pipeline.Call[avatax.Token](fetchCtx, m.pipeline, tokenDescriptor, pipeline.Args{Form: form})
	if err != nil {
		return nil, fmt.Errorf("requesting access token: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = m.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	err = m.store.Save(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("storing access token: %w", err)
	}

	if m.logger != nil {
		m.logger.Debug("access token refreshed", map[string]interface{}{
			"expires_at": token.ExpiresAt,
			"scope":      token.Scope,
		})
	}

	return token, nil
}
