package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/auth"
	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer issues client_credentials tokens and counts requests.
type tokenServer struct {
	*httptest.Server

	requests  atomic.Int32
	expiresIn int
}

func newTokenServer(t *testing.T, expiresIn int) *tokenServer {
	t.Helper()

	ts := &tokenServer{expiresIn: expiresIn}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := ts.requests.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/connect/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "my-app; 1.0; GoRestClient; 24.8.2; host", r.Header.Get("X-Avalara-Client"))

		clientID, clientSecret, ok := r.BasicAuth()
		if !ok || clientID != "client-id" || clientSecret != "client-secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"unknown client"}`))

			return
		}

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "avatax_api", r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-" + string(rune('0'+n)),
			"token_type":   "Bearer",
			"expires_in":   ts.expiresIn,
			"scope":        "avatax_api",
		})
	}))
	t.Cleanup(ts.Close)

	return ts
}

func newManager(t *testing.T, ts *tokenServer, secret string, store avatax.TokenStore) *auth.OAuth2TokenManager {
	t.Helper()

	manager, err := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     ts.URL + "/connect/token",
		ClientID:     "client-id",
		ClientSecret: secret,
		Scope:        "avatax_api",
		Transport:    avahttp.NewClient(),
		ClientHeader: "my-app; 1.0; GoRestClient; 24.8.2; host",
		Store:        store,
	})
	require.NoError(t, err)

	return manager
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOAuth2TokenManager(t *testing.T) {
	t.Parallel()

	t.Run("fetches and caches a token", func(t *testing.T) {
		t.Parallel()

		ts := newTokenServer(t, 3600)
		store := auth.NewMemoryStore()
		manager := newManager(t, ts, "client-secret", store)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "token-1", token)

		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, int32(1), ts.requests.Load())

		stored := store.Get()
		require.NotNil(t, stored)
		assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Minute)
	})

	t.Run("refetches tokens inside the expiry buffer", func(t *testing.T) {
		t.Parallel()

		ts := newTokenServer(t, 10)
		manager := newManager(t, ts, "client-secret", nil)

		first, err := manager.GetToken(context.Background())
		require.NoError(t, err)

		second, err := manager.GetToken(context.Background())
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, int32(2), ts.requests.Load())
	})

	t.Run("uses a token already in the store", func(t *testing.T) {
		t.Parallel()

		store := auth.NewMemoryStore()
		store.Set(&avatax.Token{AccessToken: "preset", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)})

		ts := newTokenServer(t, 3600)
		manager := newManager(t, ts, "client-secret", store)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "preset", token)
		assert.Equal(t, int32(0), ts.requests.Load())
	})

	t.Run("rejected credentials carry the OAuth error", func(t *testing.T) {
		t.Parallel()

		ts := newTokenServer(t, 3600)
		manager := newManager(t, ts, "wrong-secret", nil)

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, avatax.StatusCode(err))

		detail, ok := avatax.ErrorDetail[avatax.OAuthError](err)
		require.True(t, ok)
		assert.Equal(t, "invalid_client", detail.Error)
		assert.Equal(t, "unknown client", detail.ErrorDescription)
	})

	t.Run("token requests are bounded by the timeout", func(t *testing.T) {
		t.Parallel()

		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer slow.Close()

		manager, err := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     slow.URL + "/connect/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Transport:    avahttp.NewClient(),
			Timeout:      50 * time.Millisecond,
		})
		require.NoError(t, err)

		start := time.Now()
		_, err = manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Zero(t, avatax.StatusCode(err))
		assert.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("requires client credentials", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewOAuth2TokenManager(&auth.OAuth2Config{ClientID: "client-id"})
		require.ErrorIs(t, err, auth.ErrMissingClientID)
	})
}
