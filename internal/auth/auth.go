// Package auth attaches credentials to API requests: HTTP Basic for
// username/password accounts, static bearer tokens, and OAuth2 client
// credentials tokens cached in an avatax.TokenStore.
package auth

import (
	"context"
	"encoding/base64"
	"net/http"
)

// TokenManager provides bearer tokens.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Basic authenticates with a username and password.
type Basic struct {
	Username string
	Password string
}

// Authorize sets the Basic Authorization header.
func (b Basic) Authorize(ctx context.Context, header http.Header) error {
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(b.Username+":"+b.Password)))

	return nil
}

// Bearer authenticates with tokens from a TokenManager.
type Bearer struct {
	Manager TokenManager
}

// Authorize sets the Bearer Authorization header.
func (b Bearer) Authorize(ctx context.Context, header http.Header) error {
	token, err := b.Manager.GetToken(ctx)
	if err != nil {
		return err
	}

	header.Set("Authorization", "Bearer "+token)

	return nil
}

// StaticTokenManager serves a fixed, pre-issued token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager for token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}
