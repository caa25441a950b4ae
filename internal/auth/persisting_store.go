package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateAccessToken(token string, expiresAt time.Time) error
}

// PersistingStore wraps a TokenStore and writes every saved token through to
// a ConfigPersister, so a CLI can reuse tokens across invocations.
type PersistingStore struct {
	inner     avatax.TokenStore
	persister ConfigPersister
	logger    avatax.Logger
}

// NewPersistingStore creates a new config-persisting store.
func NewPersistingStore(inner avatax.TokenStore, persister ConfigPersister, logger avatax.Logger) *PersistingStore {
	if inner == nil {
		inner = NewMemoryStore()
	}

	return &PersistingStore{inner: inner, persister: persister, logger: logger}
}

// Load implements avatax.TokenStore.
func (s *PersistingStore) Load(ctx context.Context) (*avatax.Token, error) {
	return s.inner.Load(ctx)
}

// Save implements avatax.TokenStore. Persisting failures are logged, not
// returned, since the token is still usable in this process.
func (s *PersistingStore) Save(ctx context.Context, token *avatax.Token) error {
	err := s.inner.Save(ctx, token)
	if err != nil {
		return err
	}

	if token == nil {
		return nil
	}

	err = s.persist(token)
	if err != nil && s.logger != nil {
		s.logger.Warn("failed to persist refreshed token", map[string]interface{}{"error": err.Error()})
	}

	return nil
}

func (s *PersistingStore) persist(token *avatax.Token) error {
	if s.persister == nil {
		return ErrNoConfigPersister
	}

	err := s.persister.UpdateAccessToken(token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}

	return nil
}
