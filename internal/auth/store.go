package auth

import (
	"context"
	"sync"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// MemoryStore keeps a token in process memory.
type MemoryStore struct {
	mutex sync.RWMutex
	token *avatax.Token
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored token, or nil.
func (s *MemoryStore) Get() *avatax.Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.token == nil {
		return nil
	}

	token := *s.token

	return &token
}

// Set replaces the stored token.
func (s *MemoryStore) Set(token *avatax.Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token == nil {
		s.token = nil

		return
	}

	stored := *token
	s.token = &stored
}

// Clear removes the stored token.
func (s *MemoryStore) Clear() {
	s.Set(nil)
}

// Load implements avatax.TokenStore.
func (s *MemoryStore) Load(ctx context.Context) (*avatax.Token, error) {
	return s.Get(), nil
}

// Save implements avatax.TokenStore.
func (s *MemoryStore) Save(ctx context.Context, token *avatax.Token) error {
	s.Set(token)

	return nil
}
