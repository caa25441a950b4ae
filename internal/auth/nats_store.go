package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStore keeps a token in a NATS JetStream key-value bucket, so that
// several processes sharing one set of client credentials reuse one token.
type NATSStore struct {
	kv  jetstream.KeyValue
	key string
}

// NewNATSStore creates a store on an existing bucket. An empty key selects
// the default key.
func NewNATSStore(kv jetstream.KeyValue, key string) *NATSStore {
	if key == "" {
		key = constants.DefaultTokenStoreKey
	}

	return &NATSStore{kv: kv, key: key}
}

// OpenNATSStore creates or updates bucket and returns a store on it.
func OpenNATSStore(ctx context.Context, js jetstream.JetStream, bucket, key string) (*NATSStore, error) {
	if bucket == "" {
		bucket = constants.DefaultTokenBucket
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "avatax client access tokens",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("opening token bucket %s: %w", bucket, err)
	}

	return NewNATSStore(kv, key), nil
}

// Load implements avatax.TokenStore.
func (s *NATSStore) Load(ctx context.Context) (*avatax.Token, error) {
	entry, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading token %s: %w", s.key, err)
	}

	var token avatax.Token

	err = json.Unmarshal(entry.Value(), &token)
	if err != nil {
		return nil, fmt.Errorf("decoding token %s: %w", s.key, err)
	}

	return &token, nil
}

// Save implements avatax.TokenStore.
func (s *NATSStore) Save(ctx context.Context, token *avatax.Token) error {
	if token == nil {
		err := s.kv.Delete(ctx, s.key)
		if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return fmt.Errorf("deleting token %s: %w", s.key, err)
		}

		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	_, err = s.kv.Put(ctx, s.key, data)
	if err != nil {
		return fmt.Errorf("writing token %s: %w", s.key, err)
	}

	return nil
}
