package avaclient

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/avatax-client/internal/auth"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSTokenStore is an avatax.TokenStore kept in a NATS JetStream key-value
// bucket. Processes sharing a bucket and key share one OAuth2 token.
type NATSTokenStore struct {
	avatax.TokenStore

	conn *nats.Conn
}

// NATSTokenStoreConfig configures NewNATSTokenStore.
type NATSTokenStoreConfig struct {
	// URL is the NATS server URL. Defaults to nats.DefaultURL.
	URL string
	// Bucket is the key-value bucket, created when missing.
	Bucket string
	// Key is the entry holding the token.
	Key string
	// Options are passed to nats.Connect.
	Options []nats.Option
}

// NewNATSTokenStore connects to NATS and opens the token bucket.
func NewNATSTokenStore(ctx context.Context, config NATSTokenStoreConfig) (*NATSTokenStore, error) {
	url := config.URL
	if url == "" {
		url = nats.DefaultURL
	}

	options := append([]nats.Option{nats.Name("avatax-client token store")}, config.Options...)

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	store, err := auth.OpenNATSStore(ctx, js, config.Bucket, config.Key)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return &NATSTokenStore{TokenStore: store, conn: conn}, nil
}

// NewMemoryTokenStore creates a process-local token store.
func NewMemoryTokenStore() avatax.TokenStore {
	return auth.NewMemoryStore()
}

// Close drains the NATS connection.
func (s *NATSTokenStore) Close() error {
	err := s.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
