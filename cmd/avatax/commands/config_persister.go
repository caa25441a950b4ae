package commands

import (
	"sync"
	"time"
)

// ConfigPersister implements the auth.ConfigPersister interface by writing
// refreshed tokens to the CLI config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateAccessToken stores the client credentials token and its expiry.
func (p *ConfigPersister) UpdateAccessToken(token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	config.CachedToken = token
	if expiresAt.IsZero() {
		config.CachedTokenExpiresAt = nil
	} else {
		config.CachedTokenExpiresAt = &expiresAt
	}

	return saveConfigStruct(config)
}
