package auth

import "errors"

// Static errors for err113 compliance.
var (
	ErrNoToken           = errors.New("no access token available")
	ErrNoConfigPersister = errors.New("no config persister configured")
	ErrMissingClientID   = errors.New("client credentials require a client id and secret")
)
