package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials      = errors.New("no credentials configured, run 'avatax login' or set AVATAX_USERNAME/AVATAX_PASSWORD")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrSecretsCannotUnset = errors.New("secret fields are cleared with 'avatax logout'")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, use table, json or yaml")
	ErrEmptyBatchFile      = errors.New("batch file contains no transactions")
)
