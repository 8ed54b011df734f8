package config

import "errors"

var (
	ErrLoad = errors.New("config: failed to load")

	// ErrMailNotConfigured means the service cannot send mail and must not start.
	ErrMailNotConfigured = errors.New("config: mail is not properly configured")

	ErrUnknownMailProvider = errors.New("config: unknown mail provider")
	ErrUnknownDriver       = errors.New("config: unknown database driver")
	ErrMissingDatabaseURL  = errors.New("config: database url is not set")
	ErrMissingServerAddr   = errors.New("config: server address is not set")
)
