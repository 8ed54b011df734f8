package smtp

import "errors"

var (
	ErrMissingHost     = errors.New("smtp: host is not set")
	ErrMissingPort     = errors.New("smtp: port is not set")
	ErrMissingSender   = errors.New("smtp: sender email is not set")
	ErrMissingPassword = errors.New("smtp: password is not set")
	ErrInvalidTLSMode  = errors.New("smtp: unknown tls mode")

	ErrDial  = errors.New("smtp: failed to open session")
	ErrSend  = errors.New("smtp: failed to send message")
	ErrClose = errors.New("smtp: failed to close session")
)
