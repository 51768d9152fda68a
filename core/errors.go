package core

import "errors"

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidChallenge   = errors.New("invalid challenge")
	ErrInvalidSubject     = errors.New("invalid subject DID")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrSigningUnavailable = errors.New("signing subsystem unavailable")
)
