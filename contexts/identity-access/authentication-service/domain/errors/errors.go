package errors

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrWeakPassword         = errors.New("password too short")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCredentialExists     = errors.New("credential already registered")
	ErrCredentialNotFound   = errors.New("credential not found")
	ErrIdentityNotFound     = errors.New("identity not found")
	ErrIdentityInactive     = errors.New("identity inactive")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrMissingSecret        = errors.New("signing secret is required")
)
