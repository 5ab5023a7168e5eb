package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrEmailTaken       = errors.New("email already registered")
	ErrIdentityNotFound = errors.New("identity not found")
)
