package errors

import "errors"

var (
	ErrInvalidRoleName     = errors.New("invalid role name")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidRoleID       = errors.New("invalid role id")
	ErrInvalidPermission   = errors.New("invalid permission")
	ErrRoleExists          = errors.New("role already exists")
	ErrRoleNotFound        = errors.New("role not found")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
	ErrRoleNotAssigned     = errors.New("role not assigned")
)
