package entities

import "time"

// IdentityStatus is the lifecycle state of an identity record.
type IdentityStatus string

const (
	StatusActive   IdentityStatus = "active"
	StatusDisabled IdentityStatus = "disabled"
)

// Identity models a user identity record.
type Identity struct {
	UserID      string         `json:"user_id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Status      IdentityStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsActive reports whether the identity may authenticate and be assigned roles.
func (i Identity) IsActive() bool {
	return i.Status == StatusActive
}
