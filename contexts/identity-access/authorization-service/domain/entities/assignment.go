package entities

import "time"

// Assignment links a user to a role.
type Assignment struct {
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"user_id"`
	RoleID       string    `json:"role_id"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// Decision is the outcome of a permission check.
type Decision struct {
	UserID     string    `json:"user_id"`
	Permission string    `json:"permission"`
	Allowed    bool      `json:"allowed"`
	Reason     string    `json:"reason"`
	CheckedAt  time.Time `json:"checked_at"`
}
