package entities

import "time"

// Credential links a user identity to a password hash. The hash is in
// PHC string format; the plaintext never leaves the application layer.
type Credential struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
