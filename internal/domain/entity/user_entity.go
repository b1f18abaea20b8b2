package entity

import "time"

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash; the plaintext never leaves the register
// and login request handlers.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
