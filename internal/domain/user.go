package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	PhoneNumber  string
	CreatedAt    time.Time
}
