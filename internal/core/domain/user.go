package domain

import "time"

// User mirrors the persisted representation in the users table.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PasswordAlgo string
	CreatedAt    time.Time
}
