package models

import "time"

// Account represents a registered student account
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
