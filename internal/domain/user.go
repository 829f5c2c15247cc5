package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an address; emails are unique in that form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
