package model

import "time"

// User represents a registered customer of the storefront.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	NationalID   string
	Phone        string
	Address      string
	CreatedAt    time.Time
}
