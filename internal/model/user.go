// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// Email is the login key and carries a UNIQUE constraint in the store —
// registering the same address twice must fail at write time, never
// silently create a second account.
//
// WHY json:"-" ON PasswordHash?
// The hash is write-only data: it's compared (never decoded) at login and
// must never leave the server. Tagging it "-" means encoding/json skips it
// entirely, so no handler can leak it by accident.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt output, never serialized
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
