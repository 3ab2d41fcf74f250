// Package models holds the records persisted by the storage layer.
package models

import "time"

// Credential is one row of the users table. PasswordHash is a bcrypt hash;
// the plaintext password never reaches this type.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
