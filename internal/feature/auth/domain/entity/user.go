// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account. Password always holds the
// bcrypt hash, never the plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
