// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered account. Password holds the salted scrypt hash.
// ExternalID is the identity provider subject for provider-managed accounts
// and nil for local ones.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	ExternalID *string   `gorm:"size:255;uniqueIndex" json:"-"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	IsAdmin    bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt  time.Time `json:"-"`
}

// Session is a server-side login session.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}
