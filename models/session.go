package models

import "time"

// RevokedSession marks a session token id as logged out until it would have
// expired anyway.
type RevokedSession struct {
	JTI       string    `gorm:"primaryKey;type:varchar(64)" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
