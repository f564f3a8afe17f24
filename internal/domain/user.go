// File: internal/domain/user.go
package domain

import "time"

// User anchors ownership of chats, messages, emails and templates. It is
// created lazily the first time an authenticated caller performs a write,
// keyed by the opaque credential handed to us by the identity provider.
type User struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	TokenIdentifier string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
