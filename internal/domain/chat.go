// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is the placeholder title a chat keeps until a user
// message provides something better.
const DefaultChatTitle = "New chat"

// Chat represents a single conversation thread. The ChatID string is
// supplied by the client and is globally unique; exactly one Chat row
// exists per ChatID.
type Chat struct {
	ID            uint      `json:"-" gorm:"primarykey"`
	ChatID        string    `json:"chat_id" gorm:"uniqueIndex;size:128;not null"`
	OwnerUserID   uint      `json:"-" gorm:"index;not null"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}
