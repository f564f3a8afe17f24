// File: internal/domain/email.go
package domain

import "time"

// Email is a generated template tied to exactly one assistant message. At
// most one Email exists per originating message; re-generation patches the
// existing row. The row is destroyed automatically when its originating
// message disappears from the transcript.
type Email struct {
	ID                 uint      `json:"-" gorm:"primarykey"`
	PublicID           string    `json:"id" gorm:"uniqueIndex;size:36;not null"`
	OwnerUserID        uint      `json:"-" gorm:"index;not null"`
	ChatID             string    `json:"chat_id" gorm:"index;size:128;not null"`
	AssistantMessageID string    `json:"assistant_message_id" gorm:"index;size:36;not null"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	TSXCode            string    `json:"tsx_code" gorm:"type:text"`
	HTMLCode           string    `json:"html_code" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
