// File: internal/domain/message.go
package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Part kinds this service understands. Anything else is carried through
// untouched via the raw payload.
const (
	PartTypeText           = "text"
	PartTypeToolInvocation = "tool-invocation"
	PartTypeToolResult     = "tool-result"
)

// MessagePart is one entry of a message's ordered content. Only "text"
// parts are ever interpreted (for title derivation); unrecognized shapes
// round-trip through storage byte for byte.
type MessagePart struct {
	Type string
	Text string

	raw json.RawMessage
}

// NewTextPart builds a plain text part.
func NewTextPart(text string) MessagePart {
	return MessagePart{Type: PartTypeText, Text: text}
}

func (p *MessagePart) UnmarshalJSON(data []byte) error {
	p.raw = append(p.raw[:0], data...)
	var known struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	p.Type = known.Type
	p.Text = known.Text
	return nil
}

func (p MessagePart) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	}{Type: p.Type, Text: p.Text})
}

// Message represents a single transcript entry within a chat. MessageID is
// the client-visible identifier, unique per chat; PublicID is the storage
// reference handed back to clients so they can link artifacts to it.
type Message struct {
	ID          uint           `gorm:"primarykey"`
	PublicID    string         `gorm:"uniqueIndex;size:36;not null"`
	ChatID      string         `gorm:"size:128;not null;index;uniqueIndex:idx_messages_chat_message,priority:1"`
	MessageID   string         `gorm:"size:191;not null;uniqueIndex:idx_messages_chat_message,priority:2"`
	OwnerUserID uint           `gorm:"index;not null"`
	Role        string         `gorm:"size:32"`
	Parts       datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IncomingMessage is one transcript entry as supplied by the client to a
// sync call. The full incoming list is authoritative, not a delta. CreatedAt
// is kept raw because clients send it as an epoch number, a date string, or
// not at all.
type IncomingMessage struct {
	ID        string          `json:"id,omitempty"`
	Role      string          `json:"role"`
	Parts     []MessagePart   `json:"parts"`
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
}
