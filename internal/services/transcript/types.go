// File: internal/services/transcript/types.go
package transcript

import (
	"time"

	"github.com/avelar/draftmail/internal/domain"
)

// Logger is the logging interface used across transcript services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SyncedMessage pairs a client-local message identifier with its persisted
// storage reference so the caller can correlate the two.
type SyncedMessage struct {
	ID         string               `json:"id"`
	StorageRef string               `json:"dbId"`
	Role       string               `json:"role"`
	Parts      []domain.MessagePart `json:"parts"`
}

// SyncResult is the outcome of one reconciliation call.
type SyncResult struct {
	Inserted []SyncedMessage `json:"inserted"`
}

// MessageView is one transcript entry as returned to readers.
type MessageView struct {
	ID        string               `json:"id"`
	Role      string               `json:"role"`
	Parts     []domain.MessagePart `json:"parts"`
	CreatedAt time.Time            `json:"createdAt"`
}
