// File: internal/services/transcript/errors.go
package transcript

import "fmt"

type ErrorType string

const (
	ErrTypeAuthentication ErrorType = "AUTHENTICATION"
	ErrTypeUnauthorized   ErrorType = "UNAUTHORIZED"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeStore          ErrorType = "STORE"
)

// TranscriptError is the typed failure surfaced by transcript operations.
// A missing record and a record owned by someone else both map to
// ErrTypeUnauthorized so callers cannot probe for existence.
type TranscriptError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    string
	UserID    uint
	Cause     error
}

func (e *TranscriptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Transcript %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Transcript %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *TranscriptError) Unwrap() error {
	return e.Cause
}

func NewAuthenticationError(operation string) *TranscriptError {
	return &TranscriptError{Type: ErrTypeAuthentication, Operation: operation, Message: "authentication required"}
}

func NewUnauthorizedError(userID uint, chatID string) *TranscriptError {
	return &TranscriptError{
		Type:      ErrTypeUnauthorized,
		Operation: "authorization",
		Message:   "record not found or unauthorized",
		UserID:    userID,
		ChatID:    chatID,
	}
}

func NewValidationError(operation, msg string) *TranscriptError {
	return &TranscriptError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStoreError(operation, msg string, cause error) *TranscriptError {
	return &TranscriptError{Type: ErrTypeStore, Operation: operation, Message: msg, Cause: cause}
}
