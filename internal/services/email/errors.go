// File: internal/services/email/errors.go
package email

import "fmt"

type ErrorType string

const (
	ErrTypeAuthentication ErrorType = "AUTHENTICATION"
	ErrTypeUnauthorized   ErrorType = "UNAUTHORIZED"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeStore          ErrorType = "STORE"
)

// EmailError is the typed failure surfaced by email artifact operations.
// Missing and foreign-owned records are indistinguishable to the caller.
type EmailError struct {
	Type      ErrorType
	Operation string
	Message   string
	UserID    uint
	Cause     error
}

func (e *EmailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Email %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Email %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *EmailError) Unwrap() error {
	return e.Cause
}

func NewAuthenticationError(operation string) *EmailError {
	return &EmailError{Type: ErrTypeAuthentication, Operation: operation, Message: "authentication required"}
}

func NewUnauthorizedError(operation string, userID uint) *EmailError {
	return &EmailError{
		Type:      ErrTypeUnauthorized,
		Operation: operation,
		Message:   "email not found or unauthorized",
		UserID:    userID,
	}
}

func NewValidationError(operation, msg string) *EmailError {
	return &EmailError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStoreError(operation, msg string, cause error) *EmailError {
	return &EmailError{Type: ErrTypeStore, Operation: operation, Message: msg, Cause: cause}
}
