// File: internal/services/template/errors.go
package template

import "fmt"

type ErrorType string

const (
	ErrTypeAuthentication ErrorType = "AUTHENTICATION"
	ErrTypeUnauthorized   ErrorType = "UNAUTHORIZED"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeStore          ErrorType = "STORE"
)

// TemplateError is the typed failure surfaced by template operations.
type TemplateError struct {
	Type      ErrorType
	Operation string
	Message   string
	UserID    uint
	Cause     error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Template %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Template %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

func NewAuthenticationError(operation string) *TemplateError {
	return &TemplateError{Type: ErrTypeAuthentication, Operation: operation, Message: "authentication required"}
}

func NewUnauthorizedError(operation string, userID uint) *TemplateError {
	return &TemplateError{
		Type:      ErrTypeUnauthorized,
		Operation: operation,
		Message:   "template not found or unauthorized",
		UserID:    userID,
	}
}

func NewValidationError(operation, msg string) *TemplateError {
	return &TemplateError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStoreError(operation, msg string, cause error) *TemplateError {
	return &TemplateError{Type: ErrTypeStore, Operation: operation, Message: msg, Cause: cause}
}
