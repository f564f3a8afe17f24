// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	// CredentialKey carries the caller's opaque token identifier. Absent
	// or empty means the request is anonymous; services decide whether
	// that degrades to an empty read or an authentication failure.
	CredentialKey contextKey = "credential"
)
