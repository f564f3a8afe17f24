package user_services

import "errors"

// Logger is the logging interface used by identity services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ErrAuthenticationRequired means no caller credential was presented.
// Mutating operations surface it to the caller; ownership-free reads
// degrade to an empty result instead.
var ErrAuthenticationRequired = errors.New("authentication required")
