package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger defines the common logging interface for all services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StructuredLogger writes one JSON object per line in production and a
// human-readable line in development.
type StructuredLogger struct {
	logger     *log.Logger
	level      LogLevel
	service    string
	structured bool
}

func NewStructuredLogger(service string) *StructuredLogger {
	return &StructuredLogger{
		logger:     log.New(os.Stdout, "", 0),
		level:      LogLevelInfo,
		service:    service,
		structured: true,
	}
}

// SetLevel updates the logging level.
func (s *StructuredLogger) SetLevel(level LogLevel) {
	s.level = level
}

// SetStructured toggles JSON output.
func (s *StructuredLogger) SetStructured(structured bool) {
	s.structured = structured
}

func (s *StructuredLogger) Info(msg string, keysAndValues ...interface{}) {
	if s.level > LogLevelInfo {
		return
	}
	s.log(LogLevelInfo, msg, keysAndValues...)
}

func (s *StructuredLogger) Error(msg string, keysAndValues ...interface{}) {
	if s.level > LogLevelError {
		return
	}
	s.log(LogLevelError, msg, keysAndValues...)
}

func (s *StructuredLogger) Debug(msg string, keysAndValues ...interface{}) {
	if s.level > LogLevelDebug {
		return
	}
	s.log(LogLevelDebug, msg, keysAndValues...)
}

func (s *StructuredLogger) Warn(msg string, keysAndValues ...interface{}) {
	if s.level > LogLevelWarn {
		return
	}
	s.log(LogLevelWarn, msg, keysAndValues...)
}

func (s *StructuredLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if s.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   s.service,
			"message":   msg,
		}

		if len(keysAndValues) > 0 {
			fields := make(map[string]interface{})
			for i := 0; i < len(keysAndValues)-1; i += 2 {
				if key, ok := keysAndValues[i].(string); ok {
					fields[key] = keysAndValues[i+1]
				}
			}
			if len(fields) > 0 {
				entry["fields"] = fields
			}
		}

		jsonBytes, _ := json.Marshal(entry)
		s.logger.Println(string(jsonBytes))
		return
	}

	var kv strings.Builder
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		kv.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	s.logger.Printf("[%s] %s [%s] %s%s", timestamp, level.String(), s.service, msg, kv.String())
}

// NoOpLogger is a logger that does nothing (for testing).
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger builds a logger from the environment: silent under test,
// JSON in production, human-readable otherwise.
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "test" {
		return &NoOpLogger{}
	}

	logger := NewStructuredLogger(service)

	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		logger.SetLevel(LogLevelDebug)
	case "WARN":
		logger.SetLevel(LogLevelWarn)
	case "ERROR":
		logger.SetLevel(LogLevelError)
	default:
		logger.SetLevel(LogLevelInfo)
	}

	logger.SetStructured(env == "production")
	return logger
}
