// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	emailservice "github.com/avelar/draftmail/internal/services/email"
	templateservice "github.com/avelar/draftmail/internal/services/template"
	"github.com/avelar/draftmail/internal/services/transcript"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a typed service error onto an HTTP status. Foreign
// ownership and not-found both surface as 403 so callers cannot probe for
// record existence.
func writeServiceError(w http.ResponseWriter, err error) {
	var tErr *transcript.TranscriptError
	if errors.As(err, &tErr) {
		writeError(w, tErr.Message, statusForErrorType(string(tErr.Type)))
		return
	}
	var eErr *emailservice.EmailError
	if errors.As(err, &eErr) {
		writeError(w, eErr.Message, statusForErrorType(string(eErr.Type)))
		return
	}
	var tplErr *templateservice.TemplateError
	if errors.As(err, &tplErr) {
		writeError(w, tplErr.Message, statusForErrorType(string(tplErr.Type)))
		return
	}
	writeError(w, "Internal server error", http.StatusInternalServerError)
}

func statusForErrorType(errorType string) int {
	switch errorType {
	case "AUTHENTICATION":
		return http.StatusUnauthorized
	case "UNAUTHORIZED":
		return http.StatusForbidden
	case "VALIDATION":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
