// File: internal/handlers/email_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avelar/draftmail/internal/middleware"
	"github.com/avelar/draftmail/internal/services"
)

type EmailHandler struct {
	EmailService *services.EmailService
}

func NewEmailHandler(es *services.EmailService) *EmailHandler {
	return &EmailHandler{EmailService: es}
}

// CreateLinkedEmail upserts the email artifact linked to an assistant
// message and returns its storage reference.
func (h *EmailHandler) CreateLinkedEmail(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	var req struct {
		ChatID      string `json:"chatId"`
		MessageID   string `json:"messageId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		TSXCode     string `json:"tsxCode"`
		HTMLCode    string `json:"htmlCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	emailID, err := h.EmailService.CreateOrUpdateLinked(
		r.Context(), credential, req.ChatID, req.MessageID,
		req.Name, req.Description, req.TSXCode, req.HTMLCode,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": emailID})
}

// ListEmails returns the caller's email artifacts, newest first.
func (h *EmailHandler) ListEmails(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	emails, err := h.EmailService.ListEmails(r.Context(), credential)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

// GetLatestForChat returns the most recently updated email for a chat, or
// null when none exists.
func (h *EmailHandler) GetLatestForChat(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())
	chatID := mux.Vars(r)["chatId"]

	email, err := h.EmailService.GetLatestForChat(r.Context(), credential, chatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, email)
}

// DeleteEmail removes one of the caller's email artifacts.
func (h *EmailHandler) DeleteEmail(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())
	emailID := mux.Vars(r)["id"]

	if err := h.EmailService.DeleteEmail(r.Context(), credential, emailID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
