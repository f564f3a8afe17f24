// File: internal/handlers/transcript_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avelar/draftmail/internal/domain"
	"github.com/avelar/draftmail/internal/middleware"
	"github.com/avelar/draftmail/internal/services"
)

type TranscriptHandler struct {
	TranscriptService *services.TranscriptService
}

func NewTranscriptHandler(ts *services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{TranscriptService: ts}
}

// SyncMessages accepts the complete message list for a chat and reconciles
// stored state against it.
func (h *TranscriptHandler) SyncMessages(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())
	chatID := mux.Vars(r)["chatId"]

	var req struct {
		Messages []domain.IncomingMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.TranscriptService.SyncMessages(r.Context(), credential, chatID, req.Messages)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetChatMessages returns the caller's messages for one chat in ascending
// creation order.
func (h *TranscriptHandler) GetChatMessages(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())
	chatID := mux.Vars(r)["chatId"]

	messages, err := h.TranscriptService.ListMessagesByChat(r.Context(), credential, chatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GetUserChats returns the caller's chats, most recently active first.
func (h *TranscriptHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	chats, err := h.TranscriptService.ListChats(r.Context(), credential)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}
