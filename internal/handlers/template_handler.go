// File: internal/handlers/template_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avelar/draftmail/internal/middleware"
	"github.com/avelar/draftmail/internal/services"
)

type TemplateHandler struct {
	TemplateService *services.TemplateService
}

func NewTemplateHandler(ts *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{TemplateService: ts}
}

// SaveTemplate stores a style-reference template and returns its storage
// reference.
func (h *TemplateHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		HTMLCode    string `json:"htmlCode"`
		TSXCode     string `json:"tsxCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	templateID, err := h.TemplateService.SaveTemplate(
		r.Context(), credential, req.Name, req.Description, req.HTMLCode, req.TSXCode,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": templateID})
}

// ListTemplates returns the caller's templates, newest updated first.
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	templates, err := h.TemplateService.ListTemplates(r.Context(), credential)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// DeleteTemplate removes one of the caller's templates.
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())
	templateID := mux.Vars(r)["id"]

	if err := h.TemplateService.DeleteTemplate(r.Context(), credential, templateID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// StyleReferences resolves a list of template ids to the style reference
// views used when prompting generation.
func (h *TemplateHandler) StyleReferences(w http.ResponseWriter, r *http.Request) {
	credential := middleware.CredentialFromContext(r.Context())

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	references, err := h.TemplateService.StyleReferences(r.Context(), credential, req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, references)
}
