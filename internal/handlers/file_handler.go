package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"project-store/internal/domain"
	"project-store/internal/httputil"
	"project-store/internal/models"
)

// GetFiles returns the project's stored node list, synthetic root first.
// GET /api/v1/projects/{projectId}/files
func (h *ProjectHandler) GetFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.projects.Files(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, files)
}

// ReplaceFiles swaps the project's files for the nested tree in the body.
// PUT /api/v1/projects/{projectId}/files
func (h *ProjectHandler) ReplaceFiles(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := httputil.ParseJSON(w, r, &raw); err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	if !models.IsJSONObject(raw) {
		httputil.HandleError(w, r, h.logger, &domain.ValidationError{Message: "files must be a JSON object"})
		return
	}

	tree, err := models.ParseDirectory(raw)
	if err != nil {
		httputil.HandleError(w, r, h.logger, &domain.ValidationError{Message: err.Error()})
		return
	}

	files, err := h.projects.ReplaceFiles(r.Context(), chi.URLParam(r, "projectId"), tree)
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, files)
}
