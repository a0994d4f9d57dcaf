package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"project-store/internal/httputil"
	"project-store/internal/models"
	"project-store/internal/projectmap"
	"project-store/internal/service"
)

// ProjectHandler serves project and project file requests. Responses carry the
// public {id, name} projection of a project, never the stored record.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectHandler{projects: projects, logger: logger}
}

// CreateProject stores a project for the caller.
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := httputil.ParseJSON(w, r, &in); err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.Create(r.Context(), httputil.GetUserID(r), &in)
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, projectmap.ToAPI(project))
}

// ListProjects returns the caller's projects, newest first.
// GET /api/v1/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), httputil.GetUserID(r))
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}

	out := make([]models.ProjectSummary, 0, len(projects))
	for i := range projects {
		out = append(out, projectmap.ToAPI(&projects[i]))
	}
	httputil.RespondJSON(w, http.StatusOK, out)
}

// GET /api/v1/projects/{projectId}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, projectmap.ToAPI(project))
}

// RenameProject changes a project's display name.
// PUT /api/v1/projects/{projectId}/rename
func (h *ProjectHandler) RenameProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.Rename(r.Context(), chi.URLParam(r, "projectId"), req.Name)
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, projectmap.ToAPI(project))
}

// DELETE /api/v1/projects/{projectId}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "projectId")); err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
