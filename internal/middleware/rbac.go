package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"project-store/internal/domain"
	"project-store/internal/httputil"
)

// OwnerLookup resolves the owner of a project.
type OwnerLookup interface {
	Owner(ctx context.Context, projectID string) (string, error)
}

// ProjectOwner lets the request through only when the authenticated user owns
// the project named by the {projectId} URL parameter. Must run after Auth.
func ProjectOwner(projects OwnerLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := httputil.GetUserID(r)
			if userID == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			projectID := chi.URLParam(r, "projectId")
			if projectID == "" {
				httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
				return
			}

			owner, err := projects.Owner(r.Context(), projectID)
			if err != nil {
				httputil.HandleError(w, r, logger, err)
				return
			}
			if owner != userID {
				httputil.HandleError(w, r, logger, &domain.ForbiddenError{Message: "you do not own this project"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
