package httputil

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"project-store/internal/domain"
	"project-store/internal/projectmap"
)

// HandleError converts an error into a problem response. Server errors are
// logged and their detail hidden from the client.
func HandleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := domain.StatusCode(err)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}
		RespondError(w, status, "internal server error")
		return
	}

	var missing *projectmap.MissingContentSourceError
	if errors.As(err, &missing) {
		RespondErrorWithExtras(w, status, err.Error(), map[string]interface{}{"path": missing.Path})
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) && conflict.ResourceType != "" {
		RespondErrorWithExtras(w, status, err.Error(), map[string]interface{}{"resource": conflict.ResourceType})
		return
	}

	RespondError(w, status, err.Error())
}
