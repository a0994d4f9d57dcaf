package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"project-store/internal/auth"
	"project-store/internal/domain"
	"project-store/internal/httputil"
	"project-store/internal/middleware"
	"project-store/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler subscribes project owners to their project's change events.
type WSHandler struct {
	hub      *ws.Hub
	tokens   *auth.Tokens
	projects middleware.OwnerLookup
	logger   *zap.Logger
}

func NewWSHandler(hub *ws.Hub, tokens *auth.Tokens, projects middleware.OwnerLookup, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{hub: hub, tokens: tokens, projects: projects, logger: logger}
}

// ServeWs upgrades the connection after checking the auth_token query
// parameter, since browsers cannot set headers on websocket requests.
// GET /ws/projects/{projectId}?auth_token=...
func (h *WSHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	tokenStr := r.URL.Query().Get("auth_token")
	if tokenStr == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing auth_token query parameter")
		return
	}
	claims, err := h.tokens.Validate(tokenStr)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid auth token")
		return
	}

	owner, err := h.projects.Owner(r.Context(), projectID)
	if err != nil {
		httputil.HandleError(w, r, h.logger, err)
		return
	}
	if owner != claims.UserID {
		h.logger.Info("websocket connection denied",
			zap.String("project_id", projectID),
			zap.String("user_id", claims.UserID))
		httputil.HandleError(w, r, h.logger, &domain.ForbiddenError{Message: "you do not own this project"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, projectID, claims.UserID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
