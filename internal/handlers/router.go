package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"project-store/internal/auth"
	"project-store/internal/httputil"
	"project-store/internal/logging"
	"project-store/internal/metrics"
	"project-store/internal/middleware"
	"project-store/internal/service"
	"project-store/internal/ws"
)

// RouterConfig holds everything the HTTP routes depend on.
type RouterConfig struct {
	Tokens      *auth.Tokens
	Users       *service.UserService
	Projects    *service.ProjectService
	Hub         *ws.Hub
	CORSOrigins []string
	Logger      *zap.Logger

	// Health reports whether backing stores are reachable. Nil means always healthy.
	Health func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	authHandler := NewAuthHandler(cfg.Users, logger)
	projectHandler := NewProjectHandler(cfg.Projects, logger)
	wsHandler := NewWSHandler(cfg.Hub, cfg.Tokens, cfg.Projects, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Health(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				httputil.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Get("/ws/projects/{projectId}", wsHandler.ServeWs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Tokens))

			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects", projectHandler.ListProjects)

			r.Route("/projects/{projectId}", func(r chi.Router) {
				r.Use(middleware.ProjectOwner(cfg.Projects, logger))
				r.Get("/", projectHandler.GetProject)
				r.Delete("/", projectHandler.DeleteProject)
				r.Put("/rename", projectHandler.RenameProject)
				r.Get("/files", projectHandler.GetFiles)
				r.Put("/files", projectHandler.ReplaceFiles)
			})
		})
	})

	return r
}
