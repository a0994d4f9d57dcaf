package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"project-store/internal/auth"
	"project-store/internal/config"
	"project-store/internal/database"
	"project-store/internal/handlers"
	"project-store/internal/idgen"
	"project-store/internal/logging"
	"project-store/internal/projectmap"
	"project-store/internal/repository/postgres"
	"project-store/internal/service"
	"project-store/internal/ws"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		// Can't use structured logging yet
		panic("logging init error: " + err.Error())
	}

	if envErr != nil {
		logging.Debug("no .env file found, reading from environment")
	}

	if err := run(cfg); err != nil {
		logging.Error("server exited", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

// run starts the server and blocks until a shutdown signal arrives. Every
// resource it opens is released before it returns.
func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	newID, err := idgen.New(cfg.IDFormat)
	if err != nil {
		return fmt.Errorf("invalid id format: %w", err)
	}
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("auth init failed: %w", err)
	}

	logger := logging.L()
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	projects := service.NewProjectService(
		postgres.NewProjectRepository(pool),
		projectmap.NewFlattener(newID),
		hub,
		logger,
	)
	users := service.NewUserService(postgres.NewUserRepository(pool), tokens, logger)

	router := handlers.NewRouter(handlers.RouterConfig{
		Tokens:      tokens,
		Users:       users,
		Projects:    projects,
		Hub:         hub,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Health:      pool.Ping,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info("starting server",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("id_format", cfg.IDFormat))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logging.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
