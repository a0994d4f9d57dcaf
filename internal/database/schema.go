package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup. Statements are idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username      VARCHAR(64)  NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT         NOT NULL,
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID         NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       VARCHAR(255) NOT NULL,
		slug       VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, slug)
	)`,
	// One row per flattened node; position keeps the pre-order sequence.
	`CREATE TABLE IF NOT EXISTS project_files (
		project_id UUID    NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		id         TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		file_type  TEXT    NOT NULL CHECK (file_type IN ('file', 'folder')),
		content    TEXT,
		url        TEXT,
		children   TEXT[],
		PRIMARY KEY (project_id, position),
		UNIQUE (project_id, id)
	)`,
}

// Migrate creates the tables the store needs.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
