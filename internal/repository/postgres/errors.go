package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"project-store/internal/domain"
)

const (
	uniqueViolation      = "23505"
	invalidTextRepresent = "22P02"
	foreignKeyViolation  = "23503"
)

// translate maps driver errors onto domain errors. resource names the entity
// for not-found and conflict messages.
func translate(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s not found", resource)}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return &domain.ConflictError{
				Message:      fmt.Sprintf("%s %q already exists", resource, key),
				ResourceType: resource,
				ResourceID:   key,
			}
		case invalidTextRepresent, foreignKeyViolation:
			// Malformed UUIDs and dangling references both mean the target does not exist.
			return &domain.NotFoundError{Message: fmt.Sprintf("%s not found", resource)}
		}
	}
	return err
}
