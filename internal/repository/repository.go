// Package repository defines the persistence contracts for projects and users.
package repository

import (
	"context"

	"project-store/internal/models"
)

// ProjectRepository stores project records and their flattened file nodes.
// Lookups of unknown projects return domain.ErrNotFound.
type ProjectRepository interface {
	// Create inserts the project and its files, filling ID and timestamps.
	Create(ctx context.Context, project *models.Project) error
	// GetByID returns the project without its files.
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// ListByUser returns the user's projects, newest first, without files.
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)
	// Files returns the stored node sequence in its original order.
	Files(ctx context.Context, projectID string) ([]models.FileNode, error)
	// ReplaceFiles swaps the whole node sequence atomically.
	ReplaceFiles(ctx context.Context, projectID string, files []models.FileNode) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores accounts. Duplicate email or username yields a
// *domain.ConflictError.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
