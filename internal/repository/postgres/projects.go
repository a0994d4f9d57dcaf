package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"project-store/internal/domain"
	"project-store/internal/models"
	"project-store/internal/repository"
)

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO projects (user_id, name, slug) VALUES ($1, $2, $3)
			RETURNING id::text, created_at, updated_at`
		err := tx.QueryRow(ctx, query, project.User, project.Name, project.Slug).
			Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return translate(err, "project", project.Slug)
		}
		return insertFiles(ctx, tx, project.ID, project.Files)
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id::text, user_id::text, name, slug, created_at, updated_at FROM projects WHERE id = $1`

	var p models.Project
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.User, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err, "project", id)
	}
	return &p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := `
		SELECT id::text, user_id::text, name, slug, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.User, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Files(ctx context.Context, projectID string) ([]models.FileNode, error) {
	if _, err := r.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	query := `SELECT id, name, file_type, content, url, children
		FROM project_files WHERE project_id = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	files := make([]models.FileNode, 0)
	for rows.Next() {
		var n models.FileNode
		var fileType string
		if err := rows.Scan(&n.ID, &n.Name, &fileType, &n.Content, &n.URL, &n.Children); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		n.FileType = models.FileType(fileType)
		if n.IsFolder() && n.Children == nil {
			n.Children = []string{}
		}
		files = append(files, n)
	}
	return files, rows.Err()
}

func (r *ProjectRepository) ReplaceFiles(ctx context.Context, projectID string, files []models.FileNode) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID)
		if err != nil {
			return translate(err, "project", projectID)
		}
		if tag.RowsAffected() == 0 {
			return &domain.NotFoundError{Message: "project not found"}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM project_files WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("clear files: %w", err)
		}
		return insertFiles(ctx, tx, projectID, files)
	})
}

func (r *ProjectRepository) Rename(ctx context.Context, id, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		return translate(err, "project", id)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "project not found"}
	}
	return nil
}

// Delete removes the project; ON DELETE CASCADE cleans up its files.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translate(err, "project", id)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "project not found"}
	}
	return nil
}

func insertFiles(ctx context.Context, tx pgx.Tx, projectID string, files []models.FileNode) error {
	if len(files) == 0 {
		return nil
	}
	// COPY uses the binary protocol, which needs a real UUID value.
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return &domain.NotFoundError{Message: "project not found"}
	}
	columns := []string{"project_id", "position", "id", "name", "file_type", "content", "url", "children"}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"project_files"}, columns,
		pgx.CopyFromSlice(len(files), func(i int) ([]any, error) {
			n := files[i]
			var children []string
			if n.IsFolder() {
				children = n.Children
				if children == nil {
					children = []string{}
				}
			}
			return []any{pid, int32(i), n.ID, n.Name, string(n.FileType), n.Content, n.URL, children}, nil
		}))
	if err != nil {
		return translate(err, "file", projectID)
	}
	return nil
}
