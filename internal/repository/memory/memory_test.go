package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-store/internal/domain"
	"project-store/internal/models"
)

func TestProjectRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	files := []models.FileNode{
		models.NewFolderNode("r", "root", []string{"a"}),
		models.NewContentFile("a", "a.txt", "hi"),
	}
	p := &models.Project{User: "u1", Name: "Site", Slug: "site", Files: files}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site", got.Name)
	assert.Nil(t, got.Files)

	stored, err := repo.Files(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, files, stored)

	// Stored nodes are isolated from caller mutations.
	stored[0].Children[0] = "mutated"
	again, err := repo.Files(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Children[0])

	require.NoError(t, repo.Rename(ctx, p.ID, "Renamed"))
	require.NoError(t, repo.ReplaceFiles(ctx, p.ID, files[:1]))
	replaced, err := repo.Files(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, replaced, 1)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Name)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Files(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepositorySlugConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	require.NoError(t, repo.Create(ctx, &models.Project{User: "u1", Slug: "site"}))
	require.NoError(t, repo.Create(ctx, &models.Project{User: "u2", Slug: "site"}))

	err := repo.Create(ctx, &models.Project{User: "u1", Slug: "site"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	err = repo.Create(ctx, &models.User{Username: "ada", Email: "other@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
