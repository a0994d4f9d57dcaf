// Package memory implements the repositories in process memory. It backs
// tests and local dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"project-store/internal/domain"
	"project-store/internal/idgen"
	"project-store/internal/models"
	"project-store/internal/repository"
)

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	files    map[string][]models.FileNode
	newID    idgen.Func
	now      func() time.Time
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[string]models.Project),
		files:    make(map[string][]models.FileNode),
		newID:    idgen.UUID,
		now:      time.Now,
	}
}

func (r *ProjectRepository) Create(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.projects {
		if existing.User == project.User && existing.Slug == project.Slug {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project %q already exists", project.Slug),
				ResourceType: "project",
				ResourceID:   existing.ID,
			}
		}
	}

	project.ID = r.newID()
	project.CreatedAt = r.now()
	project.UpdatedAt = project.CreatedAt

	stored := *project
	stored.Files = nil
	r.projects[project.ID] = stored
	r.files[project.ID] = cloneNodes(project.Files)
	return nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "project not found"}
	}
	return &p, nil
}

func (r *ProjectRepository) ListByUser(_ context.Context, userID string) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]models.Project, 0)
	for _, p := range r.projects {
		if p.User == userID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *ProjectRepository) Files(_ context.Context, projectID string) ([]models.FileNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.projects[projectID]; !ok {
		return nil, &domain.NotFoundError{Message: "project not found"}
	}
	return cloneNodes(r.files[projectID]), nil
}

func (r *ProjectRepository) ReplaceFiles(_ context.Context, projectID string, files []models.FileNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	p.UpdatedAt = r.now()
	r.projects[projectID] = p
	r.files[projectID] = cloneNodes(files)
	return nil
}

func (r *ProjectRepository) Rename(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	p.Name = name
	p.UpdatedAt = r.now()
	r.projects[id] = p
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	delete(r.projects, id)
	delete(r.files, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	newID   idgen.Func
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]models.User),
		newID:   idgen.UUID,
	}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byEmail {
		if existing.Email == user.Email || existing.Username == user.Username {
			return &domain.ConflictError{
				Message:      "email or username already exists",
				ResourceType: "user",
				ResourceID:   existing.ID,
			}
		}
	}

	user.ID = r.newID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = *user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	return &u, nil
}

func cloneNodes(nodes []models.FileNode) []models.FileNode {
	out := make([]models.FileNode, len(nodes))
	for i, n := range nodes {
		if n.Children != nil {
			n.Children = append([]string{}, n.Children...)
		}
		out[i] = n
	}
	return out
}
