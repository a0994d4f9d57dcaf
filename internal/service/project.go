package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"project-store/internal/config"
	"project-store/internal/domain"
	"project-store/internal/metrics"
	"project-store/internal/models"
	"project-store/internal/projectmap"
	"project-store/internal/repository"
	"project-store/internal/ws"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// EventPublisher receives project change notifications.
type EventPublisher interface {
	Publish(projectID, eventType string, payload any)
}

type ProjectService struct {
	projects  repository.ProjectRepository
	flattener *projectmap.Flattener
	mapper    *projectmap.Mapper
	events    EventPublisher
	logger    *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	flattener *projectmap.Flattener,
	events EventPublisher,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projects:  projects,
		flattener: flattener,
		mapper:    projectmap.NewMapper(flattener),
		events:    events,
		logger:    logger.Named("projects"),
	}
}

// Create maps the submitted project onto a record owned by userID, validates
// it and stores it together with its flattened files.
func (s *ProjectService) Create(ctx context.Context, userID string, in *models.ProjectInput) (*models.Project, error) {
	input := *in
	input.User = &userID

	project, err := s.mapper.ToModel(&input)
	if err != nil {
		metrics.RecordFlatten(0, err)
		return nil, err
	}
	metrics.RecordFlatten(len(project.Files), nil)

	project.Name = strings.TrimSpace(project.Name)
	if err := validateProject(project); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("id", project.ID),
		zap.String("slug", project.Slug),
		zap.String("user_id", userID),
		zap.Int("nodes", len(project.Files)),
	)
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Files returns the stored flat node list, synthetic root first.
func (s *ProjectService) Files(ctx context.Context, id string) ([]models.FileNode, error) {
	return s.projects.Files(ctx, id)
}

// ReplaceFiles flattens a new tree and swaps it in for the project's files.
// Subscribers are told how many nodes the new tree has.
func (s *ProjectService) ReplaceFiles(ctx context.Context, id string, tree models.DirectoryContents) ([]models.FileNode, error) {
	files, err := s.flattener.TransformFiles(tree)
	metrics.RecordFlatten(len(files), err)
	if err != nil {
		return nil, err
	}

	if err := s.projects.ReplaceFiles(ctx, id, files); err != nil {
		return nil, err
	}

	s.logger.Info("project files replaced", zap.String("id", id), zap.Int("nodes", len(files)))
	s.publish(id, ws.EventFilesReplaced, map[string]int{"nodes": len(files)})
	return files, nil
}

func (s *ProjectService) Rename(ctx context.Context, id, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxProjectNameLength),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}

	if err := s.projects.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project renamed", zap.String("id", id), zap.String("name", name))
	s.publish(id, ws.EventProjectRenamed, projectmap.ToAPI(project))
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.String("id", id))
	s.publish(id, ws.EventProjectDeleted, nil)
	return nil
}

// Owner returns the ID of the user owning the project.
func (s *ProjectService) Owner(ctx context.Context, id string) (string, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return project.User, nil
}

func (s *ProjectService) publish(projectID, eventType string, payload any) {
	if s.events != nil {
		s.events.Publish(projectID, eventType, payload)
	}
}

func validateProject(p *models.Project) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.User, validation.Required),
		validation.Field(&p.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
		validation.Field(&p.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("must be lowercase letters, digits and single dashes"),
		),
	)
}
