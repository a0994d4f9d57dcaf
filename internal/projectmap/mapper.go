package projectmap

import (
	"fmt"

	"project-store/internal/domain"
	"project-store/internal/models"
)

// Mapper converts between the public project shape and the stored record.
type Mapper struct {
	flattener *Flattener
}

func NewMapper(flattener *Flattener) *Mapper {
	if flattener == nil {
		flattener = NewFlattener(nil)
	}
	return &Mapper{flattener: flattener}
}

// ToModel builds a project record from the public shape. Only user, name and
// slug are copied. Files are flattened when they are a JSON object and left
// empty otherwise. A nil input yields an empty record.
func (m *Mapper) ToModel(in *models.ProjectInput) (*models.Project, error) {
	if in == nil {
		in = &models.ProjectInput{}
	}
	files := []models.FileNode{}

	if models.IsJSONObject(in.Files) {
		tree, err := models.ParseDirectory(in.Files)
		if err != nil {
			return nil, fmt.Errorf("%w: files: %v", domain.ErrValidation, err)
		}
		files, err = m.flattener.TransformFiles(tree)
		if err != nil {
			return nil, err
		}
	}

	return models.NewProject(models.ProjectValues{
		User:  in.User,
		Name:  in.Name,
		Slug:  in.Slug,
		Files: files,
	}), nil
}

// ToAPI projects a stored record onto its public shape: id and name only.
func ToAPI(p *models.Project) models.ProjectSummary {
	return models.ProjectSummary{
		ID:   p.ID,
		Name: p.Name,
	}
}
