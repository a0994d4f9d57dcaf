package models

import (
	"encoding/json"
	"time"
)

// Project is the persistence record of a project. Files holds the flattened
// tree, synthetic root first.
type Project struct {
	ID        string     `json:"id"`
	User      string     `json:"user"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Files     []FileNode `json:"files"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ProjectValues is the field set a Project record is constructed from.
// Nil scalars were absent on the source object and stay unset.
type ProjectValues struct {
	User  *string
	Name  *string
	Slug  *string
	Files []FileNode
}

// NewProject constructs a record from the given field set.
func NewProject(values ProjectValues) *Project {
	p := &Project{Files: values.Files}
	if values.User != nil {
		p.User = *values.User
	}
	if values.Name != nil {
		p.Name = *values.Name
	}
	if values.Slug != nil {
		p.Slug = *values.Slug
	}
	if p.Files == nil {
		p.Files = []FileNode{}
	}
	return p
}

// ProjectInput is the public API shape of a project as submitted by clients.
// Files is kept raw so its JSON kind can be inspected before decoding.
type ProjectInput struct {
	User  *string         `json:"user,omitempty"`
	Name  *string         `json:"name,omitempty"`
	Slug  *string         `json:"slug,omitempty"`
	Files json.RawMessage `json:"files,omitempty"`
}

// ProjectSummary is the public API shape of a stored project.
type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
