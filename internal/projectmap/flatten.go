// Package projectmap converts projects between their public API shape and
// their storage record, flattening the nested file tree on the way in.
package projectmap

import (
	"errors"
	"fmt"
	"net/http"

	"project-store/internal/idgen"
	"project-store/internal/models"
)

// RootName is the name of the synthetic folder wrapping the top-level files.
const RootName = "root"

// ErrMissingContentSource is returned when a file entry has neither content nor url.
var ErrMissingContentSource = errors.New("url or params must be supplied")

// MissingContentSourceError reports the file entry that lacked a content source.
// Path is slash separated and relative to the top-level files.
type MissingContentSourceError struct {
	Path string
}

func (e *MissingContentSourceError) Error() string {
	return fmt.Sprintf("file %q: %v", e.Path, ErrMissingContentSource)
}

func (e *MissingContentSourceError) Is(target error) bool {
	return target == ErrMissingContentSource
}

func (e *MissingContentSourceError) StatusCode() int {
	return http.StatusBadRequest
}

// Flattener turns a nested directory tree into the flat node list that is
// stored with a project.
type Flattener struct {
	newID idgen.Func
}

// NewFlattener returns a Flattener drawing node IDs from newID.
// A nil newID falls back to random UUIDs.
func NewFlattener(newID idgen.Func) *Flattener {
	if newID == nil {
		newID = idgen.UUID
	}
	return &Flattener{newID: newID}
}

// TransformFiles flattens files into a pre-order node list.
//
// The top-level entries are wrapped in a synthetic "root" folder, which is
// always the first node of the result. Every folder precedes its descendants,
// each subtree is contiguous, and a folder's Children hold the IDs of its
// direct entries in input order. Each call assigns fresh IDs.
//
// A file entry with neither content nor url aborts the whole transform with a
// *MissingContentSourceError and no nodes are returned.
func (f *Flattener) TransformFiles(files models.DirectoryContents) ([]models.FileNode, error) {
	if files == nil {
		files = models.DirectoryContents{}
	}
	nodes, err := f.folder(RootName, files, "")
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// folder returns the subtree of a folder entry: the folder record followed by
// the records of all its descendants.
func (f *Flattener) folder(name string, files models.DirectoryContents, path string) ([]models.FileNode, error) {
	id := f.newID()

	var descendants []models.FileNode
	children := make([]string, 0, len(files))
	for _, entry := range files {
		sub, err := f.entry(entry, joinPath(path, entry.Name))
		if err != nil {
			return nil, err
		}
		// sub[0] is always the entry's own record.
		children = append(children, sub[0].ID)
		descendants = append(descendants, sub...)
	}

	nodes := make([]models.FileNode, 0, len(descendants)+1)
	nodes = append(nodes, models.NewFolderNode(id, name, children))
	return append(nodes, descendants...), nil
}

func (f *Flattener) entry(entry models.DirectoryEntry, path string) ([]models.FileNode, error) {
	d := entry.Descriptor
	if d.IsFolder() {
		return f.folder(entry.Name, *d.Files, path)
	}

	id := f.newID()
	switch {
	case d.Content != nil:
		return []models.FileNode{models.NewContentFile(id, entry.Name, *d.Content)}, nil
	case d.URL != nil:
		return []models.FileNode{models.NewURLFile(id, entry.Name, *d.URL)}, nil
	default:
		return nil, &MissingContentSourceError{Path: path}
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// StripRoot drops the synthetic root folder from a flattened list.
// Lists that do not start with it are returned unchanged.
func StripRoot(nodes []models.FileNode) []models.FileNode {
	if len(nodes) > 0 && nodes[0].IsFolder() && nodes[0].Name == RootName {
		return nodes[1:]
	}
	return nodes
}
