package models

import (
	"encoding/json"
)

// FileType tags a flattened node as a file or a folder.
type FileType string

const (
	FileTypeFile   FileType = "file"
	FileTypeFolder FileType = "folder"
)

// FileNode is one record of a project's flattened file tree.
// Files carry exactly one of Content or URL. Folders reference their
// direct children by ID, in the order the children were visited.
type FileNode struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	FileType FileType `json:"fileType"`
	Content  *string  `json:"content,omitempty"` // Pointer for NULL, omitempty for clean JSON
	URL      *string  `json:"url,omitempty"`
	Children []string `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder record.
func (n FileNode) IsFolder() bool {
	return n.FileType == FileTypeFolder
}

// NewFolderNode builds a folder record. A nil children slice is stored as empty
// so a folder always serializes its children list.
func NewFolderNode(id, name string, children []string) FileNode {
	if children == nil {
		children = []string{}
	}
	return FileNode{
		ID:       id,
		Name:     name,
		FileType: FileTypeFolder,
		Children: children,
	}
}

// NewContentFile builds a file record holding inline content.
func NewContentFile(id, name, content string) FileNode {
	return FileNode{
		ID:       id,
		Name:     name,
		FileType: FileTypeFile,
		Content:  &content,
	}
}

// NewURLFile builds a file record pointing at an external URL.
func NewURLFile(id, name, url string) FileNode {
	return FileNode{
		ID:       id,
		Name:     name,
		FileType: FileTypeFile,
		URL:      &url,
	}
}

// MarshalJSON always writes children for folders, even when empty, and never
// for files.
func (n FileNode) MarshalJSON() ([]byte, error) {
	type plain FileNode
	if !n.IsFolder() {
		return json.Marshal(plain(n))
	}
	children := n.Children
	if children == nil {
		children = []string{}
	}
	return json.Marshal(struct {
		plain
		Children []string `json:"children"`
	}{plain: plain(n), Children: children})
}
