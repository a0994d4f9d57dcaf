package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// DirectoryContents is the public, nested form of a project's files: sibling
// names mapped to descriptors. Entries keep the order they had in the JSON
// object, which is the order the tree is flattened in.
type DirectoryContents []DirectoryEntry

// DirectoryEntry is a single named entry of a directory.
type DirectoryEntry struct {
	Name       string
	Descriptor Descriptor
}

// Descriptor describes either a file (Content or URL) or a folder (Files).
type Descriptor struct {
	Content *string            `json:"content,omitempty"`
	URL     *string            `json:"url,omitempty"`
	Files   *DirectoryContents `json:"files,omitempty"`
}

// IsFolder reports whether the descriptor carries a files mapping.
func (d Descriptor) IsFolder() bool {
	return d.Files != nil
}

var errInvalidJSON = errors.New("invalid JSON")

// UnmarshalJSON decodes a JSON object into entries, preserving key order.
// A JSON value that is not an object decodes to an empty directory.
func (c *DirectoryContents) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errInvalidJSON
	}
	*c = parseContents(gjson.ParseBytes(data))
	return nil
}

// MarshalJSON encodes the entries as a JSON object in entry order.
func (c DirectoryContents) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Descriptor)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a single descriptor.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errInvalidJSON
	}
	*d = parseDescriptor(gjson.ParseBytes(data))
	return nil
}

// ParseDirectory decodes raw JSON into directory contents.
func ParseDirectory(raw []byte) (DirectoryContents, error) {
	var contents DirectoryContents
	if err := contents.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return contents, nil
}

// IsJSONObject reports whether raw holds a JSON object.
func IsJSONObject(raw []byte) bool {
	return len(raw) > 0 && gjson.ParseBytes(raw).IsObject()
}

func parseContents(value gjson.Result) DirectoryContents {
	contents := DirectoryContents{}
	if !value.IsObject() {
		return contents
	}
	// A repeated key keeps its first position and takes the last value.
	seen := make(map[string]int)
	value.ForEach(func(key, entry gjson.Result) bool {
		name := key.String()
		if i, ok := seen[name]; ok {
			contents[i].Descriptor = parseDescriptor(entry)
			return true
		}
		seen[name] = len(contents)
		contents = append(contents, DirectoryEntry{
			Name:       name,
			Descriptor: parseDescriptor(entry),
		})
		return true
	})
	return contents
}

// parseDescriptor reads content, url and files by key. Only string values
// count as a content source; any non-null files value marks a folder.
func parseDescriptor(value gjson.Result) Descriptor {
	var d Descriptor
	if !value.IsObject() {
		return d
	}
	value.ForEach(func(key, field gjson.Result) bool {
		// Later keys overwrite earlier ones, as in any JSON object decode.
		switch key.String() {
		case "content":
			d.Content = stringValue(field)
		case "url":
			d.URL = stringValue(field)
		case "files":
			d.Files = nil
			if field.Type != gjson.Null {
				files := parseContents(field)
				d.Files = &files
			}
		}
		return true
	})
	return d
}

func stringValue(field gjson.Result) *string {
	if field.Type != gjson.String {
		return nil
	}
	s := field.Str
	return &s
}
