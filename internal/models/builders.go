package models

// Helpers for assembling directory trees in code.

// Dir builds directory contents from entries.
func Dir(entries ...DirectoryEntry) DirectoryContents {
	contents := DirectoryContents{}
	return append(contents, entries...)
}

// ContentEntry is a file entry with inline content.
func ContentEntry(name, content string) DirectoryEntry {
	return DirectoryEntry{Name: name, Descriptor: Descriptor{Content: &content}}
}

// URLEntry is a file entry referencing an external URL.
func URLEntry(name, url string) DirectoryEntry {
	return DirectoryEntry{Name: name, Descriptor: Descriptor{URL: &url}}
}

// FolderEntry is a folder entry holding the given children.
func FolderEntry(name string, children ...DirectoryEntry) DirectoryEntry {
	files := Dir(children...)
	return DirectoryEntry{Name: name, Descriptor: Descriptor{Files: &files}}
}
