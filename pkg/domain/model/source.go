package model

import (
	"bytes"
	"path"
	"strings"
)

// SourceFile is a text file fetched from a repository. Path is slash separated and relative to the repository root.
type SourceFile struct {
	Path    string
	Content []byte
	Size    int64
}

func NewSourceFile(p string, content []byte) SourceFile {
	return SourceFile{
		Path:    CleanPath(p),
		Content: content,
		Size:    int64(len(content)),
	}
}

// Ext returns lower-cased extension of the file including the dot.
func (x SourceFile) Ext() string {
	return strings.ToLower(path.Ext(x.Path))
}

// Base returns the file name.
func (x SourceFile) Base() string {
	return path.Base(x.Path)
}

// Lines returns number of lines in the content.
func (x SourceFile) Lines() int {
	if len(x.Content) == 0 {
		return 0
	}
	n := bytes.Count(x.Content, []byte("\n"))
	if x.Content[len(x.Content)-1] != '\n' {
		n++
	}
	return n
}

// CleanPath normalizes a repository path to slash separated form without leading "./" or "/".
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// TreeEntry is an entry of a git tree.
type TreeEntry struct {
	Path string
	SHA  string
	Type string // "blob", "tree" or "commit"
	Size int64
}

const (
	TreeEntryBlob = "blob"
	TreeEntryTree = "tree"
)
