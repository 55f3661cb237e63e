// Package vfs abstracts the small set of filesystem operations the
// generators need, so the whole pipeline can run against an in-memory
// fixture tree in tests and against a project directory in production.
//
// All paths are slash-separated and relative to the filesystem root.
package vfs

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// ErrNotExist is returned when a path does not exist.
var ErrNotExist = fs.ErrNotExist

// Entry is a single directory listing item.
type Entry struct {
	Name  string
	IsDir bool
}

// FS is the filesystem surface used by the scanner, extractors and writers.
type FS interface {
	// ListDir returns the immediate children of dir sorted by name.
	ListDir(dir string) ([]Entry, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces name with data, creating parent directories.
	WriteFile(name string, data []byte) error
	Exists(name string) bool
}

// Remover is implemented by filesystems that can delete a subtree.
type Remover interface {
	RemoveAll(name string) error
}

// Clean normalizes a relative path. The root is represented as ".".
func Clean(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// IsNotExist reports whether err indicates a missing path.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Walk calls fn for every file below dir in listing order.
func Walk(fsys FS, dir string, fn func(name string) error) error {
	entries, err := fsys.ListDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		child := path.Join(dir, e.Name)
		if e.IsDir {
			if err := Walk(fsys, child, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(child); err != nil {
			return err
		}
	}
	return nil
}
