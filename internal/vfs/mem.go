package vfs

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Mem is an in-memory FS. Directories exist implicitly when a file lives
// below them.
type Mem struct {
	files map[string][]byte
}

// NewMem returns a Mem seeded with files (path -> content).
func NewMem(files map[string]string) *Mem {
	m := &Mem{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		m.files[Clean(name)] = []byte(content)
	}
	return m
}

func (m *Mem) ListDir(dir string) ([]Entry, error) {
	dir = Clean(dir)
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}
	seen := make(map[string]bool)
	var entries []Entry
	for name := range m.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		child, _, nested := strings.Cut(rest, "/")
		if seen[child] {
			continue
		}
		seen[child] = true
		entries = append(entries, Entry{Name: child, IsDir: nested})
	}
	if len(entries) == 0 {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *Mem) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Mem) WriteFile(name string, data []byte) error {
	key := Clean(name)
	if key == "." {
		return fmt.Errorf("writing %s: is the root directory", name)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[key] = buf
	return nil
}

func (m *Mem) Exists(name string) bool {
	key := Clean(name)
	if key == "." {
		return true
	}
	if _, ok := m.files[key]; ok {
		return true
	}
	prefix := key + "/"
	for n := range m.files {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

func (m *Mem) RemoveAll(name string) error {
	key := Clean(name)
	for n := range m.files {
		if n == key || strings.HasPrefix(n, key+"/") || key == "." {
			delete(m.files, n)
		}
	}
	return nil
}

// Files returns the sorted list of file paths, mostly useful in tests.
func (m *Mem) Files() []string {
	names := make([]string, 0, len(m.files))
	for n := range m.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
