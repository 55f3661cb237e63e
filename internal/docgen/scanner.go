package docgen

import (
	"path"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// sourceExtensions lists module file extensions in resolution preference order.
var sourceExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// skipDirs contains directory names that are never modules.
var skipDirs = map[string]bool{
	"node_modules": true,
	"__tests__":    true,
	"__mocks__":    true,
	"stories":      true,
}

// Candidate is an immediate child of a scanned folder that may be a module.
type Candidate struct {
	Name string
	// File is the standalone file name including extension; empty for
	// directory modules.
	File string
}

// IsDir reports whether the candidate is a module directory.
func (c Candidate) IsDir() bool { return c.File == "" }

// Scanner lists module candidates in the source folders.
type Scanner struct {
	fs     vfs.FS
	ignore *ignore.GitIgnore
}

// NewScanner creates a Scanner. Entries matched by the project's .gitignore
// are excluded.
func NewScanner(fsys vfs.FS) *Scanner {
	return &Scanner{fs: fsys, ignore: loadGitignore(fsys)}
}

func loadGitignore(fsys vfs.FS) *ignore.GitIgnore {
	data, err := fsys.ReadFile(".gitignore")
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

// Scan returns the module candidates directly under dir, in listing order.
// A missing dir yields an empty result. Only one level is inspected.
func (s *Scanner) Scan(dir string) ([]Candidate, error) {
	entries, err := s.fs.ListDir(dir)
	if err != nil {
		if vfs.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]bool)
	var candidates []Candidate
	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") || strings.HasPrefix(e.Name, "_") {
			continue
		}
		if s.ignored(path.Join(dir, e.Name), e.IsDir) {
			continue
		}

		c := Candidate{Name: e.Name}
		if e.IsDir {
			if skipDirs[e.Name] {
				continue
			}
		} else {
			name, ok := standaloneName(e.Name)
			if !ok {
				continue
			}
			c = Candidate{Name: name, File: e.Name}
		}

		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (s *Scanner) ignored(rel string, isDir bool) bool {
	if s.ignore == nil {
		return false
	}
	if isDir && s.ignore.MatchesPath(rel+"/") {
		return true
	}
	return s.ignore.MatchesPath(rel)
}

// standaloneName returns the module name for a standalone source file, or
// false if the file is not a module (index files, stories, tests,
// declaration files, non-source files).
func standaloneName(file string) (string, bool) {
	ext := path.Ext(file)
	if !isSourceExt(ext) {
		return "", false
	}
	base := strings.TrimSuffix(file, ext)
	if base == "index" || base == "" {
		return "", false
	}
	for _, marker := range []string{".stories", ".story", ".test", ".spec", ".d"} {
		if strings.HasSuffix(base, marker) {
			return "", false
		}
	}
	if strings.Contains(base, ".") {
		return "", false
	}
	return base, true
}

func isSourceExt(ext string) bool {
	for _, e := range sourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
