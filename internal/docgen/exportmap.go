package docgen

import (
	"fmt"
	"path"
	"strings"

	"github.com/julianshen/dsuigen/internal/pkgjson"
	"github.com/julianshen/dsuigen/internal/vfs"
)

// Condition is one conditional export target.
type Condition struct {
	Types   string `json:"types"`
	Default string `json:"default"`
}

// ExportMapEntry is the "exports" value for a single subpath.
type ExportMapEntry struct {
	SubpathKey string    `json:"-"`
	Import     Condition `json:"import"`
	Require    Condition `json:"require"`
}

// Layout describes where the build writes its outputs.
type Layout struct {
	SourceDir   string
	ESMDir      string
	CJSDir      string
	TypesDir    string
	Files       []string
	SideEffects []string
}

// ExportMap is the ordered set of subpath exports for a package.
type ExportMap struct {
	// Root is the "." entry, present when the package has a barrel file.
	Root    *ExportMapEntry
	Entries []ExportMapEntry
	layout  Layout
}

// BuildExportMap creates one entry per record, in record order. Records
// whose subpath key was already taken are not repeated. barrel is the
// package's index file, or "" when it has none.
func BuildExportMap(records []ModuleRecord, layout Layout, barrel string) *ExportMap {
	m := &ExportMap{layout: layout}
	if barrel != "" {
		root := layout.entry(".", barrel)
		m.Root = &root
	}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		key := rec.SubpathKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		m.Entries = append(m.Entries, layout.entry(key, rec.EntryPath))
	}
	return m
}

// entry maps a source file to its build outputs: the types path mirrors the
// source path with .d.ts, code paths use .js under ESMDir and .cjs under
// CJSDir.
func (l Layout) entry(key, sourcePath string) ExportMapEntry {
	rel := l.relative(sourcePath)
	types := dotSlash(path.Join(l.TypesDir, rel+".d.ts"))
	return ExportMapEntry{
		SubpathKey: key,
		Import:     Condition{Types: types, Default: dotSlash(path.Join(l.ESMDir, rel+".js"))},
		Require:    Condition{Types: types, Default: dotSlash(path.Join(l.CJSDir, rel+".cjs"))},
	}
}

// relative returns sourcePath relative to the source dir, without extension.
func (l Layout) relative(sourcePath string) string {
	rel := vfs.Clean(sourcePath)
	if src := vfs.Clean(l.SourceDir); src != "." {
		rel = strings.TrimPrefix(rel, src+"/")
	}
	return strings.TrimSuffix(rel, path.Ext(rel))
}

func dotSlash(p string) string {
	return "./" + vfs.Clean(p)
}

// Exports returns the "exports" object.
func (m *ExportMap) Exports() (*pkgjson.Object, error) {
	obj := pkgjson.New()
	if m.Root != nil {
		if err := obj.Set(m.Root.SubpathKey, m.Root); err != nil {
			return nil, err
		}
	}
	for _, e := range m.Entries {
		if err := obj.Set(e.SubpathKey, e); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// TypesVersions returns the "typesVersions" object, which lets type
// resolution without "exports" support find per-module declarations.
func (m *ExportMap) TypesVersions() (*pkgjson.Object, error) {
	paths := pkgjson.New()
	for _, e := range m.Entries {
		if err := paths.Set(strings.TrimPrefix(e.SubpathKey, "./"), []string{e.Import.Types}); err != nil {
			return nil, err
		}
	}
	out := pkgjson.New()
	if err := out.Set("*", paths); err != nil {
		return nil, err
	}
	return out, nil
}

// managedFields are the package.json keys the generator owns.
var managedFields = []string{"main", "module", "types", "exports", "typesVersions", "files", "sideEffects"}

// Apply writes the managed fields into doc, replacing existing values in
// place and leaving every other field untouched.
func (m *ExportMap) Apply(doc *pkgjson.Object) error {
	l := m.layout
	var sideEffects any = false
	if len(l.SideEffects) > 0 {
		sideEffects = l.SideEffects
	}
	files := l.Files
	if files == nil {
		files = []string{}
	}

	exports, err := m.Exports()
	if err != nil {
		return err
	}
	typesVersions, err := m.TypesVersions()
	if err != nil {
		return err
	}

	values := map[string]any{
		"main":          dotSlash(path.Join(l.CJSDir, "index.cjs")),
		"module":        dotSlash(path.Join(l.ESMDir, "index.js")),
		"types":         dotSlash(path.Join(l.TypesDir, "index.d.ts")),
		"exports":       exports,
		"typesVersions": typesVersions,
		"files":         files,
		"sideEffects":   sideEffects,
	}
	for _, key := range managedFields {
		if err := doc.Set(key, values[key]); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}
