package docgen

import (
	"context"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/julianshen/dsuigen/internal/parser"
	"github.com/julianshen/dsuigen/internal/vfs"
)

// maxReexportDepth bounds how far re-export chains are followed.
const maxReexportDepth = 16

// resolveExtensions are tried, in order, on extensionless specifiers.
var resolveExtensions = []string{".tsx", ".ts", ".jsx", ".js", ".d.ts"}

// TypeChecked resolves declarations from parsed syntax trees. It builds a
// program over every entry file, follows re-exports and import bindings
// across files (including tsconfig path aliases) and returns the verbatim
// source of the symbol a module exports for its props.
type TypeChecked struct {
	fs       vfs.FS
	parser   *parser.Parser
	tsconfig *TSConfig
	logger   *log.Logger

	ctx   context.Context
	files map[string]*sourceFile
}

// sourceFile is the parsed view of one file in the program.
type sourceFile struct {
	path    string
	decls   []parser.Declaration
	byName  map[string]parser.Declaration
	exports []parser.ExportSpec
	imports map[string]parser.ImportBinding
	err     error
}

// exported is a resolved export: the public name and the declaration it
// refers to.
type exported struct {
	name string
	decl parser.Declaration
}

// NewTypeChecked loads the project tsconfig and returns a TypeChecked
// source. A missing tsconfig is fatal and yields ErrNoProjectConfig.
func NewTypeChecked(fsys vfs.FS, tsconfigPath string, logger *log.Logger) (*TypeChecked, error) {
	cfg, err := LoadTSConfig(fsys, tsconfigPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &TypeChecked{
		fs:       fsys,
		parser:   parser.NewParser(),
		tsconfig: cfg,
		logger:   logger,
		ctx:      context.Background(),
		files:    make(map[string]*sourceFile),
	}, nil
}

// Prepare parses every entry file up front. Files that fail to parse are
// remembered and degrade to the placeholder at lookup time.
func (s *TypeChecked) Prepare(ctx context.Context, records []ModuleRecord) error {
	s.ctx = ctx
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f := s.load(rec.EntryPath); f.err != nil {
			s.logger.Warn("entry not parsed", "module", rec.Name, "file", rec.EntryPath, "err", f.err)
		}
	}
	return nil
}

// Declaration looks up the module's props symbol. Lookup order: an export
// named <Name>Props, any other export ending in Props except the generic
// variant-props alias, then the export named <Name>. When the file exports
// nothing resolvable, its top-level statements are scanned for a Props type.
func (s *TypeChecked) Declaration(rec ModuleRecord) DeclarationInfo {
	f := s.load(rec.EntryPath)
	if f.err != nil {
		return placeholder()
	}

	exports := s.exportsOf(f.path, map[string]bool{}, 0)
	if len(exports) == 0 {
		return s.shallowScan(f, rec.Identifier())
	}

	byName := make(map[string]parser.Declaration, len(exports))
	for _, e := range exports {
		byName[e.name] = e.decl
	}

	var (
		chosen parser.Declaration
		found  bool
	)
	if d, ok := byName[rec.Identifier()+"Props"]; ok {
		chosen, found = d, true
	}
	if !found {
		for _, e := range exports {
			if isPropsName(e.name) && e.decl.Kind.IsType() {
				chosen, found = e.decl, true
				break
			}
		}
	}
	if !found {
		if d, ok := byName[rec.Identifier()]; ok {
			chosen, found = d, true
		}
	}
	if !found {
		return placeholder()
	}

	info := declarationInfo(chosen)
	if info.Description == "" {
		if component, ok := byName[rec.Identifier()]; ok {
			info.Description = component.Doc
		}
	}
	return info
}

// shallowScan looks at the file's own top-level statements only.
func (s *TypeChecked) shallowScan(f *sourceFile, name string) DeclarationInfo {
	var fallback *parser.Declaration
	for i := range f.decls {
		d := f.decls[i]
		if !d.Kind.IsType() || !isPropsName(d.Name) {
			continue
		}
		if d.Name == name+"Props" {
			return declarationInfo(d)
		}
		if fallback == nil {
			fallback = &f.decls[i]
		}
	}
	if fallback == nil {
		return placeholder()
	}
	return declarationInfo(*fallback)
}

// declarationInfo renders a declaration: type declarations verbatim, values
// by their signature.
func declarationInfo(d parser.Declaration) DeclarationInfo {
	text := d.Text
	if !d.Kind.IsType() && d.Kind != parser.KindClass && d.Signature != "" {
		text = d.Signature
	}
	return DeclarationInfo{
		Text:        strings.TrimRight(text, " \t\n"),
		Kind:        DeclarationTypeChecked,
		Symbol:      d.Name,
		Description: d.Doc,
	}
}

// exportsOf resolves the export table of file into declarations, following
// re-exports. The result keeps source order; the first binding of a name wins.
func (s *TypeChecked) exportsOf(file string, visiting map[string]bool, depth int) []exported {
	if depth > maxReexportDepth || visiting[file] {
		return nil
	}
	visiting[file] = true
	defer delete(visiting, file)

	f := s.load(file)
	if f.err != nil {
		return nil
	}

	var out []exported
	seen := make(map[string]bool)
	add := func(name string, d parser.Declaration) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, exported{name: name, decl: d})
	}

	for _, spec := range f.exports {
		switch {
		case spec.Star:
			target := s.resolveSpecifier(file, spec.Source)
			if target == "" {
				continue
			}
			for _, e := range s.exportsOf(target, visiting, depth+1) {
				if e.name != "default" {
					add(e.name, e.decl)
				}
			}
		case spec.Source != "":
			target := s.resolveSpecifier(file, spec.Source)
			if target == "" {
				continue
			}
			if d, ok := s.lookupExport(target, spec.Local, visiting, depth+1); ok {
				add(spec.Name, d)
			}
		default:
			if d, ok := s.lookupLocal(f, spec.Local, visiting, depth); ok {
				add(spec.Name, d)
			}
		}
	}
	return out
}

// lookupExport finds the declaration exported as name by file.
func (s *TypeChecked) lookupExport(file, name string, visiting map[string]bool, depth int) (parser.Declaration, bool) {
	for _, e := range s.exportsOf(file, visiting, depth) {
		if e.name == name {
			return e.decl, true
		}
	}
	return parser.Declaration{}, false
}

// lookupLocal resolves a local binding: a declaration in the file, or an
// import that is then looked up in the imported module.
func (s *TypeChecked) lookupLocal(f *sourceFile, name string, visiting map[string]bool, depth int) (parser.Declaration, bool) {
	if d, ok := f.byName[name]; ok {
		return d, true
	}
	binding, ok := f.imports[name]
	if !ok {
		return parser.Declaration{}, false
	}
	target := s.resolveSpecifier(f.path, binding.Source)
	if target == "" {
		return parser.Declaration{}, false
	}
	return s.lookupExport(target, binding.Imported, visiting, depth+1)
}

// resolveSpecifier maps a module specifier used in from to a file in the
// program. Package imports that are not path aliases resolve to "".
func (s *TypeChecked) resolveSpecifier(from, specifier string) string {
	var bases []string
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || specifier == "." || specifier == "..":
		bases = []string{vfs.Clean(path.Join(path.Dir(from), specifier))}
	default:
		bases = s.tsconfig.Alias(specifier)
	}

	for _, base := range bases {
		if parser.Supported(base) && s.fs.Exists(base) {
			return base
		}
		// "./Button.js" in ESM-style TypeScript refers to Button.ts(x).
		if ext := path.Ext(base); ext == ".js" || ext == ".jsx" {
			trimmed := strings.TrimSuffix(base, ext)
			for _, e := range sourceExtensions {
				if s.fs.Exists(trimmed + e) {
					return trimmed + e
				}
			}
		}
		for _, ext := range resolveExtensions {
			if s.fs.Exists(base + ext) {
				return base + ext
			}
		}
		for _, ext := range sourceExtensions {
			if candidate := path.Join(base, "index"+ext); s.fs.Exists(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// load parses file once and caches the result, including failures.
func (s *TypeChecked) load(file string) *sourceFile {
	file = vfs.Clean(file)
	if f, ok := s.files[file]; ok {
		return f
	}
	f := &sourceFile{path: file}
	s.files[file] = f

	data, err := s.fs.ReadFile(file)
	if err != nil {
		f.err = err
		return f
	}
	tree, err := s.parser.Parse(s.ctx, file, data)
	if err != nil {
		f.err = err
		return f
	}
	defer tree.Close()

	if tree.HasError() {
		s.logger.Debug("syntax errors recovered", "file", file)
	}

	f.decls = tree.Declarations()
	f.byName = make(map[string]parser.Declaration, len(f.decls))
	for _, d := range f.decls {
		// Declaration merging: keep the first, which is usually the interface.
		if _, dup := f.byName[d.Name]; !dup {
			f.byName[d.Name] = d
		}
	}
	f.exports = tree.Exports()
	f.imports = make(map[string]parser.ImportBinding)
	for _, b := range tree.Imports() {
		f.imports[b.Local] = b
	}
	return f
}
