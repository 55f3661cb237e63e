package docgen

import "strings"

// ModuleRecord describes one public module of the component library. It is
// built by the scanner and resolver and never mutated afterwards.
type ModuleRecord struct {
	Name string
	// Folder is the source sub-folder the module was found in ("components").
	Folder string
	// Dir is the module directory, or the folder itself for standalone files.
	Dir string
	// EntryPath is the file chosen to represent the module.
	EntryPath  string
	ImportPath string
	Standalone bool
}

// SubpathKey returns the export-map key for the module ("./button").
func (r ModuleRecord) SubpathKey() string {
	return "./" + strings.ToLower(r.Name)
}

// Identifier returns the import binding for the module. Kebab-case file
// names such as "use-mobile" become camelCase ("useMobile").
func (r ModuleRecord) Identifier() string {
	parts := strings.FieldsFunc(r.Name, func(c rune) bool { return c == '-' || c == '.' })
	if len(parts) <= 1 {
		return r.Name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		r := []rune(p)
		b.WriteString(strings.ToUpper(string(r[0])))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// DeclarationKind records which backend produced a declaration block.
type DeclarationKind string

const (
	DeclarationTypeChecked   DeclarationKind = "type-checked"
	DeclarationTextHeuristic DeclarationKind = "text-heuristic"
	DeclarationNone          DeclarationKind = "none"
)

// DeclarationInfo is the props declaration extracted for one module.
type DeclarationInfo struct {
	Text   string
	Kind   DeclarationKind
	Symbol string
	// Description comes from a doc comment on the symbol, when the backend
	// can see one.
	Description string
	// Truncated is set when extraction stopped at the line cap before the
	// declaration was complete.
	Truncated bool
}

// ExampleSnippet is a usage example harvested from a story file.
type ExampleSnippet struct {
	Code        string
	SourceStory string
	Export      string
}

// ModuleDoc gathers everything rendered in a module's Markdown section.
type ModuleDoc struct {
	Record      ModuleRecord
	Declaration DeclarationInfo
	Example     *ExampleSnippet
	Description string
}
