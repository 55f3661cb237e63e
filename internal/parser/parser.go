// Package parser provides tree-sitter-based parsing of TypeScript and
// JavaScript component sources. It extracts top-level declarations, the
// module's export table and its import bindings, which is enough to resolve
// which declaration a public symbol refers to without a full type checker.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SymbolKind classifies a top-level declaration.
type SymbolKind string

const (
	KindInterface SymbolKind = "interface"
	KindTypeAlias SymbolKind = "type"
	KindEnum      SymbolKind = "enum"
	KindClass     SymbolKind = "class"
	KindFunction  SymbolKind = "function"
	KindVariable  SymbolKind = "variable"
)

// IsType reports whether the kind declares a type rather than a value.
func (k SymbolKind) IsType() bool {
	return k == KindInterface || k == KindTypeAlias || k == KindEnum
}

// Declaration is a top-level declaration found in a source file.
type Declaration struct {
	Name string
	Kind SymbolKind
	// Text is the verbatim declaration source. Export modifiers belong to
	// the enclosing export statement and are never part of Text.
	Text string
	// Signature is the declaration head for functions and variables: the
	// source up to (not including) the body or initializer arguments.
	Signature string
	// Doc is the cleaned text of a JSDoc block directly above the statement.
	Doc       string
	StartLine int
	EndLine   int
}

// ExportSpec is one entry of a module's export table.
type ExportSpec struct {
	// Name is the exported name ("default" for default exports). Empty for
	// star re-exports.
	Name string
	// Local is the local binding or, for re-exports, the name in Source.
	Local string
	// Source is the module specifier of a re-export; empty for local exports.
	Source string
	// Star marks "export * from Source".
	Star bool
}

// ImportBinding maps a local name to the name it was imported under.
type ImportBinding struct {
	Local    string
	Imported string // "default" for default imports
	Source   string
}

// langInfo holds the tree-sitter language for a file extension.
type langInfo struct {
	lang *sitter.Language
}

// registry maps file extensions to language info for auto-detection.
var registry = map[string]langInfo{
	".ts":  {lang: typescript.GetLanguage()},
	".mts": {lang: typescript.GetLanguage()},
	".cts": {lang: typescript.GetLanguage()},
	".tsx": {lang: tsx.GetLanguage()},
	".js":  {lang: javascript.GetLanguage()},
	".jsx": {lang: javascript.GetLanguage()},
	".mjs": {lang: javascript.GetLanguage()},
	".cjs": {lang: javascript.GetLanguage()},
}

// Supported reports whether filename has an extension the parser handles.
func Supported(filename string) bool {
	_, ok := registry[filepath.Ext(filename)]
	return ok
}

// Parser wraps tree-sitter to parse source files with automatic language detection.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		inner: sitter.NewParser(),
	}
}

// Parse parses source code from the given filename, auto-detecting the language
// from the file extension. Returns an error for unsupported extensions.
func (p *Parser) Parse(ctx context.Context, filename string, source []byte) (*Tree, error) {
	ext := filepath.Ext(filename)
	info, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q: language not in registry", ext)
	}

	p.inner.SetLanguage(info.lang)
	sitterTree, err := p.inner.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return &Tree{
		tree:   sitterTree,
		source: source,
	}, nil
}

// Tree wraps a parsed tree-sitter syntax tree with convenience methods
// for extracting declarations, exports and imports.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// RootNode returns the root node of the parsed syntax tree.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// HasError reports whether tree-sitter had to recover from syntax errors.
func (t *Tree) HasError() bool {
	return t.RootNode().HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Declarations returns the top-level declarations in source order, including
// those wrapped in export statements.
func (t *Tree) Declarations() []Declaration {
	var decls []Declaration
	t.eachStatement(func(stmt, doc *sitter.Node) {
		target := stmt
		if stmt.Type() == "export_statement" {
			target = stmt.ChildByFieldName("declaration")
			if target == nil {
				return
			}
		}
		for _, d := range t.declarationsOf(target) {
			d.Doc = cleanDoc(doc, t.source)
			d.StartLine = int(stmt.StartPoint().Row) + 1
			d.EndLine = int(stmt.EndPoint().Row) + 1
			decls = append(decls, d)
		}
	})
	return decls
}

// Exports returns the module's export table in source order.
func (t *Tree) Exports() []ExportSpec {
	var specs []ExportSpec
	t.eachStatement(func(stmt, _ *sitter.Node) {
		if stmt.Type() != "export_statement" {
			return
		}
		isDefault := hasChildOfType(stmt, "default")

		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			for _, d := range t.declarationsOf(decl) {
				name := d.Name
				if isDefault {
					name = "default"
				}
				specs = append(specs, ExportSpec{Name: name, Local: d.Name})
			}
			return
		}

		if value := stmt.ChildByFieldName("value"); value != nil && isDefault {
			local := ""
			if value.Type() == "identifier" {
				local = value.Content(t.source)
			}
			specs = append(specs, ExportSpec{Name: "default", Local: local})
			return
		}

		source := ""
		if src := stmt.ChildByFieldName("source"); src != nil {
			source = unquote(src.Content(t.source))
		}

		clause := firstChildOfType(stmt, "export_clause")
		if clause == nil {
			if ns := firstChildOfType(stmt, "namespace_export"); ns != nil {
				specs = append(specs, ExportSpec{Name: lastIdentifier(ns, t.source), Local: "*", Source: source})
				return
			}
			if source != "" && hasChildOfType(stmt, "*") {
				specs = append(specs, ExportSpec{Source: source, Star: true})
			}
			return
		}

		for i := 0; i < int(clause.NamedChildCount()); i++ {
			spec := clause.NamedChild(i)
			if spec == nil || spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			local := nameNode.Content(t.source)
			exported := local
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				exported = alias.Content(t.source)
			}
			specs = append(specs, ExportSpec{Name: exported, Local: local, Source: source})
		}
	})
	return specs
}

// Imports returns the named and default import bindings of the module.
// Namespace imports are not returned.
func (t *Tree) Imports() []ImportBinding {
	var bindings []ImportBinding
	t.eachStatement(func(stmt, _ *sitter.Node) {
		if stmt.Type() != "import_statement" {
			return
		}
		src := stmt.ChildByFieldName("source")
		if src == nil {
			return
		}
		source := unquote(src.Content(t.source))
		clause := firstChildOfType(stmt, "import_clause")
		if clause == nil {
			return
		}
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			child := clause.NamedChild(i)
			switch child.Type() {
			case "identifier":
				bindings = append(bindings, ImportBinding{Local: child.Content(t.source), Imported: "default", Source: source})
			case "named_imports":
				for j := 0; j < int(child.NamedChildCount()); j++ {
					spec := child.NamedChild(j)
					if spec.Type() != "import_specifier" {
						continue
					}
					nameNode := spec.ChildByFieldName("name")
					if nameNode == nil {
						continue
					}
					imported := nameNode.Content(t.source)
					local := imported
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						local = alias.Content(t.source)
					}
					bindings = append(bindings, ImportBinding{Local: local, Imported: imported, Source: source})
				}
			}
		}
	})
	return bindings
}

// eachStatement calls fn for every top-level statement with the JSDoc
// comment node directly above it, if any.
func (t *Tree) eachStatement(fn func(stmt, doc *sitter.Node)) {
	root := t.RootNode()
	var pending *sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		if node.Type() == "comment" {
			if strings.HasPrefix(node.Content(t.source), "/**") {
				pending = node
			} else {
				pending = nil
			}
			continue
		}
		doc := pending
		if doc != nil && doc.EndPoint().Row+1 < node.StartPoint().Row {
			doc = nil
		}
		pending = nil
		fn(node, doc)
	}
}

// declarationsOf extracts the declarations introduced by a single statement.
func (t *Tree) declarationsOf(node *sitter.Node) []Declaration {
	switch node.Type() {
	case "interface_declaration":
		return t.named(node, KindInterface)
	case "type_alias_declaration":
		return t.named(node, KindTypeAlias)
	case "enum_declaration":
		return t.named(node, KindEnum)
	case "class_declaration", "abstract_class_declaration", "class":
		return t.named(node, KindClass)
	case "function_declaration", "generator_function_declaration", "function_signature":
		decls := t.named(node, KindFunction)
		for i := range decls {
			decls[i].Signature = t.head(node, node.ChildByFieldName("body"))
		}
		return decls
	case "lexical_declaration", "variable_declaration":
		return t.variables(node)
	}
	return nil
}

func (t *Tree) named(node *sitter.Node, kind SymbolKind) []Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return []Declaration{{
		Name: nameNode.Content(t.source),
		Kind: kind,
		Text: node.Content(t.source),
	}}
}

// variables handles "const A = ..., B = ..." statements. Arrow functions and
// function expressions are reported as functions.
func (t *Tree) variables(node *sitter.Node) []Declaration {
	var decls []Declaration
	keyword := "const"
	if first := node.Child(0); first != nil && !first.IsNamed() {
		keyword = first.Type()
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		d := Declaration{
			Name: nameNode.Content(t.source),
			Kind: KindVariable,
			Text: node.Content(t.source),
		}
		value := declarator.ChildByFieldName("value")
		switch {
		case value == nil:
			d.Signature = keyword + " " + t.head(declarator, nil)
		case value.Type() == "arrow_function" || value.Type() == "function" || value.Type() == "function_expression":
			d.Kind = KindFunction
			d.Signature = keyword + " " + strings.TrimSpace(strings.TrimSuffix(t.head(declarator, value.ChildByFieldName("body")), "=>"))
		case value.Type() == "call_expression":
			d.Kind = KindFunction
			d.Signature = keyword + " " + t.head(declarator, value.ChildByFieldName("arguments"))
		default:
			d.Signature = keyword + " " + t.head(declarator, value)
			d.Signature = strings.TrimSpace(strings.TrimSuffix(d.Signature, "="))
		}
		decls = append(decls, d)
	}
	return decls
}

// head returns the source of node up to stop (or the whole node when stop is
// nil), with whitespace runs collapsed.
func (t *Tree) head(node, stop *sitter.Node) string {
	end := node.EndByte()
	if stop != nil {
		end = stop.StartByte()
	}
	return strings.Join(strings.Fields(string(t.source[node.StartByte():end])), " ")
}

func hasChildOfType(node *sitter.Node, typ string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if c := node.Child(i); c != nil && c.Type() == typ {
			return true
		}
	}
	return false
}

func firstChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if c := node.Child(i); c != nil && c.Type() == typ {
			return c
		}
	}
	return nil
}

func lastIdentifier(node *sitter.Node, source []byte) string {
	name := ""
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == "identifier" {
			name = c.Content(source)
		}
	}
	return name
}

// cleanDoc strips comment markers from a JSDoc block and drops tag lines.
func cleanDoc(doc *sitter.Node, source []byte) string {
	if doc == nil {
		return ""
	}
	text := doc.Content(source)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "@") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// unquote removes the quotes around a module specifier string.
func unquote(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"'`")
	return strings.TrimSpace(text)
}
