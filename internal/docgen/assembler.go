package docgen

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// GeneratedNote is written below the title of the Markdown reference.
const GeneratedNote = "> Generated by dsuigen from the component sources. Do not edit by hand."

// AssembleMarkdown renders the component reference: a title, then per
// folder a "##" heading and per module a "###" section, in record order.
func AssembleMarkdown(title string, docs []ModuleDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(GeneratedNote)
	b.WriteString("\n\n")

	folder := ""
	for i, d := range docs {
		if i == 0 || d.Record.Folder != folder {
			folder = d.Record.Folder
			fmt.Fprintf(&b, "## %s\n\n", folderTitle(folder))
		}
		writeModuleSection(&b, d)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeModuleSection appends one module's section.
func writeModuleSection(b *strings.Builder, d ModuleDoc) {
	rec := d.Record
	fmt.Fprintf(b, "### %s\n\n", rec.Name)

	if desc := escapeBlockMarkers(strings.TrimSpace(d.Description)); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	writeCodeBlock(b, "ts", fmt.Sprintf("import { %s } from %q;", rec.Identifier(), rec.ImportPath))

	b.WriteString("**Props**\n\n")
	decl := d.Declaration.Text
	if decl == "" {
		decl = PlaceholderDeclaration
	}
	if d.Declaration.Truncated {
		decl += fmt.Sprintf("\n// ... truncated after %d lines", MaxDeclarationLines)
	}
	writeCodeBlock(b, "ts", decl)

	if d.Example != nil && d.Example.Code != "" {
		b.WriteString("**Example**\n\n")
		writeCodeBlock(b, langFor(d.Example.SourceStory), d.Example.Code)
	}
}

// escapeBlockMarkers backslash-escapes lines of free text that would start a
// Markdown block construct, so a doc comment cannot open a section or swallow
// the rest of the document.
func escapeBlockMarkers(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "```"),
			strings.HasPrefix(trimmed, "~~~"),
			strings.HasPrefix(trimmed, "<"),
			trimmed != "" && strings.Trim(trimmed, "=") == "",
			trimmed != "" && strings.Trim(trimmed, "- ") == "":
			lines[i] = `\` + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// writeCodeBlock appends a fenced block, lengthening the fence when the code
// itself contains backtick runs.
func writeCodeBlock(b *strings.Builder, lang, code string) {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteString("\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence)
	b.WriteString("\n\n")
}

func langFor(file string) string {
	switch path.Ext(file) {
	case ".ts":
		return "ts"
	case ".jsx", ".js":
		return "jsx"
	default:
		return "tsx"
	}
}

// folderTitle turns a folder name into a heading ("components" -> "Components").
func folderTitle(folder string) string {
	if folder == "" {
		return "Modules"
	}
	r := []rune(folder)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
