package docgen

import (
	"context"
	"regexp"
	"strings"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// MaxDeclarationLines caps how many lines the text heuristic captures for a
// single declaration.
const MaxDeclarationLines = 50

// propsDeclRe matches the first line of a props type alias or interface.
var propsDeclRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:declare\s+)?(?:type\s+(\w+)\b[^=]*=|interface\s+(\w+)\b[^{]*\{)`)

// TextHeuristic extracts declarations from raw source text without parsing.
type TextHeuristic struct {
	fs vfs.FS
}

// NewTextHeuristic creates a TextHeuristic declaration source.
func NewTextHeuristic(fsys vfs.FS) *TextHeuristic {
	return &TextHeuristic{fs: fsys}
}

// Prepare is a no-op; every lookup reads its own file.
func (s *TextHeuristic) Prepare(context.Context, []ModuleRecord) error { return nil }

// Declaration scans the entry file for the module's props declaration.
// Unreadable files and files without a match yield the placeholder.
func (s *TextHeuristic) Declaration(rec ModuleRecord) DeclarationInfo {
	data, err := s.fs.ReadFile(rec.EntryPath)
	if err != nil {
		return placeholder()
	}
	symbol, text, truncated, ok := ExtractPropsText(string(data), rec.Identifier())
	if !ok {
		return placeholder()
	}
	return DeclarationInfo{
		Text:      text,
		Kind:      DeclarationTextHeuristic,
		Symbol:    symbol,
		Truncated: truncated,
	}
}

// ExtractPropsText finds a "type <X>Props =" or "interface <X>Props {" line,
// preferring <name>Props, and captures the declaration by brace balance. It
// stops when the balance returns to zero, at a terminating semicolon while the
// balance is zero, or after MaxDeclarationLines lines, in which case truncated
// is true. The leading export keyword is stripped.
func ExtractPropsText(source, name string) (symbol, text string, truncated, ok bool) {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		declName := matchPropsLine(line)
		if declName == "" {
			continue
		}
		if declName == name+"Props" {
			start, symbol = i, declName
			break
		}
		if start < 0 {
			start, symbol = i, declName
		}
	}
	if start < 0 {
		return "", "", false, false
	}

	var captured []string
	balance := 0
	opened := false
	complete := false
	for i := start; i < len(lines) && len(captured) < MaxDeclarationLines; i++ {
		line := lines[i]
		if i == start {
			line = stripExport(line)
		}
		captured = append(captured, line)

		for _, r := range line {
			switch r {
			case '{':
				balance++
				opened = true
			case '}':
				balance--
			}
		}
		if opened && balance <= 0 {
			complete = true
			break
		}
		if balance == 0 && strings.HasSuffix(strings.TrimSpace(line), ";") {
			complete = true
			break
		}
	}

	truncated = !complete && len(captured) == MaxDeclarationLines
	text = strings.TrimRight(strings.Join(captured, "\n"), " \t\n")
	return symbol, text, truncated, true
}

func matchPropsLine(line string) string {
	m := propsDeclRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	if !isPropsName(name) {
		return ""
	}
	return name
}

func stripExport(line string) string {
	line = strings.TrimLeft(line, " \t")
	line = strings.TrimPrefix(line, "export ")
	line = strings.TrimLeft(line, " \t")
	return strings.TrimPrefix(line, "declare ")
}
