package docgen

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// defaultStoryExport is the story whose render expression is preferred.
const defaultStoryExport = "Default"

// storyExportRe matches "export const Name[: Type] = (args) => (" up to and
// including the opening parenthesis of the returned expression.
var storyExportRe = regexp.MustCompile(`(?m)^export\s+const\s+([A-Za-z_$][\w$]*)\s*(?::\s*[^=\n]+)?=\s*(?:\([^()]*\)|[A-Za-z_$][\w$]*)\s*=>\s*\(`)

// Harvester finds usage examples in Storybook story files.
type Harvester struct {
	fs         vfs.FS
	storiesDir string
}

// NewHarvester creates a Harvester. Stories are looked up next to the
// module's entry file first, then under storiesDir.
func NewHarvester(fsys vfs.FS, storiesDir string) *Harvester {
	return &Harvester{fs: fsys, storiesDir: storiesDir}
}

// Harvest returns the module's example, or nil when there is no story file
// or no export with an arrow function returning a parenthesized expression.
func (h *Harvester) Harvest(rec ModuleRecord) *ExampleSnippet {
	storyPath, source, ok := h.findStory(rec)
	if !ok {
		return nil
	}
	name, code, ok := ExtractStoryExample(source)
	if !ok {
		return nil
	}
	if name != defaultStoryExport {
		code = fmt.Sprintf("// Example from %q story\n%s", name, code)
	}
	return &ExampleSnippet{Code: code, SourceStory: storyPath, Export: name}
}

func (h *Harvester) findStory(rec ModuleRecord) (string, string, bool) {
	dirs := []string{path.Dir(rec.EntryPath)}
	if h.storiesDir != "" {
		dirs = append(dirs, h.storiesDir, path.Join(h.storiesDir, rec.Folder))
	}
	for _, dir := range dirs {
		for _, ext := range sourceExtensions {
			candidate := path.Join(dir, rec.Name+".stories"+ext)
			data, err := h.fs.ReadFile(candidate)
			if err != nil {
				continue
			}
			return candidate, string(data), true
		}
	}
	return "", "", false
}

// ExtractStoryExample returns the render expression of the "Default" story
// export, or of the first matching export when there is no Default. The
// expression is returned without its enclosing parentheses and dedented.
func ExtractStoryExample(source string) (name, code string, ok bool) {
	matches := storyExportRe.FindAllStringSubmatchIndex(source, -1)
	var (
		firstName, firstCode string
		haveFirst            bool
	)
	for _, m := range matches {
		exportName := source[m[2]:m[3]]
		body, closed := balancedParen(source[m[1]:])
		if !closed {
			continue
		}
		body = dedent(body)
		if body == "" {
			continue
		}
		if exportName == defaultStoryExport {
			return exportName, body, true
		}
		if !haveFirst {
			firstName, firstCode, haveFirst = exportName, body, true
		}
	}
	return firstName, firstCode, haveFirst
}

// balancedParen returns the text before the parenthesis that closes an
// already-open one. Quotes delimit strings only inside JSX expression
// containers and tag attributes, so apostrophes in JSX text do not count.
func balancedParen(s string) (string, bool) {
	depth := 1
	braces := 0
	inTag := false
	var quote rune
	for i, r := range s {
		if quote != 0 {
			if r == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'', '`':
			if braces > 0 || inTag {
				quote = r
			}
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case '<':
			if braces == 0 && i+1 < len(s) && isTagStart(s[i+1]) {
				inTag = true
			}
		case '>':
			if braces == 0 {
				inTag = false
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], true
			}
		}
	}
	return "", false
}

func isTagStart(b byte) bool {
	return b == '/' || b == '>' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// dedent trims blank edge lines and removes the common leading indentation.
func dedent(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = strings.TrimRight(line[indent:], " \t")
		} else {
			lines[i] = strings.TrimSpace(line)
		}
	}
	return strings.Join(lines, "\n")
}
