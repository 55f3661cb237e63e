package docgen

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// VerifySections parses the generated Markdown and checks that it contains
// exactly one level-3 heading per module, in the given order. Code inside
// fenced blocks cannot produce headings, so a declaration or example that
// breaks out of its fence is caught here.
func VerifySections(doc []byte, names []string) error {
	root := markdown.Parser().Parse(text.NewReader(doc))

	var headings []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 3 {
			headings = append(headings, headingText(h, doc))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return err
	}

	if len(headings) != len(names) {
		return fmt.Errorf("markdown has %d module sections, want %d", len(headings), len(names))
	}
	for i, name := range names {
		if headings[i] != name {
			return fmt.Errorf("module section %d is %q, want %q", i+1, headings[i], name)
		}
	}
	return nil
}

func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}
