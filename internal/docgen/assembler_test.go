package docgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleMarkdown(t *testing.T) {
	docs := []ModuleDoc{
		{
			Record:      ModuleRecord{Name: "Button", Folder: "components", ImportPath: "@dsui/ui/button"},
			Declaration: DeclarationInfo{Text: "interface ButtonProps {\n  variant?: string;\n}", Kind: DeclarationTypeChecked},
			Example:     &ExampleSnippet{Code: "<Button>Save</Button>", SourceStory: "src/components/Button/Button.stories.tsx"},
			Description: "Triggers an action.",
		},
		{
			Record:      ModuleRecord{Name: "cn", Folder: "lib", ImportPath: "@dsui/ui/cn"},
			Declaration: placeholder(),
		},
	}

	want := "# Component Reference\n\n" +
		GeneratedNote + "\n\n" +
		"## Components\n\n" +
		"### Button\n\n" +
		"Triggers an action.\n\n" +
		"```ts\nimport { Button } from \"@dsui/ui/button\";\n```\n\n" +
		"**Props**\n\n" +
		"```ts\ninterface ButtonProps {\n  variant?: string;\n}\n```\n\n" +
		"**Example**\n\n" +
		"```tsx\n<Button>Save</Button>\n```\n\n" +
		"## Lib\n\n" +
		"### cn\n\n" +
		"```ts\nimport { cn } from \"@dsui/ui/cn\";\n```\n\n" +
		"**Props**\n\n" +
		"```ts\n// No explicit Props type found\n```\n"

	assert.Equal(t, want, AssembleMarkdown("Component Reference", docs))
}

func TestAssembleMarkdownTruncated(t *testing.T) {
	docs := []ModuleDoc{{
		Record:      ModuleRecord{Name: "Huge", Folder: "components", ImportPath: "@dsui/ui/huge"},
		Declaration: DeclarationInfo{Text: "interface HugeProps {\n  a: string;", Kind: DeclarationTextHeuristic, Truncated: true},
	}}
	md := AssembleMarkdown("Reference", docs)
	assert.Contains(t, md, "  a: string;\n// ... truncated after 50 lines\n```")
}

func TestAssembleMarkdownLengthensFence(t *testing.T) {
	docs := []ModuleDoc{{
		Record:      ModuleRecord{Name: "Code", Folder: "components", ImportPath: "@dsui/ui/code"},
		Declaration: placeholder(),
		Example:     &ExampleSnippet{Code: "<Code>{`\n```js\nx\n```\n`}</Code>"},
	}}
	md := AssembleMarkdown("Reference", docs)
	assert.Contains(t, md, "````tsx\n")
	require.NoError(t, VerifySections([]byte(md), []string{"Code"}))
}

func TestAssembleMarkdownEmpty(t *testing.T) {
	md := AssembleMarkdown("Reference", nil)
	assert.Equal(t, "# Reference\n\n"+GeneratedNote+"\n", md)
	assert.False(t, strings.Contains(md, "##"))
}

func TestFolderTitle(t *testing.T) {
	assert.Equal(t, "Components", folderTitle("components"))
	assert.Equal(t, "Hooks", folderTitle("hooks"))
	assert.Equal(t, "Modules", folderTitle(""))
}

func TestAssembleMarkdownEscapesDescriptionBlocks(t *testing.T) {
	docs := []ModuleDoc{
		{
			Record:      ModuleRecord{Name: "Card", Folder: "components", ImportPath: "@dsui/ui/card"},
			Declaration: placeholder(),
			Description: "A surface.\n\n### Accessibility\nUses a region role.\n```tsx\n<pre>\n===",
		},
		{
			Record:      ModuleRecord{Name: "Sheet", Folder: "components", ImportPath: "@dsui/ui/sheet"},
			Declaration: placeholder(),
		},
	}
	md := AssembleMarkdown("Reference", docs)
	assert.Contains(t, md, "A surface.\n\n\\### Accessibility\nUses a region role.\n\\```tsx\n\\<pre>\n\\===\n\n")
	require.NoError(t, VerifySections([]byte(md), []string{"Card", "Sheet"}))
}

func TestEscapeBlockMarkersLeavesProse(t *testing.T) {
	text := "Renders a badge.\n- one item\nSee #42 for details."
	assert.Equal(t, text, escapeBlockMarkers(text))
}

func TestAssembleMarkdownKebabCaseImport(t *testing.T) {
	docs := []ModuleDoc{{
		Record:      ModuleRecord{Name: "use-mobile", Folder: "hooks", ImportPath: "@dsui/ui/use-mobile"},
		Declaration: placeholder(),
	}}
	md := AssembleMarkdown("Reference", docs)
	assert.Contains(t, md, "### use-mobile\n")
	assert.Contains(t, md, "import { useMobile } from \"@dsui/ui/use-mobile\";")
}
