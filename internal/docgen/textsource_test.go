package docgen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/dsuigen/internal/vfs"
)

func TestExtractPropsTextSingleLine(t *testing.T) {
	symbol, text, truncated, ok := ExtractPropsText("export type FooProps = { a: string };\nexport const Foo = () => null;\n", "Foo")
	require.True(t, ok)
	assert.Equal(t, "FooProps", symbol)
	assert.Equal(t, "type FooProps = { a: string };", text)
	assert.False(t, truncated)
}

func TestExtractPropsTextIntersection(t *testing.T) {
	src := `import { cva, type VariantProps } from "class-variance-authority";

export type ButtonProps = React.ButtonHTMLAttributes<HTMLButtonElement> &
  VariantProps<typeof buttonVariants> & {
    asChild?: boolean;
  };

export function Button(props: ButtonProps) {}
`
	symbol, text, _, ok := ExtractPropsText(src, "Button")
	require.True(t, ok)
	assert.Equal(t, "ButtonProps", symbol)
	assert.Equal(t, `type ButtonProps = React.ButtonHTMLAttributes<HTMLButtonElement> &
  VariantProps<typeof buttonVariants> & {
    asChild?: boolean;
  };`, text)
}

func TestExtractPropsTextPrefersModuleProps(t *testing.T) {
	src := `interface IconProps {
  size: number;
}

export interface DialogProps {
  open: boolean;
}
`
	symbol, text, _, ok := ExtractPropsText(src, "Dialog")
	require.True(t, ok)
	assert.Equal(t, "DialogProps", symbol)
	assert.Equal(t, "interface DialogProps {\n  open: boolean;\n}", text)

	symbol, _, _, ok = ExtractPropsText(src, "Sheet")
	require.True(t, ok)
	assert.Equal(t, "IconProps", symbol)
}

func TestExtractPropsTextIgnoresVariantProps(t *testing.T) {
	_, _, _, ok := ExtractPropsText("type VariantProps = { tone: string };\n", "Tag")
	assert.False(t, ok)
}

func TestExtractPropsTextTruncatesAtCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("export interface HugeProps {\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "  field%d: string;\n", i)
	}
	b.WriteString("}\n")

	_, text, truncated, ok := ExtractPropsText(b.String(), "Huge")
	require.True(t, ok)
	assert.True(t, truncated)
	assert.Len(t, strings.Split(text, "\n"), MaxDeclarationLines)
}

func TestTextHeuristicDeclaration(t *testing.T) {
	fsys := vfs.NewMem(map[string]string{
		"src/components/Tag/Tag.tsx":   "export type TagProps = { label: string };\n",
		"src/components/Plain/Plain.ts": "export const Plain = 1;\n",
	})
	s := NewTextHeuristic(fsys)

	info := s.Declaration(ModuleRecord{Name: "Tag", EntryPath: "src/components/Tag/Tag.tsx"})
	assert.Equal(t, DeclarationTextHeuristic, info.Kind)
	assert.Equal(t, "TagProps", info.Symbol)
	assert.Equal(t, "type TagProps = { label: string };", info.Text)

	info = s.Declaration(ModuleRecord{Name: "Plain", EntryPath: "src/components/Plain/Plain.ts"})
	assert.Equal(t, DeclarationNone, info.Kind)
	assert.Equal(t, PlaceholderDeclaration, info.Text)

	info = s.Declaration(ModuleRecord{Name: "Gone", EntryPath: "src/components/Gone/Gone.tsx"})
	assert.Equal(t, DeclarationNone, info.Kind)
}
