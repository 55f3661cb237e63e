package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- helpers ----------

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "@dsui/ui",
  "version": "0.3.0"
}
`)
	writeFile(t, filepath.Join(dir, "tsconfig.json"), `{
  // emitted by the scaffolder
  "compilerOptions": { "jsx": "react-jsx", },
}
`)
	writeFile(t, filepath.Join(dir, "src/components/Button/Button.tsx"), `export interface ButtonProps {
  variant?: "primary" | "ghost";
}

export function Button(props: ButtonProps) {
  return <button />;
}
`)
	writeFile(t, filepath.Join(dir, "src/components/Button/Button.stories.tsx"), `export const Default = () => (
  <Button variant="primary">Click</Button>
);
`)
	writeFile(t, filepath.Join(dir, "src/components/Badge/index.ts"), `export type BadgeProps = { tone: "info" | "warn" };
export const Badge = (props: BadgeProps) => null;
`)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(log.New(io.Discard))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ---------- tests ----------

func TestVersionString(t *testing.T) {
	s := versionString()
	assert.Contains(t, s, "dsuigen")
	assert.Contains(t, s, version)
	assert.Contains(t, s, commit)
	assert.Contains(t, s, date)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, versionString()+"\n", out)
}

func TestRootDefaultFlags(t *testing.T) {
	cmd := newRootCmd(log.New(io.Discard))
	root, _ := cmd.PersistentFlags().GetString("root")
	assert.Equal(t, ".", root)
	cfg, _ := cmd.PersistentFlags().GetString("config")
	assert.Empty(t, cfg)
}

func TestRootRunsExportsThenDocs(t *testing.T) {
	dir := writeLibrary(t)
	out, err := execute(t, "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "exports: 2 modules written to package.json")
	assert.Contains(t, out, "docs: 2 modules (2 type-checked), 1 examples written to docs/AI_COMPONENTS.md")

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	var pkg struct {
		Version string                     `json:"version"`
		Exports map[string]json.RawMessage `json:"exports"`
	}
	require.NoError(t, json.Unmarshal(data, &pkg))
	assert.Equal(t, "0.3.0", pkg.Version)
	assert.Len(t, pkg.Exports, 2)
	assert.Contains(t, pkg.Exports, "./button")
	assert.Contains(t, pkg.Exports, "./badge")

	md, err := os.ReadFile(filepath.Join(dir, "docs/AI_COMPONENTS.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "### Button")
	assert.Contains(t, string(md), "### Badge")
}

func TestDocsTextMode(t *testing.T) {
	dir := writeLibrary(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "tsconfig.json")))

	out, err := execute(t, "--root", dir, "docs", "--mode", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "2 text-heuristic")
}

func TestDocsASTModeWithoutTSConfigFails(t *testing.T) {
	dir := writeLibrary(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "tsconfig.json")))

	_, err := execute(t, "--root", dir, "docs", "--mode", "ast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project tsconfig found")
	assert.NoFileExists(t, filepath.Join(dir, "docs/AI_COMPONENTS.md"))
}

func TestDocsInvalidMode(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "docs", "--mode", "regex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --mode "regex"`)
}

func TestConfigFileOverrides(t *testing.T) {
	dir := writeLibrary(t)
	writeFile(t, filepath.Join(dir, "dsuigen.toml"), `[docs]
path = "REFERENCE.md"
title = "Kit"
extractor = "text"
`)
	out, err := execute(t, "--root", dir, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "written to REFERENCE.md")

	md, err := os.ReadFile(filepath.Join(dir, "REFERENCE.md"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(md, []byte("# Kit\n")))
}

func TestInvalidConfigFile(t *testing.T) {
	dir := writeLibrary(t)
	writeFile(t, filepath.Join(dir, "dsuigen.toml"), "[docs\n")
	_, err := execute(t, "--root", dir, "exports")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestTypesfixCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dist/types/src/components/Button/Button.d.ts"), "export {};\n")

	out, err := execute(t, "--root", dir, "typesfix")
	require.NoError(t, err)
	assert.Contains(t, out, "typesfix: 1 declaration files moved into dist/types")
	assert.FileExists(t, filepath.Join(dir, "dist/types/components/Button/Button.d.ts"))
	assert.NoDirExists(t, filepath.Join(dir, "dist/types/src"))
}

func TestPreviewCmd(t *testing.T) {
	dir := writeLibrary(t)
	_, err := execute(t, "--root", dir, "docs")
	require.NoError(t, err)

	out, err := execute(t, "--root", dir, "preview", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Component Reference")
	assert.Contains(t, out, "Button")
}

func TestPreviewWithoutReference(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "preview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run dsuigen docs first")
}
