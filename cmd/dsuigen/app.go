package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/julianshen/dsuigen/internal/config"
	"github.com/julianshen/dsuigen/internal/docgen"
	"github.com/julianshen/dsuigen/internal/vfs"
)

var (
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"})
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"})
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	root       string
	verbose    bool
	logger     *log.Logger
}

// app is a loaded project: its configuration, filesystem and generator.
type app struct {
	cfg    *config.Config
	fs     *vfs.OS
	gen    *docgen.Generator
	logger *log.Logger
}

func (o *options) open() (*app, error) {
	root := o.root
	if root == "" {
		root = "."
	}
	cfgPath := o.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	fsys, err := vfs.NewOS(root, cfg.Docs.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("opening project root: %w", err)
	}

	logger := o.logger
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &app{
		cfg:    cfg,
		fs:     fsys,
		gen:    docgen.NewGenerator(docgen.Options{FS: fsys, Config: cfg, Logger: logger}),
		logger: logger,
	}, nil
}

func (a *app) exports(cmd *cobra.Command) error {
	res, err := a.gen.GenerateExports(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd, fmt.Sprintf("exports: %d modules written to %s", res.Modules, res.Path), res.Skipped)
	return nil
}

func (a *app) docs(cmd *cobra.Command, mode string) error {
	res, err := a.gen.GenerateDocs(cmd.Context(), mode)
	if err != nil {
		return err
	}
	printSummary(cmd, fmt.Sprintf("docs: %d modules (%s), %d examples written to %s",
		res.Modules, kindCounts(res.Kinds), res.Examples, res.Path), res.Skipped)
	return nil
}

// kindCounts formats the declaration outcomes in a fixed order.
func kindCounts(kinds map[docgen.DeclarationKind]int) string {
	var parts []string
	for _, k := range []docgen.DeclarationKind{docgen.DeclarationTypeChecked, docgen.DeclarationTextHeuristic, docgen.DeclarationNone} {
		if n := kinds[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func printSummary(cmd *cobra.Command, line string, skipped []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, summaryStyle.Render(line))
	if len(skipped) > 0 {
		fmt.Fprintln(out, skippedStyle.Render(fmt.Sprintf("skipped: %s", strings.Join(skipped, ", "))))
	}
}
