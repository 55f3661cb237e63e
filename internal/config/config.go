package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the optional project configuration file looked up in the
// project root.
const FileName = "dsuigen.toml"

// Extractor modes accepted by DocsConfig.Extractor.
const (
	ExtractorAST  = "ast"
	ExtractorText = "text"
)

// Config represents the top-level generator configuration.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Output  OutputConfig  `toml:"output"`
	Docs    DocsConfig    `toml:"docs"`
}

// ProjectConfig describes where the component library sources live.
type ProjectConfig struct {
	SourceDir   string   `toml:"source_dir"`
	Folders     []string `toml:"folders"`
	StoriesDir  string   `toml:"stories_dir"`
	PackageJSON string   `toml:"package_json"`
	TSConfig    string   `toml:"tsconfig"`
	// PackageName overrides the "name" field read from PackageJSON.
	PackageName string `toml:"package_name"`
}

// OutputConfig holds the build-output layout the export map points at.
type OutputConfig struct {
	ESMDir      string   `toml:"esm_dir"`
	CJSDir      string   `toml:"cjs_dir"`
	TypesDir    string   `toml:"types_dir"`
	Files       []string `toml:"files"`
	SideEffects []string `toml:"side_effects"`
}

// DocsConfig holds settings for the Markdown reference.
type DocsConfig struct {
	Path      string `toml:"path"`
	Title     string `toml:"title"`
	Extractor string `toml:"extractor"`
	CacheSize int    `toml:"cache_size"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			SourceDir:   "src",
			Folders:     []string{"components", "lib", "hooks"},
			StoriesDir:  "src/stories",
			PackageJSON: "package.json",
			TSConfig:    "tsconfig.json",
		},
		Output: OutputConfig{
			ESMDir:      "dist/esm",
			CJSDir:      "dist/cjs",
			TypesDir:    "dist/types",
			Files:       []string{"dist"},
			SideEffects: []string{"**/*.css"},
		},
		Docs: DocsConfig{
			Path:      "docs/AI_COMPONENTS.md",
			Title:     "Component Reference",
			Extractor: ExtractorAST,
			CacheSize: 256,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Docs.Extractor {
	case ExtractorAST, ExtractorText:
	default:
		return fmt.Errorf("invalid docs.extractor %q: want %q or %q", c.Docs.Extractor, ExtractorAST, ExtractorText)
	}
	if len(c.Project.Folders) == 0 {
		return fmt.Errorf("project.folders must not be empty")
	}
	return nil
}
