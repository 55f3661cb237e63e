package docgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// ErrNoProjectConfig is returned when type-checked extraction cannot find the
// project's TypeScript configuration.
var ErrNoProjectConfig = errors.New("no project tsconfig found")

// TSConfig holds the module-resolution settings of a tsconfig.json.
type TSConfig struct {
	// Dir is the directory containing the tsconfig file.
	Dir     string
	BaseURL string
	// aliases are the compilerOptions.paths patterns, most specific first.
	aliases []pathAlias
}

type pathAlias struct {
	prefix  string
	suffix  string
	wild    bool
	targets []string
}

type rawTSConfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadTSConfig reads a tsconfig.json, which may contain comments and
// trailing commas. A missing file yields ErrNoProjectConfig.
func LoadTSConfig(fsys vfs.FS, name string) (*TSConfig, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		if vfs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoProjectConfig, name)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var raw rawTSConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	cfg := &TSConfig{
		Dir:     path.Dir(vfs.Clean(name)),
		BaseURL: raw.CompilerOptions.BaseURL,
	}
	for pattern, targets := range raw.CompilerOptions.Paths {
		alias := pathAlias{prefix: pattern, targets: targets}
		if before, after, found := strings.Cut(pattern, "*"); found {
			alias = pathAlias{prefix: before, suffix: after, wild: true, targets: targets}
		}
		cfg.aliases = append(cfg.aliases, alias)
	}
	sort.Slice(cfg.aliases, func(i, j int) bool {
		a, b := cfg.aliases[i], cfg.aliases[j]
		if len(a.prefix) != len(b.prefix) {
			return len(a.prefix) > len(b.prefix)
		}
		if a.wild != b.wild {
			return !a.wild
		}
		return a.prefix+a.suffix < b.prefix+b.suffix
	})
	return cfg, nil
}

// Alias expands a non-relative module specifier through compilerOptions.paths.
// It returns candidate base paths relative to the filesystem root, or nil when
// no pattern matches.
func (c *TSConfig) Alias(specifier string) []string {
	if c == nil {
		return nil
	}
	base := path.Join(c.Dir, c.BaseURL)
	for _, a := range c.aliases {
		var star string
		switch {
		case !a.wild:
			if specifier != a.prefix {
				continue
			}
		case strings.HasPrefix(specifier, a.prefix) && strings.HasSuffix(specifier, a.suffix) &&
			len(specifier) >= len(a.prefix)+len(a.suffix):
			star = specifier[len(a.prefix) : len(specifier)-len(a.suffix)]
		default:
			continue
		}
		out := make([]string, 0, len(a.targets))
		for _, target := range a.targets {
			out = append(out, vfs.Clean(path.Join(base, strings.Replace(target, "*", star, 1))))
		}
		return out
	}
	return nil
}
