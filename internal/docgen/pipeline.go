package docgen

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/log"

	"github.com/julianshen/dsuigen/internal/config"
	"github.com/julianshen/dsuigen/internal/pkgjson"
	"github.com/julianshen/dsuigen/internal/vfs"
)

// DefaultPackageName is used when neither the config nor package.json names
// the package.
const DefaultPackageName = "@dsui/ui"

// Options configures a Generator.
type Options struct {
	FS     vfs.FS
	Config *config.Config
	Logger *log.Logger
	// Source overrides the declaration backend selected by the extractor
	// mode.
	Source DeclarationSource
}

// Generator runs the scan → resolve → extract → harvest → assemble pipeline
// against one project tree.
type Generator struct {
	fs     vfs.FS
	cfg    *config.Config
	logger *log.Logger
	source DeclarationSource
}

// NewGenerator creates a Generator. A nil Config means defaults and a nil
// Logger discards output.
func NewGenerator(opts Options) *Generator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{fs: opts.FS, cfg: cfg, logger: logger, source: opts.Source}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Collection is the result of scanning and resolving every source folder.
type Collection struct {
	PackageName string
	Records     []ModuleRecord
	// Skipped lists candidates without a resolvable entry or with a subpath
	// key already taken, as "<folder>/<name>".
	Skipped []string

	pkg *pkgjson.Object
}

// Collect scans the configured folders in order and resolves every
// candidate. Unresolvable candidates are logged and skipped.
func (g *Generator) Collect(ctx context.Context) (*Collection, error) {
	pkg, err := g.readPackage()
	if err != nil {
		return nil, err
	}
	col := &Collection{PackageName: g.packageName(pkg), pkg: pkg}

	scanner := NewScanner(g.fs)
	keys := make(map[string]string)
	for _, folder := range g.cfg.Project.Folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folderPath := path.Join(g.cfg.Project.SourceDir, folder)
		candidates, err := scanner.Scan(folderPath)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", folderPath, err)
		}
		for _, c := range candidates {
			rec, ok := Resolve(g.fs, folder, folderPath, c, col.PackageName)
			if !ok {
				g.logger.Warn("no entry file, skipping", "module", c.Name, "folder", folder)
				col.Skipped = append(col.Skipped, folder+"/"+c.Name)
				continue
			}
			key := rec.SubpathKey()
			if prev, dup := keys[key]; dup {
				g.logger.Warn("subpath already taken, skipping", "module", rec.Name, "key", key, "by", prev)
				col.Skipped = append(col.Skipped, folder+"/"+c.Name)
				continue
			}
			keys[key] = rec.EntryPath
			g.logger.Debug("resolved", "module", rec.Name, "entry", rec.EntryPath)
			col.Records = append(col.Records, rec)
		}
	}
	return col, nil
}

// readPackage loads package.json. A missing file starts from an empty
// document; a malformed one is an error.
func (g *Generator) readPackage() (*pkgjson.Object, error) {
	name := g.cfg.Project.PackageJSON
	data, err := g.fs.ReadFile(name)
	if err != nil {
		if vfs.IsNotExist(err) {
			g.logger.Warn("package metadata not found, starting empty", "file", name)
			return pkgjson.New(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	doc, err := pkgjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return doc, nil
}

func (g *Generator) packageName(pkg *pkgjson.Object) string {
	if g.cfg.Project.PackageName != "" {
		return g.cfg.Project.PackageName
	}
	if name := pkg.GetString("name"); name != "" {
		return name
	}
	return DefaultPackageName
}

// ExportsResult summarizes a package.json update.
type ExportsResult struct {
	Path    string
	Modules int
	Root    bool
	Skipped []string
}

// GenerateExports rewrites the managed package.json fields from the scanned
// modules.
func (g *Generator) GenerateExports(ctx context.Context) (*ExportsResult, error) {
	col, err := g.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	barrel, _ := firstExisting(g.fs, g.cfg.Project.SourceDir, "index")
	m := BuildExportMap(col.Records, g.layout(), barrel)
	if err := m.Apply(col.pkg); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	data, err := col.pkg.Encode()
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	out := g.cfg.Project.PackageJSON
	if err := g.fs.WriteFile(out, data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	g.logger.Info("wrote export map", "file", out, "modules", len(m.Entries))
	return &ExportsResult{Path: out, Modules: len(m.Entries), Root: m.Root != nil, Skipped: col.Skipped}, nil
}

func (g *Generator) layout() Layout {
	o := g.cfg.Output
	return Layout{
		SourceDir:   g.cfg.Project.SourceDir,
		ESMDir:      o.ESMDir,
		CJSDir:      o.CJSDir,
		TypesDir:    o.TypesDir,
		Files:       o.Files,
		SideEffects: o.SideEffects,
	}
}

// DocsResult summarizes a Markdown reference run.
type DocsResult struct {
	Path     string
	Modules  int
	Examples int
	// Kinds counts declarations per backend outcome.
	Kinds   map[DeclarationKind]int
	Skipped []string
}

// GenerateDocs writes the Markdown component reference. mode selects the
// declaration backend ("ast" or "text"); "" uses the configured one.
func (g *Generator) GenerateDocs(ctx context.Context, mode string) (*DocsResult, error) {
	col, err := g.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	source, err := g.declarationSource(mode)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if err := source.Prepare(ctx, col.Records); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	harvester := NewHarvester(g.fs, g.cfg.Project.StoriesDir)
	res := &DocsResult{Path: g.cfg.Docs.Path, Kinds: make(map[DeclarationKind]int), Skipped: col.Skipped}
	docs := make([]ModuleDoc, 0, len(col.Records))
	names := make([]string, 0, len(col.Records))
	for _, rec := range col.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := ModuleDoc{Record: rec, Declaration: source.Declaration(rec)}
		doc.Example = harvester.Harvest(rec)
		doc.Description = readmeDescription(g.fs, rec)
		if doc.Description == "" {
			doc.Description = doc.Declaration.Description
		}

		res.Kinds[doc.Declaration.Kind]++
		if doc.Example != nil {
			res.Examples++
		}
		if doc.Declaration.Truncated {
			g.logger.Warn("declaration truncated", "module", rec.Name, "lines", MaxDeclarationLines)
		}
		g.logger.Info("documented", "module", rec.Name, "declaration", doc.Declaration.Kind, "example", doc.Example != nil)

		docs = append(docs, doc)
		names = append(names, rec.Name)
	}

	markdown := AssembleMarkdown(g.cfg.Docs.Title, docs)
	if err := VerifySections([]byte(markdown), names); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if err := g.fs.WriteFile(res.Path, []byte(markdown)); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	res.Modules = len(docs)
	g.logger.Info("wrote component reference", "file", res.Path, "modules", res.Modules)
	return res, nil
}

func (g *Generator) declarationSource(mode string) (DeclarationSource, error) {
	if g.source != nil {
		return g.source, nil
	}
	if mode == "" {
		mode = g.cfg.Docs.Extractor
	}
	switch mode {
	case config.ExtractorAST:
		return NewTypeChecked(g.fs, g.cfg.Project.TSConfig, g.logger)
	case config.ExtractorText:
		return NewTextHeuristic(g.fs), nil
	default:
		return nil, fmt.Errorf("unknown extractor mode %q", mode)
	}
}

// FixTypes runs the type-folder fixup for the configured layout.
func (g *Generator) FixTypes() (*FixTypesResult, error) {
	res, err := FixTypes(g.fs, g.cfg.Output.TypesDir, g.cfg.Project.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("typesfix: %w", err)
	}
	g.logger.Info("flattened declarations", "dir", g.cfg.Output.TypesDir, "files", len(res.Copied), "removed", res.Removed)
	return res, nil
}
