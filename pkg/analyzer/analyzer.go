// Package analyzer ties the scanner, the extractor, and the extraction cache
// into one pipeline: scan a project root, extract a file tree per source file
// in parallel, and hand the trees to the graph builders. Problems with
// individual files become diagnostics, not errors.
package analyzer

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/l3aro/go-graph-query/internal/config"
	"github.com/l3aro/go-graph-query/internal/log"
	"github.com/l3aro/go-graph-query/internal/scanner"
	"github.com/l3aro/go-graph-query/pkg/cache"
	"github.com/l3aro/go-graph-query/pkg/callgraph"
	"github.com/l3aro/go-graph-query/pkg/lang"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// Analyzer runs the extraction pipeline for a project.
type Analyzer struct {
	cfg    *config.Config
	langs  *lang.Registry
	ext    *syntax.Extractor
	scan   *scanner.Scanner
	cache  *cache.TreeCache
	logger log.Logger
}

// New creates an analyzer from the given configuration. The extraction cache
// is loaded from cfg.CachePath when present; a corrupt or missing cache only
// means cold extraction.
func New(cfg *config.Config, logger log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}

	langs := lang.NewRegistry()
	opts := scanner.DefaultOptions()
	opts.Excludes = append(opts.Excludes, cfg.Exclude...)
	opts.Extensions = cfg.Extensions

	c := cache.New(cfg.CacheSize)
	if cfg.CachePath != "" {
		if err := c.LoadFile(cfg.CachePath); err != nil {
			logger.Warn("discarding extraction cache", "path", cfg.CachePath, "error", err)
			c = cache.New(cfg.CacheSize)
		}
	}

	return &Analyzer{
		cfg:    cfg,
		langs:  langs,
		ext:    syntax.NewExtractor(langs),
		scan:   scanner.New(opts, langs),
		cache:  c,
		logger: logger,
	}
}

// Languages returns the language registry the analyzer scans with.
func (a *Analyzer) Languages() *lang.Registry {
	return a.langs
}

// LoadTrees scans root and extracts a file tree for every supported source
// file, using up to cfg.Workers goroutines. Unreadable files and files the
// grammar rejects are reported as diagnostics; the returned trees keep the
// scanner's walk order.
func (a *Analyzer) LoadTrees(ctx context.Context, root string) ([]*syntax.FileTree, []Diagnostic, error) {
	files, err := a.scan.Scan(root)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	trees := make([]*syntax.FileTree, len(files))
	var diags collector

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(a.cfg.Workers)
	for i, f := range files {
		i, f := i, f
		grp.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			tree, d := a.extractOne(f)
			if d != nil {
				diags.add(*d)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	a.persistCache()

	out := make([]*syntax.FileTree, 0, len(trees))
	for _, t := range trees {
		if t != nil {
			out = append(out, t)
		}
	}
	a.logger.Debug("extraction finished",
		"files", len(files), "trees", len(out), "diagnostics", len(diags.diags))
	return out, diags.diags, nil
}

// extractOne returns the tree for a single file, served from the cache when
// the modification time still matches.
func (a *Analyzer) extractOne(f scanner.FileInfo) (*syntax.FileTree, *Diagnostic) {
	info, err := os.Stat(f.FullPath)
	if err != nil {
		return nil, &Diagnostic{Kind: IOFailure, Path: f.Path, Detail: err.Error()}
	}

	if tree, ok := a.cache.Get(f.Path, info.ModTime()); ok {
		return tree, nil
	}

	content, err := os.ReadFile(f.FullPath)
	if err != nil {
		return nil, &Diagnostic{Kind: IOFailure, Path: f.Path, Detail: err.Error()}
	}

	tree, err := a.ext.Extract(f.Path, content)
	if err != nil {
		// The scanner only yields supported extensions, so this is a
		// race with the file changing under us. Skip it.
		return nil, &Diagnostic{Kind: IOFailure, Path: f.Path, Detail: err.Error()}
	}

	a.cache.Set(f.Path, info.ModTime(), tree)

	if tree.ParseError != "" {
		return tree, &Diagnostic{Kind: ParseFailure, Path: f.Path, Detail: tree.ParseError}
	}
	return tree, nil
}

func (a *Analyzer) persistCache() {
	if a.cfg.CachePath == "" {
		return
	}
	if err := a.cache.SaveFile(a.cfg.CachePath); err != nil {
		a.logger.Warn("saving extraction cache", "path", a.cfg.CachePath, "error", err)
	}
}

// Function finds the named function body across the given trees. The name
// may be plain or qualified. The containing file path is returned with it.
func Function(trees []*syntax.FileTree, name string) (*syntax.FunctionBody, string, error) {
	for _, tree := range trees {
		if fn, ok := tree.Function(name); ok {
			return fn, tree.Path, nil
		}
	}
	return nil, "", &RequestError{Detail: fmt.Sprintf("function %q not found in project", name)}
}

// CallDiagnostics converts the unresolved call sites of a call graph into
// diagnostics.
func CallDiagnostics(g *callgraph.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, u := range g.Unresolved {
		path := ""
		if u.From >= 0 && u.From < len(g.Functions) {
			path = g.Functions[u.From].File
		}
		diags = append(diags, Diagnostic{
			Kind:   UnresolvedReference,
			Path:   path,
			Line:   u.Line,
			Detail: fmt.Sprintf("call to %s does not resolve to a project function", u.Callee),
		})
	}
	return diags
}
