// Package depgraph builds the module dependency graph of a project: one node
// per source file, edges for imports that resolve to another project file.
// Imports of anything outside the project are counted but grow no edges.
package depgraph

import (
	"path"
	"strings"

	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// Module is one project file in the dependency graph.
type Module struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
	// Name is the file stem imports resolve against.
	Name    string   `json:"name"`
	Imports []string `json:"imports,omitempty"`
	// Exports is the public declaration surface of the module.
	Exports []string `json:"exports,omitempty"`
}

// Edge records that From imports To.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is the project dependency graph.
type Graph struct {
	Modules []Module `json:"modules"`
	Edges   []Edge   `json:"edges"`
	// External are imports that resolved to nothing in the project,
	// deduplicated.
	External []string `json:"external,omitempty"`
}

// Build constructs the dependency graph from extracted file trees.
func Build(trees []*syntax.FileTree) *Graph {
	g := &Graph{}
	byName := make(map[string][]int)
	byStem := make(map[string]int)

	for _, tree := range trees {
		id := len(g.Modules)
		g.Modules = append(g.Modules, Module{
			ID:      id,
			Path:    tree.Path,
			Name:    moduleName(tree.Path),
			Imports: tree.Imports(),
			Exports: exportedDecls(tree),
		})
		byName[g.Modules[id].Name] = append(byName[g.Modules[id].Name], id)
		byStem[stemPath(tree.Path)] = id
	}

	external := map[string]bool{}
	for from := range g.Modules {
		seen := map[int]bool{}
		for _, imp := range g.Modules[from].Imports {
			to, ok := resolveImport(imp, g.Modules[from].Path, byName, byStem)
			if !ok {
				external[imp] = true
				continue
			}
			if to != from && !seen[to] {
				seen[to] = true
				g.Edges = append(g.Edges, Edge{From: from, To: to})
			}
		}
	}
	for imp := range external {
		g.External = append(g.External, imp)
	}
	return g
}

// moduleName is the file name without its extension.
func moduleName(filePath string) string {
	base := path.Base(filePath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// stemPath is the full path without its extension.
func stemPath(filePath string) string {
	if i := strings.LastIndexByte(filePath, '.'); i > 0 {
		return filePath[:i]
	}
	return filePath
}

// resolveImport maps an import string to a project module. Relative imports
// resolve against the importing file's directory; everything else matches on
// the import's last path segment.
func resolveImport(imp, fromPath string, byName map[string][]int, byStem map[string]int) (int, bool) {
	if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
		resolved := path.Join(path.Dir(fromPath), imp)
		if id, ok := byStem[stemPath(resolved)]; ok {
			return id, true
		}
		return 0, false
	}

	segment := imp
	for _, sep := range []string{"::", "/", ".", "\\"} {
		if i := strings.LastIndex(segment, sep); i >= 0 {
			segment = segment[i+len(sep):]
		}
	}
	ids := byName[segment]
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// exportedDecls approximates the public surface: capitalized names for Go,
// every non-underscore-prefixed declaration elsewhere.
func exportedDecls(tree *syntax.FileTree) []string {
	var exports []string
	for _, d := range tree.Decls {
		if d.Kind == syntax.DeclImport {
			continue
		}
		name := d.Name
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			// Method declarations export through their type.
			continue
		} else if name == "" {
			continue
		} else if tree.Language == "Go" {
			if name[0] < 'A' || name[0] > 'Z' {
				continue
			}
		} else if strings.HasPrefix(name, "_") {
			continue
		}
		exports = append(exports, name)
	}
	return exports
}
