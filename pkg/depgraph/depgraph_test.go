package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/lang"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

func buildGraph(t *testing.T, files map[string]string) *Graph {
	t.Helper()
	ex := syntax.NewExtractor(lang.NewRegistry())
	var trees []*syntax.FileTree
	for path, src := range files {
		tree, err := ex.Extract(path, []byte(src))
		require.NoError(t, err)
		trees = append(trees, tree)
	}
	return Build(trees)
}

func moduleNames(mods []Module) []string {
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name)
	}
	return names
}

func TestRelativeImportResolution(t *testing.T) {
	files := map[string]string{
		"src/app.js": `import { render } from './render'

function main() {
  render()
}
`,
		"src/render.js": `export function render() {
}
`,
	}
	g := buildGraph(t, files)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "app", g.Modules[g.Edges[0].From].Name)
	assert.Equal(t, "render", g.Modules[g.Edges[0].To].Name)
	assert.Empty(t, g.External)
}

func TestExternalImportsGrowNoEdges(t *testing.T) {
	files := map[string]string{
		"main.py": `import os
import sys

def main():
    pass
`,
	}
	g := buildGraph(t, files)

	assert.Empty(t, g.Edges)
	assert.ElementsMatch(t, []string{"os", "sys"}, g.External)
}

func TestCircularDependencyPath(t *testing.T) {
	files := map[string]string{
		"a.py": "import b\n",
		"b.py": "import c\n",
		"c.py": "import a\n",
	}
	g := buildGraph(t, files)

	cycles := g.CircularDependencies()
	require.Len(t, cycles, 1)

	cycle := cycles[0]
	require.Len(t, cycle, 4)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1])
	assert.ElementsMatch(t, []string{"a", "b", "c"}, cycle[:3])
}

func TestRootsAndLeaves(t *testing.T) {
	files := map[string]string{
		"top.py":    "import mid\n",
		"mid.py":    "import bottom\n",
		"bottom.py": "x = 1\n",
	}
	g := buildGraph(t, files)

	assert.Equal(t, []string{"top"}, moduleNames(g.Roots()))
	assert.Equal(t, []string{"bottom"}, moduleNames(g.Leaves()))

	depths := g.Depths()
	assert.Equal(t, 2, depths["top"])
	assert.Equal(t, 1, depths["mid"])
	assert.Equal(t, 0, depths["bottom"])
}

func TestDependents(t *testing.T) {
	files := map[string]string{
		"top.py":  "import util\n",
		"mid.py":  "import util\n",
		"util.py": "import base\n",
		"base.py": "x = 1\n",
	}
	g := buildGraph(t, files)

	deps := g.Dependents("base")
	assert.Equal(t, []string{"mid", "top", "util"}, moduleNames(deps))
}

func TestExports(t *testing.T) {
	files := map[string]string{
		"lib.go": `package lib

type Client struct {
}

type helper struct {
}

func Connect() {
}

func internal() {
}
`,
	}
	g := buildGraph(t, files)

	require.Len(t, g.Modules, 1)
	assert.ElementsMatch(t, []string{"Client", "Connect"}, g.Modules[0].Exports)
}

func TestExportDocument(t *testing.T) {
	files := map[string]string{
		"a.py": "import b\n",
		"b.py": "import a\n",
	}
	g := buildGraph(t, files)

	doc := g.Export()
	require.NoError(t, doc.Validate())
	assert.Equal(t, 2, doc.Metadata["modules"])

	kinds := map[string]int{}
	for _, n := range doc.Nodes {
		kinds[n.Kind]++
	}
	assert.Equal(t, 2, kinds["cyclic"])
}
