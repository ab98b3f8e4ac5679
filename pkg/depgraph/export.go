package depgraph

import (
	"github.com/l3aro/go-graph-query/pkg/graph"
)

// Export flattens the graph into the shared interchange document.
func (g *Graph) Export() *graph.Document {
	doc := graph.NewDocument("dependency")
	doc.SetMeta("modules", len(g.Modules))
	doc.SetMeta("external_imports", len(g.External))

	cyclic := map[string]bool{}
	for _, cycle := range g.CircularDependencies() {
		for _, name := range cycle {
			cyclic[name] = true
		}
	}

	for _, m := range g.Modules {
		kind := "module"
		if cyclic[m.Name] {
			kind = "cyclic"
		}
		doc.AddNode(kind, m.Name, map[string]any{
			"path":    m.Path,
			"exports": len(m.Exports),
		})
	}
	for _, e := range g.Edges {
		doc.AddEdge(e.From, e.To, "imports", "")
	}
	return doc
}

// DotOptions returns the rendering style for dependency graphs.
func DotOptions(name string) graph.DotOptions {
	return graph.DotOptions{
		Name:    name,
		RankDir: "LR",
		NodeStyles: map[string]graph.NodeStyle{
			"module": {Shape: "box", Color: "lightblue"},
			"cyclic": {Shape: "box", Color: "lightcoral"},
		},
	}
}
