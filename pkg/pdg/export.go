package pdg

import (
	"github.com/l3aro/go-graph-query/pkg/graph"
)

// Export flattens the graph into the shared interchange document.
func (g *Graph) Export() *graph.Document {
	doc := graph.NewDocument("program_dependence")
	doc.SetMeta("function", g.Function)

	for _, n := range g.Nodes {
		kind := "statement"
		if n.Entry {
			kind = "entry"
		}
		doc.AddNode(kind, n.Text, map[string]any{"line": n.Line})
	}
	for _, e := range g.Edges {
		doc.AddEdge(e.From, e.To, string(e.Kind), "")
	}
	return doc
}

// DotOptions returns the rendering style for dependence graphs: control
// edges red, data edges blue dashed, merged edges purple bold.
func DotOptions(name string) graph.DotOptions {
	return graph.DotOptions{
		Name: name,
		NodeStyles: map[string]graph.NodeStyle{
			"entry":     {Shape: "ellipse", Color: "lightgreen"},
			"statement": {Shape: "box", Color: "white"},
		},
		EdgeStyles: map[string]string{
			string(DepControl): "color=red",
			string(DepData):    "color=blue, style=dashed",
			string(DepBoth):    "color=purple, style=bold",
		},
	}
}
