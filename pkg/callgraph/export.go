package callgraph

import (
	"github.com/l3aro/go-graph-query/pkg/graph"
)

// Export flattens the call graph into the shared interchange document.
// Unresolved call sites become nodes of kind "unresolved" so the output
// shows which edges left the project.
func (g *Graph) Export() *graph.Document {
	doc := graph.NewDocument("call")
	doc.SetMeta("functions", len(g.Functions))
	doc.SetMeta("calls", len(g.Calls))

	for _, fn := range g.Functions {
		kind := "function"
		if fn.Recursive {
			kind = "recursive"
		}
		doc.AddNode(kind, fn.QualifiedName, map[string]any{
			"file": fn.File,
			"line": fn.Line,
		})
	}
	for _, c := range g.Calls {
		doc.AddEdge(c.From, c.To, "call", "")
	}

	for _, u := range g.Unresolved {
		id := doc.AddNode("unresolved", u.Callee, nil)
		doc.AddEdge(u.From, id, "unresolved_call", "")
	}
	return doc
}

// DotOptions returns the rendering style for call graphs.
func DotOptions(name string) graph.DotOptions {
	return graph.DotOptions{
		Name:    name,
		RankDir: "LR",
		NodeStyles: map[string]graph.NodeStyle{
			"function":   {Shape: "box", Color: "lightblue"},
			"recursive":  {Shape: "box", Color: "lightsalmon"},
			"unresolved": {Shape: "box", Color: "lightgray"},
		},
		EdgeStyles: map[string]string{
			"unresolved_call": "style=dashed, color=gray",
		},
	}
}
