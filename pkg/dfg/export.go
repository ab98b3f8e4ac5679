package dfg

import (
	"github.com/l3aro/go-graph-query/pkg/graph"
)

// Export flattens the graph into the shared interchange document.
func (g *Graph) Export() *graph.Document {
	doc := graph.NewDocument("data_flow")
	doc.SetMeta("function", g.Function)

	for _, n := range g.Nodes {
		label := n.Name
		if label == "" {
			label = n.Expr
		}
		attrs := map[string]any{"line": n.Line}
		if n.Expr != "" && n.Expr != label {
			attrs["expr"] = n.Expr
		}
		doc.AddNode(string(n.Kind), label, attrs)
	}
	for _, e := range g.Edges {
		doc.AddEdge(e.From, e.To, "flow", "")
	}
	return doc
}

// DotOptions returns the rendering style for data-flow graphs.
func DotOptions(name string) graph.DotOptions {
	return graph.DotOptions{
		Name: name,
		NodeStyles: map[string]graph.NodeStyle{
			string(NodeParameter):  {Shape: "ellipse", Color: "lightgreen"},
			string(NodeDefinition): {Shape: "box", Color: "lightblue"},
			string(NodeConstant):   {Shape: "plaintext", Color: "white"},
			string(NodeOperation):  {Shape: "diamond", Color: "lightyellow"},
			string(NodeCall):       {Shape: "box", Color: "lavender"},
			string(NodeReturn):     {Shape: "ellipse", Color: "lightcoral"},
		},
		EdgeStyles: map[string]string{
			"flow": "color=blue, style=dashed",
		},
	}
}
