package cfg

import (
	"strings"

	"github.com/l3aro/go-graph-query/pkg/graph"
)

// Export flattens the graph into the shared interchange document.
func (g *Graph) Export() *graph.Document {
	doc := graph.NewDocument("control_flow")
	doc.SetMeta("function", g.Function)
	doc.SetMeta("complexity", g.CyclomaticComplexity())

	for _, blk := range g.Blocks {
		attrs := map[string]any{}
		if blk.StartLine > 0 {
			attrs["start_line"] = blk.StartLine
			attrs["end_line"] = blk.EndLine
		}
		if blk.Condition != "" {
			attrs["condition"] = blk.Condition
		}
		doc.AddNode(string(blk.Kind), blockLabel(blk), attrs)
	}
	for _, e := range g.Edges {
		doc.AddEdge(e.From, e.To, string(e.Kind), "")
	}
	return doc
}

func blockLabel(blk Block) string {
	switch blk.Kind {
	case BlockEntry:
		return "ENTRY"
	case BlockExit:
		return "EXIT"
	}
	if len(blk.Statements) > 0 {
		return strings.Join(blk.Statements, "\n")
	}
	return string(blk.Kind)
}

// DotOptions returns the rendering style for control-flow graphs: green
// entry, red exit and return blocks, yellow branches, blue loop headers.
func DotOptions(name string) graph.DotOptions {
	return graph.DotOptions{
		Name: name,
		NodeStyles: map[string]graph.NodeStyle{
			string(BlockEntry):  {Shape: "ellipse", Color: "lightgreen"},
			string(BlockExit):   {Shape: "ellipse", Color: "lightcoral"},
			string(BlockReturn): {Shape: "box", Color: "lightcoral"},
			string(BlockBranch): {Shape: "diamond", Color: "lightyellow"},
			string(BlockLoop):   {Shape: "diamond", Color: "lightblue"},
			string(BlockNormal): {Shape: "box", Color: "white"},
		},
		EdgeStyles: map[string]string{
			string(EdgeTrue):     "color=darkgreen",
			string(EdgeFalse):    "color=red",
			string(EdgeLoopBack): "color=blue, style=dashed",
			string(EdgeContinue): "color=blue, style=dotted",
			string(EdgeBreak):    "color=red, style=dashed",
		},
	}
}
