// Package pdg builds per-function program-dependence graphs by merging
// control dependence derived from statement nesting with the data-flow
// graph's def-use edges. Slicing, taint propagation, and parallelization
// queries run over the merged graph.
package pdg

// DepKind classifies a dependence edge.
type DepKind string

const (
	// DepControl marks a control dependence.
	DepControl DepKind = "control"
	// DepData marks a data dependence.
	DepData DepKind = "data"
	// DepBoth marks a pair related by both control and data dependence.
	DepBoth DepKind = "both"
)

// Node is one statement in the dependence graph. Node 0 is the synthetic
// entry.
type Node struct {
	ID   int    `json:"id"`
	Line int    `json:"line"`
	Text string `json:"text,omitempty"`
	// Entry is set on the synthetic entry node only.
	Entry bool `json:"entry,omitempty"`
}

// Edge is a dependence edge between statement nodes.
type Edge struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Kind DepKind `json:"kind"`
}

// Graph is the program-dependence graph of a single function.
type Graph struct {
	Function string `json:"function"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`

	byLine map[int]int
}

// NodeAtLine returns the statement node on the given source line.
func (g *Graph) NodeAtLine(line int) (int, bool) {
	id, ok := g.byLine[line]
	return id, ok
}

func (g *Graph) edgesFrom(id int, includeControl bool) []int {
	var out []int
	for _, e := range g.Edges {
		if e.From != id {
			continue
		}
		if !includeControl && e.Kind == DepControl {
			continue
		}
		out = append(out, e.To)
	}
	return out
}

func (g *Graph) edgesTo(id int) []int {
	var in []int
	for _, e := range g.Edges {
		if e.To == id {
			in = append(in, e.From)
		}
	}
	return in
}
