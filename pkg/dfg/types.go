// Package dfg builds per-function data-flow graphs: definitions, uses, and
// the flow edges between them. The graph answers unused-variable,
// variable-lifetime, and redundant-computation queries.
package dfg

// NodeKind classifies a data-flow node.
type NodeKind string

const (
	// NodeDefinition is a variable definition or reassignment.
	NodeDefinition NodeKind = "definition"
	// NodeParameter is a function parameter, defined at function entry.
	NodeParameter NodeKind = "parameter"
	// NodeConstant is a literal operand.
	NodeConstant NodeKind = "constant"
	// NodeOperation is a computation combining operands.
	NodeOperation NodeKind = "operation"
	// NodeCall is a function call producing a value.
	NodeCall NodeKind = "call"
	// NodeReturn consumes the values a return statement carries out.
	NodeReturn NodeKind = "return"
)

// Node is one data-flow node.
type Node struct {
	ID   int      `json:"id"`
	Kind NodeKind `json:"kind"`
	// Name is the variable name for definitions and parameters, the callee
	// for calls, and the operator for operations.
	Name string `json:"name,omitempty"`
	Line int    `json:"line"`
	// Expr is the source expression text for operations and calls.
	Expr string `json:"expr,omitempty"`
}

// Edge is a flow edge from a producing node to a consuming node.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is the data-flow graph of a single function.
type Graph struct {
	Function string `json:"function"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Consumers returns the node ids fed by the given node.
func (g *Graph) Consumers(id int) []int {
	var out []int
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Sources returns the node ids feeding the given node.
func (g *Graph) Sources(id int) []int {
	var in []int
	for _, e := range g.Edges {
		if e.To == id {
			in = append(in, e.From)
		}
	}
	return in
}
