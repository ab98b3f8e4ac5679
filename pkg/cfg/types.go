// Package cfg builds per-function control-flow graphs from extracted
// statement trees and answers reachability, complexity, and loop queries
// over them.
package cfg

// BlockKind classifies a basic block.
type BlockKind string

const (
	// BlockEntry is the synthetic entry block.
	BlockEntry BlockKind = "entry"
	// BlockNormal holds consecutive statements with no control effect.
	BlockNormal BlockKind = "normal"
	// BlockBranch holds a conditional with true/false successors.
	BlockBranch BlockKind = "branch"
	// BlockLoop is a loop header with a body successor and an exit successor.
	BlockLoop BlockKind = "loop"
	// BlockReturn holds a return statement; its only successor is the exit.
	BlockReturn BlockKind = "return"
	// BlockExit is the synthetic exit block.
	BlockExit BlockKind = "exit"
)

// EdgeKind classifies a control-flow edge.
type EdgeKind string

const (
	// EdgeSequential is unconditional fallthrough.
	EdgeSequential EdgeKind = "sequential"
	// EdgeTrue is taken when a branch or loop condition holds.
	EdgeTrue EdgeKind = "true"
	// EdgeFalse is taken when a branch or loop condition fails.
	EdgeFalse EdgeKind = "false"
	// EdgeLoopBack returns from the end of a loop body to its header.
	EdgeLoopBack EdgeKind = "loop_back"
	// EdgeBreak exits a loop early.
	EdgeBreak EdgeKind = "break"
	// EdgeContinue jumps back to the loop header from a continue statement.
	EdgeContinue EdgeKind = "continue"
)

// Block is one basic block.
type Block struct {
	ID         int       `json:"id"`
	Kind       BlockKind `json:"kind"`
	StartLine  int       `json:"start_line,omitempty"`
	EndLine    int       `json:"end_line,omitempty"`
	Statements []string  `json:"statements,omitempty"`
	// Condition is the branch or loop condition text.
	Condition string `json:"condition,omitempty"`

	// Lines holds the source line of each statement, parallel to Statements.
	Lines []int `json:"lines,omitempty"`
}

// Edge is a directed control-flow edge between block ids.
type Edge struct {
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Graph is the control-flow graph of a single function.
type Graph struct {
	Function string  `json:"function"`
	Blocks   []Block `json:"blocks"`
	Edges    []Edge  `json:"edges"`
	Entry    int     `json:"entry"`
	Exit     int     `json:"exit"`
}

// Successors returns the outgoing edges of a block.
func (g *Graph) Successors(id int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Predecessors returns the incoming edges of a block.
func (g *Graph) Predecessors(id int) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}
