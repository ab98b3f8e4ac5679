// Package callgraph builds a project-wide call graph from extracted file
// trees. Construction runs in two phases: every function is registered
// before any call site is resolved, so resolution order never depends on
// file order.
package callgraph

// Function is one node in the call graph.
type Function struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	File          string `json:"file"`
	Line          int    `json:"line"`
	// Recursive is set when the function sits on a call cycle.
	Recursive bool `json:"recursive,omitempty"`
}

// Call is one resolved call site.
type Call struct {
	From int `json:"from"`
	To   int `json:"to"`
	Line int `json:"line"`
}

// UnresolvedCall is a call site whose callee is not defined in the project.
type UnresolvedCall struct {
	From   int    `json:"from"`
	Callee string `json:"callee"`
	Line   int    `json:"line"`
}

// Graph is the project call graph.
type Graph struct {
	Functions  []Function       `json:"functions"`
	Calls      []Call           `json:"calls"`
	Unresolved []UnresolvedCall `json:"unresolved,omitempty"`
}

// Function returns the first function matching the plain or qualified name.
func (g *Graph) Function(name string) (*Function, bool) {
	for i := range g.Functions {
		if g.Functions[i].QualifiedName == name || g.Functions[i].Name == name {
			return &g.Functions[i], true
		}
	}
	return nil, false
}

// Callees returns the functions the given function calls, deduplicated.
func (g *Graph) Callees(id int) []int {
	return g.neighbors(id, true)
}

// Callers returns the functions calling the given function, deduplicated.
func (g *Graph) Callers(id int) []int {
	return g.neighbors(id, false)
}

func (g *Graph) neighbors(id int, outgoing bool) []int {
	seen := map[int]bool{}
	var out []int
	for _, c := range g.Calls {
		var other int
		switch {
		case outgoing && c.From == id:
			other = c.To
		case !outgoing && c.To == id:
			other = c.From
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}
