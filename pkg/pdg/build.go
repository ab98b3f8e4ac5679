package pdg

import (
	"sort"

	"github.com/l3aro/go-graph-query/pkg/dfg"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// Build constructs the program-dependence graph for a function body.
// Control dependence follows statement nesting: a statement depends on the
// innermost branch or loop enclosing it, top-level statements on the entry
// node. Data dependence is projected from the data-flow graph onto statement
// lines.
func Build(fn *syntax.FunctionBody) *Graph {
	g := &Graph{
		Function: fn.QualifiedName,
		byLine:   make(map[int]int),
	}
	g.Nodes = append(g.Nodes, Node{ID: 0, Line: fn.StartLine, Text: "ENTRY", Entry: true})

	// control[from][to], data[from][to] collect the raw dependences before
	// merging into typed edges.
	control := map[[2]int]bool{}
	data := map[[2]int]bool{}

	var addStmts func(stmts []*syntax.Stmt, parent int)
	addStmts = func(stmts []*syntax.Stmt, parent int) {
		for _, s := range stmts {
			id := len(g.Nodes)
			g.Nodes = append(g.Nodes, Node{ID: id, Line: s.Line, Text: s.Text})
			if _, taken := g.byLine[s.Line]; !taken {
				g.byLine[s.Line] = id
			}
			control[[2]int{parent, id}] = true
			addStmts(s.Body, id)
			addStmts(s.Else, id)
		}
	}
	addStmts(syntax.Nest(fn.Statements), 0)

	// Project def-use edges onto statement lines. Edges within one line are
	// the definition's own right-hand side and carry no inter-statement
	// dependence.
	dg := dfg.Build(fn)
	for _, e := range dg.Edges {
		fromLine := dg.Nodes[e.From].Line
		toLine := dg.Nodes[e.To].Line
		if fromLine == toLine {
			continue
		}
		from, okFrom := g.byLine[fromLine]
		to, okTo := g.byLine[toLine]
		if okFrom && okTo && from != to {
			data[[2]int{from, to}] = true
		}
	}

	for pair := range control {
		kind := DepControl
		if data[pair] {
			kind = DepBoth
		}
		g.Edges = append(g.Edges, Edge{From: pair[0], To: pair[1], Kind: kind})
	}
	for pair := range data {
		if control[pair] {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: pair[0], To: pair[1], Kind: DepData})
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
	return g
}
