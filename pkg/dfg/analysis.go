package dfg

import (
	"fmt"
	"sort"
	"strings"
)

// UnusedVariables returns the definition nodes nothing reads, in declaration
// order. A shadowed definition with no use before its redefinition is
// reported too. Parameters are part of the function's signature and are
// never reported, read or not.
func (g *Graph) UnusedVariables() []Node {
	used := make(map[int]bool, len(g.Edges))
	for _, e := range g.Edges {
		used[e.From] = true
	}
	var unused []Node
	for _, n := range g.Nodes {
		if n.Kind != NodeDefinition {
			continue
		}
		if !used[n.ID] {
			unused = append(unused, n)
		}
	}
	return unused
}

// Lifetime describes the span of one variable definition.
type Lifetime struct {
	Name    string `json:"name"`
	DefLine int    `json:"def_line"`
	// LastUseLine is the line of the furthest consumer, or the definition
	// line when nothing reads the variable.
	LastUseLine int `json:"last_use_line"`
	Uses        int `json:"uses"`
}

// VariableLifetimes reports, per definition, how far its value flows.
func (g *Graph) VariableLifetimes() []Lifetime {
	var spans []Lifetime
	for _, n := range g.Nodes {
		if n.Kind != NodeDefinition && n.Kind != NodeParameter {
			continue
		}
		lt := Lifetime{Name: n.Name, DefLine: n.Line, LastUseLine: n.Line}
		for _, to := range g.Consumers(n.ID) {
			lt.Uses++
			if line := g.Nodes[to].Line; line > lt.LastUseLine {
				lt.LastUseLine = line
			}
		}
		spans = append(spans, lt)
	}
	return spans
}

// FindUses returns the lines where any definition of the named variable is
// read, sorted and deduplicated.
func (g *Graph) FindUses(name string) []int {
	lineSet := map[int]bool{}
	for _, n := range g.Nodes {
		if n.Name != name || n.Kind != NodeDefinition && n.Kind != NodeParameter {
			continue
		}
		for _, to := range g.Consumers(n.ID) {
			lineSet[g.Nodes[to].Line] = true
		}
	}
	lines := make([]int, 0, len(lineSet))
	for line := range lineSet {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// Redundancy is a group of operations computing the same value.
type Redundancy struct {
	Operator string `json:"operator"`
	// Lines are the lines of each duplicate computation.
	Lines []int `json:"lines"`
}

// RedundantComputations returns groups of operation nodes that apply the
// same operator to the same producing nodes. Two operations only group when
// their operands flow from the very same definitions, so an intervening
// redefinition breaks the match.
func (g *Graph) RedundantComputations() []Redundancy {
	groups := map[string][]int{}
	for _, n := range g.Nodes {
		if n.Kind != NodeOperation {
			continue
		}
		sources := g.Sources(n.ID)
		if len(sources) == 0 {
			continue
		}
		parts := make([]string, 0, len(sources))
		for _, s := range sources {
			// Constants match by value; definitions match by identity, so a
			// redefinition in between breaks the group.
			if g.Nodes[s].Kind == NodeConstant {
				parts = append(parts, "c:"+g.Nodes[s].Name)
			} else {
				parts = append(parts, fmt.Sprintf("n:%d", s))
			}
		}
		sort.Strings(parts)
		key := n.Name + "|" + strings.Join(parts, "|")
		groups[key] = append(groups[key], n.ID)
	}

	var redundant []Redundancy
	for _, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		sort.Ints(ids)
		r := Redundancy{Operator: g.Nodes[ids[0]].Name}
		for _, id := range ids {
			r.Lines = append(r.Lines, g.Nodes[id].Line)
		}
		redundant = append(redundant, r)
	}
	sort.Slice(redundant, func(i, j int) bool {
		return redundant[i].Lines[0] < redundant[j].Lines[0]
	})
	return redundant
}
