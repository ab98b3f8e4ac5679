package pdg

import "sort"

// BackwardSlice returns the lines of every statement the given line depends
// on, transitively over both dependence kinds. The slice includes its own
// criterion line.
func (g *Graph) BackwardSlice(line int) []int {
	start, ok := g.byLine[line]
	if !ok {
		return nil
	}
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, prev := range g.edgesTo(cur) {
			if !seen[prev] {
				seen[prev] = true
				queue = append(queue, prev)
			}
		}
	}
	return g.lines(seen)
}

// ForwardSlice returns the lines of every statement affected by the given
// line, transitively over both dependence kinds, the criterion included.
func (g *Graph) ForwardSlice(line int) []int {
	return g.forward(line, true)
}

// Taint returns the lines a value defined at the given line can flow to.
// Propagation follows data edges only: a branch condition reading a tainted
// value does not taint the statements it merely guards.
func (g *Graph) Taint(line int) []int {
	return g.forward(line, false)
}

func (g *Graph) forward(line int, includeControl bool) []int {
	start, ok := g.byLine[line]
	if !ok {
		return nil
	}
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.edgesFrom(cur, includeControl) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return g.lines(seen)
}

// lines maps a node set to its sorted, deduplicated source lines, dropping
// the synthetic entry.
func (g *Graph) lines(ids map[int]bool) []int {
	lineSet := map[int]bool{}
	for id := range ids {
		if !g.Nodes[id].Entry {
			lineSet[g.Nodes[id].Line] = true
		}
	}
	lines := make([]int, 0, len(lineSet))
	for line := range lineSet {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// ParallelGroup is a set of statements with no dependence path between any
// two members; they could run in any order.
type ParallelGroup struct {
	Lines []int `json:"lines"`
}

// ParallelOpportunities finds statements under the same control parent with
// no dependence path between them in either direction. A branch statement
// carries its body's dependences, so a statement reading a variable the body
// writes never groups with the branch.
func (g *Graph) ParallelOpportunities() []ParallelGroup {
	children := map[int][]int{}
	for _, e := range g.Edges {
		if e.Kind == DepControl || e.Kind == DepBoth {
			children[e.From] = append(children[e.From], e.To)
		}
	}

	// reach[id] is the set of nodes id can affect through any dependence.
	reach := make([]map[int]bool, len(g.Nodes))
	for id := range g.Nodes {
		reach[id] = g.fullReach(id)
	}
	independent := func(a, b int) bool {
		return !reach[a][b] && !reach[b][a]
	}

	var groups []ParallelGroup
	for _, siblings := range children {
		var pools [][]int
		for _, id := range siblings {
			placed := false
			for pi, pool := range pools {
				ok := true
				for _, member := range pool {
					if !independent(id, member) {
						ok = false
						break
					}
				}
				if ok {
					pools[pi] = append(pool, id)
					placed = true
					break
				}
			}
			if !placed {
				pools = append(pools, []int{id})
			}
		}
		for _, pool := range pools {
			if len(pool) < 2 {
				continue
			}
			group := ParallelGroup{}
			for _, id := range pool {
				group.Lines = append(group.Lines, g.Nodes[id].Line)
			}
			sort.Ints(group.Lines)
			groups = append(groups, group)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Lines[0] < groups[j].Lines[0]
	})
	return groups
}

// fullReach walks forward over every dependence edge from id.
func (g *Graph) fullReach(id int) map[int]bool {
	seen := map[int]bool{}
	queue := []int{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.edgesFrom(cur, true) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}
