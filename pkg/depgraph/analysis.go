package depgraph

import "sort"

// dependencies returns the adjacency list of the graph.
func (g *Graph) dependencies() map[int][]int {
	adj := make(map[int][]int)
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}

// CircularDependencies returns every distinct import cycle as the full path
// of module names, ending where it started.
func (g *Graph) CircularDependencies() [][]string {
	adj := g.dependencies()

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(g.Modules))
	var stack []int
	var cycles [][]string
	seen := map[string]bool{}

	var visit func(int)
	visit = func(id int) {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range adj[id] {
			if color[next] == gray {
				// Slice the stack from the repeated module to close the loop.
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				cycle := make([]string, 0, len(stack)-start+1)
				for _, mid := range stack[start:] {
					cycle = append(cycle, g.Modules[mid].Name)
				}
				cycle = append(cycle, g.Modules[next].Name)
				key := canonicalCycle(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			} else if color[next] == white {
				visit(next)
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}
	for id := range g.Modules {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

// canonicalCycle rotates a cycle to start at its smallest member so the same
// loop found from two entry points deduplicates.
func canonicalCycle(cycle []string) string {
	body := cycle[:len(cycle)-1]
	minIdx := 0
	for i, name := range body {
		if name < body[minIdx] {
			minIdx = i
		}
	}
	key := ""
	for i := range body {
		key += body[(minIdx+i)%len(body)] + ">"
	}
	return key
}

// Roots returns modules nothing imports, in id order.
func (g *Graph) Roots() []Module {
	imported := make(map[int]bool)
	for _, e := range g.Edges {
		imported[e.To] = true
	}
	var roots []Module
	for _, m := range g.Modules {
		if !imported[m.ID] {
			roots = append(roots, m)
		}
	}
	return roots
}

// Leaves returns modules importing nothing in the project, in id order.
func (g *Graph) Leaves() []Module {
	imports := make(map[int]bool)
	for _, e := range g.Edges {
		imports[e.From] = true
	}
	var leaves []Module
	for _, m := range g.Modules {
		if !imports[m.ID] {
			leaves = append(leaves, m)
		}
	}
	return leaves
}

// Depths returns, per module name, the longest dependency chain below it.
// Leaves have depth zero. Back edges are skipped, so cyclic projects still
// get finite depths.
func (g *Graph) Depths() map[string]int {
	adj := g.dependencies()
	depth := make([]int, len(g.Modules))
	state := make([]int, len(g.Modules))

	var visit func(int) int
	visit = func(id int) int {
		if state[id] == 2 {
			return depth[id]
		}
		if state[id] == 1 {
			return 0
		}
		state[id] = 1
		max := 0
		for _, next := range adj[id] {
			if d := visit(next) + 1; d > max {
				max = d
			}
		}
		depth[id] = max
		state[id] = 2
		return max
	}
	out := make(map[string]int, len(g.Modules))
	for id, m := range g.Modules {
		out[m.Name] = visit(id)
	}
	return out
}

// Dependents returns the modules that transitively import the named module,
// sorted by name.
func (g *Graph) Dependents(name string) []Module {
	var target = -1
	for _, m := range g.Modules {
		if m.Name == name || m.Path == name {
			target = m.ID
			break
		}
	}
	if target < 0 {
		return nil
	}

	reverse := make(map[int][]int)
	for _, e := range g.Edges {
		reverse[e.To] = append(reverse[e.To], e.From)
	}
	seen := map[int]bool{}
	queue := []int{target}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[cur] {
			if !seen[prev] {
				seen[prev] = true
				queue = append(queue, prev)
			}
		}
	}
	delete(seen, target)

	var out []Module
	for id := range seen {
		out = append(out, g.Modules[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
