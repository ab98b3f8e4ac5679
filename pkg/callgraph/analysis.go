package callgraph

import "regexp"

// markRecursive sets Recursive on every function that can reach itself
// through the call graph, direct self-calls included.
func (b *cgBuilder) markRecursive() {
	adj := make(map[int][]int)
	for _, c := range b.g.Calls {
		adj[c.From] = append(adj[c.From], c.To)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(b.g.Functions))
	onStack := make([]bool, len(b.g.Functions))
	var stack []int

	var visit func(int)
	visit = func(id int) {
		color[id] = gray
		onStack[id] = true
		stack = append(stack, id)
		for _, next := range adj[id] {
			if color[next] == white {
				visit(next)
			} else if onStack[next] {
				// Every function on the stack from next onward is on the cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					b.g.Functions[stack[i]].Recursive = true
					if stack[i] == next {
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		onStack[id] = false
		color[id] = black
	}
	for id := range b.g.Functions {
		if color[id] == white {
			visit(id)
		}
	}
}

// RecursiveFunctions returns every function on a call cycle.
func (g *Graph) RecursiveFunctions() []Function {
	var out []Function
	for _, fn := range g.Functions {
		if fn.Recursive {
			out = append(out, fn)
		}
	}
	return out
}

// DeadFunctions returns functions with no callers whose name matches none of
// the entry patterns. Entry patterns are anchored regexes naming the roots
// callers are not expected for, main and test functions typically.
func (g *Graph) DeadFunctions(entryPatterns []string) ([]Function, error) {
	entries := make([]*regexp.Regexp, 0, len(entryPatterns))
	for _, p := range entryPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, re)
	}

	called := make(map[int]bool)
	for _, c := range g.Calls {
		called[c.To] = true
	}

	var dead []Function
	for _, fn := range g.Functions {
		if called[fn.ID] {
			continue
		}
		entry := false
		for _, re := range entries {
			if re.MatchString(fn.Name) || re.MatchString(fn.QualifiedName) {
				entry = true
				break
			}
		}
		if !entry {
			dead = append(dead, fn)
		}
	}
	return dead, nil
}

// CallDepths returns the shortest call distance from the named function to
// every function it transitively reaches.
func (g *Graph) CallDepths(name string) (map[string]int, bool) {
	root, ok := g.Function(name)
	if !ok {
		return nil, false
	}
	depths := map[int]int{root.ID: 0}
	queue := []int{root.ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Callees(cur) {
			if _, seen := depths[next]; !seen {
				depths[next] = depths[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	out := make(map[string]int, len(depths))
	for id, depth := range depths {
		out[g.Functions[id].QualifiedName] = depth
	}
	return out, true
}

// CallChains enumerates every acyclic call path from one function to
// another, up to maxDepth hops.
func (g *Graph) CallChains(from, to string, maxDepth int) [][]string {
	src, ok := g.Function(from)
	if !ok {
		return nil
	}
	dst, ok := g.Function(to)
	if !ok {
		return nil
	}

	var chains [][]string
	onPath := make(map[int]bool)
	var path []int

	var walk func(int)
	walk = func(id int) {
		if len(path) > maxDepth {
			return
		}
		path = append(path, id)
		onPath[id] = true
		if id == dst.ID {
			chain := make([]string, len(path))
			for i, fid := range path {
				chain[i] = g.Functions[fid].QualifiedName
			}
			chains = append(chains, chain)
		} else {
			for _, next := range g.Callees(id) {
				if !onPath[next] {
					walk(next)
				}
			}
		}
		onPath[id] = false
		path = path[:len(path)-1]
	}
	walk(src.ID)
	return chains
}
