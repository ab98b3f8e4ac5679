package cfg

import "sort"

// Reachable returns the set of block ids reachable from the entry block.
func (g *Graph) Reachable() map[int]bool {
	seen := map[int]bool{g.Entry: true}
	queue := []int{g.Entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Successors(cur) {
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return seen
}

// UnreachableBlocks returns the blocks no path from the entry reaches,
// in id order. The synthetic exit is excluded: a function whose every path
// diverges still has an exit block, and reporting it would not point at any
// source line.
func (g *Graph) UnreachableBlocks() []Block {
	reachable := g.Reachable()
	var dead []Block
	for _, blk := range g.Blocks {
		if !reachable[blk.ID] && blk.Kind != BlockExit {
			dead = append(dead, blk)
		}
	}
	return dead
}

// CyclomaticComplexity computes E - N + 2 over the subgraph reachable from
// the entry. Unreachable blocks would otherwise deflate the count below the
// decision-based definition.
func (g *Graph) CyclomaticComplexity() int {
	reachable := g.Reachable()
	nodes := len(reachable)
	edges := 0
	for _, e := range g.Edges {
		if reachable[e.From] && reachable[e.To] {
			edges++
		}
	}
	return edges - nodes + 2
}

// DecisionCount returns the number of reachable branch and loop blocks.
// For graphs of binary decisions, CyclomaticComplexity equals
// DecisionCount + 1.
func (g *Graph) DecisionCount() int {
	reachable := g.Reachable()
	count := 0
	for _, blk := range g.Blocks {
		if !reachable[blk.ID] {
			continue
		}
		if blk.Kind == BlockBranch || blk.Kind == BlockLoop {
			count++
		}
	}
	return count
}

// Loop describes one loop in the graph.
type Loop struct {
	// Head is the loop header block id.
	Head int `json:"head"`
	// BackEdges are the block ids with a back edge to the header.
	BackEdges []int `json:"back_edges,omitempty"`
	// Body is the set of block ids inside the loop, in id order.
	Body []int `json:"body,omitempty"`
}

// Loops returns every loop in the graph, identified by its header block.
// The body is computed by walking backwards from each back edge to the
// header.
func (g *Graph) Loops() []Loop {
	var loops []Loop
	for _, blk := range g.Blocks {
		if blk.Kind != BlockLoop {
			continue
		}
		loop := Loop{Head: blk.ID}
		for _, e := range g.Predecessors(blk.ID) {
			if e.Kind == EdgeLoopBack || e.Kind == EdgeContinue {
				loop.BackEdges = append(loop.BackEdges, e.From)
			}
		}
		loop.Body = g.loopBody(blk.ID, loop.BackEdges)
		loops = append(loops, loop)
	}
	return loops
}

// loopBody walks predecessors from the back-edge sources up to the header,
// collecting the natural loop body.
func (g *Graph) loopBody(head int, backEdges []int) []int {
	inLoop := map[int]bool{head: true}
	stack := append([]int(nil), backEdges...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inLoop[cur] {
			continue
		}
		inLoop[cur] = true
		for _, e := range g.Predecessors(cur) {
			if !inLoop[e.From] {
				stack = append(stack, e.From)
			}
		}
	}
	body := make([]int, 0, len(inLoop))
	for id := range inLoop {
		body = append(body, id)
	}
	sort.Ints(body)
	return body
}
