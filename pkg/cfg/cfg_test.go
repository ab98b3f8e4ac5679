package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/graph"
	"github.com/l3aro/go-graph-query/pkg/lang"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

func buildFromSource(t *testing.T, path, src, fnName string) *Graph {
	t.Helper()
	tree, err := syntax.NewExtractor(lang.NewRegistry()).Extract(path, []byte(src))
	require.NoError(t, err)
	fn, ok := tree.Function(fnName)
	require.True(t, ok, "function %s not extracted", fnName)
	return Build(fn)
}

func TestStraightLine(t *testing.T) {
	src := `package main

func greet(name string) string {
	msg := "hello " + name
	count := len(msg)
	_ = count
	return msg
}
`
	g := buildFromSource(t, "greet.go", src, "greet")

	assert.Equal(t, 1, g.CyclomaticComplexity())
	assert.Equal(t, 0, g.DecisionCount())
	assert.Empty(t, g.UnreachableBlocks())
	assert.Empty(t, g.Loops())
}

func TestBranchBothReturnLeavesDeadCode(t *testing.T) {
	src := `package main

func check(x int) string {
	if x > 0 {
		return "positive"
	} else {
		return "negative"
	}
	log.Println("done")
}
`
	g := buildFromSource(t, "check.go", src, "check")

	assert.Equal(t, 2, g.CyclomaticComplexity())
	assert.Equal(t, g.DecisionCount()+1, g.CyclomaticComplexity())

	dead := g.UnreachableBlocks()
	require.Len(t, dead, 1)
	require.NotEmpty(t, dead[0].Statements)
	assert.Contains(t, dead[0].Statements[0], "log.Println")
}

func TestLoopGraph(t *testing.T) {
	src := `package main

func sum(nums []int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}
`
	g := buildFromSource(t, "sum.go", src, "sum")

	assert.Equal(t, 2, g.CyclomaticComplexity())

	loops := g.Loops()
	require.Len(t, loops, 1)
	assert.NotEmpty(t, loops[0].BackEdges)
	assert.Contains(t, loops[0].Body, loops[0].Head)

	var backEdges int
	for _, e := range g.Edges {
		if e.Kind == EdgeLoopBack {
			backEdges++
		}
	}
	assert.Equal(t, 1, backEdges)
}

func TestBreakAndContinueEdges(t *testing.T) {
	src := `def scan(items):
    for item in items:
        if item < 0:
            continue
        if item > 100:
            break
        process(item)
    return None
`
	g := buildFromSource(t, "scan.py", src, "scan")

	var kinds []EdgeKind
	for _, e := range g.Edges {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, EdgeContinue)
	assert.Contains(t, kinds, EdgeBreak)

	assert.Empty(t, g.UnreachableBlocks())
}

func TestReturnBlocksReachExit(t *testing.T) {
	src := `package main

func pick(flag bool) int {
	if flag {
		return 1
	}
	return 2
}
`
	g := buildFromSource(t, "pick.go", src, "pick")

	exitPreds := g.Predecessors(g.Exit)
	require.Len(t, exitPreds, 2)
	for _, e := range exitPreds {
		assert.Equal(t, BlockReturn, g.Blocks[e.From].Kind)
	}
}

func TestEmptyFunctionConnectsEntryToExit(t *testing.T) {
	src := `package main

func noop() {
}
`
	g := buildFromSource(t, "noop.go", src, "noop")

	require.Len(t, g.Edges, 1)
	assert.Equal(t, g.Entry, g.Edges[0].From)
	assert.Equal(t, g.Exit, g.Edges[0].To)
	assert.Equal(t, 1, g.CyclomaticComplexity())
}

func TestExportRoundTrip(t *testing.T) {
	src := `package main

func double(x int) int {
	y := x * 2
	return y
}
`
	g := buildFromSource(t, "double.go", src, "double")

	doc := g.Export()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Nodes, len(g.Blocks))
	assert.Len(t, doc.Edges, len(g.Edges))
	assert.Equal(t, "double", doc.Metadata["function"])

	data, err := doc.ToJSON()
	require.NoError(t, err)
	restored, err := graph.FromJSON(data)
	require.NoError(t, err)
	assert.Len(t, restored.Nodes, len(doc.Nodes))

	dot := doc.ToDot(DotOptions("cfg_double"))
	assert.Contains(t, dot, "lightgreen")
	assert.Contains(t, dot, "ENTRY")
}
