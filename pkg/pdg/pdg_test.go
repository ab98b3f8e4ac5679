package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/lang"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

const pipelineSource = `package main

func pipeline(a int, b int) int {
	x := a + 1
	z := 99
	y := b + 2
	if x > 0 {
		y = y + x
	}
	return y
}
`

func buildFromSource(t *testing.T, path, src, fnName string) *Graph {
	t.Helper()
	tree, err := syntax.NewExtractor(lang.NewRegistry()).Extract(path, []byte(src))
	require.NoError(t, err)
	fn, ok := tree.Function(fnName)
	require.True(t, ok, "function %s not extracted", fnName)
	return Build(fn)
}

func TestControlAndDataEdgesMerge(t *testing.T) {
	src := `package main

func total(nums []int) int {
	t := 0
	for _, n := range nums {
		t += n
	}
	return t
}
`
	g := buildFromSource(t, "total.go", src, "total")

	loopNode, ok := g.NodeAtLine(5)
	require.True(t, ok)
	bodyNode, ok := g.NodeAtLine(6)
	require.True(t, ok)

	// The loop header binds n, which the body reads, so the pair is related
	// by both control and data dependence.
	var found DepKind
	for _, e := range g.Edges {
		if e.From == loopNode && e.To == bodyNode {
			found = e.Kind
		}
	}
	assert.Equal(t, DepBoth, found)
}

func TestBackwardSliceExcludesUnrelated(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	slice := g.BackwardSlice(10)
	assert.Equal(t, []int{4, 6, 7, 8, 10}, slice)
	assert.NotContains(t, slice, 5)
}

func TestBackwardSliceIsReflexive(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	slice := g.BackwardSlice(4)
	assert.Contains(t, slice, 4)
}

func TestForwardSlice(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	slice := g.ForwardSlice(4)
	assert.Equal(t, []int{4, 7, 8, 10}, slice)
}

func TestTaintFollowsDataOnly(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	tainted := g.Taint(6)
	assert.Equal(t, []int{6, 8, 10}, tainted)
}

func TestTaintUnknownLine(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	assert.Nil(t, g.Taint(99))
}

func TestParallelOpportunities(t *testing.T) {
	src := `package main

func setup(a int, b int) int {
	x := a * 2
	y := b * 3
	z := x + y
	return z
}
`
	g := buildFromSource(t, "setup.go", src, "setup")

	groups := g.ParallelOpportunities()
	require.NotEmpty(t, groups)
	assert.Equal(t, []int{4, 5}, groups[0].Lines)
}

func TestBranchNeverGroupsWithItsReader(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	for _, group := range g.ParallelOpportunities() {
		has7 := false
		has10 := false
		for _, line := range group.Lines {
			if line == 7 {
				has7 = true
			}
			if line == 10 {
				has10 = true
			}
		}
		assert.False(t, has7 && has10, "branch grouped with dependent return: %v", group.Lines)
	}
}

func TestExport(t *testing.T) {
	g := buildFromSource(t, "pipeline.go", pipelineSource, "pipeline")

	doc := g.Export()
	require.NoError(t, doc.Validate())
	assert.Equal(t, "pipeline", doc.Metadata["function"])
	assert.Equal(t, "entry", doc.Nodes[0].Kind)

	kinds := map[string]bool{}
	for _, e := range doc.Edges {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[string(DepControl)])
	assert.True(t, kinds[string(DepData)])
}
