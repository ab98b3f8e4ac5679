package dfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestUnusedVariable(t *testing.T) {
	src := `package main

func build(a int) int {
	x := a + 1
	y := 5
	return x
}
`
	g := buildFromSource(t, "build.go", src, "build")

	unused := g.UnusedVariables()
	require.Len(t, unused, 1)
	assert.Equal(t, "y", unused[0].Name)
	assert.Equal(t, NodeDefinition, unused[0].Kind)
}

func TestDeclarationKeywordBindsPlainName(t *testing.T) {
	src := `function calc() {
    let a = 1;
    let b = a + 1;
    return b;
}
`
	g := buildFromSource(t, "calc.js", src, "calc")

	assert.Empty(t, g.UnusedVariables())

	uses := g.FindUses("a")
	assert.Contains(t, uses, 3)
}

func TestVarDeclarationFlows(t *testing.T) {
	src := `package main

func start(n int) int {
	var total = n + 1
	return total
}
`
	g := buildFromSource(t, "start.go", src, "start")

	assert.Empty(t, g.UnusedVariables())
	assert.Contains(t, g.FindUses("total"), 5)
}

func TestUnreadParameterNotReported(t *testing.T) {
	src := `package main

func greet(name string, extra int) string {
	msg := name + "!"
	return msg
}
`
	g := buildFromSource(t, "greet.go", src, "greet")

	assert.Empty(t, g.UnusedVariables())

	var names []string
	for _, lt := range g.VariableLifetimes() {
		names = append(names, lt.Name)
	}
	assert.Contains(t, names, "extra")
}

func TestShadowedDefinitionReported(t *testing.T) {
	src := `package main

func shadow(n int) int {
	v := n * 2
	v = n * 3
	return v
}
`
	g := buildFromSource(t, "shadow.go", src, "shadow")

	unused := g.UnusedVariables()
	require.Len(t, unused, 1)
	assert.Equal(t, "v", unused[0].Name)
	assert.Equal(t, 4, unused[0].Line)
}

func TestRedundantComputation(t *testing.T) {
	src := `package main

func compute(a int, b int) int {
	x := a + b
	y := a + b
	return x
}
`
	g := buildFromSource(t, "compute.go", src, "compute")

	redundant := g.RedundantComputations()
	require.Len(t, redundant, 1)
	assert.Equal(t, "+", redundant[0].Operator)
	assert.Equal(t, []int{4, 5}, redundant[0].Lines)
}

func TestRedefinitionBreaksRedundancyGroup(t *testing.T) {
	src := `package main

func compute(a int, b int) int {
	x := a + b
	a = 10
	y := a + b
	return x + y
}
`
	g := buildFromSource(t, "compute2.go", src, "compute")

	assert.Empty(t, g.RedundantComputations())
}

func TestLoopAccumulatorFlows(t *testing.T) {
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

	assert.Empty(t, g.UnusedVariables())

	uses := g.FindUses("total")
	assert.NotEmpty(t, uses)
}

func TestParameterUseInCondition(t *testing.T) {
	src := `def clamp(value, limit):
    if value > limit:
        return limit
    return value
`
	g := buildFromSource(t, "clamp.py", src, "clamp")

	assert.Empty(t, g.UnusedVariables())

	uses := g.FindUses("limit")
	assert.Contains(t, uses, 2)
}

func TestVariableLifetimes(t *testing.T) {
	src := `package main

func span(a int) int {
	x := a * 2
	y := x + 1
	return y
}
`
	g := buildFromSource(t, "span.go", src, "span")

	var xSpan *Lifetime
	for _, lt := range g.VariableLifetimes() {
		if lt.Name == "x" {
			span := lt
			xSpan = &span
			break
		}
	}
	require.NotNil(t, xSpan)
	assert.Equal(t, 4, xSpan.DefLine)
	assert.Equal(t, 5, xSpan.LastUseLine)
	assert.Equal(t, 1, xSpan.Uses)
}

func TestExport(t *testing.T) {
	src := `package main

func double(x int) int {
	y := x * 2
	return y
}
`
	g := buildFromSource(t, "double.go", src, "double")

	doc := g.Export()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Nodes, len(g.Nodes))
	assert.Equal(t, "double", doc.Metadata["function"])

	dot := doc.ToDot(DotOptions("dfg_double"))
	assert.Contains(t, dot, "style=dashed")
}
