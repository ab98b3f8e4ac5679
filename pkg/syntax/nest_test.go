package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractStatements(t *testing.T, path, src string) []Statement {
	t.Helper()
	tree, err := newTestExtractor().Extract(path, []byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, tree.Functions)
	return tree.Functions[0].Statements
}

func TestNestIfElse(t *testing.T) {
	src := `package main

func classify(x int) string {
	if x > 0 {
		return "positive"
	} else {
		return "non-positive"
	}
}
`
	stmts := Nest(extractStatements(t, "classify.go", src))
	require.Len(t, stmts, 1)

	ifStmt := stmts[0]
	assert.Equal(t, StmtIf, ifStmt.Kind)
	assert.Equal(t, "x > 0", ifStmt.Cond)
	require.Len(t, ifStmt.Body, 1)
	assert.Equal(t, StmtReturn, ifStmt.Body[0].Kind)
	require.Len(t, ifStmt.Else, 1)
	assert.Equal(t, StmtReturn, ifStmt.Else[0].Kind)
}

func TestNestElseIfChain(t *testing.T) {
	src := `package main

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	} else {
		return 0
	}
}
`
	stmts := Nest(extractStatements(t, "sign.go", src))
	require.Len(t, stmts, 1)

	first := stmts[0]
	require.Len(t, first.Else, 1)
	second := first.Else[0]
	assert.Equal(t, StmtIf, second.Kind)
	assert.Equal(t, "x < 0", second.Cond)
	require.Len(t, second.Else, 1)
	assert.Equal(t, StmtReturn, second.Else[0].Kind)
}

func TestNestLoop(t *testing.T) {
	src := `def total(items):
    sum = 0
    for item in items:
        if item > 0:
            sum = sum + item
    return sum
`
	stmts := Nest(extractStatements(t, "total.py", src))
	require.Len(t, stmts, 3)

	assert.Equal(t, StmtPlain, stmts[0].Kind)
	loop := stmts[1]
	assert.Equal(t, StmtLoop, loop.Kind)
	require.Len(t, loop.Body, 1)
	assert.Equal(t, StmtIf, loop.Body[0].Kind)
	assert.Equal(t, StmtReturn, stmts[2].Kind)
}

func TestNestBreakContinue(t *testing.T) {
	src := `package main

func firstEven(nums []int) int {
	for _, n := range nums {
		if n%2 != 0 {
			continue
		}
		return n
	}
	return -1
}
`
	stmts := Nest(extractStatements(t, "even.go", src))
	require.Len(t, stmts, 2)

	loop := stmts[0]
	require.Len(t, loop.Body, 2)
	ifStmt := loop.Body[0]
	require.Len(t, ifStmt.Body, 1)
	assert.Equal(t, StmtContinue, ifStmt.Body[0].Kind)
	assert.Equal(t, StmtReturn, loop.Body[1].Kind)
}

func TestNestKeywordBoundary(t *testing.T) {
	stmts := []Statement{
		{Line: 1, Text: "iface := lookup()", Indent: 0},
		{Line: 2, Text: "formatted := render(iface)", Indent: 0},
	}
	nested := Nest(stmts)
	require.Len(t, nested, 2)
	assert.Equal(t, StmtPlain, nested[0].Kind)
	assert.Equal(t, StmtPlain, nested[1].Kind)
}
