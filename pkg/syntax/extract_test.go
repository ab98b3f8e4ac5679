package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

func newTestExtractor() *Extractor {
	return NewExtractor(lang.NewRegistry())
}

const goSource = `package main

import (
	"fmt"
	"os"
)

type Server struct {
	addr string
}

func main() {
	s := Server{addr: "localhost"}
	s.Start()
}

func (s *Server) Start() error {
	fmt.Println(s.addr)
	return nil
}

func helper(name string, count int) string {
	return name
}
`

func TestExtractGo(t *testing.T) {
	tree, err := newTestExtractor().Extract("main.go", []byte(goSource))
	require.NoError(t, err)

	assert.Equal(t, "Go", tree.Language)
	assert.False(t, tree.Heuristic)
	assert.Empty(t, tree.ParseError)

	assert.ElementsMatch(t, []string{"fmt", "os"}, tree.Imports())

	names := make([]string, 0, len(tree.Functions))
	for _, fn := range tree.Functions {
		names = append(names, fn.QualifiedName)
	}
	assert.ElementsMatch(t, []string{"main", "Server.Start", "helper"}, names)

	helper, ok := tree.Function("helper")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "count"}, helper.Params)
	assert.Greater(t, helper.EndLine, helper.StartLine)

	var classes []string
	for _, d := range tree.Decls {
		if d.Kind == DeclClass {
			classes = append(classes, d.Name)
		}
	}
	assert.Equal(t, []string{"Server"}, classes)
}

const pySource = `import os
from collections import deque

class Queue:
    def __init__(self, limit):
        self.items = deque()
        self.limit = limit

    def push(self, item):
        if len(self.items) < self.limit:
            self.items.append(item)

def drain(q):
    while q.items:
        q.items.popleft()
`

func TestExtractPython(t *testing.T) {
	tree, err := newTestExtractor().Extract("queue.py", []byte(pySource))
	require.NoError(t, err)

	assert.False(t, tree.Heuristic)
	assert.ElementsMatch(t, []string{"os", "collections"}, tree.Imports())

	push, ok := tree.Function("Queue.push")
	require.True(t, ok)
	assert.Equal(t, "push", push.Name)
	assert.Equal(t, []string{"item"}, push.Params)

	drain, ok := tree.Function("drain")
	require.True(t, ok)
	require.NotEmpty(t, drain.Statements)
	assert.Equal(t, "while q.items:", drain.Statements[0].Text)
}

const jsSource = `import { render } from './render'

class Widget {
  draw(ctx) {
    render(ctx)
  }
}

function makeWidget(name) {
  return new Widget(name)
}

const attach = (el) => {
  el.focus()
}
`

func TestExtractJavaScript(t *testing.T) {
	tree, err := newTestExtractor().Extract("widget.js", []byte(jsSource))
	require.NoError(t, err)

	assert.False(t, tree.Heuristic)
	assert.Equal(t, []string{"./render"}, tree.Imports())

	names := make([]string, 0, len(tree.Functions))
	for _, fn := range tree.Functions {
		names = append(names, fn.QualifiedName)
	}
	assert.ElementsMatch(t, []string{"Widget.draw", "makeWidget", "attach"}, names)
}

const rustSource = `use std::collections::HashMap;

pub struct Cache {
    entries: HashMap<String, String>,
}

pub fn lookup(cache: &Cache, key: &str) -> Option<&String> {
    cache.entries.get(key)
}
`

func TestExtractPatternFallbackLanguage(t *testing.T) {
	tree, err := newTestExtractor().Extract("cache.rs", []byte(rustSource))
	require.NoError(t, err)

	assert.True(t, tree.Heuristic)

	fn, ok := tree.Function("lookup")
	require.True(t, ok)
	assert.Equal(t, []string{"cache", "key"}, fn.Params)

	assert.Contains(t, tree.Imports(), "std::collections::HashMap")
}

func TestExtractParseErrorFallsBack(t *testing.T) {
	broken := "package main\n\nfunc main( {\n\tfmt.Println(\n}\n"
	tree, err := newTestExtractor().Extract("broken.go", []byte(broken))
	require.NoError(t, err)

	assert.True(t, tree.Heuristic)
	assert.NotEmpty(t, tree.ParseError)
}

func TestExtractUnsupported(t *testing.T) {
	_, err := newTestExtractor().Extract("notes.txt", []byte("hello"))
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestStatementsSkipCommentsAndBlanks(t *testing.T) {
	src := `package main

func compute(x int) int {
	// doubled for the caller
	y := x * 2

	return y
}
`
	tree, err := newTestExtractor().Extract("compute.go", []byte(src))
	require.NoError(t, err)

	fn, ok := tree.Function("compute")
	require.True(t, ok)
	require.Len(t, fn.Statements, 2)
	assert.Equal(t, "y := x * 2", fn.Statements[0].Text)
	assert.Equal(t, "return y", fn.Statements[1].Text)
}
