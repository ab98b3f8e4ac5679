package cache

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/syntax"
)

func sampleTree(path string) *syntax.FileTree {
	return &syntax.FileTree{
		Path:     path,
		Language: "Go",
		Functions: []syntax.FunctionBody{
			{Name: "main", QualifiedName: "main", StartLine: 3, EndLine: 5},
		},
	}
}

func TestGetSet(t *testing.T) {
	c := New(10)
	now := time.Now()

	_, ok := c.Get("main.go", now)
	assert.False(t, ok)

	c.Set("main.go", now, sampleTree("main.go"))
	tree, ok := c.Get("main.go", now)
	require.True(t, ok)
	assert.Equal(t, "main.go", tree.Path)
}

func TestModTimeInvalidates(t *testing.T) {
	c := New(10)
	stored := time.Now()
	c.Set("main.go", stored, sampleTree("main.go"))

	_, ok := c.Get("main.go", stored.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := New(2)
	now := time.Now()

	c.Set("a.go", now, sampleTree("a.go"))
	c.Set("b.go", now, sampleTree("b.go"))

	// Touch a.go so b.go becomes the eviction candidate.
	_, ok := c.Get("a.go", now)
	require.True(t, ok)

	c.Set("c.go", now, sampleTree("c.go"))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b.go", now)
	assert.False(t, ok)
	_, ok = c.Get("a.go", now)
	assert.True(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := New(10)
	now := time.Now()
	c.Set("a.go", now, sampleTree("a.go"))
	c.Set("b.go", now, sampleTree("b.go"))

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	restored := New(10)
	require.NoError(t, restored.Load(&buf))
	assert.Equal(t, 2, restored.Len())

	tree, ok := restored.Get("a.go", now)
	require.True(t, ok)
	require.Len(t, tree.Functions, 1)
	assert.Equal(t, "main", tree.Functions[0].Name)
}

func TestLoadFileMissingIsNoop(t *testing.T) {
	c := New(10)
	require.NoError(t, c.LoadFile(t.TempDir()+"/nope.msgpack"))
	assert.Equal(t, 0, c.Len())
}

func TestSaveFileCreatesDirs(t *testing.T) {
	c := New(10)
	c.Set("a.go", time.Now(), sampleTree("a.go"))

	path := t.TempDir() + "/nested/cache.msgpack"
	require.NoError(t, c.SaveFile(path))

	restored := New(10)
	require.NoError(t, restored.LoadFile(path))
	assert.Equal(t, 1, restored.Len())
}
