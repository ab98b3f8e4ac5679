package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleDocument() *Document {
	d := NewDocument("control_flow")
	entry := d.AddNode("entry", "ENTRY", nil)
	body := d.AddNode("normal", "x = 1", map[string]any{"line": 2})
	exit := d.AddNode("exit", "EXIT", nil)
	d.AddEdge(entry, body, "sequential", "")
	d.AddEdge(body, exit, "sequential", "")
	d.SetMeta("function", "main")
	return d
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	d := buildSampleDocument()

	data, err := d.ToJSON()
	require.NoError(t, err)

	restored, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, "control_flow", restored.Metadata["graph"])
	require.Len(t, restored.Nodes, len(d.Nodes))
	require.Len(t, restored.Edges, len(d.Edges))
	for i, n := range d.Nodes {
		assert.Equal(t, n.ID, restored.Nodes[i].ID)
		assert.Equal(t, n.Kind, restored.Nodes[i].Kind)
		assert.Equal(t, n.Label, restored.Nodes[i].Label)
	}
	for i, e := range d.Edges {
		assert.Equal(t, e.From, restored.Edges[i].From)
		assert.Equal(t, e.To, restored.Edges[i].To)
		assert.Equal(t, e.Kind, restored.Edges[i].Kind)
	}
	assert.Equal(t, "main", restored.Metadata["function"])
}

func TestDocumentValidate(t *testing.T) {
	d := buildSampleDocument()
	require.NoError(t, d.Validate())

	d.Edges = append(d.Edges, Edge{From: 0, To: 99, Kind: "sequential"})
	assert.Error(t, d.Validate())
}

func TestDocumentAdjacency(t *testing.T) {
	d := NewDocument("test")
	a := d.AddNode("normal", "a", nil)
	b := d.AddNode("normal", "b", nil)
	c := d.AddNode("normal", "c", nil)
	d.AddEdge(a, b, "sequential", "")
	d.AddEdge(a, c, "sequential", "")
	d.AddEdge(b, c, "sequential", "")

	targets := make([]int, 0, 2)
	for _, e := range d.Outgoing(a) {
		targets = append(targets, e.To)
	}
	assert.ElementsMatch(t, []int{b, c}, targets)

	sources := make([]int, 0, 2)
	for _, e := range d.Incoming(c) {
		sources = append(sources, e.From)
	}
	assert.ElementsMatch(t, []int{a, b}, sources)

	assert.Empty(t, d.Incoming(a))
	assert.Empty(t, d.Outgoing(c))
}

func TestDocumentToDot(t *testing.T) {
	d := buildSampleDocument()
	dot := d.ToDot(DotOptions{
		Name: "cfg_main",
		NodeStyles: map[string]NodeStyle{
			"entry": {Shape: "ellipse", Color: "lightgreen"},
			"exit":  {Shape: "ellipse", Color: "lightcoral"},
		},
	})

	assert.True(t, strings.HasPrefix(dot, "digraph cfg_main {"))
	assert.Contains(t, dot, "lightgreen")
	assert.Contains(t, dot, "lightcoral")
	assert.Contains(t, dot, "0 -> 1")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(dot), "}"))
}

func TestDotEscapesQuotes(t *testing.T) {
	d := NewDocument("test")
	d.AddNode("normal", `say "hi"`, nil)
	dot := d.ToDot(DotOptions{Name: "g"})
	assert.Contains(t, dot, `\"hi\"`)
}
