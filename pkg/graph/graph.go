// Package graph defines the shared interchange representation for all graph
// kinds produced by the analysis engine. Every graph is flattened into a
// Document: a node arena indexed by integer id plus a list of typed edges
// referencing those ids. Because edges are index pairs rather than pointers,
// cyclic structures (loops, recursive calls, circular module dependencies)
// need no special handling.
package graph

import (
	"encoding/json"
	"fmt"
)

// Node is a single node in the interchange document.
type Node struct {
	ID    int            `json:"id"`
	Kind  string         `json:"kind"`
	Label string         `json:"label,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Edge is a directed edge between two node ids.
type Edge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// Document is the serializable form every graph kind exports to.
// Round-tripping through JSON preserves node/edge counts and all attributes.
type Document struct {
	Nodes    []Node         `json:"nodes"`
	Edges    []Edge         `json:"edges"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewDocument creates an empty document with the given graph kind recorded
// in its metadata.
func NewDocument(kind string) *Document {
	return &Document{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
		Metadata: map[string]any{
			"graph": kind,
		},
	}
}

// AddNode appends a node to the arena and returns its id.
func (d *Document) AddNode(kind, label string, attrs map[string]any) int {
	id := len(d.Nodes)
	d.Nodes = append(d.Nodes, Node{ID: id, Kind: kind, Label: label, Attrs: attrs})
	return id
}

// AddEdge appends a directed edge between two node ids.
func (d *Document) AddEdge(from, to int, kind, label string) {
	d.Edges = append(d.Edges, Edge{From: from, To: to, Kind: kind, Label: label})
}

// SetMeta records a metadata key on the document.
func (d *Document) SetMeta(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// ToJSON serializes the document with indentation.
func (d *Document) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling graph document: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a document previously produced by ToJSON.
func FromJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling graph document: %w", err)
	}
	return &doc, nil
}

// Validate checks that every edge references an existing node id.
func (d *Document) Validate() error {
	for _, edge := range d.Edges {
		if edge.From < 0 || edge.From >= len(d.Nodes) {
			return fmt.Errorf("edge references unknown source node %d", edge.From)
		}
		if edge.To < 0 || edge.To >= len(d.Nodes) {
			return fmt.Errorf("edge references unknown target node %d", edge.To)
		}
	}
	return nil
}

// Outgoing returns the edges originating from the given node id.
func (d *Document) Outgoing(id int) []Edge {
	var out []Edge
	for _, edge := range d.Edges {
		if edge.From == id {
			out = append(out, edge)
		}
	}
	return out
}

// Incoming returns the edges pointing to the given node id.
func (d *Document) Incoming(id int) []Edge {
	var in []Edge
	for _, edge := range d.Edges {
		if edge.To == id {
			in = append(in, edge)
		}
	}
	return in
}
