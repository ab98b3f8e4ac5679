package graph

import (
	"fmt"
	"strings"
)

// NodeStyle describes how a node kind is rendered in DOT output.
type NodeStyle struct {
	Shape string
	Color string
}

// DotOptions configures DOT rendering for a document.
type DotOptions struct {
	// Name is the digraph name, sanitized to an identifier.
	Name string
	// RankDir is the graphviz rank direction (TB or LR).
	RankDir string
	// NodeStyles maps node kind to its shape and fill color.
	NodeStyles map[string]NodeStyle
	// EdgeStyles maps edge kind to a raw attribute string, e.g.
	// "color=blue, style=dashed".
	EdgeStyles map[string]string
}

// ToDot renders the document as a graphviz digraph: one statement per node
// with a quoted label, one statement per edge. Node color/shape encode kind.
func (d *Document) ToDot(opts DotOptions) string {
	name := sanitizeDotID(opts.Name)
	if name == "" {
		name = "G"
	}
	rankDir := opts.RankDir
	if rankDir == "" {
		rankDir = "TB"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", name)
	fmt.Fprintf(&sb, "  rankdir=%s;\n", rankDir)
	sb.WriteString("  node [shape=box];\n\n")

	for _, node := range d.Nodes {
		label := node.Label
		if label == "" {
			label = fmt.Sprintf("%s %d", node.Kind, node.ID)
		}
		style, ok := opts.NodeStyles[node.Kind]
		if ok {
			fmt.Fprintf(&sb, "  %d [label=%q, shape=%s, fillcolor=%s, style=filled];\n",
				node.ID, label, style.Shape, style.Color)
		} else {
			fmt.Fprintf(&sb, "  %d [label=%q];\n", node.ID, label)
		}
	}

	sb.WriteString("\n")

	for _, edge := range d.Edges {
		attrs := make([]string, 0, 2)
		if edge.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", edge.Label))
		}
		if style, ok := opts.EdgeStyles[edge.Kind]; ok && style != "" {
			attrs = append(attrs, style)
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&sb, "  %d -> %d [%s];\n", edge.From, edge.To, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&sb, "  %d -> %d;\n", edge.From, edge.To)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// sanitizeDotID strips characters that are not valid in a DOT identifier.
func sanitizeDotID(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
