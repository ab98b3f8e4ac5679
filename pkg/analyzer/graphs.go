package analyzer

import (
	"context"

	"github.com/l3aro/go-graph-query/pkg/callgraph"
	"github.com/l3aro/go-graph-query/pkg/cfg"
	"github.com/l3aro/go-graph-query/pkg/depgraph"
	"github.com/l3aro/go-graph-query/pkg/dfg"
	"github.com/l3aro/go-graph-query/pkg/graph"
	"github.com/l3aro/go-graph-query/pkg/pdg"
)

// Graphs builds every graph kind for the project in one pass. The call graph
// and dependency graph always come out; the function-scoped graphs (control
// flow, data flow, program dependence) are included when fn names a function
// that exists. A kind that cannot be built is skipped with a diagnostic
// rather than failing the batch.
func (a *Analyzer) Graphs(ctx context.Context, root, fn string) (map[string]*graph.Document, []Diagnostic, error) {
	trees, diags, err := a.LoadTrees(ctx, root)
	if err != nil {
		return nil, nil, err
	}

	docs := make(map[string]*graph.Document)

	cg, err := callgraph.Build(ctx, trees, a.cfg.Workers)
	if err != nil {
		return nil, nil, err
	}
	docs["callgraph"] = cg.Export()
	diags = append(diags, CallDiagnostics(cg)...)

	docs["depgraph"] = depgraph.Build(trees).Export()

	if fn != "" {
		body, _, err := Function(trees, fn)
		if err != nil {
			diags = append(diags, Diagnostic{Kind: InvalidRequest, Detail: err.Error()})
		} else {
			docs["cfg"] = cfg.Build(body).Export()
			docs["dfg"] = dfg.Build(body).Export()
			docs["pdg"] = pdg.Build(body).Export()
		}
	}

	return docs, diags, nil
}
