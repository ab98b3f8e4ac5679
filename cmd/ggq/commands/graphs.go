package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/analyzer"
)

// graphsCmd represents the graphs command
var graphsCmd = &cobra.Command{
	Use:   "graphs [path]",
	Short: "Build every graph kind in one pass",
	Long: `Builds the call graph and dependency graph of the project, plus the
control-flow, data-flow, and program-dependence graphs of one function when
--function is given. A kind that cannot be built is skipped and reported as
a diagnostic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, conf, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		root := projectArg(args, 0)
		fn, _ := cmd.Flags().GetString("function")

		docs, diags, err := a.Graphs(cmd.Context(), root, fn)
		if err != nil {
			return err
		}
		reportDiagnostics(logger, diags)

		format := resolveFormat(cmd, conf)
		switch format {
		case "json":
			data, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling graphs: %w", err)
			}
			return deliver(cmd, string(data))
		case "text", "":
			var sb strings.Builder
			kinds := make([]string, 0, len(docs))
			for kind := range docs {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				doc := docs[kind]
				fmt.Fprintf(&sb, "%s: %d nodes, %d edges\n", kind, len(doc.Nodes), len(doc.Edges))
			}
			return deliver(cmd, sb.String())
		default:
			return &analyzer.RequestError{Detail: fmt.Sprintf("graphs output supports text and json, not %q", format)}
		}
	},
}

func init() {
	addOutputFlags(graphsCmd)
	graphsCmd.Flags().String("function", "", "Also build the function-scoped graphs for this function")
	RootCmd.AddCommand(graphsCmd)
}
