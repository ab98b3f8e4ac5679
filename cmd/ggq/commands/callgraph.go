package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/analyzer"
	"github.com/l3aro/go-graph-query/pkg/callgraph"
)

// callgraphCmd represents the callgraph command
var callgraphCmd = &cobra.Command{
	Use:   "callgraph [path]",
	Short: "Project-wide call graph",
	Long: `Builds the call graph of the whole project. Reports recursive
functions, dead functions (never called and matching no entry pattern), and
unresolved call sites. Use --impact to list the callers of one function,
--depth for its BFS call depths, or --from/--to to enumerate call chains.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, conf, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		root := projectArg(args, 0)

		trees, diags, err := a.LoadTrees(cmd.Context(), root)
		if err != nil {
			return err
		}
		g, err := callgraph.Build(cmd.Context(), trees, conf.Workers)
		if err != nil {
			return err
		}
		diags = append(diags, analyzer.CallDiagnostics(g)...)
		reportDiagnostics(logger, diags)

		impact, _ := cmd.Flags().GetString("impact")
		depthOf, _ := cmd.Flags().GetString("depth")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")

		content, err := render(g.Export(), resolveFormat(cmd, conf), callgraph.DotOptions("callgraph"), func(sb *strings.Builder) {
			switch {
			case impact != "":
				printImpact(sb, g, impact)
			case depthOf != "":
				printDepths(sb, g, depthOf)
			case from != "" && to != "":
				printChains(sb, g, from, to, maxDepth)
			default:
				printCallGraph(sb, g, conf.EntryPatterns)
			}
		})
		if err != nil {
			return err
		}
		return deliver(cmd, content)
	},
}

func printCallGraph(sb *strings.Builder, g *callgraph.Graph, entryPatterns []string) {
	fmt.Fprintf(sb, "Call graph: %d functions, %d calls, %d unresolved\n",
		len(g.Functions), len(g.Calls), len(g.Unresolved))

	if rec := g.RecursiveFunctions(); len(rec) > 0 {
		sb.WriteString("Recursive:\n")
		for _, fn := range rec {
			fmt.Fprintf(sb, "  %s (%s:%d)\n", fn.QualifiedName, fn.File, fn.Line)
		}
	}

	dead, err := g.DeadFunctions(entryPatterns)
	if err != nil {
		fmt.Fprintf(sb, "entry patterns: %v\n", err)
	} else if len(dead) > 0 {
		sb.WriteString("Dead functions:\n")
		for _, fn := range dead {
			fmt.Fprintf(sb, "  %s (%s:%d)\n", fn.QualifiedName, fn.File, fn.Line)
		}
	}
}

func printImpact(sb *strings.Builder, g *callgraph.Graph, name string) {
	fn, ok := g.Function(name)
	if !ok {
		fmt.Fprintf(sb, "function %q not found\n", name)
		return
	}
	callers := g.Callers(fn.ID)
	fmt.Fprintf(sb, "Callers of %s: %d\n", fn.QualifiedName, len(callers))
	for _, id := range callers {
		caller := g.Functions[id]
		fmt.Fprintf(sb, "  %s (%s:%d)\n", caller.QualifiedName, caller.File, caller.Line)
	}
}

func printDepths(sb *strings.Builder, g *callgraph.Graph, name string) {
	depths, ok := g.CallDepths(name)
	if !ok {
		fmt.Fprintf(sb, "function %q not found\n", name)
		return
	}
	names := make([]string, 0, len(depths))
	for n := range depths {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if depths[names[i]] != depths[names[j]] {
			return depths[names[i]] < depths[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Fprintf(sb, "Call depths from %s:\n", name)
	for _, n := range names {
		fmt.Fprintf(sb, "  %d  %s\n", depths[n], n)
	}
}

func printChains(sb *strings.Builder, g *callgraph.Graph, from, to string, maxDepth int) {
	chains := g.CallChains(from, to, maxDepth)
	fmt.Fprintf(sb, "Call chains %s -> %s: %d\n", from, to, len(chains))
	for _, chain := range chains {
		fmt.Fprintf(sb, "  %s\n", strings.Join(chain, " -> "))
	}
}

func init() {
	addOutputFlags(callgraphCmd)
	callgraphCmd.Flags().String("impact", "", "List the callers of this function")
	callgraphCmd.Flags().String("depth", "", "Report BFS call depths from this function")
	callgraphCmd.Flags().String("from", "", "Chain start function (with --to)")
	callgraphCmd.Flags().String("to", "", "Chain end function (with --from)")
	callgraphCmd.Flags().Int("max-depth", 10, "Maximum chain length for --from/--to")
	RootCmd.AddCommand(callgraphCmd)
}
