package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/analyzer"
	"github.com/l3aro/go-graph-query/pkg/dfg"
)

// dfgCmd represents the dfg command
var dfgCmd = &cobra.Command{
	Use:   "dfg <function> [path]",
	Short: "Data-flow graph for a function",
	Long: `Builds the data-flow graph of the named function: definitions,
parameters, operations, and the edges along which values flow. Reports unused
variables, lifetimes, and redundant computations. Use --var to query the
uses of one variable.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, conf, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		name := args[0]
		root := projectArg(args, 1)

		trees, diags, err := a.LoadTrees(cmd.Context(), root)
		if err != nil {
			return err
		}
		reportDiagnostics(logger, diags)

		fn, file, err := analyzer.Function(trees, name)
		if err != nil {
			return err
		}

		g := dfg.Build(fn)
		varName, _ := cmd.Flags().GetString("var")
		content, err := render(g.Export(), resolveFormat(cmd, conf), dfg.DotOptions(name), func(sb *strings.Builder) {
			printDFG(sb, g, file, varName)
		})
		if err != nil {
			return err
		}
		return deliver(cmd, content)
	},
}

func printDFG(sb *strings.Builder, g *dfg.Graph, file, varName string) {
	fmt.Fprintf(sb, "Data-flow graph for %s (%s)\n", g.Function, file)
	fmt.Fprintf(sb, "Nodes: %d  Edges: %d\n", len(g.Nodes), len(g.Edges))

	if varName != "" {
		uses := g.FindUses(varName)
		if len(uses) == 0 {
			fmt.Fprintf(sb, "Variable %s: no uses found\n", varName)
		} else {
			fmt.Fprintf(sb, "Variable %s used on lines %v\n", varName, uses)
		}
		return
	}

	if unused := g.UnusedVariables(); len(unused) > 0 {
		sb.WriteString("Unused variables:\n")
		for _, n := range unused {
			fmt.Fprintf(sb, "  %s (line %d)\n", n.Name, n.Line)
		}
	}

	sb.WriteString("Lifetimes:\n")
	for _, lt := range g.VariableLifetimes() {
		fmt.Fprintf(sb, "  %s: defined line %d, last use line %d, %d uses\n",
			lt.Name, lt.DefLine, lt.LastUseLine, lt.Uses)
	}

	if red := g.RedundantComputations(); len(red) > 0 {
		sb.WriteString("Redundant computations:\n")
		for _, r := range red {
			fmt.Fprintf(sb, "  %s on lines %v\n", r.Operator, r.Lines)
		}
	}
}

func init() {
	addOutputFlags(dfgCmd)
	dfgCmd.Flags().String("var", "", "Report the uses of this variable only")
	RootCmd.AddCommand(dfgCmd)
}
