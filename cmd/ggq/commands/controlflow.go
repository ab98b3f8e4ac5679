package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/analyzer"
	"github.com/l3aro/go-graph-query/pkg/cfg"
)

// cfgCmd represents the cfg command
var cfgCmd = &cobra.Command{
	Use:   "cfg <function> [path]",
	Short: "Control-flow graph for a function",
	Long: `Builds the control-flow graph of the named function: basic blocks,
branch and loop edges, reachability, and cyclomatic complexity. The function
name may be plain or qualified (Type.method).`,
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

		g := cfg.Build(fn)
		content, err := render(g.Export(), resolveFormat(cmd, conf), cfg.DotOptions(name), func(sb *strings.Builder) {
			printCFG(sb, g, file)
		})
		if err != nil {
			return err
		}
		return deliver(cmd, content)
	},
}

func printCFG(sb *strings.Builder, g *cfg.Graph, file string) {
	fmt.Fprintf(sb, "Control-flow graph for %s (%s)\n", g.Function, file)
	fmt.Fprintf(sb, "Blocks: %d  Edges: %d  Cyclomatic complexity: %d\n",
		len(g.Blocks), len(g.Edges), g.CyclomaticComplexity())

	for _, blk := range g.Blocks {
		switch blk.Kind {
		case cfg.BlockBranch, cfg.BlockLoop:
			fmt.Fprintf(sb, "  [%d] %s: %s (line %d)\n", blk.ID, blk.Kind, blk.Condition, blk.StartLine)
		case cfg.BlockEntry, cfg.BlockExit:
			fmt.Fprintf(sb, "  [%d] %s\n", blk.ID, blk.Kind)
		default:
			fmt.Fprintf(sb, "  [%d] %s (lines %d-%d)\n", blk.ID, blk.Kind, blk.StartLine, blk.EndLine)
			for _, stmt := range blk.Statements {
				fmt.Fprintf(sb, "      %s\n", stmt)
			}
		}
	}

	sb.WriteString("Edges:\n")
	for _, e := range g.Edges {
		fmt.Fprintf(sb, "  %d --%s--> %d\n", e.From, e.Kind, e.To)
	}

	if loops := g.Loops(); len(loops) > 0 {
		sb.WriteString("Loops:\n")
		for _, l := range loops {
			fmt.Fprintf(sb, "  head %d, body blocks %v\n", l.Head, l.Body)
		}
	}

	if dead := g.UnreachableBlocks(); len(dead) > 0 {
		sb.WriteString("Unreachable blocks:\n")
		for _, blk := range dead {
			fmt.Fprintf(sb, "  [%d] lines %d-%d\n", blk.ID, blk.StartLine, blk.EndLine)
		}
	}
}

func init() {
	addOutputFlags(cfgCmd)
	RootCmd.AddCommand(cfgCmd)
}
