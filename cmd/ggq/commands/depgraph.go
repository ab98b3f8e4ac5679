package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/depgraph"
)

// depgraphCmd represents the depgraph command
var depgraphCmd = &cobra.Command{
	Use:   "depgraph [path]",
	Short: "Module dependency graph",
	Long: `Builds the module dependency graph of the project from its import
lines. Reports circular dependencies with their full cycle path, root and
leaf modules, and import depths. Use --dependents to list the modules that
import one module.`,
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
		reportDiagnostics(logger, diags)

		g := depgraph.Build(trees)
		dependents, _ := cmd.Flags().GetString("dependents")
		content, err := render(g.Export(), resolveFormat(cmd, conf), depgraph.DotOptions("depgraph"), func(sb *strings.Builder) {
			if dependents != "" {
				printDependents(sb, g, dependents)
				return
			}
			printDepGraph(sb, g)
		})
		if err != nil {
			return err
		}
		return deliver(cmd, content)
	},
}

func printDepGraph(sb *strings.Builder, g *depgraph.Graph) {
	fmt.Fprintf(sb, "Dependency graph: %d modules, %d edges, %d external imports\n",
		len(g.Modules), len(g.Edges), len(g.External))

	if cycles := g.CircularDependencies(); len(cycles) > 0 {
		sb.WriteString("Circular dependencies:\n")
		for _, cycle := range cycles {
			fmt.Fprintf(sb, "  %s\n", strings.Join(cycle, " -> "))
		}
	}

	if roots := g.Roots(); len(roots) > 0 {
		sb.WriteString("Roots (imported by nothing):\n")
		for _, m := range roots {
			fmt.Fprintf(sb, "  %s\n", m.Path)
		}
	}
	if leaves := g.Leaves(); len(leaves) > 0 {
		sb.WriteString("Leaves (import nothing):\n")
		for _, m := range leaves {
			fmt.Fprintf(sb, "  %s\n", m.Path)
		}
	}

	depths := g.Depths()
	paths := make([]string, 0, len(depths))
	for p := range depths {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if depths[paths[i]] != depths[paths[j]] {
			return depths[paths[i]] < depths[paths[j]]
		}
		return paths[i] < paths[j]
	})
	sb.WriteString("Depths:\n")
	for _, p := range paths {
		fmt.Fprintf(sb, "  %d  %s\n", depths[p], p)
	}
}

func printDependents(sb *strings.Builder, g *depgraph.Graph, name string) {
	deps := g.Dependents(name)
	fmt.Fprintf(sb, "Dependents of %s: %d\n", name, len(deps))
	for _, m := range deps {
		fmt.Fprintf(sb, "  %s\n", m.Path)
	}
}

func init() {
	addOutputFlags(depgraphCmd)
	depgraphCmd.Flags().String("dependents", "", "List the modules importing this module")
	RootCmd.AddCommand(depgraphCmd)
}
