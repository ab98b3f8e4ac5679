package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/pkg/analyzer"
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// syntaxCmd represents the syntax command
var syntaxCmd = &cobra.Command{
	Use:   "syntax [path]",
	Short: "Extract declarations and function bodies per file",
	Long: `Scans the project and extracts, per source file, its imports, classes,
and functions with their body statements. Files parsed by a pattern fallback
instead of a grammar are marked heuristic.`,
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

		format := resolveFormat(cmd, conf)
		switch format {
		case "json":
			data, err := json.MarshalIndent(trees, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling trees: %w", err)
			}
			return deliver(cmd, string(data))
		case "text", "":
			var sb strings.Builder
			printTrees(&sb, trees)
			return deliver(cmd, sb.String())
		default:
			return &analyzer.RequestError{Detail: fmt.Sprintf("syntax output supports text and json, not %q", format)}
		}
	},
}

func printTrees(sb *strings.Builder, trees []*syntax.FileTree) {
	for _, tree := range trees {
		fmt.Fprintf(sb, "%s (%s", tree.Path, tree.Language)
		if tree.Heuristic {
			sb.WriteString(", heuristic")
		}
		sb.WriteString(")\n")
		if tree.ParseError != "" {
			fmt.Fprintf(sb, "  parse error: %s\n", tree.ParseError)
		}
		if imports := tree.Imports(); len(imports) > 0 {
			fmt.Fprintf(sb, "  imports: %s\n", strings.Join(imports, ", "))
		}
		for _, d := range tree.Decls {
			if d.Kind == syntax.DeclClass {
				fmt.Fprintf(sb, "  class %s (lines %d-%d)\n", d.Name, d.StartLine, d.EndLine)
			}
		}
		for _, fn := range tree.Functions {
			fmt.Fprintf(sb, "  func %s(%s) (lines %d-%d, %d statements)\n",
				fn.QualifiedName, strings.Join(fn.Params, ", "),
				fn.StartLine, fn.EndLine, len(fn.Statements))
		}
	}
}

func init() {
	addOutputFlags(syntaxCmd)
	RootCmd.AddCommand(syntaxCmd)
}
