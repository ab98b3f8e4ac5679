// Package commands provides the CLI commands for the go-graph-query tool.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ggq",
	Short: "go-graph-query - Static program graphs for polyglot codebases",
	Long: `go-graph-query builds queryable graphs from source code without running it.

Commands:
  syntax      Extract declarations and function bodies per file
  cfg         Control-flow graph for a function
  dfg         Data-flow graph for a function
  callgraph   Project-wide call graph
  depgraph    Module dependency graph
  pdg         Program-dependence graph, slicing and taint
  graphs      Build every graph kind in one pass
  init        Write a project configuration interactively

Use "ggq [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}
