// Package main implements the go-graph-query CLI (ggq).
// It provides commands for extracting syntax trees and building control-flow,
// data-flow, call, dependency, and program-dependence graphs over a project.
package main

import (
	"os"

	"github.com/l3aro/go-graph-query/cmd/ggq/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`ggq version {{.Version}}
`)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
