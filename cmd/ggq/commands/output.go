package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/internal/config"
	"github.com/l3aro/go-graph-query/internal/log"
	"github.com/l3aro/go-graph-query/pkg/analyzer"
	"github.com/l3aro/go-graph-query/pkg/graph"
)

// addOutputFlags registers the flags shared by every graph command.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text, json, or dot")
	cmd.Flags().StringP("export", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringSlice("ext", nil, "Restrict analysis to these file extensions")
	cmd.Flags().StringSlice("exclude", nil, "Additional directory names to skip")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

// setup loads the configuration, applies the shared flags on top of it, and
// returns the analyzer to run with.
func setup(cmd *cobra.Command) (*analyzer.Analyzer, *config.Config, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if exts, _ := cmd.Flags().GetStringSlice("ext"); len(exts) > 0 {
		cfg.Extensions = exts
	}
	if excl, _ := cmd.Flags().GetStringSlice("exclude"); len(excl) > 0 {
		cfg.Exclude = append(cfg.Exclude, excl...)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}

	logger := log.Default()
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return analyzer.New(cfg, logger), cfg, logger, nil
}

// resolveFormat returns the effective output format for the command.
func resolveFormat(cmd *cobra.Command, cfg *config.Config) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	if cfg.Format != "" {
		return cfg.Format
	}
	return "text"
}

// render serializes a graph document in the requested format. The text form
// comes from the command's own summary function.
func render(doc *graph.Document, format string, dotOpts graph.DotOptions, text func(*strings.Builder)) (string, error) {
	switch format {
	case "json":
		data, err := doc.ToJSON()
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "dot":
		return doc.ToDot(dotOpts), nil
	case "text", "":
		var sb strings.Builder
		text(&sb)
		return sb.String(), nil
	default:
		return "", &analyzer.RequestError{Detail: fmt.Sprintf("unknown format %q (use text, json, or dot)", format)}
	}
}

// deliver writes content to the --export path, or to stdout when no export
// path is set.
func deliver(cmd *cobra.Command, content string) error {
	export, _ := cmd.Flags().GetString("export")
	if export == "" {
		fmt.Print(content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Println()
		}
		return nil
	}

	if info, err := os.Stat(export); err == nil && info.IsDir() {
		return &analyzer.RequestError{Detail: fmt.Sprintf("export target %s is a directory", export)}
	}
	if err := os.WriteFile(export, []byte(content), 0o644); err != nil {
		return &analyzer.RequestError{Detail: fmt.Sprintf("writing export file: %v", err)}
	}
	return nil
}

// reportDiagnostics logs each diagnostic at warn level.
func reportDiagnostics(logger log.Logger, diags []analyzer.Diagnostic) {
	for _, d := range diags {
		logger.Warn(d.String())
	}
}

// projectArg returns the project root from the trailing positional argument,
// defaulting to the current directory.
func projectArg(args []string, after int) string {
	if len(args) > after {
		return args[after]
	}
	return "."
}
