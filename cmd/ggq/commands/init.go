package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/l3aro/go-graph-query/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project configuration interactively",
	Long: `Guides you through setting up ggq for the current project and writes
the answers to ./.ggq/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	workers := strconv.Itoa(cfg.Workers)
	format := cfg.Format
	exclude := ""
	entries := strings.Join(cfg.EntryPatterns, ",")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Worker count").
				Description("Files extracted concurrently").
				Value(&workers).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("JSON", "json"),
					huh.NewOption("Graphviz DOT", "dot"),
					huh.NewOption("Text", "text"),
				).
				Value(&format),
			huh.NewInput().
				Title("Extra excluded directories").
				Description("Comma separated, on top of the scanner defaults").
				Placeholder("generated,migrations").
				Value(&exclude),
			huh.NewInput().
				Title("Entry-point patterns").
				Description("Anchored regexes naming call-graph roots").
				Value(&entries),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cfg.Workers, _ = strconv.Atoi(strings.TrimSpace(workers))
	cfg.Format = format
	cfg.Exclude = splitComma(exclude)
	cfg.EntryPatterns = splitComma(entries)

	if err := cfg.Validate(); err != nil {
		return err
	}

	path := ".ggq/config.yaml"
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func splitComma(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	RootCmd.AddCommand(initCmd)
}
