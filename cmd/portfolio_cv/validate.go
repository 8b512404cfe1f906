package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-cv/internal/observability"
)

var validateCmd = &cobra.Command{
	Use:   "validate [data file]",
	Short: "Validate a portfolio data file",
	Long: "Checks a portfolio data file against the portfolio JSON schema and the field rules " +
		"used by the renderer. Without an argument the configured data file, or the bundled sample, is checked.",
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := cfg.DataPath
	if len(args) == 1 {
		path = args[0]
	}

	p, err := loadPortfolio(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintPortfolio(p)
	}
	if path == "" {
		path = "bundled sample"
	}
	_, _ = fmt.Fprintf(out, "✓ %s is valid: %s, %d projects, %d experience entries\n",
		path, p.Profile.Name, len(p.Projects), len(p.Experience))
	return nil
}
