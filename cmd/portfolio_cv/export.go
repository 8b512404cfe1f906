package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-cv/internal/observability"
	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/validation"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the portfolio as a PDF CV",
	Long: "Renders the portfolio data into an A4 PDF CV named <Name>_CV.pdf in the output directory. " +
		"Without --data the bundled sample portfolio is used.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportDataFile    string
	exportOutDir      string
	exportMaxProjects int
	exportCheck       bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportDataFile, "data", "d", "", "Path to portfolio data file (JSON or YAML)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Directory to write the CV to (default \".\")")
	exportCmd.Flags().IntVar(&exportMaxProjects, "max-projects", rendering.DefaultMaxProjects, "Number of projects to render; 0 uses the default, -1 renders all")
	exportCmd.Flags().BoolVar(&exportCheck, "check", false, "Inspect the written PDF and fail on violations")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	maxProjects := intFlag(cmd, "max-projects", exportMaxProjects, cfg.MaxProjects)
	if maxProjects < -1 {
		return fmt.Errorf("--max-projects must be -1 (all), 0 (default) or positive")
	}

	p, err := loadPortfolio(stringFlag(cmd, "data", exportDataFile, cfg.DataPath))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if verbose {
		printer.PrintPortfolio(p)
	}

	composer := rendering.NewComposer(
		rendering.WithMaxProjects(maxProjects),
		rendering.WithLogger(logger),
	)
	path, stats, err := composer.Export(stringFlag(cmd, "out-dir", exportOutDir, cfg.OutputDir), p)
	if err != nil {
		return err
	}

	if verbose {
		printer.PrintExport(path, stats)
	}
	_, _ = fmt.Fprintf(out, "Wrote %s (%d pages)\n", path, stats.Pages)

	if !exportCheck {
		return nil
	}
	doc, violations, err := validation.InspectFile(path, validation.DefaultOptions())
	if err != nil {
		return err
	}
	if verbose {
		printer.PrintDocument(doc)
	}
	printer.PrintViolations(violations)
	if violations.HasErrors() {
		return fmt.Errorf("exported CV failed inspection")
	}
	return nil
}
