package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-cv/internal/observability"
	"github.com/jonathan/portfolio-cv/internal/validation"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Check a generated CV PDF",
	Long: "Extracts the text of a CV PDF and checks the page footers, the section titles, " +
		"the page count and any required or forbidden text. Exits non-zero when an error-level " +
		"violation is found.",
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectMaxPages  int
	inspectNoFooters bool
	inspectSections  []string
	inspectRequire   []string
	inspectForbid    []string
	inspectFind      []string
)

func init() {
	inspectCmd.Flags().IntVar(&inspectMaxPages, "max-pages", 0, "Maximum number of pages (0 disables the check)")
	inspectCmd.Flags().BoolVar(&inspectNoFooters, "no-footers", false, "Skip the \"Page i/N\" footer check")
	inspectCmd.Flags().StringSliceVar(&inspectSections, "section", nil, "Section titles that must appear (default: the standard CV sections)")
	inspectCmd.Flags().StringSliceVar(&inspectRequire, "require", nil, "Text that should appear (reported as a warning)")
	inspectCmd.Flags().StringSliceVar(&inspectForbid, "forbid", nil, "Phrases that must not appear")
	inspectCmd.Flags().StringSliceVar(&inspectFind, "find", nil, "Print the pages containing this text")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := validation.DefaultOptions()
	opts.MaxPages = inspectMaxPages
	opts.RequireFooters = !inspectNoFooters
	if cmd.Flags().Changed("section") {
		opts.RequiredSections = inspectSections
	}
	opts.RequiredText = inspectRequire
	opts.ForbiddenPhrases = inspectForbid

	doc, violations, err := validation.InspectFile(args[0], opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if verbose {
		printer.PrintDocument(doc)
	}
	_, _ = fmt.Fprintf(out, "%s: %d pages\n", args[0], doc.PageCount())

	for _, text := range inspectFind {
		pages := doc.Find(text)
		if len(pages) == 0 {
			_, _ = fmt.Fprintf(out, "%q: not found\n", text)
			continue
		}
		labels := make([]string, len(pages))
		for i, p := range pages {
			labels[i] = fmt.Sprint(p)
		}
		_, _ = fmt.Fprintf(out, "%q: page %s\n", text, strings.Join(labels, ", "))
	}

	printer.PrintViolations(violations)
	if violations.HasErrors() {
		return fmt.Errorf("%s failed inspection", args[0])
	}
	return nil
}
