// Package observability provides the logger and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/types"
	"github.com/jonathan/portfolio-cv/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPortfolio outputs a human-readable summary of the loaded portfolio data.
func (p *Printer) PrintPortfolio(portfolio *types.Portfolio) {
	if portfolio == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", portfolio.Profile.Name))
	if portfolio.Profile.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", portfolio.Profile.Title))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(portfolio.Education)))
	sb.WriteString(fmt.Sprintf("Skill groups:    %d\n", len(portfolio.Skills)))
	sb.WriteString(fmt.Sprintf("Experience:      %d\n", len(portfolio.Experience)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(portfolio.Projects)))
	if len(portfolio.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications:  %d\n", len(portfolio.Certifications)))
	}

	if len(portfolio.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		count := min(len(portfolio.Projects), maxItemsToShow)
		for i := 0; i < count; i++ {
			proj := portfolio.Projects[i]
			sb.WriteString(fmt.Sprintf("  • %s", proj.Title))
			if proj.Year != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", proj.Year))
			}
			sb.WriteString("\n")
		}
		if len(portfolio.Projects) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(portfolio.Projects)-maxItemsToShow))
		}
	}

	p.printBox("PORTFOLIO DATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where the CV was written and how its sections were laid out.
func (p *Printer) PrintExport(path string, stats *rendering.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	if path != "" {
		sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	}
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", stats.Pages))
	sb.WriteString(fmt.Sprintf("Projects: %d rendered", stats.ProjectsRendered))
	if stats.ProjectsOmitted > 0 {
		sb.WriteString(fmt.Sprintf(", %d omitted", stats.ProjectsOmitted))
	}
	sb.WriteString("\n\n")

	for _, sec := range stats.Sections {
		sb.WriteString(fmt.Sprintf("%-24s p%d %5.1f → p%d %5.1f\n",
			sec.Name, sec.Start.Page, sec.Start.Y, sec.End.Page, sec.End.Y))
	}

	p.printBox("CV EXPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs the page count and the first lines of each page.
func (p *Printer) PrintDocument(doc *validation.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages: %d\n", doc.PageCount()))
	for _, page := range doc.Pages {
		sb.WriteString(fmt.Sprintf("\nPage %d (%d lines)\n", page.Number, len(page.Lines)))
		count := min(len(page.Lines), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", page.Lines[i]))
		}
	}

	p.printBox("PDF DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any inspection violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", v.Type, v.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 50)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INSPECTION VIOLATIONS", sb.String())
}
