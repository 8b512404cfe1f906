package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/types"
)

// Options selects the checks Inspect runs. Zero values disable a check.
type Options struct {
	MaxPages         int
	RequireFooters   bool
	RequiredSections []string // section titles as passed to the renderer
	RequiredText     []string
	ForbiddenPhrases []string
}

// DefaultOptions checks footers and the always-present section titles
func DefaultOptions() Options {
	return Options{
		RequireFooters: true,
		RequiredSections: []string{
			rendering.SectionSummary,
			rendering.SectionEducation,
			rendering.SectionSkills,
			rendering.SectionExperience,
			rendering.SectionProjects,
		},
	}
}

// Inspect runs the selected checks against doc
func Inspect(doc *Document, opts Options) *types.Violations {
	var all []types.Violation
	all = append(all, CheckPageCount(doc, opts.MaxPages)...)
	if opts.RequireFooters {
		all = append(all, CheckFooters(doc)...)
	}
	all = append(all, CheckSections(doc, opts.RequiredSections)...)
	all = append(all, CheckRequiredText(doc, opts.RequiredText)...)
	all = append(all, CheckForbiddenPhrases(doc, opts.ForbiddenPhrases)...)
	return &types.Violations{Violations: all}
}

// InspectFile reads the PDF at path and inspects it
func InspectFile(path string, opts Options) (*Document, *types.Violations, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	return doc, Inspect(doc, opts), nil
}

// CheckPageCount reports a document longer than maxPages. maxPages <= 0 disables the check.
func CheckPageCount(doc *Document, maxPages int) []types.Violation {
	if maxPages <= 0 || doc.PageCount() <= maxPages {
		return nil
	}
	return []types.Violation{{
		Type:     types.ViolationPageOverflow,
		Severity: types.SeverityError,
		Details:  fmt.Sprintf("CV has %d pages, maximum allowed is %d", doc.PageCount(), maxPages),
	}}
}

// CheckFooters reports every page that does not carry "Page i/N" with the real total
func CheckFooters(doc *Document) []types.Violation {
	var violations []types.Violation
	total := doc.PageCount()
	for _, p := range doc.Pages {
		want := rendering.FooterLabel(p.Number, total)
		if p.Contains(want) {
			continue
		}
		violations = append(violations, types.Violation{
			Type:             types.ViolationFooterMissing,
			Severity:         types.SeverityError,
			Details:          fmt.Sprintf("page %d has no %q footer", p.Number, want),
			AffectedSections: []string{"footer"},
			Page:             intPtr(p.Number),
		})
	}
	return violations
}

// CheckSections reports section titles that appear nowhere in the document. Titles are
// matched the way the renderer prints them, upper-cased.
func CheckSections(doc *Document, sections []string) []types.Violation {
	var violations []types.Violation
	for _, s := range sections {
		if len(doc.Find(strings.ToUpper(s))) > 0 {
			continue
		}
		violations = append(violations, types.Violation{
			Type:             types.ViolationMissingSection,
			Severity:         types.SeverityError,
			Details:          fmt.Sprintf("section %q not found", s),
			AffectedSections: []string{s},
		})
	}
	return violations
}

// CheckRequiredText reports strings that appear on no page
func CheckRequiredText(doc *Document, required []string) []types.Violation {
	var violations []types.Violation
	for _, s := range required {
		if strings.TrimSpace(s) == "" || len(doc.Find(s)) > 0 {
			continue
		}
		violations = append(violations, types.Violation{
			Type:     types.ViolationMissingText,
			Severity: types.SeverityWarning,
			Details:  fmt.Sprintf("text %q not found", s),
		})
	}
	return violations
}

// CheckForbiddenPhrases reports each page containing a forbidden phrase, matched
// case-insensitively. One violation per page, for the first phrase found.
func CheckForbiddenPhrases(doc *Document, phrases []string) []types.Violation {
	if len(phrases) == 0 {
		return nil
	}

	var violations []types.Violation
	for _, p := range doc.Pages {
		text := strings.ToLower(p.Text())
		for _, phrase := range phrases {
			normalized := strings.ToLower(strings.TrimSpace(phrase))
			if normalized == "" {
				continue
			}
			if strings.Contains(text, normalized) {
				violations = append(violations, types.Violation{
					Type:     types.ViolationForbiddenPhrase,
					Severity: types.SeverityError,
					Details:  fmt.Sprintf("page %d contains forbidden phrase: %s", p.Number, phrase),
					Page:     intPtr(p.Number),
				})
				break
			}
		}
	}
	return violations
}

func intPtr(i int) *int {
	return &i
}
