// Package types provides type definitions for the portfolio data rendered into the CV
// and served by the portfolio site.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation types reported by CV inspection
const (
	ViolationPageOverflow    = "page_overflow"
	ViolationFooterMissing   = "footer_missing"
	ViolationForbiddenPhrase = "forbidden_phrase"
	ViolationMissingSection  = "missing_section"
	ViolationMissingText     = "missing_text"
)

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single inspection failure
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	Page             *int     `json:"page,omitempty"` // 1-based
}

// Violations represents a collection of inspection failures
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity
func (v *Violations) HasErrors() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
