// Package types provides type definitions for the portfolio data rendered into the CV
// and served by the portfolio site.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultProjectKind is the italic label printed after a project title when none is given
const DefaultProjectKind = "Personal Project"

// Portfolio bundles everything the site and the CV are built from
type Portfolio struct {
	Profile        Profile           `json:"profile" yaml:"profile"`
	Summary        string            `json:"summary" yaml:"summary"`
	Education      []EducationEntry  `json:"education" yaml:"education" validate:"dive"`
	Skills         []SkillCategory   `json:"skills" yaml:"skills" validate:"dive"`
	Experience     []ExperienceEntry `json:"experience" yaml:"experience" validate:"dive"`
	Projects       []ProjectEntry    `json:"projects" yaml:"projects" validate:"dive"`
	Certifications []Certification   `json:"certifications,omitempty" yaml:"certifications,omitempty" validate:"dive"`
	Achievements   []string          `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// Profile holds the header block of the CV
type Profile struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Title    string `json:"title" yaml:"title"`
	Location string `json:"location" yaml:"location"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
}

// Links returns the non-empty social profile identifiers in display order
func (p Profile) Links() []string {
	var links []string
	for _, l := range []string{p.LinkedIn, p.GitHub, p.Website} {
		if strings.TrimSpace(l) != "" {
			links = append(links, l)
		}
	}
	return links
}

// EducationEntry represents a degree or programme
type EducationEntry struct {
	Period      string `json:"period" yaml:"period"`
	Degree      string `json:"degree" yaml:"degree" validate:"required"`
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Coursework  string `json:"coursework,omitempty" yaml:"coursework,omitempty"`
}

// SkillCategory is a named, ordered list of skills
type SkillCategory struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Skills   []string `json:"skills" yaml:"skills"`
}

// ExperienceEntry represents one position
type ExperienceEntry struct {
	Role     string   `json:"role" yaml:"role" validate:"required"`
	Company  string   `json:"company" yaml:"company" validate:"required"`
	Location string   `json:"location,omitempty" yaml:"location,omitempty"`
	Period   string   `json:"period" yaml:"period"` // "start–end"
	Details  []string `json:"details" yaml:"details"`
}

// Start returns the part of Period before the en dash (or hyphen)
func (e ExperienceEntry) Start() string {
	for _, sep := range []string{"–", "-"} {
		if before, _, found := strings.Cut(e.Period, sep); found {
			return strings.TrimSpace(before)
		}
	}
	return strings.TrimSpace(e.Period)
}

// ProjectEntry represents a project card
type ProjectEntry struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Year        string   `json:"year" yaml:"year"`
	Kind        string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Description []string `json:"description" yaml:"description"`
}

// KindLabel returns Kind, falling back to DefaultProjectKind
func (p ProjectEntry) KindLabel() string {
	if p.Kind == "" {
		return DefaultProjectKind
	}
	return p.Kind
}

// Certification represents a certificate listed on the CV
type Certification struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
}

// Validate validates the Portfolio using the validator.
func (p *Portfolio) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
