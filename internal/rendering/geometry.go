package rendering

// Geometry holds the page layout constants, in millimetres.
// Every section applies the same values; SafeBottom is the one page-break threshold.
type Geometry struct {
	Margin     float64 // left and right margin
	Top        float64 // cursor position at the top of each page
	SafeBottom float64 // no block may end below this y

	LineHeight       float64 // body and heading lines
	BulletLineHeight float64 // bullet and coursework lines
	BulletGap        float64 // after each bullet
	EntryGap         float64 // after each education/experience/project entry
	SectionGap       float64 // after a section that rendered any content
	TitleAdvance     float64 // from a section title to its first line
	TitleRuleGap     float64 // between a section title and its rule

	LabelColumn  float64 // headline and bullet marker offset from the margin
	BulletIndent float64 // bullet text offset from the margin
	SkillColumn  float64 // skill list offset from the margin

	FooterInset float64 // footer right inset; the baseline sits at half this above the page bottom
}

// DefaultGeometry returns the A4 layout used for the CV
func DefaultGeometry() Geometry {
	return Geometry{
		Margin:           20,
		Top:              20,
		SafeBottom:       270,
		LineHeight:       5,
		BulletLineHeight: 4,
		BulletGap:        1,
		EntryGap:         4,
		SectionGap:       5,
		TitleAdvance:     8,
		TitleRuleGap:     5,
		LabelColumn:      30,
		BulletIndent:     35,
		SkillColumn:      35,
		FooterInset:      20,
	}
}

// Font sizes in points
const (
	nameSize    = 28
	titleSize   = 14
	contactSize = 9
	sectionSize = 12
	bodySize    = 10
	detailSize  = 9
	footerSize  = 8
)

// Header block spacing
const (
	nameAdvance   = 8  // name baseline to title baseline
	headerRuleGap = 10 // before and after the header rule
	titleRuleDrop = 1  // section rule sits this far above the title baseline
	headerRule    = 0.5
	sectionRule   = 1.5
)

// Cursor is the write position of a composition: the current page (1-based) and the
// baseline of the next line on it.
type Cursor struct {
	Page int
	Y    float64
}
