package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-cv/internal/types"
)

// Section titles in render order
const (
	SectionSummary        = "Summary"
	SectionEducation      = "Education"
	SectionSkills         = "Technical Skills"
	SectionExperience     = "Professional Experience"
	SectionProjects       = "Projects"
	SectionCertifications = "Certifications"
)

const bulletMarker = "•"

// header draws the name and title on the left, the contact column right-aligned on the
// right, and a rule under whichever is taller.
func (l *layout) header(p types.Profile) {
	top := l.cursor.Y
	left := top
	l.drawRuns(l.g.Margin, left, []Run{{Text: p.Name, Style: StyleBold, Size: nameSize}})
	left += nameAdvance
	if p.Title != "" {
		l.drawRuns(l.g.Margin, left, []Run{{Text: p.Title, Style: StyleItalic, Size: titleSize, Color: Grey}})
	}
	left += l.g.LineHeight

	var contacts []Run
	for _, c := range []string{p.Location, p.Phone, p.Email} {
		if c != "" {
			contacts = append(contacts, Run{Text: c, Style: StyleNormal, Size: contactSize})
		}
	}
	for _, link := range p.Links() {
		contacts = append(contacts, Run{Text: link, Style: StyleNormal, Size: contactSize, Color: LinkBlue})
	}
	rightY := top
	for i, c := range contacts {
		if i > 0 {
			rightY += l.g.LineHeight
		}
		l.drawRuns(l.right()-l.measure([]Run{c}), rightY, []Run{c})
	}

	l.cursor.Y = max(left, rightY) + headerRuleGap
	l.d.Line(l.g.Margin, l.cursor.Y, l.right(), l.cursor.Y, headerRule)
	l.advance(headerRuleGap)
}

// sectionTitle draws an upper-cased bold title followed by a rule running from the end
// of the title text to the right margin. The title is kept on a page with reserve
// millimetres of the content that follows it.
func (l *layout) sectionTitle(title string, reserve float64) {
	l.ensureSpace(l.g.TitleAdvance + reserve)
	text := strings.ToUpper(title)
	y := l.cursor.Y
	end := l.drawRuns(l.g.Margin, y, []Run{{Text: text, Style: StyleBold, Size: sectionSize}})
	l.d.Line(end+l.g.TitleRuleGap, y-titleRuleDrop, l.right(), y-titleRuleDrop, sectionRule)
	l.advance(l.g.TitleAdvance)
}

func (l *layout) summary(text string) {
	l.sectionTitle(SectionSummary, l.g.LineHeight)
	lines := l.wrap(text, StyleNormal, bodySize, l.g.Margin)
	if len(lines) == 0 {
		return
	}
	l.place(textBlock{x: l.g.Margin, lines: lines, style: StyleNormal, size: bodySize, lineHeight: l.g.LineHeight})
	l.advance(l.g.SectionGap)
}

func (l *layout) education(entries []types.EducationEntry) {
	l.sectionTitle(SectionEducation, l.g.LineHeight)
	x := l.g.Margin + l.g.LabelColumn
	for _, e := range entries {
		where := e.Institution
		if e.Location != "" {
			where += ", " + e.Location
		}
		l.headline(e.Period, x, []Run{
			{Text: e.Degree + ",", Style: StyleBold, Size: bodySize},
			{Text: " " + where, Style: StyleItalic, Size: bodySize},
		}, 0)
		if e.Coursework != "" {
			l.place(textBlock{
				x:          x,
				lines:      l.wrap("Relevant Coursework: "+e.Coursework, StyleNormal, detailSize, x),
				style:      StyleNormal,
				size:       detailSize,
				lineHeight: l.g.BulletLineHeight,
			})
		}
		l.advance(l.g.EntryGap)
	}
	if len(entries) > 0 {
		l.advance(l.g.SectionGap)
	}
}

func (l *layout) skills(categories []types.SkillCategory) {
	l.sectionTitle(SectionSkills, l.g.LineHeight)
	for _, c := range categories {
		l.skillCategory(c)
	}
	if len(categories) > 0 {
		l.advance(l.g.SectionGap)
	}
}

// skillCategory writes "Category: a, b, c" with the list wrapped in the skill column.
// A label wider than the column pushes the list right rather than overlapping it.
func (l *layout) skillCategory(c types.SkillCategory) {
	label := Run{Text: c.Category, Style: StyleBold, Size: bodySize}
	x := max(l.g.Margin+l.g.SkillColumn, l.g.Margin+l.measure([]Run{label}))
	l.place(textBlock{
		x:          x,
		lines:      l.wrap(": "+strings.Join(c.Skills, ", "), StyleNormal, bodySize, x),
		style:      StyleNormal,
		size:       bodySize,
		lineHeight: l.g.LineHeight,
		lead:       &label,
		leadX:      l.g.Margin,
	})
}

// entryReserve is the room the first headline of an entry section needs below the
// title: one headline line plus its first bullet line.
func (l *layout) entryReserve(entries int) float64 {
	if entries == 0 {
		return l.g.LineHeight
	}
	return l.g.LineHeight + l.g.BulletLineHeight
}

func (l *layout) experience(entries []types.ExperienceEntry) {
	l.sectionTitle(SectionExperience, l.entryReserve(len(entries)))
	for _, e := range entries {
		company := e.Company
		if e.Location != "" {
			company += ", " + e.Location
		}
		l.headline(e.Start(), l.g.Margin+l.g.LabelColumn, []Run{
			{Text: e.Role + ",", Style: StyleBold, Size: bodySize},
			{Text: " " + company, Style: StyleItalic, Size: bodySize},
		}, l.g.BulletLineHeight)
		l.bullets(e.Details)
		l.advance(l.g.EntryGap)
	}
	if len(entries) > 0 {
		l.advance(l.g.SectionGap)
	}
}

// projects renders at most limit entries in their given order and returns how many
// were rendered.
func (l *layout) projects(entries []types.ProjectEntry, limit int) int {
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	l.sectionTitle(SectionProjects, l.entryReserve(len(entries)))
	for _, p := range entries {
		l.headline(p.Year, l.g.Margin+l.g.LabelColumn, []Run{
			{Text: p.Title + ",", Style: StyleBold, Size: bodySize},
			{Text: " " + p.KindLabel(), Style: StyleItalic, Size: bodySize},
		}, l.g.BulletLineHeight)
		l.bullets(p.Description)
		l.advance(l.g.EntryGap)
	}
	if len(entries) > 0 {
		l.advance(l.g.SectionGap)
	}
	return len(entries)
}

func (l *layout) certifications(certs []types.Certification) {
	if len(certs) == 0 {
		return
	}
	l.sectionTitle(SectionCertifications, l.g.BulletLineHeight)
	items := make([]string, 0, len(certs))
	for _, c := range certs {
		text := c.Name
		if c.Issuer != "" {
			text += ", " + c.Issuer
		}
		if c.Year != "" {
			text += " (" + c.Year + ")"
		}
		items = append(items, text)
	}
	l.bullets(items)
	l.advance(l.g.SectionGap)
}

// bullets writes each detail as a marker in the label column and wrapped text at the
// bullet indent.
func (l *layout) bullets(details []string) {
	x := l.g.Margin + l.g.BulletIndent
	for _, detail := range details {
		l.place(textBlock{
			x:          x,
			lines:      l.wrap(detail, StyleNormal, detailSize, x),
			style:      StyleNormal,
			size:       detailSize,
			lineHeight: l.g.BulletLineHeight,
			lead:       &Run{Text: bulletMarker, Style: StyleNormal, Size: detailSize},
			leadX:      l.g.Margin + l.g.LabelColumn,
		})
		l.advance(l.g.BulletGap)
	}
}

// footer stamps "Page i/N" on every page once all content is placed
func (l *layout) footer() {
	total := l.d.PageCount()
	for i := 1; i <= total; i++ {
		l.d.SetPage(i)
		label := Run{Text: FooterLabel(i, total), Style: StyleNormal, Size: footerSize}
		x := l.pageW - l.g.FooterInset - l.measure([]Run{label})
		l.drawRuns(x, l.pageH-l.g.FooterInset/2, []Run{label})
	}
}

// FooterLabel formats the page label stamped by the footer pass
func FooterLabel(page, total int) string {
	return fmt.Sprintf("Page %d/%d", page, total)
}
