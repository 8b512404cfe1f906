package rendering

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/portfolio-cv/internal/types"
)

var fixedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func composeWithRecorder(t *testing.T, p *types.Portfolio, opts ...Option) (*recorder, *Stats) {
	t.Helper()
	rec := newRecorder()
	opts = append([]Option{WithDrawerFactory(rec.factory()), WithLogger(zaptest.NewLogger(t))}, opts...)
	_, stats, err := NewComposer(opts...).Compose(p)
	require.NoError(t, err)
	return rec, stats
}

func TestCompose_SmallPortfolioFitsOnePage(t *testing.T) {
	rec, stats := composeWithRecorder(t, samplePortfolio())

	assert.Equal(t, 1, stats.Pages)
	assert.Equal(t, 1, rec.pages)
	footer, ok := rec.find("Page 1/1")
	require.True(t, ok)
	assert.Equal(t, 1, footer.Page)
}

func TestCompose_SectionOrder(t *testing.T) {
	_, stats := composeWithRecorder(t, samplePortfolio())

	var names []string
	for _, s := range stats.Sections {
		names = append(names, s.Name)
	}
	want := []string{"Header", SectionSummary, SectionEducation, SectionSkills, SectionExperience, SectionProjects}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(stats.Sections); i++ {
		prev, cur := stats.Sections[i-1].End, stats.Sections[i].Start
		assert.Equal(t, prev, cur, "section %s should start where the previous one ended", stats.Sections[i].Name)
	}
}

func TestCompose_CertificationsOnlyWhenPresent(t *testing.T) {
	rec, stats := composeWithRecorder(t, samplePortfolio())
	_, ok := stats.Section(SectionCertifications)
	assert.False(t, ok)
	assert.False(t, rec.contains("CERTIFICATIONS"))

	p := samplePortfolio()
	p.Certifications = []types.Certification{{Name: "Data Analytics", Issuer: "Google", Year: "2024"}}
	rec, stats = composeWithRecorder(t, p)
	_, ok = stats.Section(SectionCertifications)
	assert.True(t, ok)
	_, ok = rec.find("Data Analytics, Google (2024)")
	assert.True(t, ok)
}

func TestEnsureSpace(t *testing.T) {
	g := DefaultGeometry()

	t.Run("fits", func(t *testing.T) {
		l := newLayout(newRecorder(), g)
		l.cursor.Y = g.SafeBottom - 5
		l.ensureSpace(5)
		assert.Equal(t, Cursor{Page: 1, Y: g.SafeBottom - 5}, l.cursor)
	})

	t.Run("overflow breaks and resets to top", func(t *testing.T) {
		rec := newRecorder()
		l := newLayout(rec, g)
		l.cursor.Y = g.SafeBottom - 3
		l.ensureSpace(5)
		assert.Equal(t, Cursor{Page: 2, Y: g.Top}, l.cursor)
		assert.Equal(t, 2, rec.pages)
	})

	t.Run("top of page never breaks", func(t *testing.T) {
		rec := newRecorder()
		l := newLayout(rec, g)
		l.ensureSpace(g.SafeBottom * 2)
		assert.Equal(t, Cursor{Page: 1, Y: g.Top}, l.cursor)
		assert.Equal(t, 1, rec.pages)
	})
}

func TestCompose_OverflowStartsNewPageAtTop(t *testing.T) {
	p := samplePortfolio()
	p.Experience = nil
	for i := 0; i < 25; i++ {
		p.Experience = append(p.Experience, types.ExperienceEntry{
			Role:    fmt.Sprintf("Role %d", i),
			Company: "Acme",
			Period:  "2020–2021",
			Details: []string{"Shipped a reporting pipeline used across the company.", "Mentored two interns."},
		})
	}
	rec, stats := composeWithRecorder(t, p)
	g := DefaultGeometry()

	require.Greater(t, stats.Pages, 1)

	footerY := 297 - g.FooterInset/2
	firstOnPage := map[int]drawOp{}
	for _, op := range rec.texts() {
		if op.Y == footerY {
			continue
		}
		assert.LessOrEqual(t, op.Y, g.SafeBottom, "text %q below the safe area", op.Text)
		if _, seen := firstOnPage[op.Page]; !seen {
			firstOnPage[op.Page] = op
		}
	}
	for page := 2; page <= stats.Pages; page++ {
		op, ok := firstOnPage[page]
		require.True(t, ok, "page %d has no content", page)
		assert.Equal(t, g.Top, op.Y, "page %d should start at the top margin", page)
	}
}

func TestCompose_PagesOnlyIncrease(t *testing.T) {
	p := samplePortfolio()
	for i := 0; i < 40; i++ {
		p.Skills = append(p.Skills, types.SkillCategory{Category: "Cat", Skills: []string{"a", "b"}})
	}
	rec, stats := composeWithRecorder(t, p)
	require.Greater(t, stats.Pages, 1)

	last := 0
	for _, op := range rec.ops {
		if op.Kind == "text" && strings.HasPrefix(op.Text, "Page ") {
			break
		}
		assert.GreaterOrEqual(t, op.Page, last)
		last = op.Page
	}
}

func TestCompose_FooterStampsEveryPageAfterContent(t *testing.T) {
	p := samplePortfolio()
	for i := 0; i < 100; i++ {
		p.Skills = append(p.Skills, types.SkillCategory{Category: "Cat", Skills: []string{"Go"}})
	}
	rec, stats := composeWithRecorder(t, p)
	require.Greater(t, stats.Pages, 2)

	var want, got []string
	lastContent, firstFooter := -1, -1
	for i, op := range rec.ops {
		if op.Kind == "text" && strings.HasPrefix(op.Text, "Page ") {
			got = append(got, fmt.Sprintf("%d:%s", op.Page, op.Text))
			if firstFooter < 0 {
				firstFooter = i
			}
			continue
		}
		lastContent = i
	}
	for i := 1; i <= stats.Pages; i++ {
		want = append(want, fmt.Sprintf("%d:Page %d/%d", i, i, stats.Pages))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("footers mismatch (-want +got):\n%s", diff)
	}
	assert.Less(t, lastContent, firstFooter, "footers must be stamped after all content")
}

func TestSectionTitle_RuleStartsAfterTitleText(t *testing.T) {
	rec := newRecorder()
	g := DefaultGeometry()
	l := newLayout(rec, g)
	l.sectionTitle(SectionSkills, g.LineHeight)

	title, ok := rec.find("TECHNICAL SKILLS")
	require.True(t, ok)
	assert.Equal(t, StyleBold, title.Style)

	var rule drawOp
	for _, op := range rec.ops {
		if op.Kind == "line" {
			rule = op
		}
	}
	assert.Equal(t, g.Margin+rec.TextWidth("TECHNICAL SKILLS")+g.TitleRuleGap, rule.X)
	assert.Equal(t, 210-g.Margin, rule.X2)
	assert.Equal(t, title.Y-titleRuleDrop, rule.Y)
	assert.Equal(t, g.Top+g.TitleAdvance, l.cursor.Y)
}

func TestHeadline_RunsAdvanceByMeasuredWidth(t *testing.T) {
	rec, _ := composeWithRecorder(t, samplePortfolio())
	g := DefaultGeometry()

	role, ok := rec.find("Analyst,")
	require.True(t, ok)
	company, ok := rec.find("Acme")
	require.True(t, ok)

	assert.Equal(t, g.Margin+g.LabelColumn, role.X)
	assert.Equal(t, StyleBold, role.Style)
	assert.Equal(t, role.X+rec.TextWidth("Analyst,"), company.X)
	assert.Equal(t, StyleItalic, company.Style)
	assert.Equal(t, role.Y, company.Y)

	start, ok := rec.find("2023")
	require.True(t, ok)
	assert.Equal(t, g.Margin, start.X)
	assert.Equal(t, role.Y, start.Y)
}

func TestSkillCategory_CursorAdvancesByWrappedLines(t *testing.T) {
	var skills []string
	for i := 0; i < 20; i++ {
		skills = append(skills, fmt.Sprintf("Distributed Stream Processing %02d", i))
	}
	category := types.SkillCategory{Category: "Data", Skills: skills}
	g := DefaultGeometry()

	t.Run("recorder", func(t *testing.T) {
		rec := newRecorder()
		l := newLayout(rec, g)
		before := l.cursor
		l.skillCategory(category)

		x := g.Margin + g.SkillColumn
		lines := rec.SplitText(": "+strings.Join(skills, ", "), 210-g.Margin-x)
		require.Greater(t, len(lines), 1)
		assert.Equal(t, before.Y+float64(len(lines))*g.LineHeight, l.cursor.Y)
		assert.NotEqual(t, before.Y+g.LineHeight, l.cursor.Y)
	})

	t.Run("pdf", func(t *testing.T) {
		d := newPDFDrawer(DocumentInfo{}, fixedTime)
		l := newLayout(d, g)
		before := l.cursor
		l.skillCategory(category)

		pageW, _ := d.PageSize()
		d.SetFont(StyleNormal, bodySize)
		lines := d.SplitText(": "+strings.Join(skills, ", "), pageW-g.Margin-(g.Margin+g.SkillColumn))
		require.Greater(t, len(lines), 1)
		assert.InDelta(t, before.Y+float64(len(lines))*g.LineHeight, l.cursor.Y, 1e-9)
	})
}

func TestCompose_ProjectsCappedAtFour(t *testing.T) {
	p := samplePortfolio()
	names := []string{"Alpha Tracker", "Beta Board", "Gamma Graph", "Delta Dash", "Epsilon Engine"}
	p.Projects = nil
	for _, n := range names {
		p.Projects = append(p.Projects, types.ProjectEntry{Title: n, Year: "2024", Description: []string{"About " + n}})
	}
	rec, stats := composeWithRecorder(t, p)

	for _, n := range names[:4] {
		assert.True(t, rec.contains(n), "%s should be rendered", n)
	}
	assert.False(t, rec.contains("Epsilon Engine"))
	assert.Equal(t, 4, stats.ProjectsRendered)
	assert.Equal(t, 1, stats.ProjectsOmitted)

	rec, stats = composeWithRecorder(t, p, WithMaxProjects(0))
	assert.False(t, rec.contains("Epsilon Engine"), "zero keeps the default cap")
	assert.Equal(t, DefaultMaxProjects, stats.ProjectsRendered)

	rec, stats = composeWithRecorder(t, p, WithMaxProjects(-1))
	assert.True(t, rec.contains("Epsilon Engine"))
	assert.Equal(t, 5, stats.ProjectsRendered)
}

func TestCompose_EmptyExperienceKeepsHeaderWithoutGap(t *testing.T) {
	p := samplePortfolio()
	p.Experience = nil
	rec, stats := composeWithRecorder(t, p)
	g := DefaultGeometry()

	exp, ok := rec.find("PROFESSIONAL EXPERIENCE")
	require.True(t, ok)
	proj, ok := rec.find("PROJECTS")
	require.True(t, ok)
	assert.Equal(t, exp.Page, proj.Page)
	assert.Equal(t, exp.Y+g.TitleAdvance, proj.Y)

	ruled := false
	for _, op := range rec.ops {
		if op.Kind == "line" && op.Y == exp.Y-titleRuleDrop {
			ruled = true
		}
	}
	assert.True(t, ruled, "experience rule should still be drawn")

	sec, ok := stats.Section(SectionExperience)
	require.True(t, ok)
	assert.Equal(t, sec.Start.Y+g.TitleAdvance, sec.End.Y)
}

func TestCompose_EntriesKeepTheirOrder(t *testing.T) {
	p := samplePortfolio()
	p.Experience = []types.ExperienceEntry{
		{Role: "Zeta", Company: "Z", Period: "2019–2020"},
		{Role: "Alpha", Company: "A", Period: "2022–2023"},
	}
	rec, _ := composeWithRecorder(t, p)

	zeta, ok := rec.find("Zeta,")
	require.True(t, ok)
	alpha, ok := rec.find("Alpha,")
	require.True(t, ok)
	assert.Less(t, zeta.Y, alpha.Y)
}

func TestCompose_NilPortfolio(t *testing.T) {
	_, _, err := NewComposer().Compose(nil)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
}

func TestCompose_DrawerErrorPropagates(t *testing.T) {
	rec := newRecorder()
	rec.err = errors.New("font not found")
	_, _, err := NewComposer(WithDrawerFactory(rec.factory())).Compose(samplePortfolio())

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.ErrorIs(t, err, rec.err)
}

func TestExport_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	rec.err = errors.New("boom")
	_, _, err := NewComposer(WithDrawerFactory(rec.factory())).Export(dir, samplePortfolio())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport_WritesPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, stats, err := NewComposer(WithCreationDate(fixedTime), WithLogger(zaptest.NewLogger(t))).Export(dir, samplePortfolio())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Jane_Doe_CV.pdf"), path)
	assert.Equal(t, 1, stats.Pages)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed, not left behind")
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Tahir Hussain", "Tahir_Hussain_CV.pdf"},
		{"  Jane   van der Berg ", "Jane_van_der_Berg_CV.pdf"},
		{"José Ñúñez", "José_Ñúñez_CV.pdf"},
		{"../etc/passwd", "..etcpasswd_CV.pdf"},
		{"", "CV.pdf"},
		{"///", "CV.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFilename(tt.name))
		})
	}
}

// textSpan records where a text operation starts and ends on the page
type textSpan struct {
	page      int
	x, y, end float64
	text      string
}

// spanTracer wraps a Drawer and records the extent of every text it draws
type spanTracer struct {
	Drawer
	page  int
	spans []textSpan
}

func (s *spanTracer) AddPage() {
	s.Drawer.AddPage()
	s.page = s.Drawer.PageCount()
}

func (s *spanTracer) SetPage(n int) {
	s.Drawer.SetPage(n)
	s.page = n
}

func (s *spanTracer) Text(x, y float64, text string) {
	s.spans = append(s.spans, textSpan{page: s.page, x: x, y: y, end: x + s.Drawer.TextWidth(text), text: text})
	s.Drawer.Text(x, y, text)
}

const longProjectTitle = "AI-Powered Meeting Analytics Platform with Real-Time Transcription and Sentiment Insights"

func TestHeadline_LongTitleStaysInsideMargins(t *testing.T) {
	p := samplePortfolio()
	p.Projects = []types.ProjectEntry{{
		Title:       longProjectTitle,
		Year:        "2025",
		Kind:        "Data Science",
		Description: []string{"Summarised meetings."},
	}}
	p.Experience[0].Role = longProjectTitle
	g := DefaultGeometry()
	x := g.Margin + g.LabelColumn

	drawers := map[string]func(DocumentInfo) Drawer{
		"pdf":      func(info DocumentInfo) Drawer { return newPDFDrawer(info, fixedTime) },
		"recorder": func(DocumentInfo) Drawer { return newRecorder() },
	}
	for name, newDrawer := range drawers {
		t.Run(name, func(t *testing.T) {
			tracer := &spanTracer{}
			factory := func(info DocumentInfo) Drawer {
				tracer.Drawer = newDrawer(info)
				return tracer
			}
			_, stats, err := NewComposer(WithDrawerFactory(factory), WithLogger(zaptest.NewLogger(t))).Compose(p)
			require.NoError(t, err)
			assert.Equal(t, 1, stats.Pages)

			right := 210 - g.Margin
			for _, s := range tracer.spans {
				assert.LessOrEqual(t, s.x, right, "text %q starts past the margin", s.text)
				assert.LessOrEqual(t, s.end, right+0.01, "text %q runs past the margin", s.text)
			}

			var kind *textSpan
			for i, s := range tracer.spans {
				if s.text == "Data Science" {
					kind = &tracer.spans[i]
				}
			}
			require.NotNil(t, kind, "the project kind is drawn as one piece")
			assert.Equal(t, x, kind.x, "the kind moves to its own row at the headline start")

			var title []textSpan
			for _, s := range tracer.spans {
				if s.x == x && s.y < kind.y && strings.Contains(longProjectTitle+",", s.text) && len(s.text) > 1 {
					title = append(title, s)
				}
			}
			require.NotEmpty(t, title)
			assert.InDelta(t, title[len(title)-1].y+g.LineHeight, kind.y, 1e-9)
		})
	}
}

func TestSectionTitle_KeptWithFirstEntry(t *testing.T) {
	g := DefaultGeometry()
	entries := []types.ExperienceEntry{{Role: "Analyst", Company: "Acme", Period: "2023–Present", Details: []string{"Built dashboards."}}}

	rec := newRecorder()
	l := newLayout(rec, g)
	// title and headline line fit above SafeBottom, the first bullet line does not
	l.cursor.Y = g.SafeBottom - g.TitleAdvance - g.LineHeight - 1
	l.experience(entries)

	title, ok := rec.find("PROFESSIONAL EXPERIENCE")
	require.True(t, ok)
	role, ok := rec.find("Analyst,")
	require.True(t, ok)
	assert.Equal(t, 2, title.Page, "the title moves with its first entry")
	assert.Equal(t, g.Top, title.Y)
	assert.Equal(t, title.Page, role.Page)
	assert.Equal(t, title.Y+g.TitleAdvance, role.Y)

	rec = newRecorder()
	l = newLayout(rec, g)
	l.cursor.Y = g.SafeBottom - g.TitleAdvance - g.LineHeight - 1
	l.experience(nil)
	title, ok = rec.find("PROFESSIONAL EXPERIENCE")
	require.True(t, ok)
	assert.Equal(t, 1, title.Page, "an empty section only needs room for its title")
}
