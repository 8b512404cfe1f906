package rendering

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-cv/internal/types"
)

// recorderCharWidth is the width of every rune on the recorder, in millimetres
const recorderCharWidth = 2.0

type drawOp struct {
	Kind  string // text, line, page
	Page  int
	X, Y  float64
	X2    float64
	Text  string
	Style Style
	Size  float64
}

// recorder is a Drawer with fixed-width glyphs that records every operation
type recorder struct {
	page  int
	pages int
	style Style
	size  float64
	ops   []drawOp
	err   error
}

func newRecorder() *recorder {
	return &recorder{size: bodySize}
}

func (r *recorder) factory() DrawerFactory {
	return func(DocumentInfo) Drawer { return r }
}

func (r *recorder) SetFont(style Style, size float64) { r.style, r.size = style, size }
func (r *recorder) SetTextColor(Color)                {}

func (r *recorder) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * recorderCharWidth
}

func (r *recorder) SplitText(s string, width float64) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		if cur == "" {
			cur = w
			continue
		}
		if r.TextWidth(cur+" "+w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func (r *recorder) Text(x, y float64, s string) {
	r.ops = append(r.ops, drawOp{Kind: "text", Page: r.page, X: x, Y: y, Text: s, Style: r.style, Size: r.size})
}

func (r *recorder) Line(x1, y1, x2, _, _ float64) {
	r.ops = append(r.ops, drawOp{Kind: "line", Page: r.page, X: x1, Y: y1, X2: x2})
}

func (r *recorder) AddPage() {
	r.pages++
	r.page = r.pages
	r.ops = append(r.ops, drawOp{Kind: "page", Page: r.page})
}

func (r *recorder) SetPage(n int)                { r.page = n }
func (r *recorder) PageCount() int               { return r.pages }
func (r *recorder) PageSize() (float64, float64) { return 210, 297 }
func (r *recorder) Err() error                   { return r.err }
func (r *recorder) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-recorded")
	return err
}

// texts returns the text operations in draw order
func (r *recorder) texts() []drawOp {
	var out []drawOp
	for _, op := range r.ops {
		if op.Kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

// find returns the first text operation equal to s
func (r *recorder) find(s string) (drawOp, bool) {
	for _, op := range r.texts() {
		if op.Text == s {
			return op, true
		}
	}
	return drawOp{}, false
}

// contains reports whether any text operation contains s
func (r *recorder) contains(s string) bool {
	for _, op := range r.texts() {
		if strings.Contains(op.Text, s) {
			return true
		}
	}
	return false
}

func samplePortfolio() *types.Portfolio {
	return &types.Portfolio{
		Profile: types.Profile{
			Name:     "Jane Doe",
			Title:    "Data Analyst",
			Location: "Lahore, Pakistan",
			Email:    "jane@example.com",
			GitHub:   "github.com/janedoe",
		},
		Summary: "Analyst who builds data products.",
		Education: []types.EducationEntry{
			{Period: "2024–Present", Degree: "BS Computer Science", Institution: "State University"},
		},
		Skills: []types.SkillCategory{
			{Category: "Data", Skills: []string{"Python", "SQL"}},
		},
		Experience: []types.ExperienceEntry{
			{Role: "Analyst", Company: "Acme", Period: "2023–Present", Details: []string{"Built dashboards."}},
		},
		Projects: []types.ProjectEntry{
			{Title: "Crop Monitor", Year: "2024", Description: []string{"Satellite crop health."}},
		},
	}
}
