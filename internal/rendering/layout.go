package rendering

import "strings"

// Run is a span of text in a single style
type Run struct {
	Text  string
	Style Style
	Size  float64
	Color Color
}

// layout owns the cursor of one composition
type layout struct {
	d      Drawer
	g      Geometry
	cursor Cursor
	pageW  float64
	pageH  float64
}

func newLayout(d Drawer, g Geometry) *layout {
	d.AddPage()
	w, h := d.PageSize()
	return &layout{
		d:      d,
		g:      g,
		cursor: Cursor{Page: 1, Y: g.Top},
		pageW:  w,
		pageH:  h,
	}
}

func (l *layout) right() float64 {
	return l.pageW - l.g.Margin
}

// ensureSpace breaks to a new page when a block of the given height would end below
// SafeBottom. A cursor already at the top of a page never breaks again.
func (l *layout) ensureSpace(height float64) {
	if l.cursor.Y+height <= l.g.SafeBottom || l.cursor.Y <= l.g.Top {
		return
	}
	l.d.AddPage()
	l.cursor.Page++
	l.cursor.Y = l.g.Top
}

// advance moves the cursor down without drawing
func (l *layout) advance(dy float64) {
	l.cursor.Y += dy
}

// drawRuns draws runs left to right on baseline y, each starting where the previous
// one ended, and returns the x after the last run.
func (l *layout) drawRuns(x, y float64, runs []Run) float64 {
	for _, r := range runs {
		l.d.SetFont(r.Style, r.Size)
		l.d.SetTextColor(r.Color)
		l.d.Text(x, y, r.Text)
		x += l.d.TextWidth(r.Text)
	}
	return x
}

// measure returns the combined width of runs
func (l *layout) measure(runs []Run) float64 {
	var w float64
	for _, r := range runs {
		l.d.SetFont(r.Style, r.Size)
		w += l.d.TextWidth(r.Text)
	}
	return w
}

// wrap splits text in the given font to the width available from x to the right margin
func (l *layout) wrap(text string, style Style, size, x float64) []string {
	l.d.SetFont(style, size)
	return l.d.SplitText(text, l.right()-x)
}

// textBlock is a run of pre-wrapped lines, optionally led by a marker beside the first line
type textBlock struct {
	x          float64
	lines      []string
	style      Style
	size       float64
	color      Color
	lineHeight float64
	lead       *Run
	leadX      float64
}

// place writes a block and advances the cursor by len(lines) × lineHeight. A block that
// fits on a page is kept together; a taller one breaks between lines.
func (l *layout) place(b textBlock) {
	height := float64(len(b.lines)) * b.lineHeight
	whole := height <= l.g.SafeBottom-l.g.Top
	if whole {
		l.ensureSpace(height)
	}
	for i, line := range b.lines {
		if !whole {
			l.ensureSpace(b.lineHeight)
		}
		if i == 0 && b.lead != nil {
			l.drawRuns(b.leadX, l.cursor.Y, []Run{*b.lead})
		}
		l.d.SetFont(b.style, b.size)
		l.d.SetTextColor(b.color)
		l.d.Text(b.x, l.cursor.Y, line)
		l.advance(b.lineHeight)
	}
}

// minTailWidth is the narrowest column a headline's last run may be wrapped into
const minTailWidth = 30.0

// headlineText is one wrapped piece of a headline, drawn on row at x
type headlineText struct {
	row int
	x   float64
	run Run
}

// headline draws a mixed-style line at x with label in the date column. The last run
// wraps within the space left after the others and continues at its own start x. When
// the leading runs leave less than minTailWidth, every run is wrapped from x instead and
// the last one starts on a row of its own. The block is kept together with reserve
// millimetres of what follows it.
func (l *layout) headline(label string, x float64, runs []Run, reserve float64) {
	if len(runs) == 0 {
		return
	}
	head, last := runs[:len(runs)-1], runs[len(runs)-1]

	var pieces []headlineText
	row := 0
	tailX := x + l.measure(head)
	if tailX > l.right()-minTailWidth {
		for _, r := range head {
			for _, line := range l.wrap(r.Text, r.Style, r.Size, x) {
				pieces = append(pieces, headlineText{row: row, x: x, run: Run{Text: line, Style: r.Style, Size: r.Size, Color: r.Color}})
				row++
			}
		}
		tailX = x
		last.Text = strings.TrimLeft(last.Text, " ")
	} else {
		hx := x
		for _, r := range head {
			pieces = append(pieces, headlineText{x: hx, run: r})
			l.d.SetFont(r.Style, r.Size)
			hx += l.d.TextWidth(r.Text)
		}
	}
	tail := l.wrap(last.Text, last.Style, last.Size, tailX)
	for i, line := range tail {
		pieces = append(pieces, headlineText{row: row + i, x: tailX, run: Run{Text: line, Style: last.Style, Size: last.Size, Color: last.Color}})
	}
	rows := row + len(tail)
	if rows == 0 {
		rows = 1
	}
	height := float64(rows) * l.g.LineHeight

	l.ensureSpace(height + reserve)
	y := l.cursor.Y
	if label != "" {
		l.drawRuns(l.g.Margin, y, []Run{{Text: label, Style: StyleNormal, Size: detailSize}})
	}
	for _, p := range pieces {
		l.drawRuns(p.x, y+float64(p.row)*l.g.LineHeight, []Run{p.run})
	}
	l.advance(height)
}
