package rendering

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const fontFamily = "Helvetica"

// pdfDrawer implements Drawer on fpdf with the core Helvetica font.
// Core fonts are single-byte, so text is translated to cp1252 on the way in.
type pdfDrawer struct {
	pdf    *fpdf.Fpdf
	encode func(string) string
	style  Style
	size   float64
}

// NewPDFDrawerFactory returns a factory producing A4 fpdf drawers.
// A non-zero created time is stamped as the creation date so output is reproducible.
func NewPDFDrawerFactory(created time.Time) DrawerFactory {
	return func(info DocumentInfo) Drawer {
		return newPDFDrawer(info, created)
	}
}

func newPDFDrawer(info DocumentInfo, created time.Time) *pdfDrawer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCatalogSort(true)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
	}
	pdf.SetTitle(info.Title, true)
	pdf.SetAuthor(info.Author, true)
	pdf.SetCreator("portfolio-cv", false)

	d := &pdfDrawer{
		pdf:    pdf,
		encode: pdf.UnicodeTranslatorFromDescriptor(""),
		style:  StyleNormal,
		size:   10,
	}
	pdf.SetFont(fontFamily, string(d.style), d.size)
	return d
}

func (d *pdfDrawer) SetFont(style Style, size float64) {
	d.style, d.size = style, size
	d.pdf.SetFont(fontFamily, string(style), size)
}

func (d *pdfDrawer) SetTextColor(c Color) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

func (d *pdfDrawer) TextWidth(s string) float64 {
	return d.pdf.GetStringWidth(d.encode(s))
}

// SplitText wraps on the encoded bytes and decodes each line back to UTF-8,
// so callers can hand the lines to Text unchanged.
func (d *pdfDrawer) SplitText(s string, width float64) []string {
	raw := d.pdf.SplitLines([]byte(d.encode(s)), width)
	lines := make([]string, 0, len(raw))
	dec := charmap.Windows1252.NewDecoder()
	for _, line := range raw {
		text, err := dec.Bytes(line)
		if err != nil {
			text = line
		}
		lines = append(lines, string(text))
	}
	return lines
}

func (d *pdfDrawer) Text(x, y float64, s string) {
	d.pdf.Text(x, y, d.encode(s))
}

func (d *pdfDrawer) Line(x1, y1, x2, y2, width float64) {
	d.pdf.SetLineWidth(width)
	d.pdf.Line(x1, y1, x2, y2)
}

func (d *pdfDrawer) AddPage() {
	d.pdf.AddPage()
}

func (d *pdfDrawer) SetPage(n int) {
	d.pdf.SetPage(n)
	// fpdf skips a font selection equal to the current one, which would leave the
	// revisited page drawing in whatever font its stream last selected.
	d.pdf.SetFontSize(d.size + 1)
	d.pdf.SetFont(fontFamily, string(d.style), d.size)
}

func (d *pdfDrawer) PageCount() int {
	return d.pdf.PageCount()
}

func (d *pdfDrawer) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *pdfDrawer) Output(w io.Writer) error {
	return d.pdf.Output(w)
}

func (d *pdfDrawer) Err() error {
	return d.pdf.Error()
}
