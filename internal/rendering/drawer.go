package rendering

import "io"

// Style is a font style; values match the fpdf style strings
type Style string

// Font styles used by the CV
const (
	StyleNormal Style = ""
	StyleBold   Style = "B"
	StyleItalic Style = "I"
)

// Color is an RGB text colour
type Color struct {
	R, G, B int
}

// Text colours used by the CV
var (
	Black    = Color{}
	Grey     = Color{R: 80, G: 80, B: 80}
	LinkBlue = Color{R: 0, G: 0, B: 238}
)

// Drawer is the drawing primitive the composer lays text out on.
// Coordinates are in millimetres from the top-left corner; y is the text baseline.
type Drawer interface {
	SetFont(style Style, size float64)
	SetTextColor(c Color)
	// TextWidth measures s in the current font
	TextWidth(s string) float64
	// SplitText word-wraps s to lines no wider than width in the current font
	SplitText(s string, width float64) []string
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2, width float64)
	AddPage()
	// SetPage makes an existing page (1-based) current again
	SetPage(n int)
	PageCount() int
	PageSize() (width, height float64)
	Output(w io.Writer) error
	Err() error
}

// DocumentInfo is the metadata handed to a new drawer
type DocumentInfo struct {
	Title  string
	Author string
}

// DrawerFactory creates a fresh drawer per composition
type DrawerFactory func(info DocumentInfo) Drawer
