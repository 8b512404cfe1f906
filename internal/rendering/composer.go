package rendering

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/types"
)

// DefaultMaxProjects is how many leading projects fit on the CV
const DefaultMaxProjects = 4

// Options configures a Composer
type Options struct {
	Geometry    Geometry
	MaxProjects int // negative renders every project
	NewDrawer   DrawerFactory
	Logger      *zap.Logger
}

// Option is a functional option for NewComposer
type Option func(*Options)

// WithGeometry overrides the page layout constants
func WithGeometry(g Geometry) Option {
	return func(o *Options) { o.Geometry = g }
}

// WithMaxProjects caps the number of project entries rendered. Zero keeps
// DefaultMaxProjects and a negative value renders every project.
func WithMaxProjects(n int) Option {
	return func(o *Options) {
		if n == 0 {
			n = DefaultMaxProjects
		}
		o.MaxProjects = n
	}
}

// WithDrawerFactory replaces the fpdf drawer
func WithDrawerFactory(f DrawerFactory) Option {
	return func(o *Options) { o.NewDrawer = f }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithCreationDate fixes the PDF creation date, for byte-identical output
func WithCreationDate(t time.Time) Option {
	return func(o *Options) { o.NewDrawer = NewPDFDrawerFactory(t) }
}

// Composer turns a Portfolio into a CV document. It holds no per-document state, so
// one Composer may serve concurrent compositions.
type Composer struct {
	opts Options
}

// NewComposer creates a Composer with the default A4 geometry and fpdf drawer
func NewComposer(opts ...Option) *Composer {
	o := Options{
		Geometry:    DefaultGeometry(),
		MaxProjects: DefaultMaxProjects,
		NewDrawer:   NewPDFDrawerFactory(time.Time{}),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Composer{opts: o}
}

// SectionStat records where a section started and ended
type SectionStat struct {
	Name  string
	Start Cursor
	End   Cursor
}

// Stats describes a finished composition
type Stats struct {
	Pages            int
	Sections         []SectionStat
	ProjectsRendered int
	ProjectsOmitted  int
}

// Section returns the stat for the named section, or false if it was not rendered
func (s *Stats) Section(name string) (SectionStat, bool) {
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return SectionStat{}, false
}

// Compose lays p out on a fresh drawer, stamps the footers, and returns the drawer
// ready for output.
func (c *Composer) Compose(p *types.Portfolio) (Drawer, *Stats, error) {
	if p == nil {
		return nil, nil, &RenderError{Message: "portfolio is nil"}
	}

	d := c.opts.NewDrawer(DocumentInfo{
		Title:  strings.TrimSpace(p.Profile.Name + " CV"),
		Author: p.Profile.Name,
	})
	l := newLayout(d, c.opts.Geometry)
	stats := &Stats{}

	section := func(name string, fn func()) {
		start := l.cursor
		fn()
		stats.Sections = append(stats.Sections, SectionStat{Name: name, Start: start, End: l.cursor})
	}

	section("Header", func() { l.header(p.Profile) })
	section(SectionSummary, func() { l.summary(p.Summary) })
	section(SectionEducation, func() { l.education(p.Education) })
	section(SectionSkills, func() { l.skills(p.Skills) })
	section(SectionExperience, func() { l.experience(p.Experience) })
	section(SectionProjects, func() {
		stats.ProjectsRendered = l.projects(p.Projects, c.opts.MaxProjects)
	})
	if len(p.Certifications) > 0 {
		section(SectionCertifications, func() { l.certifications(p.Certifications) })
	}

	l.footer()
	stats.Pages = d.PageCount()
	stats.ProjectsOmitted = len(p.Projects) - stats.ProjectsRendered

	if err := d.Err(); err != nil {
		return nil, nil, &RenderError{Message: "drawing failed", Cause: err}
	}

	c.opts.Logger.Debug("composed CV",
		zap.String("name", p.Profile.Name),
		zap.Int("pages", stats.Pages),
		zap.Int("projects_rendered", stats.ProjectsRendered),
		zap.Int("projects_omitted", stats.ProjectsOmitted))

	return d, stats, nil
}

// Render composes p and writes the document to w
func (c *Composer) Render(w io.Writer, p *types.Portfolio) (*Stats, error) {
	d, stats, err := c.Compose(p)
	if err != nil {
		return nil, err
	}
	if err := d.Output(w); err != nil {
		return nil, &RenderError{Message: "failed to write document", Cause: err}
	}
	return stats, nil
}

// Bytes composes p and returns the document bytes
func (c *Composer) Bytes(p *types.Portfolio) ([]byte, *Stats, error) {
	var buf bytes.Buffer
	stats, err := c.Render(&buf, p)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), stats, nil
}

// Export renders p and saves it in dir under OutputFilename. The document is written to
// a temporary file first, so a failed export leaves nothing behind.
func (c *Composer) Export(dir string, p *types.Portfolio) (string, *Stats, error) {
	if p == nil {
		return "", nil, &RenderError{Message: "portfolio is nil"}
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, OutputFilename(p.Profile.Name))

	data, stats, err := c.Bytes(p)
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, &ExportError{Path: dir, Message: "failed to create output directory", Cause: err}
	}
	tmp, err := os.CreateTemp(dir, ".cv-*.pdf")
	if err != nil {
		return "", nil, &ExportError{Path: path, Message: "failed to create temp file", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", nil, &ExportError{Path: path, Message: "failed to write document", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", nil, &ExportError{Path: path, Message: "failed to close document", Cause: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", nil, &ExportError{Path: path, Message: "failed to save document", Cause: err}
	}

	c.opts.Logger.Info("exported CV", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, stats, nil
}

// OutputFilename returns "<Person_Name>_CV.pdf", keeping only letters, digits, dots and
// hyphens from the name.
func OutputFilename(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
				return r
			}
			return -1
		}, word)
		if clean == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(clean)
	}
	if sb.Len() == 0 {
		return "CV.pdf"
	}
	return fmt.Sprintf("%s_CV.pdf", sb.String())
}
