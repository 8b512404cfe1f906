package validation

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is the text layer of one PDF page
type Page struct {
	Number int
	Lines  []string // top to bottom, fragments on a line joined by a space
}

// Text returns the page text, one line per row
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// Contains reports whether any line of the page contains s
func (p Page) Contains(s string) bool {
	for _, line := range p.Lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// Document is the extracted text of a PDF
type Document struct {
	Pages []Page
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Text returns the full document text with pages separated by a form feed
func (d *Document) Text() string {
	texts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\f")
}

// Find returns the numbers of the pages containing s
func (d *Document) Find(s string) []int {
	var pages []int
	for _, p := range d.Pages {
		if p.Contains(s) {
			pages = append(pages, p.Number)
		}
	}
	return pages
}

// ReadDocument opens the PDF at path and extracts its text layer
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{
			Message: fmt.Sprintf("failed to read PDF file: %s", path),
			Cause:   err,
		}
	}
	return ParseDocument(data)
}

// ParseDocument extracts the text layer of an in-memory PDF
func ParseDocument(data []byte) (doc *Document, err error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FileReadError{Message: "failed to parse PDF", Cause: err}
	}

	// the reader panics on some malformed streams
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = &FileReadError{Message: fmt.Sprintf("failed to extract PDF text: %v", rec)}
		}
	}()

	doc = &Document{Pages: make([]Page, 0, r.NumPage())}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		page := Page{Number: i}
		if !p.V.IsNull() {
			rows, err := p.GetTextByRow()
			if err != nil {
				return nil, &FileReadError{Message: fmt.Sprintf("failed to extract text of page %d", i), Cause: err}
			}
			page.Lines = rowLines(rows)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// CountPDFPages counts the number of pages in a PDF file
func CountPDFPages(pdfPath string) (int, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, &FileReadError{
			Message: fmt.Sprintf("failed to open PDF file: %s", pdfPath),
			Cause:   err,
		}
	}
	defer func() { _ = f.Close() }()
	return r.NumPage(), nil
}

func rowLines(rows pdf.Rows) []string {
	sorted := make(pdf.Rows, len(rows))
	copy(sorted, rows)
	// PDF y grows upwards
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position > sorted[j].Position })

	lines := make([]string, 0, len(sorted))
	for _, row := range sorted {
		words := make([]pdf.Text, len(row.Content))
		copy(words, row.Content)
		sort.SliceStable(words, func(i, j int) bool { return words[i].X < words[j].X })

		parts := make([]string, 0, len(words))
		for _, w := range words {
			if s := strings.TrimSpace(w.S); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return lines
}
