// Package rendering lays out portfolio data as a paginated PDF CV.
package rendering

import "fmt"

// RenderError represents a failure reported by the drawing primitive
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError represents a failure saving the rendered document
type ExportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("export error: %s (%s)", e.Message, e.Path)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
