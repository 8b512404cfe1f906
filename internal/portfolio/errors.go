// Package portfolio loads portfolio data files and answers queries the site makes of them.
package portfolio

import "fmt"

// LoadError represents an error during file I/O or decoding
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents portfolio data that decoded but failed the schema or
// field validation
type ValidationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid portfolio %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid portfolio %s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
