package portfolio

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-cv/internal/schemas"
	"github.com/jonathan/portfolio-cv/internal/types"
	schemafiles "github.com/jonathan/portfolio-cv/schemas"
)

// Format is the encoding of a portfolio data file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// defaultSource names the embedded portfolio in errors
const defaultSource = "(embedded)"

//go:embed data/portfolio.yaml
var defaultData []byte

// FormatFromPath picks the format from the file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, schema-checks and validates the portfolio file at path
func Load(path string) (*types.Portfolio, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}
	return parse(path, content, FormatFromPath(path))
}

// Parse decodes portfolio data in the given format and validates it
func Parse(data []byte, format Format) (*types.Portfolio, error) {
	return parse("(input)", data, format)
}

// Default returns the portfolio bundled with the binary
func Default() (*types.Portfolio, error) {
	return parse(defaultSource, defaultData, FormatYAML)
}

// LoadOrDefault loads path, or the bundled portfolio when path is empty
func LoadOrDefault(path string) (*types.Portfolio, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

func parse(source string, data []byte, format Format) (*types.Portfolio, error) {
	var doc any
	if err := decode(data, format, &doc); err != nil {
		return nil, &LoadError{
			Path:    source,
			Message: "failed to decode " + string(format),
			Cause:   err,
		}
	}

	if err := schemas.ValidateDocument(schemafiles.Portfolio, doc); err != nil {
		return nil, &ValidationError{
			Path:    source,
			Message: "schema validation failed",
			Cause:   err,
		}
	}

	var p types.Portfolio
	if err := decode(data, format, &p); err != nil {
		return nil, &LoadError{
			Path:    source,
			Message: "failed to decode " + string(format),
			Cause:   err,
		}
	}

	if err := p.Validate(); err != nil {
		return nil, &ValidationError{
			Path:    source,
			Message: "field validation failed",
			Cause:   err,
		}
	}

	return &p, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(v)
	}
}
