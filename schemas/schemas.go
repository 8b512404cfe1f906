// Package schemas embeds the JSON Schemas for the data files the CLI and server load.
package schemas

import _ "embed"

// Portfolio is the JSON Schema for portfolio data files
//
//go:embed portfolio.schema.json
var Portfolio string
