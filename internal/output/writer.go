// Package output serializes pipeline results to JSON, JSONL, or YAML.
package output

import (
	"fmt"
	"io"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles result serialization.
type Writer interface {
	// Write outputs or buffers a single result.
	Write(data any) error

	// Flush ensures all buffered data is written.
	Flush() error
}

// Option configures a writer.
type Option func(*config)

type config struct {
	pretty bool
	indent string
}

// WithCompact disables pretty-printing for JSON output.
func WithCompact() Option {
	return func(c *config) {
		c.pretty = false
	}
}

// WithIndent sets the JSON indentation string.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	cfg := &config{pretty: true, indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return &jsonWriter{w: w, pretty: cfg.pretty, indent: cfg.indent}, nil
	case FormatJSONL:
		return &jsonlWriter{w: w}, nil
	case FormatYAML:
		return &yamlWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
