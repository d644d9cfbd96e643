package rdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	// FormatAuto asks FormatFromPath-style detection to pick a format.
	FormatAuto     Format = ""
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	// FormatJSONLD is supported for decoding only.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ntriples", "n-triples", "nt":
		return FormatNTriples, true
	case "nquads", "n-quads", "nq":
		return FormatNQuads, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatFromPath infers the format from a filename extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return FormatNTriples, nil
	case ".nq":
		return FormatNQuads, nil
	case ".jsonld", ".json":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("%w: no format for path %q", ErrUnsupportedFormat, path)
	}
}

// FormatFromContentType infers the format from a media type.
func FormatFromContentType(contentType string) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case "application/n-triples", "text/plain":
		return FormatNTriples, nil
	case "application/n-quads":
		return FormatNQuads, nil
	case "application/ld+json", "application/json":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("%w: no format for content type %q", ErrUnsupportedFormat, contentType)
	}
}

// ContentType returns the media type written by encoders of f.
func (f Format) ContentType() string {
	switch f {
	case FormatNTriples:
		return "application/n-triples"
	case FormatNQuads:
		return "application/n-quads"
	case FormatJSONLD:
		return "application/ld+json"
	default:
		return ""
	}
}
