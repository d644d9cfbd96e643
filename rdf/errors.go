package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeLineTooLong indicates a line exceeded the configured limit.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"
	// ErrCodeTripleLimitExceeded indicates that the maximum number of triples/quads was exceeded.
	ErrCodeTripleLimitExceeded ErrorCode = "TRIPLE_LIMIT_EXCEEDED"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeInvalidIRI indicates an invalid IRI was encountered.
	ErrCodeInvalidIRI ErrorCode = "INVALID_IRI"
	// ErrCodeInvalidLiteral indicates an invalid literal was encountered.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
	// ErrCodeInvalidTerm indicates a term that cannot be serialized.
	ErrCodeInvalidTerm ErrorCode = "INVALID_TERM"
	// ErrCodeInvalidResource indicates a resource reference that names no node.
	ErrCodeInvalidResource ErrorCode = "INVALID_RESOURCE"
	// ErrCodeDetachedResource indicates a resource that is not bound to a graph.
	ErrCodeDetachedResource ErrorCode = "DETACHED_RESOURCE"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrLineTooLong indicates a line exceeded the configured limit.
	ErrLineTooLong = errors.New("rdf: line exceeds configured limit")
	// ErrTripleLimitExceeded indicates that the maximum number of triples/quads was exceeded.
	ErrTripleLimitExceeded = errors.New("rdf: maximum number of triples/quads exceeded")
	// ErrInvalidIRI indicates an IRI that failed validation.
	ErrInvalidIRI = errors.New("rdf: invalid IRI")
	// ErrInvalidLiteral indicates a literal with a malformed language tag.
	ErrInvalidLiteral = errors.New("rdf: invalid literal")
	// ErrInvalidTerm indicates a term that cannot appear where it was used.
	ErrInvalidTerm = errors.New("rdf: invalid term")
	// ErrInvalidResource indicates a resource whose node is missing or not a subject term.
	ErrInvalidResource = errors.New("rdf: invalid resource")
	// ErrDetachedResource indicates a resource that is not bound to a graph.
	ErrDetachedResource = errors.New("rdf: resource is not bound to a graph")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}

	// EOF is not an error condition
	if err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrLineTooLong):
		return ErrCodeLineTooLong
	case errors.Is(err, ErrTripleLimitExceeded):
		return ErrCodeTripleLimitExceeded
	case errors.Is(err, ErrInvalidResource):
		return ErrCodeInvalidResource
	case errors.Is(err, ErrDetachedResource):
		return ErrCodeDetachedResource
	case errors.Is(err, ErrInvalidIRI):
		return ErrCodeInvalidIRI
	case errors.Is(err, ErrInvalidLiteral):
		return ErrCodeInvalidLiteral
	case errors.Is(err, ErrInvalidTerm):
		return ErrCodeInvalidTerm
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ErrCodeIOError
	}

	// Default to parse error for unknown errors
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "ntriples")
	Statement string // Offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)

	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	}

	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())

	if excerpt := e.formatExcerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}

	return msg.String()
}

// formatExcerpt formats a readable excerpt of the statement around the error position.
func (e *ParseError) formatExcerpt() string {
	if e.Statement == "" {
		return ""
	}

	const maxExcerptLen = 80
	const contextLen = 40

	if e.Column > 0 {
		start := e.Column - 1
		excerptStart := start - contextLen
		if excerptStart < 0 {
			excerptStart = 0
		}
		excerptEnd := start + contextLen
		if excerptEnd > len(e.Statement) {
			excerptEnd = len(e.Statement)
		}
		if excerptStart > excerptEnd {
			excerptStart = excerptEnd
		}

		excerpt := e.Statement[excerptStart:excerptEnd]
		caretPos := start - excerptStart
		if excerptStart > 0 {
			excerpt = "..." + excerpt
			caretPos += 3
		}
		if excerptEnd < len(e.Statement) {
			excerpt += "..."
		}
		if caretPos >= len(excerpt) {
			caretPos = len(excerpt) - 1
		}
		if caretPos < 0 {
			caretPos = 0
		}

		var result strings.Builder
		result.WriteString(excerpt)
		result.WriteString("\n  ")
		result.WriteString(strings.Repeat(" ", caretPos))
		result.WriteByte('^')
		return result.String()
	}

	if len(e.Statement) > maxExcerptLen {
		return e.Statement[:maxExcerptLen] + "..."
	}
	return e.Statement
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds format/statement/position context to a parse error.
func wrapParseError(format, statement string, line, column int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if line == 0 {
			line = parseErr.Line
		}
		if column == 0 {
			column = parseErr.Column
		}
		err = parseErr.Err
	}
	return &ParseError{
		Format:    format,
		Statement: statement,
		Line:      line,
		Column:    column,
		Err:       err,
	}
}

// TermError reports a term that cannot be written or stored.
type TermError struct {
	Term   Term   // Offending term, nil when missing
	Reason string // Human readable reason
	Err    error  // Sentinel classifying the failure
}

func (e *TermError) Error() string {
	if e.Term == nil {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Reason, e.Term.String())
}

func (e *TermError) Unwrap() error { return e.Err }

// IOError reports a failure of the underlying writer or reader.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "rdf: " + e.Op + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
