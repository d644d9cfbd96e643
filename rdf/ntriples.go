package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

type ntDecoder struct {
	reader *bufio.Reader
	format Format
	opts   Options
	line   int
	count  int64
	err    error
}

func newNTDecoder(r io.Reader, format Format, opts Options) *ntDecoder {
	return &ntDecoder{reader: bufio.NewReader(r), format: format, opts: opts}
}

func (d *ntDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		if err := checkDecodeContext(d.opts.Context); err != nil {
			d.err = err
			return Quad{}, err
		}
		raw, err := readLineWithLimit(d.reader, d.opts.MaxLineBytes)
		if err != nil {
			if err != io.EOF {
				d.line++
				if err == ErrLineTooLong {
					err = wrapParseError(string(d.format), "", d.line, 0, err)
				} else {
					err = &IOError{Op: "read", Err: err}
				}
			}
			d.err = err
			return Quad{}, err
		}
		d.line++
		line := strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		quad, err := parseNTLine(line, d.format, d.opts.StrictIRIValidation)
		if err != nil {
			d.err = wrapParseError(string(d.format), line, d.line, 0, err)
			return Quad{}, d.err
		}
		d.count++
		if d.opts.MaxTriples > 0 && d.count > d.opts.MaxTriples {
			d.err = wrapParseError(string(d.format), "", d.line, 0, ErrTripleLimitExceeded)
			return Quad{}, d.err
		}
		return quad, nil
	}
}

func (d *ntDecoder) Close() error {
	return nil
}

func parseNTLine(line string, format Format, strict bool) (Quad, error) {
	cursor := &ntCursor{input: line, strict: strict}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Quad{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Quad{}, err
	}

	var graph Term
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '.' {
		if format != FormatNQuads {
			return Quad{}, cursor.errorf("graph term not allowed in N-Triples")
		}
		graph, err = cursor.parseSubject()
		if err != nil {
			return Quad{}, err
		}
	}
	if !cursor.consume('.') {
		return Quad{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '#' {
		return Quad{}, cursor.errorf("unexpected content after '.'")
	}

	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

// ntCursor scans one N-Triples/N-Quads statement.
type ntCursor struct {
	input  string
	pos    int
	strict bool
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) && (c.input[c.pos] == ' ' || c.input[c.pos] == '\t') {
		c.pos++
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseSubject() (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<' && !strings.HasPrefix(c.input[c.pos:], "<<"):
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	default:
		return nil, c.errorf("expected IRI or blank node")
	}
}

func (c *ntCursor) parseObject() (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case strings.HasPrefix(c.input[c.pos:], "<<"):
		return c.parseTripleTerm()
	case c.input[c.pos] == '"':
		return c.parseLiteral()
	default:
		return c.parseSubject()
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	c.skipWS()
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	start := c.pos
	end := strings.IndexByte(c.input[start:], '>')
	if end < 0 {
		c.pos = len(c.input)
		return IRI{}, c.errorf("unterminated IRI")
	}
	c.pos = start + end + 1
	raw := c.input[start : start+end]
	for i := 0; i < len(raw); i++ {
		if raw[i] <= 0x20 || raw[i] == '"' || raw[i] == '<' {
			c.pos = start + i
			return IRI{}, c.errorf("invalid character %q in IRI", raw[i])
		}
	}
	value, err := UnescapeString(raw)
	if err != nil {
		c.pos = start
		return IRI{}, c.errorf("%v", err)
	}
	if c.strict {
		if err := ValidateIRI(value); err != nil {
			c.pos = start
			return IRI{}, err
		}
	}
	return IRI{Value: value}, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	// A trailing '.' terminates the statement, it is not part of the label.
	for c.pos > start && c.input[c.pos-1] == '.' {
		c.pos--
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.skipWS()
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	start := c.pos
	for {
		if c.pos >= len(c.input) {
			return Literal{}, c.errorf("unterminated literal")
		}
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if ch == '"' {
			break
		}
		c.pos++
	}
	lexical, err := UnescapeString(c.input[start:c.pos])
	if err != nil {
		return Literal{}, c.errorf("%v", err)
	}
	c.pos++

	switch {
	case strings.HasPrefix(c.input[c.pos:], "@"):
		c.pos++
		tagStart := c.pos
		for c.pos < len(c.input) && isLangTagChar(c.input[c.pos]) {
			c.pos++
		}
		tag := c.input[tagStart:c.pos]
		if !isValidLangTag(tag) {
			c.pos = tagStart
			return Literal{}, &TermError{Reason: fmt.Sprintf("invalid language tag %q", tag), Err: ErrInvalidLiteral}
		}
		return Literal{Lexical: lexical, Lang: tag}, nil
	case strings.HasPrefix(c.input[c.pos:], "^^"):
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		if dt == XSDString {
			return Literal{Lexical: lexical}, nil
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *ntCursor) parseTripleTerm() (Term, error) {
	c.pos += 2
	subject, err := c.parseSubject()
	if err != nil {
		return nil, err
	}
	predicate, err := c.parseIRI()
	if err != nil {
		return nil, err
	}
	object, err := c.parseObject()
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], ">>") {
		return nil, c.errorf("expected '>>'")
	}
	c.pos += 2
	return TripleTerm{S: subject, P: predicate, O: object}, nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Format:    "ntriples",
		Statement: c.input,
		Column:    c.pos + 1,
		Err:       fmt.Errorf(format, args...),
	}
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '<', '"':
		return true
	default:
		return false
	}
}

func isLangTagChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-'
}

type ntEncoder struct {
	writer *bufio.Writer
	format Format
	buf    []byte
	err    error
}

func newNTEncoder(w io.Writer, format Format) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w), format: format}
}

func (e *ntEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.IsZero() {
		return &TermError{Reason: "empty statement", Err: ErrInvalidTerm}
	}
	line, err := AppendTriple(e.buf[:0], q.ToTriple())
	if err != nil {
		return err
	}
	if e.format == FormatNQuads && q.G != nil {
		// Splice the graph label in front of the terminating " .\n".
		line = line[:len(line)-3]
		line = append(line, ' ')
		if line, err = appendGraphLabel(line, q.G); err != nil {
			return err
		}
		line = append(line, " .\n"...)
	}
	e.buf = line
	if _, err := e.writer.Write(line); err != nil {
		e.err = &IOError{Op: "write", Err: err}
		return e.err
	}
	return nil
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.writer.Flush(); err != nil {
		e.err = &IOError{Op: "flush", Err: err}
	}
	return e.err
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

func appendGraphLabel(dst []byte, g Term) ([]byte, error) {
	switch g.(type) {
	case IRI, BlankNode:
		return AppendTerm(dst, g)
	default:
		return dst, &TermError{Term: g, Reason: "graph label must be an IRI or blank node", Err: ErrInvalidTerm}
	}
}

// AppendTriple appends the N-Triples line for t, including " .\n".
func AppendTriple(dst []byte, t Triple) ([]byte, error) {
	if err := t.Valid(); err != nil {
		return dst, err
	}
	var err error
	if dst, err = AppendTerm(dst, t.S); err != nil {
		return dst, err
	}
	dst = append(dst, ' ')
	if dst, err = AppendTerm(dst, t.P); err != nil {
		return dst, err
	}
	dst = append(dst, ' ')
	if dst, err = AppendTerm(dst, t.O); err != nil {
		return dst, err
	}
	return append(dst, " .\n"...), nil
}

// AppendTerm appends the N-Triples node syntax of term.
func AppendTerm(dst []byte, term Term) ([]byte, error) {
	switch value := term.(type) {
	case IRI:
		return appendIRI(dst, value)
	case BlankNode:
		if value.ID == "" {
			return dst, &TermError{Term: value, Reason: "empty blank node label", Err: ErrInvalidTerm}
		}
		dst = append(dst, "_:"...)
		return appendBlankLabel(dst, value.ID), nil
	case Literal:
		return appendLiteral(dst, value)
	case TripleTerm:
		dst = append(dst, "<< "...)
		var err error
		if dst, err = AppendTerm(dst, value.S); err != nil {
			return dst, err
		}
		dst = append(dst, ' ')
		if dst, err = appendIRI(dst, value.P); err != nil {
			return dst, err
		}
		dst = append(dst, ' ')
		if dst, err = AppendTerm(dst, value.O); err != nil {
			return dst, err
		}
		return append(dst, " >>"...), nil
	case nil:
		return dst, &TermError{Reason: "missing term", Err: ErrInvalidTerm}
	default:
		return dst, &TermError{Term: term, Reason: fmt.Sprintf("unsupported term type %T", term), Err: ErrInvalidTerm}
	}
}

func appendIRI(dst []byte, iri IRI) ([]byte, error) {
	if iri.Value == "" {
		return dst, &TermError{Term: iri, Reason: "empty IRI", Err: ErrInvalidIRI}
	}
	dst = append(dst, '<')
	for _, r := range iri.Value {
		switch {
		case r <= 0x20, r == '<', r == '>', r == '"', r == '{', r == '}',
			r == '|', r == '^', r == '`', r == '\\', r == utf8.RuneError:
			dst = appendUChar(dst, r)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '>'), nil
}

// appendBlankLabel writes id as a valid BLANK_NODE_LABEL. 'X' doubles and
// every other byte outside [A-Za-z0-9_] (or a '-'/'.' in a position where
// the grammar forbids it) becomes X<hex>X, so distinct ids stay distinct.
func appendBlankLabel(dst []byte, id string) []byte {
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch == 'X':
			dst = append(dst, 'X', 'X')
		case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_':
			dst = append(dst, ch)
		case ch == '-' && i > 0:
			dst = append(dst, ch)
		case ch == '.' && i > 0 && i < len(id)-1:
			dst = append(dst, ch)
		default:
			dst = append(dst, 'X', hexDigits[ch>>4], hexDigits[ch&0x0F], 'X')
		}
	}
	return dst
}

func appendLiteral(dst []byte, lit Literal) ([]byte, error) {
	if lit.Lang != "" && !isValidLangTag(lit.Lang) {
		return dst, &TermError{Term: lit, Reason: "invalid language tag", Err: ErrInvalidLiteral}
	}
	if lit.Lang == "" && lit.Datatype == RDFLangString {
		return dst, &TermError{Term: lit, Reason: "rdf:langString requires a language tag", Err: ErrInvalidLiteral}
	}
	dst = append(dst, '"')
	dst = appendEscapedString(dst, lit.Lexical)
	dst = append(dst, '"')
	switch {
	case lit.Lang != "":
		dst = append(dst, '@')
		dst = append(dst, lit.Lang...)
	case lit.Datatype.Value != "" && lit.Datatype != XSDString:
		dst = append(dst, '^', '^')
		return appendIRI(dst, lit.Datatype)
	}
	return dst, nil
}

func appendEscapedString(dst []byte, s string) []byte {
	for _, r := range s {
		switch r {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '"':
			dst = append(dst, '\\', '"')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		default:
			if r < 0x20 || r == 0x7F || r == utf8.RuneError {
				dst = appendUChar(dst, r)
				continue
			}
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}

func appendUChar(dst []byte, r rune) []byte {
	if r > 0xFFFF {
		dst = append(dst, '\\', 'U')
		for shift := 28; shift >= 0; shift -= 4 {
			dst = append(dst, hexDigits[(r>>uint(shift))&0x0F])
		}
		return dst
	}
	dst = append(dst, '\\', 'u')
	for shift := 12; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(r>>uint(shift))&0x0F])
	}
	return dst
}
