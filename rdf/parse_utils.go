package rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Unicode surrogate pair constants
const (
	unicodeSurrogateHighStart = 0xD800
	unicodeSurrogateHighEnd   = 0xDBFF
	unicodeSurrogateLowStart  = 0xDC00
	unicodeSurrogateLowEnd    = 0xDFFF
	unicodeSurrogateBase      = 0x10000
)

const (
	unicodeEscapeLength     = 6  // Length of \uXXXX escape sequence
	unicodeLongEscapeLength = 10 // Length of \UXXXXXXXX escape sequence
)

// isValidLangTag checks BCP47-shaped tags: a 1-8 letter primary subtag
// followed by alphanumeric subtags.
func isValidLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	parts := strings.Split(tag, "-")
	if len(parts[0]) > 8 {
		return false
	}
	for i, part := range parts {
		if part == "" {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			isAlpha := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
			if i == 0 && !isAlpha {
				return false
			}
			if !isAlpha && !(ch >= '0' && ch <= '9') {
				return false
			}
		}
	}
	return true
}

func isValidUnicodeCodePoint(codePoint rune) bool {
	if codePoint < 0 || codePoint > utf8.MaxRune {
		return false
	}
	return codePoint < unicodeSurrogateHighStart || codePoint > unicodeSurrogateLowEnd
}

// decodeUChar decodes 4 or 8 hex digits. Returns -1 on malformed input.
func decodeUChar(hexStr string) rune {
	if len(hexStr) != 4 && len(hexStr) != 8 {
		return -1
	}
	var codePoint rune
	for i := 0; i < len(hexStr); i++ {
		ch := hexStr[i]
		var digit byte
		switch {
		case ch >= '0' && ch <= '9':
			digit = ch - '0'
		case ch >= 'a' && ch <= 'f':
			digit = ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			digit = ch - 'A' + 10
		default:
			return -1
		}
		codePoint = codePoint*16 + rune(digit)
	}
	return codePoint
}

// UnescapeString decodes escape sequences in RDF string literals.
// It handles simple escapes (\n, \t, etc.), Unicode escapes (\uXXXX), and Unicode long escapes (\UXXXXXXXX).
// Surrogate pairs are supported for \uXXXX sequences.
func UnescapeString(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var builder strings.Builder
	builder.Grow(len(s))
	pos := 0
	for pos < len(s) {
		ch := s[pos]
		if ch != '\\' {
			builder.WriteByte(ch)
			pos++
			continue
		}
		if pos+1 >= len(s) {
			return "", fmt.Errorf("unterminated escape")
		}
		var advance int
		var err error
		switch next := s[pos+1]; next {
		case 'n':
			builder.WriteByte('\n')
			advance = 2
		case 't':
			builder.WriteByte('\t')
			advance = 2
		case 'r':
			builder.WriteByte('\r')
			advance = 2
		case 'b':
			builder.WriteByte('\b')
			advance = 2
		case 'f':
			builder.WriteByte('\f')
			advance = 2
		case '"', '\'', '\\':
			builder.WriteByte(next)
			advance = 2
		case 'u':
			advance, err = unescapeUnicode(&builder, s, pos)
		case 'U':
			advance, err = unescapeUnicodeLong(&builder, s, pos)
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", next)
		}
		if err != nil {
			return "", err
		}
		pos += advance
	}
	return builder.String(), nil
}

// unescapeUnicode handles \uXXXX, including surrogate pairs.
func unescapeUnicode(builder *strings.Builder, s string, pos int) (int, error) {
	if pos+unicodeEscapeLength > len(s) {
		return 0, fmt.Errorf("truncated \\u escape")
	}
	codePoint := decodeUChar(s[pos+2 : pos+unicodeEscapeLength])
	if codePoint < 0 {
		return 0, fmt.Errorf("invalid \\u escape")
	}
	if codePoint >= unicodeSurrogateHighStart && codePoint <= unicodeSurrogateHighEnd {
		end := pos + 2*unicodeEscapeLength
		if end > len(s) || s[pos+6] != '\\' || s[pos+7] != 'u' {
			return 0, fmt.Errorf("unpaired surrogate in \\u escape")
		}
		low := decodeUChar(s[pos+8 : end])
		if low < unicodeSurrogateLowStart || low > unicodeSurrogateLowEnd {
			return 0, fmt.Errorf("unpaired surrogate in \\u escape")
		}
		builder.WriteRune(unicodeSurrogateBase + (codePoint-unicodeSurrogateHighStart)<<10 + (low - unicodeSurrogateLowStart))
		return 2 * unicodeEscapeLength, nil
	}
	if !isValidUnicodeCodePoint(codePoint) {
		return 0, fmt.Errorf("invalid code point in \\u escape")
	}
	builder.WriteRune(codePoint)
	return unicodeEscapeLength, nil
}

// unescapeUnicodeLong handles \UXXXXXXXX.
func unescapeUnicodeLong(builder *strings.Builder, s string, pos int) (int, error) {
	if pos+unicodeLongEscapeLength > len(s) {
		return 0, fmt.Errorf("truncated \\U escape")
	}
	codePoint := decodeUChar(s[pos+2 : pos+unicodeLongEscapeLength])
	if !isValidUnicodeCodePoint(codePoint) {
		return 0, fmt.Errorf("invalid \\U escape")
	}
	builder.WriteRune(codePoint)
	return unicodeLongEscapeLength, nil
}

// readLineWithLimit reads one line including its terminator. A maxBytes
// of zero or less disables the limit.
func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		line, err := reader.ReadString('\n')
		if err == io.EOF && len(line) > 0 {
			return line, nil
		}
		return line, err
	}

	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if len(buffer) > maxBytes {
			discardLine(reader)
			return "", ErrLineTooLong
		}
		switch {
		case err == nil:
			return string(buffer), nil
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(buffer) > 0:
			return string(buffer), nil
		default:
			return "", err
		}
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return
		}
	}
}

func checkDecodeContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
