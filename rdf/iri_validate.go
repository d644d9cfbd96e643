package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI performs a basic RFC 3987 shape check: a well-formed
// scheme when one is present, no raw control characters and no raw
// characters that N-Triples forbids inside IRIREF. Errors wrap ErrInvalidIRI.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("%w: empty IRI", ErrInvalidIRI)
	}

	for i, r := range iri {
		if r <= 0x20 {
			return fmt.Errorf("%w: control or space character at position %d: %q", ErrInvalidIRI, i, iri)
		}
		if strings.ContainsRune(`<>"{}|^`+"`"+`\`, r) {
			return fmt.Errorf("%w: character %q at position %d must be percent-encoded: %q", ErrInvalidIRI, r, i, iri)
		}
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIRI, err)
	}

	if parsed.Scheme == "" {
		if strings.HasPrefix(iri, "//") {
			return fmt.Errorf("%w: network-path reference without scheme: %q", ErrInvalidIRI, iri)
		}
		return nil
	}
	first := parsed.Scheme[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return fmt.Errorf("%w: scheme must start with a letter: %q", ErrInvalidIRI, iri)
	}
	return nil
}
