package rdf

import (
	"errors"
	"testing"
)

func TestValidateIRI(t *testing.T) {
	valid := []string{
		"http://example.org/a",
		"urn:isbn:0451450523",
		"mailto:alice@example.org",
		"http://example.org/café",
		"relative/path",
		"#fragment",
	}
	for _, iri := range valid {
		if err := ValidateIRI(iri); err != nil {
			t.Errorf("ValidateIRI(%q) = %v, want nil", iri, err)
		}
	}

	invalid := []string{
		"",
		"http://example.org/a b",
		"http://example.org/<x>",
		"http://example.org/{x}",
		"http://example.org/a\\b",
		"http://example.org/\x01",
		"//example.org/a",
		"1bad:iri",
		"http://[::1",
	}
	for _, iri := range invalid {
		err := ValidateIRI(iri)
		if err == nil {
			t.Errorf("ValidateIRI(%q) = nil, want error", iri)
			continue
		}
		if !errors.Is(err, ErrInvalidIRI) {
			t.Errorf("ValidateIRI(%q) = %v, want ErrInvalidIRI", iri, err)
		}
	}
}
