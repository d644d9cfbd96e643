package rdf

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteResourceSingleStatement(t *testing.T) {
	g := NewGraph()
	r := g.NewResource("http://example.org/alice").With(exName, NewLiteral("Alice"))

	var buf bytes.Buffer
	if err := WriteResource(&buf, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteResourceOrderAndScope(t *testing.T) {
	g := NewGraph()
	s := g.NewResource(exS.Value)
	s.With(exP, NewIRI("http://example.org/o"))
	g.NewResource(exS2.Value).With(exP, NewLiteral("other"))
	s.With(exP2, NewTypedLiteral("42", NewIRI("http://www.w3.org/2001/XMLSchema#integer")))

	var buf bytes.Buffer
	if err := WriteResource(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/s> <http://example.org/p2> \"42\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteResourceNoStatements(t *testing.T) {
	g := NewGraph()
	var buf bytes.Buffer
	if err := WriteResource(&buf, g.NewResource("http://example.org/nobody")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestWriteResourceInvalid(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResource(&buf, Resource{})
	if !errors.Is(err, ErrInvalidResource) {
		t.Fatalf("expected ErrInvalidResource, got %v", err)
	}
	if Code(err) != ErrCodeInvalidResource {
		t.Fatalf("expected code %s, got %s", ErrCodeInvalidResource, Code(err))
	}
	err = WriteResource(&buf, Resource{Node: exS})
	if !errors.Is(err, ErrDetachedResource) {
		t.Fatalf("expected ErrDetachedResource, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestWriteResourceInvalidLanguageTag(t *testing.T) {
	g := NewGraph()
	r := g.NewResource(exS.Value).With(exP, NewLangLiteral("x", "not a tag"))
	err := WriteResource(&bytes.Buffer{}, r)
	if !errors.Is(err, ErrInvalidLiteral) {
		t.Fatalf("expected ErrInvalidLiteral, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteResourceIOError(t *testing.T) {
	g := NewGraph()
	r := g.NewResource(exS.Value).With(exP, NewLiteral("x"))
	err := WriteResource(failingWriter{}, r)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if Code(err) != ErrCodeIOError {
		t.Fatalf("expected IO code, got %s", Code(err))
	}
}

func TestWriteGraph(t *testing.T) {
	g := NewGraph()
	g.NewResource(exS.Value).With(exP, NewLiteral("a"))
	g.NewResource(exS2.Value).With(exP, NewLiteral("b"))

	var buf bytes.Buffer
	if err := WriteGraph(&buf, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
	if err := WriteGraph(&buf, nil); err == nil {
		t.Fatal("expected error for nil graph")
	}
}

func TestWriteTerm(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"iri", NewIRI("http://example.org/a"), "<http://example.org/a>"},
		{"iri with space", NewIRI("http://example.org/a b"), `<http://example.org/a\u0020b>`},
		{"iri with braces", NewIRI("http://example.org/{x}"), `<http://example.org/\u007Bx\u007D>`},
		{"iri with unicode", NewIRI("http://example.org/café"), "<http://example.org/café>"},
		{"blank", BlankNode{ID: "b0"}, "_:b0"},
		{"blank with X", BlankNode{ID: "aXb"}, "_:aXXb"},
		{"blank with invalid chars", BlankNode{ID: "a b"}, "_:aX20Xb"},
		{"blank leading dash", BlankNode{ID: "-a"}, "_:X2DXa"},
		{"blank inner dot", BlankNode{ID: "a.b"}, "_:a.b"},
		{"blank trailing dot", BlankNode{ID: "ab."}, "_:abX2EX"},
		{"plain literal", NewLiteral("hi"), `"hi"`},
		{"xsd string literal", NewTypedLiteral("hi", XSDString), `"hi"`},
		{"lang literal", NewLangLiteral("chat", "fr-CA"), `"chat"@fr-CA`},
		{"escapes", NewLiteral("a\"b\\c\nd\re\tf"), `"a\"b\\c\nd\re\u0009f"`},
		{"non-ascii literal", NewLiteral("naïve ☃"), `"naïve ☃"`},
		{"quoted triple", TripleTerm{S: exS, P: exP, O: NewLiteral("o")}, `<< <http://example.org/s> <http://example.org/p> "o" >>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteTerm(&buf, tt.term); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("WriteTerm() = %s, want %s", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteTermErrors(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want error
	}{
		{"nil", nil, ErrInvalidTerm},
		{"empty iri", IRI{}, ErrInvalidIRI},
		{"empty blank", BlankNode{}, ErrInvalidTerm},
		{"bad lang", NewLangLiteral("x", "1en"), ErrInvalidLiteral},
		{"langString without tag", NewTypedLiteral("x", RDFLangString), ErrInvalidLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteTerm(&bytes.Buffer{}, tt.term)
			if !errors.Is(err, tt.want) {
				t.Fatalf("WriteTerm() error = %v, want %v", err, tt.want)
			}
		})
	}
}
