package rdf

import (
	"errors"
	"strings"
	"testing"
)

func TestTermKindsAndStrings(t *testing.T) {
	iri := NewIRI("http://example.org/s")
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := NewLiteral("plain")
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := NewLangLiteral("hi", "en")
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	litDT := NewTypedLiteral("1", NewIRI("http://example.org/int"))
	if litDT.String() != "\"1\"^^<http://example.org/int>" {
		t.Fatalf("unexpected datatype literal: %s", litDT.String())
	}

	tt := TripleTerm{S: iri, P: NewIRI("http://example.org/p"), O: litPlain}
	if tt.Kind() != TermTriple {
		t.Fatalf("expected triple term kind")
	}
	if tt.String() != "<<http://example.org/s http://example.org/p \"plain\">>" {
		t.Fatalf("unexpected triple term string: %s", tt.String())
	}
}

func TestNewBlankNodeUnique(t *testing.T) {
	a, b := NewBlankNode(), NewBlankNode()
	if a == b {
		t.Fatalf("expected distinct blank nodes, got %s twice", a)
	}
	if !strings.HasPrefix(a.ID, "b") || strings.Contains(a.ID, "-") {
		t.Fatalf("unexpected blank node label: %s", a.ID)
	}
}

func TestTripleValid(t *testing.T) {
	p := NewIRI("http://example.org/p")
	tests := []struct {
		name    string
		triple  Triple
		wantErr bool
	}{
		{"iri subject", Triple{S: NewIRI("http://example.org/s"), P: p, O: NewLiteral("x")}, false},
		{"blank subject", Triple{S: BlankNode{ID: "b1"}, P: p, O: NewIRI("http://example.org/o")}, false},
		{"quoted triple object", Triple{S: BlankNode{ID: "b1"}, P: p, O: TripleTerm{S: BlankNode{ID: "b2"}, P: p, O: NewLiteral("x")}}, false},
		{"nil subject", Triple{P: p, O: NewLiteral("x")}, true},
		{"literal subject", Triple{S: NewLiteral("s"), P: p, O: NewLiteral("x")}, true},
		{"empty subject iri", Triple{S: IRI{}, P: p, O: NewLiteral("x")}, true},
		{"empty blank label", Triple{S: BlankNode{}, P: p, O: NewLiteral("x")}, true},
		{"empty predicate", Triple{S: NewIRI("http://example.org/s"), O: NewLiteral("x")}, true},
		{"nil object", Triple{S: NewIRI("http://example.org/s"), P: p}, true},
		{"unsupported object type", Triple{S: NewIRI("http://example.org/s"), P: p, O: tagsTerm{}}, true},
		{"quoted triple with literal subject", Triple{S: BlankNode{ID: "b1"}, P: p, O: TripleTerm{S: NewLiteral("s"), P: p, O: NewLiteral("x")}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.triple.Valid()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Valid() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTerm) {
				t.Fatalf("expected ErrInvalidTerm, got %v", err)
			}
		})
	}
}

func TestQuadConversions(t *testing.T) {
	var q Quad
	if !q.IsZero() {
		t.Fatal("expected zero quad")
	}
	tr := Triple{S: NewIRI("http://example.org/s"), P: NewIRI("http://example.org/p"), O: NewLiteral("o")}
	q = tr.ToQuad()
	if q.IsZero() || !q.InDefaultGraph() {
		t.Fatal("expected non-zero quad in default graph")
	}
	if q.ToTriple() != tr {
		t.Fatal("round trip through quad changed the triple")
	}
	named := tr.ToQuadInGraph(NewIRI("http://example.org/g"))
	if named.InDefaultGraph() {
		t.Fatal("expected quad in named graph")
	}
}
