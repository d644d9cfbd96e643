package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermTriple represents an RDF-star triple term.
	TermTriple
)

// Well-known IRIs.
var (
	XSDString     = IRI{Value: "http://www.w3.org/2001/XMLSchema#string"}
	RDFLangString = IRI{Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"}
	RDFType       = IRI{Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"}
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// NewIRI returns an IRI term.
func NewIRI(value string) IRI { return IRI{Value: value} }

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// NewBlankNode returns a blank node with a fresh, globally unique label.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "b" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// NewLiteral returns a simple literal.
func NewLiteral(lexical string) Literal { return Literal{Lexical: lexical} }

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// TripleTerm is an RDF-star quoted triple term.
type TripleTerm struct {
	// S is the subject of the quoted triple.
	S Term
	// P is the predicate of the quoted triple.
	P IRI
	// O is the object of the quoted triple.
	O Term
}

// Kind returns TermTriple.
func (t TripleTerm) Kind() TermKind { return TermTriple }

// String returns a string representation of the triple term.
func (t TripleTerm) String() string {
	return fmt.Sprintf("<<%s %s %s>>", termString(t.S), t.P.String(), termString(t.O))
}

func termString(t Term) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Triple is an RDF triple.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// Valid reports whether the triple can be stored in a graph.
// Subjects must be IRIs or blank nodes.
func (t Triple) Valid() error {
	switch s := t.S.(type) {
	case nil:
		return &TermError{Reason: "missing subject", Err: ErrInvalidTerm}
	case IRI:
		if s.Value == "" {
			return &TermError{Term: s, Reason: "empty subject IRI", Err: ErrInvalidTerm}
		}
	case BlankNode:
		if s.ID == "" {
			return &TermError{Term: s, Reason: "empty blank node label", Err: ErrInvalidTerm}
		}
	default:
		return &TermError{Term: t.S, Reason: "subject must be an IRI or blank node", Err: ErrInvalidTerm}
	}
	if t.P.Value == "" {
		return &TermError{Term: t.P, Reason: "empty predicate IRI", Err: ErrInvalidTerm}
	}
	switch o := t.O.(type) {
	case nil:
		return &TermError{Reason: "missing object", Err: ErrInvalidTerm}
	case IRI, BlankNode, Literal:
	case TripleTerm:
		if err := (Triple{S: o.S, P: o.P, O: o.O}).Valid(); err != nil {
			return err
		}
	default:
		return &TermError{Reason: fmt.Sprintf("unsupported object type %T", t.O), Err: ErrInvalidTerm}
	}
	return nil
}

// normalized returns t with every literal in its canonical form, so that
// equal RDF terms are equal Go values.
func (t Triple) normalized() Triple {
	return Triple{S: normalizeTerm(t.S), P: t.P, O: normalizeTerm(t.O)}
}

// normalizeTerm drops an xsd:string datatype, and rdf:langString when a
// language tag is present. Quoted triples are normalized recursively.
func normalizeTerm(term Term) Term {
	switch v := term.(type) {
	case Literal:
		if v.Datatype == XSDString || (v.Lang != "" && v.Datatype == RDFLangString) {
			v.Datatype = IRI{}
		}
		return v
	case TripleTerm:
		return TripleTerm{S: normalizeTerm(v.S), P: v.P, O: normalizeTerm(v.O)}
	default:
		return term
	}
}

// Quad is an RDF quad (triple + optional graph name).
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// IsZero reports whether the quad has no subject/predicate/object.
func (q Quad) IsZero() bool {
	return q.S == nil && q.P.Value == "" && q.O == nil && q.G == nil
}

// ToTriple extracts the triple from a quad (ignores graph).
func (q Quad) ToTriple() Triple {
	return Triple{S: q.S, P: q.P, O: q.O}
}

// InDefaultGraph reports whether the quad is in the default graph (no named graph).
func (q Quad) InDefaultGraph() bool {
	return q.G == nil
}

// ToQuad converts a triple to a quad in the default graph.
func (t Triple) ToQuad() Quad {
	return Quad{S: t.S, P: t.P, O: t.O, G: nil}
}

// ToQuadInGraph converts a triple to a quad in a named graph.
func (t Triple) ToQuadInGraph(graph Term) Quad {
	return Quad{S: t.S, P: t.P, O: t.O, G: graph}
}
