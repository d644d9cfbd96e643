// Package rdf provides a compact RDF model, an in-memory graph and
// streaming N-Triples/N-Quads codecs.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// It focuses on a small surface area:
//   - Model: IRI, BlankNode, Literal and TripleTerm terms, Triple and Quad.
//   - Graph: an insertion-ordered, concurrency-safe triple set with Resource handles.
//   - Write: WriteResource, WriteGraph and WriteTerm emit canonical N-Triples.
//   - Read: NewDecoder, Parse and Load accept N-Triples, N-Quads and JSON-LD.
//
// Example (rendering the statements about one resource):
//
//	g := rdf.NewGraph()
//	alice := g.NewResource("http://example.org/alice").
//	    With(rdf.NewIRI("http://xmlns.com/foaf/0.1/name"), rdf.NewLiteral("Alice"))
//	if err := rdf.WriteResource(os.Stdout, alice); err != nil {
//	    // handle error
//	}
//
// Example (loading a document):
//
//	g, err := rdf.Load(ctx, f, rdf.FormatNTriples, rdf.OptMaxTriples(1_000_000))
//	if err != nil {
//	    // handle error
//	}
//
// Statements are written in the order they were first added to the graph.
// Literals typed xsd:string are written as simple literals, and blank node
// labels are rewritten into the BLANK_NODE_LABEL alphabet when needed.
//
// JSON-LD is decode-only and uses github.com/piprate/json-gold. Remote
// contexts are refused unless OptAllowRemoteContexts is given.
package rdf
