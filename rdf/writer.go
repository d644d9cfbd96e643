package rdf

import (
	"bufio"
	"io"
)

// WriteResource writes the statements whose subject is r as N-Triples,
// one line per statement in graph order. A resource without statements
// writes nothing. r must pass Validate; otherwise nothing is written.
func WriteResource(w io.Writer, r Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return writeTriples(w, r.Properties())
}

// WriteGraph writes every triple of g as N-Triples in insertion order.
func WriteGraph(w io.Writer, g *Graph) error {
	if g == nil {
		return &TermError{Reason: "nil graph", Err: ErrDetachedResource}
	}
	return writeTriples(w, g.Triples())
}

// WriteTerm writes the N-Triples node syntax of t without a line terminator.
func WriteTerm(w io.Writer, t Term) error {
	buf, err := AppendTerm(nil, t)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func writeTriples(w io.Writer, triples []Triple) error {
	bw := bufio.NewWriter(w)
	var line []byte
	var err error
	for _, t := range triples {
		if line, err = AppendTriple(line[:0], t); err != nil {
			return err
		}
		if _, err := bw.Write(line); err != nil {
			return &IOError{Op: "write", Err: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "flush", Err: err}
	}
	return nil
}
