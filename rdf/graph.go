package rdf

import "sync"

// Graph is an in-memory set of triples.
//
// Triples keep their first-insertion order, which is the order used by
// Triples, Match, Resource.Properties and every writer in this package.
// A Graph is safe for concurrent use.
type Graph struct {
	mu        sync.RWMutex
	triples   []Triple
	live      []bool
	index     map[Triple]int
	bySubject map[Term][]int
	subjects  []Term
	size      int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:     make(map[Triple]int),
		bySubject: make(map[Term][]int),
	}
}

// Add inserts t and reports whether it was not already present.
func (g *Graph) Add(t Triple) (bool, error) {
	if err := t.Valid(); err != nil {
		return false, err
	}
	t = t.normalized()
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.index[t]; ok {
		return false, nil
	}
	pos := len(g.triples)
	g.triples = append(g.triples, t)
	g.live = append(g.live, true)
	g.index[t] = pos
	if _, seen := g.bySubject[t.S]; !seen {
		g.subjects = append(g.subjects, t.S)
	}
	g.bySubject[t.S] = append(g.bySubject[t.S], pos)
	g.size++
	return true, nil
}

// Remove deletes t and reports whether it was present.
func (g *Graph) Remove(t Triple) bool {
	if t.Valid() != nil {
		return false
	}
	t = t.normalized()
	g.mu.Lock()
	defer g.mu.Unlock()
	pos, ok := g.index[t]
	if !ok {
		return false
	}
	delete(g.index, t)
	g.live[pos] = false
	g.size--

	positions := g.bySubject[t.S]
	for i, p := range positions {
		if p == pos {
			positions = append(positions[:i:i], positions[i+1:]...)
			break
		}
	}
	if len(positions) == 0 {
		delete(g.bySubject, t.S)
		for i, s := range g.subjects {
			if s == t.S {
				g.subjects = append(g.subjects[:i:i], g.subjects[i+1:]...)
				break
			}
		}
	} else {
		g.bySubject[t.S] = positions
	}
	return true
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.size
}

// Contains reports whether t is in the graph.
func (g *Graph) Contains(t Triple) bool {
	if t.Valid() != nil {
		return false
	}
	t = t.normalized()
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[t]
	return ok
}

// Triples returns a snapshot of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Triple, 0, g.size)
	for i, t := range g.triples {
		if g.live[i] {
			out = append(out, t)
		}
	}
	return out
}

// Subjects returns the distinct subjects in order of first appearance.
func (g *Graph) Subjects() []Term {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Term, len(g.subjects))
	copy(out, g.subjects)
	return out
}

// Match returns the triples matching the pattern. Nil arguments are wildcards.
func (g *Graph) Match(s Term, p *IRI, o Term) []Triple {
	if s != nil && !isSubjectTerm(s) {
		return nil
	}
	s, o = normalizeTerm(s), normalizeTerm(o)
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Triple
	keep := func(t Triple) {
		if p != nil && t.P != *p {
			return
		}
		if o != nil && t.O != o {
			return
		}
		out = append(out, t)
	}
	if s != nil {
		for _, pos := range g.bySubject[s] {
			keep(g.triples[pos])
		}
		return out
	}
	for i, t := range g.triples {
		if g.live[i] {
			keep(t)
		}
	}
	return out
}

// Resource returns a handle for node bound to g.
func (g *Graph) Resource(node Term) Resource {
	return Resource{Node: node, Graph: g}
}

// NewResource returns a handle for the IRI bound to g.
func (g *Graph) NewResource(iri string) Resource {
	return g.Resource(NewIRI(iri))
}

// NewBlankResource returns a handle for a fresh blank node bound to g.
func (g *Graph) NewBlankResource() Resource {
	return g.Resource(NewBlankNode())
}

func (g *Graph) propertiesOf(s Term) []Triple {
	if !isSubjectTerm(s) {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	positions := g.bySubject[s]
	out := make([]Triple, 0, len(positions))
	for _, pos := range positions {
		out = append(out, g.triples[pos])
	}
	return out
}

func isSubjectTerm(t Term) bool {
	switch t.(type) {
	case IRI, BlankNode:
		return true
	default:
		return false
	}
}
