package rdf

// Resource is a subject node viewed through the graph that describes it.
type Resource struct {
	// Node is the IRI or blank node this resource stands for.
	Node Term
	// Graph holds the statements about Node.
	Graph *Graph
}

// IsAnon reports whether the resource is a blank node.
func (r Resource) IsAnon() bool {
	_, ok := r.Node.(BlankNode)
	return ok
}

// URI returns the IRI of a named resource, or "" for blank nodes.
func (r Resource) URI() string {
	if iri, ok := r.Node.(IRI); ok {
		return iri.Value
	}
	return ""
}

// Validate reports whether r refers to a subject node of a graph.
func (r Resource) Validate() error {
	switch n := r.Node.(type) {
	case nil:
		return &TermError{Reason: "resource has no node", Err: ErrInvalidResource}
	case IRI:
		if n.Value == "" {
			return &TermError{Term: n, Reason: "empty IRI", Err: ErrInvalidResource}
		}
	case BlankNode:
		if n.ID == "" {
			return &TermError{Term: n, Reason: "empty blank node label", Err: ErrInvalidResource}
		}
	default:
		return &TermError{Term: n, Reason: "resource node must be an IRI or blank node", Err: ErrInvalidResource}
	}
	if r.Graph == nil {
		return &TermError{Term: r.Node, Reason: "no graph", Err: ErrDetachedResource}
	}
	return nil
}

// Properties returns the statements with r as subject, in graph order.
// A detached resource has no properties.
func (r Resource) Properties() []Triple {
	if r.Graph == nil || r.Node == nil {
		return nil
	}
	return r.Graph.propertiesOf(r.Node)
}

// AddProperty adds the statement (r, p, o) to the resource's graph.
func (r Resource) AddProperty(p IRI, o Term) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := r.Graph.Add(Triple{S: r.Node, P: p, O: o})
	return err
}

// With adds (r, p, o) and returns r for chaining. It panics if the
// statement is invalid, so it is meant for building fixtures.
func (r Resource) With(p IRI, o Term) Resource {
	if err := r.AddProperty(p, o); err != nil {
		panic(err)
	}
	return r
}
