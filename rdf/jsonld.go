package rdf

import (
	"fmt"
	"io"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const jsonldDefaultGraph = "@default"

// jsonldDecoder converts a whole JSON-LD document up front and then
// replays the resulting quads.
type jsonldDecoder struct {
	quads []Quad
	index int
	err   error
}

func newJSONLDDecoder(r io.Reader, opts Options) *jsonldDecoder {
	dec := &jsonldDecoder{}
	quads, err := decodeJSONLD(r, opts)
	if err != nil {
		dec.err = err
	}
	dec.quads = quads
	return dec
}

func (d *jsonldDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	if d.index >= len(d.quads) {
		return Quad{}, io.EOF
	}
	q := d.quads[d.index]
	d.index++
	return q, nil
}

func (d *jsonldDecoder) Close() error {
	return nil
}

func decodeJSONLD(r io.Reader, opts Options) ([]Quad, error) {
	if err := checkDecodeContext(opts.Context); err != nil {
		return nil, err
	}
	doc, err := ld.DocumentFromReader(r)
	if err != nil {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, err)
	}

	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.AllowRemoteContexts {
		goldOpts.DocumentLoader = ld.NewDefaultDocumentLoader(nil)
	} else {
		goldOpts.DocumentLoader = offlineDocumentLoader{}
	}

	result, err := ld.NewJsonLdProcessor().ToRDF(doc, goldOpts)
	if err != nil {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	if err := checkDecodeContext(opts.Context); err != nil {
		return nil, err
	}
	return datasetToQuads(dataset, opts.MaxTriples)
}

// datasetToQuads emits the default graph first, then named graphs by name.
func datasetToQuads(dataset *ld.RDFDataset, limit int64) ([]Quad, error) {
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != jsonldDefaultGraph {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := dataset.Graphs[jsonldDefaultGraph]; ok {
		names = append([]string{jsonldDefaultGraph}, names...)
	}

	var quads []Quad
	for _, name := range names {
		for _, lq := range dataset.Graphs[name] {
			q := Quad{
				S: fromGoldNode(lq.Subject),
				O: fromGoldNode(lq.Object),
			}
			pred, ok := fromGoldNode(lq.Predicate).(IRI)
			if !ok {
				return nil, wrapParseError(string(FormatJSONLD), "", 0, 0,
					&TermError{Term: fromGoldNode(lq.Predicate), Reason: "predicate must be an IRI", Err: ErrInvalidTerm})
			}
			q.P = pred
			if name != jsonldDefaultGraph {
				q.G = graphLabel(name, lq.Graph)
			}
			quads = append(quads, q)
			if limit > 0 && int64(len(quads)) > limit {
				return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, ErrTripleLimitExceeded)
			}
		}
	}
	return quads, nil
}

func fromGoldNode(node ld.Node) Term {
	switch v := node.(type) {
	case ld.IRI:
		return IRI{Value: v.Value}
	case ld.BlankNode:
		return BlankNode{ID: strings.TrimPrefix(v.Attribute, "_:")}
	case ld.Literal:
		lit := Literal{Lexical: v.Value, Lang: v.Language}
		if v.Language == "" && v.Datatype != XSDString.Value {
			lit.Datatype = IRI{Value: v.Datatype}
		}
		return lit
	default:
		return nil
	}
}

func graphLabel(name string, node ld.Node) Term {
	if node != nil {
		if t := fromGoldNode(node); t != nil {
			return t
		}
	}
	if strings.HasPrefix(name, "_:") {
		return BlankNode{ID: strings.TrimPrefix(name, "_:")}
	}
	return IRI{Value: name}
}

// offlineDocumentLoader refuses every remote document.
type offlineDocumentLoader struct{}

func (offlineDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, ld.NewJsonLdError(ld.LoadingRemoteContextFailed,
		fmt.Sprintf("remote context loading is disabled: %s", u))
}
