package export

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// EntityKind is one of the four identity namespaces of a CX document.
type EntityKind int

const (
	KindNode EntityKind = iota
	KindEdge
	KindCitation
	KindSupport
)

func (k EntityKind) String() string {
	return kindSpecs[k].name
}

type kindSpec struct {
	name      string
	class     string
	idPred    string
	hasEntity string
}

var kindSpecs = [...]kindSpec{
	KindNode:     {"node", ndex.ClassNode, ndex.PredicateIRI(ndex.NodeID), ndex.PredicateIRI(ndex.DocumentNode)},
	KindEdge:     {"edge", ndex.ClassEdge, ndex.PredicateIRI(ndex.EdgeID), ndex.PredicateIRI(ndex.DocumentEdge)},
	KindCitation: {"citation", ndex.ClassCitation, ndex.PredicateIRI(ndex.CitationID), ndex.PredicateIRI(ndex.DocumentCitation)},
	KindSupport:  {"support", ndex.ClassSupport, ndex.PredicateIRI(ndex.SupportID), ndex.PredicateIRI(ndex.DocumentSupport)},
}

// Registry maps document-scoped CX identifiers to graph handles, one handle
// per (kind, id). It lives for exactly one export and is append-only.
type Registry struct {
	g        *graph.Graph
	document rdf.IRI
	minter   graph.Minter
	handles  [len(kindSpecs)]map[int64]rdf.IRI
}

// NewRegistry returns a registry that records new entities in g and links
// them from document.
func NewRegistry(g *graph.Graph, document rdf.IRI, minter graph.Minter) *Registry {
	r := &Registry{g: g, document: document, minter: minter}
	for i := range r.handles {
		r.handles[i] = make(map[int64]rdf.IRI)
	}
	return r
}

// Resolve returns the handle for (kind, id). The first call for a pair
// mints the handle and emits its type, its id literal and the document
// link; later calls return the same handle and emit nothing.
func (r *Registry) Resolve(kind EntityKind, id int64) rdf.IRI {
	if h, ok := r.handles[kind][id]; ok {
		return h
	}

	spec := kindSpecs[kind]
	h := r.minter.Mint(spec.name)
	r.handles[kind][id] = h

	r.g.Add(h, graph.IRI(ndex.RDFType), graph.IRI(spec.class))
	r.g.Add(h, graph.IRI(spec.idPred), graph.Literal(id))
	r.g.Add(r.document, graph.IRI(spec.hasEntity), h)
	return h
}

// Lookup returns the handle for (kind, id) without creating it.
func (r *Registry) Lookup(kind EntityKind, id int64) (rdf.IRI, bool) {
	h, ok := r.handles[kind][id]
	return h, ok
}

// Len returns the number of entities of a kind.
func (r *Registry) Len(kind EntityKind) int {
	return len(r.handles[kind])
}
