package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// FormatNames returns the supported format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// defaultPrefixes returns the namespace prefixes of JSON-LD contexts and
// Turtle prefix directives.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":       ndex.RDFNamespace,
		"rdfs":      ndex.RDFSNamespace,
		"xsd":       ndex.XSDNamespace,
		ndex.Prefix: ndex.Namespace,
	}
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format, one node object per subject.
type JSONLDWriter struct {
	doc   JSONLDDocument
	index map[string]int
}

// NewJSONLDWriter creates a new JSON-LD writer with the default context.
func NewJSONLDWriter() *JSONLDWriter {
	w := &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
		index: make(map[string]int),
	}
	w.SetContext(defaultPrefixes())
	return w
}

// SetContext adds prefixes to the @context.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddTriple adds one triple. rdf:type objects go to @type; other values
// accumulate under the predicate IRI.
func (w *JSONLDWriter) AddTriple(t rdf.Triple) {
	node := w.node(t.Subj.String())
	pred := t.Pred.String()

	if pred == ndex.RDFType && t.Obj.Type() == rdf.TermIRI {
		node.Type = append(node.Type, t.Obj.String())
		return
	}

	var values []any
	if existing, ok := node.Properties[pred]; ok {
		values = existing.([]any)
	}
	node.Properties[pred] = append(values, jsonldValue(t.Obj))
}

// AddGraph adds every triple of g in insertion order.
func (w *JSONLDWriter) AddGraph(g *graph.Graph) {
	for _, t := range g.Triples() {
		w.AddTriple(t)
	}
}

// Document returns the accumulated document.
func (w *JSONLDWriter) Document() *JSONLDDocument {
	return &w.doc
}

// Encode writes the indented JSON-LD document to out.
func (w *JSONLDWriter) Encode(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&w.doc); err != nil {
		return fmt.Errorf("encode json-ld: %w", err)
	}
	return nil
}

func (w *JSONLDWriter) node(id string) *JSONLDNode {
	i, ok := w.index[id]
	if !ok {
		i = len(w.doc.Graph)
		w.index[id] = i
		w.doc.Graph = append(w.doc.Graph, JSONLDNode{ID: id, Properties: make(map[string]any)})
	}
	return &w.doc.Graph[i]
}

func jsonldValue(obj rdf.Object) any {
	switch term := obj.(type) {
	case rdf.IRI:
		return map[string]string{"@id": term.String()}
	case rdf.Blank:
		return map[string]string{"@id": "_:" + term.String()}
	case rdf.Literal:
		dt := term.DataType.String()
		if dt == "" || dt == ndex.XSDNamespace+"string" {
			return term.String()
		}
		return map[string]string{"@value": term.String(), "@type": dt}
	}
	return obj.String()
}
