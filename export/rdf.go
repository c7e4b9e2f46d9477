// Package export converts CX documents into RDF graphs under one of three
// policies and serializes the result.
//
// The Registry gives every CX entity (node, edge, citation, support) exactly
// one handle per export. A dispatcher walks the aspect fragments in
// document order and hands each one to the policy's handler for its kind.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/graph"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// DefaultFormat is used when no format is selected.
const DefaultFormat = FormatTurtle

// ParseFormat validates a format name. The empty string selects
// DefaultFormat.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(s)
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format: %s", s)
	}
	return f, nil
}

// Write serializes g to w.
func Write(w io.Writer, g *graph.Graph, format Format) error {
	switch format {
	case FormatTurtle:
		return encode(w, g.Grouped(), rdf.Turtle)
	case FormatNTriples:
		return encode(w, g.Triples(), rdf.NTriples)
	case FormatJSONLD:
		jw := NewJSONLDWriter()
		jw.AddGraph(g)
		return jw.Encode(w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Serialize returns g serialized in format.
func Serialize(g *graph.Graph, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encode(w io.Writer, triples []rdf.Triple, format rdf.Format) error {
	enc := rdf.NewTripleEncoder(w, format)
	if format == rdf.Turtle {
		// only the known vocabularies get prefixes; handles stay full IRIs
		enc.GenerateNamespaces = false
		for prefix, ns := range defaultPrefixes() {
			enc.Namespaces[ns] = prefix
		}
	}
	for _, t := range triples {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("encode triple: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode triples: %w", err)
	}
	return nil
}
