package export

import (
	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// AbstractExporter encodes only the shape of a CX document. Every aspect is
// handled, so it never fails on aspect names.
type AbstractExporter struct {
	opts options
}

// Policy implements Exporter.
func (e *AbstractExporter) Policy() Policy { return PolicyAbstract }

// Export implements Exporter.
func (e *AbstractExporter) Export(doc cx.Document) (*graph.Graph, error) {
	return run(PolicyAbstract, e.opts, dispatcher{fallback: structural}, doc)
}

// structural emits the aspect node, one entry node per entry and one
// attribute node per key/value pair.
func structural(s *session, a cx.Aspect) error {
	aspect := s.aspect(a.Name)
	for _, e := range a.Entries {
		entry := s.minter.Mint("entry")
		s.typed(entry, ndex.ClassEntry)
		s.add(aspect, ndex.StructureEntry, entry)

		for _, key := range e.Keys() {
			value, _ := e.Get(key)

			attribute := s.minter.Mint("attribute")
			s.typed(attribute, ndex.ClassAttribute)
			s.add(entry, ndex.StructureAttribute, attribute)
			s.add(attribute, ndex.StructureKey, graph.Literal(key))
			s.add(attribute, ndex.StructureValue, graph.Literal(value))
		}
	}
	return nil
}
