package export

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// PredicateExporter produces the most compact shape: an edge is the triple
// (source, edge, target), so direct pattern queries need no attribute
// indirection. Aspects without a handler are logged and exported with the
// structural shape.
//
// A query for labelled relations then reads
//
//	SELECT ?source_label ?relation ?target_label WHERE {
//	    ?source ?relation ?target .
//	    ?relation a cx:edge .
//	    ?source rdfs:label ?source_label .
//	    ?target rdfs:label ?target_label .
//	}
type PredicateExporter struct {
	opts options
}

// Policy implements Exporter.
func (e *PredicateExporter) Policy() Policy { return PolicyPredicate }

// Export implements Exporter.
func (e *PredicateExporter) Export(doc cx.Document) (*graph.Graph, error) {
	return run(PolicyPredicate, e.opts, predicateDispatcher, doc)
}

var predicateDispatcher = dispatcher{
	handlers: map[cx.AspectKind]handler{
		cx.AspectNumberVerification: numberVerification,
		cx.AspectNodes:              ungrouped(nodeElement),
		cx.AspectEdges:              predicateEdges,
		cx.AspectMetaData:           predicateMetadata,
		cx.AspectNodeAttributes:     ungrouped(nodeAttributeElement),
		cx.AspectEdgeAttributes:     ungrouped(edgeAttributeElement),
		cx.AspectNetworkAttributes:  ungrouped(networkAttributeElement),
		cx.AspectCitations:          ungrouped(citationElement),
		cx.AspectEdgeCitations:      directLinks("citations", KindCitation, ndex.EdgeCitation),
		cx.AspectSupports:           ungrouped(supportElement),
		cx.AspectEdgeSupports:       directLinks("supports", KindSupport, ndex.EdgeSupport),
	},
	fallback: degrade,
}

func ungrouped(element func(s *session, e cx.Entry) (rdf.IRI, error)) handler {
	return func(s *session, a cx.Aspect) error {
		return eachEntry(a, func(e cx.Entry) error {
			_, err := element(s, e)
			return err
		})
	}
}

func predicateEdges(s *session, a cx.Aspect) error {
	return eachEntry(a, func(e cx.Entry) error {
		source, edge, target, err := edgeEnds(s, e)
		if err != nil {
			return err
		}
		s.g.Add(source, edge, target)
		interaction(s, edge, e)
		return nil
	})
}

// predicateMetadata emits one metadata node per record, linked from the
// document and labelled with the aspect name.
func predicateMetadata(s *session, a cx.Aspect) error {
	return eachEntry(a, func(e cx.Entry) error {
		name, err := e.RequireString("name")
		if err != nil {
			return err
		}
		if err := validateMetadata(e); err != nil {
			return err
		}

		metadata := s.minter.Mint("metadata")
		s.typed(metadata, ndex.ClassMetadata)
		s.add(s.document, ndex.DocumentMetadata, metadata)
		s.label(metadata, name)
		return metadataFields(s, metadata, e)
	})
}

// validateMetadata checks the required fields before any triple of the
// record is emitted.
func validateMetadata(e cx.Entry) error {
	if _, err := e.Require("version"); err != nil {
		return err
	}
	if _, err := e.RequireInt("elementCount"); err != nil {
		return err
	}
	_, err := e.RequireInt("consistencyGroup")
	return err
}

// directLinks relates each edge to each citation or support of an entry
// with a single triple.
func directLinks(refKey string, kind EntityKind, predicate string) handler {
	return func(s *session, a cx.Aspect) error {
		return eachEntry(a, func(e cx.Entry) error {
			return crossRefs(e, refKey, func(edgeID, refID int64) {
				s.add(s.resolve(KindEdge, edgeID), predicate, s.resolve(kind, refID))
			})
		})
	}
}
