package export

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// AspectExporter groups every exported element under a node for its aspect,
// linked with cx:aspect_has_element. Aspects without a handler are fatal.
type AspectExporter struct {
	opts options
}

// Policy implements Exporter.
func (e *AspectExporter) Policy() Policy { return PolicyAspect }

// Export implements Exporter.
func (e *AspectExporter) Export(doc cx.Document) (*graph.Graph, error) {
	return run(PolicyAspect, e.opts, aspectDispatcher, doc)
}

var aspectDispatcher = dispatcher{
	handlers: map[cx.AspectKind]handler{
		cx.AspectNumberVerification: func(s *session, a cx.Aspect) error {
			s.aspect(a.Name)
			return numberVerification(s, a)
		},
		cx.AspectNodes:             grouped(nodeElement),
		cx.AspectEdges:             grouped(aspectEdge),
		cx.AspectMetaData:          aspectMetadata,
		cx.AspectNodeAttributes:    grouped(nodeAttributeElement),
		cx.AspectEdgeAttributes:    grouped(edgeAttributeElement),
		cx.AspectNetworkAttributes: grouped(networkAttributeElement),
		cx.AspectCitations:         grouped(citationElement),
		cx.AspectEdgeCitations:     aspectEdgeCitations,
		cx.AspectSupports:          grouped(supportElement),
		cx.AspectEdgeSupports:      aspectEdgeSupports,
	},
	fallback: reject,
}

// grouped adapts a per-entry element builder into a handler that links each
// element from the aspect node.
func grouped(element func(s *session, e cx.Entry) (rdf.IRI, error)) handler {
	return func(s *session, a cx.Aspect) error {
		aspect := s.aspect(a.Name)
		return eachEntry(a, func(e cx.Entry) error {
			h, err := element(s, e)
			if err != nil {
				return err
			}
			s.add(aspect, ndex.AspectElement, h)
			return nil
		})
	}
}

func aspectEdge(s *session, e cx.Entry) (rdf.IRI, error) {
	source, edge, target, err := edgeEnds(s, e)
	if err != nil {
		return rdf.IRI{}, err
	}
	s.add(edge, ndex.EdgeSource, source)
	s.add(edge, ndex.EdgeTarget, target)
	interaction(s, edge, e)
	return edge, nil
}

func nodeAttributeElement(s *session, e cx.Entry) (rdf.IRI, error) {
	return attributeElement(s, e, KindNode)
}

func edgeAttributeElement(s *session, e cx.Entry) (rdf.IRI, error) {
	return attributeElement(s, e, KindEdge)
}

// aspectMetadata attaches each record's fields to the aspect node named by
// the record.
func aspectMetadata(s *session, a cx.Aspect) error {
	s.aspect(a.Name)
	return eachEntry(a, func(e cx.Entry) error {
		name, err := e.RequireString("name")
		if err != nil {
			return err
		}
		return metadataFields(s, s.aspect(name), e)
	})
}

func aspectEdgeCitations(s *session, a cx.Aspect) error {
	return linkingNodes(s, a, "citations", KindCitation,
		ndex.ClassEdgeCitation, ndex.EdgeCitationEdge, ndex.EdgeCitationCitation)
}

func aspectEdgeSupports(s *session, a cx.Aspect) error {
	return linkingNodes(s, a, "supports", KindSupport,
		ndex.ClassEdgeSupport, ndex.EdgeSupportEdge, ndex.EdgeSupportSupport)
}

// linkingNodes emits one linking node per (edge, reference) pair of an
// edgeCitations or edgeSupports aspect.
func linkingNodes(s *session, a cx.Aspect, refKey string, kind EntityKind, class, edgePred, refPred string) error {
	aspect := s.aspect(a.Name)
	return eachEntry(a, func(e cx.Entry) error {
		return crossRefs(e, refKey, func(edgeID, refID int64) {
			link := s.minter.Mint(a.Name)
			s.typed(link, class)
			s.add(aspect, ndex.AspectElement, link)
			s.add(link, edgePred, s.resolve(KindEdge, edgeID))
			s.add(link, refPred, s.resolve(kind, refID))
		})
	})
}
