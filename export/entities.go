package export

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// Element builders shared by the aspect and predicate policies. Each returns
// the handle of the element it emitted so the aspect policy can group it.

// aliasAttribute is the node attribute name whose values become
// cx:node_has_alias triples.
const aliasAttribute = "alias"

func numberVerification(s *session, a cx.Aspect) error {
	if len(a.Entries) == 0 {
		return &cx.FormatError{Aspect: a.Name, Index: -1, Field: "longNumber", Reason: "numberVerification has no entries"}
	}
	n, err := a.Entries[0].RequireInt("longNumber")
	if err != nil {
		return cx.InAspect(err, a.Name, 0)
	}
	s.add(s.document, ndex.DocumentNumberVerification, graph.Literal(n))
	return nil
}

func nodeElement(s *session, e cx.Entry) (rdf.IRI, error) {
	id, err := e.RequireInt("@id")
	if err != nil {
		return rdf.IRI{}, err
	}
	node := s.resolve(KindNode, id)

	if v, ok := optional(e, "n"); ok {
		s.label(node, v)
	}
	if v, ok := optional(e, "r"); ok {
		s.add(node, ndex.NodeRepresentsP, graph.Literal(v))
	}
	return node, nil
}

// edgeEnds resolves the source and target nodes and then the edge, so both
// endpoints exist before any triple about the edge is emitted.
func edgeEnds(s *session, e cx.Entry) (source, edge, target rdf.IRI, err error) {
	sourceID, err := e.RequireInt("s")
	if err != nil {
		return
	}
	targetID, err := e.RequireInt("t")
	if err != nil {
		return
	}
	edgeID, err := e.RequireInt("@id")
	if err != nil {
		return
	}

	source = s.resolve(KindNode, sourceID)
	target = s.resolve(KindNode, targetID)
	edge = s.resolve(KindEdge, edgeID)
	return source, edge, target, nil
}

func interaction(s *session, edge rdf.IRI, e cx.Entry) {
	if v, ok := optional(e, "i"); ok {
		s.add(edge, ndex.EdgeInteraction, graph.Literal(v))
	}
}

// attributeElement exports a nodeAttributes or edgeAttributes entry. The
// owner named by "po" is resolved in the namespace of kind.
func attributeElement(s *session, e cx.Entry, kind EntityKind) (rdf.IRI, error) {
	owner, err := e.RequireInt("po")
	if err != nil {
		return rdf.IRI{}, err
	}
	name, err := e.Require("n")
	if err != nil {
		return rdf.IRI{}, err
	}
	values, err := cx.AttributeValues(e)
	if err != nil {
		return rdf.IRI{}, err
	}

	class, link := ndex.ClassNodeAttribute, ndex.NodeAttribute
	if kind == KindEdge {
		class, link = ndex.ClassEdgeAttribute, ndex.EdgeAttribute
	}

	entity := s.resolve(kind, owner)
	attribute := s.minter.Mint(kindSpecs[kind].name + "_attribute")
	s.typed(attribute, class)
	s.add(entity, link, attribute)
	s.add(attribute, ndex.AttributeName, graph.Literal(name))
	for _, v := range values {
		s.add(attribute, ndex.AttributeValue, graph.Literal(v))
	}

	if kind == KindNode && name == aliasAttribute {
		for _, v := range values {
			s.add(entity, ndex.NodeAlias, graph.Literal(v))
		}
	}
	return attribute, nil
}

// networkAttributeElement exports a networkAttributes entry. Only string
// values are supported.
func networkAttributeElement(s *session, e cx.Entry) (rdf.IRI, error) {
	name, err := e.Require("n")
	if err != nil {
		return rdf.IRI{}, err
	}
	value, err := e.Require("v")
	if err != nil {
		return rdf.IRI{}, err
	}
	d, _, err := e.OptionalString("d")
	if err != nil {
		return rdf.IRI{}, err
	}
	if d != "" && cx.DataType(d) != cx.TypeString {
		return rdf.IRI{}, &cx.UnsupportedValueError{DataType: d, Value: value}
	}

	attribute := s.minter.Mint("network_attribute")
	s.add(s.document, ndex.DocumentNetworkAttribute, attribute)
	s.typed(attribute, ndex.ClassNetworkAttribute)
	s.add(attribute, ndex.NetworkAttributeKey, graph.Literal(name))
	s.add(attribute, ndex.NetworkAttributeValue, graph.Literal(value))
	return attribute, nil
}

// citationElement exports a citation. Fields other than dc:title are
// dropped.
func citationElement(s *session, e cx.Entry) (rdf.IRI, error) {
	id, err := e.RequireInt("@id")
	if err != nil {
		return rdf.IRI{}, err
	}
	citation := s.resolve(KindCitation, id)
	if v, ok := optional(e, "dc:title"); ok {
		s.add(citation, ndex.CitationTitle, graph.Literal(v))
	}
	return citation, nil
}

// supportElement exports a support. Fields other than text are dropped.
func supportElement(s *session, e cx.Entry) (rdf.IRI, error) {
	id, err := e.RequireInt("@id")
	if err != nil {
		return rdf.IRI{}, err
	}
	support := s.resolve(KindSupport, id)
	if v, ok := optional(e, "text"); ok {
		s.add(support, ndex.SupportText, graph.Literal(v))
	}
	return support, nil
}

// metadataFields attaches the required version, element count and
// consistency group, and the optional id counter, to subj.
func metadataFields(s *session, subj rdf.IRI, e cx.Entry) error {
	version, err := e.Require("version")
	if err != nil {
		return err
	}
	count, err := e.RequireInt("elementCount")
	if err != nil {
		return err
	}
	group, err := e.RequireInt("consistencyGroup")
	if err != nil {
		return err
	}
	counter, hasCounter, err := e.OptionalInt("idCounter")
	if err != nil {
		return err
	}

	s.add(subj, ndex.AspectVersionPred, graph.Literal(version))
	s.add(subj, ndex.AspectElementCount, graph.Literal(count))
	s.add(subj, ndex.AspectConsistencyGrp, graph.Literal(group))
	if hasCounter {
		s.add(subj, ndex.AspectIDCounterPred, graph.Literal(counter))
	}
	return nil
}

// crossRefs reads the edge ids in "po" and the ids in refKey of an
// edgeCitations or edgeSupports entry, and calls fn for every pair.
func crossRefs(e cx.Entry, refKey string, fn func(edgeID, refID int64)) error {
	edges, err := e.RequireIntList("po")
	if err != nil {
		return err
	}
	refs, err := e.RequireIntList(refKey)
	if err != nil {
		return err
	}
	for _, edgeID := range edges {
		for _, refID := range refs {
			fn(edgeID, refID)
		}
	}
	return nil
}

func optional(e cx.Entry, key string) (any, bool) {
	if !e.Has(key) {
		return nil, false
	}
	v, _ := e.Get(key)
	return v, true
}
