package ndex

import (
	"sort"
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// Document predicates relate the network root to its parts.
const (
	// DocumentPolicy records which export policy shaped the graph.
	DocumentPolicy = "cx.document.policy"

	// DocumentAspect links the network to an aspect grouping node.
	DocumentAspect = "cx.document.aspect"

	// DocumentNode links the network to a node entity.
	DocumentNode = "cx.document.node"

	// DocumentEdge links the network to an edge entity.
	DocumentEdge = "cx.document.edge"

	// DocumentCitation links the network to a citation entity.
	DocumentCitation = "cx.document.citation"

	// DocumentSupport links the network to a support entity.
	DocumentSupport = "cx.document.support"

	// DocumentMetadata links the network to a metadata record (predicate policy).
	DocumentMetadata = "cx.document.metadata"

	// DocumentNumberVerification is the numberVerification long value.
	DocumentNumberVerification = "cx.document.number_verification"

	// DocumentNetworkAttribute links the network to a network attribute.
	DocumentNetworkAttribute = "cx.document.network_attribute"
)

// Structure predicates encode the raw fragment shape.
const (
	StructureEntry     = "cx.structure.entry"
	StructureAttribute = "cx.structure.attribute"
	StructureKey       = "cx.structure.key"
	StructureValue     = "cx.structure.value"
)

// Aspect predicates describe aspect grouping nodes and metadata records.
const (
	AspectElement        = "cx.aspect.element"
	AspectVersionPred    = "cx.aspect.version"
	AspectElementCount   = "cx.aspect.element_count"
	AspectConsistencyGrp = "cx.aspect.consistency_group"
	AspectIDCounterPred  = "cx.aspect.id_counter"
)

// Entity predicates describe nodes, edges, citations and supports.
const (
	NodeID          = "cx.node.id"
	NodeRepresentsP = "cx.node.represents"
	NodeAlias       = "cx.node.alias"
	NodeAttribute   = "cx.node.attribute"
	NodeEquivalent  = "cx.node.alias_equivalent"

	EdgeID          = "cx.edge.id"
	EdgeSource      = "cx.edge.source"
	EdgeTarget      = "cx.edge.target"
	EdgeInteraction = "cx.edge.interaction"
	EdgeCitation    = "cx.edge.citation"
	EdgeSupport     = "cx.edge.support"
	EdgeAttribute   = "cx.edge.attribute"

	CitationID    = "cx.citation.id"
	CitationTitle = "cx.citation.title"
	SupportID     = "cx.support.id"
	SupportText   = "cx.support.text"

	EdgeCitationEdge     = "cx.edge_citation.edge"
	EdgeCitationCitation = "cx.edge_citation.citation"
	EdgeSupportEdge      = "cx.edge_support.edge"
	EdgeSupportSupport   = "cx.edge_support.support"
)

// Attribute predicates carry attribute names and values.
const (
	AttributeName         = "cx.attribute.name"
	AttributeValue        = "cx.attribute.value"
	NetworkAttributeKey   = "cx.network_attribute.key"
	NetworkAttributeValue = "cx.network_attribute.value"
)

// Label is the rdfs:label predicate used for node and aspect names.
const Label = "cx.entity.label"

// PredicateIRI returns the IRI registered for a dotted predicate name.
// Unregistered names fall back to the CX namespace.
func PredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + strings.ReplaceAll(strings.TrimPrefix(predicate, "cx."), ".", "_")
}

// Predicates returns every registered CX predicate name, sorted.
func Predicates() []string {
	names := make([]string, 0, len(registrations))
	for _, r := range registrations {
		names = append(names, r.name)
	}
	sort.Strings(names)
	return names
}

// PredicateName returns the dotted predicate name registered for iri.
func PredicateName(iri string) (string, bool) {
	name, ok := namesByIRI[iri]
	return name, ok
}

type registration struct {
	name     string
	iri      string
	desc     string
	dataType string
}

var registrations = []registration{
	{DocumentPolicy, Policy, "Export policy that shaped this graph", "iri"},
	{DocumentAspect, HasAspect, "Network has aspect grouping node", "entity_id"},
	{DocumentNode, HasNode, "Network has node", "entity_id"},
	{DocumentEdge, HasEdge, "Network has edge", "entity_id"},
	{DocumentCitation, HasCitation, "Network has citation", "entity_id"},
	{DocumentSupport, HasSupport, "Network has support", "entity_id"},
	{DocumentMetadata, HasMetadata, "Network has metadata record", "entity_id"},
	{DocumentNumberVerification, HasNumberVerification, "CX numberVerification long value", "int64"},
	{DocumentNetworkAttribute, NetworkHasAttribute, "Network has network attribute", "entity_id"},

	{StructureEntry, HasEntry, "Aspect has raw entry", "entity_id"},
	{StructureAttribute, HasAttribute, "Entry has raw key/value attribute", "entity_id"},
	{StructureKey, HasKey, "Raw attribute key", "string"},
	{StructureValue, HasValue, "Raw attribute value", "literal"},

	{AspectElement, AspectHasElement, "Aspect grouping node has element", "entity_id"},
	{AspectVersionPred, AspectVersion, "Aspect version from metaData", "string"},
	{AspectElementCount, AspectElementsCount, "Aspect element count from metaData", "int64"},
	{AspectConsistencyGrp, AspectConsistencyGroup, "Aspect consistency group from metaData", "int64"},
	{AspectIDCounterPred, AspectIDCounter, "Aspect id counter from metaData", "int64"},

	{NodeID, HasID, "CX node identifier", "int64"},
	{NodeRepresentsP, NodeRepresents, "Identifier the node represents", "string"},
	{NodeAlias, NodeHasAlias, "Alias of a node", "string"},
	{NodeAttribute, NodeHasAttribute, "Node has attribute", "entity_id"},
	{NodeEquivalent, AliasEquivalent, "Nodes share an alias", "entity_id"},

	{EdgeID, EdgeHasID, "CX edge identifier", "int64"},
	{EdgeSource, EdgeHasSource, "Edge source node", "entity_id"},
	{EdgeTarget, EdgeHasTarget, "Edge target node", "entity_id"},
	{EdgeInteraction, EdgeHasInteraction, "Edge interaction type", "string"},
	{EdgeCitation, EdgeHasCitation, "Edge is supported by citation", "entity_id"},
	{EdgeSupport, EdgeHasSupport, "Edge is supported by support", "entity_id"},
	{EdgeAttribute, EdgeHasAttribute, "Edge has attribute", "entity_id"},

	{CitationID, CitationHasID, "CX citation identifier", "int64"},
	{CitationTitle, CitationHasTitle, "Citation title (dc:title)", "string"},
	{SupportID, SupportHasID, "CX support identifier", "int64"},
	{SupportText, SupportHasText, "Support text", "string"},

	{EdgeCitationEdge, EdgeCitationHasEdge, "Edge citation link to edge", "entity_id"},
	{EdgeCitationCitation, EdgeCitationHasCitation, "Edge citation link to citation", "entity_id"},
	{EdgeSupportEdge, EdgeSupportHasEdge, "Edge support link to edge", "entity_id"},
	{EdgeSupportSupport, EdgeSupportHasSupport, "Edge support link to support", "entity_id"},

	{AttributeName, AttributeHasName, "Attribute name", "string"},
	{AttributeValue, AttributeHasValue, "Attribute value, one triple per list element", "literal"},
	{NetworkAttributeKey, NetworkAttributeHasKey, "Network attribute name", "string"},
	{NetworkAttributeValue, NetworkAttributeHasValue, "Network attribute value", "string"},

	{Label, RDFSLabel, "Human-readable name", "string"},
}

var namesByIRI = make(map[string]string, len(registrations))

func init() {
	for _, r := range registrations {
		namesByIRI[r.iri] = r.name
		vocabulary.Register(r.name,
			vocabulary.WithDescription(r.desc),
			vocabulary.WithDataType(r.dataType),
			vocabulary.WithIRI(r.iri))
	}
}
