package ndex

// Namespace is the fixed base IRI for all CX terms.
const Namespace = "http://ndexbio.org/rdfs#"

// Prefix is the conventional prefix bound to Namespace.
const Prefix = "cx"

// Standard vocabulary IRIs.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	RDFType        = RDFNamespace + "type"
	RDFSLabel      = RDFSNamespace + "label"
	RDFSSubClassOf = RDFSNamespace + "subClassOf"
	RDFSClass      = RDFSNamespace + "Class"
	OWLClass       = OWLNamespace + "Class"
	OWLThing       = OWLNamespace + "Thing"
	OWLRestriction = OWLNamespace + "Restriction"
	OWLOntology    = OWLNamespace + "Ontology"
)

// Class IRIs used as rdf:type objects.
const (
	ClassNetwork          = Namespace + "network"
	ClassAspect           = Namespace + "aspect"
	ClassEntry            = Namespace + "entry"
	ClassAttribute        = Namespace + "attribute"
	ClassNode             = Namespace + "node"
	ClassEdge             = Namespace + "edge"
	ClassCitation         = Namespace + "citation"
	ClassSupport          = Namespace + "support"
	ClassNodeAttribute    = Namespace + "node_attribute"
	ClassEdgeAttribute    = Namespace + "edge_attribute"
	ClassNetworkAttribute = Namespace + "network_attribute"
	ClassMetadata         = Namespace + "metadata"
	ClassEdgeCitation     = Namespace + "edge_citation"
	ClassEdgeSupport      = Namespace + "edge_support"
)

// Policy markers, the objects of (document, cx:policy, ?).
const (
	PolicyAbstract  = Namespace + "abstract_policy"
	PolicyAspect    = Namespace + "aspect_policy"
	PolicyPredicate = Namespace + "predicate_policy"
)

// Document-level predicate IRIs.
const (
	Policy                = Namespace + "policy"
	HasAspect             = Namespace + "has_aspect"
	HasNode               = Namespace + "has_node"
	HasEdge               = Namespace + "has_edge"
	HasCitation           = Namespace + "has_citation"
	HasSupport            = Namespace + "has_support"
	HasMetadata           = Namespace + "has_metadata"
	HasNumberVerification = Namespace + "has_number_verification"
	NetworkHasAttribute   = Namespace + "network_has_attribute"
)

// Structural predicate IRIs (abstract policy and fallback).
const (
	HasEntry     = Namespace + "has_entry"
	HasAttribute = Namespace + "has_attribute"
	HasKey       = Namespace + "has_key"
	HasValue     = Namespace + "has_value"
)

// Aspect predicate IRIs.
const (
	AspectHasElement       = Namespace + "aspect_has_element"
	AspectVersion          = Namespace + "aspect_version"
	AspectElementsCount    = Namespace + "aspect_elements_count"
	AspectConsistencyGroup = Namespace + "aspect_consistency_group"
	AspectIDCounter        = Namespace + "aspect_id_counter"
)

// Entity predicate IRIs.
const (
	HasID              = Namespace + "has_id"
	EdgeHasID          = Namespace + "edge_has_id"
	CitationHasID      = Namespace + "citation_has_id"
	SupportHasID       = Namespace + "support_has_id"
	NodeRepresents     = Namespace + "node_represents"
	NodeHasAlias       = Namespace + "node_has_alias"
	AliasEquivalent    = Namespace + "alias_equivalent"
	EdgeHasSource      = Namespace + "edge_has_source"
	EdgeHasTarget      = Namespace + "edge_has_target"
	EdgeHasInteraction = Namespace + "edge_has_interaction"
	EdgeHasCitation    = Namespace + "edge_has_citation"
	EdgeHasSupport     = Namespace + "edge_has_support"
	CitationHasTitle   = Namespace + "citation_has_title"
	SupportHasText     = Namespace + "support_has_text"

	EdgeCitationHasEdge     = Namespace + "edge_citation_has_edge"
	EdgeCitationHasCitation = Namespace + "edge_citation_has_citation"
	EdgeSupportHasEdge      = Namespace + "edge_support_has_edge"
	EdgeSupportHasSupport   = Namespace + "edge_support_has_support"
)

// Attribute predicate IRIs.
const (
	NodeHasAttribute         = Namespace + "node_has_attribute"
	EdgeHasAttribute         = Namespace + "edge_has_attribute"
	AttributeHasName         = Namespace + "attribute_has_name"
	AttributeHasValue        = Namespace + "attribute_has_value"
	NetworkAttributeHasKey   = Namespace + "network_attribute_has_key"
	NetworkAttributeHasValue = Namespace + "network_attribute_has_value"
)
