// Package ndex provides the CX-to-RDF vocabulary under the NDEx RDF schema
// namespace.
//
// Every class, policy marker and predicate minted by the exporters lives
// under the single base IRI [Namespace]. The only terms from other
// vocabularies are rdf:type, rdfs:label and, for ontology loading, the OWL
// and RDFS class-hierarchy terms.
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (cx.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() so the dotted names resolve to
//     the IRIs the exporters emit
//
// # Shapes
//
// The three export policies share the entity vocabulary (node, edge,
// citation, support and their id predicates) and differ in how they relate
// them:
//
//	abstract   aspect -has_entry-> entry -has_attribute-> attribute (has_key, has_value)
//	aspect     edge -edge_has_source-> node, edge -edge_has_target-> node
//	predicate  node -<edge handle>-> node
package ndex
