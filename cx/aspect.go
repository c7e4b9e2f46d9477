package cx

// AspectKind is the closed set of aspect names the converter recognizes.
type AspectKind int

// Handled kinds come first; AspectStatus and later are recognized CX aspects
// without semantic handlers.
const (
	AspectUnknown AspectKind = iota
	AspectNumberVerification
	AspectNodes
	AspectEdges
	AspectMetaData
	AspectNodeAttributes
	AspectEdgeAttributes
	AspectNetworkAttributes
	AspectCitations
	AspectEdgeCitations
	AspectSupports
	AspectEdgeSupports

	AspectStatus
	AspectContext
	AspectNodeCitations
	AspectNodeSupports
	AspectFunctionTerms
	AspectReifiedEdges
	AspectCartesianLayout
	AspectProvenanceHistory
	AspectNDExStatus
	AspectVisualProperties
	AspectCyVisualProperties
	AspectCyHiddenAttributes
	AspectCyNetworkRelations
	AspectCySubNetworks
	AspectCyGroups
	AspectCyTableColumn
)

var aspectNames = map[AspectKind]string{
	AspectNumberVerification: "numberVerification",
	AspectNodes:              "nodes",
	AspectEdges:              "edges",
	AspectMetaData:           "metaData",
	AspectNodeAttributes:     "nodeAttributes",
	AspectEdgeAttributes:     "edgeAttributes",
	AspectNetworkAttributes:  "networkAttributes",
	AspectCitations:          "citations",
	AspectEdgeCitations:      "edgeCitations",
	AspectSupports:           "supports",
	AspectEdgeSupports:       "edgeSupports",

	AspectStatus:             "status",
	AspectContext:            "@context",
	AspectNodeCitations:      "nodeCitations",
	AspectNodeSupports:       "nodeSupports",
	AspectFunctionTerms:      "functionTerms",
	AspectReifiedEdges:       "reifiedEdges",
	AspectCartesianLayout:    "cartesianLayout",
	AspectProvenanceHistory:  "provenanceHistory",
	AspectNDExStatus:         "ndexStatus",
	AspectVisualProperties:   "visualProperties",
	AspectCyVisualProperties: "cyVisualProperties",
	AspectCyHiddenAttributes: "cyHiddenAttributes",
	AspectCyNetworkRelations: "cyNetworkRelations",
	AspectCySubNetworks:      "cySubNetworks",
	AspectCyGroups:           "cyGroups",
	AspectCyTableColumn:      "cyTableColumn",
}

var aspectKinds = func() map[string]AspectKind {
	m := make(map[string]AspectKind, len(aspectNames))
	for k, name := range aspectNames {
		m[name] = k
	}
	return m
}()

// ParseAspectKind maps an aspect name to its kind. Names outside the closed
// set return AspectUnknown.
func ParseAspectKind(name string) AspectKind {
	if k, ok := aspectKinds[name]; ok {
		return k
	}
	return AspectUnknown
}

// String returns the CX aspect name, or "unknown".
func (k AspectKind) String() string {
	if name, ok := aspectNames[k]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether k is a recognized CX aspect.
func (k AspectKind) Known() bool {
	return k != AspectUnknown
}

// Handled reports whether k has semantic handlers in the domain-aware
// policies.
func (k AspectKind) Handled() bool {
	return k >= AspectNumberVerification && k <= AspectEdgeSupports
}

// HandledKinds returns the kinds with semantic handlers, in declaration order.
func HandledKinds() []AspectKind {
	kinds := make([]AspectKind, 0, AspectEdgeSupports)
	for k := AspectNumberVerification; k <= AspectEdgeSupports; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
