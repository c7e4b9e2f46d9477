package cx

// NumberVerification is the longNumber value CX writers emit.
const NumberVerification int64 = 281474976710655

// Builder assembles a CX document from nodes, edges and attributes. Node and
// edge identifiers are assigned from independent counters starting at zero.
type Builder struct {
	nodes             []Entry
	edges             []Entry
	nodeAttributes    []Entry
	edgeAttributes    []Entry
	networkAttributes []Entry
	nextNode          int64
	nextEdge          int64
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddNode adds a node and returns its identifier. Empty name or represents
// values are omitted.
func (b *Builder) AddNode(name, represents string) int64 {
	id := b.nextNode
	b.nextNode++

	e := NewEntry("@id", id)
	if name != "" {
		e.Set("n", name)
	}
	if represents != "" {
		e.Set("r", represents)
	}
	b.nodes = append(b.nodes, e)
	return id
}

// AddEdge adds an edge between two node identifiers and returns its
// identifier.
func (b *Builder) AddEdge(source, target int64, interaction string) int64 {
	id := b.nextEdge
	b.nextEdge++

	e := NewEntry("@id", id, "s", source, "t", target)
	if interaction != "" {
		e.Set("i", interaction)
	}
	b.edges = append(b.edges, e)
	return id
}

// SetNodeAttribute adds a string attribute to a node.
func (b *Builder) SetNodeAttribute(node int64, name, value string) {
	b.nodeAttributes = append(b.nodeAttributes, NewEntry("po", node, "n", name, "v", value))
}

// SetEdgeAttribute adds a string attribute to an edge.
func (b *Builder) SetEdgeAttribute(edge int64, name, value string) {
	b.edgeAttributes = append(b.edgeAttributes, NewEntry("po", edge, "n", name, "v", value))
}

// SetNetworkAttribute adds a string network attribute.
func (b *Builder) SetNetworkAttribute(name, value string) {
	b.networkAttributes = append(b.networkAttributes, NewEntry("n", name, "v", value))
}

// NodeCount returns the number of nodes added so far.
func (b *Builder) NodeCount() int {
	return len(b.nodes)
}

// EdgeCount returns the number of edges added so far.
func (b *Builder) EdgeCount() int {
	return len(b.edges)
}

// Document returns the CX document. Empty aspects are left out; metaData
// describes every aspect that is present.
func (b *Builder) Document() Document {
	type section struct {
		name      string
		entries   []Entry
		idCounter int64
		counted   bool
	}
	sections := []section{
		{name: AspectNetworkAttributes.String(), entries: b.networkAttributes},
		{name: AspectNodes.String(), entries: b.nodes, idCounter: b.nextNode, counted: true},
		{name: AspectEdges.String(), entries: b.edges, idCounter: b.nextEdge, counted: true},
		{name: AspectNodeAttributes.String(), entries: b.nodeAttributes},
		{name: AspectEdgeAttributes.String(), entries: b.edgeAttributes},
	}

	var metadata []Entry
	for _, s := range sections {
		if len(s.entries) == 0 {
			continue
		}
		m := NewEntry(
			"name", s.name,
			"version", "1.0",
			"elementCount", int64(len(s.entries)),
			"consistencyGroup", int64(1),
		)
		if s.counted && s.idCounter > 0 {
			m.Set("idCounter", s.idCounter-1)
		}
		metadata = append(metadata, m)
	}

	var doc Document
	doc.Append(AspectNumberVerification.String(), NewEntry("longNumber", NumberVerification))
	doc.Append(AspectMetaData.String(), metadata...)
	for _, s := range sections {
		if len(s.entries) > 0 {
			doc.Append(s.name, s.entries...)
		}
	}
	return doc
}
