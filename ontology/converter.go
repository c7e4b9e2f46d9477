package ontology

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/metric"
)

// InteractionSubClassOf is the interaction of every hierarchy edge.
const InteractionSubClassOf = "subClassOf"

// Converter turns an ontology's class hierarchy into a CX document.
type Converter struct {
	loader  Loader
	logger  *slog.Logger
	metrics *metric.Metrics
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ConverterOption {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithMetrics records converted and skipped classes.
func WithMetrics(m *metric.Metrics) ConverterOption {
	return func(c *Converter) {
		c.metrics = m
	}
}

// NewConverter creates a converter reading ontologies through loader.
func NewConverter(loader Loader, opts ...ConverterOption) *Converter {
	c := &Converter{
		loader: loader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert loads the ontology at source and returns its CX rendition.
func (c *Converter) Convert(ctx context.Context, source string) (cx.Document, error) {
	onto, err := c.loader.Load(ctx, source)
	if err != nil {
		return cx.Document{}, err
	}
	return c.ConvertOntology(onto)
}

// ConvertOntology converts an already loaded ontology.
func (c *Converter) ConvertOntology(onto *Ontology) (cx.Document, error) {
	conv := &conversion{
		onto:    onto,
		builder: cx.NewBuilder(),
		nodes:   make(map[string]int64),
		logger:  c.logger,
	}

	for _, class := range onto.Classes {
		_, ok := conv.ensureNode(class.IRI)
		c.metrics.RecordClass(ok)
		if !ok {
			c.logger.Debug("Skipping unnamed class", "iri", class.IRI)
		}
	}

	for _, class := range onto.Classes {
		if err := conv.hierarchy(class); err != nil {
			return cx.Document{}, err
		}
		for _, inst := range class.Instances {
			c.logger.Debug("Ontology instance", "class", class.Name(), "instance", inst)
		}
	}

	conv.builder.SetNetworkAttribute("name", onto.IRI)
	c.logger.Debug("Ontology converted",
		"ontology", onto.IRI,
		"nodes", conv.builder.NodeCount(),
		"edges", conv.builder.EdgeCount())
	return conv.builder.Document(), nil
}

// conversion holds the state of one ConvertOntology call.
type conversion struct {
	onto    *Ontology
	builder *cx.Builder
	nodes   map[string]int64
	logger  *slog.Logger
}

// ensureNode returns the node for a class IRI, adding it on first use. It
// reports false when the class has no derivable name.
func (c *conversion) ensureNode(iri string) (int64, bool) {
	if id, ok := c.nodes[iri]; ok {
		return id, true
	}
	name := LocalName(iri)
	if name == "" {
		return 0, false
	}
	id := c.builder.AddNode(name, iri)
	if class, ok := c.onto.Class(iri); ok && class.Label != "" {
		c.builder.SetNodeAttribute(id, "label", class.Label)
	}
	c.nodes[iri] = id
	return id, true
}

// hierarchy adds one edge per direct named superclass of class.
func (c *conversion) hierarchy(class *Class) error {
	for _, super := range class.Superclasses {
		switch super.Kind {
		case ExprThing, ExprRestriction:
			continue
		}

		source, ok := c.ensureNode(class.IRI)
		if !ok {
			return &cx.UnresolvableReferenceError{Role: "source", Entity: class.IRI}
		}
		if super.Kind == ExprAnonymous {
			return &cx.UnresolvableReferenceError{Role: "target", Entity: fmt.Sprintf("anonymous superclass of %s", class.IRI)}
		}
		target, ok := c.ensureNode(super.IRI)
		if !ok {
			return &cx.UnresolvableReferenceError{Role: "target", Entity: super.IRI}
		}
		c.builder.AddEdge(source, target, InteractionSubClassOf)
	}
	return nil
}
