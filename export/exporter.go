package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/metric"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// Exporter converts a CX document into an RDF graph. Every call builds a
// fresh graph and identity registry, so one Exporter may be used from
// several goroutines.
type Exporter interface {
	Policy() Policy
	Export(doc cx.Document) (*graph.Graph, error)
}

type options struct {
	logger       *slog.Logger
	handles      graph.Handles
	metrics      *metric.Metrics
	matchAliases bool
}

// Option configures an Exporter.
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHandles selects the handle minting scheme. The default is uuid.
func WithHandles(h graph.Handles) Option {
	return func(o *options) { o.handles = h }
}

// WithMetrics records exports and fallbacks in m.
func WithMetrics(m *metric.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithAliasMatching runs MatchAliased on every exported graph.
func WithAliasMatching(enabled bool) Option {
	return func(o *options) { o.matchAliases = enabled }
}

// New returns the exporter for policy.
func New(policy Policy, opts ...Option) (Exporter, error) {
	o := options{logger: slog.Default(), handles: graph.HandlesUUID}
	for _, opt := range opts {
		opt(&o)
	}

	switch policy {
	case PolicyAbstract:
		return &AbstractExporter{opts: o}, nil
	case PolicyAspect:
		return &AspectExporter{opts: o}, nil
	case PolicyPredicate:
		return &PredicateExporter{opts: o}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}

// Export converts doc with the given policy.
func Export(doc cx.Document, policy Policy, opts ...Option) (*graph.Graph, error) {
	e, err := New(policy, opts...)
	if err != nil {
		return nil, err
	}
	return e.Export(doc)
}

// run drives one export: bootstrap, dispatch, alias matching and metrics.
func run(policy Policy, o options, d dispatcher, doc cx.Document) (*graph.Graph, error) {
	start := time.Now()
	s := newSession(policy, o)

	err := d.dispatch(s, doc)
	if err == nil && o.matchAliases {
		added := MatchAliased(s.g)
		o.logger.Debug("Matched aliases", "policy", policy, "triples", added)
	}

	o.metrics.RecordExport(string(policy), s.g.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("Exported CX document",
		"policy", policy,
		"triples", s.g.Len(),
		"nodes", s.registry.Len(KindNode),
		"edges", s.registry.Len(KindEdge))
	return s.g, nil
}

// session is the mutable state of a single export.
type session struct {
	policy   Policy
	g        *graph.Graph
	minter   graph.Minter
	document rdf.IRI
	registry *Registry
	aspects  map[string]rdf.IRI
	opts     options
}

func newSession(policy Policy, o options) *session {
	g := graph.New()
	minter := o.handles.NewMinter()
	document := minter.Mint("network")

	s := &session{
		policy:   policy,
		g:        g,
		minter:   minter,
		document: document,
		registry: NewRegistry(g, document, minter),
		aspects:  make(map[string]rdf.IRI),
		opts:     o,
	}

	s.typed(document, ndex.ClassNetwork)
	s.add(document, ndex.DocumentPolicy, graph.IRI(Policies[policy].IRI))
	return s
}

// add emits (subj, predicate, obj) where predicate is a dotted CX
// predicate name.
func (s *session) add(subj rdf.Subject, predicate string, obj rdf.Object) {
	s.g.Add(subj, graph.IRI(ndex.PredicateIRI(predicate)), obj)
}

func (s *session) typed(subj rdf.Subject, class string) {
	s.g.Add(subj, graph.IRI(ndex.RDFType), graph.IRI(class))
}

func (s *session) label(subj rdf.Subject, value any) {
	s.add(subj, ndex.Label, graph.Literal(value))
}

// aspect returns the grouping node for an aspect name, creating it on
// first use.
func (s *session) aspect(name string) rdf.IRI {
	if h, ok := s.aspects[name]; ok {
		return h
	}
	h := s.minter.Mint("aspect")
	s.aspects[name] = h
	s.typed(h, ndex.ClassAspect)
	s.label(h, name)
	s.add(s.document, ndex.DocumentAspect, h)
	return h
}

// resolve is shorthand for the registry.
func (s *session) resolve(kind EntityKind, id int64) rdf.IRI {
	return s.registry.Resolve(kind, id)
}
