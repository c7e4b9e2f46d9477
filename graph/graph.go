// Package graph provides an in-memory RDF graph with set semantics over
// knakk/rdf terms, and the handle minters exporters use to name entities.
package graph

import (
	"github.com/knakk/rdf"
)

// Graph is an insertion-ordered set of triples. Two triples are the same
// when their N-Triples serializations are equal.
//
// A Graph is not safe for concurrent use; each export owns its own.
type Graph struct {
	triples []rdf.Triple
	index   map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]struct{})}
}

// Add inserts (s, p, o) and reports whether it was new.
func (g *Graph) Add(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	return g.AddTriple(rdf.Triple{Subj: s, Pred: p, Obj: o})
}

// AddTriple inserts t and reports whether it was new.
func (g *Graph) AddTriple(t rdf.Triple) bool {
	key := t.Serialize(rdf.NTriples)
	if _, ok := g.index[key]; ok {
		return false
	}
	g.index[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Contains reports whether the graph holds (s, p, o).
func (g *Graph) Contains(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	_, ok := g.index[rdf.Triple{Subj: s, Pred: p, Obj: o}.Serialize(rdf.NTriples)]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples matching the pattern in insertion order. A nil
// term matches anything.
func (g *Graph) Match(s rdf.Subject, p rdf.Predicate, o rdf.Object) []rdf.Triple {
	var out []rdf.Triple
	for _, t := range g.triples {
		if s != nil && !SameTerm(s, t.Subj) {
			continue
		}
		if p != nil && !SameTerm(p, t.Pred) {
			continue
		}
		if o != nil && !SameTerm(o, t.Obj) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Objects returns the objects of every (s, p, ?) triple.
func (g *Graph) Objects(s rdf.Subject, p rdf.Predicate) []rdf.Object {
	var out []rdf.Object
	for _, t := range g.Match(s, p, nil) {
		out = append(out, t.Obj)
	}
	return out
}

// Grouped returns the triples reordered so that all triples of a subject
// are adjacent. Subjects keep the order of their first appearance and
// triples keep their relative order. Turtle output uses this to emit one
// block per subject.
func (g *Graph) Grouped() []rdf.Triple {
	var (
		order  []string
		groups = make(map[string][]rdf.Triple)
	)
	for _, t := range g.triples {
		key := t.Subj.Serialize(rdf.NTriples)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	out := make([]rdf.Triple, 0, len(g.triples))
	for _, key := range order {
		out = append(out, groups[key]...)
	}
	return out
}

// SameTerm reports whether two terms are equal.
func SameTerm(a, b rdf.Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type() == b.Type() && a.Serialize(rdf.NTriples) == b.Serialize(rdf.NTriples)
}
