// Package ontology loads OWL class hierarchies and converts them into CX
// documents: one CX node per named class and one "subClassOf" edge per
// direct named superclass.
package ontology

import (
	"context"
	"strings"
)

// ExpressionKind classifies a superclass expression.
type ExpressionKind int

const (
	// ExprClass is a named class.
	ExprClass ExpressionKind = iota

	// ExprThing is owl:Thing, the universal root.
	ExprThing

	// ExprRestriction is an owl:Restriction.
	ExprRestriction

	// ExprAnonymous is any other anonymous class expression (unions,
	// intersections, complements, enumerations).
	ExprAnonymous
)

// Expression is a superclass expression of a class. IRI is empty for
// anonymous expressions.
type Expression struct {
	Kind ExpressionKind
	IRI  string
}

// Class is a named ontology class.
type Class struct {
	IRI          string
	Label        string
	Superclasses []Expression
	Instances    []string
}

// Name returns the class name derived from its IRI: the part after the
// last '#' or '/'. It is empty when no name can be derived.
func (c *Class) Name() string {
	return LocalName(c.IRI)
}

// Ontology is a loaded class hierarchy. Classes keep their declaration
// order. Classes may be appended to at any time; replacing or reordering
// classes after a lookup needs a fresh Ontology.
type Ontology struct {
	IRI     string
	Classes []*Class

	index   map[string]*Class
	indexed int
}

// Class returns the class with the given IRI. The first class declared
// with an IRI wins.
func (o *Ontology) Class(iri string) (*Class, bool) {
	if o.index == nil || o.indexed > len(o.Classes) {
		o.index = make(map[string]*Class, len(o.Classes))
		o.indexed = 0
	}
	for _, c := range o.Classes[o.indexed:] {
		if _, ok := o.index[c.IRI]; !ok {
			o.index[c.IRI] = c
		}
	}
	o.indexed = len(o.Classes)

	c, ok := o.index[iri]
	return c, ok
}

// Loader loads an ontology from a source, which is a file path or an
// http(s) URL.
type Loader interface {
	Load(ctx context.Context, source string) (*Ontology, error)
}

// LocalName returns the fragment or last path segment of iri.
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 {
		return iri[i+1:]
	}
	if strings.Contains(iri, ":") {
		return ""
	}
	return iri
}
