package export

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// MatchAliased groups the subjects of cx:node_has_alias by alias value and
// relates every ordered pair in a group, including each node with itself,
// with cx:alias_equivalent in both directions. It returns the number of
// triples added; running it again adds none.
//
// Cost is quadratic in the size of an alias group.
func MatchAliased(g *graph.Graph) int {
	type group struct {
		members []rdf.Subject
		seen    map[string]bool
	}

	var (
		order  []string
		groups = make(map[string]*group)
	)
	for _, t := range g.Match(nil, graph.IRI(ndex.NodeHasAlias), nil) {
		alias := t.Obj.Serialize(rdf.NTriples)
		grp, ok := groups[alias]
		if !ok {
			grp = &group{seen: make(map[string]bool)}
			groups[alias] = grp
			order = append(order, alias)
		}
		key := t.Subj.Serialize(rdf.NTriples)
		if !grp.seen[key] {
			grp.seen[key] = true
			grp.members = append(grp.members, t.Subj)
		}
	}

	equivalent := graph.IRI(ndex.AliasEquivalent)
	added := 0
	for _, alias := range order {
		members := groups[alias].members
		for _, x := range members {
			for _, y := range members {
				xo, xok := x.(rdf.Object)
				yo, yok := y.(rdf.Object)
				if !xok || !yok {
					continue
				}
				if g.Add(x, equivalent, yo) {
					added++
				}
				if g.Add(y, equivalent, xo) {
					added++
				}
			}
		}
	}
	return added
}
