package export

import (
	"fmt"

	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// Policy selects how CX aspects are shaped into triples.
type Policy string

const (
	// PolicyAbstract encodes only the document structure: aspect, entry and
	// key/value attribute nodes.
	PolicyAbstract Policy = "abstract"

	// PolicyAspect groups domain-aware elements under one node per aspect
	// and rejects aspects it has no handler for.
	PolicyAspect Policy = "aspect"

	// PolicyPredicate uses each edge handle as the predicate between its
	// source and target, and falls back to the structural shape for
	// unhandled aspects.
	PolicyPredicate Policy = "predicate"
)

// DefaultPolicy is used when no policy is selected.
const DefaultPolicy = PolicyPredicate

// PolicyInfo describes a policy.
type PolicyInfo struct {
	// Name is the policy identifier.
	Name Policy

	// Description describes the triple shape.
	Description string

	// IRI is the marker recorded with cx:policy on the document.
	IRI string

	// Strict policies fail on aspects without handlers.
	Strict bool
}

// Policies contains the description of every policy.
var Policies = map[Policy]PolicyInfo{
	PolicyAbstract: {
		Name:        PolicyAbstract,
		Description: "Structural encoding of aspects, entries and key/value attributes",
		IRI:         ndex.PolicyAbstract,
	},
	PolicyAspect: {
		Name:        PolicyAspect,
		Description: "Domain-aware elements grouped under per-aspect nodes",
		IRI:         ndex.PolicyAspect,
		Strict:      true,
	},
	PolicyPredicate: {
		Name:        PolicyPredicate,
		Description: "Edges as predicates between nodes, structural fallback for other aspects",
		IRI:         ndex.PolicyPredicate,
	},
}

// ParsePolicy validates a policy name. The empty string selects
// DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := Policy(s)
	if _, ok := Policies[p]; !ok {
		return "", fmt.Errorf("unknown policy %q (want abstract, aspect or predicate)", s)
	}
	return p, nil
}

// GetPolicyInfo returns the description of a policy.
func GetPolicyInfo(p Policy) (PolicyInfo, bool) {
	info, ok := Policies[p]
	return info, ok
}

// PolicyNames returns the policy names in a stable order.
func PolicyNames() []string {
	return []string{string(PolicyAbstract), string(PolicyAspect), string(PolicyPredicate)}
}
