package graph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/knakk/rdf"
)

var xsdDouble = IRI("http://www.w3.org/2001/XMLSchema#double")

// IRI returns the IRI term for s. It panics when s is not a valid IRI; use
// it for vocabulary constants and minted handles only.
func IRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic(fmt.Sprintf("graph: invalid IRI %q: %v", s, err))
	}
	return iri
}

// Literal returns a typed literal for v. Strings, booleans, integers and
// floats map to the matching XSD type. Anything else, including nil, lists
// and objects, is stored as its compact JSON text.
//
// Doubles always carry an exponent so Turtle's bare number syntax reads
// them back as xsd:double rather than xsd:decimal or xsd:integer.
func Literal(v any) rdf.Literal {
	switch x := v.(type) {
	case float32:
		return rdf.NewTypedLiteral(strconv.FormatFloat(float64(x), 'E', -1, 32), xsdDouble)
	case float64:
		return rdf.NewTypedLiteral(strconv.FormatFloat(x, 'E', -1, 64), xsdDouble)
	case string, bool, int, int32, int64:
		if lit, err := rdf.NewLiteral(x); err == nil {
			return lit
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprint(v))
	}
	lit, _ := rdf.NewLiteral(string(data))
	return lit
}
