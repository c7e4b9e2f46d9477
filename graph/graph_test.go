package graph

import (
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_SetSemantics(t *testing.T) {
	g := New()
	s := IRI("urn:cx:node:0")
	p := IRI("http://ndexbio.org/rdfs#has_id")

	assert.True(t, g.Add(s, p, Literal(int64(1))))
	assert.False(t, g.Add(s, p, Literal(int64(1))))
	assert.True(t, g.Add(s, p, Literal("1")), "string and integer literals differ")
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Contains(s, p, Literal(int64(1))))
	assert.False(t, g.Contains(s, p, Literal(int64(2))))
}

func TestGraph_Match(t *testing.T) {
	g := New()
	a := IRI("urn:a")
	b := IRI("urn:b")
	knows := IRI("urn:knows")
	name := IRI("urn:name")

	g.Add(a, knows, b)
	g.Add(b, knows, a)
	g.Add(a, name, Literal("A"))

	assert.Len(t, g.Match(nil, nil, nil), 3)
	assert.Len(t, g.Match(a, nil, nil), 2)
	assert.Len(t, g.Match(nil, knows, nil), 2)
	assert.Len(t, g.Match(nil, nil, a), 1)

	objects := g.Objects(a, name)
	require.Len(t, objects, 1)
	assert.Equal(t, "A", objects[0].String())
}

func TestGraph_Grouped(t *testing.T) {
	g := New()
	a := IRI("urn:a")
	b := IRI("urn:b")
	p := IRI("urn:p")

	g.Add(a, p, Literal(int64(1)))
	g.Add(b, p, Literal(int64(2)))
	g.Add(a, p, Literal(int64(3)))

	grouped := g.Grouped()
	require.Len(t, grouped, 3)
	assert.True(t, SameTerm(a, grouped[0].Subj))
	assert.True(t, SameTerm(a, grouped[1].Subj))
	assert.True(t, SameTerm(b, grouped[2].Subj))
	assert.Equal(t, "3", grouped[1].Obj.String())
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "Red", "Red"},
		{"integer", int64(42), "42"},
		{"boolean", true, "true"},
		{"double", 1.5, "1.5E+00"},
		{"whole double", 3.0, "3E+00"},
		{"list", []any{int64(1), "a"}, `[1,"a"]`},
		{"object", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"null", nil, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.value).String())
		})
	}

	assert.True(t, strings.HasSuffix(Literal(int64(1)).DataType.String(), "#integer"))
	assert.True(t, strings.HasSuffix(Literal([]any{}).DataType.String(), "#string"))
	assert.True(t, strings.HasSuffix(Literal(0.5).DataType.String(), "#double"))
}

func TestSameTerm(t *testing.T) {
	assert.True(t, SameTerm(IRI("urn:x"), IRI("urn:x")))
	assert.False(t, SameTerm(IRI("urn:x"), Literal("urn:x")))
	assert.False(t, SameTerm(IRI("urn:x"), nil))
	var nilTerm rdf.Term
	assert.True(t, SameTerm(nilTerm, nil))
}

func TestMinters(t *testing.T) {
	seq := HandlesSequential.NewMinter()
	assert.Equal(t, "urn:cx:node:0", seq.Mint("node").String())
	assert.Equal(t, "urn:cx:node:1", seq.Mint("node").String())
	assert.Equal(t, "urn:cx:edge:0", seq.Mint("edge").String())

	u := HandlesUUID.NewMinter()
	first := u.Mint("node").String()
	assert.True(t, strings.HasPrefix(first, "urn:uuid:"))
	assert.NotEqual(t, first, u.Mint("node").String())

	h, err := ParseHandles("")
	require.NoError(t, err)
	assert.Equal(t, HandlesUUID, h)
	_, err = ParseHandles("random")
	assert.Error(t, err)
}
