package cx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    AspectKind
		known   bool
		handled bool
	}{
		{"nodes", AspectNodes, true, true},
		{"edgeSupports", AspectEdgeSupports, true, true},
		{"numberVerification", AspectNumberVerification, true, true},
		{"cartesianLayout", AspectCartesianLayout, true, false},
		{"@context", AspectContext, true, false},
		{"totallyUnknownAspect123", AspectUnknown, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := ParseAspectKind(tt.name)
			assert.Equal(t, tt.kind, k)
			assert.Equal(t, tt.known, k.Known())
			assert.Equal(t, tt.handled, k.Handled())
			if tt.known {
				assert.Equal(t, tt.name, k.String())
			}
		})
	}
	assert.Len(t, HandledKinds(), 11)
}

func TestBuilder_Document(t *testing.T) {
	b := NewBuilder()
	animal := b.AddNode("Animal", "http://example.org/zoo#Animal")
	dog := b.AddNode("Dog", "")
	edge := b.AddEdge(dog, animal, "subClassOf")
	b.SetNodeAttribute(animal, "label", "An animal")
	b.SetNetworkAttribute("name", "zoo")

	assert.Equal(t, int64(0), animal)
	assert.Equal(t, int64(1), dog)
	assert.Equal(t, int64(0), edge)
	assert.Equal(t, 2, b.NodeCount())
	assert.Equal(t, 1, b.EdgeCount())

	doc := b.Document()
	var names []string
	for _, a := range doc.Aspects() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"numberVerification", "metaData", "networkAttributes", "nodes", "edges", "nodeAttributes"}, names)

	meta := doc.Aspects()[1].Entries
	require.Len(t, meta, 4)
	nodesMeta := meta[1]
	name, err := nodesMeta.RequireString("name")
	require.NoError(t, err)
	assert.Equal(t, "nodes", name)
	count, err := nodesMeta.RequireInt("elementCount")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	counter, err := nodesMeta.RequireInt("idCounter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counter)
	assert.False(t, meta[0].Has("idCounter"))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	reparsed, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, reparsed.Aspects(), 6)

	dogEntry := doc.Aspects()[3].Entries[1]
	assert.False(t, dogEntry.Has("r"))
}
