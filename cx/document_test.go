package cx

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesOrder(t *testing.T) {
	input := `[
		{"nodes": [{"@id": 2, "n": "B"}, {"@id": 1, "n": "A"}]},
		{"edges": [{"@id": 10, "s": 1, "t": 2, "i": "increases"}], "nodeAttributes": [{"po": 1, "n": "Color", "v": "Red"}]}
	]`

	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Fragments, 2)

	aspects := doc.Aspects()
	require.Len(t, aspects, 3)
	assert.Equal(t, "nodes", aspects[0].Name)
	assert.Equal(t, "edges", aspects[1].Name)
	assert.Equal(t, "nodeAttributes", aspects[2].Name)

	first, err := aspects[0].Entries[0].RequireInt("@id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), first)

	assert.Equal(t, []string{"@id", "s", "t", "i"}, aspects[1].Entries[0].Keys())
}

func TestParse_ValueTypes(t *testing.T) {
	doc, err := Parse([]byte(`[{"x": [{"i": 7, "f": 1.5, "e": 1e3, "s": "str", "b": true, "z": null, "l": [1, "a"], "o": {"k": 1}}]}]`))
	require.NoError(t, err)

	e := doc.Aspects()[0].Entries[0]
	tests := []struct {
		key  string
		want any
	}{
		{"i", int64(7)},
		{"f", 1.5},
		{"e", 1000.0},
		{"s", "str"},
		{"b", true},
		{"z", nil},
		{"l", []any{int64(1), "a"}},
		{"o", map[string]any{"k": int64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := e.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FormatViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", `[{"nodes": [`},
		{"not an array", `{"nodes": []}`},
		{"fragment not object", `[1]`},
		{"aspect not array", `[{"nodes": {"@id": 1}}]`},
		{"entry not object", `[{"nodes": [1]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, IsFormatViolation(err), "got %v", err)
		})
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"nodes": []}]`))
	require.NoError(t, err)
	require.Len(t, doc.Aspects(), 1)
	assert.Empty(t, doc.Aspects()[0].Entries)
}

func TestDocument_MarshalJSON(t *testing.T) {
	input := `[{"nodes":[{"@id":1,"n":"A"}]},{"edges":[{"@id":0,"s":1,"t":1,"i":"self"}],"zeta":[]}]`

	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))

	var again Document
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, doc.Aspects(), again.Aspects())
}

func TestAspect_Kind(t *testing.T) {
	doc, err := Parse([]byte(`[{"nodes": []}, {"totallyUnknownAspect123": [{}]}]`))
	require.NoError(t, err)

	aspects := doc.Aspects()
	assert.Equal(t, AspectNodes, aspects[0].Kind())
	assert.Equal(t, AspectUnknown, aspects[1].Kind())
	assert.Equal(t, 0, aspects[1].Entries[0].Len())
}
