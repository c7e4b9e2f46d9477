package cx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in      string
		want    DataType
		wantErr bool
	}{
		{"", TypeString, false},
		{"string", TypeString, false},
		{"boolean", TypeBoolean, false},
		{"list_of_long", "list_of_long", false},
		{"list_of_double", "list_of_double", false},
		{"float", "", true},
		{"list_of_", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDataType(tt.in)
			if tt.wantErr {
				assert.True(t, IsUnsupportedValue(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		dt      DataType
		value   any
		want    []any
		wantErr bool
	}{
		{"string", TypeString, "Red", []any{"Red"}, false},
		{"string from number", TypeString, int64(4), []any{"4"}, false},
		{"boolean", TypeBoolean, true, []any{true}, false},
		{"boolean from string", TypeBoolean, "false", []any{false}, false},
		{"double from int", TypeDouble, int64(2), []any{2.0}, false},
		{"long", TypeLong, int64(9), []any{int64(9)}, false},
		{"integer from string", TypeInteger, "12", []any{int64(12)}, false},
		{"list of string", "list_of_string", []any{"a", "b"}, []any{"a", "b"}, false},
		{"list of long", "list_of_long", []any{int64(1), int64(2)}, []any{int64(1), int64(2)}, false},
		{"empty list", "list_of_string", []any{}, []any{}, false},
		{"list without array", "list_of_string", "a", nil, true},
		{"scalar with array", TypeString, []any{"a"}, nil, true},
		{"bad integer", TypeInteger, "x", nil, true},
		{"null", TypeString, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.dt, tt.value)
			if tt.wantErr {
				assert.True(t, IsUnsupportedValue(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeValues(t *testing.T) {
	values, err := AttributeValues(NewEntry("po", int64(1), "n", "alias", "v", []any{"x", "y"}, "d", "list_of_string"))
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, values)

	_, err = AttributeValues(NewEntry("po", int64(1), "n", "alias"))
	assert.True(t, IsFormatViolation(err))

	_, err = AttributeValues(NewEntry("n", "x", "v", "1", "d", "decimal"))
	assert.True(t, IsUnsupportedValue(err))
}
