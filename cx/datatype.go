package cx

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is the attribute data type discriminator carried in the "d" field.
type DataType string

// Scalar data types. Each has a list form prefixed with "list_of_".
const (
	TypeString  DataType = "string"
	TypeBoolean DataType = "boolean"
	TypeDouble  DataType = "double"
	TypeInteger DataType = "integer"
	TypeLong    DataType = "long"
)

const listPrefix = "list_of_"

// ParseDataType validates a discriminator. The empty string means string.
func ParseDataType(d string) (DataType, error) {
	if d == "" {
		return TypeString, nil
	}
	switch DataType(strings.TrimPrefix(d, listPrefix)) {
	case TypeString, TypeBoolean, TypeDouble, TypeInteger, TypeLong:
		return DataType(d), nil
	}
	return "", &UnsupportedValueError{DataType: d}
}

// IsList reports whether the type is a list_of_ form.
func (t DataType) IsList() bool {
	return strings.HasPrefix(string(t), listPrefix)
}

// Element returns the scalar type of a list type, or t itself.
func (t DataType) Element() DataType {
	return DataType(strings.TrimPrefix(string(t), listPrefix))
}

// AttributeValues reads the "d" and "v" fields of an attribute entry and
// returns the coerced value, or one value per element for list types.
func AttributeValues(e Entry) ([]any, error) {
	d, _, err := e.OptionalString("d")
	if err != nil {
		return nil, err
	}
	dt, err := ParseDataType(d)
	if err != nil {
		return nil, err
	}
	v, err := e.Require("v")
	if err != nil {
		return nil, err
	}
	return Coerce(dt, v)
}

// Coerce converts v to the Go representation of dt: string, bool, float64
// or int64. List types require a JSON array and yield one value per element.
func Coerce(dt DataType, v any) ([]any, error) {
	if !dt.IsList() {
		value, err := coerceScalar(dt, v)
		if err != nil {
			return nil, err
		}
		return []any{value}, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, &UnsupportedValueError{DataType: string(dt), Value: v}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		value, err := coerceScalar(dt.Element(), item)
		if err != nil {
			return nil, &UnsupportedValueError{DataType: string(dt), Value: v}
		}
		out = append(out, value)
	}
	return out, nil
}

func coerceScalar(dt DataType, v any) (any, error) {
	unsupported := &UnsupportedValueError{DataType: string(dt), Value: v}
	switch v.(type) {
	case []any, map[string]any, nil:
		return nil, unsupported
	}

	switch dt {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case TypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed, nil
			}
		}
	case TypeDouble:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return parsed, nil
			}
		}
	case TypeInteger, TypeLong:
		if n, ok := asInt(v); ok {
			return n, nil
		}
		if s, ok := v.(string); ok {
			if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
				return parsed, nil
			}
		}
	}
	return nil, unsupported
}
