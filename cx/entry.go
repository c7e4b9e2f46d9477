package cx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Entry is one element of an aspect: an ordered mapping from keys to JSON
// values. The zero value is an empty entry ready to use.
type Entry struct {
	keys   []string
	values map[string]any
}

// NewEntry builds an entry from alternating key/value arguments.
// It panics on an odd argument count or a non-string key.
func NewEntry(kv ...any) Entry {
	if len(kv)%2 != 0 {
		panic("cx.NewEntry: odd number of arguments")
	}
	var e Entry
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("cx.NewEntry: key %v is not a string", kv[i]))
		}
		e.Set(key, kv[i+1])
	}
	return e
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position.
func (e *Entry) Set(key string, value any) {
	if e.values == nil {
		e.values = make(map[string]any)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Keys returns the entry's keys in insertion order.
func (e Entry) Keys() []string {
	return e.keys
}

// Len returns the number of keys.
func (e Entry) Len() int {
	return len(e.keys)
}

// Get returns the raw value stored under key.
func (e Entry) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Has reports whether key is present with a non-null value.
func (e Entry) Has(key string) bool {
	v, ok := e.values[key]
	return ok && v != nil
}

// Require returns the value under key or a FormatError if it is absent or null.
func (e Entry) Require(key string) (any, error) {
	v, ok := e.values[key]
	if !ok || v == nil {
		return nil, missing(key)
	}
	return v, nil
}

// RequireInt returns the integer under key.
func (e Entry) RequireInt(key string) (int64, error) {
	v, err := e.Require(key)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, malformed(key, fmt.Sprintf("expected integer, got %T", v))
	}
	return n, nil
}

// OptionalInt returns the integer under key. The boolean is false when the
// key is absent or null.
func (e Entry) OptionalInt(key string) (int64, bool, error) {
	if !e.Has(key) {
		return 0, false, nil
	}
	n, err := e.RequireInt(key)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// RequireString returns the string under key.
func (e Entry) RequireString(key string) (string, error) {
	v, err := e.Require(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(key, fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

// OptionalString returns the string under key. The boolean is false when
// the key is absent or null.
func (e Entry) OptionalString(key string) (string, bool, error) {
	if !e.Has(key) {
		return "", false, nil
	}
	s, err := e.RequireString(key)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// RequireIntList returns the integers under key. A single integer is
// accepted as a one-element list.
func (e Entry) RequireIntList(key string) ([]int64, error) {
	v, err := e.Require(key)
	if err != nil {
		return nil, err
	}
	if n, ok := asInt(v); ok {
		return []int64{n}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, malformed(key, fmt.Sprintf("expected integer list, got %T", v))
	}
	out := make([]int64, 0, len(items))
	for i, item := range items {
		n, ok := asInt(item)
		if !ok {
			return nil, malformed(key, fmt.Sprintf("element %d: expected integer, got %T", i, item))
		}
		out = append(out, n)
	}
	return out, nil
}

// MarshalJSON encodes the entry with key order preserved.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode key %s: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return int64(n), true
		}
	}
	return 0, false
}

func missing(key string) *FormatError {
	return &FormatError{Index: -1, Field: key, Reason: "required field is missing"}
}

func malformed(key, reason string) *FormatError {
	return &FormatError{Index: -1, Field: key, Reason: reason}
}
