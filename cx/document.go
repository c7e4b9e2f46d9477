// Package cx models CX network documents: an ordered list of aspect
// fragments, each mapping aspect names to ordered lists of entries.
//
// Decoding preserves the order of fragments, of aspect keys inside a
// fragment and of keys inside an entry, so that exports are deterministic
// for a given input.
package cx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is a CX document.
type Document struct {
	Fragments []Fragment
}

// Fragment is one element of the top-level CX array. It usually holds a
// single aspect but may hold several.
type Fragment struct {
	Aspects []Aspect
}

// Aspect is a named list of entries.
type Aspect struct {
	Name    string
	Entries []Entry
}

// Kind returns the aspect's kind.
func (a Aspect) Kind() AspectKind {
	return ParseAspectKind(a.Name)
}

// Aspects flattens the document into (name, entries) pairs in document
// order, visiting every aspect key of every fragment.
func (d Document) Aspects() []Aspect {
	var out []Aspect
	for _, f := range d.Fragments {
		out = append(out, f.Aspects...)
	}
	return out
}

// Append adds a fragment holding a single aspect.
func (d *Document) Append(name string, entries ...Entry) {
	d.Fragments = append(d.Fragments, Fragment{Aspects: []Aspect{{Name: name, Entries: entries}}})
}

// Parse decodes a CX document.
func Parse(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, &FormatError{Index: -1, Reason: "document is not valid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return Document{}, &FormatError{Index: -1, Reason: "document must be a JSON array of aspect fragments"}
	}

	var (
		doc Document
		err error
	)
	position := 0
	root.ForEach(func(_, fragment gjson.Result) bool {
		if !fragment.IsObject() {
			err = &FormatError{Index: -1, Reason: fmt.Sprintf("fragment %d is not a JSON object", position)}
			return false
		}
		var f Fragment
		f, err = parseFragment(fragment)
		if err != nil {
			return false
		}
		doc.Fragments = append(doc.Fragments, f)
		position++
		return true
	})
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Decode reads and parses a CX document.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read cx document: %w", err)
	}
	return Parse(data)
}

func parseFragment(fragment gjson.Result) (Fragment, error) {
	var (
		f   Fragment
		err error
	)
	fragment.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if !value.IsArray() {
			err = &FormatError{Aspect: name, Index: -1, Reason: "aspect value must be an array of entries"}
			return false
		}
		aspect := Aspect{Name: name}
		value.ForEach(func(_, element gjson.Result) bool {
			if !element.IsObject() {
				err = &FormatError{Aspect: name, Index: len(aspect.Entries), Reason: "entry is not a JSON object"}
				return false
			}
			aspect.Entries = append(aspect.Entries, parseEntry(element))
			return true
		})
		if err != nil {
			return false
		}
		f.Aspects = append(f.Aspects, aspect)
		return true
	})
	return f, err
}

func parseEntry(element gjson.Result) Entry {
	var e Entry
	element.ForEach(func(key, value gjson.Result) bool {
		e.Set(key.String(), jsonValue(value))
		return true
	})
	return e
}

// jsonValue converts a gjson result to string, int64, float64, bool, nil,
// []any or map[string]any.
func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return n
			}
		}
		return r.Num
	}

	if r.IsArray() {
		items := make([]any, 0)
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, jsonValue(item))
			return true
		})
		return items
	}

	object := make(map[string]any)
	r.ForEach(func(key, value gjson.Result) bool {
		object[key.String()] = jsonValue(value)
		return true
	})
	return object
}

// MarshalJSON encodes the document with fragment and key order preserved.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, f := range d.Fragments {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, a := range f.Aspects {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(a.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			entries := a.Entries
			if entries == nil {
				entries = []Entry{}
			}
			data, err := json.Marshal(entries)
			if err != nil {
				return nil, fmt.Errorf("encode aspect %s: %w", a.Name, err)
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
