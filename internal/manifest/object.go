// Package manifest reads, merges and writes the JSON files of a generated
// project (package.json, tsconfig.json) without disturbing their key order.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/tailscale/hujson"
)

// Object is a JSON object that remembers the order of its keys.
// Nested objects are held as *orderedmap.OrderedMap and numbers as float64,
// so numeric literals are normalized on output (1.0 becomes 1).
type Object struct {
	m *orderedmap.OrderedMap
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{m: newMap()}
}

func newMap() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return m
}

func (o *Object) ordered() *orderedmap.OrderedMap {
	if o.m == nil {
		o.m = newMap()
	}
	return o.m
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return len(o.m.Keys())
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.m == nil {
		return nil
	}
	keys := o.m.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.m == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present, even with a null value.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// String returns the string stored under key, or "" when the key is
// absent or holds another type.
func (o *Object) String(key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (o *Object) Set(key string, value any) {
	o.ordered().Set(key, adopt(value))
}

// SetDefault stores value under key only if key is absent. It reports
// whether the value was stored.
func (o *Object) SetDefault(key string, value any) bool {
	if o.Has(key) {
		return false
	}
	o.Set(key, value)
	return true
}

// Child returns the object stored under key, creating an empty one when the
// key is absent or null. A value of any other type is an error. The child
// shares storage with o.
func (o *Object) Child(key string) (*Object, error) {
	v, ok := o.Get(key)
	if !ok || v == nil {
		child := newMap()
		o.ordered().Set(key, child)
		return &Object{m: child}, nil
	}
	child, ok := v.(*orderedmap.OrderedMap)
	if !ok {
		return nil, fmt.Errorf("%q is not an object", key)
	}
	return &Object{m: child}, nil
}

// Clone returns a deep copy. Cloning a nil object yields an empty one.
func (o *Object) Clone() *Object {
	if o == nil || o.m == nil {
		return NewObject()
	}
	return &Object{m: cloneMap(o.m)}
}

func cloneMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := newMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out.Set(k, cloneValue(v))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *orderedmap.OrderedMap:
		return cloneMap(t)
	case []any:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = cloneValue(e)
		}
		return arr
	default:
		return v
	}
}

// adopt converts values coming from callers or from the decoder into the
// stored form: nested objects become *orderedmap.OrderedMap with HTML
// escaping off, at any depth.
func adopt(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		return t.ordered()
	case orderedmap.OrderedMap:
		return adoptMap(&t)
	case *orderedmap.OrderedMap:
		return adoptMap(t)
	case []any:
		for i, e := range t {
			t[i] = adopt(e)
		}
		return t
	default:
		return v
	}
}

func adoptMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	m.SetEscapeHTML(false)
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		m.Set(k, adopt(v))
	}
	return m
}

// MarshalJSON encodes the object, keys in order, without HTML escaping.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.ordered().MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	m := newMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	o.m = adoptMap(m)
	return nil
}

// Decode parses data as a JSON object. Comments and trailing commas are
// accepted, since Angular writes a comment header into tsconfig.json; they
// are dropped from the decoded form.
func Decode(data []byte) (*Object, error) {
	std, err := hujson.Standardize(append([]byte(nil), data...))
	if err != nil {
		return nil, err
	}
	obj := NewObject()
	if err := json.Unmarshal(std, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Encode renders obj with 2-space indentation and a single trailing newline.
func Encode(obj *Object) ([]byte, error) {
	compact, err := obj.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
