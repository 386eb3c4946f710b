// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"iter"
	"maps"
	"slices"
	"strconv"
)

type (
	// Number is a numeric literal kept in its source spelling, so "1.50" is
	// written back as "1.50" and not as "1.5".
	Number string

	// Member is one key/value pair of an Object. Offset is the byte offset of
	// the key in the source document, or -1 for members added after parsing.
	Member struct {
		Key    string
		Value  any
		Offset int
	}

	// Object is a JSON object that remembers the declaration order of its
	// members. The zero value is an empty object ready to use.
	Object struct {
		members []Member
		index   map[string]int
	}
)

// Float64 returns the numeric value of n.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// String returns the source spelling of n.
func (n Number) String() string { return string(n) }

// MarshalJSON writes the number in its source spelling.
func (n Number) MarshalJSON() ([]byte, error) { return []byte(n), nil }

// NewObject returns an empty object with room for n members.
func NewObject(n int) *Object {
	return &Object{members: make([]Member, 0, n), index: make(map[string]int, n)}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns the member keys in declaration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in declaration order. Values are not
// copied; use Clone for an independent tree.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return slices.Clone(o.members)
}

// All iterates over the members in declaration order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// GetObject returns the value under key if it is an object.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, _ := o.Get(key)
	obj, ok := v.(*Object)
	return obj, ok
}

// GetString returns the value under key if it is a string.
func (o *Object) GetString(key string) (string, bool) {
	v, _ := o.Get(key)
	s, ok := v.(string)
	return s, ok
}

// GetArray returns the value under key if it is an array.
func (o *Object) GetArray(key string) ([]any, bool) {
	v, _ := o.Get(key)
	a, ok := v.([]any)
	return a, ok
}

// Set stores v under key. An existing member keeps its position; a new one is
// appended.
func (o *Object) Set(key string, v any) {
	o.set(key, v, -1)
}

func (o *Object) set(key string, v any, offset int) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v, Offset: offset})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = slices.Delete(o.members, i, i+1)
	o.reindex()
	return true
}

// Rename changes the key of a member in place. Any other member already named
// newKey is removed. It reports whether oldKey was present.
func (o *Object) Rename(oldKey, newKey string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[oldKey]
	if !ok {
		return false
	}
	if oldKey == newKey {
		return true
	}
	if j, taken := o.index[newKey]; taken {
		o.members = slices.Delete(o.members, j, j+1)
		if j < i {
			i--
		}
	}
	o.members[i].Key = newKey
	o.reindex()
	return true
}

func (o *Object) reindex() {
	clear(o.index)
	for i, m := range o.members {
		o.index[m.Key] = i
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := &Object{members: make([]Member, len(o.members)), index: maps.Clone(o.index)}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	for i, m := range o.members {
		c.members[i] = Member{Key: m.Key, Value: CloneValue(m.Value), Offset: m.Offset}
	}
	return c
}

// MarshalJSON writes the object with its members in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// Plain converts o into map[string]any with float64 numbers, the shape
// expected by generic JSON tooling such as JSONPath evaluators.
func (o *Object) Plain() map[string]any {
	if o == nil {
		return nil
	}
	m := make(map[string]any, len(o.members))
	for _, mem := range o.members {
		m[mem.Key] = plain(mem.Value)
	}
	return m
}

func plain(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Plain()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return string(x)
	default:
		return v
	}
}

// CloneValue returns a deep copy of a document value. Scalars are returned
// as-is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}
