// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Document is a parsed material or part file.
type Document struct {
	// Path is the file the document was read from. It may be empty for
	// documents built in memory.
	Path   string
	Format Format
	Root   *Object
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Path: d.Path, Format: d.Format, Root: d.Root.Clone()}
}

// Entries iterates over every scalar and empty container in the document,
// depth-first in declaration order, keyed by its structural path. A path is a
// dot-separated list of keys with [n] for array indexes, e.g. "a.b[0].c".
// Keys that contain path syntax are written as ["key"].
func (d *Document) Entries() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		walk("", d.Root, yield)
	}
}

func walk(prefix string, v any, yield func(string, any) bool) bool {
	switch x := v.(type) {
	case *Object:
		if x.Len() == 0 && prefix != "" {
			return yield(prefix, x)
		}
		for _, m := range x.members {
			if !walk(joinKey(prefix, m.Key), m.Value, yield) {
				return false
			}
		}
		return true
	case []any:
		if len(x) == 0 {
			return yield(prefix, x)
		}
		for i, e := range x {
			if !walk(prefix+"["+strconv.Itoa(i)+"]", e, yield) {
				return false
			}
		}
		return true
	default:
		return yield(prefix, v)
	}
}

func joinKey(prefix, key string) string {
	if key == "" || strings.ContainsAny(key, `.[]"`) {
		return prefix + "[" + strconv.Quote(key) + "]"
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Lookup resolves a structural path as produced by Entries. The empty path
// resolves to the root object.
func (d *Document) Lookup(path string) (any, error) {
	var cur any = d.Root
	rest := path
	first := true
	for rest != "" {
		var (
			key   string
			index = -1
		)
		switch {
		case strings.HasPrefix(rest, "["):
			end := strings.IndexByte(rest, ']')
			if strings.HasPrefix(rest, `["`) {
				q, err := strconv.QuotedPrefix(rest[1:])
				if err != nil || !strings.HasPrefix(rest[1+len(q):], "]") {
					return nil, fmt.Errorf("%w: %q: bad quoted key", ErrInvalidPath, path)
				}
				key, _ = strconv.Unquote(q)
				rest = rest[len(q)+2:]
				break
			}
			if end < 0 {
				return nil, fmt.Errorf("%w: %q: unterminated index", ErrInvalidPath, path)
			}
			n, err := strconv.Atoi(rest[1:end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %q: bad index %q", ErrInvalidPath, path, rest[1:end])
			}
			index = n
			rest = rest[end+1:]
		default:
			if !first {
				if !strings.HasPrefix(rest, ".") {
					return nil, fmt.Errorf("%w: %q: expected '.'", ErrInvalidPath, path)
				}
				rest = rest[1:]
			}
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return nil, fmt.Errorf("%w: %q: empty key", ErrInvalidPath, path)
			}
			key, rest = rest[:end], rest[end:]
		}
		first = false

		if index >= 0 {
			list, ok := cur.([]any)
			if !ok || index >= len(list) {
				return nil, fmt.Errorf("%w: %q: no element %d", ErrInvalidPath, path, index)
			}
			cur = list[index]
			continue
		}
		obj, ok := cur.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: %q: %q is not inside an object", ErrInvalidPath, path, key)
		}
		v, ok := obj.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q: no member %q", ErrInvalidPath, path, key)
		}
		cur = v
	}
	return cur, nil
}

// Query evaluates a JSONPath expression (e.g. "$..mapTo") against the
// document. Numbers are presented to the evaluator as float64.
func (d *Document) Query(expr string) (any, error) {
	v, err := jsonpath.Get(expr, d.Root.Plain())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidQuery, expr, err)
	}
	return v, nil
}
