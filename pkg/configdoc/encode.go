// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes a document value as compact JSON. Object members keep their
// declaration order and numbers keep their source spelling, so equal trees
// always encode to equal bytes. Values outside the document model are
// encoded with encoding/json.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output with two spaces
// and ends it with a newline.
func MarshalIndent(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		return encodeString(buf, x)
	case Number:
		if !json.Valid([]byte(x)) {
			return fmt.Errorf("invalid number %q", string(x))
		}
		buf.WriteString(string(x))
	case *Object:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, m := range x.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, m.Value); err != nil {
				return fmt.Errorf("%s: %w", m.Key, err)
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode always terminates the value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
