// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/literal"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/cueutil"
)

// MaxFileSize is the largest file ParseFile accepts. Stock material files
// stay well below a megabyte.
const MaxFileSize int64 = 32 << 20

// Format identifies the dialect a document was parsed from.
type Format int

const (
	// FormatJSON is strict JSON, used by *.materials.json files.
	FormatJSON Format = iota
	// FormatJBeam is the relaxed JSON superset used by *.jbeam files.
	FormatJBeam
)

// String returns the dialect name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJBeam:
		return "jbeam"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath returns FormatJBeam for *.jbeam files and FormatJSON otherwise.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".jbeam") {
		return FormatJBeam
	}
	return FormatJSON
}

// ParseJSON parses strict JSON. path is only used in error messages.
func ParseJSON(path string, data []byte) (*Document, error) {
	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return nil, malformed(path, err)
	}
	return newDocument(path, FormatJSON, expr)
}

// ParseJBeam parses the relaxed part-file dialect. path is only used in error
// messages.
func ParseJBeam(path string, data []byte) (*Document, error) {
	src, err := blankBlockComments(path, data)
	if err != nil {
		return nil, err
	}
	expr, err := parser.ParseExpr(path, src)
	if err != nil {
		return nil, malformed(path, err)
	}
	if err := checkJBeamSyntax(path, expr); err != nil {
		return nil, err
	}
	return newDocument(path, FormatJBeam, expr)
}

// Parse parses data in the given format.
func Parse(path string, format Format, data []byte) (*Document, error) {
	if format == FormatJBeam {
		return ParseJBeam(path, data)
	}
	return ParseJSON(path, data)
}

// ParseFile reads and parses the file at path, picking the dialect from its
// extension.
func ParseFile(path string) (*Document, error) {
	return parseFile(path, MaxFileSize)
}

func parseFile(path string, maxSize int64) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := cueutil.CheckFileSize(data, maxSize, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileTooLarge, err)
	}
	return Parse(path, FormatForPath(path), data)
}

func newDocument(path string, format Format, expr ast.Expr) (*Document, error) {
	v, err := convert(path, expr)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*Object)
	if !ok {
		return nil, &MalformedConfigError{Path: path, Offset: offsetOf(expr), Reason: "top-level value must be an object"}
	}
	return &Document{Path: path, Format: format, Root: root}, nil
}

func malformed(path string, err error) *MalformedConfigError {
	offset, reason := cueutil.Location(err)
	return &MalformedConfigError{Path: path, Offset: offset, Reason: reason}
}

func offsetOf(n ast.Node) int {
	if p := n.Pos(); p.IsValid() {
		return p.Offset()
	}
	return -1
}

func convert(path string, expr ast.Expr) (any, error) {
	switch x := expr.(type) {
	case *ast.StructLit:
		obj := NewObject(len(x.Elts))
		for _, decl := range x.Elts {
			field, ok := decl.(*ast.Field)
			if !ok || field.Constraint != token.ILLEGAL {
				return nil, &MalformedConfigError{Path: path, Offset: offsetOf(decl), Reason: "expected a key/value member"}
			}
			key, err := labelName(field.Label)
			if err != nil {
				return nil, &MalformedConfigError{Path: path, Offset: offsetOf(field.Label), Reason: err.Error()}
			}
			v, err := convert(path, field.Value)
			if err != nil {
				return nil, err
			}
			obj.set(key, v, offsetOf(field))
		}
		return obj, nil

	case *ast.ListLit:
		list := make([]any, 0, len(x.Elts))
		for _, e := range x.Elts {
			v, err := convert(path, e)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case *ast.BasicLit:
		return scalar(path, x, "")

	case *ast.UnaryExpr:
		if lit, ok := x.X.(*ast.BasicLit); ok && x.Op == token.SUB && (lit.Kind == token.INT || lit.Kind == token.FLOAT) {
			return scalar(path, lit, "-")
		}
	}
	return nil, &MalformedConfigError{Path: path, Offset: offsetOf(expr), Reason: "expected a JSON value"}
}

func scalar(path string, lit *ast.BasicLit, sign string) (any, error) {
	switch lit.Kind {
	case token.STRING:
		s, err := literal.Unquote(lit.Value)
		if err != nil {
			return nil, &MalformedConfigError{Path: path, Offset: offsetOf(lit), Reason: err.Error()}
		}
		return s, nil
	case token.INT, token.FLOAT:
		n := sign + lit.Value
		if !json.Valid([]byte(n)) {
			return nil, &MalformedConfigError{Path: path, Offset: offsetOf(lit), Reason: fmt.Sprintf("invalid number %q", n)}
		}
		return Number(n), nil
	case token.TRUE:
		return true, nil
	case token.FALSE:
		return false, nil
	case token.NULL:
		return nil, nil
	}
	return nil, &MalformedConfigError{Path: path, Offset: offsetOf(lit), Reason: fmt.Sprintf("unexpected literal %s", lit.Value)}
}

// checkJBeamSyntax rejects what the CUE parser accepts beyond the part-file
// dialect: label chains (a: b: 1), unquoted keys, attributes, and strings that
// are not JSON strings (single-quoted, raw, or multi-line).
func checkJBeamSyntax(path string, expr ast.Expr) error {
	fail := func(n ast.Node, reason string) error {
		return &MalformedConfigError{Path: path, Offset: offsetOf(n), Reason: reason}
	}
	switch x := expr.(type) {
	case *ast.StructLit:
		if !x.Lbrace.IsValid() {
			return fail(x, "nested members must be written as objects")
		}
		for _, decl := range x.Elts {
			field, ok := decl.(*ast.Field)
			if !ok {
				continue // convert reports it
			}
			if lit, ok := field.Label.(*ast.BasicLit); !ok || !isJSONString(lit) {
				return fail(field.Label, "member keys must be double-quoted strings")
			}
			if len(field.Attrs) > 0 {
				return fail(field.Attrs[0], "attributes are not allowed")
			}
			if err := checkJBeamSyntax(path, field.Value); err != nil {
				return err
			}
		}
	case *ast.ListLit:
		for _, e := range x.Elts {
			if err := checkJBeamSyntax(path, e); err != nil {
				return err
			}
		}
	case *ast.BasicLit:
		if x.Kind == token.STRING && !isJSONString(x) {
			return fail(x, "strings must be double-quoted on a single line")
		}
	}
	return nil
}

func isJSONString(lit *ast.BasicLit) bool {
	return lit.Kind == token.STRING && strings.HasPrefix(lit.Value, `"`) && json.Valid([]byte(lit.Value))
}

func labelName(l ast.Label) (string, error) {
	switch x := l.(type) {
	case *ast.Ident:
		return x.Name, nil
	case *ast.BasicLit:
		if x.Kind == token.STRING {
			return literal.Unquote(x.Value)
		}
	}
	return "", fmt.Errorf("member keys must be strings")
}

// blankBlockComments replaces every /* */ comment with spaces, keeping line
// breaks, so the result has the same byte offsets as data.
func blankBlockComments(path string, data []byte) ([]byte, error) {
	out := []byte(nil)
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' || c == '\n' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			end := strings.Index(string(data[i+2:]), "*/")
			if end < 0 {
				return nil, &MalformedConfigError{Path: path, Offset: i, Reason: "comment not terminated"}
			}
			if out == nil {
				out = append([]byte(nil), data...)
			}
			stop := i + 2 + end + 2
			for j := i; j < stop; j++ {
				if out[j] != '\n' && out[j] != '\r' {
					out[j] = ' '
				}
			}
			i = stop - 1
		}
	}
	if out == nil {
		return data, nil
	}
	return out, nil
}
