package ast

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Encoder walks an AST rooted at some Node and turns it into plain
// map[string]any / []any values, resolving byte offsets into the
// informational {line,column,offset} position objects spec.md §6.3
// describes. Offset is the load-bearing part; line/column are derived here
// purely for the reader's convenience and are never consulted by convert.
type Encoder struct {
	lineStarts []int
}

// NewEncoder precomputes line-start offsets for source so position lookups
// during the single serialization pass are O(log n).
func NewEncoder(source string) *Encoder {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Encoder{lineStarts: starts}
}

func (e *Encoder) lineCol(offset int) (line, column int) {
	i := sort.SearchInts(e.lineStarts, offset+1) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, offset - e.lineStarts[i] + 1
}

func (e *Encoder) position(offset int) map[string]any {
	line, col := e.lineCol(offset)
	return map[string]any{"line": line, "column": col, "offset": offset}
}

// Value renders n (which may be a nil interface, meaning an absent optional
// child) into the map/slice shape encoding/json will turn into the node's
// JSON object.
func (e *Encoder) Value(n Node) any {
	if n == nil {
		return nil
	}
	m := map[string]any{"node": n.Kind()}
	for k, v := range n.Fields(e) {
		m[k] = v
	}
	if start, end, ok := n.Span(); ok {
		m["start"] = e.position(start)
		m["end"] = e.position(end)
	}
	return m
}

// Values renders a list of nodes. The result is always a non-nil slice so an
// empty list marshals as `[]`, never `null` (spec.md's "empty list default").
func (e *Encoder) Values(ns []Node) []any {
	out := make([]any, 0, len(ns))
	for _, n := range ns {
		out = append(out, e.Value(n))
	}
	return out
}

// ValuesOrNull is Values but preserves a nil input as JSON null, for fields
// that distinguish "absent" from "present but empty".
func (e *Encoder) ValuesOrNull(ns []Node, present bool) any {
	if !present {
		return nil
	}
	return e.Values(ns)
}

// Marshal serializes root (which may be nil) against
// source into compact JSON text, per spec.md §6.3's encoding rules: no HTML
// escaping of '<','>','&', UTF-8 bytes pass through unchanged.
func Marshal(root Node, source string) (string, error) {
	enc := NewEncoder(source)
	value := enc.Value(root)

	var buf bytes.Buffer
	jsonEnc := json.NewEncoder(&buf)
	jsonEnc.SetEscapeHTML(false)
	if err := jsonEnc.Encode(value); err != nil {
		return "", err
	}
	// json.Encoder.Encode appends a trailing newline; the entry points
	// return a bare JSON string.
	out := buf.String()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}
