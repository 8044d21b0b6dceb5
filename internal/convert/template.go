package convert

import (
	"strings"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
	"github.com/hogql-lang/hogql/internal/literal"
)

// templateSegment is one piece of a split f-string: either a literal text
// run or the raw (unparsed) source of a `{...}` placeholder.
type templateSegment struct {
	isExpr bool
	text   string
}

// SplitTemplateSegments splits the interior of an f-string (the text between
// the f'/f" quotes and closing quote, with the quotes already stripped) into
// alternating text and placeholder segments. `\{` escapes a literal brace so
// it doesn't start a placeholder. Braces inside a placeholder are balanced,
// so `{a[{1}]}`-shaped nesting round-trips correctly. Exported so the
// whole-input `parse_full_template_string` entry point (no surrounding
// quote) can reuse the same splitting logic internal/convert uses for the
// in-expression f'...' token.
func SplitTemplateSegments(s string) []templateSegment {
	var segs []templateSegment
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, templateSegment{text: buf.String()})
			buf.Reset()
		}
	}
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '{' {
			buf.WriteString(`\{`)
			i += 2
			continue
		}
		if s[i] != '{' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		flush()
		depth, j := 1, i+1
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		segs = append(segs, templateSegment{isExpr: true, text: s[i+1 : j]})
		i = j + 1
	}
	flush()
	return segs
}

// convertTemplateStringToken converts an in-expression f-string token (the
// raw lexeme, including the leading `f` and surrounding quote) from its
// literal and placeholder parts: no parts give an empty string Constant, a
// single part is returned as is, and two or more become a
// Call{name:"concat", ...} — the same shape the `||` concat-flattening rule
// builds (spec.md §4.9).
func (c *Converter) convertTemplateStringToken(raw string, span ast.SpanInfo) (ast.Node, error) {
	if len(raw) < 3 || raw[0] != 'f' {
		return nil, &hqerror.SyntaxError{Message: "malformed template string token: " + raw}
	}
	inner := raw[2 : len(raw)-1]
	parts, err := c.convertTemplateSegments(SplitTemplateSegments(inner), true)
	if err != nil {
		return nil, err
	}
	start, end, _ := span.Span()
	return buildTemplateNode(parts, start, end, c.internal), nil
}

// ConvertFullTemplateString implements parse_full_template_string: the
// whole raw input is template text with no surrounding quote, so unlike the
// in-expression f'...' token, '' and \' are left alone (escapeQuotes=false).
func (c *Converter) ConvertFullTemplateString(source string) (ast.Node, error) {
	parts, err := c.convertTemplateSegments(SplitTemplateSegments(source), false)
	if err != nil {
		return nil, err
	}
	return buildTemplateNode(parts, 0, len(source), c.internal), nil
}

// buildTemplateNode implements spec.md §4.11's segment-count rule: zero
// segments collapse to an empty Constant, one segment is returned verbatim
// (no wrapping Call), and two or more are joined the same way `||`-chain
// flattening joins operands.
func buildTemplateNode(parts []ast.Node, start, end int, internal bool) ast.Node {
	switch len(parts) {
	case 0:
		return &ast.Constant{SpanInfo: ast.NewSpan(start, end, internal), Value: ""}
	case 1:
		return parts[0]
	default:
		return &ast.Call{SpanInfo: ast.NewSpan(start, end, internal), Name: "concat", Args: parts}
	}
}

func (c *Converter) convertTemplateSegments(segs []templateSegment, escapeQuotes bool) ([]ast.Node, error) {
	parts := make([]ast.Node, 0, len(segs))
	for _, seg := range segs {
		if seg.isExpr {
			expr, err := grammar.ExprParser.ParseString("", seg.text)
			if err != nil {
				return nil, &hqerror.SyntaxError{Message: "invalid template placeholder: " + err.Error()}
			}
			// Placeholder offsets are local to seg.text, not the enclosing
			// source, so they can't be repaired into a meaningful span here:
			// always convert placeholders in internal mode regardless of c's
			// own mode (the same rationale spec.md §4.2 gives for is_internal).
			n, err := NewInternal(seg.text).convertExpr(expr)
			if err != nil {
				return nil, err
			}
			parts = append(parts, n)
			continue
		}
		decoded, err := literal.ParseStringTextCtx(seg.text, escapeQuotes)
		if err != nil {
			return nil, err
		}
		parts = append(parts, &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: decoded})
	}
	return parts, nil
}
