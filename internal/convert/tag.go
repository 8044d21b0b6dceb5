package convert

import (
	"strings"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
	"github.com/hogql-lang/hogql/internal/literal"
)

// convertHogqlxTagElement converts a JSX-like `<Tag attr=.../>` or
// `<Tag attr=...>children</Tag>` element. Children have no dedicated slot on
// HogQLXTag, so they're folded into a synthetic "children" attribute holding
// an Array — matching the reference visitor's handling of nested tags.
// A text child whose decoded value is whitespace-only and contains a newline
// is dropped rather than kept as a string constant; whitespace between tags
// is elided by the lexer and never becomes a child at all.
func (c *Converter) convertHogqlxTagElement(t *grammar.HogqlxTagElement) (ast.Node, error) {
	switch {
	case t.Closed != nil:
		return c.convertHogqlxClosed(t.Closed)
	case t.Nested != nil:
		return c.convertHogqlxNested(t.Nested)
	}
	return nil, &hqerror.ParsingError{Message: "empty tag element"}
}

func (c *Converter) convertHogqlxClosed(t *grammar.HogqlxClosed) (ast.Node, error) {
	attrs, err := c.convertHogqlxAttrs(t.Attrs)
	if err != nil {
		return nil, err
	}
	return &ast.HogQLXTag{
		SpanInfo: ast.NewSpan(t.Pos.Offset, t.EndPos.Offset, c.internal), TagKind: t.Kind, Attributes: attrs,
	}, nil
}

func (c *Converter) convertHogqlxNested(t *grammar.HogqlxNested) (ast.Node, error) {
	if t.Kind != t.CloseKind {
		return nil, c.wrap(&hqerror.SyntaxError{
			Message: "opening and closing tags must match: <" + t.Kind + "> ... </" + t.CloseKind + ">",
		}, t.Pos.Offset, t.EndPos.Offset)
	}
	attrs, err := c.convertHogqlxAttrs(t.Attrs)
	if err != nil {
		return nil, err
	}
	children, err := c.convertHogqlxChildren(t.Children)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		for _, a := range attrs {
			if attr, ok := a.(*ast.HogQLXAttribute); ok && attr.Name == "children" {
				return nil, c.wrap(&hqerror.SyntaxError{
					Message: "the \"children\" attribute is reserved and cannot be set explicitly alongside child content",
				}, t.Pos.Offset, t.EndPos.Offset)
			}
		}
		attrs = append(attrs, &ast.HogQLXAttribute{
			SpanInfo: ast.NewSpan(0, 0, true), Name: "children",
			Value: &ast.Array{SpanInfo: ast.NewSpan(0, 0, true), Exprs: children},
		})
	}
	return &ast.HogQLXTag{
		SpanInfo: ast.NewSpan(t.Pos.Offset, t.EndPos.Offset, c.internal), TagKind: t.Kind, Attributes: attrs,
	}, nil
}

func (c *Converter) convertHogqlxAttrs(srcs []*grammar.HogqlxAttrSrc) ([]ast.Node, error) {
	attrs := make([]ast.Node, 0, len(srcs))
	for _, a := range srcs {
		var value ast.Node
		switch {
		case a.Expr != nil:
			v, err := c.convertExpr(a.Expr)
			if err != nil {
				return nil, err
			}
			value = v
		case a.Str != nil:
			s, err := literal.ParseStringLiteralText(*a.Str)
			if err != nil {
				return nil, err
			}
			value = &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: s}
		}
		attrs = append(attrs, &ast.HogQLXAttribute{SpanInfo: ast.NewSpan(0, 0, true), Name: a.Name, Value: value})
	}
	return attrs, nil
}

func (c *Converter) convertHogqlxChildren(srcs []*grammar.HogqlxChild) ([]ast.Node, error) {
	children := make([]ast.Node, 0, len(srcs))
	for _, child := range srcs {
		switch {
		case child.Tag != nil:
			n, err := c.convertHogqlxTagElement(child.Tag)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		case child.Text != nil:
			s, err := literal.ParseStringLiteralText(*child.Text)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(s) == "" && strings.Contains(s, "\n") {
				continue
			}
			children = append(children, &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: s})
		case child.Expr != nil:
			n, err := c.convertPlaceholder(child.Expr)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		}
	}
	return children, nil
}
