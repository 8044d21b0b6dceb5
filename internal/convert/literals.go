package convert

import (
	"strconv"
	"strings"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
	"github.com/hogql-lang/hogql/internal/literal"
)

func (c *Converter) convertPrimary(p *grammar.Primary) (ast.Node, error) {
	span := ast.NewSpan(p.Pos.Offset, p.EndPos.Offset, c.internal)
	switch {
	case p.Paren != nil:
		return c.convertExpr(p.Paren.Expr)
	case p.Lambda != nil:
		return c.convertLambda(p.Lambda)
	case p.Cast != nil:
		return nil, c.wrap(&hqerror.NotImplementedError{Message: "CAST is not supported"}, p.Cast.Pos.Offset, p.Cast.EndPos.Offset)
	case p.CallSelect != nil:
		return c.convertCallSelect(p.CallSelect)
	case p.FuncCall != nil:
		return c.convertFuncCall(p.FuncCall)
	case p.Case != nil:
		return c.convertCase(p.Case)
	case p.Interval != nil:
		return c.convertInterval(p.Interval)
	case p.Trim != nil:
		return c.convertTrim(p.Trim)
	case p.Tag != nil:
		return c.convertHogqlxTagElement(p.Tag)
	case p.Template != nil:
		return c.convertTemplateStringToken(*p.Template, span)
	case p.Dict != nil:
		return c.convertDict(p.Dict)
	case p.Array != nil:
		return c.convertArray(p.Array)
	case p.Tuple != nil:
		return c.convertTuple(p.Tuple)
	case p.Placeholder != nil:
		return c.convertPlaceholder(p.Placeholder)
	case p.Number != nil:
		return c.convertNumberLit(p.Number)
	case p.Str != nil:
		s, err := literal.ParseStringLiteralText(*p.Str)
		if err != nil {
			return nil, c.wrap(err, p.Pos.Offset, p.EndPos.Offset)
		}
		return &ast.Constant{SpanInfo: span, Value: s}, nil
	case p.Null:
		return &ast.Constant{SpanInfo: span, Value: nil}, nil
	case p.True:
		return &ast.Constant{SpanInfo: span, Value: true}, nil
	case p.False:
		return &ast.Constant{SpanInfo: span, Value: false}, nil
	case p.Inf:
		return &ast.Constant{SpanInfo: span, Value: ast.NumberText("Infinity")}, nil
	case p.Nan:
		return &ast.Constant{SpanInfo: span, Value: ast.NumberText("NaN")}, nil
	case p.Asterisk != nil:
		chain := append(append([]string{}, p.Asterisk.Qualifier...), "*")
		return &ast.Field{SpanInfo: span, Chain: chain}, nil
	case p.Field != nil:
		return c.convertFieldChain(p.Field)
	}
	return nil, &hqerror.ParsingError{Message: "empty primary expression", Start: p.Pos.Offset, End: p.EndPos.Offset}
}

// convertNumberLit parses a numeric literal token into an int64 or float64
// Constant. Non-finite results (overflow to +/-Inf) are tagged via
// ast.NumberText per spec.md §3.
func (c *Converter) convertNumberLit(n *grammar.NumberLit) (ast.Node, error) {
	span := ast.NewSpan(n.Pos.Offset, n.EndPos.Offset, c.internal)
	v, err := numberLitValue(n)
	if err != nil {
		return nil, c.wrap(err, n.Pos.Offset, n.EndPos.Offset)
	}
	return &ast.Constant{SpanInfo: span, Value: v}, nil
}

// decodeIdentPart decodes one FieldChain segment: a bare identifier passes
// through unchanged, a backtick/double-quoted one goes through the literal
// decoder (spec.md §4.4).
func (c *Converter) decodeIdentPart(part *grammar.IdentPart) (string, error) {
	if part.Quoted != "" {
		return literal.ParseStringLiteralText(part.Quoted)
	}
	return part.Bare, nil
}

func (c *Converter) convertFieldChain(f *grammar.FieldChain) (ast.Node, error) {
	span := ast.NewSpan(f.Pos.Offset, f.EndPos.Offset, c.internal)
	chain := make([]string, 0, len(f.Parts))
	for _, part := range f.Parts {
		s, err := c.decodeIdentPart(part)
		if err != nil {
			return nil, c.wrap(err, f.Pos.Offset, f.EndPos.Offset)
		}
		chain = append(chain, s)
	}
	// A single unqualified identifier spelling one of these reserved words
	// is folded into a Constant rather than a Field, matching the reference
	// identifier grammar rule.
	if len(chain) == 1 {
		switch strings.ToLower(chain[0]) {
		case "true":
			return &ast.Constant{SpanInfo: span, Value: true}, nil
		case "false":
			return &ast.Constant{SpanInfo: span, Value: false}, nil
		case "null":
			return &ast.Constant{SpanInfo: span, Value: nil}, nil
		}
	}
	return &ast.Field{SpanInfo: span, Chain: chain}, nil
}

func parseTupleIndex(text string) (int, error) {
	i, err := strconv.Atoi(text)
	if err != nil {
		return 0, &hqerror.SyntaxError{Message: "invalid tuple index: " + text}
	}
	return i, nil
}

func (c *Converter) convertLambda(l *grammar.LambdaExpr) (ast.Node, error) {
	params := l.Params
	if l.OneParam != "" {
		params = []string{l.OneParam}
	}
	body, err := c.convertExpr(l.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{
		SpanInfo: ast.NewSpan(l.Pos.Offset, l.EndPos.Offset, c.internal),
		Args:     params,
		Expr:     body,
	}, nil
}

// convertCallSelect implements ColumnExprCallSelect: a bare identifier
// applied directly to a parenthesized SELECT (spec.md §4.7, this system's
// flagship structural rewrite — see DESIGN.md).
func (c *Converter) convertCallSelect(cs *grammar.CallSelectPrimary) (ast.Node, error) {
	sel, err := c.convertSelectSetStmt(cs.Query)
	if err != nil {
		return nil, err
	}
	return &ast.Call{
		SpanInfo: ast.NewSpan(cs.Pos.Offset, cs.EndPos.Offset, c.internal),
		Name:     cs.Name,
		Args:     []ast.Node{sel},
	}, nil
}

func (c *Converter) convertFuncCall(fc *grammar.FuncCallExpr) (ast.Node, error) {
	name, err := c.convertFieldChain(fc.Name)
	if err != nil {
		return nil, err
	}
	field, ok := name.(*ast.Field)
	if !ok || len(field.Chain) != 1 {
		return nil, c.wrap(
			&hqerror.NotImplementedError{Message: "function calls must use an unqualified name"},
			fc.Pos.Offset, fc.EndPos.Offset,
		)
	}

	span := ast.NewSpan(fc.Pos.Offset, fc.EndPos.Offset, c.internal)
	if fc.Second != nil {
		params, err := c.convertExprList(fc.First.Exprs)
		if err != nil {
			return nil, err
		}
		args, err := c.convertExprList(fc.Second.Exprs)
		if err != nil {
			return nil, err
		}
		return &ast.Call{
			SpanInfo: span, Name: field.Chain[0], Args: args,
			Params: params, HasParams: true,
			Distinct: fc.Second.Distinct, HasDistinct: true,
		}, nil
	}
	args, err := c.convertExprList(fc.First.Exprs)
	if err != nil {
		return nil, err
	}
	return &ast.Call{
		SpanInfo: span, Name: field.Chain[0], Args: args,
		Distinct: fc.First.Distinct, HasDistinct: true,
	}, nil
}

func (c *Converter) convertCase(ce *grammar.CaseExpr) (ast.Node, error) {
	span := ast.NewSpan(ce.Pos.Offset, ce.EndPos.Offset, c.internal)
	var elseNode ast.Node
	var err error
	if ce.Else != nil {
		elseNode, err = c.convertExpr(ce.Else)
		if err != nil {
			return nil, err
		}
	} else {
		elseNode = &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: nil}
	}

	if ce.Value != nil {
		value, err := c.convertExpr(ce.Value)
		if err != nil {
			return nil, err
		}
		conditions := make([]ast.Node, 0, len(ce.Whens))
		results := make([]ast.Node, 0, len(ce.Whens))
		for _, w := range ce.Whens {
			cond, err := c.convertExpr(w.Cond)
			if err != nil {
				return nil, err
			}
			then, err := c.convertExpr(w.Then)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, cond)
			results = append(results, then)
		}
		return &ast.Call{
			SpanInfo: span, Name: "transform",
			Args: []ast.Node{value, &ast.Array{SpanInfo: ast.NewSpan(0, 0, true), Exprs: conditions}, &ast.Array{SpanInfo: ast.NewSpan(0, 0, true), Exprs: results}, elseNode},
		}, nil
	}

	// Valueless CASE: a single WHEN collapses to if(); more than one
	// collapses to multiIf(cond1, then1, cond2, then2, ..., else).
	if len(ce.Whens) == 1 {
		cond, err := c.convertExpr(ce.Whens[0].Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.convertExpr(ce.Whens[0].Then)
		if err != nil {
			return nil, err
		}
		return &ast.Call{SpanInfo: span, Name: "if", Args: []ast.Node{cond, then, elseNode}}, nil
	}
	args := make([]ast.Node, 0, len(ce.Whens)*2+1)
	for _, w := range ce.Whens {
		cond, err := c.convertExpr(w.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.convertExpr(w.Then)
		if err != nil {
			return nil, err
		}
		args = append(args, cond, then)
	}
	args = append(args, elseNode)
	return &ast.Call{SpanInfo: span, Name: "multiIf", Args: args}, nil
}

var intervalUnits = map[string]bool{
	"SECOND": true, "MINUTE": true, "HOUR": true, "DAY": true,
	"WEEK": true, "MONTH": true, "QUARTER": true, "YEAR": true,
}

func (c *Converter) convertInterval(ie *grammar.IntervalExpr) (ast.Node, error) {
	span := ast.NewSpan(ie.Pos.Offset, ie.EndPos.Offset, c.internal)
	if ie.Str != nil {
		text, err := literal.ParseStringLiteralText(*ie.Str)
		if err != nil {
			return nil, c.wrap(err, ie.Pos.Offset, ie.EndPos.Offset)
		}
		fields := strings.Fields(text)
		if len(fields) != 2 || !intervalUnits[strings.ToUpper(fields[1])] {
			return nil, c.wrap(
				&hqerror.SyntaxError{Message: "invalid interval literal: " + text},
				ie.Pos.Offset, ie.EndPos.Offset,
			)
		}
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, c.wrap(&hqerror.SyntaxError{Message: "invalid interval count: " + fields[0]}, ie.Pos.Offset, ie.EndPos.Offset)
		}
		return &ast.Call{
			SpanInfo: span, Name: "toInterval" + strings.ToUpper(fields[1]),
			Args: []ast.Node{&ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: n}},
		}, nil
	}
	value, err := c.convertExpr(ie.Value)
	if err != nil {
		return nil, err
	}
	return &ast.Call{SpanInfo: span, Name: "toInterval" + strings.ToUpper(ie.Unit), Args: []ast.Node{value}}, nil
}

func (c *Converter) convertTrim(te *grammar.TrimExpr) (ast.Node, error) {
	span := ast.NewSpan(te.Pos.Offset, te.EndPos.Offset, c.internal)
	name := "trim"
	switch {
	case te.Leading:
		name = "trimLeft"
	case te.Trailing:
		name = "trimRight"
	}
	expr, err := c.convertExpr(te.Expr)
	if err != nil {
		return nil, err
	}
	source, err := c.convertExpr(te.Source)
	if err != nil {
		return nil, err
	}
	return &ast.Call{SpanInfo: span, Name: name, Args: []ast.Node{source, expr}}, nil
}

func (c *Converter) convertDict(d *grammar.DictExpr) (ast.Node, error) {
	keys := make([]ast.Node, 0, len(d.Entries))
	values := make([]ast.Node, 0, len(d.Entries))
	for _, entry := range d.Entries {
		k, err := c.convertExpr(entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := c.convertExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	return &ast.Dict{SpanInfo: ast.NewSpan(d.Pos.Offset, d.EndPos.Offset, c.internal), Keys: keys, Values: values}, nil
}

func (c *Converter) convertArray(a *grammar.ArrayExpr) (ast.Node, error) {
	exprs, err := c.convertExprList(a.Exprs)
	if err != nil {
		return nil, err
	}
	return &ast.Array{SpanInfo: ast.NewSpan(a.Pos.Offset, a.EndPos.Offset, c.internal), Exprs: exprs}, nil
}

func (c *Converter) convertTuple(t *grammar.TupleExpr) (ast.Node, error) {
	exprs, err := c.convertExprList(t.Exprs)
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{SpanInfo: ast.NewSpan(t.Pos.Offset, t.EndPos.Offset, c.internal), Exprs: exprs}, nil
}

func (c *Converter) convertPlaceholder(p *grammar.Placeholder) (ast.Node, error) {
	expr, err := c.convertExpr(p.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.Placeholder{SpanInfo: ast.NewSpan(p.Pos.Offset, p.EndPos.Offset, c.internal), Expr: expr}, nil
}
