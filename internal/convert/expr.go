package convert

import (
	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
)

// convertExpr is the entry to the precedence ladder: Or > And > Not >
// Ternary > Compare/Between/IsNull > Nullish(??) > Additive > Multiplicative
// > Unary(negate) > Postfix(access chain) > Primary. Each tier is a
// pass-through (returns its child unchanged) unless an operator at that
// tier is actually present, in which case it builds the corresponding
// ast.Node — this is the "precedence tiers encoded structurally, collapsed
// on the way up" rule spec.md §4.7 describes.
func (c *Converter) convertExpr(e *grammar.Expr) (ast.Node, error) {
	return c.convertOr(e.Or)
}

// convertOrAsExpr is a convenience for call sites that only have access to
// an *grammar.Expr-shaped field deep in a clause (WHERE, HAVING, ...).
func (c *Converter) convertOrAsExpr(e *grammar.Expr) (ast.Node, error) {
	if e == nil {
		return nil, nil
	}
	return c.convertExpr(e)
}

func (c *Converter) convertOr(o *grammar.OrExpr) (ast.Node, error) {
	first, err := c.convertAnd(o.Left)
	if err != nil {
		return nil, err
	}
	if len(o.Rest) == 0 {
		return first, nil
	}
	// Flatten: no direct child of Or is itself an Or (spec.md §4.9).
	exprs := []ast.Node{first}
	if orNode, ok := first.(*ast.Or); ok {
		exprs = orNode.Exprs
	}
	for _, rest := range o.Rest {
		n, err := c.convertAnd(rest)
		if err != nil {
			return nil, err
		}
		if sub, ok := n.(*ast.Or); ok {
			exprs = append(exprs, sub.Exprs...)
		} else {
			exprs = append(exprs, n)
		}
	}
	start, end := nodeSpanRange(exprs)
	return &ast.Or{SpanInfo: ast.NewSpan(start, end, c.internal), Exprs: exprs}, nil
}

func (c *Converter) convertAnd(a *grammar.AndExpr) (ast.Node, error) {
	first, err := c.convertNot(a.Left)
	if err != nil {
		return nil, err
	}
	if len(a.Rest) == 0 {
		return first, nil
	}
	exprs := []ast.Node{first}
	if andNode, ok := first.(*ast.And); ok {
		exprs = andNode.Exprs
	}
	for _, rest := range a.Rest {
		n, err := c.convertNot(rest)
		if err != nil {
			return nil, err
		}
		if sub, ok := n.(*ast.And); ok {
			exprs = append(exprs, sub.Exprs...)
		} else {
			exprs = append(exprs, n)
		}
	}
	start, end := nodeSpanRange(exprs)
	return &ast.And{SpanInfo: ast.NewSpan(start, end, c.internal), Exprs: exprs}, nil
}

func (c *Converter) convertNot(n *grammar.NotExpr) (ast.Node, error) {
	inner, err := c.convertTernary(n.Expr)
	if err != nil {
		return nil, err
	}
	// Each NOT wraps the previous result; an even count cancels out
	// textually but HogQL keeps every occurrence as a distinct Not node
	// (matching the reference's "NOT NOT x" producing nested Not nodes).
	for i := 0; i < n.Nots; i++ {
		inner = &ast.Not{SpanInfo: ast.NewSpan(0, 0, true), Expr: inner}
	}
	return inner, nil
}

func (c *Converter) convertTernary(t *grammar.TernaryExpr) (ast.Node, error) {
	cond, err := c.convertCompare(t.Cond)
	if err != nil {
		return nil, err
	}
	if t.Then == nil {
		return cond, nil
	}
	thenNode, err := c.convertExpr(t.Then)
	if err != nil {
		return nil, err
	}
	elseNode, err := c.convertExpr(t.Else)
	if err != nil {
		return nil, err
	}
	// HogQL has no dedicated Ternary node kind; `a ? b : c` lowers to
	// `if(a, b, c)` the same way the reference's ternary visitor does.
	return &ast.Call{
		SpanInfo: ast.NewSpan(0, 0, true),
		Name:     "if",
		Args:     []ast.Node{cond, thenNode, elseNode},
	}, nil
}

func (c *Converter) convertCompare(ce *grammar.CompareExpr) (ast.Node, error) {
	left, err := c.convertNullish(ce.Left)
	if err != nil {
		return nil, err
	}
	if ce.Tail == nil {
		return left, nil
	}
	switch {
	case ce.Tail.IsNull != nil:
		op := "=="
		if ce.Tail.IsNull.Not {
			op = "!="
		}
		return &ast.CompareOperation{
			SpanInfo: ast.NewSpan(0, 0, true),
			Left:     left,
			Right:    &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: nil},
			Op:       op,
		}, nil
	case ce.Tail.Between != nil:
		b := ce.Tail.Between
		low, err := c.convertNullish(b.Low)
		if err != nil {
			return nil, err
		}
		high, err := c.convertNullish(b.High)
		if err != nil {
			return nil, err
		}
		return &ast.BetweenExpr{
			SpanInfo: ast.NewSpan(0, 0, true),
			Expr:     left, Low: low, High: high, Negated: b.Not,
		}, nil
	case ce.Tail.Compare != nil:
		cp := ce.Tail.Compare
		right, err := c.convertNullish(cp.Right)
		if err != nil {
			return nil, err
		}
		op := compareOpText(cp.Op, cp.Not, cp.Cohort)
		return &ast.CompareOperation{SpanInfo: ast.NewSpan(0, 0, true), Left: left, Right: right, Op: op}, nil
	}
	return left, nil
}

// compareOpText normalizes the raw grammar operator token plus its NOT/
// COHORT modifiers into the op string spec.md's CompareOperation expects.
func compareOpText(op string, not, cohort bool) string {
	switch op {
	case "=":
		op = "=="
	case "<>":
		op = "!="
	}
	lowered := map[string]string{
		"LIKE": "like", "ILIKE": "ilike", "IN": "in",
	}
	if l, ok := lowered[op]; ok {
		op = l
	}
	if cohort && op == "in" {
		op = "in cohort"
	}
	if not {
		switch op {
		case "==":
			return "!="
		case "!=":
			return "=="
		default:
			return "not " + op
		}
	}
	return op
}

func (c *Converter) convertNullish(ne *grammar.NullishExpr) (ast.Node, error) {
	left, err := c.convertAdditive(ne.Left)
	if err != nil {
		return nil, err
	}
	for _, rest := range ne.Rest {
		right, err := c.convertAdditive(rest)
		if err != nil {
			return nil, err
		}
		left = &ast.Call{SpanInfo: ast.NewSpan(0, 0, true), Name: "ifNull", Args: []ast.Node{left, right}}
	}
	return left, nil
}

func (c *Converter) convertAdditive(a *grammar.Additive) (ast.Node, error) {
	left, err := c.convertMultiplicative(a.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range a.Ops {
		right, err := c.convertMultiplicative(op.Right)
		if err != nil {
			return nil, err
		}
		if op.Op == "||" {
			left = concatFlatten(left, right)
			continue
		}
		left = &ast.ArithmeticOperation{SpanInfo: ast.NewSpan(a.Left.Left.Pos.Offset, op.EndPos.Offset, c.internal), Left: left, Right: right, Op: op.Op}
	}
	return left, nil
}

// concatFlatten implements the `||` string-concat flattening rule (spec.md
// §4.9): `a || b || c` becomes one Call{name:"concat", args:[a,b,c]}, not
// nested two-argument calls.
func concatFlatten(left, right ast.Node) ast.Node {
	if call, ok := left.(*ast.Call); ok && call.Name == "concat" {
		call.Args = append(call.Args, right)
		return call
	}
	return &ast.Call{SpanInfo: ast.NewSpan(0, 0, true), Name: "concat", Args: []ast.Node{left, right}}
}

func (c *Converter) convertMultiplicative(m *grammar.Multiplicative) (ast.Node, error) {
	left, err := c.convertUnary(m.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range m.Ops {
		right, err := c.convertUnary(op.Right)
		if err != nil {
			return nil, err
		}
		left = &ast.ArithmeticOperation{SpanInfo: ast.NewSpan(0, 0, true), Left: left, Right: right, Op: op.Op}
	}
	return left, nil
}

func (c *Converter) convertUnary(u *grammar.Unary) (ast.Node, error) {
	inner, err := c.convertPostfix(u.Postfix)
	if err != nil {
		return nil, err
	}
	if !u.Neg {
		return inner, nil
	}
	// `-inf` is its own NumberText constant, not an arithmetic negation of
	// one (spec.md §3/§4.8): +Infinity and -Infinity are distinct literal
	// spellings, not `0 - Infinity`.
	if constVal, ok := inner.(*ast.Constant); ok && constVal.Value == ast.NumberText("Infinity") {
		return &ast.Constant{SpanInfo: ast.NewSpan(u.Pos.Offset, u.EndPos.Offset, c.internal), Value: ast.NumberText("-Infinity")}, nil
	}
	// ColumnExprNegate: `-x` desugars to `0 - x` (spec.md §4.7).
	return &ast.ArithmeticOperation{
		SpanInfo: ast.NewSpan(u.Pos.Offset, u.EndPos.Offset, c.internal),
		Left:     &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: int64(0)},
		Right:    inner,
		Op:       "-",
	}, nil
}

func (c *Converter) convertPostfix(p *grammar.Postfix) (ast.Node, error) {
	node, err := c.convertPrimary(p.Primary)
	if err != nil {
		return nil, err
	}
	for _, suf := range p.Suffixes {
		node, err = c.applyPostfixSuffix(node, suf)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (c *Converter) applyPostfixSuffix(node ast.Node, suf *grammar.PostfixSuffix) (ast.Node, error) {
	switch {
	case suf.Property != nil:
		return &ast.ArrayAccess{
			SpanInfo: ast.NewSpan(0, 0, true),
			Array:    node,
			Property: &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: *suf.Property},
		}, nil
	case suf.TupleIndex != nil:
		idx, err := parseTupleIndex(*suf.TupleIndex)
		if err != nil {
			return nil, err
		}
		return &ast.TupleAccess{SpanInfo: ast.NewSpan(0, 0, true), Tuple: node, Index: idx}, nil
	case suf.NullishProp != nil:
		return &ast.ArrayAccess{
			SpanInfo:   ast.NewSpan(0, 0, true),
			Array:      node,
			Property:   &ast.Constant{SpanInfo: ast.NewSpan(0, 0, true), Value: *suf.NullishProp},
			Nullish:    true,
			HasNullish: true,
		}, nil
	case suf.Index != nil:
		idx, err := c.convertExpr(suf.Index)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAccess{SpanInfo: ast.NewSpan(0, 0, true), Array: node, Property: idx}, nil
	case suf.NullishIdx != nil:
		idx, err := c.convertExpr(suf.NullishIdx)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAccess{
			SpanInfo: ast.NewSpan(0, 0, true), Array: node, Property: idx, Nullish: true, HasNullish: true,
		}, nil
	case suf.Call != nil:
		return c.convertExprCall(node, suf.Call)
	}
	return node, nil
}

func (c *Converter) convertExprCall(callee ast.Node, call *grammar.CallArgs) (ast.Node, error) {
	if call.Select != nil {
		sel, err := c.convertSelectSetStmt(call.Select)
		if err != nil {
			return nil, err
		}
		return &ast.ExprCall{SpanInfo: ast.NewSpan(0, 0, true), Expr: callee, Args: []ast.Node{sel}}, nil
	}
	args, err := c.convertExprList(call.Args)
	if err != nil {
		return nil, err
	}
	return &ast.ExprCall{SpanInfo: ast.NewSpan(0, 0, true), Expr: callee, Args: args}, nil
}

func (c *Converter) convertExprList(exprs []*grammar.Expr) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(exprs))
	for _, e := range exprs {
		n, err := c.convertExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// nodeSpanRange returns the combined span of a flattened operand list: the
// start of the first and the end of the last, for nodes that carry a span.
func nodeSpanRange(nodes []ast.Node) (int, int) {
	if len(nodes) == 0 {
		return 0, 0
	}
	start, _, okStart := nodes[0].Span()
	_, end, okEnd := nodes[len(nodes)-1].Span()
	if !okStart || !okEnd {
		return 0, 0
	}
	return start, end
}
