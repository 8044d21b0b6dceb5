package convert

import (
	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
)

// convertJoinExpr threads a FromClause's base table and join tails into the
// JoinExpr linked list (spec.md §4.6): the grammar represents a join chain
// as a base plus a flat slice of tails since participle cannot parse the
// left-recursive form directly, and this function re-introduces the nesting.
func (c *Converter) convertJoinExpr(j *grammar.JoinExpr) (ast.Node, error) {
	depth := 1 + len(j.Tails)
	if depth > maxJoinChainDepth {
		return nil, &hqerror.ParsingError{Message: "join chain exceeds maximum depth"}
	}

	head, err := c.convertJoinExprTable(j.Base)
	if err != nil {
		return nil, err
	}
	cur := head
	for _, tail := range j.Tails {
		next, err := c.convertJoinTail(tail)
		if err != nil {
			return nil, err
		}
		cur.NextJoin = next
		cur = next
	}
	return head, nil
}

func (c *Converter) convertJoinExprTable(jet *grammar.JoinExprTable) (*ast.JoinExpr, error) {
	je := &ast.JoinExpr{SpanInfo: ast.NewSpan(jet.Pos.Offset, jet.EndPos.Offset, c.internal)}
	switch {
	case jet.Paren != nil:
		inner, err := c.convertJoinExpr(jet.Paren)
		if err != nil {
			return nil, err
		}
		je.Table = inner
	case jet.Table != nil:
		table, alias, hasAlias, err := c.convertTableExpr(jet.Table)
		if err != nil {
			return nil, err
		}
		je.Table, je.Alias, je.HasAlias = table, alias, hasAlias
	default:
		return nil, &hqerror.ParsingError{Message: "empty join table"}
	}

	if jet.Final {
		je.TableFinal, je.HasTableFinal = true, true
	}
	if jet.Sample != nil {
		sample, err := c.convertSampleClause(jet.Sample)
		if err != nil {
			return nil, err
		}
		je.Sample = sample
	}
	return je, nil
}

func (c *Converter) convertTableExpr(t *grammar.TableExpr) (node ast.Node, alias string, hasAlias bool, err error) {
	switch {
	case t.Subquery != nil:
		node, err = c.convertSelectSetStmt(t.Subquery)
	case t.Func != nil:
		args, argErr := c.convertExprList(t.Func.Args)
		if argErr != nil {
			err = argErr
			break
		}
		node = &ast.Call{
			SpanInfo: ast.NewSpan(t.Func.Pos.Offset, t.Func.EndPos.Offset, c.internal),
			Name:     t.Func.Name, Args: args,
		}
	case t.Ident != nil:
		node = &ast.Field{SpanInfo: ast.NewSpan(0, 0, true), Chain: t.Ident.Parts}
	default:
		err = &hqerror.ParsingError{Message: "empty table expression"}
	}
	if err != nil {
		return nil, "", false, err
	}
	return node, t.Alias, t.Alias != "", nil
}

func (c *Converter) convertJoinTail(tail *grammar.JoinTail) (*ast.JoinExpr, error) {
	switch {
	case tail.Cross != nil:
		je, err := c.convertJoinExprTable(tail.Cross.Table)
		if err != nil {
			return nil, err
		}
		je.JoinType, je.HasJoinType = "CROSS JOIN", true
		return je, nil
	case tail.Op != nil:
		je, err := c.convertJoinExprTable(tail.Op.Table)
		if err != nil {
			return nil, err
		}
		je.JoinType, je.HasJoinType = joinOpText(tail.Op), true
		constraint, err := c.convertJoinConstraint(tail.Op.Constraint)
		if err != nil {
			return nil, err
		}
		je.Constraint = constraint
		return je, nil
	case tail.Plain != nil:
		je, err := c.convertJoinExprTable(tail.Plain.Table)
		if err != nil {
			return nil, err
		}
		je.JoinType, je.HasJoinType = "JOIN", true
		constraint, err := c.convertJoinConstraint(tail.Plain.Constraint)
		if err != nil {
			return nil, err
		}
		je.Constraint = constraint
		return je, nil
	}
	return nil, &hqerror.ParsingError{Message: "empty join tail"}
}

func joinOpText(op *grammar.OpJoinTail) string {
	var words []string
	switch {
	case op.Inner != nil:
		i := op.Inner
		if i.All {
			words = append(words, "ALL")
		}
		if i.Any {
			words = append(words, "ANY")
		}
		if i.Asof {
			words = append(words, "ASOF")
		}
		words = append(words, "INNER")
	case op.LeftRight != nil:
		lr := op.LeftRight
		if lr.Left {
			words = append(words, "LEFT")
		} else {
			words = append(words, "RIGHT")
		}
		if lr.Outer {
			words = append(words, "OUTER")
		}
		if lr.Semi {
			words = append(words, "SEMI")
		}
		if lr.All {
			words = append(words, "ALL")
		}
		if lr.Anti {
			words = append(words, "ANTI")
		}
		if lr.Any {
			words = append(words, "ANY")
		}
		if lr.Asof {
			words = append(words, "ASOF")
		}
	case op.Full != nil:
		f := op.Full
		words = append(words, "FULL")
		if f.Outer {
			words = append(words, "OUTER")
		}
		if f.Any {
			words = append(words, "ANY")
		}
		if f.All {
			words = append(words, "ALL")
		}
	}
	words = append(words, "JOIN")
	text := words[0]
	for _, w := range words[1:] {
		text += " " + w
	}
	return text
}

func (c *Converter) convertJoinConstraint(jc *grammar.JoinConstraint) (ast.Node, error) {
	span := ast.NewSpan(jc.Pos.Offset, jc.EndPos.Offset, c.internal)
	if jc.On != nil {
		expr, err := c.convertExpr(jc.On)
		if err != nil {
			return nil, err
		}
		return &ast.JoinConstraint{SpanInfo: span, Expr: expr, ConstraintType: "ON"}, nil
	}
	exprs, err := c.convertExprList(jc.Using)
	if err != nil {
		return nil, err
	}
	var expr ast.Node
	if len(exprs) == 1 {
		expr = exprs[0]
	} else {
		expr = &ast.Tuple{SpanInfo: ast.NewSpan(0, 0, true), Exprs: exprs}
	}
	return &ast.JoinConstraint{SpanInfo: span, Expr: expr, ConstraintType: "USING"}, nil
}

func (c *Converter) convertSampleClause(s *grammar.SampleClause) (ast.Node, error) {
	value, err := c.convertRatioExpr(s.Value)
	if err != nil {
		return nil, err
	}
	sample := &ast.SampleExpr{SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal), SampleValue: value}
	if s.Offset != nil {
		offset, err := c.convertRatioExpr(s.Offset)
		if err != nil {
			return nil, err
		}
		sample.OffsetValue = offset
	}
	return sample, nil
}

func (c *Converter) convertRatioExpr(r *grammar.RatioExpr) (ast.Node, error) {
	if r.Placeholder != nil {
		return c.convertPlaceholder(r.Placeholder)
	}
	left, err := c.convertNumberLit(r.Left)
	if err != nil {
		return nil, err
	}
	if r.Right == nil {
		return left, nil
	}
	right, err := c.convertNumberLit(r.Right)
	if err != nil {
		return nil, err
	}
	return &ast.RatioExpr{SpanInfo: ast.NewSpan(r.Pos.Offset, r.EndPos.Offset, c.internal), Left: left, Right: right}, nil
}
