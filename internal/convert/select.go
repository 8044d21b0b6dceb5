package convert

import (
	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
)

// convertSelectSetStmt implements the single-element set-query folding rule
// (spec.md §4.5): a SelectSetStmt with no UNION/INTERSECT/EXCEPT tail folds
// directly into its single child rather than being wrapped in a
// SelectSetQuery of one element.
func (c *Converter) convertSelectSetStmt(s *grammar.SelectSetStmt) (ast.Node, error) {
	initial, err := c.convertSelectStmtWithParens(s.Initial)
	if err != nil {
		return nil, err
	}
	if len(s.Subsequent) == 0 {
		return initial, nil
	}
	subsequent := make([]ast.Node, 0, len(s.Subsequent))
	for _, sub := range s.Subsequent {
		node, err := c.convertSelectStmtWithParens(sub.Select)
		if err != nil {
			return nil, err
		}
		op := setOperatorText(sub)
		subsequent = append(subsequent, &ast.SelectSetNode{
			SpanInfo:    ast.NewSpan(0, 0, true),
			SelectQuery: node,
			SetOperator: op,
		})
	}
	return &ast.SelectSetQuery{
		SpanInfo:   ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Initial:    initial,
		Subsequent: subsequent,
	}, nil
}

func setOperatorText(sub *grammar.SubsequentSelectSetClause) string {
	switch {
	case sub.UnionAll:
		return "UNION ALL"
	case sub.UnionDistinct:
		return "UNION DISTINCT"
	case sub.IntersectDistinct:
		return "INTERSECT DISTINCT"
	case sub.Intersect:
		return "INTERSECT"
	case sub.Except:
		return "EXCEPT"
	}
	return "UNION ALL"
}

func (c *Converter) convertSelectStmtWithParens(s *grammar.SelectStmtWithParens) (ast.Node, error) {
	switch {
	case s.Paren != nil:
		return c.convertSelectSetStmt(s.Paren)
	case s.Placeholder != nil:
		return c.convertPlaceholder(s.Placeholder)
	case s.Select != nil:
		return c.convertSelectStmt(s.Select)
	}
	return nil, &hqerror.ParsingError{Message: "empty select-with-parens"}
}

func (c *Converter) convertSelectStmt(s *grammar.SelectStmt) (ast.Node, error) {
	q := &ast.SelectQuery{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Distinct: s.Distinct,
	}

	if s.With != nil {
		ctes := make(map[string]*ast.CTE, len(s.With.Exprs))
		order := make([]string, 0, len(s.With.Exprs))
		for _, w := range s.With.Exprs {
			cte, err := c.convertWithExpr(w)
			if err != nil {
				return nil, err
			}
			if _, dup := ctes[cte.Name]; !dup {
				order = append(order, cte.Name)
			}
			ctes[cte.Name] = cte
		}
		q.CTEs, q.CTEOrder, q.HasCTEs = ctes, order, true
	}

	cols, err := c.convertExprList(s.Columns)
	if err != nil {
		return nil, err
	}
	q.Select = cols

	if s.From != nil {
		join, err := c.convertJoinExpr(s.From.Join)
		if err != nil {
			return nil, err
		}
		q.SelectFrom = join
	}

	if s.ArrayJoin != nil {
		if s.From == nil {
			return nil, c.wrap(&hqerror.SyntaxError{
				Message: "Using ARRAY JOIN without a FROM clause is not permitted",
			}, s.Pos.Offset, s.EndPos.Offset)
		}
		op := "ARRAY JOIN"
		switch {
		case s.ArrayJoin.Left:
			op = "LEFT ARRAY JOIN"
		case s.ArrayJoin.Inner:
			op = "INNER ARRAY JOIN"
		}
		exprs, err := c.convertExprList(s.ArrayJoin.Exprs)
		if err != nil {
			return nil, err
		}
		q.ArrayJoinOp, q.HasArrayJoinOp, q.ArrayJoinList = op, true, exprs
	}

	if s.Prewhere != nil {
		n, err := c.convertExpr(s.Prewhere)
		if err != nil {
			return nil, err
		}
		q.Prewhere = n
	}
	if s.Where != nil {
		n, err := c.convertExpr(s.Where)
		if err != nil {
			return nil, err
		}
		q.Where = n
	}
	if len(s.GroupBy) > 0 {
		n, err := c.convertExprList(s.GroupBy)
		if err != nil {
			return nil, err
		}
		q.GroupBy, q.HasGroupBy = n, true
	}
	if s.Having != nil {
		n, err := c.convertExpr(s.Having)
		if err != nil {
			return nil, err
		}
		q.Having = n
	}
	if len(s.Window) > 0 {
		windows := make(map[string]ast.Node, len(s.Window))
		for _, w := range s.Window {
			win, err := c.convertWindowExpr(w.Expr)
			if err != nil {
				return nil, err
			}
			windows[w.Name] = win
		}
		q.WindowExprs, q.HasWindowExprs = windows, true
	}
	if len(s.OrderBy) > 0 {
		orderNodes := make([]ast.Node, 0, len(s.OrderBy))
		for _, o := range s.OrderBy {
			n, err := c.convertOrderExpr(o)
			if err != nil {
				return nil, err
			}
			orderNodes = append(orderNodes, n)
		}
		q.OrderBy, q.HasOrderBy = orderNodes, true
	}

	if s.LimitBy != nil {
		n, err := c.convertLimitByClause(s.LimitBy)
		if err != nil {
			return nil, err
		}
		q.LimitBy = n
	}
	if s.LimitOffset != nil {
		lim, err := c.convertExpr(s.LimitOffset.Limit)
		if err != nil {
			return nil, err
		}
		q.Limit = lim
		q.LimitWithTies = s.LimitOffset.WithTies
		switch {
		case s.LimitOffset.CommaOff != nil:
			off, err := c.convertExpr(s.LimitOffset.CommaOff)
			if err != nil {
				return nil, err
			}
			// "LIMIT a, b" is MySQL-style: a is the offset, b is the limit.
			q.Limit, q.Offset = off, lim
		case s.LimitOffset.OffsetKw != nil:
			off, err := c.convertExpr(s.LimitOffset.OffsetKw)
			if err != nil {
				return nil, err
			}
			q.Offset = off
		}
	}
	if s.OffsetOnly != nil {
		off, err := c.convertExpr(s.OffsetOnly)
		if err != nil {
			return nil, err
		}
		q.Offset = off
	}

	if s.Top != nil {
		return nil, c.wrap(&hqerror.NotImplementedError{Message: "TOP is not supported"}, s.Pos.Offset, s.EndPos.Offset)
	}
	if s.Settings != nil {
		return nil, c.wrap(&hqerror.NotImplementedError{Message: "SETTINGS is not supported"}, s.Pos.Offset, s.EndPos.Offset)
	}

	return q, nil
}

func (c *Converter) convertWithExpr(w *grammar.WithExpr) (*ast.CTE, error) {
	switch {
	case w.Subquery != nil:
		query, err := c.convertSelectSetStmt(w.Subquery.Query)
		if err != nil {
			return nil, err
		}
		return &ast.CTE{
			SpanInfo: ast.NewSpan(w.Subquery.Pos.Offset, w.Subquery.EndPos.Offset, c.internal),
			Name:     w.Subquery.Name, Expr: query, CTEType: "subquery",
		}, nil
	case w.Column != nil:
		expr, err := c.convertExpr(w.Column.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.CTE{
			SpanInfo: ast.NewSpan(w.Column.Pos.Offset, w.Column.EndPos.Offset, c.internal),
			Name:     w.Column.Name, Expr: expr, CTEType: "column",
		}, nil
	}
	return nil, &hqerror.ParsingError{Message: "empty WITH expression"}
}

func (c *Converter) convertOrderExpr(o *grammar.OrderExpr) (*ast.OrderExpr, error) {
	expr, err := c.convertExpr(o.Expr)
	if err != nil {
		return nil, err
	}
	order := "ASC"
	if o.Desc {
		order = "DESC"
	}
	return &ast.OrderExpr{SpanInfo: ast.NewSpan(o.Pos.Offset, o.EndPos.Offset, c.internal), Expr: expr, Order: order}, nil
}

func (c *Converter) convertLimitByClause(l *grammar.LimitByClause) (ast.Node, error) {
	n, err := c.convertNumberLit(l.N)
	if err != nil {
		return nil, err
	}
	var offset ast.Node
	if l.Offset != nil {
		offset, err = c.convertNumberLit(l.Offset)
		if err != nil {
			return nil, err
		}
		n, offset = offset, n // "LIMIT a, b BY ..." => offset=a, n=b
	}
	exprs, err := c.convertExprList(l.Exprs)
	if err != nil {
		return nil, err
	}
	return &ast.LimitByExpr{
		SpanInfo: ast.NewSpan(l.Pos.Offset, l.EndPos.Offset, c.internal),
		N:        n, OffsetValue: offset, Exprs: exprs,
	}, nil
}
