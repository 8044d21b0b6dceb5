package convert

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
)

func (c *Converter) convertWindowExpr(w *grammar.WindowExpr) (ast.Node, error) {
	we := &ast.WindowExpr{SpanInfo: ast.NewSpan(w.Pos.Offset, w.EndPos.Offset, c.internal)}

	if len(w.Partition) > 0 {
		exprs, err := c.convertExprList(w.Partition)
		if err != nil {
			return nil, err
		}
		we.PartitionBy, we.HasPartitionBy = exprs, true
	}
	if len(w.Order) > 0 {
		orderNodes := make([]ast.Node, 0, len(w.Order))
		for _, o := range w.Order {
			n, err := c.convertOrderExpr(o)
			if err != nil {
				return nil, err
			}
			orderNodes = append(orderNodes, n)
		}
		we.OrderBy, we.HasOrderBy = orderNodes, true
	}
	if w.Frame != nil {
		method := "ROWS"
		if w.Frame.Range {
			method = "RANGE"
		}
		we.FrameMethod, we.HasFrameMethod = method, true

		if w.Frame.Only != nil {
			start, err := c.convertWinFrameBound(w.Frame.Only)
			if err != nil {
				return nil, err
			}
			we.FrameStart = start
		} else {
			start, err := c.convertWinFrameBound(w.Frame.Start)
			if err != nil {
				return nil, err
			}
			end, err := c.convertWinFrameBound(w.Frame.End)
			if err != nil {
				return nil, err
			}
			we.FrameStart, we.FrameEnd = start, end
		}
	}
	return we, nil
}

func (c *Converter) convertWinFrameBound(b *grammar.WinFrameBound) (ast.Node, error) {
	var frameType string
	switch {
	case b.Following:
		frameType = "FOLLOWING"
	case b.Preceding:
		frameType = "PRECEDING"
	case b.Current:
		frameType = "CURRENT ROW"
	default:
		return nil, c.wrap(&hqerror.ParsingError{Message: "malformed window frame bound"}, b.Pos.Offset, b.EndPos.Offset)
	}

	var value any
	if b.Value != nil {
		v, err := numberLitValue(b.Value)
		if err != nil {
			return nil, c.wrap(err, b.Pos.Offset, b.EndPos.Offset)
		}
		value = v
	}
	return &ast.WindowFrameExpr{
		SpanInfo: ast.NewSpan(b.Pos.Offset, b.EndPos.Offset, c.internal), FrameType: frameType, FrameValue: value,
	}, nil
}

// numberLitValue parses a NumberLit token into a bare int64, float64, or
// (on overflow) an ast.NumberText("Infinity"/"-Infinity") sentinel, shared by
// convertNumberLit (which wraps the result in a Constant) and window-frame
// bound conversion (which stores the raw value).
func numberLitValue(n *grammar.NumberLit) (any, error) {
	if !strings.ContainsAny(n.Text, ".eE") {
		if i, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			if f > 0 {
				return ast.NumberText("Infinity"), nil
			}
			return ast.NumberText("-Infinity"), nil
		}
		return nil, &hqerror.SyntaxError{Message: "invalid numeric literal: " + n.Text}
	}
	return f, nil
}
