// Package driver wires internal/grammar's package-level parsers to
// internal/convert and serializes the result, implementing the five parse
// operations of spec.md §6 plus the parse_string_literal_text helper. Each
// call builds a fresh Converter and returns to completion: no parser state
// survives across calls (spec.md §5).
package driver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/convert"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
	"github.com/hogql-lang/hogql/internal/literal"
)

// MaxInputBytes bounds every entry point below (spec.md §6.1: "implementations
// must accept at least 64 KiB"). cmd/hogqlserver and cmd/hogqlfmt may raise it
// from internal/config; internal/convert and the grammar parsers themselves
// have no notion of this limit, so it is enforced once, here, at the single
// choke point every entry point passes through.
var MaxInputBytes = 64 * 1024

// converterFor picks the real or internal Converter per spec.md §4.2's
// is_internal parameter.
func converterFor(source string, isInternal bool) *convert.Converter {
	if isInternal {
		return convert.NewInternal(source)
	}
	return convert.New(source)
}

// translateParseError turns a participle grammar-mismatch error into a
// SyntaxError carrying the offending byte offset, the shape every other
// error path in internal/convert already produces.
func translateParseError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &hqerror.SyntaxError{Message: perr.Message(), Start: pos.Offset, End: pos.Offset}
	}
	return &hqerror.SyntaxError{Message: err.Error()}
}

// run is the shared entry-point skeleton: enforce the input bound, recover
// any converter panic through hqerror.ClassifyPanic (a SyntaxError for a
// bracket-imbalance signature, otherwise a generic ParsingError — spec.md
// §7's "catastrophic failure" fallback), build the node, and serialize. build's
// error, if any, is expected to already be one of the three hqerror kinds;
// anything else is folded into the generic fallback by hqerror.ToObject.
func run(source string, build func(string) (ast.Node, error)) (result string) {
	if len(source) > MaxInputBytes {
		return marshalError(&hqerror.SyntaxError{Message: fmt.Sprintf("input exceeds maximum of %d bytes", MaxInputBytes)})
	}

	defer func() {
		if r := oops.Recover(recover()); r != nil {
			result = marshalError(hqerror.ClassifyPanic(r.Error()))
		}
	}()

	node, err := build(source)
	if err != nil {
		return marshalError(err)
	}
	out, err := ast.Marshal(node, source)
	if err != nil {
		return marshalError(&hqerror.ParsingError{Message: err.Error()})
	}
	return out
}

// marshalError renders an error into spec.md §7's {error:true,...} JSON
// object. The Object/json-tag shape never fails to marshal, so the encode
// error is deliberately swallowed into a fixed fallback string.
func marshalError(err error) string {
	b, encErr := json.Marshal(hqerror.ToObject(err))
	if encErr != nil {
		return `{"error":true,"type":"ParsingError","message":"failed to encode error","start":0,"end":0}`
	}
	return string(b)
}

// ParseExpr implements parse_expr: a single expression.
func ParseExpr(input string, isInternal bool) string {
	return run(input, func(src string) (ast.Node, error) {
		expr, err := grammar.ExprParser.ParseString("", src)
		if err != nil {
			return nil, translateParseError(err)
		}
		return converterFor(src, isInternal).ConvertExpr(expr)
	})
}

// ParseOrderExpr implements parse_order_expr: a single ORDER BY item.
func ParseOrderExpr(input string, isInternal bool) string {
	return run(input, func(src string) (ast.Node, error) {
		o, err := grammar.OrderExprParser.ParseString("", src)
		if err != nil {
			return nil, translateParseError(err)
		}
		return converterFor(src, isInternal).ConvertOrderExpr(o)
	})
}

// ParseSelect implements parse_select: a full query, statement or set op.
func ParseSelect(input string, isInternal bool) string {
	return run(input, func(src string) (ast.Node, error) {
		s, err := grammar.Parser.ParseString("", src)
		if err != nil {
			return nil, translateParseError(err)
		}
		return converterFor(src, isInternal).ConvertSelect(s)
	})
}

// ParseFullTemplateString implements parse_full_template_string: the whole
// input is template text, with no surrounding quote and no grammar rule of
// its own to run first.
func ParseFullTemplateString(input string, isInternal bool) string {
	return run(input, func(src string) (ast.Node, error) {
		return converterFor(src, isInternal).ConvertFullTemplateString(src)
	})
}

// ParseProgram implements parse_program: a full script.
func ParseProgram(input string, isInternal bool) string {
	return run(input, func(src string) (ast.Node, error) {
		p, err := grammar.ProgramParser.ParseString("", src)
		if err != nil {
			return nil, translateParseError(err)
		}
		return converterFor(src, isInternal).ConvertProgram(p)
	})
}

// ParseStringLiteralText implements the parse_string_literal_text helper
// (spec.md §6's "sixth helper"): it has no AST to serialize, just a decoded
// string or an error, so it bypasses run's AST-marshal path.
func ParseStringLiteralText(text string) string {
	if len(text) > MaxInputBytes {
		return marshalError(&hqerror.SyntaxError{Message: fmt.Sprintf("input exceeds maximum of %d bytes", MaxInputBytes)})
	}
	decoded, err := literal.ParseStringLiteralText(text)
	if err != nil {
		return marshalError(err)
	}
	b, err := json.Marshal(decoded)
	if err != nil {
		return marshalError(&hqerror.ParsingError{Message: err.Error()})
	}
	return string(b)
}
