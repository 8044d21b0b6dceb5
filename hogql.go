// Package hogql is the stable public surface of the HogQL front end: the
// five parse entry points of spec.md §6 plus the string-literal decoder
// helper, each returning either AST JSON or a serialized {error:true,...}
// object (spec.md §7). Adapted from the teacher's root pgraph.go, which
// exposed its own engine the same way — a thin root package re-exporting
// internal functionality rather than holding logic of its own.
package hogql

import "github.com/hogql-lang/hogql/internal/driver"

// ParseExpr parses a single expression (grammar rule `expr`).
func ParseExpr(input string) string { return driver.ParseExpr(input, false) }

// ParseExprInternal is ParseExpr with is_internal=true: the result omits
// every span, for callers converting an interior fragment that has no
// meaningful position in a larger enclosing source.
func ParseExprInternal(input string) string { return driver.ParseExpr(input, true) }

// ParseOrderExpr parses a single ORDER BY item (grammar rule `orderExpr`).
func ParseOrderExpr(input string) string { return driver.ParseOrderExpr(input, false) }

// ParseOrderExprInternal is ParseOrderExpr with is_internal=true.
func ParseOrderExprInternal(input string) string { return driver.ParseOrderExpr(input, true) }

// ParseSelect parses a full query, statement or set operation (grammar rule
// `select`).
func ParseSelect(input string) string { return driver.ParseSelect(input, false) }

// ParseSelectInternal is ParseSelect with is_internal=true.
func ParseSelectInternal(input string) string { return driver.ParseSelect(input, true) }

// ParseFullTemplateString parses the entire input as template text (grammar
// rule `fullTemplateString`).
func ParseFullTemplateString(input string) string {
	return driver.ParseFullTemplateString(input, false)
}

// ParseFullTemplateStringInternal is ParseFullTemplateString with
// is_internal=true.
func ParseFullTemplateStringInternal(input string) string {
	return driver.ParseFullTemplateString(input, true)
}

// ParseProgram parses a full script (grammar rule `program`).
func ParseProgram(input string) string { return driver.ParseProgram(input, false) }

// ParseProgramInternal is ParseProgram with is_internal=true.
func ParseProgramInternal(input string) string { return driver.ParseProgram(input, true) }

// ParseStringLiteralText decodes an already-quoted literal (spec.md §4.1),
// for callers that receive quoted strings without going through a full
// parse. Returns the decoded string, JSON-quoted, or a serialized error.
func ParseStringLiteralText(text string) string { return driver.ParseStringLiteralText(text) }
