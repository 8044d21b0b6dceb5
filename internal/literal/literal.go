// Package literal decodes HogQL's quoted identifiers and string literals
// (spec.md §4.1), grounded on the reference implementation's
// common/hogql_parser/string.cpp (see SPEC_FULL.md §11).
package literal

import (
	"strings"

	"github.com/hogql-lang/hogql/internal/hqerror"
)

// replaceAll is strings.ReplaceAll by another name, used for the
// quote-specific un-escaping below.
func replaceAll(s, from, to string) string { return strings.ReplaceAll(s, from, to) }

// applyCommonEscapes implements the shared C-style escape table (spec.md
// §4.1): \a \b \f \n \r \t \v map to control characters, \0 is dropped
// silently, and \\ maps to \. The text is scanned once, left to right, so
// the character after an escaped backslash is never read as the start of
// another escape; any other backslash sequence is kept as written.
func applyCommonEscapes(text string) string {
	escapes := map[byte]string{'a': "\a", 'b': "\b", 'f': "\f", 'n': "\n", 'r': "\r", 't': "\t", 'v': "\v", '0': "", '\\': `\`}
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			if rep, ok := escapes[text[i+1]]; ok {
				b.WriteString(rep)
				i++
				continue
			}
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// ParseStringLiteralText decodes a fully-quoted literal: '…', "…", `…`, or
// {…}. It requires len(text) >= 2 and matching opening/closing quote chars.
func ParseStringLiteralText(text string) (string, error) {
	if len(text) < 2 {
		return "", &hqerror.SyntaxError{Message: "Encountered an unexpected empty string input"}
	}
	first, last := text[0], text[len(text)-1]
	inner := text[1 : len(text)-1]

	switch {
	case first == '\'' && last == '\'':
		inner = replaceAll(inner, "''", "'")
		inner = replaceAll(inner, `\'`, "'")
	case first == '"' && last == '"':
		inner = replaceAll(inner, `""`, `"`)
		inner = replaceAll(inner, `\"`, `"`)
	case first == '`' && last == '`':
		inner = replaceAll(inner, "``", "`")
		inner = replaceAll(inner, "\\`", "`")
	case first == '{' && last == '}':
		inner = replaceAll(inner, "{{", "{")
		inner = replaceAll(inner, `\{`, "{")
	default:
		return "", &hqerror.SyntaxError{
			Message: "Invalid string literal, must start and end with the same quote type: " + text,
		}
	}
	return applyCommonEscapes(inner), nil
}

// ParseStringTextCtx decodes an embedded template-string segment. When
// escapeQuotes is true it additionally un-escapes '' and \' (used inside
// single-quoted template strings); \{ is always un-escaped to {.
func ParseStringTextCtx(text string, escapeQuotes bool) (string, error) {
	if escapeQuotes {
		text = replaceAll(text, "''", "'")
		text = replaceAll(text, `\'`, "'")
	}
	text = replaceAll(text, `\{`, "{")
	return applyCommonEscapes(text), nil
}

// Quote renders s back into a quoted literal using the given quote
// character ('\'' , '"', '`', or '{'/'}' handled specially), doubling
// occurrences of the opening quote character and of the backslash. This is
// the inverse used by the decoder idempotence property (spec.md §8):
// Parse(Quote(s)) == s.
func Quote(s string, quoteChar byte) string {
	var b strings.Builder
	open, closeCh := quoteChar, quoteChar
	if quoteChar == '{' {
		closeCh = '}'
	}
	b.WriteByte(open)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == quoteChar || c == '\\' {
			b.WriteByte(c) // double the quote character or the backslash
		}
		b.WriteByte(c)
	}
	b.WriteByte(closeCh)
	return b.String()
}
