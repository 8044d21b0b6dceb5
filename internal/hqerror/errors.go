// Package hqerror defines the three HogQL error kinds (spec.md §7), each
// carrying a message and a half-open byte span.
package hqerror

import (
	"fmt"
	"strings"
)

// SyntaxError: the input does not conform to HogQL syntax.
type SyntaxError struct {
	Message    string
	Start, End int
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("SyntaxError: %s", e.Message) }

// NotImplementedError: a recognized grammar construct the converter does
// not (yet) handle.
type NotImplementedError struct {
	Message    string
	Start, End int
}

func (e *NotImplementedError) Error() string { return fmt.Sprintf("NotImplementedError: %s", e.Message) }

// ParsingError: an internal invariant violation. Should not normally occur.
type ParsingError struct {
	Message    string
	Start, End int
}

func (e *ParsingError) Error() string { return fmt.Sprintf("ParsingError: %s", e.Message) }

// Spanned is implemented by all three error kinds.
type Spanned interface {
	error
	Span() (start, end int)
	RawMessage() string
}

func (e *SyntaxError) Span() (int, int)         { return e.Start, e.End }
func (e *NotImplementedError) Span() (int, int) { return e.Start, e.End }
func (e *ParsingError) Span() (int, int)        { return e.Start, e.End }

func (e *SyntaxError) RawMessage() string         { return e.Message }
func (e *NotImplementedError) RawMessage() string { return e.Message }
func (e *ParsingError) RawMessage() string        { return e.Message }

// WithSpan rewrites err's span to (start,end) if err is one of the three
// kinds and is currently spanless (0,0) — the "spanless exceptions get the
// enclosing rule's span" rule of spec.md §4.2/§7. Errors that already carry
// a non-zero span, or aren't one of the three kinds, pass through unchanged.
func WithSpan(err error, start, end int) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *SyntaxError:
		if e.Start == 0 && e.End == 0 {
			return &SyntaxError{Message: e.Message, Start: start, End: end}
		}
	case *NotImplementedError:
		if e.Start == 0 && e.End == 0 {
			return &NotImplementedError{Message: e.Message, Start: start, End: end}
		}
	case *ParsingError:
		if e.Start == 0 && e.End == 0 {
			return &ParsingError{Message: e.Message, Start: start, End: end}
		}
	}
	return err
}

// typeTag returns the spec.md §7 "type" string for the JSON error object.
func typeTag(err error) string {
	switch err.(type) {
	case *SyntaxError:
		return "SyntaxError"
	case *NotImplementedError:
		return "NotImplementedError"
	case *ParsingError:
		return "ParsingError"
	default:
		return "ParsingError"
	}
}

// ClassifyPanic maps a recovered panic's message to the typed error spec.md
// §7 names for "catastrophic failures from the underlying parser (empty-stack
// exceptions and similar)": a recognizable bracket-imbalance/empty-stack
// signature becomes a SyntaxError reading "Unmatched curly bracket" (the
// literal message spec.md §7 specifies), anything else falls back to a
// generic ParsingError carrying the panic's own message.
func ClassifyPanic(msg string) error {
	if looksLikeBracketImbalance(msg) {
		return &SyntaxError{Message: "Unmatched curly bracket"}
	}
	return &ParsingError{Message: msg}
}

func looksLikeBracketImbalance(msg string) bool {
	lower := strings.ToLower(msg)
	for _, sig := range []string{"index out of range", "slice bounds out of range", "empty stack"} {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// Object is the JSON shape spec.md §7 specifies for the non-AST branch of
// every entry point's result.
type Object struct {
	Error   bool   `json:"error"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// ToObject converts any error into the serialized error shape. Errors that
// are not one of the three typed kinds are reported as a generic
// ParsingError at (0,0), matching spec.md §7's "catastrophic failure"
// fallback.
func ToObject(err error) Object {
	if s, ok := err.(Spanned); ok {
		start, end := s.Span()
		return Object{Error: true, Type: typeTag(err), Message: s.RawMessage(), Start: start, End: end}
	}
	return Object{Error: true, Type: "ParsingError", Message: err.Error(), Start: 0, End: 0}
}
