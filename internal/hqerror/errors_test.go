package hqerror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPanicBracketImbalanceSignatures(t *testing.T) {
	msgs := []string{
		"runtime error: index out of range [3] with length 2",
		"runtime error: slice bounds out of range [:5] with capacity 3",
		"empty stack",
	}
	for _, msg := range msgs {
		err := ClassifyPanic(msg)
		se, ok := err.(*SyntaxError)
		require.True(t, ok, "expected *SyntaxError for %q", msg)
		assert.Equal(t, "Unmatched curly bracket", se.Message)
	}
}

func TestClassifyPanicFallsBackToParsingError(t *testing.T) {
	err := ClassifyPanic("some unrelated invariant violated")
	pe, ok := err.(*ParsingError)
	require.True(t, ok)
	assert.Equal(t, "some unrelated invariant violated", pe.Message)
}
