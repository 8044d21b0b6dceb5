package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringLiteralTextQuoteStyles(t *testing.T) {
	cases := []struct {
		name, text, want string
	}{
		{"single", `'hello'`, "hello"},
		{"double", `"hello"`, "hello"},
		{"backtick", "`hello`", "hello"},
		{"brace", `{hello}`, "hello"},
		{"doubled single quote", `'it''s'`, "it's"},
		{"escaped single quote", `'it\'s'`, "it's"},
		{"escaped newline", `'a\nb'`, "a\nb"},
		{"dropped nul", `'a\0b'`, "ab"},
		{"escaped backslash", `'a\\b'`, "a\\b"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseStringLiteralText(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseStringLiteralTextMismatchedQuotes(t *testing.T) {
	_, err := ParseStringLiteralText(`'oops"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestParseStringLiteralTextEmpty(t *testing.T) {
	_, err := ParseStringLiteralText("")
	require.Error(t, err)
}

func TestQuoteIdempotence(t *testing.T) {
	inputs := []string{"hello", "it's tricky", `has "both" kinds`, "", "a\\b"}
	for _, s := range inputs {
		for _, q := range []byte{'\'', '"', '`', '{'} {
			quoted := Quote(s, q)
			got, err := ParseStringLiteralText(quoted)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	}
}

func TestParseStringTextCtxEscapeQuotes(t *testing.T) {
	got, err := ParseStringTextCtx(`it''s \{ok\}`, true)
	require.NoError(t, err)
	assert.Equal(t, `it's {ok\}`, got)
}
