package hogql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(ParseExpr("1 + 2")), &m))
	assert.Equal(t, "ArithmeticOperation", m["node"])
	assert.Contains(t, m, "start")
}

func TestParseExprInternalOmitsSpans(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(ParseExprInternal("1 + 2")), &m))
	assert.NotContains(t, m, "start")
}

func TestParseSelect(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(ParseSelect("SELECT 1")), &m))
	assert.Equal(t, "SelectQuery", m["node"])
}

func TestParseProgram(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(ParseProgram("let x := 1;")), &m))
	decls := m["declarations"].([]any)
	assert.Len(t, decls, 1)
}

func TestParseStringLiteralText(t *testing.T) {
	var s string
	require.NoError(t, json.Unmarshal([]byte(ParseStringLiteralText(`'abc'`)), &s))
	assert.Equal(t, "abc", s)
}
