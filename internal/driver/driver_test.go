package driver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestParseExprArithmetic(t *testing.T) {
	m := decode(t, ParseExpr("1 + 2", false))
	assert.Equal(t, "ArithmeticOperation", m["node"])
	assert.Equal(t, "+", m["op"])
}

func TestParseExprNullishBecomesIfNull(t *testing.T) {
	m := decode(t, ParseExpr("a ?? b", false))
	assert.Equal(t, "Call", m["node"])
	assert.Equal(t, "ifNull", m["name"])
}

func TestParseExprArrayAccess(t *testing.T) {
	m := decode(t, ParseExpr("arr[1]", false))
	assert.Equal(t, "ArrayAccess", m["node"])
}

func TestParseExprAndFlattening(t *testing.T) {
	variants := []string{"a and b and c", "(a and b) and c", "a and (b and c)"}
	var want []any
	for i, v := range variants {
		m := decode(t, ParseExpr(v, false))
		require.Equal(t, "And", m["node"])
		exprs, _ := m["exprs"].([]any)
		require.Len(t, exprs, 3)
		if i == 0 {
			want = exprs
		} else {
			assert.Equal(t, len(want), len(exprs))
		}
	}
}

func TestParseExprNotAndParens(t *testing.T) {
	m := decode(t, ParseExpr("not (a and b)", false))
	assert.Equal(t, "Not", m["node"])
	inner, ok := m["expr"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "And", inner["node"])
}

func TestParseSelectLimitOffset(t *testing.T) {
	m := decode(t, ParseSelect("SELECT a FROM t LIMIT 10 OFFSET 5", false))
	assert.Equal(t, "SelectQuery", m["node"])
	from, ok := m["select_from"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, from["next_join"])
	limit, ok := m["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), limit["value"])
	offset, ok := m["offset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), offset["value"])
}

func TestParseSelectLimitCommaFormSwapsOffsetAndLimit(t *testing.T) {
	// MySQL-style "LIMIT a, b" means offset=a, limit=b.
	m := decode(t, ParseSelect("SELECT a FROM t LIMIT 5, 10", false))
	limit, ok := m["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), limit["value"])
	offset, ok := m["offset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), offset["value"])
}

func TestParseSelectUnionAll(t *testing.T) {
	m := decode(t, ParseSelect("SELECT 1 UNION ALL SELECT 2", false))
	assert.Equal(t, "SelectSetQuery", m["node"])
	subs, ok := m["subsequent_select_queries"].([]any)
	require.True(t, ok)
	require.Len(t, subs, 1)
	node := subs[0].(map[string]any)
	assert.Equal(t, "UNION ALL", node["set_operator"])
}

func TestParseProgramVarAndFunc(t *testing.T) {
	m := decode(t, ParseProgram("let x := 1; fn f() { return x; }", false))
	decls, ok := m["declarations"].([]any)
	require.True(t, ok)
	require.Len(t, decls, 2)
	varDecl := decls[0].(map[string]any)
	assert.Equal(t, "VariableDeclaration", varDecl["node"])
	assert.Equal(t, "x", varDecl["name"])
	fn := decls[1].(map[string]any)
	assert.Equal(t, "Function", fn["node"])
	assert.Equal(t, "f", fn["name"])
}

func TestParseProgramEmpty(t *testing.T) {
	m := decode(t, ParseProgram("", false))
	decls, ok := m["declarations"].([]any)
	require.True(t, ok)
	assert.Len(t, decls, 0)
}

func TestParseExprTrueAsAliasIsSyntaxError(t *testing.T) {
	m := decode(t, ParseExpr("true as alias", false))
	assert.Equal(t, true, m["error"])
	assert.Equal(t, "SyntaxError", m["type"])
}

func TestParseSelectArrayJoinWithoutFromIsSyntaxError(t *testing.T) {
	m := decode(t, ParseSelect("SELECT * ARRAY JOIN a", false))
	assert.Equal(t, true, m["error"])
	assert.Equal(t, "SyntaxError", m["type"])
	assert.Contains(t, m["message"], "ARRAY JOIN")
}

func TestParseExprCastIsNotImplemented(t *testing.T) {
	m := decode(t, ParseExpr("CAST(1 AS Int32)", false))
	assert.Equal(t, true, m["error"])
	assert.Equal(t, "NotImplementedError", m["type"])
}

func TestParseExprIsInternalOmitsSpans(t *testing.T) {
	m := decode(t, ParseExpr("1 + 2", true))
	_, hasStart := m["start"]
	_, hasEnd := m["end"]
	assert.False(t, hasStart)
	assert.False(t, hasEnd)
}

func TestParseExprNotInternalKeepsSpans(t *testing.T) {
	m := decode(t, ParseExpr("1 + 2", false))
	assert.Contains(t, m, "start")
	assert.Contains(t, m, "end")
}

func TestParseStringLiteralTextHelper(t *testing.T) {
	var got string
	require.NoError(t, json.Unmarshal([]byte(ParseStringLiteralText(`'it''s'`)), &got))
	assert.Equal(t, "it's", got)
}

func TestParseStringLiteralTextHelperError(t *testing.T) {
	m := decode(t, ParseStringLiteralText(`'oops"`))
	assert.Equal(t, true, m["error"])
}

func TestMaxInputBytesRejectsOversizedInput(t *testing.T) {
	old := MaxInputBytes
	MaxInputBytes = 4
	defer func() { MaxInputBytes = old }()
	m := decode(t, ParseExpr("1 + 2", false))
	assert.Equal(t, true, m["error"])
	assert.Equal(t, "SyntaxError", m["type"])
}
