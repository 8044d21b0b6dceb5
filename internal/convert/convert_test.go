package convert

import (
	"testing"

	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseExpr(t *testing.T, src string) *grammar.Expr {
	t.Helper()
	e, err := grammar.ExprParser.ParseString("", src)
	require.NoError(t, err)
	return e
}

func convertSrc(t *testing.T, src string) ast.Node {
	t.Helper()
	n, err := New(src).ConvertExpr(mustParseExpr(t, src))
	require.NoError(t, err)
	return n
}

func TestConvertOrFlattensChain(t *testing.T) {
	n := convertSrc(t, "a or b or c")
	or, ok := n.(*ast.Or)
	require.True(t, ok)
	assert.Len(t, or.Exprs, 3)
}

func TestConvertAndFlattensChain(t *testing.T) {
	n := convertSrc(t, "a and b and c")
	and, ok := n.(*ast.And)
	require.True(t, ok)
	assert.Len(t, and.Exprs, 3)
}

func TestConvertAndOrDoNotCrossFlatten(t *testing.T) {
	// `a and b or c` is Or{And{a,b}, c}: the And child must stay nested
	// inside the Or, not get absorbed into a single flat list.
	n := convertSrc(t, "a and b or c")
	or, ok := n.(*ast.Or)
	require.True(t, ok)
	require.Len(t, or.Exprs, 2)
	_, ok = or.Exprs[0].(*ast.And)
	assert.True(t, ok)
}

func TestConvertNotNotProducesNestedNodes(t *testing.T) {
	n := convertSrc(t, "not not a")
	outer, ok := n.(*ast.Not)
	require.True(t, ok)
	_, ok = outer.Expr.(*ast.Not)
	assert.True(t, ok, "NOT NOT a must keep both Not nodes, not cancel them out")
}

func TestConvertTernaryLowersToIfCall(t *testing.T) {
	n := convertSrc(t, "a ? b : c")
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "if", call.Name)
	assert.Len(t, call.Args, 3)
}

func TestConvertUnaryNegateDesugarsToSubtraction(t *testing.T) {
	n := convertSrc(t, "-a")
	op, ok := n.(*ast.ArithmeticOperation)
	require.True(t, ok)
	assert.Equal(t, "-", op.Op)
	c, ok := op.Left.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, int64(0), c.Value)
}

func TestConvertConcatFlattensChain(t *testing.T) {
	n := convertSrc(t, "a || b || c")
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "concat", call.Name)
	assert.Len(t, call.Args, 3)
}

func TestConvertNullishLowersToIfNullCall(t *testing.T) {
	n := convertSrc(t, "a ?? b")
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "ifNull", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestConvertIsNullBecomesEqualityWithNullConstant(t *testing.T) {
	n := convertSrc(t, "a is null")
	cmp, ok := n.(*ast.CompareOperation)
	require.True(t, ok)
	assert.Equal(t, "==", cmp.Op)
	c, ok := cmp.Right.(*ast.Constant)
	require.True(t, ok)
	assert.Nil(t, c.Value)
}

func TestConvertIsNotNullUsesNotEquals(t *testing.T) {
	n := convertSrc(t, "a is not null")
	cmp, ok := n.(*ast.CompareOperation)
	require.True(t, ok)
	assert.Equal(t, "!=", cmp.Op)
}

func TestConvertBetween(t *testing.T) {
	n := convertSrc(t, "a between 1 and 10")
	b, ok := n.(*ast.BetweenExpr)
	require.True(t, ok)
	assert.False(t, b.Negated)
}

func TestConvertNotBetween(t *testing.T) {
	n := convertSrc(t, "a not between 1 and 10")
	b, ok := n.(*ast.BetweenExpr)
	require.True(t, ok)
	assert.True(t, b.Negated)
}

func TestCompareOpTextNormalization(t *testing.T) {
	cases := []struct {
		op, want     string
		not, cohort  bool
	}{
		{"=", "==", false, false},
		{"==", "==", false, false},
		{"!=", "!=", false, false},
		{"<>", "!=", false, false},
		{"LIKE", "like", false, false},
		{"ILIKE", "ilike", false, false},
		{"IN", "in", false, false},
		{"IN", "in cohort", false, true},
		{"=", "!=", true, false},
		{"!=", "==", true, false},
		{"LIKE", "not like", true, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, compareOpText(tc.op, tc.not, tc.cohort))
	}
}

func TestConvertArrayAccessProperty(t *testing.T) {
	n := convertSrc(t, "a[1].b")
	acc, ok := n.(*ast.ArrayAccess)
	require.True(t, ok)
	assert.False(t, acc.HasNullish)
}

func TestConvertNullishArrayAccess(t *testing.T) {
	n := convertSrc(t, "a?.b")
	acc, ok := n.(*ast.ArrayAccess)
	require.True(t, ok)
	require.True(t, acc.HasNullish)
	assert.True(t, acc.Nullish)
}

func TestConvertTupleAccess(t *testing.T) {
	n := convertSrc(t, "a.1")
	acc, ok := n.(*ast.TupleAccess)
	require.True(t, ok)
	assert.Equal(t, 1, acc.Index)
}

func TestConvertIndexedArrayAccess(t *testing.T) {
	n := convertSrc(t, "a[1]")
	acc, ok := n.(*ast.ArrayAccess)
	require.True(t, ok)
	_, isField := acc.Array.(*ast.Field)
	assert.True(t, isField)
}

func TestConvertCallWithArgs(t *testing.T) {
	n := convertSrc(t, "foo(1, 2)")
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "foo", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestConvertInternalModeOmitsSpans(t *testing.T) {
	e := mustParseExpr(t, "1 + 2")
	n, err := NewInternal("1 + 2").ConvertExpr(e)
	require.NoError(t, err)
	_, _, ok := n.Span()
	assert.False(t, ok)
}

func TestConvertNotInternalModeKeepsTopLevelSpan(t *testing.T) {
	e := mustParseExpr(t, "1 + 2")
	n, err := New("1 + 2").ConvertExpr(e)
	require.NoError(t, err)
	_, _, ok := n.Span()
	assert.True(t, ok)
}

func TestConvertArrayJoinWithoutFromIsRejected(t *testing.T) {
	s, err := grammar.Parser.ParseString("", "SELECT 1 ARRAY JOIN [1,2,3] AS x")
	require.NoError(t, err)
	_, err = New("SELECT 1 ARRAY JOIN [1,2,3] AS x").ConvertSelect(s)
	require.Error(t, err)
}

func TestConvertCastIsNotImplemented(t *testing.T) {
	n := mustParseExpr(t, "CAST(1 AS Int32)")
	_, err := New("CAST(1 AS Int32)").ConvertExpr(n)
	require.Error(t, err)
}

func TestConvertInfAndNanConstants(t *testing.T) {
	n := convertSrc(t, "inf")
	c, ok := n.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.NumberText("Infinity"), c.Value)

	n = convertSrc(t, "nan")
	c, ok = n.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.NumberText("NaN"), c.Value)

	n = convertSrc(t, "-inf")
	c, ok = n.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.NumberText("-Infinity"), c.Value)
}

func TestConvertHogqlxTagMismatchedCloseIsSyntaxError(t *testing.T) {
	n := mustParseExpr(t, `<Foo>bar</Baz>`)
	_, err := New(`<Foo>bar</Baz>`).ConvertExpr(n)
	require.Error(t, err)
}

func TestConvertHogqlxTagChildrenAttrCollisionIsSyntaxError(t *testing.T) {
	src := `<Foo children={1}>bar</Foo>`
	n := mustParseExpr(t, src)
	_, err := New(src).ConvertExpr(n)
	require.Error(t, err)
}

func TestConvertHogqlxTagNoCollisionWhenNoChildrenSurvive(t *testing.T) {
	// Whitespace-only text children are dropped, so an explicit "children"
	// attribute alongside only-whitespace content must NOT error.
	src := `<Foo children={1}>   </Foo>`
	n := mustParseExpr(t, src)
	_, err := New(src).ConvertExpr(n)
	require.NoError(t, err)
}

func TestConvertTemplateEmptyYieldsEmptyConstant(t *testing.T) {
	n, err := New("").ConvertFullTemplateString("")
	require.NoError(t, err)
	c, ok := n.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, "", c.Value)
}

func TestConvertTemplateSingleSegmentIsVerbatimNotConcat(t *testing.T) {
	n, err := New("hello").ConvertFullTemplateString("hello")
	require.NoError(t, err)
	c, ok := n.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, "hello", c.Value)
}

func TestConvertTemplateMultiSegmentIsConcat(t *testing.T) {
	src := "a{1}b"
	n, err := New(src).ConvertFullTemplateString(src)
	require.NoError(t, err)
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "concat", call.Name)
	assert.Len(t, call.Args, 3)
}

func TestJoinOpTextModifierOrder(t *testing.T) {
	s, err := grammar.Parser.ParseString("", "SELECT 1 FROM a ALL ANY ASOF INNER JOIN b ON true")
	require.NoError(t, err)
	sel, err := New("SELECT 1 FROM a ALL ANY ASOF INNER JOIN b ON true").ConvertSelect(s)
	require.NoError(t, err)
	q, ok := sel.(*ast.SelectQuery)
	require.True(t, ok)
	join, ok := q.SelectFrom.(*ast.JoinExpr)
	require.True(t, ok)
	require.NotNil(t, join.NextJoin)
	next, ok := join.NextJoin.(*ast.JoinExpr)
	require.True(t, ok)
	assert.Equal(t, "ALL ANY ASOF INNER JOIN", next.JoinType)
}
