// Package grammar is the HogQL parse tree: the stand-in for the
// ANTLR-generated parser spec.md treats as an external collaborator
// (spec.md §1 "OUT OF SCOPE"). It is built declaratively with
// github.com/alecthomas/participle/v2, the same approach the teacher
// repo's internal/dsl and the pack's holomush-holomush
// internal/access/policy/dsl use for their own small grammars — one struct
// type per grammar rule, precedence expressed as nested tiers rather than
// left recursion (participle, like any PEG/LL parser generator, cannot
// parse left-recursive rules directly).
//
// Struct and field names mirror the canonical rule vocabulary spec.md §6.2
// lists (Program, SelectStmt, ColumnExpr's alternatives, JoinExpr's
// alternatives, WindowExpr, ...) so internal/convert reads as a visitor
// over named rule contexts, the same shape the reference ANTLR visitor has.
//
// Every rule struct that can become a standalone AST node carries Pos and
// EndPos fields of type lexer.Position; participle populates both
// automatically (by field name and type, no tag needed), giving
// internal/convert the byte offsets spec.md §6.3's span objects need
// without threading position state through the grammar tags themselves.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var hogqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*|/\*([^*]|\*[^/])*\*/`},
	{Name: "Keyword", Pattern: `(?i)\b(SELECT|DISTINCT|FROM|SAMPLE|FINAL|ARRAY|JOIN|ALL|ANY|ASOF|INNER|LEFT|RIGHT|FULL|OUTER|SEMI|ANTI|CROSS|ON|USING|PREWHERE|WHERE|GROUP|BY|HAVING|ORDER|ASC|DESC|DESCENDING|LIMIT|OFFSET|WITH|TIES|UNION|INTERSECT|EXCEPT|AND|OR|NOT|IS|NULL|TRUE|FALSE|LIKE|ILIKE|IN|COHORT|BETWEEN|CASE|WHEN|THEN|ELSE|END|INTERVAL|SECOND|MINUTE|HOUR|DAY|WEEK|MONTH|QUARTER|YEAR|TRIM|LEADING|TRAILING|BOTH|TOP|SETTINGS|OVER|PARTITION|WINDOW|RANGE|ROWS|UNBOUNDED|PRECEDING|FOLLOWING|CURRENT|ROW|AS|CAST|INF|NAN|LET|FN|RETURN|THROW|IF|WHILE|FOR|TRY|CATCH|FINALLY)\b`},
	{Name: "Float", Pattern: `\d+\.\d*([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "TemplateString", Pattern: "f'(?:[^'\\\\]|''|\\\\.)*'"},
	{Name: "SingleQuoted", Pattern: `'(?:[^'\\]|''|\\.)*'`},
	{Name: "DoubleQuoted", Pattern: `"(?:[^"\\]|""|\\.)*"`},
	{Name: "BacktickQuoted", Pattern: "`(?:[^`\\\\]|``|\\\\.)*`"},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `:=|=>|->|\?\?|\?\.|\?\[|==|!=|<>|<=|>=|=~\*|!~\*|=~|!~|\|\||[-+*/%(),.;:?\[\]{}=<>!]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// --- Program & imperative statements -----------------------------------

type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Decls  []*Declaration `parser:"@@*"`
}

type Declaration struct {
	VarDecl *VarDecl   `parser:"  @@"`
	Stmt    *Statement `parser:"| @@"`
}

type VarDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `parser:"\"LET\" @Ident"`
	Expr   *Expr  `parser:"(\":=\" @@)?"`
	Semi   bool   `parser:"\";\"?"`
}

type Statement struct {
	Block    *Block         `parser:"  @@"`
	If       *IfStmt        `parser:"| @@"`
	While    *WhileStmt     `parser:"| @@"`
	ForIn    *ForInStmt     `parser:"| @@"`
	For      *ForStmt       `parser:"| @@"`
	Try      *TryCatchStmt  `parser:"| @@"`
	Func     *FuncDecl      `parser:"| @@"`
	Return   *ReturnStmt    `parser:"| @@"`
	Throw    *ThrowStmt     `parser:"| @@"`
	VarDecl  *VarDecl       `parser:"| @@"`
	ExprStmt *ExprStatement `parser:"| @@"`
}

type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Decls  []*Declaration `parser:"\"{\" @@* \"}\""`
}

type IfStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr      `parser:"\"IF\" \"(\" @@ \")\""`
	Then   *Statement `parser:"@@"`
	Else   *Statement `parser:"(\"ELSE\" @@)?"`
}

type WhileStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr      `parser:"\"WHILE\" \"(\" @@ \")\""`
	Body   *Statement `parser:"@@?"`
}

type ForInStmt struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	KeyVar   string     `parser:"\"FOR\" \"(\" @Ident"`
	ValueVar string     `parser:"(\",\" @Ident)?"`
	In       bool       `parser:"\"IN\""`
	Expr     *Expr      `parser:"@@ \")\""`
	Body     *Statement `parser:"@@"`
}

type ForStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Init   *ForInit   `parser:"\"FOR\" \"(\" @@? \";\""`
	Cond   *Expr      `parser:"@@? \";\""`
	Incr   *Expr      `parser:"@@? \")\""`
	Body   *Statement `parser:"@@"`
}

type ForInit struct {
	VarDecl *VarDecl `parser:"  @@"`
	Expr    *Expr    `parser:"| @@"`
}

type TryCatchStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Try     *Block         `parser:"\"TRY\" @@"`
	Catches []*CatchClause `parser:"@@*"`
	Finally *Block         `parser:"(\"FINALLY\" @@)?"`
}

type CatchClause struct {
	Var   string `parser:"\"CATCH\" (\"(\" (@Ident"`
	Type  string `parser:"(\":\" @Ident)?)? \")\")?"`
	Block *Block `parser:"@@"`
}

type FuncDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string   `parser:"\"FN\" @Ident \"(\""`
	Params []string `parser:"(@Ident (\",\" @Ident)*)? \")\""`
	Body   *Block   `parser:"@@"`
}

type ReturnStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr `parser:"\"RETURN\" @@?"`
	Semi   bool  `parser:"\";\"?"`
}

type ThrowStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr `parser:"\"THROW\" @@?"`
	Semi   bool  `parser:"\";\"?"`
}

// ExprStatement is either `ident := expr ;` or a bare expression statement,
// or (Expr == nil) the empty statement `;`.
type ExprStatement struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Assign *VarAssign `parser:"(  @@"`
	Expr   *Expr      `parser:"  | @@ )? \";\"?"`
}

type VarAssign struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Postfix `parser:"@@ \":=\""`
	Right  *Expr    `parser:"@@"`
}

// --- Queries -------------------------------------------------------------

type Select struct {
	Tag     *HogqlxTagElement `parser:"  @@"`
	SetStmt *SelectSetStmt    `parser:"| @@"`
}

type SelectSetStmt struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Initial    *SelectStmtWithParens        `parser:"@@"`
	Subsequent []*SubsequentSelectSetClause `parser:"@@*"`
}

type SelectStmtWithParens struct {
	Paren       *SelectSetStmt `parser:"  \"(\" @@ \")\""`
	Placeholder *Placeholder   `parser:"| @@"`
	Select      *SelectStmt    `parser:"| @@"`
}

type SubsequentSelectSetClause struct {
	UnionAll          bool                  `parser:"(  @(\"UNION\" \"ALL\")"`
	UnionDistinct     bool                  `parser:" | @(\"UNION\" \"DISTINCT\")"`
	IntersectDistinct bool                  `parser:" | @(\"INTERSECT\" \"DISTINCT\")"`
	Intersect         bool                  `parser:" | @\"INTERSECT\""`
	Except            bool                  `parser:" | @\"EXCEPT\" )"`
	Select            *SelectStmtWithParens `parser:"@@"`
}

type SelectStmt struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	With        *WithClause      `parser:"@@?"`
	Select      bool             `parser:"\"SELECT\""`
	Distinct    bool             `parser:"@\"DISTINCT\"?"`
	Columns     []*Expr          `parser:"@@ (\",\" @@)*"`
	From        *FromClause      `parser:"@@?"`
	ArrayJoin   *ArrayJoinClause `parser:"@@?"`
	Prewhere    *Expr            `parser:"(\"PREWHERE\" @@)?"`
	Where       *Expr            `parser:"(\"WHERE\" @@)?"`
	GroupBy     []*Expr          `parser:"(\"GROUP\" \"BY\" @@ (\",\" @@)*)?"`
	Having      *Expr            `parser:"(\"HAVING\" @@)?"`
	Window      []*WindowDef     `parser:"(\"WINDOW\" @@ (\",\" @@)*)?"`
	OrderBy     []*OrderExpr     `parser:"(\"ORDER\" \"BY\" @@ (\",\" @@)*)?"`
	LimitBy     *LimitByClause   `parser:"@@?"`
	LimitOffset *LimitAndOffset  `parser:"@@?"`
	OffsetOnly  *Expr            `parser:"(\"OFFSET\" @@)?"`
	Top         *TopClause       `parser:"@@?"`
	Settings    *SettingsClause  `parser:"@@?"`
}

type WithClause struct {
	Exprs []*WithExpr `parser:"\"WITH\" @@ (\",\" @@)*"`
}

type WithExpr struct {
	Subquery *WithExprSubquery `parser:"  @@"`
	Column   *WithExprColumn   `parser:"| @@"`
}

type WithExprSubquery struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string         `parser:"@Ident \"AS\" \"(\""`
	Query  *SelectSetStmt `parser:"@@ \")\""`
}

type WithExprColumn struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr  `parser:"@@ \"AS\""`
	Name   string `parser:"@Ident"`
}

type FromClause struct {
	Join *JoinExpr `parser:"\"FROM\" @@"`
}

// JoinExpr is a base table/subquery followed by zero or more join tails;
// internal/convert threads these into the JoinExpr linked list (spec.md
// §4.6) rather than the grammar itself being left-recursive.
type JoinExpr struct {
	Base  *JoinExprTable `parser:"@@"`
	Tails []*JoinTail    `parser:"@@*"`
}

type JoinExprTable struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Paren  *JoinExpr     `parser:"(  \"(\" @@ \")\""`
	Table  *TableExpr    `parser:" | @@ )"`
	Final  bool          `parser:"@\"FINAL\"?"`
	Sample *SampleClause `parser:"@@?"`
}

type TableExpr struct {
	Subquery *SelectSetStmt `parser:"(  \"(\" @@ \")\""`
	Func     *TableFunction `parser:" | @@"`
	Ident    *TableIdent    `parser:" | @@ )"`
	Alias    string         `parser:"(\"AS\"? @Ident)?"`
}

type TableFunction struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string  `parser:"@Ident \"(\""`
	Args   []*Expr `parser:"(@@ (\",\" @@)*)? \")\""`
}

type TableIdent struct {
	Parts []string `parser:"@Ident (\".\" @Ident)*"`
}

type JoinTail struct {
	Cross *CrossJoinTail `parser:"  @@"`
	Op    *OpJoinTail    `parser:"| @@"`
	Plain *PlainJoinTail `parser:"| @@"`
}

type CrossJoinTail struct {
	Table *JoinExprTable `parser:"\"CROSS\" \"JOIN\" @@"`
}

type PlainJoinTail struct {
	Table      *JoinExprTable  `parser:"\"JOIN\" @@"`
	Constraint *JoinConstraint `parser:"@@"`
}

type OpJoinTail struct {
	Inner      *JoinOpInner     `parser:"(  @@"`
	LeftRight  *JoinOpLeftRight `parser:" | @@"`
	Full       *JoinOpFull      `parser:" | @@ )"`
	Table      *JoinExprTable   `parser:"\"JOIN\" @@"`
	Constraint *JoinConstraint  `parser:"@@"`
}

type JoinOpInner struct {
	All   bool `parser:"@\"ALL\"?"`
	Any   bool `parser:"@\"ANY\"?"`
	Asof  bool `parser:"@\"ASOF\"?"`
	Inner bool `parser:"@\"INNER\""`
}

type JoinOpLeftRight struct {
	Left  bool `parser:"(  @\"LEFT\""`
	Right bool `parser:" | @\"RIGHT\" )"`
	Outer bool `parser:"@\"OUTER\"?"`
	Semi  bool `parser:"@\"SEMI\"?"`
	All   bool `parser:"@\"ALL\"?"`
	Anti  bool `parser:"@\"ANTI\"?"`
	Any   bool `parser:"@\"ANY\"?"`
	Asof  bool `parser:"@\"ASOF\"?"`
}

type JoinOpFull struct {
	Full  bool `parser:"@\"FULL\""`
	Outer bool `parser:"@\"OUTER\"?"`
	All   bool `parser:"@\"ALL\"?"`
	Any   bool `parser:"@\"ANY\"?"`
}

type JoinConstraint struct {
	Pos    lexer.Position
	EndPos lexer.Position
	On     *Expr   `parser:"(  \"ON\" @@"`
	Using  []*Expr `parser:" | \"USING\" ( \"(\" @@ (\",\" @@)* \")\" | @@ ) )"`
}

type SampleClause struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *RatioExpr `parser:"\"SAMPLE\" @@"`
	Offset *RatioExpr `parser:"(\"OFFSET\" @@)?"`
}

type RatioExpr struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Placeholder *Placeholder `parser:"(  @@"`
	Left        *NumberLit   `parser:" | @@ (\"/\" "`
	Right       *NumberLit   `parser:"      @@)? )"`
}

type ArrayJoinClause struct {
	Left  bool    `parser:"@\"LEFT\"?"`
	Inner bool    `parser:"@\"INNER\"?"`
	Array bool    `parser:"\"ARRAY\" \"JOIN\""`
	Exprs []*Expr `parser:"@@ (\",\" @@)*"`
}

type WindowDef struct {
	Name string      `parser:"@Ident \"AS\" \"(\""`
	Expr *WindowExpr `parser:"@@ \")\""`
}

type WindowExpr struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Partition []*Expr      `parser:"(\"PARTITION\" \"BY\" @@ (\",\" @@)*)?"`
	Order     []*OrderExpr `parser:"(\"ORDER\" \"BY\" @@ (\",\" @@)*)?"`
	Frame     *WinFrame    `parser:"@@?"`
}

type WinFrame struct {
	Range bool           `parser:"(  @\"RANGE\""`
	Rows  bool           `parser:" | @\"ROWS\" )"`
	Start *WinFrameBound `parser:"(  \"BETWEEN\" @@ \"AND\""`
	End   *WinFrameBound `parser:"   @@"`
	Only  *WinFrameBound `parser:" | @@ )"`
}

// WinFrameBound is one frame bound: UNBOUNDED/<n> paired with
// PRECEDING/FOLLOWING, or the bare CURRENT ROW form.
type WinFrameBound struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Unbounded bool       `parser:"(  @\"UNBOUNDED\""`
	Value     *NumberLit `parser:" | @@ )?"`
	Following bool       `parser:"(  @\"FOLLOWING\""`
	Preceding bool       `parser:" | @\"PRECEDING\""`
	Current   bool       `parser:" | @(\"CURRENT\" \"ROW\") )"`
}

type OrderExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr `parser:"@@"`
	Desc   bool  `parser:"(  @(\"DESC\"|\"DESCENDING\")"`
	Asc    bool  `parser:" | @\"ASC\" )?"`
}

type LimitByClause struct {
	Pos    lexer.Position
	EndPos lexer.Position
	N      *NumberLit `parser:"\"LIMIT\" @@"`
	Offset *NumberLit `parser:"(\",\" @@)?"`
	By     bool       `parser:"\"BY\""`
	Exprs  []*Expr    `parser:"@@ (\",\" @@)*"`
}

type LimitAndOffset struct {
	Limit    *Expr `parser:"\"LIMIT\" @@"`
	CommaOff *Expr `parser:"(  \",\" @@"`
	OffsetKw *Expr `parser:" | (\"OFFSET\" @@) )?"`
	WithTies bool  `parser:"@(\"WITH\" \"TIES\")?"`
}

type TopClause struct {
	N bool `parser:"\"TOP\" Int"`
}

type SettingsClause struct {
	First *SettingItem   `parser:"\"SETTINGS\" @@"`
	Rest  []*SettingItem `parser:"(\",\" @@)*"`
}

type SettingItem struct {
	Name string `parser:"@Ident \"=\""`
	Expr *Expr  `parser:"@@"`
}

// --- Expressions, precedence tiers (spec.md §4.7) -----------------------

type Expr struct {
	Or *OrExpr `parser:"@@"`
}

type OrExpr struct {
	Left *AndExpr   `parser:"@@"`
	Rest []*AndExpr `parser:"(\"OR\" @@)*"`
}

type AndExpr struct {
	Left *NotExpr   `parser:"@@"`
	Rest []*NotExpr `parser:"(\"AND\" @@)*"`
}

type NotExpr struct {
	Nots int          `parser:"@\"NOT\"*"`
	Expr *TernaryExpr `parser:"@@"`
}

type TernaryExpr struct {
	Cond *CompareExpr `parser:"@@"`
	Then *Expr        `parser:"(\"?\" @@"`
	Else *Expr        `parser:"  \":\" @@)?"`
}

type CompareExpr struct {
	Left *NullishExpr `parser:"@@"`
	Tail *CompareTail `parser:"@@?"`
}

type CompareTail struct {
	IsNull  *IsNullSuffix  `parser:"  @@"`
	Between *BetweenSuffix `parser:"| @@"`
	Compare *CompareSuffix `parser:"| @@"`
}

type IsNullSuffix struct {
	EndPos lexer.Position
	Not    bool `parser:"\"IS\" @\"NOT\"?"`
	Null   bool `parser:"\"NULL\""`
}

type BetweenSuffix struct {
	EndPos lexer.Position
	Not    bool         `parser:"@\"NOT\"?"`
	Low    *NullishExpr `parser:"\"BETWEEN\" @@"`
	High   *NullishExpr `parser:"\"AND\" @@"`
}

type CompareSuffix struct {
	EndPos lexer.Position
	Not    bool         `parser:"@\"NOT\"?"`
	Op     string       `parser:"@(\"==\"|\"=\"|\"!=\"|\"<>\"|\"<=\"|\">=\"|\"<\"|\">\"|\"=~*\"|\"!~*\"|\"=~\"|\"!~\"|\"LIKE\"|\"ILIKE\"|\"IN\")"`
	Cohort bool         `parser:"@\"COHORT\"?"`
	Right  *NullishExpr `parser:"@@"`
}

type NullishExpr struct {
	Left *Additive   `parser:"@@"`
	Rest []*Additive `parser:"(\"??\" @@)*"`
}

type Additive struct {
	Left *Multiplicative `parser:"@@"`
	Ops  []*AdditiveOp   `parser:"@@*"`
}

type AdditiveOp struct {
	Op     string          `parser:"@(\"+\"|\"-\"|\"||\")"`
	Right  *Multiplicative `parser:"@@"`
	EndPos lexer.Position
}

type Multiplicative struct {
	Left *Unary    `parser:"@@"`
	Ops  []*MultOp `parser:"@@*"`
}

type MultOp struct {
	Op     string `parser:"@(\"*\"|\"/\"|\"%\")"`
	Right  *Unary `parser:"@@"`
	EndPos lexer.Position
}

type Unary struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Neg     bool     `parser:"@\"-\"?"`
	Postfix *Postfix `parser:"@@"`
}

// Postfix is the access-chain tier: property/array/tuple access and
// expression-call suffixes layered onto a Primary.
type Postfix struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Primary  *Primary         `parser:"@@"`
	Suffixes []*PostfixSuffix `parser:"@@*"`
}

type PostfixSuffix struct {
	EndPos      lexer.Position
	Property    *string   `parser:"(  \".\" @Ident"`
	TupleIndex  *string   `parser:" | \".\" @Int"`
	NullishProp *string   `parser:" | \"?.\" @Ident"`
	Index       *Expr     `parser:" | \"[\" @@ \"]\""`
	NullishIdx  *Expr     `parser:" | \"?[\" @@ \"]\" )"`
	Call        *CallArgs `parser:"| @@"`
}

// CallArgs is ColumnExprCall / ColumnExprCallSelect applied to a preceding
// non-identifier expression (e.g. the result of an array access).
type CallArgs struct {
	Select *SelectSetStmt `parser:"(  \"(\" @@ \")\""`
	Args   []*Expr        `parser:" | \"(\" (@@ (\",\" @@)*)? \")\" )"`
}

// --- Primary expressions --------------------------------------------------

type Primary struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Paren       *ParenExpr         `parser:"  @@"`
	Lambda      *LambdaExpr        `parser:"| @@"`
	Cast        *CastExpr          `parser:"| @@"`
	CallSelect  *CallSelectPrimary `parser:"| @@"`
	FuncCall    *FuncCallExpr      `parser:"| @@"`
	Case        *CaseExpr          `parser:"| @@"`
	Interval    *IntervalExpr      `parser:"| @@"`
	Trim        *TrimExpr          `parser:"| @@"`
	Tag         *HogqlxTagElement  `parser:"| @@"`
	Template    *string            `parser:"| @TemplateString"`
	Dict        *DictExpr          `parser:"| @@"`
	Array       *ArrayExpr         `parser:"| @@"`
	Tuple       *TupleExpr         `parser:"| @@"`
	Placeholder *Placeholder       `parser:"| @@"`
	Number      *NumberLit         `parser:"| @@"`
	Str         *string            `parser:"| @SingleQuoted"`
	Null        bool               `parser:"| @\"NULL\""`
	True        bool               `parser:"| @\"TRUE\""`
	False       bool               `parser:"| @\"FALSE\""`
	Inf         bool               `parser:"| @\"INF\""`
	Nan         bool               `parser:"| @\"NAN\""`
	Asterisk    *AsteriskExpr      `parser:"| @@"`
	Field       *FieldChain        `parser:"| @@"`
}

type ParenExpr struct {
	Expr *Expr `parser:"\"(\" @@ \")\""`
}

type LambdaExpr struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Params   []string `parser:"(  \"(\" @Ident (\",\" @Ident)* \")\""`
	OneParam string   `parser:" | @Ident )"`
	Arrow    bool     `parser:"\"->\""`
	Body     *Expr    `parser:"@@"`
}

// CallSelectPrimary is ColumnExprCallSelect: a bare identifier applied
// directly to a parenthesized select (spec.md §4.7's "distinguish
// single-identifier function-call-of-subquery from generic expression-call",
// THE CORE's flagship structural rewrite).
type CallSelectPrimary struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string         `parser:"@Ident \"(\""`
	Query  *SelectSetStmt `parser:"@@ \")\""`
}

// CastExpr is ColumnExprCast (`CAST(expr AS Type)`). The reference visitor
// marks this rule VISIT_UNSUPPORTED outright, so the grammar only needs to
// recognize the shape well enough to distinguish a deliberate NotImplemented
// construct from a genuine syntax error — it never needs to represent the
// type fully enough to build an AST node from it.
type CastExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr           `parser:"\"CAST\" \"(\" @@ \"AS\""`
	Type   *ColumnTypeExpr `parser:"@@ \")\""`
}

type ColumnTypeExpr struct {
	Name string           `parser:"@Ident"`
	Args []*ColumnTypeArg `parser:"(\"(\" (@@ (\",\" @@)*)? \")\")?"`
}

type ColumnTypeArg struct {
	Type   *ColumnTypeExpr `parser:"  @@"`
	Number *NumberLit      `parser:"| @@"`
}

type FuncCallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *FieldChain `parser:"@@"`
	First  *ArgList    `parser:"\"(\" @@ \")\""`
	Second *ArgList    `parser:"(\"(\" @@ \")\")?"`
}

type ArgList struct {
	Distinct bool    `parser:"@\"DISTINCT\"?"`
	Exprs    []*Expr `parser:"(@@ (\",\" @@)*)?"`
}

type CaseExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr         `parser:"\"CASE\" @@?"`
	Whens  []*WhenClause `parser:"@@+"`
	Else   *Expr         `parser:"(\"ELSE\" @@)?"`
	End    bool          `parser:"\"END\""`
}

type WhenClause struct {
	Cond *Expr `parser:"\"WHEN\" @@"`
	Then *Expr `parser:"\"THEN\" @@"`
}

type IntervalExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Str    *string `parser:"\"INTERVAL\" (  @SingleQuoted"`
	Value  *Expr   `parser:" | @@"`
	Unit   string  `parser:"@(\"SECOND\"|\"MINUTE\"|\"HOUR\"|\"DAY\"|\"WEEK\"|\"MONTH\"|\"QUARTER\"|\"YEAR\")? )"`
}

type TrimExpr struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Leading  bool  `parser:"\"TRIM\" \"(\" (  @\"LEADING\""`
	Trailing bool  `parser:" | @\"TRAILING\""`
	Both     bool  `parser:" | @\"BOTH\" )?"`
	Expr     *Expr `parser:"@@ \"FROM\""`
	Source   *Expr `parser:"@@ \")\""`
}

type DictExpr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Entries []*DictEntry `parser:"\"{\" (@@ (\",\" @@)*)? \"}\""`
}

type DictEntry struct {
	Key   *Expr `parser:"@@ \":\""`
	Value *Expr `parser:"@@"`
}

type ArrayExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Exprs  []*Expr `parser:"\"[\" (@@ (\",\" @@)*)? \"]\""`
}

type TupleExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Exprs  []*Expr `parser:"\"(\" @@ \",\" @@ (\",\" @@)* \")\""`
}

type Placeholder struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr `parser:"\"{\" @@ \"}\""`
}

type NumberLit struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `parser:"@(Float|Int)"`
}

type AsteriskExpr struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Qualifier []string `parser:"(@Ident \".\")*"`
	Star      bool     `parser:"@\"*\""`
}

type FieldChain struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*IdentPart `parser:"@@ (\".\" @@)*"`
}

type IdentPart struct {
	Bare   string `parser:"(  @Ident"`
	Quoted string `parser:" | @BacktickQuoted | @DoubleQuoted )"`
}

// --- HogQLX tag elements --------------------------------------------------

type HogqlxTagElement struct {
	Closed *HogqlxClosed `parser:"  @@"`
	Nested *HogqlxNested `parser:"| @@"`
}

type HogqlxClosed struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Kind   string           `parser:"\"<\" @Ident"`
	Attrs  []*HogqlxAttrSrc `parser:"@@*"`
	Slash  bool             `parser:"\"/\" \">\""`
}

type HogqlxNested struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Kind      string           `parser:"\"<\" @Ident"`
	Attrs     []*HogqlxAttrSrc `parser:"@@* \">\""`
	Children  []*HogqlxChild   `parser:"@@*"`
	CloseKind string           `parser:"\"<\" \"/\" @Ident \">\""`
}

type HogqlxChild struct {
	Tag  *HogqlxTagElement `parser:"  @@"`
	Text *string           `parser:"| @SingleQuoted | @DoubleQuoted"`
	Expr *Placeholder      `parser:"| @@"`
}

type HogqlxAttrSrc struct {
	Name string  `parser:"@Ident \"=\""`
	Expr *Expr   `parser:"(  \"{\" @@ \"}\""`
	Str  *string `parser:" | @SingleQuoted | @DoubleQuoted )"`
}

// Parser is the package-level participle parser for the top-level entry
// rules, mirroring the teacher's package-level dslParser singleton.
var Parser = participle.MustBuild[Select](
	participle.Lexer(hogqlLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(participle.MaxLookahead),
)

var ExprParser = participle.MustBuild[Expr](
	participle.Lexer(hogqlLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(participle.MaxLookahead),
)

var OrderExprParser = participle.MustBuild[OrderExpr](
	participle.Lexer(hogqlLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(participle.MaxLookahead),
)

var ProgramParser = participle.MustBuild[Program](
	participle.Lexer(hogqlLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(participle.MaxLookahead),
)
