package ast

// Program is the top-level node produced by parse_program.
type Program struct {
	SpanInfo
	Declarations []Node
}

func (n *Program) Kind() string { return "Program" }
func (n *Program) Fields(e *Encoder) map[string]any {
	return map[string]any{"declarations": e.Values(n.Declarations)}
}

// Block is a lexical block: `{ ... }`.
type Block struct {
	SpanInfo
	Declarations []Node
}

func (n *Block) Kind() string { return "Block" }
func (n *Block) Fields(e *Encoder) map[string]any {
	return map[string]any{"declarations": e.Values(n.Declarations)}
}

// VariableDeclaration is `let x := e`.
type VariableDeclaration struct {
	SpanInfo
	Name string
	Expr Node
}

func (n *VariableDeclaration) Kind() string { return "VariableDeclaration" }
func (n *VariableDeclaration) Fields(e *Encoder) map[string]any {
	return map[string]any{"name": n.Name, "expr": e.Value(n.Expr)}
}

// VariableAssignment is `a := b`.
type VariableAssignment struct {
	SpanInfo
	Left, Right Node
}

func (n *VariableAssignment) Kind() string { return "VariableAssignment" }
func (n *VariableAssignment) Fields(e *Encoder) map[string]any {
	return map[string]any{"left": e.Value(n.Left), "right": e.Value(n.Right)}
}

// ExprStatement wraps a bare expression statement. Expr is nil for an empty
// statement (a lone `;`).
type ExprStatement struct {
	SpanInfo
	Expr Node
}

func (n *ExprStatement) Kind() string { return "ExprStatement" }
func (n *ExprStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr)}
}

type ReturnStatement struct {
	SpanInfo
	Expr Node
}

func (n *ReturnStatement) Kind() string { return "ReturnStatement" }
func (n *ReturnStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr)}
}

type ThrowStatement struct {
	SpanInfo
	Expr Node
}

func (n *ThrowStatement) Kind() string { return "ThrowStatement" }
func (n *ThrowStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr)}
}

type IfStatement struct {
	SpanInfo
	Expr, Then, Else Node
}

func (n *IfStatement) Kind() string { return "IfStatement" }
func (n *IfStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "then": e.Value(n.Then), "else_": e.Value(n.Else)}
}

type WhileStatement struct {
	SpanInfo
	Expr, Body Node
}

func (n *WhileStatement) Kind() string { return "WhileStatement" }
func (n *WhileStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "body": e.Value(n.Body)}
}

type ForStatement struct {
	SpanInfo
	Initializer, Condition, Increment, Body Node
}

func (n *ForStatement) Kind() string { return "ForStatement" }
func (n *ForStatement) Fields(e *Encoder) map[string]any {
	return map[string]any{
		"initializer": e.Value(n.Initializer),
		"condition":   e.Value(n.Condition),
		"increment":   e.Value(n.Increment),
		"body":        e.Value(n.Body),
	}
}

// ForInStatement is `for (key, value in expr) body` or the one-identifier
// form, which leaves KeyVar unset.
type ForInStatement struct {
	SpanInfo
	KeyVar   string
	HasKey   bool
	ValueVar string
	Expr     Node
	Body     Node
}

func (n *ForInStatement) Kind() string { return "ForInStatement" }
func (n *ForInStatement) Fields(e *Encoder) map[string]any {
	var keyVar any
	if n.HasKey {
		keyVar = n.KeyVar
	}
	return map[string]any{
		"keyVar":   keyVar,
		"valueVar": n.ValueVar,
		"expr":     e.Value(n.Expr),
		"body":     e.Value(n.Body),
	}
}

// CatchEntry is the `[var?, type?, block]` tuple of TryCatchStatement.
type CatchEntry struct {
	Var     string
	HasVar  bool
	Type    string
	HasType bool
	Block   Node
}

func (c CatchEntry) encode(e *Encoder) any {
	var v, t any
	if c.HasVar {
		v = c.Var
	}
	if c.HasType {
		t = c.Type
	}
	return []any{v, t, e.Value(c.Block)}
}

type TryCatchStatement struct {
	SpanInfo
	Try     Node
	Catches []CatchEntry
	Finally Node
}

func (n *TryCatchStatement) Kind() string { return "TryCatchStatement" }
func (n *TryCatchStatement) Fields(e *Encoder) map[string]any {
	catches := make([]any, 0, len(n.Catches))
	for _, c := range n.Catches {
		catches = append(catches, c.encode(e))
	}
	return map[string]any{"try_stmt": e.Value(n.Try), "catches": catches, "finally_stmt": e.Value(n.Finally)}
}

type Function struct {
	SpanInfo
	Name   string
	Params []string
	Body   Node
}

func (n *Function) Kind() string { return "Function" }
func (n *Function) Fields(e *Encoder) map[string]any {
	params := make([]any, 0, len(n.Params))
	for _, p := range n.Params {
		params = append(params, p)
	}
	return map[string]any{"name": n.Name, "params": params, "body": e.Value(n.Body)}
}

// SelectQuery is the rich record produced by SelectStmt (spec.md §4.5).
type SelectQuery struct {
	SpanInfo
	CTEs            map[string]*CTE
	CTEOrder        []string
	HasCTEs         bool
	Select          []Node
	Distinct        bool
	SelectFrom      Node
	Where           Node
	Prewhere        Node
	Having          Node
	GroupBy         []Node
	HasGroupBy      bool
	OrderBy         []Node
	HasOrderBy      bool
	WindowExprs     map[string]Node
	HasWindowExprs  bool
	Offset          Node
	Limit           Node
	LimitWithTies   bool
	LimitBy         Node
	ArrayJoinOp     string
	HasArrayJoinOp  bool
	ArrayJoinList   []Node
}

func (n *SelectQuery) Kind() string { return "SelectQuery" }
func (n *SelectQuery) Fields(e *Encoder) map[string]any {
	var ctes any
	if n.HasCTEs {
		d := make(map[string]any, len(n.CTEs))
		for _, name := range n.CTEOrder {
			d[name] = e.Value(n.CTEs[name])
		}
		ctes = d
	}
	m := map[string]any{
		"ctes":        ctes,
		"select":      e.Values(n.Select),
		"select_from": e.Value(n.SelectFrom),
		"where":       e.Value(n.Where),
		"prewhere":    e.Value(n.Prewhere),
		"having":      e.Value(n.Having),
		"offset":      e.Value(n.Offset),
		"limit":       e.Value(n.Limit),
		"limit_by":    e.Value(n.LimitBy),
	}
	if n.Distinct {
		m["distinct"] = true
	} else {
		m["distinct"] = nil
	}
	if n.HasGroupBy {
		m["group_by"] = e.Values(n.GroupBy)
	} else {
		m["group_by"] = nil
	}
	if n.HasOrderBy {
		m["order_by"] = e.Values(n.OrderBy)
	} else {
		m["order_by"] = nil
	}
	if n.HasWindowExprs {
		windows := make(map[string]any, len(n.WindowExprs))
		for k, v := range n.WindowExprs {
			windows[k] = e.Value(v)
		}
		m["window_exprs"] = windows
	} else {
		m["window_exprs"] = nil
	}
	if n.LimitWithTies {
		m["limit_with_ties"] = true
	} else {
		m["limit_with_ties"] = nil
	}
	if n.HasArrayJoinOp {
		m["array_join_op"] = n.ArrayJoinOp
		m["array_join_list"] = e.Values(n.ArrayJoinList)
	} else {
		m["array_join_op"] = nil
		m["array_join_list"] = nil
	}
	return m
}

type SelectSetQuery struct {
	SpanInfo
	Initial     Node
	Subsequent  []Node
}

func (n *SelectSetQuery) Kind() string { return "SelectSetQuery" }
func (n *SelectSetQuery) Fields(e *Encoder) map[string]any {
	return map[string]any{
		"initial_select_query":     e.Value(n.Initial),
		"subsequent_select_queries": e.Values(n.Subsequent),
	}
}

type SelectSetNode struct {
	SpanInfo
	SelectQuery Node
	SetOperator string
}

func (n *SelectSetNode) Kind() string { return "SelectSetNode" }
func (n *SelectSetNode) Fields(e *Encoder) map[string]any {
	return map[string]any{"select_query": e.Value(n.SelectQuery), "set_operator": n.SetOperator}
}

// JoinExpr is one link of the join chain (spec.md §4.6); NextJoin == nil
// marks the tail.
type JoinExpr struct {
	SpanInfo
	Table         Node
	TableFinal    bool
	HasTableFinal bool
	Sample        Node
	NextJoin      Node
	Alias         string
	HasAlias      bool
	JoinType      string
	HasJoinType   bool
	Constraint    Node
	TableArgs     []Node
	HasTableArgs  bool
}

func (n *JoinExpr) Kind() string { return "JoinExpr" }
func (n *JoinExpr) Fields(e *Encoder) map[string]any {
	m := map[string]any{
		"table":      e.Value(n.Table),
		"sample":     e.Value(n.Sample),
		"next_join":  e.Value(n.NextJoin),
		"constraint": e.Value(n.Constraint),
	}
	if n.HasTableFinal {
		m["table_final"] = n.TableFinal
	} else {
		m["table_final"] = nil
	}
	if n.HasAlias {
		m["alias"] = n.Alias
	} else {
		m["alias"] = nil
	}
	if n.HasJoinType {
		m["join_type"] = n.JoinType
	} else {
		m["join_type"] = nil
	}
	if n.HasTableArgs {
		m["table_args"] = e.Values(n.TableArgs)
	} else {
		m["table_args"] = nil
	}
	return m
}

type JoinConstraint struct {
	SpanInfo
	Expr           Node
	ConstraintType string
}

func (n *JoinConstraint) Kind() string { return "JoinConstraint" }
func (n *JoinConstraint) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "constraint_type": n.ConstraintType}
}

type SampleExpr struct {
	SpanInfo
	SampleValue Node
	OffsetValue Node
}

func (n *SampleExpr) Kind() string { return "SampleExpr" }
func (n *SampleExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{"sample_value": e.Value(n.SampleValue), "offset_value": e.Value(n.OffsetValue)}
}

type RatioExpr struct {
	SpanInfo
	Left, Right Node
}

func (n *RatioExpr) Kind() string { return "RatioExpr" }
func (n *RatioExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{"left": e.Value(n.Left), "right": e.Value(n.Right)}
}

type OrderExpr struct {
	SpanInfo
	Expr  Node
	Order string
}

func (n *OrderExpr) Kind() string { return "OrderExpr" }
func (n *OrderExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "order": n.Order}
}

type LimitByExpr struct {
	SpanInfo
	N           Node
	OffsetValue Node
	Exprs       []Node
}

func (n *LimitByExpr) Kind() string { return "LimitByExpr" }
func (n *LimitByExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{"n": e.Value(n.N), "offset_value": e.Value(n.OffsetValue), "exprs": e.Values(n.Exprs)}
}

type WindowExpr struct {
	SpanInfo
	PartitionBy    []Node
	HasPartitionBy bool
	OrderBy        []Node
	HasOrderBy     bool
	FrameMethod    string
	HasFrameMethod bool
	FrameStart     Node
	FrameEnd       Node
}

func (n *WindowExpr) Kind() string { return "WindowExpr" }
func (n *WindowExpr) Fields(e *Encoder) map[string]any {
	m := map[string]any{"frame_start": e.Value(n.FrameStart), "frame_end": e.Value(n.FrameEnd)}
	if n.HasPartitionBy {
		m["partition_by"] = e.Values(n.PartitionBy)
	} else {
		m["partition_by"] = nil
	}
	if n.HasOrderBy {
		m["order_by"] = e.Values(n.OrderBy)
	} else {
		m["order_by"] = nil
	}
	if n.HasFrameMethod {
		m["frame_method"] = n.FrameMethod
	} else {
		m["frame_method"] = nil
	}
	return m
}

// WindowFrameExpr is a frame bound: PRECEDING/FOLLOWING/CURRENT ROW.
type WindowFrameExpr struct {
	SpanInfo
	FrameType  string
	FrameValue any // nil, int64, float64 or NumberText
}

func (n *WindowFrameExpr) Kind() string { return "WindowFrameExpr" }
func (n *WindowFrameExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{"frame_type": n.FrameType, "frame_value": n.FrameValue}
}

// WindowFunction carries exactly one of OverExpr/OverIdentifier.
type WindowFunction struct {
	SpanInfo
	Name           string
	Exprs          []Node
	Args           []Node
	OverExpr       Node
	OverIdentifier string
	OverIsIdent    bool
}

func (n *WindowFunction) Kind() string { return "WindowFunction" }
func (n *WindowFunction) Fields(e *Encoder) map[string]any {
	m := map[string]any{"name": n.Name, "exprs": e.Values(n.Exprs), "args": e.Values(n.Args)}
	if n.OverIsIdent {
		m["over_identifier"] = n.OverIdentifier
	} else {
		m["over_expr"] = e.Value(n.OverExpr)
	}
	return m
}

// Call is a named function invocation, e.g. `count(*)` or `toIntervalDAY(1)`.
type Call struct {
	SpanInfo
	Name        string
	Args        []Node
	Params      []Node
	HasParams   bool
	Distinct    bool
	HasDistinct bool
}

func (n *Call) Kind() string { return "Call" }
func (n *Call) Fields(e *Encoder) map[string]any {
	m := map[string]any{"name": n.Name, "args": e.Values(n.Args)}
	if n.HasParams {
		m["params"] = e.Values(n.Params)
	} else {
		m["params"] = nil
	}
	if n.HasDistinct {
		m["distinct"] = n.Distinct
	} else {
		m["distinct"] = nil
	}
	return m
}

// ExprCall is an invocation applied to an arbitrary expression, e.g.
// `getHandler(x)(y)`.
type ExprCall struct {
	SpanInfo
	Expr Node
	Args []Node
}

func (n *ExprCall) Kind() string { return "ExprCall" }
func (n *ExprCall) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "args": e.Values(n.Args)}
}

type CompareOperation struct {
	SpanInfo
	Left, Right Node
	Op          string
}

func (n *CompareOperation) Kind() string { return "CompareOperation" }
func (n *CompareOperation) Fields(e *Encoder) map[string]any {
	return map[string]any{"left": e.Value(n.Left), "right": e.Value(n.Right), "op": n.Op}
}

type ArithmeticOperation struct {
	SpanInfo
	Left, Right Node
	Op          string
}

func (n *ArithmeticOperation) Kind() string { return "ArithmeticOperation" }
func (n *ArithmeticOperation) Fields(e *Encoder) map[string]any {
	return map[string]any{"left": e.Value(n.Left), "right": e.Value(n.Right), "op": n.Op}
}

// And is a flattened conjunction: no direct child is itself an And
// (spec.md §4.9).
type And struct {
	SpanInfo
	Exprs []Node
}

func (n *And) Kind() string { return "And" }
func (n *And) Fields(e *Encoder) map[string]any { return map[string]any{"exprs": e.Values(n.Exprs)} }

type Or struct {
	SpanInfo
	Exprs []Node
}

func (n *Or) Kind() string { return "Or" }
func (n *Or) Fields(e *Encoder) map[string]any { return map[string]any{"exprs": e.Values(n.Exprs)} }

type Not struct {
	SpanInfo
	Expr Node
}

func (n *Not) Kind() string { return "Not" }
func (n *Not) Fields(e *Encoder) map[string]any { return map[string]any{"expr": e.Value(n.Expr)} }

// NumberText tags a non-finite float constant ("Infinity", "-Infinity",
// "NaN") so the encoder emits {value, value_type:"number"} per spec.md §3.
type NumberText string

// Constant holds a literal value: nil, bool, int64, float64, string, or a
// NumberText sentinel for non-finite floats.
type Constant struct {
	SpanInfo
	Value any
}

func (n *Constant) Kind() string { return "Constant" }
func (n *Constant) Fields(e *Encoder) map[string]any {
	if nt, ok := n.Value.(NumberText); ok {
		return map[string]any{"value": string(nt), "value_type": "number"}
	}
	return map[string]any{"value": n.Value}
}

// Field is a dotted/qualified name; "*" is a legal segment. Chain is never
// empty (spec.md invariant).
type Field struct {
	SpanInfo
	Chain []string
}

func (n *Field) Kind() string { return "Field" }
func (n *Field) Fields(e *Encoder) map[string]any {
	chain := make([]any, 0, len(n.Chain))
	for _, c := range n.Chain {
		chain = append(chain, c)
	}
	return map[string]any{"chain": chain}
}

type Placeholder struct {
	SpanInfo
	Expr Node
}

func (n *Placeholder) Kind() string { return "Placeholder" }
func (n *Placeholder) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr)}
}

type Array struct {
	SpanInfo
	Exprs []Node
}

func (n *Array) Kind() string { return "Array" }
func (n *Array) Fields(e *Encoder) map[string]any {
	return map[string]any{"exprs": e.Values(n.Exprs)}
}

type Tuple struct {
	SpanInfo
	Exprs []Node
}

func (n *Tuple) Kind() string { return "Tuple" }
func (n *Tuple) Fields(e *Encoder) map[string]any {
	return map[string]any{"exprs": e.Values(n.Exprs)}
}

// Dict is a list of key/value pairs, each [Node, Node].
type Dict struct {
	SpanInfo
	Keys   []Node
	Values []Node
}

func (n *Dict) Kind() string { return "Dict" }
func (n *Dict) Fields(e *Encoder) map[string]any {
	items := make([]any, 0, len(n.Keys))
	for i := range n.Keys {
		items = append(items, []any{e.Value(n.Keys[i]), e.Value(n.Values[i])})
	}
	return map[string]any{"items": items}
}

// ArrayAccess covers `a[b]` and the nullish-access form `a?.b` / `a?[b]`.
type ArrayAccess struct {
	SpanInfo
	Array, Property Node
	Nullish         bool
	HasNullish      bool
}

func (n *ArrayAccess) Kind() string { return "ArrayAccess" }
func (n *ArrayAccess) Fields(e *Encoder) map[string]any {
	m := map[string]any{"array": e.Value(n.Array), "property": e.Value(n.Property)}
	if n.HasNullish {
		m["nullish"] = n.Nullish
	} else {
		m["nullish"] = nil
	}
	return m
}

// TupleAccess is `t.1`: a 1-based decimal index.
type TupleAccess struct {
	SpanInfo
	Tuple      Node
	Index      int
	Nullish    bool
	HasNullish bool
}

func (n *TupleAccess) Kind() string { return "TupleAccess" }
func (n *TupleAccess) Fields(e *Encoder) map[string]any {
	m := map[string]any{"tuple": e.Value(n.Tuple), "index": n.Index}
	if n.HasNullish {
		m["nullish"] = n.Nullish
	} else {
		m["nullish"] = nil
	}
	return m
}

type Alias struct {
	SpanInfo
	Expr  Node
	Alias string
}

func (n *Alias) Kind() string { return "Alias" }
func (n *Alias) Fields(e *Encoder) map[string]any {
	return map[string]any{"expr": e.Value(n.Expr), "alias": n.Alias}
}

type Lambda struct {
	SpanInfo
	Args []string
	Expr Node
}

func (n *Lambda) Kind() string { return "Lambda" }
func (n *Lambda) Fields(e *Encoder) map[string]any {
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, a)
	}
	return map[string]any{"args": args, "expr": e.Value(n.Expr)}
}

type CTE struct {
	SpanInfo
	Name    string
	Expr    Node
	CTEType string
}

func (n *CTE) Kind() string { return "CTE" }
func (n *CTE) Fields(e *Encoder) map[string]any {
	return map[string]any{"name": n.Name, "expr": e.Value(n.Expr), "cte_type": n.CTEType}
}

// HogQLXTag is a JSX-like tag element: `<Kind attr=…>children</Kind>`.
type HogQLXTag struct {
	SpanInfo
	TagKind    string
	Attributes []Node
}

func (n *HogQLXTag) Kind() string { return "HogQLXTag" }
func (n *HogQLXTag) Fields(e *Encoder) map[string]any {
	return map[string]any{"kind": n.TagKind, "attributes": e.Values(n.Attributes)}
}

type HogQLXAttribute struct {
	SpanInfo
	Name  string
	Value Node
}

func (n *HogQLXAttribute) Kind() string { return "HogQLXAttribute" }
func (n *HogQLXAttribute) Fields(e *Encoder) map[string]any {
	return map[string]any{"name": n.Name, "value": e.Value(n.Value)}
}

// BetweenExpr is `a BETWEEN low AND high`, kept distinct from
// CompareOperation because of grouping semantics (spec.md §4.7).
type BetweenExpr struct {
	SpanInfo
	Expr, Low, High Node
	Negated         bool
}

func (n *BetweenExpr) Kind() string { return "BetweenExpr" }
func (n *BetweenExpr) Fields(e *Encoder) map[string]any {
	return map[string]any{
		"expr": e.Value(n.Expr), "low": e.Value(n.Low), "high": e.Value(n.High), "negated": n.Negated,
	}
}
