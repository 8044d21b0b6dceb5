package convert

import (
	"github.com/hogql-lang/hogql/internal/ast"
	"github.com/hogql-lang/hogql/internal/grammar"
	"github.com/hogql-lang/hogql/internal/hqerror"
)

func (c *Converter) convertVarDecl(v *grammar.VarDecl) (ast.Node, error) {
	var expr ast.Node
	if v.Expr != nil {
		e, err := c.convertExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		expr = e
	}
	return &ast.VariableDeclaration{
		SpanInfo: ast.NewSpan(v.Pos.Offset, v.EndPos.Offset, c.internal),
		Name:     v.Name, Expr: expr,
	}, nil
}

func (c *Converter) convertStatement(s *grammar.Statement) (ast.Node, error) {
	switch {
	case s.Block != nil:
		return c.convertBlock(s.Block)
	case s.If != nil:
		return c.convertIfStmt(s.If)
	case s.While != nil:
		return c.convertWhileStmt(s.While)
	case s.ForIn != nil:
		return c.convertForInStmt(s.ForIn)
	case s.For != nil:
		return c.convertForStmt(s.For)
	case s.Try != nil:
		return c.convertTryCatchStmt(s.Try)
	case s.Func != nil:
		return c.convertFuncDecl(s.Func)
	case s.Return != nil:
		return c.convertReturnStmt(s.Return)
	case s.Throw != nil:
		return c.convertThrowStmt(s.Throw)
	case s.VarDecl != nil:
		return c.convertVarDecl(s.VarDecl)
	case s.ExprStmt != nil:
		return c.convertExprStatement(s.ExprStmt)
	}
	return nil, &hqerror.ParsingError{Message: "empty statement"}
}

func (c *Converter) convertBlock(b *grammar.Block) (ast.Node, error) {
	decls, err := c.convertDeclarations(b.Decls)
	if err != nil {
		return nil, err
	}
	return &ast.Block{SpanInfo: ast.NewSpan(b.Pos.Offset, b.EndPos.Offset, c.internal), Declarations: decls}, nil
}

func (c *Converter) convertIfStmt(s *grammar.IfStmt) (ast.Node, error) {
	cond, err := c.convertExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := c.convertStatement(s.Then)
	if err != nil {
		return nil, err
	}
	var elseNode ast.Node
	if s.Else != nil {
		elseNode, err = c.convertStatement(s.Else)
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStatement{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Expr:     cond, Then: then, Else: elseNode,
	}, nil
}

func (c *Converter) convertWhileStmt(s *grammar.WhileStmt) (ast.Node, error) {
	cond, err := c.convertExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	var body ast.Node
	if s.Body != nil {
		body, err = c.convertStatement(s.Body)
		if err != nil {
			return nil, err
		}
	}
	return &ast.WhileStatement{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal), Expr: cond, Body: body,
	}, nil
}

func (c *Converter) convertForInStmt(s *grammar.ForInStmt) (ast.Node, error) {
	expr, err := c.convertExpr(s.Expr)
	if err != nil {
		return nil, err
	}
	body, err := c.convertStatement(s.Body)
	if err != nil {
		return nil, err
	}
	n := &ast.ForInStatement{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Expr:     expr, Body: body,
	}
	// `for (k, v in e)` sets both; `for (v in e)` leaves KeyVar unset and
	// ValueVar holds the single identifier.
	if s.ValueVar != "" {
		n.KeyVar, n.HasKey = s.KeyVar, true
		n.ValueVar = s.ValueVar
	} else {
		n.ValueVar = s.KeyVar
	}
	return n, nil
}

func (c *Converter) convertForStmt(s *grammar.ForStmt) (ast.Node, error) {
	var init ast.Node
	var err error
	if s.Init != nil {
		init, err = c.convertForInit(s.Init)
		if err != nil {
			return nil, err
		}
	}
	var cond ast.Node
	if s.Cond != nil {
		cond, err = c.convertExpr(s.Cond)
		if err != nil {
			return nil, err
		}
	}
	var incr ast.Node
	if s.Incr != nil {
		incr, err = c.convertExpr(s.Incr)
		if err != nil {
			return nil, err
		}
	}
	body, err := c.convertStatement(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Initializer: init, Condition: cond, Increment: incr, Body: body,
	}, nil
}

func (c *Converter) convertForInit(f *grammar.ForInit) (ast.Node, error) {
	switch {
	case f.VarDecl != nil:
		return c.convertVarDecl(f.VarDecl)
	case f.Expr != nil:
		return c.convertExpr(f.Expr)
	}
	return nil, &hqerror.ParsingError{Message: "empty for-initializer"}
}

func (c *Converter) convertTryCatchStmt(s *grammar.TryCatchStmt) (ast.Node, error) {
	try, err := c.convertBlock(s.Try)
	if err != nil {
		return nil, err
	}
	catches := make([]ast.CatchEntry, 0, len(s.Catches))
	for _, cc := range s.Catches {
		block, err := c.convertBlock(cc.Block)
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchEntry{
			Var: cc.Var, HasVar: cc.Var != "",
			Type: cc.Type, HasType: cc.Type != "",
			Block: block,
		})
	}
	var finally ast.Node
	if s.Finally != nil {
		finally, err = c.convertBlock(s.Finally)
		if err != nil {
			return nil, err
		}
	}
	return &ast.TryCatchStatement{
		SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal),
		Try:      try, Catches: catches, Finally: finally,
	}, nil
}

func (c *Converter) convertFuncDecl(f *grammar.FuncDecl) (ast.Node, error) {
	body, err := c.convertBlock(f.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		SpanInfo: ast.NewSpan(f.Pos.Offset, f.EndPos.Offset, c.internal),
		Name:     f.Name, Params: f.Params, Body: body,
	}, nil
}

func (c *Converter) convertReturnStmt(s *grammar.ReturnStmt) (ast.Node, error) {
	var expr ast.Node
	if s.Expr != nil {
		e, err := c.convertExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		expr = e
	}
	return &ast.ReturnStatement{SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal), Expr: expr}, nil
}

func (c *Converter) convertThrowStmt(s *grammar.ThrowStmt) (ast.Node, error) {
	var expr ast.Node
	if s.Expr != nil {
		e, err := c.convertExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		expr = e
	}
	return &ast.ThrowStatement{SpanInfo: ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal), Expr: expr}, nil
}

func (c *Converter) convertExprStatement(s *grammar.ExprStatement) (ast.Node, error) {
	span := ast.NewSpan(s.Pos.Offset, s.EndPos.Offset, c.internal)
	switch {
	case s.Assign != nil:
		return c.convertVarAssign(s.Assign)
	case s.Expr != nil:
		expr, err := c.convertExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStatement{SpanInfo: span, Expr: expr}, nil
	}
	return &ast.ExprStatement{SpanInfo: span}, nil
}

func (c *Converter) convertVarAssign(a *grammar.VarAssign) (ast.Node, error) {
	left, err := c.convertPostfix(a.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.convertExpr(a.Right)
	if err != nil {
		return nil, err
	}
	return &ast.VariableAssignment{
		SpanInfo: ast.NewSpan(a.Pos.Offset, a.EndPos.Offset, c.internal), Left: left, Right: right,
	}, nil
}
