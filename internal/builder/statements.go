package builder

import (
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
)

func (b *astBuilder) visitBlock(ctx *parser.BlockStatementContext) (*ast.BlockStatement, error) {
	block := &ast.BlockStatement{}
	if ctx == nil {
		return synthetic(block), nil
	}
	if err := b.appendStatements(block, ctx.Statements); err != nil {
		return nil, err
	}
	return stamp(block, ctx), nil
}

// appendStatements unpacks each statement into block.
func (b *astBuilder) appendStatements(block *ast.BlockStatement, list []parser.StatementContext) error {
	for _, s := range list {
		stmts, err := b.unpackStatement(s)
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			block.Add(stmt)
		}
	}
	return nil
}

// unpackStatement transforms a statement that sits directly in a block. A
// declaration yields one expression statement per variable, each keeping
// the labels written in front of the declaration.
func (b *astBuilder) unpackStatement(ctx parser.StatementContext) ([]ast.Statement, error) {
	switch s := ctx.(type) {
	case *parser.DeclarationStatementContext:
		return b.declarationStatements(s.Declaration)
	case *parser.LabeledStatementContext:
		if _, ok := s.Statement.(*parser.DeclarationStatementContext); !ok {
			break
		}
		stmts, err := b.unpackStatement(s.Statement)
		if err != nil {
			return nil, err
		}
		for _, stmt := range stmts {
			stmt.AddLabel(s.Label.GetText())
		}
		return stmts, nil
	}
	stmt, err := b.visitStatement(ctx)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{stmt}, nil
}

func (b *astBuilder) declarationStatements(ctx *parser.DeclarationRuleContext) ([]ast.Statement, error) {
	decls, err := b.visitDeclaration(ctx)
	if err != nil {
		return nil, err
	}
	stmts := make([]ast.Statement, len(decls))
	for i, d := range decls {
		stmts[i] = stamp(&ast.ExpressionStatement{Expression: d}, d)
	}
	return stmts, nil
}

// visitStatement transforms a statement in a single statement position,
// such as the body of an if.
func (b *astBuilder) visitStatement(ctx parser.StatementContext) (ast.Statement, error) {
	switch s := ctx.(type) {
	case *parser.BlockStatementContext:
		return b.visitBlock(s)
	case *parser.ExpressionStatementContext:
		e, err := b.visitExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ExpressionStatement{Expression: e}, s), nil
	case *parser.CommandExpressionStatementContext:
		return b.visitCommandExpression(s)
	case *parser.DeclarationStatementContext:
		stmts, err := b.declarationStatements(s.Declaration)
		if err != nil {
			return nil, err
		}
		if len(stmts) == 1 {
			return stmts[0], nil
		}
		return stamp(&ast.BlockStatement{Statements: stmts}, s), nil
	case *parser.IfStatementContext:
		return b.visitIf(s)
	case *parser.WhileStatementContext:
		cond, err := b.visitExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		body, err := b.visitStatement(s.Body)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.WhileStatement{Condition: ast.NewBoolean(cond), Body: body}, s), nil
	case *parser.ClassicForStatementContext:
		return b.visitClassicFor(s)
	case *parser.ForInStatementContext:
		typ, err := b.declaredType(s.Def, s.Type)
		if err != nil {
			return nil, err
		}
		return b.forEach(s, typ, s.Name, s.Collection, s.Body)
	case *parser.ForColonStatementContext:
		if s.Type == nil {
			return nil, syntaxError(s, "Classic for statement require type to be declared.")
		}
		typ, err := b.visitGenericClassName(s.Type)
		if err != nil {
			return nil, err
		}
		return b.forEach(s, typ, s.Name, s.Collection, s.Body)
	case *parser.SwitchStatementContext:
		return b.visitSwitch(s)
	case *parser.ControlStatementContext:
		var label string
		if s.Label != nil {
			label = s.Label.GetText()
		}
		if s.Keyword.GetTokenType() == parser.KW_BREAK {
			return stamp(&ast.BreakStatement{Label: label}, s), nil
		}
		return stamp(&ast.ContinueStatement{Label: label}, s), nil
	case *parser.ReturnStatementContext:
		var e ast.Expression = synthetic(ast.NullConstant())
		if s.Expression != nil {
			var err error
			if e, err = b.visitExpression(s.Expression); err != nil {
				return nil, err
			}
		}
		return stamp(&ast.ReturnStatement{Expression: e}, s), nil
	case *parser.AssertStatementContext:
		return b.visitAssert(s)
	case *parser.LabeledStatementContext:
		stmt, err := b.visitStatement(s.Statement)
		if err != nil {
			return nil, err
		}
		stmt.AddLabel(s.Label.GetText())
		return stamp(stmt, s), nil
	case *parser.SynchronizedStatementContext:
		e, err := b.visitExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		body, err := b.visitBlock(s.Body)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.SynchronizedStatement{Expression: e, Body: body}, s), nil
	case *parser.ThrowStatementContext:
		e, err := b.visitExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ThrowStatement{Expression: e}, s), nil
	case *parser.TryCatchFinallyStatementContext:
		return b.visitTryCatch(s)
	}
	return nil, internalError(ctx, "Unsupported statement type! %T", ctx)
}

func (b *astBuilder) visitIf(ctx *parser.IfStatementContext) (ast.Statement, error) {
	cond, err := b.visitExpression(ctx.Condition)
	if err != nil {
		return nil, err
	}
	then, err := b.visitStatement(ctx.Then)
	if err != nil {
		return nil, err
	}
	var els ast.Statement = ast.NewEmptyStatement()
	if ctx.Else != nil {
		if els, err = b.visitStatement(ctx.Else); err != nil {
			return nil, err
		}
	}
	return stamp(&ast.IfStatement{Condition: ast.NewBoolean(cond), Then: then, Else: els}, ctx), nil
}

// visitClassicFor builds for (init; cond; update). The three clauses are
// collected in order, an omitted clause as an empty expression.
func (b *astBuilder) visitClassicFor(ctx *parser.ClassicForStatementContext) (ast.Statement, error) {
	clauses := &ast.ClosureListExpression{}
	captureNext := false
	for _, child := range ctx.Header {
		separator := isForSeparator(child)
		if captureNext {
			switch c := child.(type) {
			case *parser.TerminalContext:
				if separator {
					clauses.Expressions = append(clauses.Expressions, ast.NewEmptyExpression())
				}
			case *parser.DeclarationRuleContext:
				e, err := b.visitDeclarationExpression(c)
				if err != nil {
					return nil, err
				}
				clauses.Expressions = append(clauses.Expressions, e)
			case parser.ExpressionContext:
				e, err := b.visitExpression(c)
				if err != nil {
					return nil, err
				}
				clauses.Expressions = append(clauses.Expressions, e)
			default:
				return nil, internalError(child, "unsupported for clause %T", child)
			}
		}
		captureNext = separator
	}
	if n := len(ctx.Header); n > 0 {
		stamp(clauses, contextRange(ctx.Header[0], ctx.Header[n-1]))
	}

	body, err := b.visitStatement(ctx.Body)
	if err != nil {
		return nil, err
	}
	return stamp(&ast.ForStatement{Variable: ast.ForLoopDummy(), Collection: clauses, Body: body}, ctx), nil
}

func isForSeparator(ctx parser.Context) bool {
	t, ok := ctx.(*parser.TerminalContext)
	if !ok {
		return false
	}
	switch t.Symbol.GetTokenType() {
	case parser.LPAREN, parser.SEMICOLON, parser.RPAREN:
		return true
	}
	return false
}

// visitDeclarationExpression turns a declaration used as an expression into
// a single declaration, or a list when it declares several variables.
func (b *astBuilder) visitDeclarationExpression(ctx *parser.DeclarationRuleContext) (ast.Expression, error) {
	decls, err := b.visitDeclaration(ctx)
	if err != nil {
		return nil, err
	}
	if len(decls) == 1 {
		return decls[0], nil
	}
	list := &ast.ClosureListExpression{}
	for _, d := range decls {
		list.Expressions = append(list.Expressions, d)
	}
	return stamp(list, ctx), nil
}

// forEach builds for (x in c) and for (T x : c).
func (b *astBuilder) forEach(ctx parser.Context, typ *ast.ClassNode, name antlr.Token, collection parser.ExpressionContext, bodyCtx parser.StatementContext) (ast.Statement, error) {
	param := ast.NewParameter(typ, name.GetText())
	stamp(param, name)
	coll, err := b.visitExpression(collection)
	if err != nil {
		return nil, err
	}
	body, err := b.visitStatement(bodyCtx)
	if err != nil {
		return nil, err
	}
	return stamp(&ast.ForStatement{Variable: param, Collection: coll, Body: body}, ctx), nil
}

func (b *astBuilder) visitSwitch(ctx *parser.SwitchStatementContext) (ast.Statement, error) {
	e, err := b.visitExpression(ctx.Expression)
	if err != nil {
		return nil, err
	}
	sw := &ast.SwitchStatement{Expression: e}
	for _, c := range ctx.Cases {
		value, err := b.visitExpression(c.Expression)
		if err != nil {
			return nil, err
		}
		block := &ast.BlockStatement{}
		if err := b.appendStatements(block, c.Statements); err != nil {
			return nil, err
		}
		var body ast.Statement = ast.NewEmptyStatement()
		if !block.IsEmpty() {
			body = stamp(block, c)
		}
		sw.Cases = append(sw.Cases, stamp(&ast.CaseStatement{Expression: value, Body: body}, c.Case))
	}

	if ctx.Default == nil {
		sw.Default = ast.NewEmptyStatement()
	} else {
		block := &ast.BlockStatement{}
		if err := b.appendStatements(block, ctx.Default.Statements); err != nil {
			return nil, err
		}
		sw.Default = stamp(block, ctx.Default)
	}
	return stamp(sw, ctx), nil
}

func (b *astBuilder) visitAssert(ctx *parser.AssertStatementContext) (ast.Statement, error) {
	cond, err := b.visitExpression(ctx.Condition)
	if err != nil {
		return nil, err
	}
	a := &ast.AssertStatement{Condition: ast.NewBoolean(cond)}
	if ctx.Message != nil {
		if a.Message, err = b.visitExpression(ctx.Message); err != nil {
			return nil, err
		}
	}
	return stamp(a, ctx), nil
}

// visitTryCatch builds try/catch/finally. A multi-catch produces one catch
// statement per type, all sharing the same body.
func (b *astBuilder) visitTryCatch(ctx *parser.TryCatchFinallyStatementContext) (ast.Statement, error) {
	try, err := b.visitBlock(ctx.Try)
	if err != nil {
		return nil, err
	}
	var finally ast.Statement = ast.NewEmptyStatement()
	if ctx.Finally != nil {
		if finally, err = b.visitBlock(ctx.Finally.Body); err != nil {
			return nil, err
		}
	}
	stmt := &ast.TryCatchStatement{Try: try, Finally: finally}

	for _, c := range ctx.Catches {
		body, err := b.visitBlock(c.Body)
		if err != nil {
			return nil, err
		}
		name := c.Name.GetText()
		if len(c.Types) == 0 {
			param := stamp(ast.NewParameter(ast.ObjectType(), name), c.Name)
			stmt.Catches = append(stmt.Catches, stamp(&ast.CatchStatement{Variable: param, Body: body}, c))
			continue
		}
		for _, t := range c.Types {
			param := stamp(ast.NewParameter(b.visitClassName(t), name), c.Name)
			stmt.Catches = append(stmt.Catches, stamp(&ast.CatchStatement{Variable: param, Body: body}, c))
		}
	}
	return stamp(stmt, ctx), nil
}

// visitDeclaration builds one declaration per declared variable, or a
// single multiple-assignment declaration for a tuple.
func (b *astBuilder) visitDeclaration(ctx *parser.DeclarationRuleContext) ([]*ast.DeclarationExpression, error) {
	if ctx.Tuple != nil {
		d, err := b.visitTupleDeclaration(ctx)
		if err != nil {
			return nil, err
		}
		return []*ast.DeclarationExpression{d}, nil
	}

	typ, err := b.declaredType(ctx.Def, ctx.Type)
	if err != nil {
		return nil, err
	}
	decls := make([]*ast.DeclarationExpression, 0, len(ctx.Declarations))
	for _, d := range ctx.Declarations {
		v := &ast.VariableExpression{Name: d.Name.GetText(), Type: typ}
		stamp(v, d.Name)
		if ctx.Final != nil {
			v.Modifiers |= ast.AccFinal
		}

		var init ast.Expression
		op := ast.Token{Text: "=", Line: ctx.GetStart().GetLine(), Column: -1}
		if d.Init != nil {
			if init, err = b.visitExpression(d.Init); err != nil {
				return nil, err
			}
			op = opToken(d.Assign, 1)
		} else {
			init = stamp(ast.NewEmptyExpression(), ctx)
		}

		decl := &ast.DeclarationExpression{BinaryExpression: ast.BinaryExpression{Left: v, Operation: op, Right: init}}
		if err := b.attachAnnotations(decl, ctx.Annotations); err != nil {
			return nil, err
		}
		decls = append(decls, stamp(decl, d))
	}

	switch {
	case len(decls) == 1:
		stamp(decls[0], ctx)
	case len(decls) > 1:
		span := decls[0].Span()
		start := tokenRange(ctx.GetStart(), ctx.GetStart())
		span.StartLine, span.StartColumn = start.StartLine, start.StartColumn
		decls[0].SetSpan(span)
	}
	return decls, nil
}

// visitTupleDeclaration builds def (a, b) = expr.
func (b *astBuilder) visitTupleDeclaration(ctx *parser.DeclarationRuleContext) (*ast.DeclarationExpression, error) {
	tuple := ctx.Tuple
	if tuple.Init == nil {
		return nil, syntaxError(ctx, "tuple declaration must have an initial value.")
	}
	left := ast.NewArgumentList()
	for _, tv := range tuple.Variables {
		typ, err := b.declaredType(nil, tv.Type)
		if err != nil {
			return nil, err
		}
		v := stamp(&ast.VariableExpression{Name: tv.Name.GetText(), Type: typ}, tv)
		if ctx.Final != nil {
			v.Modifiers |= ast.AccFinal
		}
		left.Expressions = append(left.Expressions, v)
	}
	if n := len(tuple.Variables); n > 0 {
		stamp(left, contextRange(tuple.Variables[0], tuple.Variables[n-1]))
	}
	init, err := b.visitExpression(tuple.Init)
	if err != nil {
		return nil, err
	}
	decl := &ast.DeclarationExpression{BinaryExpression: ast.BinaryExpression{Left: left, Operation: opToken(tuple.Assign, 1), Right: init}}
	if err := b.attachAnnotations(decl, ctx.Annotations); err != nil {
		return nil, err
	}
	return stamp(decl, ctx), nil
}
