package parser

import "github.com/antlr4-go/antlr/v4"

func (p *parser) block() *BlockStatementContext {
	start := p.mark()
	ctx := &BlockStatementContext{}
	p.expect(LCURVE)
	ctx.Statements = p.blockStatements(RCURVE)
	p.expect(RCURVE)
	return finish(p, ctx, start)
}

// blockStatements reads separated statements until one of stop.
func (p *parser) blockStatements(stop ...int) []StatementContext {
	var list []StatementContext
	for {
		for p.la(1) == NL || p.la(1) == SEMICOLON {
			p.consume()
		}
		if p.la(1) == EOF || contains(stop, p.la(1)) {
			return list
		}
		list = append(list, p.statement())
		if !contains(stop, p.la(1)) {
			p.separators()
		}
	}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// statementBlock is the body of a control statement: a block or a single
// statement.
func (p *parser) statementBlock() StatementContext {
	p.nls()
	if p.la(1) == LCURVE {
		return p.block()
	}
	return p.statement()
}

func (p *parser) statement() StatementContext {
	switch p.la(1) {
	case KW_IF:
		return p.ifStatement()
	case KW_WHILE:
		return p.whileStatement()
	case KW_FOR:
		return p.forStatement()
	case KW_SWITCH:
		return p.switchStatement()
	case KW_TRY:
		return p.tryCatchStatement()
	case KW_RETURN:
		return p.returnStatement()
	case KW_BREAK, KW_CONTINUE:
		return p.controlStatement()
	case KW_THROW:
		start := p.mark()
		p.consume()
		return finish(p, &ThrowStatementContext{Expression: p.expression()}, start)
	case KW_ASSERT:
		return p.assertStatement()
	case KW_SYNCHRONIZED:
		if p.la(2) == LPAREN {
			return p.synchronizedStatement()
		}
	case IDENTIFIER:
		if p.la(2) == COLON {
			return p.labeledStatement()
		}
	}
	if p.isDeclarationAhead() {
		start := p.mark()
		return finish(p, &DeclarationStatementContext{Declaration: p.declarationRule()}, start)
	}
	return p.expressionStatement()
}

func (p *parser) ifStatement() *IfStatementContext {
	start := p.mark()
	ctx := &IfStatementContext{}
	p.expect(KW_IF)
	ctx.Condition = p.parenthesizedExpression()
	ctx.Then = p.statementBlock()
	if p.nlsThen(KW_ELSE) {
		p.consume()
		ctx.Else = p.statementBlock()
	}
	return finish(p, ctx, start)
}

func (p *parser) parenthesizedExpression() ExpressionContext {
	p.expect(LPAREN)
	p.nls()
	e := p.expression()
	p.nls()
	p.expect(RPAREN)
	return e
}

func (p *parser) whileStatement() *WhileStatementContext {
	start := p.mark()
	ctx := &WhileStatementContext{}
	p.expect(KW_WHILE)
	ctx.Condition = p.parenthesizedExpression()
	ctx.Body = p.statementBlock()
	return finish(p, ctx, start)
}

func (p *parser) isClassicForAhead() bool {
	depth := 0
	for k := 1; ; k++ {
		switch p.la(k) {
		case LPAREN, LBRACK, LCURVE:
			depth++
		case RPAREN, RBRACK, RCURVE:
			depth--
			if depth == 0 {
				return false
			}
		case SEMICOLON:
			if depth == 1 {
				return true
			}
		case EOF:
			return false
		}
	}
}

func (p *parser) forStatement() StatementContext {
	start := p.mark()
	p.expect(KW_FOR)
	if p.isClassicForAhead() {
		ctx := &ClassicForStatementContext{}
		ctx.Header = append(ctx.Header, newTerminal(p.expect(LPAREN)))
		for _, end := range []int{SEMICOLON, SEMICOLON, RPAREN} {
			p.nls()
			if p.la(1) != end {
				if p.isDeclarationAhead() {
					ctx.Header = append(ctx.Header, p.declarationRule())
				} else {
					ctx.Header = append(ctx.Header, p.expression())
				}
				p.nls()
			}
			ctx.Header = append(ctx.Header, newTerminal(p.expect(end)))
		}
		ctx.Body = p.statementBlock()
		return finish(p, ctx, start)
	}

	p.expect(LPAREN)
	p.nls()
	p.accept(KW_FINAL)
	def := p.accept(KW_DEF)
	var typ *GenericClassNameContext
	if !(p.la(1) == IDENTIFIER && (p.la(2) == KW_IN || p.la(2) == COLON)) {
		typ = p.genericClassName(false)
	}
	name := p.expect(IDENTIFIER)
	switch p.la(1) {
	case KW_IN:
		p.consume()
		ctx := &ForInStatementContext{Def: def, Type: typ, Name: name}
		ctx.Collection = p.expression()
		p.nls()
		p.expect(RPAREN)
		ctx.Body = p.statementBlock()
		return finish(p, ctx, start)
	case COLON:
		p.consume()
		ctx := &ForColonStatementContext{Type: typ, Name: name}
		ctx.Collection = p.expression()
		p.nls()
		p.expect(RPAREN)
		ctx.Body = p.statementBlock()
		return finish(p, ctx, start)
	}
	p.noViableAlternative()
	return nil
}

func (p *parser) switchStatement() *SwitchStatementContext {
	start := p.mark()
	ctx := &SwitchStatementContext{}
	p.expect(KW_SWITCH)
	ctx.Expression = p.parenthesizedExpression()
	p.nls()
	p.expect(LCURVE)
	p.nls()
	for p.la(1) == KW_CASE {
		cs := p.mark()
		c := &CaseStatementContext{Case: p.consume()}
		c.Expression = p.expression()
		p.expect(COLON)
		c.Statements = p.blockStatements(KW_CASE, KW_DEFAULT, RCURVE)
		ctx.Cases = append(ctx.Cases, finish(p, c, cs))
	}
	if p.la(1) == KW_DEFAULT {
		ds := p.mark()
		d := &DefaultStatementContext{Default: p.consume()}
		p.expect(COLON)
		d.Statements = p.blockStatements(RCURVE)
		ctx.Default = finish(p, d, ds)
	}
	p.nls()
	p.expect(RCURVE)
	return finish(p, ctx, start)
}

func (p *parser) tryCatchStatement() *TryCatchFinallyStatementContext {
	start := p.mark()
	ctx := &TryCatchFinallyStatementContext{}
	p.expect(KW_TRY)
	p.nls()
	ctx.Try = p.block()
	for p.nlsThen(KW_CATCH) {
		ctx.Catches = append(ctx.Catches, p.catchBlock())
	}
	if p.nlsThen(KW_FINALLY) {
		fs := p.mark()
		p.consume()
		p.nls()
		ctx.Finally = finish(p, &FinallyBlockContext{Body: p.block()}, fs)
	}
	if len(ctx.Catches) == 0 && ctx.Finally == nil {
		p.fail(p.lt(1), "try without catch or finally")
	}
	return finish(p, ctx, start)
}

func (p *parser) catchBlock() *CatchBlockContext {
	start := p.mark()
	ctx := &CatchBlockContext{}
	p.expect(KW_CATCH)
	p.expect(LPAREN)
	p.accept(KW_FINAL)
	p.accept(KW_DEF)
	if !(p.la(1) == IDENTIFIER && p.la(2) == RPAREN) {
		ctx.Types = append(ctx.Types, p.className())
		for p.accept(BOR) != nil {
			ctx.Types = append(ctx.Types, p.className())
		}
	}
	ctx.Name = p.expect(IDENTIFIER)
	p.expect(RPAREN)
	p.nls()
	ctx.Body = p.block()
	return finish(p, ctx, start)
}

func (p *parser) returnStatement() *ReturnStatementContext {
	start := p.mark()
	ctx := &ReturnStatementContext{}
	p.expect(KW_RETURN)
	if !p.atStatementEnd() && p.la(1) != KW_CASE && p.la(1) != KW_DEFAULT {
		ctx.Expression = p.expression()
	}
	return finish(p, ctx, start)
}

func (p *parser) controlStatement() *ControlStatementContext {
	start := p.mark()
	ctx := &ControlStatementContext{Keyword: p.consume()}
	ctx.Label = p.accept(IDENTIFIER)
	return finish(p, ctx, start)
}

func (p *parser) assertStatement() *AssertStatementContext {
	start := p.mark()
	ctx := &AssertStatementContext{}
	p.expect(KW_ASSERT)
	ctx.Condition = p.expression()
	if p.la(1) == COLON || p.la(1) == COMMA {
		p.consume()
		p.nls()
		ctx.Message = p.expression()
	}
	return finish(p, ctx, start)
}

func (p *parser) synchronizedStatement() *SynchronizedStatementContext {
	start := p.mark()
	ctx := &SynchronizedStatementContext{}
	p.expect(KW_SYNCHRONIZED)
	ctx.Expression = p.parenthesizedExpression()
	p.nls()
	ctx.Body = p.block()
	return finish(p, ctx, start)
}

func (p *parser) labeledStatement() *LabeledStatementContext {
	start := p.mark()
	ctx := &LabeledStatementContext{Label: p.expect(IDENTIFIER)}
	p.expect(COLON)
	ctx.Statement = p.statementBlock()
	return finish(p, ctx, start)
}

// Declarations.

// isDeclarationAhead decides between a local declaration and an
// expression. A bare type must be a class name by IsClassName and be
// followed by a variable name.
func (p *parser) isDeclarationAhead() bool {
	switch p.la(1) {
	case AT:
		return p.la(2) != KW_INTERFACE
	case KW_FINAL, KW_DEF:
		return true
	case BUILT_IN_TYPE, IDENTIFIER:
		if !IsClassName(p.ts) {
			return false
		}
		return p.speculate(false, func() {
			p.genericClassName(false)
			if p.la(1) != IDENTIFIER || !isDeclaratorFollow(p.la(2)) {
				p.noViableAlternative()
			}
		})
	}
	return false
}

func (p *parser) declarationRule() *DeclarationRuleContext {
	start := p.mark()
	ctx := &DeclarationRuleContext{}
	for {
		if p.la(1) == AT {
			ctx.Annotations = append(ctx.Annotations, p.annotationClause())
			p.nls()
		} else if t := p.accept(KW_FINAL); t != nil {
			ctx.Final = t
			p.nls()
		} else {
			break
		}
	}
	ctx.Def = p.accept(KW_DEF)
	if p.la(1) == LPAREN {
		ctx.Tuple = p.tupleDeclaration()
		return finish(p, ctx, start)
	}
	if p.la(1) != IDENTIFIER || !isDeclaratorFollow(p.la(2)) {
		ctx.Type = p.genericClassName(false)
	}
	ctx.Declarations = p.variableDeclarators()
	return finish(p, ctx, start)
}

func (p *parser) tupleDeclaration() *TupleDeclarationContext {
	start := p.mark()
	ctx := &TupleDeclarationContext{}
	p.expect(LPAREN)
	for {
		p.nls()
		vs := p.mark()
		v := &TupleVariableContext{}
		if !(p.la(1) == IDENTIFIER && (p.la(2) == COMMA || p.la(2) == RPAREN)) {
			v.Type = p.genericClassName(false)
		}
		v.Name = p.expect(IDENTIFIER)
		ctx.Variables = append(ctx.Variables, finish(p, v, vs))
		if p.accept(COMMA) == nil {
			break
		}
	}
	p.nls()
	p.expect(RPAREN)
	if ctx.Assign = p.accept(ASSIGN); ctx.Assign != nil {
		p.nls()
		ctx.Init = p.expression()
	}
	return finish(p, ctx, start)
}

// Expression statements and command chains.

func (p *parser) expressionStatement() StatementContext {
	start := p.mark()
	e := p.expression()
	if p.startsCommandArgument() {
		if cmd := p.commandExpression(start, e); cmd != nil {
			return cmd
		}
	}
	return finish(p, &ExpressionStatementContext{Expression: e}, start)
}

// startsCommandArgument reports whether LT(1) can begin an argument of a
// call written without parentheses.
func (p *parser) startsCommandArgument() bool {
	switch p.la(1) {
	case IDENTIFIER, BUILT_IN_TYPE, STRING, GSTRING_START, INTEGER, DECIMAL,
		KW_NEW, KW_THIS, KW_SUPER, KW_TRUE, KW_FALSE, KW_NULL, NOT, BNOT:
		return true
	}
	return false
}

// commandExpression continues a statement whose head e names a method.
// The head is a variable (an implicit-this call) or a field access whose
// selector is the method name.
func (p *parser) commandExpression(start int, e ExpressionContext) *CommandExpressionStatementContext {
	ctx := &CommandExpressionStatementContext{}
	var name antlr.Token
	switch h := e.(type) {
	case *VariableExpressionContext:
		name = h.Symbol
	case *FieldAccessExpressionContext:
		switch h.Op.GetTokenType() {
		case DOT, SAFE_DOT, STAR_DOT:
		default:
			return nil
		}
		if h.Selector == nil || h.Selector.GetTokenType() != IDENTIFIER {
			return nil
		}
		ctx.Expression, ctx.Op, name = h.Expression, h.Op, h.Selector
	default:
		return nil
	}
	ctx.Children = append(ctx.Children, newTerminal(name), p.commandArguments())
	for p.la(1) == IDENTIFIER {
		ctx.Children = append(ctx.Children, newTerminal(p.consume()))
		switch {
		case p.la(1) == LPAREN:
			ctx.Children = append(ctx.Children, p.argumentList())
		case p.startsCommandArgument():
			ctx.Children = append(ctx.Children, p.commandArguments())
		default:
			return finish(p, ctx, start)
		}
	}
	return finish(p, ctx, start)
}

// commandArguments reads a comma separated argument list without
// parentheses.
func (p *parser) commandArguments() *ArgumentListContext {
	start := p.mark()
	ctx := &ArgumentListContext{}
	for {
		ctx.Arguments = append(ctx.Arguments, p.argument())
		if p.accept(COMMA) == nil {
			break
		}
		p.nls()
	}
	return finish(p, ctx, start)
}
