package parser

import "github.com/antlr4-go/antlr/v4"

func (p *parser) expression() ExpressionContext {
	return p.assignment()
}

func isAssignOp(ttype int) bool {
	switch ttype {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, MULT_ASSIGN, DIV_ASSIGN, MOD_ASSIGN, POWER_ASSIGN,
		BAND_ASSIGN, BOR_ASSIGN, XOR_ASSIGN, LSHIFT_ASSIGN, RSHIFT_ASSIGN, RUSHIFT_ASSIGN:
		return true
	}
	return false
}

// isTupleAssignmentAhead matches (a, b, ...) = at LT(1).
func (p *parser) isTupleAssignmentAhead() bool {
	k := 2
	for {
		if p.la(k) != IDENTIFIER {
			return false
		}
		k++
		if p.la(k) != COMMA {
			break
		}
		k++
	}
	return p.la(k) == RPAREN && p.la(k+1) == ASSIGN
}

func (p *parser) assignment() ExpressionContext {
	start := p.mark()
	if p.la(1) == LPAREN && p.isTupleAssignmentAhead() {
		ctx := &AssignmentExpressionContext{LParen: p.consume()}
		for {
			p.nls()
			ctx.Names = append(ctx.Names, p.expect(IDENTIFIER))
			if p.accept(COMMA) == nil {
				break
			}
		}
		p.expect(RPAREN)
		ctx.Op = p.expect(ASSIGN)
		p.nls()
		ctx.Right = p.assignment()
		return finish(p, ctx, start)
	}
	left := p.ternary()
	if isAssignOp(p.la(1)) {
		ctx := &AssignmentExpressionContext{Left: left, Op: p.consume()}
		p.nls()
		ctx.Right = p.assignment()
		return finish(p, ctx, start)
	}
	return left
}

func (p *parser) ternary() ExpressionContext {
	start := p.mark()
	cond := p.binary(0)
	switch p.la(1) {
	case QUESTION:
		p.consume()
		p.nls()
		ctx := &TernaryExpressionContext{Condition: cond, True: p.expression()}
		p.nls()
		p.expect(COLON)
		p.nls()
		ctx.False = p.ternary()
		return finish(p, ctx, start)
	case ELVIS:
		p.consume()
		p.nls()
		ctx := &ElvisExpressionContext{Base: cond, False: p.ternary()}
		return finish(p, ctx, start)
	}
	return cond
}

const (
	levelRelational = 6
	levelShift      = 7
)

// binaryLevels lists operators from the loosest binding to the tightest.
var binaryLevels = [][]int{
	{OR},
	{AND},
	{BOR},
	{XOR},
	{BAND},
	{EQUAL, UNEQUAL, SPACESHIP, FIND, MATCH},
	{LT, GT, LTE, GTE, KW_IN, KW_INSTANCEOF, KW_AS},
	{LSHIFT, RANGE, RANGE_EXCLUSIVE},
	{PLUS, MINUS},
	{MULT, DIV, MOD},
}

func (p *parser) binary(level int) ExpressionContext {
	if level == len(binaryLevels) {
		return p.unary()
	}
	start := p.mark()
	left := p.binary(level + 1)
	for {
		ops := p.binaryOperator(level)
		if ops == nil {
			return left
		}
		children := []Context{left}
		for _, t := range ops {
			children = append(children, newTerminal(t))
		}
		p.nls()
		switch ops[0].GetTokenType() {
		case KW_AS, KW_INSTANCEOF:
			children = append(children, p.genericClassName(false))
		default:
			children = append(children, p.binary(level+1))
		}
		left = finish(p, &BinaryExpressionContext{Children: children}, start)
	}
}

// adjacent reports whether b starts right where a stops.
func adjacent(a, b antlr.Token) bool {
	return a.GetStop()+1 == b.GetStart()
}

// binaryOperator consumes an operator of the given level. Shifts to the
// right arrive as two or three adjacent > tokens.
func (p *parser) binaryOperator(level int) []antlr.Token {
	t := p.la(1)
	if level == levelShift && t == GT && p.la(2) == GT && adjacent(p.lt(1), p.lt(2)) {
		n := 2
		if p.la(3) == GT && adjacent(p.lt(2), p.lt(3)) {
			n = 3
		}
		ops := make([]antlr.Token, n)
		for i := range ops {
			ops[i] = p.consume()
		}
		return ops
	}
	if level == levelRelational && t == GT && p.la(2) == GT && adjacent(p.lt(1), p.lt(2)) {
		return nil
	}
	if !contains(binaryLevels[level], t) {
		return nil
	}
	return []antlr.Token{p.consume()}
}

func (p *parser) unary() ExpressionContext {
	start := p.mark()
	switch p.la(1) {
	case INCREMENT, DECREMENT:
		ctx := &PrefixExpressionContext{Op: p.consume()}
		ctx.Expression = p.unary()
		return finish(p, ctx, start)
	case MINUS, PLUS, NOT, BNOT:
		ctx := &UnaryExpressionContext{Op: p.consume()}
		ctx.Expression = p.unary()
		return finish(p, ctx, start)
	case LPAREN:
		if p.isCastAhead() {
			p.consume()
			ctx := &CastExpressionContext{Type: p.genericClassName(false)}
			p.expect(RPAREN)
			ctx.Expression = p.unary()
			return finish(p, ctx, start)
		}
	}
	return p.power()
}

func startsOperand(ttype int) bool {
	switch ttype {
	case IDENTIFIER, BUILT_IN_TYPE, STRING, GSTRING_START, INTEGER, DECIMAL, LPAREN, LBRACK, LCURVE,
		KW_NEW, KW_THIS, KW_SUPER, KW_TRUE, KW_FALSE, KW_NULL, NOT, BNOT:
		return true
	}
	return false
}

// isCastAhead matches (Type) followed by an operand. Signs only follow a
// cast to a built-in type.
func (p *parser) isCastAhead() bool {
	if !IsClassName(shifted{p.ts, 1}) {
		return false
	}
	return p.speculate(false, func() {
		p.expect(LPAREN)
		t := p.genericClassName(false)
		p.expect(RPAREN)
		signed := t.Class.BuiltIn != nil && (p.la(1) == MINUS || p.la(1) == PLUS)
		if !startsOperand(p.la(1)) && !signed {
			p.noViableAlternative()
		}
	})
}

func (p *parser) power() ExpressionContext {
	start := p.mark()
	left := p.postfix()
	for p.la(1) == POWER {
		op := p.consume()
		p.nls()
		right := p.unary()
		left = finish(p, &BinaryExpressionContext{Children: []Context{left, newTerminal(op), right}}, start)
	}
	return left
}

func isDotOp(ttype int) bool {
	switch ttype {
	case DOT, SAFE_DOT, STAR_DOT, ATTR_DOT, MEMBER_POINTER:
		return true
	}
	return false
}

// dotAhead reports whether a member operator follows, possibly on the
// next line.
func (p *parser) dotAhead() bool {
	k := 1
	for p.la(k) == NL {
		k++
	}
	return isDotOp(p.la(k))
}

func (p *parser) postfix() ExpressionContext {
	start := p.mark()
	e := p.primary()
	for {
		switch {
		case p.dotAhead():
			p.nls()
			e = p.member(start, e)
		case p.la(1) == LBRACK:
			ctx := &IndexExpressionContext{Expression: e, LBrack: p.consume()}
			p.nls()
			for {
				ctx.Indices = append(ctx.Indices, p.listElement())
				p.nls()
				if p.accept(COMMA) == nil {
					break
				}
				p.nls()
			}
			p.expect(RBRACK)
			e = finish(p, ctx, start)
		case p.la(1) == LPAREN && isClosure(e):
			rule := &CallExpressionRuleContext{Closure: e.(*ClosureExpressionRuleContext)}
			rule.Arguments = p.argumentList()
			rule.Closures = p.trailingClosures()
			finish(p, rule, start)
			e = finish(p, &CallExpressionContext{Call: rule}, start)
		case p.la(1) == INCREMENT || p.la(1) == DECREMENT:
			return finish(p, &PostfixExpressionContext{Expression: e, Op: p.consume()}, start)
		default:
			return e
		}
	}
}

func isClosure(e ExpressionContext) bool {
	_, ok := e.(*ClosureExpressionRuleContext)
	return ok
}

// member parses the part after a member operator: a property access or a
// method call, decided by IsFollowedByLParen.
func (p *parser) member(start int, e ExpressionContext) ExpressionContext {
	op := p.consume()
	p.nls()
	callable := op.GetTokenType() != ATTR_DOT && op.GetTokenType() != MEMBER_POINTER
	isCall := callable && p.isCallAhead()

	switch {
	case p.la(1) == GSTRING_START:
		if isCall {
			return p.call(start, e, op)
		}
		ctx := &FieldAccessExpressionContext{Expression: e, Op: op, GString: p.gstring()}
		return finish(p, ctx, start)
	case p.la(1) == STRING:
		if isCall {
			return p.call(start, e, op)
		}
		ctx := &FieldAccessExpressionContext{Expression: e, Op: op, String: p.consume()}
		return finish(p, ctx, start)
	case p.la(1) == IDENTIFIER || p.la(1) == KW_THIS || p.la(1) == KW_TRAIT || IsKeyword(p.ts):
		if isCall {
			return p.call(start, e, op)
		}
		ctx := &FieldAccessExpressionContext{Expression: e, Op: op, Selector: p.consume()}
		return finish(p, ctx, start)
	}
	p.noViableAlternative()
	return nil
}

// isCallAhead reports whether the selector at LT(1) is called: it is
// followed by '(' or by a closure on the same line.
func (p *parser) isCallAhead() bool {
	if IsFollowedByLParen(p.ts) {
		return true
	}
	if p.la(1) == GSTRING_START {
		k := 1
		for p.la(k) != GSTRING_END && p.la(k) != EOF {
			k++
		}
		return p.la(k+1) == LCURVE
	}
	return p.la(2) == LCURVE
}

// call parses a call whose selector is at LT(1). e is the receiver, nil
// for the implicit one.
func (p *parser) call(start int, e ExpressionContext, op antlr.Token) *CallExpressionContext {
	rs := p.mark()
	rule := &CallExpressionRuleContext{}
	switch p.la(1) {
	case GSTRING_START:
		rule.GString = p.gstring()
	case STRING:
		rule.String = p.consume()
	default:
		rule.Selector = p.consume()
	}
	if p.nlsThen(LPAREN) {
		rule.Arguments = p.argumentList()
	}
	rule.Closures = p.trailingClosures()
	finish(p, rule, rs)
	return finish(p, &CallExpressionContext{Expression: e, Op: op, Call: rule}, start)
}

func (p *parser) trailingClosures() []*ClosureExpressionRuleContext {
	var list []*ClosureExpressionRuleContext
	for p.la(1) == LCURVE {
		list = append(list, p.closure())
	}
	return list
}

func (p *parser) primary() ExpressionContext {
	start := p.mark()
	switch p.la(1) {
	case INTEGER:
		return finish(p, &ConstantIntegerContext{Symbol: p.consume()}, start)
	case DECIMAL:
		return finish(p, &ConstantDecimalContext{Symbol: p.consume()}, start)
	case STRING:
		return finish(p, &ConstantStringContext{Symbol: p.consume()}, start)
	case GSTRING_START:
		return p.gstring()
	case KW_TRUE, KW_FALSE:
		return finish(p, &BoolExpressionContext{Symbol: p.consume()}, start)
	case KW_NULL:
		return finish(p, &NullExpressionContext{Symbol: p.consume()}, start)
	case KW_THIS:
		if p.la(2) == LPAREN {
			return p.call(start, nil, nil)
		}
		return finish(p, &ThisExpressionContext{Symbol: p.consume()}, start)
	case KW_SUPER:
		if p.la(2) == LPAREN {
			ctx := &ConstructorCallExpressionContext{Keyword: p.consume()}
			ctx.Arguments = p.argumentList()
			return finish(p, ctx, start)
		}
		return finish(p, &SuperExpressionContext{Symbol: p.consume()}, start)
	case IDENTIFIER:
		if p.isCallAhead() {
			return p.call(start, nil, nil)
		}
		return finish(p, &VariableExpressionContext{Symbol: p.consume()}, start)
	case BUILT_IN_TYPE:
		return finish(p, &VariableExpressionContext{Symbol: p.consume()}, start)
	case LPAREN:
		p.consume()
		p.nls()
		ctx := &ParenthesisExpressionContext{Expression: p.expression()}
		p.nls()
		p.expect(RPAREN)
		return finish(p, ctx, start)
	case LBRACK:
		return p.listOrMap()
	case LCURVE:
		return p.closure()
	case KW_NEW:
		return p.creator()
	}
	p.noViableAlternative()
	return nil
}

func (p *parser) listOrMap() ExpressionContext {
	start := p.mark()
	p.expect(LBRACK)
	p.nls()
	if p.la(1) == COLON && p.la(2) == RBRACK {
		p.consumeN(2)
		return finish(p, &MapConstructorContext{}, start)
	}
	if p.la(1) != RBRACK && p.isMapEntryAhead() {
		ctx := &MapConstructorContext{}
		for p.la(1) != RBRACK {
			ctx.Entries = append(ctx.Entries, p.mapEntry())
			p.nls()
			if p.accept(COMMA) == nil {
				break
			}
			p.nls()
		}
		p.nls()
		p.expect(RBRACK)
		return finish(p, ctx, start)
	}
	ctx := &ListConstructorContext{}
	for p.la(1) != RBRACK {
		ctx.Elements = append(ctx.Elements, p.listElement())
		p.nls()
		if p.accept(COMMA) == nil {
			break
		}
		p.nls()
	}
	p.nls()
	p.expect(RBRACK)
	return finish(p, ctx, start)
}

// listElement is an expression or a spread *expr.
func (p *parser) listElement() ExpressionContext {
	if p.la(1) == MULT {
		start := p.mark()
		p.consume()
		return finish(p, &SpreadExpressionContext{Expression: p.unary()}, start)
	}
	return p.expression()
}

// isMapEntryAhead reports whether a map key followed by ':' starts at LT(1).
func (p *parser) isMapEntryAhead() bool {
	switch p.la(1) {
	case MULT, IDENTIFIER, STRING, INTEGER, DECIMAL, KW_THIS, KW_TRAIT:
		return p.la(2) == COLON
	case GSTRING_START:
		k, depth := 1, 0
		for {
			switch p.la(k) {
			case GSTRING_START:
				depth++
			case GSTRING_END:
				depth--
			case EOF:
				return false
			}
			k++
			if depth == 0 {
				return p.la(k) == COLON
			}
		}
	case LPAREN:
		k, depth := 1, 0
		for {
			switch p.la(k) {
			case LPAREN:
				depth++
			case RPAREN:
				depth--
			case EOF:
				return false
			}
			k++
			if depth == 0 {
				return p.la(k) == COLON
			}
		}
	}
	return IsKeyword(p.ts) && p.la(2) == COLON
}

func (p *parser) mapEntry() *MapEntryContext {
	start := p.mark()
	ctx := &MapEntryContext{}
	switch p.la(1) {
	case MULT:
		ctx.Spread = p.consume()
	case GSTRING_START:
		ctx.KeyGString = p.gstring()
	case LPAREN:
		p.consume()
		p.nls()
		ctx.KeyExpression = p.expression()
		p.nls()
		p.expect(RPAREN)
	default:
		ctx.Key = p.consume()
	}
	p.expect(COLON)
	p.nls()
	ctx.Value = p.expression()
	return finish(p, ctx, start)
}

func (p *parser) argumentList() *ArgumentListContext {
	start := p.mark()
	ctx := &ArgumentListContext{}
	p.expect(LPAREN)
	p.nls()
	for p.la(1) != RPAREN {
		ctx.Arguments = append(ctx.Arguments, p.argument())
		p.nls()
		if p.accept(COMMA) == nil {
			break
		}
		p.nls()
	}
	p.nls()
	p.expect(RPAREN)
	return finish(p, ctx, start)
}

func (p *parser) argument() *ArgumentContext {
	start := p.mark()
	ctx := &ArgumentContext{}
	if p.isMapEntryAhead() {
		ctx.MapEntry = p.mapEntry()
	} else {
		ctx.Expression = p.listElement()
	}
	return finish(p, ctx, start)
}

func (p *parser) closure() *ClosureExpressionRuleContext {
	start := p.mark()
	ctx := &ClosureExpressionRuleContext{}
	p.expect(LCURVE)
	p.nls()
	if p.la(1) == CLOSURE_ARG_SEPARATOR {
		ctx.Arrow = p.consume()
	} else {
		ok := p.speculate(true, func() {
			ps := p.mark()
			params := p.argumentDeclarations()
			ctx.Parameters = finish(p, &ArgumentDeclarationListContext{Parameters: params}, ps)
			p.nls()
			ctx.Arrow = p.expect(CLOSURE_ARG_SEPARATOR)
		})
		if !ok {
			ctx.Parameters, ctx.Arrow = nil, nil
		}
	}
	body := &BlockStatementContext{Statements: p.blockStatements(RCURVE)}
	p.expect(RCURVE)
	ctx.Body = finish(p, body, start)
	return finish(p, ctx, start)
}

func (p *parser) gstring() *GStringContext {
	start := p.mark()
	ctx := &GStringContext{Begin: p.expect(GSTRING_START)}
	ctx.Values = append(ctx.Values, p.gstringValue())
	for p.la(1) == GSTRING_PART {
		ctx.Parts = append(ctx.Parts, p.consume())
		ctx.Values = append(ctx.Values, p.gstringValue())
	}
	ctx.End = p.expect(GSTRING_END)
	return finish(p, ctx, start)
}

func (p *parser) gstringValue() *GStringValueContext {
	start := p.mark()
	ctx := &GStringValueContext{}
	switch p.la(1) {
	case IDENTIFIER:
		ps := p.mark()
		path := &GStringPathContext{Name: p.consume()}
		for p.la(1) == GSTRING_PATH_PART {
			path.Parts = append(path.Parts, p.consume())
		}
		ctx.Path = finish(p, path, ps)
	case LCURVE:
		k := 2
		for p.la(k) == NL {
			k++
		}
		if p.la(k) == RCURVE {
			p.consumeN(k)
			break
		}
		ok := p.speculate(true, func() {
			p.expect(LCURVE)
			p.nls()
			ctx.Expression = p.expression()
			p.nls()
			p.expect(RCURVE)
		})
		if !ok {
			ctx.Expression = nil
			ctx.Closure = p.closure()
		}
	default:
		p.noViableAlternative()
	}
	return finish(p, ctx, start)
}

// creator parses new T[size]..., new T(args) and new T(args) { body }.
func (p *parser) creator() ExpressionContext {
	start := p.mark()
	newToken := p.expect(KW_NEW)
	ts := p.mark()
	class := p.className()
	if p.la(1) == LBRACK {
		ctx := &NewArrayExpressionContext{New: newToken, Type: class}
		for p.accept(LBRACK) != nil {
			p.nls()
			if p.la(1) != RBRACK {
				ctx.Sizes = append(ctx.Sizes, p.expression())
				p.nls()
			}
			p.expect(RBRACK)
		}
		return finish(p, ctx, start)
	}

	ctx := &NewInstanceExpressionContext{New: newToken}
	typ := &GenericClassNameContext{Class: class}
	if p.la(1) == LT {
		if p.la(2) == GT {
			ctx.Diamond = p.consume()
			p.consume()
		} else {
			typ.Generics = p.genericList()
		}
	}
	ctx.Type = finish(p, typ, ts)
	ctx.Arguments = p.argumentList()
	if p.la(1) == LCURVE {
		defer p.pushClass("")()
		ctx.Body = p.classBody(false)
	}
	return finish(p, ctx, start)
}
