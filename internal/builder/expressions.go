package builder

import (
	"strings"

	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
)

func (b *astBuilder) visitExpression(ctx parser.ExpressionContext) (ast.Expression, error) {
	switch e := ctx.(type) {
	case *parser.ParenthesisExpressionContext:
		return b.visitExpression(e.Expression)
	case *parser.ConstantIntegerContext:
		return b.numberConstant(e, e.Symbol.GetText(), parseInteger)
	case *parser.ConstantDecimalContext:
		return b.numberConstant(e, e.Symbol.GetText(), parseDecimal)
	case *parser.ConstantStringContext:
		return b.stringConstant(e.Symbol), nil
	case *parser.BoolExpressionContext:
		return b.boolConstant(e.Symbol), nil
	case *parser.NullExpressionContext:
		return stamp(ast.NullConstant(), e), nil
	case *parser.ThisExpressionContext:
		return stamp(ast.ThisExpression(), e), nil
	case *parser.SuperExpressionContext:
		return stamp(ast.SuperExpression(), e), nil
	case *parser.VariableExpressionContext:
		return stamp(ast.NewVariable(e.Symbol.GetText()), e), nil
	case *parser.GStringContext:
		return b.visitGString(e)
	case *parser.ListConstructorContext:
		elements, err := b.visitExpressions(e.Elements)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ListExpression{Expressions: elements}, e), nil
	case *parser.MapConstructorContext:
		m := &ast.MapExpression{}
		for _, entry := range e.Entries {
			me, err := b.visitMapEntry(entry)
			if err != nil {
				return nil, err
			}
			m.AddEntry(me)
		}
		return stamp(m, e), nil
	case *parser.ClosureExpressionRuleContext:
		return b.visitClosure(e)
	case *parser.NewArrayExpressionContext:
		sizes, err := b.visitExpressions(e.Sizes)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ArrayExpression{
			ElementType:     b.visitClassName(e.Type),
			Expressions:     []ast.Expression{},
			SizeExpressions: sizes,
		}, e), nil
	case *parser.NewInstanceExpressionContext:
		return b.visitNewInstance(e)
	case *parser.FieldAccessExpressionContext:
		return b.visitFieldAccess(e)
	case *parser.CallExpressionContext:
		return b.visitCall(e)
	case *parser.ConstructorCallExpressionContext:
		args, err := b.visitArgumentList(e.Arguments)
		if err != nil {
			return nil, err
		}
		typ := ast.SuperType()
		if e.Keyword.GetTokenType() == parser.KW_THIS {
			typ = ast.ThisType()
		}
		return stamp(&ast.ConstructorCallExpression{Type: typ, Arguments: args}, e), nil
	case *parser.IndexExpressionContext:
		return b.visitIndex(e)
	case *parser.PrefixExpressionContext:
		operand, err := b.visitExpression(e.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.PrefixExpression{Operation: opToken(e.Op, 1), Expression: operand}, e), nil
	case *parser.PostfixExpressionContext:
		operand, err := b.visitExpression(e.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.PostfixExpression{Expression: operand, Operation: opToken(e.Op, 1)}, e), nil
	case *parser.UnaryExpressionContext:
		return b.visitUnary(e)
	case *parser.SpreadExpressionContext:
		operand, err := b.visitExpression(e.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.SpreadExpression{Expression: operand}, e), nil
	case *parser.CastExpressionContext:
		typ, err := b.visitGenericClassName(e.Type)
		if err != nil {
			return nil, err
		}
		operand, err := b.visitExpression(e.Expression)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.CastExpression{Type: typ, Expression: operand}, e), nil
	case *parser.BinaryExpressionContext:
		return b.visitBinary(e)
	case *parser.TernaryExpressionContext:
		cond, err := b.visitExpression(e.Condition)
		if err != nil {
			return nil, err
		}
		t, err := b.visitExpression(e.True)
		if err != nil {
			return nil, err
		}
		f, err := b.visitExpression(e.False)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.TernaryExpression{Condition: ast.NewBoolean(cond), True: t, False: f}, e), nil
	case *parser.ElvisExpressionContext:
		base, err := b.visitExpression(e.Base)
		if err != nil {
			return nil, err
		}
		f, err := b.visitExpression(e.False)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ElvisOperatorExpression{Base: base, False: f}, e), nil
	case *parser.AssignmentExpressionContext:
		return b.visitAssignment(e)
	}
	return nil, internalError(ctx, "Unsupported expression type! %T", ctx)
}

func (b *astBuilder) visitExpressions(list []parser.ExpressionContext) ([]ast.Expression, error) {
	exprs := make([]ast.Expression, 0, len(list))
	for _, ctx := range list {
		e, err := b.visitExpression(ctx)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// Constants.

// numberConstant parses a numeric literal. Negative literals, produced by
// folding a unary minus, are not primitive.
func (b *astBuilder) numberConstant(source any, text string, parse func(string) (any, error)) (ast.Expression, error) {
	v, err := parse(text)
	if err != nil {
		return nil, syntaxError(source, err.Error())
	}
	c := ast.NewConstant(v)
	c.Primitive = !strings.HasPrefix(text, "-")
	return stamp(c, source), nil
}

func (b *astBuilder) stringConstant(t antlr.Token) *ast.ConstantExpression {
	c := ast.NewConstant(decodeStringLiteral(t.GetText()))
	c.Primitive = true
	return stamp(c, t)
}

func (b *astBuilder) boolConstant(t antlr.Token) *ast.ConstantExpression {
	c := ast.NewConstant(t.GetText() == "true")
	c.Primitive = true
	return stamp(c, t)
}

// visitGString rebuilds an interpolated string: n values between n+1
// literal fragments.
func (b *astBuilder) visitGString(ctx *parser.GStringContext) (*ast.GStringExpression, error) {
	d := delimiterOf(ctx.Begin.GetText())
	g := &ast.GStringExpression{Verbatim: ctx.GetText()}

	fragment := func(t antlr.Token, text string) {
		g.Strings = append(g.Strings, stamp(ast.NewConstant(text), t))
	}
	fragment(ctx.Begin, clearGStringStart(ctx.Begin.GetText(), d))
	for _, part := range ctx.Parts {
		fragment(part, clearGStringPart(part.GetText(), d))
	}
	fragment(ctx.End, clearGStringEnd(ctx.End.GetText(), d))

	for _, v := range ctx.Values {
		value, err := b.visitGStringValue(v)
		if err != nil {
			return nil, err
		}
		g.Values = append(g.Values, value)
	}
	return stamp(g, ctx), nil
}

// visitGStringValue builds one embedded value. A closure without an arrow
// is called in place; ${} is null.
func (b *astBuilder) visitGStringValue(ctx *parser.GStringValueContext) (ast.Expression, error) {
	switch {
	case ctx.Path != nil:
		var e ast.Expression = stamp(ast.NewVariable(ctx.Path.Name.GetText()), ctx.Path.Name)
		for _, part := range ctx.Path.Parts {
			prop := stamp(ast.NewConstant(strings.TrimPrefix(part.GetText(), ".")), part)
			e = stamp(&ast.PropertyExpression{Object: e, Property: prop}, []antlr.Token{ctx.Path.Name, part})
		}
		return e, nil
	case ctx.Closure != nil:
		closure, err := b.visitClosure(ctx.Closure)
		if err != nil {
			return nil, err
		}
		if ctx.Closure.Arrow != nil {
			return closure, nil
		}
		call := &ast.MethodCallExpression{
			Object:    closure,
			Method:    synthetic(ast.NewConstant("call")),
			Arguments: synthetic(ast.NewArgumentList()),
		}
		return stamp(call, closure), nil
	case ctx.Expression != nil:
		return b.visitExpression(ctx.Expression)
	}
	return stamp(ast.NullConstant(), ctx), nil
}

func (b *astBuilder) visitMapEntry(ctx *parser.MapEntryContext) (*ast.MapEntryExpression, error) {
	value, err := b.visitExpression(ctx.Value)
	if err != nil {
		return nil, err
	}
	var key ast.Expression
	switch {
	case ctx.Spread != nil:
		key = stamp(&ast.SpreadMapExpression{Expression: value}, ctx)
	case ctx.Key != nil:
		switch ctx.Key.GetTokenType() {
		case parser.STRING:
			key = b.stringConstant(ctx.Key)
		case parser.INTEGER:
			key, err = b.numberConstant(ctx.Key, ctx.Key.GetText(), parseInteger)
		case parser.DECIMAL:
			key, err = b.numberConstant(ctx.Key, ctx.Key.GetText(), parseDecimal)
		default:
			key = stamp(ast.NewConstant(ctx.Key.GetText()), ctx.Key)
		}
		if err != nil {
			return nil, err
		}
	case ctx.KeyGString != nil:
		if key, err = b.visitGString(ctx.KeyGString); err != nil {
			return nil, err
		}
	case ctx.KeyExpression != nil:
		if key, err = b.visitExpression(ctx.KeyExpression); err != nil {
			return nil, err
		}
	default:
		return nil, syntaxError(ctx, "Unsupported map key type!")
	}
	return stamp(&ast.MapEntryExpression{Key: key, Value: value}, ctx), nil
}

// visitClosure builds a closure. Without an arrow the parameter list is
// implicit and empty; an arrow with no parameters declares none.
func (b *astBuilder) visitClosure(ctx *parser.ClosureExpressionRuleContext) (*ast.ClosureExpression, error) {
	c := &ast.ClosureExpression{Parameters: []*ast.Parameter{}}
	if ctx.Arrow != nil {
		c.ExplicitParameters = true
		c.Parameters = nil
		if ctx.Parameters != nil && len(ctx.Parameters.Parameters) > 0 {
			params, err := b.visitParameters(ctx.Parameters)
			if err != nil {
				return nil, err
			}
			c.Parameters = params
		}
	}
	code, err := b.visitBlock(ctx.Body)
	if err != nil {
		return nil, err
	}
	c.Code = code
	return stamp(c, ctx), nil
}

// Operators.

func (b *astBuilder) visitUnary(ctx *parser.UnaryExpressionContext) (ast.Expression, error) {
	switch ctx.Op.GetTokenType() {
	case parser.MINUS:
		switch lit := ctx.Expression.(type) {
		case *parser.ConstantIntegerContext:
			return b.numberConstant(ctx, "-"+lit.Symbol.GetText(), parseInteger)
		case *parser.ConstantDecimalContext:
			return b.numberConstant(ctx, "-"+lit.Symbol.GetText(), parseDecimal)
		}
	case parser.PLUS:
		switch ctx.Expression.(type) {
		case *parser.ConstantIntegerContext, *parser.ConstantDecimalContext:
			return b.visitExpression(ctx.Expression)
		}
	}

	operand, err := b.visitExpression(ctx.Expression)
	if err != nil {
		return nil, err
	}
	var e ast.Expression
	switch ctx.Op.GetTokenType() {
	case parser.MINUS:
		e = &ast.UnaryMinusExpression{Expression: operand}
	case parser.PLUS:
		e = &ast.UnaryPlusExpression{Expression: operand}
	case parser.NOT:
		e = &ast.NotExpression{Expression: operand}
	case parser.BNOT:
		e = &ast.BitwiseNegationExpression{Expression: operand}
	default:
		return nil, internalError(ctx, "unsupported unary operator %s", ctx.Op.GetText())
	}
	return stamp(e, ctx), nil
}

// visitBinary builds a binary operation. Ranges, as and instanceof have
// their own node shapes.
func (b *astBuilder) visitBinary(ctx *parser.BinaryExpressionContext) (ast.Expression, error) {
	op, ok := ctx.Children[1].(*parser.TerminalContext)
	if !ok {
		return nil, internalError(ctx, "binary expression without operator")
	}
	count := 1
	for _, child := range ctx.Children[2 : len(ctx.Children)-1] {
		if t, ok := child.(*parser.TerminalContext); ok && t.Symbol.GetTokenType() == parser.GT {
			count++
		}
	}
	left, err := b.visitExpression(ctx.Left())
	if err != nil {
		return nil, err
	}

	var e ast.Expression
	switch op.Symbol.GetTokenType() {
	case parser.KW_AS, parser.KW_INSTANCEOF:
		typeCtx, ok := ctx.Right().(*parser.GenericClassNameContext)
		if !ok {
			return nil, internalError(ctx, "%s without a type", op.Symbol.GetText())
		}
		typ, err := b.visitGenericClassName(typeCtx)
		if err != nil {
			return nil, err
		}
		if op.Symbol.GetTokenType() == parser.KW_AS {
			e = &ast.CastExpression{Type: typ, Expression: left, Coerce: true}
		} else {
			right := stamp(&ast.ClassExpression{Type: typ}, typeCtx)
			e = &ast.BinaryExpression{Left: left, Operation: opToken(op.Symbol, 1), Right: right}
		}
	default:
		rightCtx, ok := ctx.Right().(parser.ExpressionContext)
		if !ok {
			return nil, internalError(ctx, "binary expression without right operand")
		}
		right, err := b.visitExpression(rightCtx)
		if err != nil {
			return nil, err
		}
		switch op.Symbol.GetTokenType() {
		case parser.RANGE, parser.RANGE_EXCLUSIVE:
			inclusive := !strings.HasSuffix(op.Symbol.GetText(), "<")
			e = &ast.RangeExpression{From: left, To: right, Inclusive: inclusive}
		default:
			e = &ast.BinaryExpression{Left: left, Operation: opToken(op.Symbol, count), Right: right}
		}
	}
	return stamp(e, ctx), nil
}

func (b *astBuilder) visitAssignment(ctx *parser.AssignmentExpressionContext) (ast.Expression, error) {
	var left ast.Expression
	var err error
	if ctx.LParen != nil {
		tuple := &ast.TupleExpression{}
		for _, name := range ctx.Names {
			tuple.Expressions = append(tuple.Expressions, stamp(ast.NewVariable(name.GetText()), name))
		}
		left = stamp(tuple, []antlr.Token{ctx.LParen, ctx.Names[len(ctx.Names)-1]})
	} else if left, err = b.visitExpression(ctx.Left); err != nil {
		return nil, err
	}
	right, err := b.visitExpression(ctx.Right)
	if err != nil {
		return nil, err
	}
	return stamp(&ast.BinaryExpression{Left: left, Operation: opToken(ctx.Op, 1), Right: right}, ctx), nil
}

// visitFieldAccess builds property, attribute and method pointer reads.
func (b *astBuilder) visitFieldAccess(ctx *parser.FieldAccessExpressionContext) (ast.Expression, error) {
	object, err := b.visitExpression(ctx.Expression)
	if err != nil {
		return nil, err
	}
	property, err := b.memberName(ctx, ctx.Selector, ctx.String, ctx.GString)
	if err != nil {
		return nil, err
	}

	var e ast.Expression
	switch ctx.Op.GetTokenType() {
	case parser.ATTR_DOT:
		e = &ast.AttributeExpression{PropertyExpression: ast.PropertyExpression{Object: object, Property: property}}
	case parser.MEMBER_POINTER:
		e = &ast.MethodPointerExpression{Expression: object, MethodName: property}
	case parser.SAFE_DOT:
		e = &ast.PropertyExpression{Object: object, Property: property, Safe: true}
	case parser.STAR_DOT:
		e = &ast.PropertyExpression{Object: object, Property: property, Safe: true, SpreadSafe: true}
	default:
		e = &ast.PropertyExpression{Object: object, Property: property}
	}
	return stamp(e, ctx), nil
}

// memberName converts the name after a dot: an identifier or keyword, a
// string literal, or an interpolated string.
func (b *astBuilder) memberName(ctx parser.Context, selector, str antlr.Token, gstring *parser.GStringContext) (ast.Expression, error) {
	switch {
	case selector != nil:
		return stamp(ast.NewConstant(selector.GetText()), selector), nil
	case str != nil:
		return b.stringConstant(str), nil
	case gstring != nil:
		return b.visitGString(gstring)
	}
	return nil, internalError(ctx, "member access without a name")
}

// visitIndex builds a[i] as a binary operation on [. Several indices form a
// wrapped list; a single spread index is wrapped in a list.
func (b *astBuilder) visitIndex(ctx *parser.IndexExpressionContext) (ast.Expression, error) {
	left, err := b.visitExpression(ctx.Expression)
	if err != nil {
		return nil, err
	}
	indices, err := b.visitExpressions(ctx.Indices)
	if err != nil {
		return nil, err
	}

	var right ast.Expression
	switch {
	case len(indices) == 1:
		right = indices[0]
		if _, spread := right.(*ast.SpreadExpression); spread {
			right = stamp(&ast.ListExpression{Expressions: indices}, ctx.Indices[0])
		}
	default:
		list := &ast.ListExpression{Expressions: indices, Wrapped: true}
		right = stamp(list, contextRange(ctx.Indices[0], ctx.Indices[len(ctx.Indices)-1]))
	}
	return stamp(&ast.BinaryExpression{Left: left, Operation: opToken(ctx.LBrack, 1), Right: right}, ctx), nil
}
