package builder

import (
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"
)

// visitCall builds a method call. Calls without a receiver are on the
// implicit this, and this(...) there is a constructor call.
func (b *astBuilder) visitCall(ctx *parser.CallExpressionContext) (ast.Expression, error) {
	rule := ctx.Call
	closureCall := rule.Closure != nil

	var object ast.Expression
	var err error
	switch {
	case closureCall:
		if object, err = b.visitClosure(rule.Closure); err != nil {
			return nil, err
		}
	case ctx.Expression != nil:
		if object, err = b.visitExpression(ctx.Expression); err != nil {
			return nil, err
		}
	default:
		object = synthetic(ast.ThisExpression())
	}

	var method ast.Expression
	if closureCall {
		method = synthetic(ast.NewConstant("call"))
	} else if method, err = b.memberName(rule, rule.Selector, rule.String, rule.GString); err != nil {
		return nil, err
	}

	args, err := b.visitCallArguments(rule.Arguments, rule.Closures)
	if err != nil {
		return nil, err
	}

	implicitThis := !closureCall && ctx.Expression == nil
	if implicitThis && rule.Selector != nil && rule.Selector.GetTokenType() == parser.KW_THIS {
		return stamp(&ast.ConstructorCallExpression{Type: ast.ThisType(), Arguments: args}, ctx), nil
	}

	call := &ast.MethodCallExpression{
		Object:       object,
		Method:       method,
		Arguments:    args,
		ImplicitThis: implicitThis,
	}
	if ctx.Expression != nil && ctx.Op != nil {
		call.Safe = ctx.Op.GetTokenType() == parser.SAFE_DOT
		call.SpreadSafe = ctx.Op.GetTokenType() == parser.STAR_DOT
	}
	return stamp(call, ctx), nil
}

// visitCallArguments builds the argument list followed by any trailing
// closures.
func (b *astBuilder) visitCallArguments(ctx *parser.ArgumentListContext, closures []*parser.ClosureExpressionRuleContext) (ast.Expression, error) {
	args, err := b.visitArgumentList(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range closures {
		closure, err := b.visitClosure(c)
		if err != nil {
			return nil, err
		}
		args = appendArgument(args, closure)
	}
	if ctx == nil && len(closures) > 0 {
		stamp(args, contextRange(closures[0], closures[len(closures)-1]))
	}
	return convertArgumentList(args), nil
}

// visitArgumentList splits arguments into named entries and positional
// expressions. Positional arguments make an ordinary list with the named
// entries, if any, first as one map. Named entries alone make a tuple
// holding a named argument list.
func (b *astBuilder) visitArgumentList(ctx *parser.ArgumentListContext) (ast.Expression, error) {
	if ctx == nil {
		return synthetic(ast.NewArgumentList()), nil
	}
	var entries []*ast.MapEntryExpression
	var exprs []ast.Expression
	for _, arg := range ctx.Arguments {
		if arg.MapEntry != nil {
			entry, err := b.visitMapEntry(arg.MapEntry)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
			continue
		}
		e, err := b.visitExpression(arg.Expression)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	switch {
	case len(exprs) > 0:
		if len(entries) > 0 {
			m := &ast.MapExpression{Entries: entries}
			m.SetSpan(entriesSpan(entries))
			exprs = append([]ast.Expression{m}, exprs...)
		}
		return stamp(ast.NewArgumentList(exprs...), ctx), nil
	case len(entries) > 0:
		named := stamp(&ast.NamedArgumentListExpression{MapExpression: ast.MapExpression{Entries: entries}}, ctx)
		return stamp(&ast.TupleExpression{Expressions: []ast.Expression{named}}, ctx), nil
	}
	return stamp(ast.NewArgumentList(), ctx), nil
}

// entriesSpan covers the first through the last entry.
func entriesSpan(entries []*ast.MapEntryExpression) ast.Span {
	first, last := entries[0].Span(), entries[len(entries)-1].Span()
	return ast.Span{
		StartLine:   first.StartLine,
		StartColumn: first.StartColumn,
		EndLine:     last.EndLine,
		EndColumn:   last.EndColumn,
	}
}

func appendArgument(args ast.Expression, e ast.Expression) ast.Expression {
	switch a := args.(type) {
	case *ast.ArgumentListExpression:
		a.Expressions = append(a.Expressions, e)
	case *ast.TupleExpression:
		a.Expressions = append(a.Expressions, e)
	}
	return args
}

// convertArgumentList rewrites a named-argument tuple that also holds a
// closure into an ordinary argument list whose named arguments form a
// leading map.
func convertArgumentList(args ast.Expression) ast.Expression {
	tuple, ok := args.(*ast.TupleExpression)
	if !ok {
		return args
	}
	named, closures := 0, 0
	converted := make([]ast.Expression, 0, len(tuple.Expressions))
	for _, e := range tuple.Expressions {
		switch v := e.(type) {
		case *ast.NamedArgumentListExpression:
			named++
			m := &ast.MapExpression{Entries: v.Entries}
			m.SetSpan(v.Span())
			converted = append(converted, m)
			continue
		case *ast.ClosureExpression:
			closures++
		}
		converted = append(converted, e)
	}
	if named == 0 || closures == 0 {
		return args
	}
	return stamp(ast.NewArgumentList(converted...), tuple)
}

// visitCommandExpression builds a call chain written without parentheses:
// name args name args ... with an optional trailing property name.
func (b *astBuilder) visitCommandExpression(ctx *parser.CommandExpressionStatementContext) (ast.Statement, error) {
	hasExpression := ctx.Expression != nil
	var e ast.Expression
	if hasExpression {
		var err error
		if e, err = b.visitExpression(ctx.Expression); err != nil {
			return nil, err
		}
	} else {
		e = synthetic(ast.ThisExpression())
	}

	children := ctx.Children
	var property *parser.TerminalContext
	if len(children)%2 == 1 {
		property, _ = children[len(children)-1].(*parser.TerminalContext)
		children = children[:len(children)-1]
	}

	for i := 0; i+1 < len(children); i += 2 {
		name, ok := children[i].(*parser.TerminalContext)
		if !ok {
			return nil, internalError(children[i], "command expression without method name")
		}
		argsCtx, ok := children[i+1].(*parser.ArgumentListContext)
		if !ok {
			return nil, internalError(children[i+1], "command expression without arguments")
		}
		args, err := b.visitArgumentList(argsCtx)
		if err != nil {
			return nil, err
		}
		call := &ast.MethodCallExpression{
			Object:       e,
			Method:       stamp(ast.NewConstant(name.Symbol.GetText()), name),
			Arguments:    convertArgumentList(args),
			ImplicitThis: i == 0 && !hasExpression,
		}
		if hasExpression {
			call.Safe = ctx.Op.GetTokenType() == parser.SAFE_DOT
			call.SpreadSafe = ctx.Op.GetTokenType() == parser.STAR_DOT
		}
		e = stamp(call, contextRange(ctx, argsCtx))
	}

	if property != nil {
		prop := stamp(ast.NewConstant(property.Symbol.GetText()), property)
		e = stamp(&ast.PropertyExpression{Object: e, Property: prop}, contextRange(ctx, property))
	}
	return stamp(&ast.ExpressionStatement{Expression: e}, ctx), nil
}

// visitNewInstance builds new T(args), or an anonymous class when a body
// follows. Anonymous classes are named after the enclosing class, or the
// script class at top level, with a module-wide counter.
func (b *astBuilder) visitNewInstance(ctx *parser.NewInstanceExpressionContext) (ast.Expression, error) {
	creating, err := b.visitGenericClassName(ctx.Type)
	if err != nil {
		return nil, err
	}
	if ctx.Diamond != nil {
		creating.GenericsTypes = []*ast.GenericsType{}
	}
	args, err := b.visitArgumentList(ctx.Arguments)
	if err != nil {
		return nil, err
	}
	if ctx.Body == nil {
		return stamp(&ast.ConstructorCallExpression{Type: creating, Arguments: args}, ctx), nil
	}

	outer := b.currentClass()
	if outer == nil {
		outer = b.module.ScriptClass()
	}
	superClass := stamp(ast.MakeType(creating.Name), ctx.Type)
	inner := ast.NewInnerClass(outer, b.anonymousName(outer), ast.AccPublic, superClass)
	inner.Anonymous = true
	stamp(inner, ctx)
	b.registerInner(inner)
	b.module.AddClass(inner)

	err = b.withClass(inner, func() error {
		return b.visitClassBody(inner, ctx.Body)
	})
	if err != nil {
		return nil, err
	}
	call := &ast.ConstructorCallExpression{Type: inner, Arguments: args, UsingAnonymousInnerClass: true}
	return stamp(call, ctx), nil
}
