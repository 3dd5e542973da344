package parser

import (
	"github.com/antlr4-go/antlr/v4"
)

func (p *parser) annotations() []*AnnotationClauseContext {
	var list []*AnnotationClauseContext
	for p.la(1) == AT && p.la(2) != KW_INTERFACE {
		list = append(list, p.annotationClause())
		p.nls()
	}
	return list
}

func (p *parser) packageDefinition() *PackageDefinitionContext {
	start := p.mark()
	ctx := &PackageDefinitionContext{Annotations: p.annotations()}
	p.expect(KW_PACKAGE)
	ctx.Names = p.qualifiedName()
	return finish(p, ctx, start)
}

func (p *parser) qualifiedName() []antlr.Token {
	names := []antlr.Token{p.expect(IDENTIFIER)}
	for p.la(1) == DOT && p.la(2) == IDENTIFIER {
		p.consume()
		names = append(names, p.consume())
	}
	return names
}

func (p *parser) importStatement() *ImportStatementContext {
	start := p.mark()
	ctx := &ImportStatementContext{Annotations: p.annotations()}
	p.expect(KW_IMPORT)
	ctx.Static = p.accept(KW_STATIC)
	ctx.Names = p.qualifiedName()
	if p.la(1) == DOT && p.la(2) == MULT {
		p.consume()
		ctx.Star = p.consume()
	}
	if p.accept(KW_AS) != nil {
		ctx.Alias = p.expect(IDENTIFIER)
	}
	return finish(p, ctx, start)
}

// annotationsAndModifiers reads annotations and modifiers in any order.
func (p *parser) annotationsAndModifiers() ([]*AnnotationClauseContext, []antlr.Token) {
	var anns []*AnnotationClauseContext
	var mods []antlr.Token
	for {
		switch {
		case p.la(1) == AT && p.la(2) != KW_INTERFACE:
			anns = append(anns, p.annotationClause())
			p.nls()
		case isModifier(p.la(1)) && !(p.la(1) == KW_SYNCHRONIZED && p.la(2) == LPAREN):
			mods = append(mods, p.consume())
			p.nls()
		default:
			return anns, mods
		}
	}
}

func (p *parser) classDeclaration() *ClassDeclarationContext {
	start := p.mark()
	ctx := &ClassDeclarationContext{}
	ctx.Annotations, ctx.Modifiers = p.annotationsAndModifiers()
	if p.la(1) == AT {
		ctx.At = p.consume()
		ctx.Kind = p.expect(KW_INTERFACE)
	} else {
		switch p.la(1) {
		case KW_CLASS, KW_INTERFACE, KW_ENUM, KW_TRAIT:
			ctx.Kind = p.consume()
		default:
			p.noViableAlternative()
		}
	}
	ctx.Name = p.expect(IDENTIFIER)
	if p.la(1) == LT {
		ctx.Generics = p.genericDeclarationList()
	}
	p.nls()
	if p.accept(KW_EXTENDS) != nil {
		p.nls()
		ctx.Extends = p.genericClassNameList()
		p.nls()
	}
	if p.accept(KW_IMPLEMENTS) != nil {
		p.nls()
		ctx.Implements = p.genericClassNameList()
		p.nls()
	}
	defer p.pushClass(ctx.Name.GetText())()
	ctx.Body = p.classBody(ctx.IsEnum())
	return finish(p, ctx, start)
}

func (p *parser) genericClassNameList() []*GenericClassNameContext {
	list := []*GenericClassNameContext{p.genericClassName(false)}
	for p.accept(COMMA) != nil {
		p.nls()
		list = append(list, p.genericClassName(false))
	}
	return list
}

func (p *parser) classBody(enum bool) *ClassBodyContext {
	start := p.mark()
	ctx := &ClassBodyContext{}
	p.expect(LCURVE)
	p.nls()
	if enum {
		ctx.EnumConstants = p.enumConstants()
	}
	for {
		for p.la(1) == NL || p.la(1) == SEMICOLON {
			p.consume()
		}
		if p.la(1) == RCURVE {
			break
		}
		ctx.Members = append(ctx.Members, p.classMember())
		p.separators()
	}
	p.expect(RCURVE)
	return finish(p, ctx, start)
}

func (p *parser) isEnumConstantAhead() bool {
	k := 1
	for p.la(k) == AT {
		k = p.skipAnnotationAhead(k)
		for p.la(k) == NL {
			k++
		}
	}
	if p.la(k) != IDENTIFIER || p.lt(k).GetText() == p.currentClass() {
		return false
	}
	switch p.la(k + 1) {
	case COMMA, NL, SEMICOLON, RCURVE, LPAREN:
		return true
	}
	return false
}

func (p *parser) enumConstants() []*EnumConstantContext {
	var list []*EnumConstantContext
	for p.isEnumConstantAhead() {
		start := p.mark()
		c := &EnumConstantContext{Annotations: p.annotations()}
		c.Name = p.expect(IDENTIFIER)
		if p.la(1) == LPAREN {
			c.Arguments = p.argumentList()
		}
		list = append(list, finish(p, c, start))
		p.nls()
		if p.accept(COMMA) == nil {
			break
		}
		p.nls()
	}
	return list
}

func (p *parser) classMember() Context {
	k := p.skipModifiersAhead(1)
	switch p.la(k) {
	case KW_CLASS, KW_INTERFACE, KW_ENUM, KW_TRAIT:
		return p.classDeclaration()
	case AT:
		if p.la(k+1) == KW_INTERFACE {
			return p.classDeclaration()
		}
	case LCURVE:
		return p.initializer()
	}
	if p.isConstructorAhead() {
		return p.constructorDeclaration()
	}
	if m := p.tryMethodDeclaration(false); m != nil {
		return m
	}
	return p.fieldDeclaration()
}

func (p *parser) initializer() Context {
	start := p.mark()
	if p.accept(KW_STATIC) != nil {
		p.nls()
		ctx := &ClassInitializerContext{Body: p.block()}
		return finish(p, ctx, start)
	}
	ctx := &ObjectInitializerContext{Body: p.block()}
	return finish(p, ctx, start)
}

// isConstructorAhead reports whether annotations and an optional
// visibility modifier are followed by the current class name and '('.
func (p *parser) isConstructorAhead() bool {
	k := 1
	for p.la(k) == AT {
		k = p.skipAnnotationAhead(k)
		for p.la(k) == NL {
			k++
		}
	}
	la := shifted{p.ts, k - 1}
	name := p.currentClass()
	if name == "" || !IsCurrentClassName(la, name) {
		return false
	}
	next := k + 1
	if p.la(k) == VISIBILITY_MODIFIER {
		next++
	}
	return p.la(next) == LPAREN
}

// shifted offsets a lookahead so predicates can start mid-stream.
type shifted struct {
	ts     Lookahead
	offset int
}

func (s shifted) LT(k int) antlr.Token {
	return s.ts.LT(k + s.offset)
}

func (p *parser) constructorDeclaration() *ConstructorDeclarationContext {
	start := p.mark()
	ctx := &ConstructorDeclarationContext{}
	ctx.Annotations, ctx.Modifiers = p.annotationsAndModifiers()
	ctx.Name = p.expect(IDENTIFIER)
	ctx.Parameters = p.argumentDeclarationList()
	p.nls()
	ctx.Throws = p.throwsClause()
	p.nls()
	ctx.Body = p.block()
	return finish(p, ctx, start)
}

func (p *parser) throwsClause() []*ClassNameContext {
	if p.accept(KW_THROWS) == nil {
		return nil
	}
	p.nls()
	list := []*ClassNameContext{p.className()}
	for p.accept(COMMA) != nil {
		p.nls()
		list = append(list, p.className())
	}
	return list
}

// tryMethodDeclaration parses a method declaration if one starts here.
// Script-level methods need a body; class members may end after the
// header or carry an annotation default.
func (p *parser) tryMethodDeclaration(script bool) *MethodDeclarationContext {
	ok := p.speculate(false, func() {
		p.methodHeader(script)
	})
	if !ok {
		return nil
	}
	return p.methodDeclaration(script)
}

func (p *parser) methodDeclaration(script bool) *MethodDeclarationContext {
	start := p.mark()
	ctx := p.methodHeader(script)
	if p.la(1) == KW_DEFAULT {
		ctx.Default = p.consume()
		p.nls()
		ctx.DefaultValue = p.annotationParameter()
	} else if p.nlsThen(LCURVE) {
		ctx.Body = p.block()
	}
	return finish(p, ctx, start)
}

// methodHeader parses up to the closing parenthesis and the throws clause,
// and checks that what follows can continue a method.
func (p *parser) methodHeader(script bool) *MethodDeclarationContext {
	ctx := &MethodDeclarationContext{}
	ctx.Annotations, ctx.Modifiers = p.annotationsAndModifiers()
	if p.la(1) == LT {
		ctx.Generics = p.genericDeclarationList()
		p.nls()
	}
	ctx.Def = p.accept(KW_DEF)
	if ctx.Def != nil {
		p.nls()
	}
	if !(p.la(1) == IDENTIFIER || p.la(1) == STRING) || p.la(2) != LPAREN {
		ctx.ReturnType = p.genericClassName(false)
	}
	if ctx.Def == nil && ctx.ReturnType == nil && len(ctx.Modifiers) == 0 && len(ctx.Annotations) == 0 && ctx.Generics == nil {
		p.noViableAlternative()
	}
	switch p.la(1) {
	case IDENTIFIER, STRING:
		ctx.Name = p.consume()
	default:
		p.noViableAlternative()
	}
	ctx.Parameters = p.argumentDeclarationList()
	if p.nlsThen(KW_THROWS) {
		ctx.Throws = p.throwsClause()
	}
	switch {
	case p.nlsThen(LCURVE) && p.la(1) == LCURVE:
	case !script && (p.la(1) == KW_DEFAULT || p.atStatementEnd()):
	default:
		p.noViableAlternative()
	}
	return ctx
}

func (p *parser) fieldDeclaration() *FieldDeclarationContext {
	start := p.mark()
	ctx := &FieldDeclarationContext{}
	ctx.Annotations, ctx.Modifiers = p.annotationsAndModifiers()
	ctx.Def = p.accept(KW_DEF)
	if p.la(1) != IDENTIFIER || !isDeclaratorFollow(p.la(2)) {
		ctx.Type = p.genericClassName(false)
	}
	if ctx.Def == nil && ctx.Type == nil && len(ctx.Modifiers) == 0 && len(ctx.Annotations) == 0 {
		p.noViableAlternative()
	}
	ctx.Declarations = p.variableDeclarators()
	return finish(p, ctx, start)
}

func isDeclaratorFollow(ttype int) bool {
	switch ttype {
	case ASSIGN, COMMA, NL, SEMICOLON, RCURVE, EOF:
		return true
	}
	return false
}

func (p *parser) variableDeclarators() []*VariableDeclaratorContext {
	list := []*VariableDeclaratorContext{p.variableDeclarator()}
	for p.accept(COMMA) != nil {
		p.nls()
		list = append(list, p.variableDeclarator())
	}
	return list
}

func (p *parser) variableDeclarator() *VariableDeclaratorContext {
	start := p.mark()
	ctx := &VariableDeclaratorContext{Name: p.expect(IDENTIFIER)}
	if ctx.Assign = p.accept(ASSIGN); ctx.Assign != nil {
		p.nls()
		ctx.Init = p.expression()
	}
	return finish(p, ctx, start)
}

// Types.

func (p *parser) className() *ClassNameContext {
	start := p.mark()
	ctx := &ClassNameContext{}
	if ctx.BuiltIn = p.accept(BUILT_IN_TYPE); ctx.BuiltIn == nil {
		ctx.Names = p.qualifiedName()
	}
	return finish(p, ctx, start)
}

// genericClassName parses a type use. Varargs are accepted only where
// allowEllipsis is set.
func (p *parser) genericClassName(allowEllipsis bool) *GenericClassNameContext {
	start := p.mark()
	ctx := &GenericClassNameContext{Class: p.className()}
	if p.la(1) == LT {
		ctx.Generics = p.genericList()
	}
	for p.la(1) == LBRACK && p.la(2) == RBRACK {
		p.consumeN(2)
		ctx.Dimensions++
	}
	if allowEllipsis {
		ctx.Ellipsis = p.accept(ELLIPSIS)
	}
	return finish(p, ctx, start)
}

func (p *parser) consumeN(n int) {
	for i := 0; i < n; i++ {
		p.consume()
	}
}

func (p *parser) genericList() *GenericListContext {
	start := p.mark()
	ctx := &GenericListContext{}
	p.expect(LT)
	ctx.Elements = append(ctx.Elements, p.genericListElement())
	for p.accept(COMMA) != nil {
		p.nls()
		ctx.Elements = append(ctx.Elements, p.genericListElement())
	}
	p.expect(GT)
	return finish(p, ctx, start)
}

func (p *parser) genericListElement() *GenericListElementContext {
	start := p.mark()
	ctx := &GenericListElementContext{}
	if ctx.Wildcard = p.accept(QUESTION); ctx.Wildcard != nil {
		if ctx.Extends = p.accept(KW_EXTENDS); ctx.Extends != nil {
			ctx.Bound = p.genericClassName(false)
		} else if ctx.Super = p.accept(KW_SUPER); ctx.Super != nil {
			ctx.Bound = p.genericClassName(false)
		}
	} else {
		ctx.Type = p.genericClassName(false)
	}
	return finish(p, ctx, start)
}

func (p *parser) genericDeclarationList() *GenericDeclarationListContext {
	start := p.mark()
	ctx := &GenericDeclarationListContext{}
	p.expect(LT)
	for {
		ctx.Elements = append(ctx.Elements, p.genericDeclaration())
		if p.accept(COMMA) == nil {
			break
		}
		p.nls()
	}
	p.expect(GT)
	return finish(p, ctx, start)
}

func (p *parser) genericDeclaration() *GenericDeclarationContext {
	start := p.mark()
	ctx := &GenericDeclarationContext{Types: []*GenericClassNameContext{p.genericClassName(false)}}
	if ctx.Extends = p.accept(KW_EXTENDS); ctx.Extends != nil {
		ctx.Types = append(ctx.Types, p.genericClassName(false))
		for p.accept(BAND) != nil {
			ctx.Types = append(ctx.Types, p.genericClassName(false))
		}
	}
	return finish(p, ctx, start)
}

// Parameters.

func (p *parser) argumentDeclarationList() *ArgumentDeclarationListContext {
	start := p.mark()
	ctx := &ArgumentDeclarationListContext{}
	p.expect(LPAREN)
	p.nls()
	if p.la(1) != RPAREN {
		ctx.Parameters = p.argumentDeclarations()
	}
	p.nls()
	p.expect(RPAREN)
	return finish(p, ctx, start)
}

func (p *parser) argumentDeclarations() []*ArgumentDeclarationContext {
	list := []*ArgumentDeclarationContext{p.argumentDeclaration()}
	for p.accept(COMMA) != nil {
		p.nls()
		list = append(list, p.argumentDeclaration())
	}
	return list
}

func (p *parser) argumentDeclaration() *ArgumentDeclarationContext {
	start := p.mark()
	ctx := &ArgumentDeclarationContext{Annotations: p.annotations()}
	ctx.Final = p.accept(KW_FINAL)
	ctx.Def = p.accept(KW_DEF)
	if p.la(1) != IDENTIFIER || !isParameterNameFollow(p.la(2)) {
		ctx.Type = p.genericClassName(true)
	}
	ctx.Name = p.expect(IDENTIFIER)
	if p.accept(ASSIGN) != nil {
		p.nls()
		ctx.Default = p.expression()
	}
	return finish(p, ctx, start)
}

func isParameterNameFollow(ttype int) bool {
	switch ttype {
	case COMMA, RPAREN, ASSIGN, CLOSURE_ARG_SEPARATOR, NL:
		return true
	}
	return false
}

// Annotations.

func (p *parser) annotationClause() *AnnotationClauseContext {
	start := p.mark()
	ctx := &AnnotationClauseContext{}
	p.expect(AT)
	ctx.Type = p.genericClassName(false)
	if p.accept(LPAREN) != nil {
		p.nls()
		switch {
		case p.la(1) == RPAREN:
		case p.la(1) == IDENTIFIER && p.la(2) == ASSIGN:
			for {
				ctx.Pairs = append(ctx.Pairs, p.annotationElementPair())
				if p.accept(COMMA) == nil {
					break
				}
				p.nls()
			}
		default:
			ctx.Element = p.annotationElement()
		}
		p.nls()
		p.expect(RPAREN)
	}
	return finish(p, ctx, start)
}

func (p *parser) annotationElementPair() *AnnotationElementPairContext {
	start := p.mark()
	ctx := &AnnotationElementPairContext{Name: p.expect(IDENTIFIER)}
	p.expect(ASSIGN)
	p.nls()
	ctx.Element = p.annotationElement()
	return finish(p, ctx, start)
}

func (p *parser) annotationElement() *AnnotationElementContext {
	start := p.mark()
	ctx := &AnnotationElementContext{}
	if p.la(1) == AT {
		ctx.Clause = p.annotationClause()
	} else {
		ctx.Parameter = p.annotationParameter()
	}
	return finish(p, ctx, start)
}

func (p *parser) annotationParameter() AnnotationParameterContext {
	start := p.mark()
	switch p.la(1) {
	case LBRACK:
		ctx := &AnnotationParamArrayContext{}
		p.consume()
		p.nls()
		for p.la(1) != RBRACK {
			ctx.Elements = append(ctx.Elements, p.annotationParameter())
			p.nls()
			if p.accept(COMMA) == nil {
				break
			}
			p.nls()
		}
		p.nls()
		p.expect(RBRACK)
		return finish(p, ctx, start)
	case KW_TRUE, KW_FALSE:
		if p.endsAnnotationParameter(2) {
			return finish(p, &AnnotationParamBoolContext{Symbol: p.consume()}, start)
		}
	case DECIMAL:
		if p.endsAnnotationParameter(2) {
			return finish(p, &AnnotationParamDecimalContext{Symbol: p.consume()}, start)
		}
	case INTEGER:
		if p.endsAnnotationParameter(2) {
			return finish(p, &AnnotationParamIntegerContext{Symbol: p.consume()}, start)
		}
	case KW_NULL:
		if p.endsAnnotationParameter(2) {
			return finish(p, &AnnotationParamNullContext{Symbol: p.consume()}, start)
		}
	case STRING:
		if p.endsAnnotationParameter(2) {
			return finish(p, &AnnotationParamStringContext{Symbol: p.consume()}, start)
		}
	case LCURVE:
		mark := p.mark()
		c := p.closure()
		if p.endsAnnotationParameter(1) {
			return finish(p, &AnnotationParamClosureContext{Closure: c}, start)
		}
		p.ts.Seek(mark)
	case IDENTIFIER, BUILT_IN_TYPE:
		k := 1
		for p.la(k+1) == DOT && p.la(k+2) == IDENTIFIER {
			k += 2
		}
		if p.endsAnnotationParameter(k + 1) {
			if IsClassName(p.ts) {
				return finish(p, &AnnotationParamClassContext{Type: p.genericClassName(false)}, start)
			}
			return finish(p, &AnnotationParamPathContext{Names: p.qualifiedName()}, start)
		}
	}
	return finish(p, &AnnotationParamExpressionContext{Expression: p.expression()}, start)
}

func (p *parser) endsAnnotationParameter(k int) bool {
	for p.la(k) == NL {
		k++
	}
	switch p.la(k) {
	case RPAREN, COMMA, RBRACK, NL, SEMICOLON, RCURVE, EOF:
		return true
	}
	return false
}
