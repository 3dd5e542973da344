package builder

import (
	"strings"

	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
)

// visitCompilationUnit walks the unit in three passes: imports, then
// classes and the package in source order, then the script body.
func (b *astBuilder) visitCompilationUnit(ctx *parser.CompilationUnitContext) error {
	for _, child := range ctx.Children {
		if imp, ok := child.(*parser.ImportStatementContext); ok {
			if err := b.visitImport(imp); err != nil {
				return err
			}
		}
	}

	for _, child := range ctx.Children {
		switch c := child.(type) {
		case *parser.PackageDefinitionContext:
			if err := b.visitPackage(c); err != nil {
				return err
			}
		case *parser.ClassDeclarationContext:
			if _, err := b.visitClassDeclaration(c); err != nil {
				return err
			}
		}
	}

	for _, child := range ctx.Children {
		switch c := child.(type) {
		case *parser.PackageDefinitionContext, *parser.ImportStatementContext, *parser.ClassDeclarationContext:
		case *parser.MethodDeclarationContext:
			m, err := b.visitMethodDeclaration(nil, c)
			if err != nil {
				return err
			}
			m.AnnotationDefault = true
			b.module.AddMethod(m)
		case parser.StatementContext:
			stmts, err := b.unpackStatement(c)
			if err != nil {
				return err
			}
			for _, s := range stmts {
				b.module.AddStatement(s)
			}
		default:
			return internalError(child, "unsupported top level element %T", child)
		}
	}
	return nil
}

func joinNames(tokens []antlr.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.GetText()
	}
	return strings.Join(parts, ".")
}

func (b *astBuilder) visitPackage(ctx *parser.PackageDefinitionContext) error {
	pkg := &ast.PackageNode{Name: joinNames(ctx.Names) + "."}
	if err := b.attachAnnotations(pkg, ctx.Annotations); err != nil {
		return err
	}
	b.module.SetPackage(stamp(pkg, ctx))
	return nil
}

func (b *astBuilder) visitImport(ctx *parser.ImportStatementContext) error {
	annotations, err := b.visitAnnotations(ctx.Annotations)
	if err != nil {
		return err
	}
	if ctx.Star != nil && ctx.Alias != nil {
		return internalError(ctx, "imports like 'import foo.* as Bar' are not supported")
	}

	var node *ast.ImportNode
	switch {
	case ctx.Star != nil && ctx.Static != nil:
		typ := stamp(ast.MakeType(joinNames(ctx.Names)), ctx.Names)
		node = b.module.AddStaticStarImport(typ.Name, typ, annotations)
	case ctx.Star != nil:
		node = b.module.AddStarImport(joinNames(ctx.Names)+".", annotations)
	case ctx.Static != nil:
		if len(ctx.Names) < 2 {
			return syntaxError(ctx, "static import requires a class and a member name")
		}
		owner := ctx.Names[:len(ctx.Names)-1]
		fieldName := ctx.Names[len(ctx.Names)-1].GetText()
		alias := fieldName
		if ctx.Alias != nil {
			alias = ctx.Alias.GetText()
		}
		typ := stamp(ast.MakeType(joinNames(owner)), owner)
		node = b.module.AddStaticImport(typ, fieldName, alias, annotations)
	default:
		alias := ctx.Names[len(ctx.Names)-1].GetText()
		if ctx.Alias != nil {
			alias = ctx.Alias.GetText()
		}
		typ := stamp(ast.MakeType(joinNames(ctx.Names)), ctx.Names)
		node = b.module.AddImport(alias, typ, annotations)
	}
	stamp(node, ctx)
	return nil
}

func (b *astBuilder) visitClassDeclaration(ctx *parser.ClassDeclarationContext) (*ast.ClassNode, error) {
	outer := b.currentClass()
	name := ctx.Name.GetText()

	var superClass *ast.ClassNode
	if ctx.IsEnum() {
		superClass = ast.EnumType()
	} else {
		superClass = ast.ObjectType()
	}

	var c *ast.ClassNode
	if outer != nil {
		c = ast.NewInnerClass(outer, outer.Name+"$"+name, ast.AccPublic, superClass)
	} else {
		c = ast.NewClass(b.module.PackageName()+name, ast.AccPublic, superClass)
	}
	stamp(c, ctx)
	if err := b.attachAnnotations(c, ctx.Annotations); err != nil {
		return nil, err
	}
	if ctx.IsTrait() {
		trait := synthetic(ast.NewAnnotation(synthetic(ast.MakeType(ast.TraitTypeName))))
		c.AddAnnotation(trait)
	}
	b.module.AddClass(c)

	extends, err := b.visitGenericClassNames(ctx.Extends)
	if err != nil {
		return nil, err
	}
	if ctx.IsInterface() && !ctx.IsAnnotationDefinition() {
		c.Interfaces = extends
	} else if len(extends) > 0 {
		c.SuperClass = extends[0]
	}
	if len(ctx.Implements) > 0 {
		if c.Interfaces, err = b.visitGenericClassNames(ctx.Implements); err != nil {
			return nil, err
		}
	}

	if !ctx.IsEnum() {
		if c.GenericsTypes, err = b.visitGenericDeclarationList(ctx.Generics); err != nil {
			return nil, err
		}
		c.UsingGenerics = usesGenerics(c)
	}

	mods, syntheticPublic := b.classModifiers(ctx.Modifiers)
	switch {
	case ctx.IsEnum():
		mods |= ast.AccEnum | ast.AccFinal
	case ctx.IsInterface():
		mods |= ast.AccInterface | ast.AccAbstract
	}
	if ctx.IsAnnotationDefinition() {
		c.Interfaces = append(c.Interfaces, ast.AnnotationType())
		mods |= ast.AccAnnotation
	}
	c.Modifiers = mods
	c.SyntheticPublic = syntheticPublic

	err = b.withClass(c, func() error {
		return b.visitClassBody(c, ctx.Body)
	})
	if err != nil {
		return nil, err
	}
	if ctx.IsInterface() {
		c.Mixins = nil
	}
	return c, nil
}

func usesGenerics(c *ast.ClassNode) bool {
	if len(c.GenericsTypes) > 0 || c.SuperClass.IsUsingGenerics() {
		return true
	}
	for _, i := range c.Interfaces {
		if i.IsUsingGenerics() {
			return true
		}
	}
	return false
}

func (b *astBuilder) visitClassBody(c *ast.ClassNode, ctx *parser.ClassBodyContext) error {
	if ctx == nil {
		return nil
	}
	for _, constant := range ctx.EnumConstants {
		if err := b.visitEnumConstant(c, constant); err != nil {
			return err
		}
	}
	for _, member := range ctx.Members {
		var err error
		switch m := member.(type) {
		case *parser.ClassDeclarationContext:
			_, err = b.visitClassDeclaration(m)
		case *parser.MethodDeclarationContext:
			err = b.visitClassMethod(c, m)
		case *parser.ConstructorDeclarationContext:
			err = b.visitConstructor(c, m)
		case *parser.FieldDeclarationContext:
			err = b.visitField(c, m)
		case *parser.ObjectInitializerContext:
			var block *ast.BlockStatement
			if block, err = b.visitBlock(m.Body); err == nil {
				c.AddObjectInitializer(block)
			}
		case *parser.ClassInitializerContext:
			var block *ast.BlockStatement
			if block, err = b.visitBlock(m.Body); err == nil {
				c.AddStaticInitializerStatements([]ast.Statement{block})
			}
		default:
			err = internalError(member, "unsupported class member %T", member)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// visitEnumConstant adds a constant as a public static final field. Its
// arguments become the initial value: one argument as is, several as a
// list.
func (b *astBuilder) visitEnumConstant(c *ast.ClassNode, ctx *parser.EnumConstantContext) error {
	var init ast.Expression
	if ctx.Arguments != nil && len(ctx.Arguments.Arguments) > 0 {
		args, err := b.visitArgumentList(ctx.Arguments)
		if err != nil {
			return err
		}
		elements, _ := ast.Arguments(args)
		if len(elements) == 1 {
			init = elements[0]
		} else {
			init = stamp(&ast.ListExpression{Expressions: elements, Wrapped: true}, ctx.Arguments)
		}
	}
	typ := stamp(ast.MakeType(c.Name), ctx.Name)
	f := ast.NewField(ctx.Name.GetText(), ast.AccPublic|ast.AccStatic|ast.AccFinal|ast.AccEnum, typ, c, init)
	if err := b.attachAnnotations(f, ctx.Annotations); err != nil {
		return err
	}
	c.AddField(stamp(f, ctx.Name))
	return nil
}

// visitMethodDeclaration builds a method of class c, or a script method
// when c is nil.
func (b *astBuilder) visitMethodDeclaration(c *ast.ClassNode, ctx *parser.MethodDeclarationContext) (*ast.MethodNode, error) {
	mods, hasVisibility := b.resolveModifiers(ctx.Modifiers, ast.AccPublic)

	var body ast.Statement
	inner, err := b.withMethodBody(func() error {
		if ctx.Body == nil {
			return nil
		}
		block, err := b.visitBlock(ctx.Body)
		body = block
		return err
	})
	if err != nil {
		return nil, err
	}

	params, err := b.visitParameters(ctx.Parameters)
	if err != nil {
		return nil, err
	}
	returnType := ast.ObjectType()
	if ctx.ReturnType != nil {
		if returnType, err = b.visitGenericClassName(ctx.ReturnType); err != nil {
			return nil, err
		}
	}
	exceptions := b.visitClassNames(ctx.Throws)

	name := ctx.Name.GetText()
	if ctx.Name.GetTokenType() == parser.STRING {
		name = decodeStringLiteral(name)
	}
	m := ast.NewMethod(name, mods, returnType, params, exceptions, body)
	if m.GenericsTypes, err = b.visitGenericDeclarationList(ctx.Generics); err != nil {
		return nil, err
	}
	for _, ic := range inner {
		ic.EnclosingMethod = m
	}
	stamp(m, ctx)
	if err := b.attachAnnotations(m, ctx.Annotations); err != nil {
		return nil, err
	}
	m.SyntheticPublic = isSyntheticPublic(
		hasVisibility,
		c != nil && c.IsAnnotationDefinition(),
		len(ctx.Modifiers) > 0 || len(ctx.Annotations) > 0,
		ctx.ReturnType != nil,
		ctx.Def != nil,
	)
	return m, nil
}

func (b *astBuilder) visitClassMethod(c *ast.ClassNode, ctx *parser.MethodDeclarationContext) error {
	if isTrait(c) && ctx.Body == nil && ctx.Default == nil && !hasModifier(ctx.Modifiers, parser.KW_ABSTRACT) {
		return syntaxError(ctx, "You defined a method without body. Try adding a body, or declare it abstract.")
	}
	m, err := b.visitMethodDeclaration(c, ctx)
	if err != nil {
		return err
	}
	if c.IsInterface() {
		m.Modifiers |= ast.AccAbstract
	}
	if ctx.Default != nil {
		value, err := b.visitAnnotationParameter(ctx.DefaultValue)
		if err != nil {
			return err
		}
		m.Code = stamp(&ast.ExpressionStatement{Expression: value}, ctx.DefaultValue)
		m.AnnotationDefault = true
	}
	c.AddMethod(m)
	return nil
}

func isTrait(c *ast.ClassNode) bool {
	return len(c.AnnotationsOf(ast.TraitTypeName)) > 0
}

func (b *astBuilder) visitConstructor(c *ast.ClassNode, ctx *parser.ConstructorDeclarationContext) error {
	mods, hasVisibility := b.resolveModifiers(ctx.Modifiers, ast.AccPublic)
	exceptions := b.visitClassNames(ctx.Throws)

	var body ast.Statement
	inner, err := b.withMethodBody(func() error {
		block, err := b.visitBlock(ctx.Body)
		body = block
		return err
	})
	if err != nil {
		return err
	}
	params, err := b.visitParameters(ctx.Parameters)
	if err != nil {
		return err
	}

	ctor := ast.NewConstructor(mods, params, exceptions, body)
	for _, ic := range inner {
		ic.EnclosingMethod = &ctor.MethodNode
	}
	stamp(ctor, ctx)
	if err := b.attachAnnotations(ctor, ctx.Annotations); err != nil {
		return err
	}
	ctor.SyntheticPublic = !hasVisibility
	c.AddConstructor(ctor)
	return nil
}

// visitField declares one field or property per declarator. Interface
// members and members with an explicit visibility are plain fields; the
// rest are properties backed by a private synthetic field.
func (b *astBuilder) visitField(c *ast.ClassNode, ctx *parser.FieldDeclarationContext) error {
	mods, hasVisibility := b.resolveModifiers(ctx.Modifiers, 0)
	if c.IsInterface() {
		mods |= ast.AccStatic | ast.AccFinal
	}

	for _, d := range ctx.Declarations {
		typ, err := b.declaredType(ctx.Def, ctx.Type)
		if err != nil {
			return err
		}
		var init ast.Expression
		if d.Init != nil {
			if init, err = b.visitExpression(d.Init); err != nil {
				return err
			}
		} else if c.IsInterface() && ctx.Def == nil && ctx.Type != nil {
			init = synthetic(ast.NewConstant(zeroValue(typ.Name)))
		}

		var span parser.Context = d
		if len(ctx.Declarations) == 1 {
			span = ctx
		}
		name := d.Name.GetText()

		if c.IsInterface() || hasVisibility {
			fieldMods := mods
			if c.IsInterface() {
				fieldMods = fieldMods&^ast.AccVisibility | ast.AccPublic
			}
			f := stamp(ast.NewField(name, fieldMods, typ, c, init), span)
			if err := b.attachAnnotations(f, ctx.Annotations); err != nil {
				return err
			}
			c.AddField(f)
			continue
		}

		f := synthetic(ast.NewField(name, mods|ast.AccPrivate, typ, c, init))
		f.Synthetic = true
		if err := b.attachAnnotations(f, ctx.Annotations); err != nil {
			return err
		}
		c.AddProperty(stamp(ast.NewProperty(f, mods|ast.AccPublic), span))
	}
	return nil
}

// declaredType returns the written type, or Object for def and untyped
// declarations.
func (b *astBuilder) declaredType(def antlr.Token, typ *parser.GenericClassNameContext) (*ast.ClassNode, error) {
	if def != nil || typ == nil {
		return ast.ObjectType(), nil
	}
	return b.visitGenericClassName(typ)
}

func (b *astBuilder) visitParameters(ctx *parser.ArgumentDeclarationListContext) ([]*ast.Parameter, error) {
	params := []*ast.Parameter{}
	if ctx == nil {
		return params, nil
	}
	for _, arg := range ctx.Parameters {
		typ, err := b.declaredType(arg.Def, arg.Type)
		if err != nil {
			return nil, err
		}
		p := ast.NewParameter(typ, arg.Name.GetText())
		if err := b.attachAnnotations(p, arg.Annotations); err != nil {
			return nil, err
		}
		if arg.Final != nil {
			p.Modifiers |= ast.AccFinal
		}
		if arg.Default != nil {
			if p.DefaultValue, err = b.visitExpression(arg.Default); err != nil {
				return nil, err
			}
		}
		params = append(params, stamp(p, arg))
	}
	return params, nil
}

// Types.

func (b *astBuilder) visitClassName(ctx *parser.ClassNameContext) *ast.ClassNode {
	return stamp(ast.MakeType(ctx.Name()), ctx)
}

func (b *astBuilder) visitClassNames(list []*parser.ClassNameContext) []*ast.ClassNode {
	types := make([]*ast.ClassNode, 0, len(list))
	for _, ctx := range list {
		types = append(types, b.visitClassName(ctx))
	}
	return types
}

// visitGenericClassName builds a type reference. Array dimensions replace
// any type arguments; a vararg ellipsis adds one more array level.
func (b *astBuilder) visitGenericClassName(ctx *parser.GenericClassNameContext) (*ast.ClassNode, error) {
	c := b.visitClassName(ctx.Class)
	if ctx.Dimensions > 0 {
		for range ctx.Dimensions {
			c = stamp(c.MakeArray(), ctx)
		}
	} else {
		generics, err := b.visitGenericList(ctx.Generics)
		if err != nil {
			return nil, err
		}
		c.GenericsTypes = generics
	}
	if ctx.Ellipsis != nil {
		c = c.MakeArray()
	}
	return stamp(c, ctx), nil
}

func (b *astBuilder) visitGenericClassNames(list []*parser.GenericClassNameContext) ([]*ast.ClassNode, error) {
	types := make([]*ast.ClassNode, 0, len(list))
	for _, ctx := range list {
		t, err := b.visitGenericClassName(ctx)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (b *astBuilder) visitGenericList(ctx *parser.GenericListContext) ([]*ast.GenericsType, error) {
	if ctx == nil {
		return nil, nil
	}
	generics := make([]*ast.GenericsType, 0, len(ctx.Elements))
	for _, e := range ctx.Elements {
		if e.Wildcard == nil {
			t, err := b.visitGenericClassName(e.Type)
			if err != nil {
				return nil, err
			}
			generics = append(generics, stamp(ast.NewGenericsType(t), e))
			continue
		}
		g := &ast.GenericsType{Name: "?", Wildcard: true, Type: stamp(ast.MakeType("?"), e.Wildcard)}
		if e.Bound != nil {
			bound, err := b.visitGenericClassName(e.Bound)
			if err != nil {
				return nil, err
			}
			if e.Extends != nil {
				g.UpperBounds = []*ast.ClassNode{bound}
			} else {
				g.LowerBound = bound
			}
		}
		generics = append(generics, stamp(g, e))
	}
	return generics, nil
}

func (b *astBuilder) visitGenericDeclarationList(ctx *parser.GenericDeclarationListContext) ([]*ast.GenericsType, error) {
	if ctx == nil {
		return nil, nil
	}
	generics := make([]*ast.GenericsType, 0, len(ctx.Elements))
	for _, d := range ctx.Elements {
		types, err := b.visitGenericClassNames(d.Types)
		if err != nil {
			return nil, err
		}
		g := &ast.GenericsType{Name: types[0].Name, Type: types[0], Placeholder: true}
		if len(types) > 1 {
			g.UpperBounds = types[1:]
		}
		generics = append(generics, stamp(g, d))
	}
	return generics, nil
}

// Annotations.

func (b *astBuilder) attachAnnotations(node ast.AnnotatedNode, list []*parser.AnnotationClauseContext) error {
	annotations, err := b.visitAnnotations(list)
	if err != nil {
		return err
	}
	for _, a := range annotations {
		node.AddAnnotation(a)
	}
	return nil
}

func (b *astBuilder) visitAnnotations(list []*parser.AnnotationClauseContext) ([]*ast.AnnotationNode, error) {
	var annotations []*ast.AnnotationNode
	for _, ctx := range list {
		a, err := b.visitAnnotation(ctx)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// visitAnnotation builds an annotation use. A lone element is the value
// member.
func (b *astBuilder) visitAnnotation(ctx *parser.AnnotationClauseContext) (*ast.AnnotationNode, error) {
	typ, err := b.visitGenericClassName(ctx.Type)
	if err != nil {
		return nil, err
	}
	a := stamp(ast.NewAnnotation(typ), ctx)
	if ctx.Element != nil {
		value, err := b.visitAnnotationElement(ctx.Element)
		if err != nil {
			return nil, err
		}
		a.AddMember("value", value)
	}
	for _, pair := range ctx.Pairs {
		value, err := b.visitAnnotationElement(pair.Element)
		if err != nil {
			return nil, err
		}
		if !a.AddMember(pair.Name.GetText(), value) {
			b.reportAt(pair.Name, "Annotation member "+pair.Name.GetText()+" has already been added")
		}
	}
	return a, nil
}

func (b *astBuilder) visitAnnotationElement(ctx *parser.AnnotationElementContext) (ast.Expression, error) {
	if ctx.Clause != nil {
		a, err := b.visitAnnotation(ctx.Clause)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.AnnotationConstantExpression{Annotation: a}, ctx.Clause), nil
	}
	return b.visitAnnotationParameter(ctx.Parameter)
}

func (b *astBuilder) visitAnnotationParameter(ctx parser.AnnotationParameterContext) (ast.Expression, error) {
	switch p := ctx.(type) {
	case *parser.AnnotationParamArrayContext:
		list := &ast.ListExpression{}
		for _, e := range p.Elements {
			v, err := b.visitAnnotationParameter(e)
			if err != nil {
				return nil, err
			}
			list.Expressions = append(list.Expressions, v)
		}
		return stamp(list, p), nil
	case *parser.AnnotationParamBoolContext:
		return b.boolConstant(p.Symbol), nil
	case *parser.AnnotationParamClassContext:
		t, err := b.visitGenericClassName(p.Type)
		if err != nil {
			return nil, err
		}
		return stamp(&ast.ClassExpression{Type: t}, p), nil
	case *parser.AnnotationParamDecimalContext:
		return b.numberConstant(p, p.Symbol.GetText(), parseDecimal)
	case *parser.AnnotationParamIntegerContext:
		return b.numberConstant(p, p.Symbol.GetText(), parseInteger)
	case *parser.AnnotationParamNullContext:
		return stamp(ast.NullConstant(), p), nil
	case *parser.AnnotationParamPathContext:
		return pathExpression(p.Names), nil
	case *parser.AnnotationParamStringContext:
		return b.stringConstant(p.Symbol), nil
	case *parser.AnnotationParamClosureContext:
		return b.visitClosure(p.Closure)
	case *parser.AnnotationParamExpressionContext:
		return nil, syntaxError(p, p.GetText()+" is prohibited inside annotations.")
	}
	return nil, internalError(ctx, "unsupported annotation parameter %T", ctx)
}

// pathExpression builds a.b.c as a variable followed by property reads.
func pathExpression(names []antlr.Token) ast.Expression {
	var e ast.Expression = stamp(ast.NewVariable(names[0].GetText()), names[0])
	for i, name := range names[1:] {
		prop := stamp(ast.NewConstant(name.GetText()), name)
		e = stamp(&ast.PropertyExpression{Object: e, Property: prop}, names[:i+2])
	}
	return e
}
