package ast

// Inspect traverses the graph rooted at node in depth-first order, calling f
// for each node. If f returns false the node's children are skipped.
// Back references (outer class, declaring class, owner, enclosing method)
// are not followed, and declared classes reached through a type reference
// are visited but not descended into.
func Inspect(node Node, f func(Node) bool) {
	in := inspector{f: f}
	in.node(node)
}

type inspector struct {
	f func(Node) bool
}

func (in inspector) node(n Node) {
	switch n := n.(type) {
	case nil:
	case *ModuleNode:
		in.module(n)
	case *ClassNode:
		in.class(n)
	case *MethodNode:
		in.method(n)
	case *ConstructorNode:
		in.constructor(n)
	case *FieldNode:
		in.field(n)
	case *PropertyNode:
		in.property(n)
	case *Parameter:
		in.param(n)
	case *AnnotationNode:
		in.annotation(n)
	case *GenericsType:
		in.generics(n)
	case *ImportNode:
		in.imp(n)
	case *PackageNode:
		in.pkg(n)
	case *MixinNode:
		if n != nil && in.f(n) {
			in.typeRef(n.Type)
		}
	case Statement:
		in.stmt(n)
	case Expression:
		in.expr(n)
	}
}

func (in inspector) module(m *ModuleNode) {
	if m == nil || !in.f(m) {
		return
	}
	in.pkg(m.Package)
	for _, n := range m.Imports.Values() {
		in.imp(n)
	}
	for _, n := range m.StarImports {
		in.imp(n)
	}
	for _, n := range m.StaticImports.Values() {
		in.imp(n)
	}
	for _, n := range m.StaticStarImports.Values() {
		in.imp(n)
	}
	for _, c := range m.Classes {
		in.class(c)
	}
	in.stmt(m.Statements)
	for _, method := range m.Methods {
		in.method(method)
	}
}

func (in inspector) pkg(p *PackageNode) {
	if p == nil || !in.f(p) {
		return
	}
	in.annotations(p.Annotations())
}

func (in inspector) imp(n *ImportNode) {
	if n == nil || !in.f(n) {
		return
	}
	in.annotations(n.Annotations())
	in.typeRef(n.Type)
}

func (in inspector) annotations(list []*AnnotationNode) {
	for _, a := range list {
		in.annotation(a)
	}
}

func (in inspector) annotation(a *AnnotationNode) {
	if a == nil || !in.f(a) {
		return
	}
	in.typeRef(a.ClassNode)
	for _, name := range a.MemberNames() {
		in.expr(a.Member(name))
	}
}

func (in inspector) class(c *ClassNode) {
	if c == nil {
		return
	}
	if !c.Primary {
		in.typeRef(c)
		return
	}
	if !in.f(c) {
		return
	}
	in.annotations(c.Annotations())
	in.typeRef(c.SuperClass)
	for _, i := range c.Interfaces {
		in.typeRef(i)
	}
	for _, g := range c.GenericsTypes {
		in.generics(g)
	}
	for _, mx := range c.Mixins {
		in.node(mx)
	}
	for _, fld := range c.Fields {
		in.field(fld)
	}
	for _, p := range c.Properties {
		in.property(p)
	}
	for _, ctor := range c.Constructors {
		in.constructor(ctor)
	}
	for _, m := range c.Methods {
		in.method(m)
	}
	for _, s := range c.ObjectInitializers {
		in.stmt(s)
	}
}

func (in inspector) typeRef(t *ClassNode) {
	if t == nil || !in.f(t) || t.Primary {
		return
	}
	for _, g := range t.GenericsTypes {
		in.generics(g)
	}
	in.typeRef(t.ComponentType)
}

func (in inspector) generics(g *GenericsType) {
	if g == nil || !in.f(g) {
		return
	}
	in.typeRef(g.Type)
	for _, b := range g.UpperBounds {
		in.typeRef(b)
	}
	in.typeRef(g.LowerBound)
}

func (in inspector) method(m *MethodNode) {
	if m == nil || !in.f(m) {
		return
	}
	in.methodParts(m)
}

func (in inspector) constructor(c *ConstructorNode) {
	if c == nil || !in.f(c) {
		return
	}
	in.methodParts(&c.MethodNode)
}

func (in inspector) methodParts(m *MethodNode) {
	in.annotations(m.Annotations())
	for _, g := range m.GenericsTypes {
		in.generics(g)
	}
	in.typeRef(m.ReturnType)
	for _, p := range m.Parameters {
		in.param(p)
	}
	for _, e := range m.Exceptions {
		in.typeRef(e)
	}
	in.stmt(m.Code)
}

func (in inspector) field(fld *FieldNode) {
	if fld == nil || !in.f(fld) {
		return
	}
	in.annotations(fld.Annotations())
	in.typeRef(fld.Type)
	in.expr(fld.InitialExpression)
}

// The backing field of a property is reached through the class's fields.
func (in inspector) property(p *PropertyNode) {
	if p == nil || !in.f(p) {
		return
	}
	in.annotations(p.Annotations())
	in.stmt(p.GetterBlock)
	in.stmt(p.SetterBlock)
}

func (in inspector) param(p *Parameter) {
	if p == nil || !in.f(p) {
		return
	}
	in.annotations(p.Annotations())
	in.typeRef(p.Type)
	in.expr(p.DefaultValue)
}

func (in inspector) stmts(list []Statement) {
	for _, s := range list {
		in.stmt(s)
	}
}

func (in inspector) stmt(s Statement) {
	if IsNil(s) || !in.f(s) {
		return
	}
	switch s := s.(type) {
	case *BlockStatement:
		in.stmts(s.Statements)
	case *ExpressionStatement:
		in.expr(s.Expression)
	case *EmptyStatement, *BreakStatement, *ContinueStatement:
	case *IfStatement:
		in.expr(s.Condition)
		in.stmt(s.Then)
		in.stmt(s.Else)
	case *WhileStatement:
		in.expr(s.Condition)
		in.stmt(s.Body)
	case *ForStatement:
		in.param(s.Variable)
		in.expr(s.Collection)
		in.stmt(s.Body)
	case *SwitchStatement:
		in.expr(s.Expression)
		for _, c := range s.Cases {
			in.stmt(c)
		}
		in.stmt(s.Default)
	case *CaseStatement:
		in.expr(s.Expression)
		in.stmt(s.Body)
	case *ReturnStatement:
		in.expr(s.Expression)
	case *AssertStatement:
		in.expr(s.Condition)
		in.expr(s.Message)
	case *SynchronizedStatement:
		in.expr(s.Expression)
		in.stmt(s.Body)
	case *ThrowStatement:
		in.expr(s.Expression)
	case *TryCatchStatement:
		in.stmt(s.Try)
		for _, c := range s.Catches {
			in.stmt(c)
		}
		in.stmt(s.Finally)
	case *CatchStatement:
		in.param(s.Variable)
		in.stmt(s.Body)
	}
}

func (in inspector) exprs(list []Expression) {
	for _, e := range list {
		in.expr(e)
	}
}

func (in inspector) expr(e Expression) {
	if IsNil(e) || !in.f(e) {
		return
	}
	switch e := e.(type) {
	case *ConstantExpression, *EmptyExpression:
	case *VariableExpression:
		in.typeRef(e.Type)
	case *PropertyExpression:
		in.expr(e.Object)
		in.expr(e.Property)
	case *AttributeExpression:
		in.expr(e.Object)
		in.expr(e.Property)
	case *MethodPointerExpression:
		in.expr(e.Expression)
		in.expr(e.MethodName)
	case *MethodCallExpression:
		in.expr(e.Object)
		in.expr(e.Method)
		in.expr(e.Arguments)
	case *ConstructorCallExpression:
		in.typeRef(e.Type)
		in.expr(e.Arguments)
	case *BinaryExpression:
		in.expr(e.Left)
		in.expr(e.Right)
	case *DeclarationExpression:
		in.annotations(e.Annotations())
		in.expr(e.Left)
		in.expr(e.Right)
	case *RangeExpression:
		in.expr(e.From)
		in.expr(e.To)
	case *CastExpression:
		in.typeRef(e.Type)
		in.expr(e.Expression)
	case *ClassExpression:
		in.typeRef(e.Type)
	case *TernaryExpression:
		in.expr(e.Condition)
		in.expr(e.True)
		in.expr(e.False)
	case *ElvisOperatorExpression:
		in.expr(e.Base)
		in.expr(e.False)
	case *BooleanExpression:
		in.expr(e.Expression)
	case *NotExpression:
		in.expr(e.Expression)
	case *BitwiseNegationExpression:
		in.expr(e.Expression)
	case *UnaryMinusExpression:
		in.expr(e.Expression)
	case *UnaryPlusExpression:
		in.expr(e.Expression)
	case *PrefixExpression:
		in.expr(e.Expression)
	case *PostfixExpression:
		in.expr(e.Expression)
	case *ClosureExpression:
		for _, p := range e.Parameters {
			in.param(p)
		}
		in.stmt(e.Code)
	case *ListExpression:
		in.exprs(e.Expressions)
	case *MapExpression:
		for _, entry := range e.Entries {
			in.expr(entry)
		}
	case *NamedArgumentListExpression:
		for _, entry := range e.Entries {
			in.expr(entry)
		}
	case *MapEntryExpression:
		in.expr(e.Key)
		in.expr(e.Value)
	case *SpreadExpression:
		in.expr(e.Expression)
	case *SpreadMapExpression:
		in.expr(e.Expression)
	case *TupleExpression:
		in.exprs(e.Expressions)
	case *ArgumentListExpression:
		in.exprs(e.Expressions)
	case *ClosureListExpression:
		in.exprs(e.Expressions)
	case *GStringExpression:
		for _, s := range e.Strings {
			in.expr(s)
		}
		in.exprs(e.Values)
	case *ArrayExpression:
		in.typeRef(e.ElementType)
		in.exprs(e.Expressions)
		in.exprs(e.SizeExpressions)
	case *AnnotationConstantExpression:
		in.annotation(e.Annotation)
	}
}

// IsNil reports whether n is nil or one of the typed nil pointers the
// builder can leave in an interface field.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *BlockStatement:
		return v == nil
	case *BooleanExpression:
		return v == nil
	case *CatchStatement:
		return v == nil
	case *CaseStatement:
		return v == nil
	case *ConstantExpression:
		return v == nil
	case *MapEntryExpression:
		return v == nil
	case *ArgumentListExpression:
		return v == nil
	}
	return false
}
