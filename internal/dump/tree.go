// Package dump renders a module graph for people: an indented text tree
// or a YAML document.
package dump

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"martianoff/gast/internal/ast"
)

// Node is the rendering-neutral form of one AST node.
type Node struct {
	Kind     string  `yaml:"kind"`
	Label    string  `yaml:"label,omitempty"`
	Span     string  `yaml:"span,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

func (n *Node) add(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// Options control what Tree records.
type Options struct {
	Spans   bool
	Defines map[string]string
}

// Tree converts m into a Node tree.
func Tree(m *ast.ModuleNode, opts Options) *Node {
	t := treeBuilder{spans: opts.Spans}
	return t.module(m)
}

type treeBuilder struct {
	spans bool
}

func kindOf(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func (t treeBuilder) node(n ast.Node, label string) *Node {
	out := &Node{Kind: kindOf(n), Label: label}
	if t.spans {
		out.Span = n.Span().String()
	}
	return out
}

// group is a synthetic heading such as "extends" that has no span.
func group(kind string, children ...*Node) *Node {
	out := &Node{Kind: kind}
	out.add(children...)
	if len(out.Children) == 0 {
		return nil
	}
	return out
}

func (t treeBuilder) module(m *ast.ModuleNode) *Node {
	if m == nil {
		return nil
	}
	out := t.node(m, m.Description)
	if m.Package != nil {
		pkg := t.node(m.Package, m.Package.Name)
		pkg.add(t.annotations(m.Package.Annotations())...)
		out.add(pkg)
	}
	for _, n := range m.Imports.Values() {
		out.add(t.imp(n))
	}
	for _, n := range m.StarImports {
		out.add(t.imp(n))
	}
	for _, n := range m.StaticImports.Values() {
		out.add(t.imp(n))
	}
	for _, n := range m.StaticStarImports.Values() {
		out.add(t.imp(n))
	}
	for _, c := range m.Classes {
		out.add(t.class(c))
	}
	out.add(t.stmt(m.Statements))
	for _, method := range m.Methods {
		out.add(t.method(method))
	}
	return out
}

func (t treeBuilder) imp(n *ast.ImportNode) *Node {
	var label string
	switch {
	case n.Star && n.Static:
		label = "static " + typeName(n.Type) + ".*"
	case n.Star:
		label = n.PackageName + "*"
	case n.Static:
		label = "static " + typeName(n.Type) + "." + n.FieldName + " as " + n.Alias
	default:
		label = typeName(n.Type) + " as " + n.Alias
	}
	out := t.node(n, label)
	out.add(t.annotations(n.Annotations())...)
	return out
}

func (t treeBuilder) annotations(list []*ast.AnnotationNode) []*Node {
	var out []*Node
	for _, a := range list {
		out = append(out, t.annotation(a))
	}
	return out
}

func (t treeBuilder) annotation(a *ast.AnnotationNode) *Node {
	out := t.node(a, "@"+typeName(a.ClassNode))
	for _, name := range a.MemberNames() {
		member := &Node{Kind: "Member", Label: name}
		member.add(t.expr(a.Member(name)))
		out.add(member)
	}
	return out
}

func withModifiers(mods int, rest string) string {
	if s := ast.ModifierString(mods); s != "" {
		return s + " " + rest
	}
	return rest
}

func (t treeBuilder) class(c *ast.ClassNode) *Node {
	out := t.node(c, withModifiers(c.Modifiers, c.Name))
	out.add(t.annotations(c.Annotations())...)
	if c.SuperClass != nil {
		out.add(group("Extends", t.typeRef(c.SuperClass)))
	}
	var interfaces []*Node
	for _, i := range c.Interfaces {
		interfaces = append(interfaces, t.typeRef(i))
	}
	out.add(group("Implements", interfaces...))
	out.add(t.genericsList(c.GenericsTypes))
	for _, f := range c.Fields {
		out.add(t.field(f))
	}
	for _, p := range c.Properties {
		prop := t.node(p, withModifiers(p.Modifiers, p.Name()))
		prop.add(t.annotations(p.Annotations())...)
		out.add(prop)
	}
	for _, ctor := range c.Constructors {
		out.add(t.constructor(ctor))
	}
	for _, m := range c.Methods {
		out.add(t.method(m))
	}
	var inits []*Node
	for _, s := range c.ObjectInitializers {
		inits = append(inits, t.stmt(s))
	}
	out.add(group("ObjectInitializers", inits...))
	return out
}

func (t treeBuilder) typeRef(c *ast.ClassNode) *Node {
	if c == nil {
		return nil
	}
	out := &Node{Kind: "Type", Label: typeName(c)}
	if t.spans {
		out.Span = c.Span().String()
	}
	return out
}

// typeName renders a type reference with its generics and array suffix.
func typeName(c *ast.ClassNode) string {
	if c == nil {
		return ""
	}
	if c.IsArray() {
		return typeName(c.ComponentType) + "[]"
	}
	if c.GenericsTypes == nil {
		return c.Name
	}
	args := make([]string, len(c.GenericsTypes))
	for i, g := range c.GenericsTypes {
		args[i] = genericsName(g)
	}
	return c.Name + "<" + strings.Join(args, ", ") + ">"
}

// typed renders "Type name", or just the name for an untyped node.
func typed(c *ast.ClassNode, name string) string {
	if c == nil {
		return name
	}
	return typeName(c) + " " + name
}

func genericsName(g *ast.GenericsType) string {
	var sb strings.Builder
	switch {
	case g.Wildcard:
		sb.WriteString("?")
	case g.Placeholder || g.Type == nil:
		sb.WriteString(g.Name)
	default:
		sb.WriteString(typeName(g.Type))
	}
	if len(g.UpperBounds) > 0 {
		bounds := make([]string, len(g.UpperBounds))
		for i, b := range g.UpperBounds {
			bounds[i] = typeName(b)
		}
		sb.WriteString(" extends " + strings.Join(bounds, " & "))
	}
	if g.LowerBound != nil {
		sb.WriteString(" super " + typeName(g.LowerBound))
	}
	return sb.String()
}

func (t treeBuilder) genericsList(list []*ast.GenericsType) *Node {
	var out []*Node
	for _, g := range list {
		out = append(out, t.node(g, genericsName(g)))
	}
	return group("Generics", out...)
}

func (t treeBuilder) field(f *ast.FieldNode) *Node {
	out := t.node(f, withModifiers(f.Modifiers, typed(f.Type, f.Name)))
	out.add(t.annotations(f.Annotations())...)
	out.add(t.expr(f.InitialExpression))
	return out
}

func (t treeBuilder) method(m *ast.MethodNode) *Node {
	out := t.node(m, withModifiers(m.Modifiers, typed(m.ReturnType, m.Name)))
	t.methodParts(out, m)
	return out
}

func (t treeBuilder) constructor(c *ast.ConstructorNode) *Node {
	out := t.node(c, withModifiers(c.Modifiers, "<init>"))
	t.methodParts(out, &c.MethodNode)
	return out
}

func (t treeBuilder) methodParts(out *Node, m *ast.MethodNode) {
	out.add(t.annotations(m.Annotations())...)
	out.add(t.genericsList(m.GenericsTypes))
	for _, p := range m.Parameters {
		out.add(t.param(p))
	}
	var throws []*Node
	for _, e := range m.Exceptions {
		throws = append(throws, t.typeRef(e))
	}
	out.add(group("Throws", throws...))
	out.add(t.stmt(m.Code))
}

func (t treeBuilder) param(p *ast.Parameter) *Node {
	if p == nil {
		return nil
	}
	out := t.node(p, withModifiers(p.Modifiers, typed(p.Type, p.Name)))
	out.add(t.annotations(p.Annotations())...)
	out.add(t.expr(p.DefaultValue))
	return out
}

func (t treeBuilder) stmts(list []ast.Statement) []*Node {
	var out []*Node
	for _, s := range list {
		out = append(out, t.stmt(s))
	}
	return out
}

func (t treeBuilder) stmt(s ast.Statement) *Node {
	if ast.IsNil(s) {
		return nil
	}
	label := ""
	if labels := s.Labels(); len(labels) > 0 {
		label = strings.Join(labels, ": ") + ":"
	}
	out := t.node(s, label)
	switch s := s.(type) {
	case *ast.BlockStatement:
		out.add(t.stmts(s.Statements)...)
	case *ast.ExpressionStatement:
		out.add(t.expr(s.Expression))
	case *ast.EmptyStatement:
	case *ast.BreakStatement:
		out.Label = strings.TrimSpace(out.Label + " " + s.Label)
	case *ast.ContinueStatement:
		out.Label = strings.TrimSpace(out.Label + " " + s.Label)
	case *ast.IfStatement:
		out.add(t.expr(s.Condition), t.stmt(s.Then), t.stmt(s.Else))
	case *ast.WhileStatement:
		out.add(t.expr(s.Condition), t.stmt(s.Body))
	case *ast.ForStatement:
		out.add(t.param(s.Variable), t.expr(s.Collection), t.stmt(s.Body))
	case *ast.SwitchStatement:
		out.add(t.expr(s.Expression))
		for _, c := range s.Cases {
			out.add(t.stmt(c))
		}
		out.add(t.stmt(s.Default))
	case *ast.CaseStatement:
		out.add(t.expr(s.Expression), t.stmt(s.Body))
	case *ast.ReturnStatement:
		out.add(t.expr(s.Expression))
	case *ast.AssertStatement:
		out.add(t.expr(s.Condition), t.expr(s.Message))
	case *ast.SynchronizedStatement:
		out.add(t.expr(s.Expression), t.stmt(s.Body))
	case *ast.ThrowStatement:
		out.add(t.expr(s.Expression))
	case *ast.TryCatchStatement:
		out.add(t.stmt(s.Try))
		for _, c := range s.Catches {
			out.add(t.stmt(c))
		}
		out.add(t.stmt(s.Finally))
	case *ast.CatchStatement:
		out.add(t.param(s.Variable), t.stmt(s.Body))
	}
	return out
}

func (t treeBuilder) exprs(list []ast.Expression) []*Node {
	var out []*Node
	for _, e := range list {
		out = append(out, t.expr(e))
	}
	return out
}

func (t treeBuilder) expr(e ast.Expression) *Node {
	if ast.IsNil(e) {
		return nil
	}
	out := t.node(e, "")
	switch e := e.(type) {
	case *ast.ConstantExpression:
		out.Label = constantLabel(e.Value)
	case *ast.EmptyExpression:
	case *ast.VariableExpression:
		out.Label = withModifiers(e.Modifiers, typed(e.Type, e.Name))
	case *ast.PropertyExpression:
		out.Label = accessFlags(e.Safe, e.SpreadSafe)
		out.add(t.expr(e.Object), t.expr(e.Property))
	case *ast.AttributeExpression:
		out.Label = accessFlags(e.Safe, e.SpreadSafe)
		out.add(t.expr(e.Object), t.expr(e.Property))
	case *ast.MethodPointerExpression:
		out.add(t.expr(e.Expression), t.expr(e.MethodName))
	case *ast.MethodCallExpression:
		flags := accessFlags(e.Safe, e.SpreadSafe)
		if e.ImplicitThis {
			flags = strings.TrimSpace("implicit-this " + flags)
		}
		out.Label = flags
		out.add(t.expr(e.Object), t.expr(e.Method), t.expr(e.Arguments))
	case *ast.ConstructorCallExpression:
		out.Label = typeName(e.Type)
		if e.UsingAnonymousInnerClass {
			out.Label += " anonymous"
		}
		out.add(t.expr(e.Arguments))
	case *ast.DeclarationExpression:
		out.Label = e.Operation.Text
		out.add(t.annotations(e.Annotations())...)
		out.add(t.expr(e.Left), t.expr(e.Right))
	case *ast.BinaryExpression:
		out.Label = e.Operation.Text
		out.add(t.expr(e.Left), t.expr(e.Right))
	case *ast.RangeExpression:
		out.Label = "exclusive"
		if e.Inclusive {
			out.Label = "inclusive"
		}
		out.add(t.expr(e.From), t.expr(e.To))
	case *ast.CastExpression:
		out.Label = typeName(e.Type)
		if e.Coerce {
			out.Label += " coerce"
		}
		out.add(t.expr(e.Expression))
	case *ast.ClassExpression:
		out.Label = typeName(e.Type)
	case *ast.TernaryExpression:
		out.add(t.expr(e.Condition), t.expr(e.True), t.expr(e.False))
	case *ast.ElvisOperatorExpression:
		out.add(t.expr(e.Base), t.expr(e.False))
	case *ast.BooleanExpression:
		out.add(t.expr(e.Expression))
	case *ast.NotExpression:
		out.add(t.expr(e.Expression))
	case *ast.BitwiseNegationExpression:
		out.add(t.expr(e.Expression))
	case *ast.UnaryMinusExpression:
		out.add(t.expr(e.Expression))
	case *ast.UnaryPlusExpression:
		out.add(t.expr(e.Expression))
	case *ast.PrefixExpression:
		out.Label = e.Operation.Text
		out.add(t.expr(e.Expression))
	case *ast.PostfixExpression:
		out.Label = e.Operation.Text
		out.add(t.expr(e.Expression))
	case *ast.ClosureExpression:
		if e.ExplicitParameters {
			out.Label = "->"
		}
		for _, p := range e.Parameters {
			out.add(t.param(p))
		}
		out.add(t.stmt(e.Code))
	case *ast.ListExpression:
		out.add(t.exprs(e.Expressions)...)
	case *ast.MapExpression:
		for _, entry := range e.Entries {
			out.add(t.expr(entry))
		}
	case *ast.NamedArgumentListExpression:
		for _, entry := range e.Entries {
			out.add(t.expr(entry))
		}
	case *ast.MapEntryExpression:
		out.add(t.expr(e.Key), t.expr(e.Value))
	case *ast.SpreadExpression:
		out.add(t.expr(e.Expression))
	case *ast.SpreadMapExpression:
		out.add(t.expr(e.Expression))
	case *ast.TupleExpression:
		out.add(t.exprs(e.Expressions)...)
	case *ast.ArgumentListExpression:
		out.add(t.exprs(e.Expressions)...)
	case *ast.ClosureListExpression:
		out.add(t.exprs(e.Expressions)...)
	case *ast.GStringExpression:
		out.Label = strconv.Quote(e.Verbatim)
		for i, s := range e.Strings {
			out.add(t.expr(s))
			if i < len(e.Values) {
				out.add(t.expr(e.Values[i]))
			}
		}
	case *ast.ArrayExpression:
		out.Label = typeName(e.ElementType)
		out.add(t.exprs(e.Expressions)...)
		out.add(t.exprs(e.SizeExpressions)...)
	case *ast.AnnotationConstantExpression:
		out.add(t.annotation(e.Annotation))
	}
	return out
}

func accessFlags(safe, spreadSafe bool) string {
	switch {
	case spreadSafe:
		return "spread-safe"
	case safe:
		return "safe"
	}
	return ""
}

// constantLabel renders a literal value followed by its Go type.
func constantLabel(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case *big.Int:
		return v.String() + " big.Int"
	case *big.Rat:
		return ratString(v) + " big.Rat"
	}
	return fmt.Sprintf("%v %T", v, v)
}

// ratString prints r as a plain decimal; literal decimals always have a
// terminating expansion.
func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := r.FloatString(40)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
