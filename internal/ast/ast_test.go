package ast_test

import (
	"testing"

	"martianoff/gast/internal/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanValid(t *testing.T) {
	tests := []struct {
		name  string
		span  ast.Span
		valid bool
	}{
		{"single line", ast.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 5}, true},
		{"multi line", ast.Span{StartLine: 1, StartColumn: 9, EndLine: 3, EndColumn: 2}, true},
		{"empty range", ast.Span{StartLine: 2, StartColumn: 4, EndLine: 2, EndColumn: 4}, true},
		{"reversed columns", ast.Span{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 4}, false},
		{"reversed lines", ast.Span{StartLine: 3, StartColumn: 1, EndLine: 2, EndColumn: 4}, false},
		{"zero", ast.Span{}, false},
		{"no location", ast.NoLocation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.span.Valid())
		})
	}
	assert.True(t, ast.NoLocation.IsNoLocation())
	assert.True(t, ast.Span{}.IsZero())
	assert.Equal(t, "1:1-1:5", ast.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 5}.String())
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "public static final", ast.ModifierString(ast.AccPublic|ast.AccStatic|ast.AccFinal))
	assert.Equal(t, "private synthetic", ast.ModifierString(ast.AccPrivate|ast.AccSynthetic))
	assert.Equal(t, "", ast.ModifierString(0))
}

func TestImportMapKeepsFirstInsertionOrder(t *testing.T) {
	m := ast.NewModule("Imports.groovy")
	m.AddImport("Baz", ast.MakeType("foo.Bar"), nil)
	m.AddImport("List", ast.MakeType("java.util.List"), nil)
	m.AddImport("Baz", ast.MakeType("foo.Other"), nil)

	require.Equal(t, 2, m.Imports.Len())
	assert.Equal(t, []string{"Baz", "List"}, m.Imports.Keys())
	assert.Equal(t, "foo.Other", m.Imports.Get("Baz").Type.Name)
	assert.Nil(t, m.Imports.Get("Missing"))
}

func TestScriptName(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Hello.groovy", "Hello"},
		{"dir/my-script.groovy", "my_script"},
		{"1st.groovy", "_st"},
		{"", "script"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.ScriptName(tt.description))
		})
	}
}

func TestScriptClassIsLazyAndNotListed(t *testing.T) {
	m := ast.NewModule("Run.groovy")
	m.SetPackage(&ast.PackageNode{Name: "app."})
	c := m.ScriptClass()
	assert.Same(t, c, m.ScriptClass())
	assert.Equal(t, "app.Run", c.Name)
	assert.Empty(t, m.Classes)
	assert.True(t, c.Span().IsNoLocation())
}

func TestStaticInitializerIsCreatedOnce(t *testing.T) {
	c := ast.NewClass("A", ast.AccPublic, ast.ObjectType())
	first := c.StaticInitializer()
	c.AddStaticInitializerStatements([]ast.Statement{ast.NewEmptyStatement()})
	assert.Same(t, first, c.StaticInitializer())
	assert.Len(t, c.Methods, 1)
	assert.True(t, first.Synthetic)
	assert.Equal(t, ast.AccStatic, first.Modifiers)
	assert.Len(t, first.Code.(*ast.BlockStatement).Statements, 1)
}

func TestGenericsTypeString(t *testing.T) {
	wildcard := &ast.GenericsType{Name: "?", Wildcard: true, UpperBounds: []*ast.ClassNode{ast.MakeType("Number")}}
	assert.Equal(t, "? extends Number", wildcard.String())

	lower := &ast.GenericsType{Name: "?", Wildcard: true, LowerBound: ast.MakeType("Integer")}
	assert.Equal(t, "? super Integer", lower.String())

	param := &ast.GenericsType{Name: "T", Type: ast.MakeType("T"), UpperBounds: []*ast.ClassNode{ast.MakeType("A"), ast.MakeType("B")}}
	assert.Equal(t, "T extends A & B", param.String())
}

func TestArgumentsRecognizesBothShapes(t *testing.T) {
	named := &ast.TupleExpression{Expressions: []ast.Expression{&ast.NamedArgumentListExpression{}}}
	args, ok := ast.Arguments(named)
	assert.True(t, ok)
	assert.Len(t, args, 1)

	args, ok = ast.Arguments(ast.NewArgumentList(ast.NewConstant(1)))
	assert.True(t, ok)
	assert.Len(t, args, 1)

	_, ok = ast.Arguments(ast.NewConstant(1))
	assert.False(t, ok)
	assert.True(t, ast.IsEmptyArguments(ast.NewArgumentList()))
}

func TestAnnotationMembersKeepOrder(t *testing.T) {
	a := ast.NewAnnotation(ast.MakeType("Ann"))
	assert.True(t, a.AddMember("b", ast.NewConstant(1)))
	assert.True(t, a.AddMember("a", ast.NewConstant(2)))
	assert.False(t, a.AddMember("b", ast.NewConstant(3)))
	assert.Equal(t, []string{"b", "a"}, a.MemberNames())
	assert.Equal(t, 1, a.Member("b").(*ast.ConstantExpression).Value)
}

func TestInspectVisitsStatementsAndSkipsBackReferences(t *testing.T) {
	m := ast.NewModule("Walk.groovy")
	c := ast.NewClass("A", ast.AccPublic, ast.ObjectType())
	body := &ast.BlockStatement{}
	body.Add(&ast.ReturnStatement{Expression: ast.NewConstant(1)})
	method := ast.NewMethod("foo", ast.AccPublic, ast.ObjectType(), nil, nil, body)
	c.AddMethod(method)
	m.AddClass(c)

	inner := ast.NewInnerClass(c, "A$1", ast.AccPublic, ast.ObjectType())
	inner.EnclosingMethod = method
	m.AddClass(inner)

	counts := map[string]int{}
	ast.Inspect(m, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.ClassNode:
			counts["class"]++
		case *ast.MethodNode:
			counts["method"]++
		case *ast.ConstantExpression:
			counts["constant"]++
		}
		return true
	})
	// two declared classes, three type references
	assert.Equal(t, 5, counts["class"])
	assert.Equal(t, 1, counts["method"])
	assert.Equal(t, 1, counts["constant"])
}
