package dump

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleModule() *ast.ModuleNode {
	m := ast.NewModule("Sample.groovy")
	m.AddImport("List", ast.MakeType("java.util.List"), nil)

	c := ast.NewClass("Foo", ast.AccPublic, ast.ObjectType())
	c.SetSpan(ast.Span{StartLine: 1, StartColumn: 1, EndLine: 4, EndColumn: 2})
	c.AddField(ast.NewField("count", ast.AccPrivate, ast.MakeType("int"), c, &ast.ConstantExpression{Value: int32(1)}))
	body := &ast.BlockStatement{Statements: []ast.Statement{
		&ast.ReturnStatement{Expression: ast.NullConstant()},
	}}
	params := []*ast.Parameter{ast.NewParameter(ast.MakeType("String"), "arg")}
	c.AddMethod(ast.NewMethod("run", ast.AccPublic, ast.VoidType(), params, nil, body))
	m.AddClass(c)

	n, _ := new(big.Int).SetString("12345678901234567890", 10)
	m.AddStatement(&ast.ExpressionStatement{Expression: &ast.BinaryExpression{
		Left:      &ast.VariableExpression{Name: "x", Type: ast.ObjectType()},
		Operation: ast.Token{Text: "="},
		Right:     ast.NewConstant(n),
	}})
	return m
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Defines: map[string]string{"mode": "strict", "debug": "true"}}
	require.NoError(t, Text(&buf, sampleModule(), opts))

	want := `# unit Sample.groovy
# define debug=true
# define mode=strict
ModuleNode Sample.groovy
  ImportNode java.util.List as List
  ClassNode public Foo
    Extends
      Type java.lang.Object
    FieldNode private int count
      ConstantExpression 1 int32
    MethodNode public void run
      Parameter String arg
      BlockStatement
        ReturnStatement
          ConstantExpression null
  BlockStatement
    ExpressionStatement
      BinaryExpression =
        VariableExpression java.lang.Object x
        ConstantExpression 12345678901234567890 big.Int
`
	assert.Equal(t, want, buf.String())
}

func TestText_Spans(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleModule(), Options{Spans: true}))
	out := buf.String()
	assert.Contains(t, out, "ClassNode public Foo [1:1-4:2]\n")
	assert.Contains(t, out, "Type java.lang.Object [<synthetic>]\n")
	assert.NotContains(t, out, "# define")
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Defines: map[string]string{"mode": "strict"}}
	require.NoError(t, YAML(&buf, sampleModule(), opts))

	var doc document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Sample.groovy", doc.Unit)
	assert.Equal(t, opts.Defines, doc.Defines)
	require.NotNil(t, doc.Module)
	assert.Equal(t, "ModuleNode", doc.Module.Kind)

	var kinds []string
	for _, c := range doc.Module.Children {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"ImportNode", "ClassNode", "BlockStatement"}, kinds)
	assert.Empty(t, doc.Module.Children[1].Span, "spans are off")
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{"", "# unit Sample.groovy"},
		{FormatText, "# unit Sample.groovy"},
		{FormatYAML, "unit: Sample.groovy"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.format, sampleModule(), Options{}))
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix), buf.String())
		})
	}

	assert.Error(t, Write(&bytes.Buffer{}, "json", sampleModule(), Options{}))
}

func TestConstantLabel(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"a\"b", `"a\"b"`},
		{true, "true bool"},
		{int32(7), "7 int32"},
		{int64(7), "7 int64"},
		{float64(1.5), "1.5 float64"},
		{big.NewInt(42), "42 big.Int"},
		{big.NewRat(5, 4), "1.25 big.Rat"},
		{big.NewRat(3, 1), "3 big.Rat"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, constantLabel(tt.value))
	}
}

func TestTypeName(t *testing.T) {
	list := ast.MakeType("List")
	list.GenericsTypes = []*ast.GenericsType{{Wildcard: true, Name: "?", UpperBounds: []*ast.ClassNode{ast.MakeType("Number")}}}
	assert.Equal(t, "List<? extends Number>", typeName(list))

	m := ast.MakeType("Map")
	m.GenericsTypes = []*ast.GenericsType{
		ast.NewGenericsType(ast.MakeType("String")),
		{Placeholder: true, Name: "T", LowerBound: ast.MakeType("Integer")},
	}
	assert.Equal(t, "Map<String, T super Integer>", typeName(m))
	assert.Equal(t, "int[][]", typeName(ast.MakeType("int").MakeArray().MakeArray()))
}

func TestTree_FromBuilder(t *testing.T) {
	unit := builder.NewSourceUnit("Script.groovy", "def x = [a: 1, *: other]\nprintln \"v=$x\"\n")
	module, err := builder.NewBuilder(nil, false).Build(unit)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, module, Options{Spans: true}))
	out := buf.String()
	for _, want := range []string{
		"DeclarationExpression =",
		"MapExpression",
		"SpreadMapExpression",
		"MethodCallExpression implicit-this",
		"GStringExpression",
		"VariableExpression java.lang.Object x",
	} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "[1:1-1:25]", "declaration spans the whole line")
}
