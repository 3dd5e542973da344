package parser

import (
	"testing"

	"martianoff/gast/gasterr"

	"github.com/antlr4-go/antlr/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func parse(t *testing.T, src string) *CompilationUnitContext {
	t.Helper()
	tree, stream, err := NewGroovyParser(zaptest.NewLogger(t)).ParseString(src)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.NotNil(t, stream)
	return tree
}

// firstStatement returns the expression or command statement at the top of
// a one-line script.
func firstStatement(t *testing.T, src string) Context {
	t.Helper()
	tree := parse(t, src)
	require.NotEmpty(t, tree.Children)
	return tree.Children[0]
}

func firstExpression(t *testing.T, src string) ExpressionContext {
	t.Helper()
	stmt, ok := firstStatement(t, src).(*ExpressionStatementContext)
	require.True(t, ok, "expected an expression statement")
	return stmt.Expression
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"package and imports", "package a.b\nimport c.D\nimport static e.F.*\nimport g.H as I\nclass E {}"},
		{"annotation type", "@interface Ann { int value() default 1 }"},
		{"enum with members", "enum Color { RED, GREEN\n void f() {} }"},
		{"script method", "def m(int a, String... rest) { return a }"},
		{"generic declaration", "List<Map<String, List<Integer>>> xs = []"},
		{"switch", "switch (x) { case 1: break\n default: y() }"},
		{"try catch finally", "try { f() } catch (IOException | RuntimeException e) { } finally { }"},
		{"labeled for in", "label: for (x in list) { continue label }"},
		{"assert", "assert x : 'msg'"},
		{"synchronized", "synchronized (lock) { }"},
		{"map literal", "def m = [a: 1, *: other, (k): 2]"},
		{"ternary and elvis", "x = a ? b : c ?: d"},
		{"new array", "new int[3][]"},
		{"anonymous class", "new Foo<>(1) { def bar() {} }"},
		{"spread dot", "list*.name"},
		{"cast of signed value", "x = (int) -1"},
		{"attribute and method pointer", "a.@field\nb.&method"},
		{"power", "x = 2 ** 3 ** 4"},
		{"trait", "trait T { abstract void f() }"},
		{"single statement loop", "while (true) break"},
		{"else if chain", "if (a) b() else if (c) d() else e()"},
		{"trailing comma", "foo(1,)"},
		{"method chain on new lines", "list\n  .findAll { it }\n  .collect { it * 2 }"},
		{"static initializer", "class A {\n static { x = 1 }\n { y = 2 }\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parse(t, tt.input)
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"class without name", "class {", "mismatched input '{' expecting IDENTIFIER", 1, 7},
		{"unclosed parenthesis", "x = (1", "mismatched input '<EOF>' expecting RPAREN", 1, 7},
		{"try alone", "try { }", "try without catch or finally", 1, 8},
		{"separated shift", "a > > b", "no viable alternative at input '>'", 1, 5},
		{"missing separator", "x = 1 y = 2", "unexpected input 'y', expecting a new line or ';'", 1, 7},
		{"second line", "x = 1\ny = )", "no viable alternative at input ')'", 2, 5},
		{"lexer error", "'unterminated", "unterminated string literal", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _, err := NewGroovyParser(nil).ParseString(tt.input)
			require.Error(t, err)
			assert.Nil(t, tree)

			var multi *gasterr.MultiError
			require.ErrorAs(t, err, &multi)
			require.NotEmpty(t, multi.Errors)

			var syntax *gasterr.SyntaxError
			require.ErrorAs(t, multi.Errors[0], &syntax)
			assert.Equal(t, tt.message, syntax.Msg)
			assert.Equal(t, tt.line, syntax.Line)
			assert.Equal(t, tt.column, syntax.Column)
		})
	}
}

func TestCompilationUnit(t *testing.T) {
	tree, stream, err := NewGroovyParser(nil).ParseString("// header\n\n;\n")
	require.NoError(t, err)
	assert.Empty(t, tree.Children)
	assert.True(t, stream.IsTriviallyEmpty())
	assert.Len(t, stream.Hidden(), 1)

	tree = parse(t, "package a.b\nclass C {}\nprintln 1")
	require.Len(t, tree.Children, 3)
	assert.IsType(t, &PackageDefinitionContext{}, tree.Children[0])
	assert.IsType(t, &ClassDeclarationContext{}, tree.Children[1])
	assert.IsType(t, &CommandExpressionStatementContext{}, tree.Children[2])
	assert.Equal(t, "package", tree.GetStart().GetText())
	assert.Equal(t, "1", tree.GetStop().GetText())
}

func TestCommandExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		receiver bool
		children []string
	}{
		{"single call", "println 'hi'", false, []string{"println", "'hi'"}},
		{"receiver", "obj.foo 1, 2", true, []string{"foo", "1,2"}},
		{"chain", "move left by 2", false, []string{"move", "left", "by", "2"}},
		{"chain ending in property", "move left by 2 then", false, []string{"move", "left", "by", "2", "then"}},
		{"parenthesized link", "take 2 of(x)", false, []string{"take", "2", "of", "(x)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := firstStatement(t, tt.input).(*CommandExpressionStatementContext)
			require.True(t, ok)
			assert.Equal(t, tt.receiver, cmd.Expression != nil)

			var texts []string
			for i, child := range cmd.Children {
				if i%2 == 0 {
					assert.IsType(t, &TerminalContext{}, child)
				} else {
					assert.IsType(t, &ArgumentListContext{}, child)
				}
				texts = append(texts, child.GetText())
			}
			assert.Equal(t, tt.children, texts)
		})
	}
}

func TestClassicForHeader(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header []string
	}{
		{"all empty", "for (;;) {}", []string{"(", ";", ";", ")"}},
		{"full", "for (int i = 0; i < 3; i++) {}", []string{"(", "inti=0", ";", "i<3", ";", "i++", ")"}},
		{"condition only", "for (; ok;) {}", []string{"(", ";", "ok", ";", ")"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop, ok := firstStatement(t, tt.input).(*ClassicForStatementContext)
			require.True(t, ok)
			var texts []string
			for _, c := range loop.Header {
				texts = append(texts, c.GetText())
			}
			assert.Equal(t, tt.header, texts)
		})
	}

	loop := firstStatement(t, "for (int i = 0; i < 3; i++) {}").(*ClassicForStatementContext)
	assert.IsType(t, &DeclarationRuleContext{}, loop.Header[1])
	assert.IsType(t, &BinaryExpressionContext{}, loop.Header[3])
	assert.IsType(t, &PostfixExpressionContext{}, loop.Header[5])
}

func TestForInAndColon(t *testing.T) {
	in, ok := firstStatement(t, "for (String s in list) {}").(*ForInStatementContext)
	require.True(t, ok)
	assert.Equal(t, "String", in.Type.GetText())
	assert.Equal(t, "s", in.Name.GetText())

	colon, ok := firstStatement(t, "for (int i : xs) {}").(*ForColonStatementContext)
	require.True(t, ok)
	assert.Equal(t, "xs", colon.Collection.GetText())
}

func TestShiftOperators(t *testing.T) {
	tests := []struct {
		input string
		ops   int
	}{
		{"a << b", 1},
		{"a >> b", 2},
		{"a >>> b", 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bin, ok := firstExpression(t, tt.input).(*BinaryExpressionContext)
			require.True(t, ok)
			require.Len(t, bin.Children, tt.ops+2)
			assert.Equal(t, "a", bin.Left().GetText())
			assert.Equal(t, "b", bin.Right().GetText())
		})
	}

	rel, ok := firstExpression(t, "a > b").(*BinaryExpressionContext)
	require.True(t, ok)
	assert.Len(t, rel.Children, 3)
}

func TestPrecedence(t *testing.T) {
	bin := firstExpression(t, "a + b * c").(*BinaryExpressionContext)
	assert.Equal(t, "+", bin.Children[1].GetText())
	assert.Equal(t, "b*c", bin.Right().GetText())

	pow := firstExpression(t, "x = 2 ** 3 ** 4").(*AssignmentExpressionContext)
	right := pow.Right.(*BinaryExpressionContext)
	assert.Equal(t, "2", right.Left().GetText())
	assert.Equal(t, "3**4", right.Right().GetText())

	typeTest := firstExpression(t, "x instanceof List<String>").(*BinaryExpressionContext)
	assert.IsType(t, &GenericClassNameContext{}, typeTest.Right())
}

func TestConstructorCalls(t *testing.T) {
	tree := parse(t, "class A {\n A() { this(1) }\n A(int x) { super(x) }\n}")
	class := tree.Children[0].(*ClassDeclarationContext)
	require.Len(t, class.Body.Members, 2)

	first := class.Body.Members[0].(*ConstructorDeclarationContext)
	stmt := first.Body.Statements[0].(*ExpressionStatementContext)
	call, ok := stmt.Expression.(*CallExpressionContext)
	require.True(t, ok)
	assert.Nil(t, call.Expression)
	assert.Equal(t, KW_THIS, call.Call.Selector.GetTokenType())
	assert.Len(t, call.Call.Arguments.Arguments, 1)

	second := class.Body.Members[1].(*ConstructorDeclarationContext)
	stmt = second.Body.Statements[0].(*ExpressionStatementContext)
	superCall, ok := stmt.Expression.(*ConstructorCallExpressionContext)
	require.True(t, ok)
	assert.Equal(t, "super", superCall.Keyword.GetText())
}

func TestMembersAreDisambiguated(t *testing.T) {
	tree := parse(t, "class A {\n int x = 1\n String name\n def f() {}\n void g()\n A() {}\n}")
	class := tree.Children[0].(*ClassDeclarationContext)
	require.Len(t, class.Body.Members, 5)
	assert.IsType(t, &FieldDeclarationContext{}, class.Body.Members[0])
	assert.IsType(t, &FieldDeclarationContext{}, class.Body.Members[1])
	assert.IsType(t, &MethodDeclarationContext{}, class.Body.Members[2])

	abstract := class.Body.Members[3].(*MethodDeclarationContext)
	assert.Nil(t, abstract.Body)
	assert.IsType(t, &ConstructorDeclarationContext{}, class.Body.Members[4])
}

func TestEnumConstants(t *testing.T) {
	tree := parse(t, "enum E {\n A, B(1),\n @Deprecated C\n int v\n}")
	class := tree.Children[0].(*ClassDeclarationContext)
	require.Len(t, class.Body.EnumConstants, 3)
	assert.Nil(t, class.Body.EnumConstants[0].Arguments)
	assert.NotNil(t, class.Body.EnumConstants[1].Arguments)
	assert.Len(t, class.Body.EnumConstants[2].Annotations, 1)
	assert.Len(t, class.Body.Members, 1)
}

func TestTupleDeclaration(t *testing.T) {
	decl, ok := firstStatement(t, "def (int a, b) = [1, 2]").(*DeclarationStatementContext)
	require.True(t, ok)
	tuple := decl.Declaration.Tuple
	require.NotNil(t, tuple)
	require.Len(t, tuple.Variables, 2)
	assert.Equal(t, "int", tuple.Variables[0].Type.GetText())
	assert.Nil(t, tuple.Variables[1].Type)
	assert.IsType(t, &ListConstructorContext{}, tuple.Init)

	assign := firstExpression(t, "(x, y) = pair").(*AssignmentExpressionContext)
	assert.NotNil(t, assign.LParen)
	assert.Len(t, assign.Names, 2)
}

func TestClosures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		params int
		arrow  bool
	}{
		{"implicit parameter", "c = { it }", 0, false},
		{"explicit parameters", "c = { a, int b -> a + b }", 2, true},
		{"no parameters", "c = { -> 1 }", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assign := firstExpression(t, tt.input).(*AssignmentExpressionContext)
			closure, ok := assign.Right.(*ClosureExpressionRuleContext)
			require.True(t, ok)
			assert.Equal(t, tt.arrow, closure.Arrow != nil)
			if tt.params == 0 {
				assert.Nil(t, closure.Parameters)
				return
			}
			require.NotNil(t, closure.Parameters)
			assert.Len(t, closure.Parameters.Parameters, tt.params)
		})
	}
}

func TestTrailingClosures(t *testing.T) {
	call := firstExpression(t, "list.each { println it }").(*CallExpressionContext)
	assert.Nil(t, call.Call.Arguments)
	assert.Len(t, call.Call.Closures, 1)

	call = firstExpression(t, "run(1) { a } { b }").(*CallExpressionContext)
	assert.Len(t, call.Call.Arguments.Arguments, 1)
	assert.Len(t, call.Call.Closures, 2)
}

func TestGStringContext(t *testing.T) {
	g, ok := firstExpression(t, `"a${x}b$y.z"`).(*GStringContext)
	require.True(t, ok)
	require.Len(t, g.Values, 2)
	assert.Len(t, g.Parts, 1)
	assert.Equal(t, "x", g.Values[0].Expression.GetText())
	require.NotNil(t, g.Values[1].Path)
	assert.Equal(t, "y", g.Values[1].Path.Name.GetText())
	assert.Equal(t, ".z", g.Values[1].Path.Parts[0].GetText())

	empty := firstExpression(t, `"a${}b"`).(*GStringContext)
	assert.Nil(t, empty.Values[0].Expression)
	assert.Nil(t, empty.Values[0].Closure)

	multiline := firstExpression(t, "\"a${\n\n}b\"").(*GStringContext)
	require.Len(t, multiline.Values, 1)
	assert.Nil(t, multiline.Values[0].Expression)
	assert.Nil(t, multiline.Values[0].Closure)

	closure := firstExpression(t, `"a${ -> 1 }b"`).(*GStringContext)
	assert.NotNil(t, closure.Values[0].Closure)
}

func TestCreator(t *testing.T) {
	arr := firstExpression(t, "new int[3][]").(*NewArrayExpressionContext)
	assert.Equal(t, "int", arr.Type.GetText())
	assert.Len(t, arr.Sizes, 1)

	inst := firstExpression(t, "new Foo<>(1) { def bar() {} }").(*NewInstanceExpressionContext)
	assert.NotNil(t, inst.Diamond)
	require.NotNil(t, inst.Body)
	assert.IsType(t, &MethodDeclarationContext{}, inst.Body.Members[0])
}

func TestAnnotationParameters(t *testing.T) {
	tree := parse(t, "@A(a = [1, 2], b = true, c = 1.5, d = 1, e = null, f = 's', g = { it }, h = String, i = x.y, j = x + 1)\nclass C {}")
	class := tree.Children[0].(*ClassDeclarationContext)
	require.Len(t, class.Annotations, 1)

	expected := []AnnotationParameterContext{
		&AnnotationParamArrayContext{},
		&AnnotationParamBoolContext{},
		&AnnotationParamDecimalContext{},
		&AnnotationParamIntegerContext{},
		&AnnotationParamNullContext{},
		&AnnotationParamStringContext{},
		&AnnotationParamClosureContext{},
		&AnnotationParamClassContext{},
		&AnnotationParamPathContext{},
		&AnnotationParamExpressionContext{},
	}
	pairs := class.Annotations[0].Pairs
	require.Len(t, pairs, len(expected))
	for i, want := range expected {
		assert.IsType(t, want, pairs[i].Element.Parameter, pairs[i].Name.GetText())
	}
}

func lookahead(src string) *TokenStream {
	return NewTokenStream(NewLexer(antlr.NewInputStream(src), nil))
}

func TestIsClassName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"String x", true},
		{"java.util.List", true},
		{"foo.bar", false},
		{"int", true},
		{"x", false},
		{"1", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsClassName(lookahead(tt.input)))
		})
	}
}

func TestIsFollowedByLParen(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"foo(1)", true},
		{"foo\n\n(1)", true},
		{"{ x }(1)", true},
		{`"a${b}"(1)`, true},
		{"foo 1", false},
		{"{ x", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFollowedByLParen(lookahead(tt.input)))
		})
	}
}

func TestIsCurrentClassName(t *testing.T) {
	assert.True(t, IsCurrentClassName(lookahead("public A("), "A"))
	assert.True(t, IsCurrentClassName(lookahead("A("), "A"))
	assert.False(t, IsCurrentClassName(lookahead("B("), "A"))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword(lookahead("class")))
	assert.True(t, IsKeyword(lookahead("int")))
	assert.False(t, IsKeyword(lookahead("this")))
	assert.False(t, IsKeyword(lookahead("trait")))
	assert.False(t, IsKeyword(lookahead("foo")))
}

func TestIsFollowedByJavaLetterInGString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"{", true},
		{"_x", true},
		{"name", true},
		{"é", true},
		{"5", false},
		{" ", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFollowedByJavaLetterInGString(antlr.NewInputStream(tt.input)))
		})
	}
}
