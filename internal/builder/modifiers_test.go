package builder

import (
	"testing"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func lexModifiers(t *testing.T, src string) []antlr.Token {
	t.Helper()
	var tokens []antlr.Token
	for _, tok := range parser.NewLexer(antlr.NewInputStream(src), nil).AllTokens() {
		if tok.GetTokenType() != parser.EOF {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func newTestBuilder() *astBuilder {
	return &astBuilder{
		unit:   NewSourceUnit("Test.groovy", ""),
		module: ast.NewModule("Test.groovy"),
		errors: gasterr.NewCollector("Test.groovy"),
		logger: zap.NewNop(),
	}
}

func TestResolveModifiers(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		defaultVis    int
		expected      int
		hasVisibility bool
		errors        []string
	}{
		{
			name:       "default visibility",
			input:      "static final",
			defaultVis: ast.AccPublic,
			expected:   ast.AccPublic | ast.AccStatic | ast.AccFinal,
		},
		{
			name:          "explicit visibility",
			input:         "private abstract",
			defaultVis:    ast.AccPublic,
			expected:      ast.AccPrivate | ast.AccAbstract,
			hasVisibility: true,
		},
		{
			name:          "first visibility wins",
			input:         "protected public",
			expected:      ast.AccProtected,
			hasVisibility: true,
			errors: []string{
				"Cannot specify modifier: public when access scope has already been defined at line: 1 column: 11. File: Test.groovy",
			},
		},
		{
			name:          "same visibility twice",
			input:         "public public",
			expected:      ast.AccPublic,
			hasVisibility: true,
			errors: []string{
				"Cannot specify modifier: public when access scope has already been defined at line: 1 column: 8. File: Test.groovy",
			},
		},
		{
			name:     "repeated modifier",
			input:    "static synchronized static",
			expected: ast.AccStatic | ast.AccSynchronized,
			errors: []string{
				"Cannot repeat modifier: static at line: 1 column: 21. File: Test.groovy",
			},
		},
		{
			name:     "remaining modifiers",
			input:    "native transient volatile strictfp",
			expected: ast.AccNative | ast.AccTransient | ast.AccVolatile | ast.AccStrict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			mods, hasVisibility := b.resolveModifiers(lexModifiers(t, tt.input), tt.defaultVis)
			assert.Equal(t, tt.expected, mods)
			assert.Equal(t, tt.hasVisibility, hasVisibility)

			var messages []string
			for _, err := range b.errors.Errors() {
				var semantic *gasterr.SemanticError
				require.ErrorAs(t, err, &semantic)
				messages = append(messages, semantic.Msg)
			}
			assert.Equal(t, tt.errors, messages)
		})
	}
}

func TestClassModifiers(t *testing.T) {
	b := newTestBuilder()

	mods, syntheticPublic := b.classModifiers(lexModifiers(t, "abstract"))
	assert.Equal(t, ast.AccPublic|ast.AccAbstract, mods)
	assert.True(t, syntheticPublic)

	mods, syntheticPublic = b.classModifiers(lexModifiers(t, "private"))
	assert.Equal(t, ast.AccPrivate, mods)
	assert.False(t, syntheticPublic)
	require.False(t, b.errors.HasErrors())
}

func TestIsSyntheticPublic(t *testing.T) {
	tests := []struct {
		name                                                       string
		visibility, annotationMember, modifier, returnType, hasDef bool
		expected                                                   bool
	}{
		{"explicit visibility", true, false, false, false, true, false},
		{"annotation member", false, true, false, true, false, true},
		{"def with return type", false, false, false, true, true, true},
		{"def alone", false, false, false, false, true, true},
		{"modifier with return type", false, false, true, true, false, true},
		{"bare return type", false, false, false, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isSyntheticPublic(tt.visibility, tt.annotationMember, tt.modifier, tt.returnType, tt.hasDef)
			assert.Equal(t, tt.expected, got)
		})
	}
}
