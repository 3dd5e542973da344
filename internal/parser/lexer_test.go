package parser

import (
	"strings"
	"testing"

	"github.com/antlr4-go/antlr/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lex returns the default-channel tokens of src as "TYPE text", EOF
// excluded.
func lex(t *testing.T, src string) []string {
	t.Helper()
	listener := &GastErrorListener{}
	var out []string
	for _, tok := range NewLexer(antlr.NewInputStream(src), listener).AllTokens() {
		if tok.GetChannel() != antlr.TokenDefaultChannel || tok.GetTokenType() == EOF {
			continue
		}
		out = append(out, TokenName(tok.GetTokenType())+" "+tok.GetText())
	}
	require.Empty(t, listener.Errors)
	return out
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "declaration",
			input:    "def x = 10",
			expected: []string{"KW_DEF def", "IDENTIFIER x", "ASSIGN =", "INTEGER 10"},
		},
		{
			name:     "built-in types and visibility",
			input:    "private int n",
			expected: []string{"VISIBILITY_MODIFIER private", "BUILT_IN_TYPE int", "IDENTIFIER n"},
		},
		{
			name:     "numbers",
			input:    "1_000L 0x1F 0b10 1.5 2e3 3f 4G",
			expected: []string{"INTEGER 1_000L", "INTEGER 0x1F", "INTEGER 0b10", "DECIMAL 1.5", "DECIMAL 2e3", "DECIMAL 3f", "INTEGER 4G"},
		},
		{
			name:     "range is not a decimal",
			input:    "1..<5",
			expected: []string{"INTEGER 1", "RANGE_EXCLUSIVE ..<", "INTEGER 5"},
		},
		{
			name:     "longest operator wins",
			input:    "a ?. b ?: c *. d <=> e ==~ f .& g .@ h",
			expected: []string{"IDENTIFIER a", "SAFE_DOT ?.", "IDENTIFIER b", "ELVIS ?:", "IDENTIFIER c", "STAR_DOT *.", "IDENTIFIER d", "SPACESHIP <=>", "IDENTIFIER e", "MATCH ==~", "IDENTIFIER f", "MEMBER_POINTER .&", "IDENTIFIER g", "ATTR_DOT .@", "IDENTIFIER h"},
		},
		{
			name:     "right shifts stay separate",
			input:    "a >>> b",
			expected: []string{"IDENTIFIER a", "GT >", "GT >", "GT >", "IDENTIFIER b"},
		},
		{
			name:     "newlines are significant",
			input:    "a\r\nb\nc",
			expected: []string{"IDENTIFIER a", "NL \n", "IDENTIFIER b", "NL \n", "IDENTIFIER c"},
		},
		{
			name:     "line continuation",
			input:    "a \\\n+ b",
			expected: []string{"IDENTIFIER a", "PLUS +", "IDENTIFIER b"},
		},
		{
			name:     "comments are hidden",
			input:    "a // one\n/* two */ b",
			expected: []string{"IDENTIFIER a", "NL \n", "IDENTIFIER b"},
		},
		{
			name:     "shebang",
			input:    "#!/usr/bin/env groovy\nx",
			expected: []string{"NL \n", "IDENTIFIER x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lex(t, tt.input))
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single quoted never interpolates",
			input:    `'a $b'`,
			expected: []string{`STRING 'a $b'`},
		},
		{
			name:     "double quoted without values",
			input:    `"plain \" text"`,
			expected: []string{`STRING "plain \" text"`},
		},
		{
			name:     "lone dollar",
			input:    `"cost $5"`,
			expected: []string{`STRING "cost $5"`},
		},
		{
			name:  "path interpolation",
			input: `"hi $user.name!"`,
			expected: []string{
				`GSTRING_START "hi $`,
				"IDENTIFIER user",
				"GSTRING_PATH_PART .name",
				`GSTRING_END !"`,
			},
		},
		{
			name:  "braced interpolation with nested braces",
			input: `"a${ m.collect { it } }b${x}c"`,
			expected: []string{
				`GSTRING_START "a$`,
				"LCURVE {",
				"IDENTIFIER m",
				"DOT .",
				"IDENTIFIER collect",
				"LCURVE {",
				"IDENTIFIER it",
				"RCURVE }",
				"RCURVE }",
				"GSTRING_PART b$",
				"LCURVE {",
				"IDENTIFIER x",
				"RCURVE }",
				`GSTRING_END c"`,
			},
		},
		{
			name:  "triple quoted spans lines",
			input: "\"\"\"a\n$b\"\"\"",
			expected: []string{
				"GSTRING_START \"\"\"a\n$",
				"IDENTIFIER b",
				`GSTRING_END """`,
			},
		},
		{
			name:     "slashy after assignment",
			input:    `x = /a\/b/`,
			expected: []string{"IDENTIFIER x", "ASSIGN =", `STRING /a\/b/`},
		},
		{
			name:     "division after operand",
			input:    "a / b / c",
			expected: []string{"IDENTIFIER a", "DIV /", "IDENTIFIER b", "DIV /", "IDENTIFIER c"},
		},
		{
			name:     "dollar slashy",
			input:    `$/a$$b$/c/$`,
			expected: []string{`STRING $/a$$b$/c/$`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lex(t, tt.input))
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated single", "'abc"},
		{"unterminated double on newline", "\"abc\nd\""},
		{"unterminated comment", "/* open"},
		{"unterminated interpolation", `"a${b`},
		{"unknown character", "a # b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listener := &GastErrorListener{}
			tokens := NewLexer(antlr.NewInputStream(tt.input), listener).AllTokens()
			assert.NotEmpty(t, listener.Errors)
			require.NotEmpty(t, tokens)
			assert.Equal(t, EOF, tokens[len(tokens)-1].GetTokenType())
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := NewLexer(antlr.NewInputStream("a\n  bc"), nil).AllTokens()
	require.Len(t, tokens, 4)
	bc := tokens[2]
	assert.Equal(t, "bc", bc.GetText())
	assert.Equal(t, 2, bc.GetLine())
	assert.Equal(t, 2, bc.GetColumn())
	assert.Equal(t, 4, bc.GetStart())
	assert.Equal(t, 5, bc.GetStop())
}

func TestTokenStream(t *testing.T) {
	ts := NewTokenStream(NewLexer(antlr.NewInputStream("a // c\nb"), nil))
	assert.Len(t, ts.Hidden(), 1)
	assert.Equal(t, IDENTIFIER, ts.LA(1))
	assert.Equal(t, NL, ts.LA(2))
	assert.Equal(t, "b", ts.LT(3).GetText())
	assert.Equal(t, EOF, ts.LA(10))

	mark := ts.Index()
	ts.Consume()
	assert.Equal(t, NL, ts.LA(1))
	ts.Seek(mark)
	assert.Equal(t, "a", ts.LT(1).GetText())
	assert.False(t, ts.IsTriviallyEmpty())

	empty := NewTokenStream(NewLexer(antlr.NewInputStream(";\n// only\n;"), nil))
	assert.True(t, empty.IsTriviallyEmpty())
}

func TestDump(t *testing.T) {
	tokens := NewLexer(antlr.NewInputStream("x = 'a'"), nil).AllTokens()
	lines := strings.Split(strings.TrimSpace(Dump(tokens)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1, 0:0 IDENTIFIER x", lines[0])
	assert.Equal(t, "1, 4:6 STRING 'a'", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "EOF <EOF>"))
}

func TestTokenName(t *testing.T) {
	assert.Equal(t, "KW_INSTANCEOF", TokenName(KW_INSTANCEOF))
	assert.Equal(t, "GSTRING_PATH_PART", TokenName(GSTRING_PATH_PART))
	assert.Equal(t, "<INVALID>", TokenName(tokenTypeCount))
	assert.True(t, IsKeywordType(KW_DEF))
	assert.False(t, IsKeywordType(IDENTIFIER))
}
