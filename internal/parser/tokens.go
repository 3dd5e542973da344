package parser

import "github.com/antlr4-go/antlr/v4"

// Token types. EOF is antlr's own end-of-input type.
const (
	EOF = antlr.TokenEOF

	NL = iota
	SEMICOLON
	COMMENT

	IDENTIFIER
	BUILT_IN_TYPE
	VISIBILITY_MODIFIER

	STRING
	GSTRING_START
	GSTRING_PART
	GSTRING_END
	GSTRING_PATH_PART
	INTEGER
	DECIMAL

	KW_ABSTRACT
	KW_AS
	KW_ASSERT
	KW_BREAK
	KW_CASE
	KW_CATCH
	KW_CLASS
	KW_CONST
	KW_CONTINUE
	KW_DEF
	KW_DEFAULT
	KW_DO
	KW_ELSE
	KW_ENUM
	KW_EXTENDS
	KW_FALSE
	KW_FINAL
	KW_FINALLY
	KW_FOR
	KW_GOTO
	KW_IF
	KW_IMPLEMENTS
	KW_IMPORT
	KW_IN
	KW_INSTANCEOF
	KW_INTERFACE
	KW_NATIVE
	KW_NEW
	KW_NULL
	KW_PACKAGE
	KW_RETURN
	KW_STATIC
	KW_STRICTFP
	KW_SUPER
	KW_SWITCH
	KW_SYNCHRONIZED
	KW_THIS
	KW_THREADSAFE
	KW_THROW
	KW_THROWS
	KW_TRAIT
	KW_TRANSIENT
	KW_TRUE
	KW_TRY
	KW_VOLATILE
	KW_WHILE

	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LCURVE
	RCURVE
	COMMA
	COLON
	AT
	QUESTION
	ELVIS
	CLOSURE_ARG_SEPARATOR
	ELLIPSIS
	RANGE
	RANGE_EXCLUSIVE

	DOT
	SAFE_DOT
	STAR_DOT
	ATTR_DOT
	MEMBER_POINTER

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	MULT_ASSIGN
	DIV_ASSIGN
	MOD_ASSIGN
	POWER_ASSIGN
	BAND_ASSIGN
	BOR_ASSIGN
	XOR_ASSIGN
	LSHIFT_ASSIGN
	RSHIFT_ASSIGN
	RUSHIFT_ASSIGN

	PLUS
	MINUS
	MULT
	DIV
	MOD
	POWER
	INCREMENT
	DECREMENT
	NOT
	BNOT
	AND
	OR
	BAND
	BOR
	XOR
	LSHIFT
	LT
	GT
	LTE
	GTE
	EQUAL
	UNEQUAL
	SPACESHIP
	FIND
	MATCH

	tokenTypeCount
)

var tokenNames = map[int]string{
	EOF:                   "EOF",
	NL:                    "NL",
	SEMICOLON:             "SEMICOLON",
	COMMENT:               "COMMENT",
	IDENTIFIER:            "IDENTIFIER",
	BUILT_IN_TYPE:         "BUILT_IN_TYPE",
	VISIBILITY_MODIFIER:   "VISIBILITY_MODIFIER",
	STRING:                "STRING",
	GSTRING_START:         "GSTRING_START",
	GSTRING_PART:          "GSTRING_PART",
	GSTRING_END:           "GSTRING_END",
	GSTRING_PATH_PART:     "GSTRING_PATH_PART",
	INTEGER:               "INTEGER",
	DECIMAL:               "DECIMAL",
	LPAREN:                "LPAREN",
	RPAREN:                "RPAREN",
	LBRACK:                "LBRACK",
	RBRACK:                "RBRACK",
	LCURVE:                "LCURVE",
	RCURVE:                "RCURVE",
	COMMA:                 "COMMA",
	COLON:                 "COLON",
	AT:                    "AT",
	QUESTION:              "QUESTION",
	ELVIS:                 "ELVIS",
	CLOSURE_ARG_SEPARATOR: "CLOSURE_ARG_SEPARATOR",
	ELLIPSIS:              "ELLIPSIS",
	RANGE:                 "RANGE",
	RANGE_EXCLUSIVE:       "RANGE_EXCLUSIVE",
	DOT:                   "DOT",
	SAFE_DOT:              "SAFE_DOT",
	STAR_DOT:              "STAR_DOT",
	ATTR_DOT:              "ATTR_DOT",
	MEMBER_POINTER:        "MEMBER_POINTER",
	ASSIGN:                "ASSIGN",
	PLUS_ASSIGN:           "PLUS_ASSIGN",
	MINUS_ASSIGN:          "MINUS_ASSIGN",
	MULT_ASSIGN:           "MULT_ASSIGN",
	DIV_ASSIGN:            "DIV_ASSIGN",
	MOD_ASSIGN:            "MOD_ASSIGN",
	POWER_ASSIGN:          "POWER_ASSIGN",
	BAND_ASSIGN:           "BAND_ASSIGN",
	BOR_ASSIGN:            "BOR_ASSIGN",
	XOR_ASSIGN:            "XOR_ASSIGN",
	LSHIFT_ASSIGN:         "LSHIFT_ASSIGN",
	RSHIFT_ASSIGN:         "RSHIFT_ASSIGN",
	RUSHIFT_ASSIGN:        "RUSHIFT_ASSIGN",
	PLUS:                  "PLUS",
	MINUS:                 "MINUS",
	MULT:                  "MULT",
	DIV:                   "DIV",
	MOD:                   "MOD",
	POWER:                 "POWER",
	INCREMENT:             "INCREMENT",
	DECREMENT:             "DECREMENT",
	NOT:                   "NOT",
	BNOT:                  "BNOT",
	AND:                   "AND",
	OR:                    "OR",
	BAND:                  "BAND",
	BOR:                   "BOR",
	XOR:                   "XOR",
	LSHIFT:                "LSHIFT",
	LT:                    "LT",
	GT:                    "GT",
	LTE:                   "LTE",
	GTE:                   "GTE",
	EQUAL:                 "EQUAL",
	UNEQUAL:               "UNEQUAL",
	SPACESHIP:             "SPACESHIP",
	FIND:                  "FIND",
	MATCH:                 "MATCH",
}

// keywords maps reserved words to their token types. Built-in types and
// visibility modifiers have their own shared types.
var keywords = map[string]int{
	"abstract":     KW_ABSTRACT,
	"as":           KW_AS,
	"assert":       KW_ASSERT,
	"break":        KW_BREAK,
	"case":         KW_CASE,
	"catch":        KW_CATCH,
	"class":        KW_CLASS,
	"const":        KW_CONST,
	"continue":     KW_CONTINUE,
	"def":          KW_DEF,
	"default":      KW_DEFAULT,
	"do":           KW_DO,
	"else":         KW_ELSE,
	"enum":         KW_ENUM,
	"extends":      KW_EXTENDS,
	"false":        KW_FALSE,
	"final":        KW_FINAL,
	"finally":      KW_FINALLY,
	"for":          KW_FOR,
	"goto":         KW_GOTO,
	"if":           KW_IF,
	"implements":   KW_IMPLEMENTS,
	"import":       KW_IMPORT,
	"in":           KW_IN,
	"instanceof":   KW_INSTANCEOF,
	"interface":    KW_INTERFACE,
	"native":       KW_NATIVE,
	"new":          KW_NEW,
	"null":         KW_NULL,
	"package":      KW_PACKAGE,
	"return":       KW_RETURN,
	"static":       KW_STATIC,
	"strictfp":     KW_STRICTFP,
	"super":        KW_SUPER,
	"switch":       KW_SWITCH,
	"synchronized": KW_SYNCHRONIZED,
	"this":         KW_THIS,
	"threadsafe":   KW_THREADSAFE,
	"throw":        KW_THROW,
	"throws":       KW_THROWS,
	"trait":        KW_TRAIT,
	"transient":    KW_TRANSIENT,
	"true":         KW_TRUE,
	"try":          KW_TRY,
	"volatile":     KW_VOLATILE,
	"while":        KW_WHILE,

	"boolean": BUILT_IN_TYPE,
	"byte":    BUILT_IN_TYPE,
	"char":    BUILT_IN_TYPE,
	"short":   BUILT_IN_TYPE,
	"int":     BUILT_IN_TYPE,
	"long":    BUILT_IN_TYPE,
	"float":   BUILT_IN_TYPE,
	"double":  BUILT_IN_TYPE,
	"void":    BUILT_IN_TYPE,

	"public":    VISIBILITY_MODIFIER,
	"protected": VISIBILITY_MODIFIER,
	"private":   VISIBILITY_MODIFIER,
}

// TokenName returns the symbolic name of a token type.
func TokenName(ttype int) string {
	if name, ok := tokenNames[ttype]; ok {
		return name
	}
	for word, t := range keywords {
		if t == ttype && t != BUILT_IN_TYPE && t != VISIBILITY_MODIFIER {
			return "KW_" + upper(word)
		}
	}
	return "<INVALID>"
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// IsKeywordType reports whether ttype is any KW_ token type.
func IsKeywordType(ttype int) bool {
	return ttype >= KW_ABSTRACT && ttype <= KW_WHILE
}
