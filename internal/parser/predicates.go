package parser

import (
	"unicode"

	"github.com/antlr4-go/antlr/v4"
)

// The predicates below only look ahead; none of them moves the stream.

// reservedWords are the token types a member selector treats as keywords.
// this and trait are deliberately absent.
var reservedWords = map[int]bool{
	BUILT_IN_TYPE:       true,
	VISIBILITY_MODIFIER: true,
}

func init() {
	for t := KW_ABSTRACT; t <= KW_WHILE; t++ {
		if t != KW_THIS && t != KW_TRAIT {
			reservedWords[t] = true
		}
	}
}

// IsClassName reports whether the dotted identifier chain starting at LT(1)
// names a type: its last segment is a built-in type or starts upper case.
func IsClassName(ts Lookahead) bool {
	index := 1
	for ts.LT(index+1).GetTokenType() == DOT {
		index += 2
	}
	last := ts.LT(index)
	if last.GetTokenType() == BUILT_IN_TYPE {
		return true
	}
	if last.GetTokenType() != IDENTIFIER {
		return false
	}
	for _, r := range last.GetText() {
		return unicode.IsUpper(r)
	}
	return false
}

// IsFollowedByLParen skips one interpolated string or closure literal at
// LT(1), then any newlines, and reports whether an open paren comes next.
func IsFollowedByLParen(ts Lookahead) bool {
	index := 1
	switch ts.LT(index).GetTokenType() {
	case GSTRING_START:
		for ts.LT(index).GetTokenType() != GSTRING_END {
			index++
			if ts.LT(index).GetTokenType() == EOF {
				return false
			}
		}
	case LCURVE:
		depth := 1
		for depth > 0 {
			index++
			switch ts.LT(index).GetTokenType() {
			case EOF:
				return false
			case LCURVE:
				depth++
			case RCURVE:
				depth--
			}
		}
	}
	for {
		index++
		if ts.LT(index).GetTokenType() != NL {
			break
		}
	}
	return ts.LT(index).GetTokenType() == LPAREN
}

// IsKeyword reports whether LT(1) is a reserved word.
func IsKeyword(ts Lookahead) bool {
	return reservedWords[ts.LT(1).GetTokenType()]
}

// IsCurrentClassName reports whether the next name, after an optional
// visibility modifier, equals name. Constructors are recognized this way.
func IsCurrentClassName(ts Lookahead, name string) bool {
	t := ts.LT(1)
	if t.GetTokenType() == VISIBILITY_MODIFIER {
		t = ts.LT(2)
	}
	return t.GetText() == name
}

// IsFollowedByJavaLetterInGString reports whether the character after a
// '$' inside a string starts an interpolation.
func IsFollowedByJavaLetterInGString(cs antlr.CharStream) bool {
	c := cs.LA(1)
	switch {
	case c == '{' || c == '_':
		return true
	case ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		return true
	case c > 0x7f:
		r := rune(c)
		return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
	}
	return false
}
