package builder

import (
	"strings"
	"unicode/utf8"

	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
)

// stamp copies a source span onto node and returns it. The source is a
// parse tree context, a single token, a token run given as a slice, or an
// already stamped node. A nil source, or a context without tokens, leaves
// node untouched.
func stamp[N ast.Node](node N, source any) N {
	switch s := source.(type) {
	case nil:
	case antlr.Token:
		node.SetSpan(tokenRange(s, s))
	case []antlr.Token:
		if len(s) > 0 && s[0] != nil && s[len(s)-1] != nil {
			node.SetSpan(tokenRange(s[0], s[len(s)-1]))
		}
	case parser.Context:
		start, stop := s.GetStart(), s.GetStop()
		if start != nil && stop != nil {
			node.SetSpan(tokenRange(start, stop))
		}
	case ast.Node:
		node.SetSpan(s.Span())
	}
	return node
}

// synthetic marks node as having no source text and returns it.
func synthetic[N interface {
	ast.Node
	MarkNoLocation()
}](node N) N {
	node.MarkNoLocation()
	return node
}

// tokenRange spans from the first character of start to just past the last
// character of stop.
func tokenRange(start, stop antlr.Token) ast.Span {
	endLine, endColumn := tokenEnd(stop)
	return ast.Span{
		StartLine:   start.GetLine(),
		StartColumn: start.GetColumn() + 1,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
}

// tokenEnd returns the exclusive end position of t. Tokens that contain
// newlines end on their own last line.
func tokenEnd(t antlr.Token) (line, column int) {
	text := t.GetText()
	line = t.GetLine()
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return line + strings.Count(text, "\n"), utf8.RuneCountInString(text[i+1:]) + 1
	}
	return line, t.GetColumn() + 1 + utf8.RuneCountInString(text)
}

// contextRange returns the token run from the start of first to the end of
// last, for stamping nodes that cover several sibling contexts.
func contextRange(first, last parser.Context) []antlr.Token {
	return []antlr.Token{first.GetStart(), last.GetStop()}
}

// opToken converts an operator token. Shifts arrive as consecutive >
// tokens and are rebuilt by repeating the text count times.
func opToken(t antlr.Token, count int) ast.Token {
	return ast.Token{
		Text:   strings.Repeat(t.GetText(), count),
		Line:   t.GetLine(),
		Column: t.GetColumn() + 1,
	}
}
