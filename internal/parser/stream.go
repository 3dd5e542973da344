package parser

import (
	"fmt"
	"strings"

	"github.com/antlr4-go/antlr/v4"
)

// Lookahead is read-only access to upcoming tokens. LT(1) is the next token;
// reading past the end yields EOF.
type Lookahead interface {
	LT(k int) antlr.Token
}

// TokenStream buffers the default-channel tokens of one lexer run and keeps
// a cursor for the parser.
type TokenStream struct {
	tokens []antlr.Token
	hidden []antlr.Token
	pos    int
}

// NewTokenStream drains lexer.
func NewTokenStream(lexer *Lexer) *TokenStream {
	ts := &TokenStream{}
	for _, t := range lexer.AllTokens() {
		if t.GetChannel() == antlr.TokenDefaultChannel {
			ts.tokens = append(ts.tokens, t)
		} else {
			ts.hidden = append(ts.hidden, t)
		}
	}
	return ts
}

func (ts *TokenStream) LT(k int) antlr.Token {
	i := ts.pos + k - 1
	if i < 0 {
		return nil
	}
	if i >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[i]
}

// LA returns the type of LT(k).
func (ts *TokenStream) LA(k int) int {
	t := ts.LT(k)
	if t == nil {
		return EOF
	}
	return t.GetTokenType()
}

// Consume advances past LT(1) and returns it. EOF is never consumed.
func (ts *TokenStream) Consume() antlr.Token {
	t := ts.LT(1)
	if t.GetTokenType() != EOF {
		ts.pos++
	}
	return t
}

// Index is the cursor position, usable with Seek for backtracking.
func (ts *TokenStream) Index() int { return ts.pos }

func (ts *TokenStream) Seek(index int) { ts.pos = index }

// Previous returns the last consumed token, or nil at the start.
func (ts *TokenStream) Previous() antlr.Token {
	return ts.LT(0)
}

// Tokens returns the significant tokens, EOF included.
func (ts *TokenStream) Tokens() []antlr.Token { return ts.tokens }

// Hidden returns the comment tokens.
func (ts *TokenStream) Hidden() []antlr.Token { return ts.hidden }

// IsTriviallyEmpty reports whether the unit has nothing but newlines,
// semicolons and EOF. Comments are already on the hidden channel.
func (ts *TokenStream) IsTriviallyEmpty() bool {
	for _, t := range ts.tokens {
		switch t.GetTokenType() {
		case NL, SEMICOLON, EOF:
		default:
			return false
		}
	}
	return true
}

// Dump renders tokens one per line as "line, start:stop TYPE text".
func Dump(tokens []antlr.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		text := strings.ReplaceAll(t.GetText(), "\n", `\n`)
		fmt.Fprintf(&sb, "%d, %d:%d %s %s\n", t.GetLine(), t.GetStart(), t.GetStop(), TokenName(t.GetTokenType()), text)
	}
	return sb.String()
}
