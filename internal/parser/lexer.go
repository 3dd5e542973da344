package parser

import (
	"fmt"
	"unicode"

	"github.com/antlr4-go/antlr/v4"
)

// stringMode tracks one open interpolated string. While inExpr is set the
// lexer is inside ${ } and depth counts nested braces.
type stringMode struct {
	delim  string
	inExpr bool
	depth  int
}

// Lexer turns a character stream into antlr tokens. Comments go to the
// hidden channel; newlines are significant and emitted as NL.
type Lexer struct {
	input    antlr.CharStream
	source   *antlr.TokenSourceCharStreamPair
	listener antlr.ErrorListener

	line   int
	column int

	modes   []*stringMode
	pending []antlr.Token
	last    int
	index   int
}

// NewLexer creates a lexer reading input. Lexical errors go to listener.
func NewLexer(input antlr.CharStream, listener antlr.ErrorListener) *Lexer {
	if listener == nil {
		listener = &antlr.DefaultErrorListener{}
	}
	return &Lexer{
		input:    input,
		source:   &antlr.TokenSourceCharStreamPair{},
		listener: listener,
		line:     1,
		last:     NL,
	}
}

// AllTokens lexes the whole input, EOF included.
func (l *Lexer) AllTokens() []antlr.Token {
	var tokens []antlr.Token
	for {
		t := l.NextToken()
		tokens = append(tokens, t)
		if t.GetTokenType() == EOF {
			return tokens
		}
	}
}

// NextToken returns the next token, including hidden ones.
func (l *Lexer) NextToken() antlr.Token {
	if len(l.pending) == 0 {
		l.scan()
	}
	t := l.pending[0]
	l.pending = l.pending[1:]
	t.SetTokenIndex(l.index)
	l.index++
	if t.GetChannel() == antlr.TokenDefaultChannel {
		l.last = t.GetTokenType()
	}
	return t
}

func (l *Lexer) la(i int) rune {
	c := l.input.LA(i)
	if c == antlr.TokenEOF {
		return -1
	}
	return rune(c)
}

func (l *Lexer) consume() rune {
	c := l.la(1)
	if c < 0 {
		return c
	}
	l.input.Consume()
	if c == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) consumeN(n int) {
	for i := 0; i < n; i++ {
		l.consume()
	}
}

func (l *Lexer) lookingAt(s string) bool {
	i := 1
	for _, r := range s {
		if l.la(i) != r {
			return false
		}
		i++
	}
	return true
}

type mark struct {
	index, line, column int
}

func (l *Lexer) mark() mark {
	return mark{index: l.input.Index(), line: l.line, column: l.column}
}

func (l *Lexer) emit(ttype int, m mark, channel int) {
	stop := l.input.Index() - 1
	text := l.input.GetText(m.index, stop)
	l.emitText(ttype, m, text, channel)
}

func (l *Lexer) emitText(ttype int, m mark, text string, channel int) {
	stop := l.input.Index() - 1
	t := antlr.CommonTokenFactoryDEFAULT.Create(l.source, ttype, text, channel, m.index, stop, m.line, m.column)
	l.pending = append(l.pending, t)
}

func (l *Lexer) errorf(m mark, format string, args ...any) {
	l.listener.SyntaxError(nil, nil, m.line, m.column, fmt.Sprintf(format, args...), nil)
}

func (l *Lexer) top() *stringMode {
	if len(l.modes) == 0 {
		return nil
	}
	return l.modes[len(l.modes)-1]
}

func (l *Lexer) scan() {
	if m := l.top(); m != nil && !m.inExpr {
		l.scanStringBody(m.delim, l.mark(), false)
		return
	}
	l.skipWhitespace()
	m := l.mark()
	c := l.la(1)
	switch {
	case c < 0:
		if len(l.modes) > 0 {
			l.errorf(m, "unterminated string literal")
			l.modes = nil
		}
		l.emitText(EOF, m, "<EOF>", antlr.TokenDefaultChannel)
	case c == '\r' && l.la(2) == '\n':
		l.consumeN(2)
		l.emitText(NL, m, "\n", antlr.TokenDefaultChannel)
	case c == '\n' || c == '\r':
		l.consume()
		l.emitText(NL, m, "\n", antlr.TokenDefaultChannel)
	case c == '#' && l.la(2) == '!' && m.index == 0:
		l.scanLineComment(m)
	case c == '/' && l.la(2) == '/':
		l.scanLineComment(m)
	case c == '/' && l.la(2) == '*':
		l.scanBlockComment(m)
	case c == '$' && l.la(2) == '/':
		l.consumeN(2)
		l.scanStringBody("$/", m, true)
	case c == '\'':
		l.scanQuoted(m)
	case c == '"':
		if l.lookingAt(`"""`) {
			l.consumeN(3)
			l.scanStringBody(`"""`, m, true)
		} else {
			l.consume()
			l.scanStringBody(`"`, m, true)
		}
	case c == '/' && l.slashyAllowed():
		l.consume()
		l.scanStringBody("/", m, true)
	case isIdentifierStart(c):
		l.scanIdentifier(m)
	case isDigit(c):
		l.scanNumber(m)
	default:
		l.scanOperator(m)
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		c := l.la(1)
		switch {
		case c == ' ' || c == '\t' || c == '\f':
			l.consume()
		case c == '\\' && l.la(2) == '\n':
			l.consumeN(2)
		case c == '\\' && l.la(2) == '\r' && l.la(3) == '\n':
			l.consumeN(3)
		default:
			return
		}
	}
}

// slashyAllowed reports whether a slash starts a slashy string rather than
// a division, based on the previous significant token.
func (l *Lexer) slashyAllowed() bool {
	switch l.last {
	case IDENTIFIER, INTEGER, DECIMAL, STRING, GSTRING_END, RPAREN, RBRACK, RCURVE,
		KW_THIS, KW_SUPER, KW_TRUE, KW_FALSE, KW_NULL, INCREMENT, DECREMENT, BUILT_IN_TYPE:
		return false
	}
	return l.la(2) != '=' || l.last == NL || l.last == LPAREN || l.last == ASSIGN
}

func (l *Lexer) scanLineComment(m mark) {
	for c := l.la(1); c >= 0 && c != '\n' && c != '\r'; c = l.la(1) {
		l.consume()
	}
	l.emit(COMMENT, m, antlr.TokenHiddenChannel)
}

func (l *Lexer) scanBlockComment(m mark) {
	l.consumeN(2)
	for {
		if l.la(1) < 0 {
			l.errorf(m, "unterminated comment")
			break
		}
		if l.lookingAt("*/") {
			l.consumeN(2)
			break
		}
		l.consume()
	}
	l.emit(COMMENT, m, antlr.TokenHiddenChannel)
}

func (l *Lexer) scanIdentifier(m mark) {
	for isIdentifierPart(l.la(1)) {
		l.consume()
	}
	text := l.input.GetText(m.index, l.input.Index()-1)
	ttype := IDENTIFIER
	if kw, ok := keywords[text]; ok {
		ttype = kw
	}
	l.emitText(ttype, m, text, antlr.TokenDefaultChannel)
}

func (l *Lexer) scanNumber(m mark) {
	ttype := INTEGER
	if l.la(1) == '0' && (l.la(2) == 'x' || l.la(2) == 'X') {
		l.consumeN(2)
		for isHexDigit(l.la(1)) || l.la(1) == '_' {
			l.consume()
		}
	} else if l.la(1) == '0' && (l.la(2) == 'b' || l.la(2) == 'B') {
		l.consumeN(2)
		for c := l.la(1); c == '0' || c == '1' || c == '_'; c = l.la(1) {
			l.consume()
		}
	} else {
		l.scanDigits()
		if l.la(1) == '.' && isDigit(l.la(2)) {
			ttype = DECIMAL
			l.consume()
			l.scanDigits()
		}
		if c := l.la(1); c == 'e' || c == 'E' {
			next := l.la(2)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.la(3))) {
				ttype = DECIMAL
				l.consumeN(2)
				l.scanDigits()
			}
		}
	}
	switch l.la(1) {
	case 'i', 'I', 'l', 'L':
		if ttype == INTEGER {
			l.consume()
		}
	case 'g', 'G':
		l.consume()
	case 'f', 'F', 'd', 'D':
		if !l.isHexLiteral(m) {
			ttype = DECIMAL
			l.consume()
		}
	}
	l.emit(ttype, m, antlr.TokenDefaultChannel)
}

func (l *Lexer) isHexLiteral(m mark) bool {
	text := l.input.GetText(m.index, l.input.Index()-1)
	return len(text) > 1 && (text[1] == 'x' || text[1] == 'X')
}

func (l *Lexer) scanDigits() {
	for isDigit(l.la(1)) || l.la(1) == '_' {
		l.consume()
	}
}

// scanQuoted handles single-quoted strings, which never interpolate.
func (l *Lexer) scanQuoted(m mark) {
	delim := "'"
	if l.lookingAt("'''") {
		delim = "'''"
	}
	l.consumeN(len(delim))
	for {
		c := l.la(1)
		switch {
		case c < 0:
			l.errorf(m, "unterminated string literal")
			l.emit(STRING, m, antlr.TokenDefaultChannel)
			return
		case l.lookingAt(delim):
			l.consumeN(len(delim))
			l.emit(STRING, m, antlr.TokenDefaultChannel)
			return
		case c == '\\':
			l.consumeN(2)
		case (c == '\n' || c == '\r') && delim == "'":
			l.errorf(m, "unterminated string literal")
			l.emit(STRING, m, antlr.TokenDefaultChannel)
			return
		default:
			l.consume()
		}
	}
}

func closingDelimiter(delim string) string {
	if delim == "$/" {
		return "/$"
	}
	return delim
}

// scanStringBody reads string text up to the closing delimiter or the next
// interpolation. When first is set the opening delimiter has already been
// consumed from m.
func (l *Lexer) scanStringBody(delim string, m mark, first bool) {
	closing := closingDelimiter(delim)
	for {
		c := l.la(1)
		switch {
		case c < 0:
			l.errorf(m, "unterminated string literal")
			if !first {
				l.modes = l.modes[:len(l.modes)-1]
			}
			l.emit(STRING, m, antlr.TokenDefaultChannel)
			return

		case l.lookingAt(closing):
			l.consumeN(len(closing))
			if first {
				l.emit(STRING, m, antlr.TokenDefaultChannel)
			} else {
				l.modes = l.modes[:len(l.modes)-1]
				l.emit(GSTRING_END, m, antlr.TokenDefaultChannel)
			}
			return

		case delim == "$/" && (l.lookingAt("$$") || l.lookingAt("$/")):
			l.consumeN(2)

		case c == '\\' && delim != "$/":
			if delim == "/" && l.la(2) != '/' {
				l.consume()
			} else {
				l.consumeN(2)
			}

		case c == '$':
			l.consume()
			if !IsFollowedByJavaLetterInGString(l.input) {
				continue
			}
			if first {
				l.emit(GSTRING_START, m, antlr.TokenDefaultChannel)
				l.modes = append(l.modes, &stringMode{delim: delim})
			} else {
				l.emit(GSTRING_PART, m, antlr.TokenDefaultChannel)
			}
			l.scanInterpolation(l.top())
			return

		case delim == `"` && (c == '\n' || c == '\r'):
			l.errorf(m, "unterminated string literal")
			if !first {
				l.modes = l.modes[:len(l.modes)-1]
			}
			l.emit(STRING, m, antlr.TokenDefaultChannel)
			return

		default:
			l.consume()
		}
	}
}

// scanInterpolation emits the tokens that open an embedded value: an LCURVE
// for ${ }, or an identifier followed by .name path parts.
func (l *Lexer) scanInterpolation(mode *stringMode) {
	m := l.mark()
	if l.la(1) == '{' {
		l.consume()
		l.emit(LCURVE, m, antlr.TokenDefaultChannel)
		mode.inExpr = true
		mode.depth = 0
		return
	}
	for isIdentifierPart(l.la(1)) {
		l.consume()
	}
	l.emit(IDENTIFIER, m, antlr.TokenDefaultChannel)
	for l.la(1) == '.' && isIdentifierStart(l.la(2)) && l.la(2) != '$' {
		pm := l.mark()
		l.consume()
		for isIdentifierPart(l.la(1)) {
			l.consume()
		}
		l.emit(GSTRING_PATH_PART, pm, antlr.TokenDefaultChannel)
	}
}

type operator struct {
	text  string
	ttype int
}

// operators is ordered so that longer spellings win.
var operators = []operator{
	{">>>=", RUSHIFT_ASSIGN},
	{">>=", RSHIFT_ASSIGN},
	{"<<=", LSHIFT_ASSIGN},
	{"<=>", SPACESHIP},
	{"==~", MATCH},
	{"..<", RANGE_EXCLUSIVE},
	{"...", ELLIPSIS},
	{"**=", POWER_ASSIGN},
	{">=", GTE},
	{"<=", LTE},
	{"<<", LSHIFT},
	{"==", EQUAL},
	{"=~", FIND},
	{"!=", UNEQUAL},
	{"..", RANGE},
	{".@", ATTR_DOT},
	{".&", MEMBER_POINTER},
	{"?.", SAFE_DOT},
	{"?:", ELVIS},
	{"*.", STAR_DOT},
	{"**", POWER},
	{"*=", MULT_ASSIGN},
	{"->", CLOSURE_ARG_SEPARATOR},
	{"--", DECREMENT},
	{"-=", MINUS_ASSIGN},
	{"++", INCREMENT},
	{"+=", PLUS_ASSIGN},
	{"/=", DIV_ASSIGN},
	{"%=", MOD_ASSIGN},
	{"&&", AND},
	{"&=", BAND_ASSIGN},
	{"||", OR},
	{"|=", BOR_ASSIGN},
	{"^=", XOR_ASSIGN},
	{">", GT},
	{"<", LT},
	{"=", ASSIGN},
	{"!", NOT},
	{".", DOT},
	{"?", QUESTION},
	{"*", MULT},
	{"-", MINUS},
	{"+", PLUS},
	{"/", DIV},
	{"%", MOD},
	{"&", BAND},
	{"|", BOR},
	{"^", XOR},
	{"~", BNOT},
	{"(", LPAREN},
	{")", RPAREN},
	{"[", LBRACK},
	{"]", RBRACK},
	{"{", LCURVE},
	{"}", RCURVE},
	{",", COMMA},
	{":", COLON},
	{";", SEMICOLON},
	{"@", AT},
}

func (l *Lexer) scanOperator(m mark) {
	for _, op := range operators {
		if !l.lookingAt(op.text) {
			continue
		}
		if mode := l.top(); mode != nil && mode.inExpr {
			switch op.ttype {
			case LCURVE:
				mode.depth++
			case RCURVE:
				if mode.depth == 0 {
					mode.inExpr = false
				} else {
					mode.depth--
				}
			}
		}
		l.consumeN(len(op.text))
		l.emit(op.ttype, m, antlr.TokenDefaultChannel)
		return
	}
	c := l.consume()
	l.errorf(m, "token recognition error at: '%c'", c)
	l.scan()
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentifierStart(c rune) bool {
	if c < 0 {
		return false
	}
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
		(c > 0x7f && unicode.IsLetter(c))
}

func isIdentifierPart(c rune) bool {
	return isIdentifierStart(c) || isDigit(c) || (c > 0x7f && unicode.IsDigit(c))
}
