package parser

import (
	"fmt"

	"martianoff/gast/gasterr"

	"github.com/antlr4-go/antlr/v4"
	"go.uber.org/zap"
)

// GastErrorListener collects syntax errors reported by the lexer and parser.
type GastErrorListener struct {
	*antlr.DefaultErrorListener
	Errors []error
}

func (l *GastErrorListener) SyntaxError(recognizer antlr.Recognizer, offendingSymbol interface{}, line, column int, msg string, e antlr.RecognitionException) {
	l.Errors = append(l.Errors, gasterr.NewSyntaxError(line, column+1, msg))
}

// GroovyParser parses one compilation unit into a concrete syntax tree.
type GroovyParser struct {
	logger *zap.Logger
}

func NewGroovyParser(logger *zap.Logger) *GroovyParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroovyParser{logger: logger}
}

// Parse reads the whole of input and returns the tree together with the
// token stream it was parsed from. Syntax errors come back as a
// *gasterr.MultiError.
func (g *GroovyParser) Parse(input antlr.CharStream) (*CompilationUnitContext, *TokenStream, error) {
	errorListener := &GastErrorListener{}
	lexer := NewLexer(input, errorListener)
	stream := NewTokenStream(lexer)
	if len(errorListener.Errors) > 0 {
		return nil, stream, &gasterr.MultiError{Errors: errorListener.Errors}
	}

	p := &parser{ts: stream, listener: errorListener, logger: g.logger}
	tree := p.parse()
	if len(errorListener.Errors) > 0 {
		return nil, stream, &gasterr.MultiError{Errors: errorListener.Errors}
	}
	return tree, stream, nil
}

// ParseString is a convenience wrapper over Parse.
func (g *GroovyParser) ParseString(input string) (*CompilationUnitContext, *TokenStream, error) {
	return g.Parse(antlr.NewInputStream(input))
}

// bailout unwinds the parser after the first error.
type bailout struct{}

type parser struct {
	ts       *TokenStream
	listener antlr.ErrorListener
	logger   *zap.Logger

	// classNames holds the simple names of the classes being parsed, for
	// constructor recognition.
	classNames  []string
	speculating int
}

func (p *parser) parse() (tree *CompilationUnitContext) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree = nil
		}
	}()
	return p.compilationUnit()
}

func (p *parser) la(k int) int {
	return p.ts.LA(k)
}

func (p *parser) lt(k int) antlr.Token {
	return p.ts.LT(k)
}

func (p *parser) consume() antlr.Token {
	return p.ts.Consume()
}

func (p *parser) accept(ttype int) antlr.Token {
	if p.la(1) == ttype {
		return p.consume()
	}
	return nil
}

func (p *parser) expect(ttype int) antlr.Token {
	if p.la(1) != ttype {
		p.fail(p.lt(1), fmt.Sprintf("mismatched input %s expecting %s", quote(p.lt(1)), TokenName(ttype)))
	}
	return p.consume()
}

func (p *parser) nls() {
	for p.la(1) == NL {
		p.consume()
	}
}

// nlsThen skips newlines only when they are followed by ttype.
func (p *parser) nlsThen(ttype int) bool {
	k := 1
	for p.la(k) == NL {
		k++
	}
	if p.la(k) != ttype {
		return false
	}
	p.nls()
	return true
}

func (p *parser) fail(t antlr.Token, msg string) {
	if p.speculating == 0 {
		p.listener.SyntaxError(nil, t, t.GetLine(), t.GetColumn(), msg, nil)
	}
	panic(bailout{})
}

func (p *parser) noViableAlternative() {
	p.fail(p.lt(1), "no viable alternative at input "+quote(p.lt(1)))
}

func quote(t antlr.Token) string {
	if t.GetTokenType() == EOF {
		return "'<EOF>'"
	}
	if t.GetTokenType() == NL {
		return `'\n'`
	}
	return "'" + t.GetText() + "'"
}

// speculate runs fn and reports whether it parsed without error. The
// stream is rewound either way unless keep is set and fn succeeded.
func (p *parser) speculate(keep bool, fn func()) (ok bool) {
	mark := p.ts.Index()
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			ok = false
		}
		if !ok || !keep {
			p.ts.Seek(mark)
		}
	}()
	fn()
	return true
}

// finish records the token run from start to the last consumed token,
// without surrounding newlines.
func finish[C Context](p *parser, ctx C, start int) C {
	end := p.ts.Index()
	tokens := p.ts.Tokens()
	for start < end && tokens[start].GetTokenType() == NL {
		start++
	}
	for end > start && tokens[end-1].GetTokenType() == NL {
		end--
	}
	ctx.setTokens(tokens[start:end])
	return ctx
}

func (p *parser) mark() int {
	return p.ts.Index()
}

// atStatementEnd reports whether LT(1) ends a statement.
func (p *parser) atStatementEnd() bool {
	switch p.la(1) {
	case NL, SEMICOLON, EOF, RCURVE:
		return true
	}
	return false
}

// separators consumes statement separators. At least one is required
// unless the next token closes a block or the input.
func (p *parser) separators() {
	switch p.la(1) {
	case RCURVE, EOF:
		return
	case NL, SEMICOLON:
	default:
		p.fail(p.lt(1), "unexpected input "+quote(p.lt(1))+", expecting a new line or ';'")
	}
	for p.la(1) == NL || p.la(1) == SEMICOLON {
		p.consume()
	}
}

func (p *parser) pushClass(name string) func() {
	p.classNames = append(p.classNames, name)
	return func() { p.classNames = p.classNames[:len(p.classNames)-1] }
}

func (p *parser) currentClass() string {
	if len(p.classNames) == 0 {
		return ""
	}
	return p.classNames[len(p.classNames)-1]
}

func (p *parser) compilationUnit() *CompilationUnitContext {
	start := p.mark()
	unit := &CompilationUnitContext{}
	for p.la(1) == NL || p.la(1) == SEMICOLON {
		p.consume()
	}
	for p.la(1) != EOF {
		unit.Children = append(unit.Children, p.topLevel())
		p.separators()
	}
	p.logger.Debug("parsed compilation unit", zap.Int("children", len(unit.Children)))
	return finish(p, unit, start)
}

func (p *parser) topLevel() Context {
	k := p.skipModifiersAhead(1)
	switch p.la(k) {
	case KW_PACKAGE:
		return p.packageDefinition()
	case KW_IMPORT:
		return p.importStatement()
	case KW_CLASS, KW_INTERFACE, KW_ENUM, KW_TRAIT:
		return p.classDeclaration()
	case AT:
		if p.la(k+1) == KW_INTERFACE {
			return p.classDeclaration()
		}
	}
	if m := p.tryMethodDeclaration(true); m != nil {
		return m
	}
	return p.statement()
}

// skipModifiersAhead returns the lookahead index of the first token after
// annotations, modifiers and newlines starting at index k.
func (p *parser) skipModifiersAhead(k int) int {
	for {
		switch t := p.la(k); {
		case t == AT && p.la(k+1) != KW_INTERFACE:
			k = p.skipAnnotationAhead(k)
		case isModifier(t) && !(t == KW_SYNCHRONIZED && p.la(k+1) == LPAREN):
			k++
		case t == NL && k > 1:
			k++
		default:
			return k
		}
	}
}

func (p *parser) skipAnnotationAhead(k int) int {
	k++
	if p.la(k) != IDENTIFIER {
		return k
	}
	k++
	for p.la(k) == DOT && p.la(k+1) == IDENTIFIER {
		k += 2
	}
	if p.la(k) == LPAREN {
		depth := 0
		for {
			switch p.la(k) {
			case LPAREN:
				depth++
			case RPAREN:
				depth--
			case EOF:
				return k
			}
			k++
			if depth == 0 {
				return k
			}
		}
	}
	return k
}

func isModifier(ttype int) bool {
	switch ttype {
	case VISIBILITY_MODIFIER, KW_STATIC, KW_ABSTRACT, KW_FINAL, KW_NATIVE, KW_SYNCHRONIZED,
		KW_TRANSIENT, KW_VOLATILE, KW_STRICTFP, KW_THREADSAFE:
		return true
	}
	return false
}
