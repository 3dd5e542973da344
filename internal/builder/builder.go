// Package builder turns the concrete syntax tree of one compilation unit
// into its AST module.
package builder

import (
	"fmt"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
	"go.uber.org/zap"
)

// Builder parses and transforms compilation units. It keeps no state
// between calls to Build.
type Builder struct {
	parser      *parser.GroovyParser
	logger      *zap.Logger
	debugTokens bool
}

// NewBuilder creates a Builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger, debugTokens bool) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		parser:      parser.NewGroovyParser(logger),
		logger:      logger,
		debugTokens: debugTokens,
	}
}

// Build parses unit and returns its module. Non-fatal diagnostics go to
// unit.Errors. A fatal error is logged and returned as a
// *gasterr.CompilationFailedError wrapping the cause.
func (b *Builder) Build(unit *SourceUnit) (*ast.ModuleNode, error) {
	if unit.Errors == nil {
		unit.Errors = gasterr.NewCollector(unit.Name)
	}
	logger := b.logger.With(zap.String("unit", unit.Name))

	if b.debugTokens {
		tokens := parser.NewLexer(antlr.NewInputStream(unit.Source), &parser.GastErrorListener{}).AllTokens()
		logger.Debug("source text", zap.String("text", unit.Source))
		logger.Debug("tokens\n" + parser.Dump(tokens))
	}

	tree, stream, err := b.parser.Parse(antlr.NewInputStream(unit.Source))
	if err != nil {
		return nil, b.fail(logger, unit, err)
	}
	logger.Debug("parse tree", zap.Int("children", len(tree.Children)))

	w := &astBuilder{
		unit:   unit,
		module: ast.NewModule(unit.Name),
		errors: unit.Errors,
		logger: logger,
	}
	module, err := w.build(tree, stream)
	if err != nil {
		return nil, b.fail(logger, unit, err)
	}
	return module, nil
}

func (b *Builder) fail(logger *zap.Logger, unit *SourceUnit, cause error) error {
	fields := []zap.Field{zap.String("phase", gasterr.PhaseParsing), zap.Error(cause)}
	if line, column, ok := gasterr.Position(cause); ok {
		fields = append(fields, zap.Int("line", line), zap.Int("column", column))
	}
	if gasterr.IsInternal(cause) {
		fields = append(fields, zap.Bool("internal_bug", true))
	}
	logger.Error("compilation failed", fields...)
	return gasterr.NewCompilationFailed(unit.Name, cause)
}

// astBuilder holds the walk state of one compilation unit.
type astBuilder struct {
	unit   *SourceUnit
	module *ast.ModuleNode
	errors *gasterr.Collector
	logger *zap.Logger

	// classes is the stack of enclosing class declarations.
	classes []*ast.ClassNode
	// pending collects anonymous classes per enclosing method body.
	pending        [][]*ast.ClassNode
	anonymousCount int
}

func (b *astBuilder) build(tree *parser.CompilationUnitContext, stream *parser.TokenStream) (*ast.ModuleNode, error) {
	if stream.IsTriviallyEmpty() {
		ret := &ast.ReturnStatement{Expression: synthetic(ast.NullConstant())}
		b.module.AddStatement(synthetic(ret))
		return b.module, nil
	}
	if err := b.visitCompilationUnit(tree); err != nil {
		return nil, err
	}
	stamp(b.module, tree)
	return b.module, nil
}

// reportAt records a non-fatal diagnostic at t.
func (b *astBuilder) reportAt(t antlr.Token, msg string) {
	line, column := t.GetLine(), t.GetColumn()+1
	b.errors.ReportError(fmt.Sprintf("%s at line: %d column: %d. File: %s", msg, line, column, b.unit.Name), line, column)
}

// syntaxError is a fatal error in the source. The source is a context or
// a token.
func syntaxError(source any, msg string) error {
	line, column := position(source)
	return gasterr.NewSyntaxError(line, column, msg)
}

// internalError reports a tree shape the builder does not know.
func internalError(source any, format string, args ...any) error {
	line, column := position(source)
	return gasterr.NewInternalError(line, column, fmt.Sprintf(format, args...))
}

func position(source any) (line, column int) {
	var t antlr.Token
	switch s := source.(type) {
	case antlr.Token:
		t = s
	case parser.Context:
		t = s.GetStart()
	}
	if t == nil {
		return 0, 0
	}
	return t.GetLine(), t.GetColumn() + 1
}
