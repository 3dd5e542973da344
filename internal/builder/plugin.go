package builder

import (
	"fmt"
	"io"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/ast"

	"go.uber.org/zap"
)

// SourceUnit is one compilation unit handed to a ParserPlugin.
type SourceUnit struct {
	// Name describes the unit, usually its file path. It names the script
	// class and appears in diagnostics.
	Name   string
	Source string
	// Errors receives non-fatal diagnostics. Build creates it when nil.
	Errors *gasterr.Collector
}

// NewSourceUnit creates a unit from source text.
func NewSourceUnit(name, source string) *SourceUnit {
	return &SourceUnit{Name: name, Source: source, Errors: gasterr.NewCollector(name)}
}

// ReadSourceUnit creates a unit from everything r yields.
func ReadSourceUnit(name string, r io.Reader) (*SourceUnit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return NewSourceUnit(name, string(data)), nil
}

// ParserPlugin builds the AST module of a compilation unit.
type ParserPlugin interface {
	Build(unit *SourceUnit) (*ast.ModuleNode, error)
}

// PluginFactory hands out one ParserPlugin per compilation unit.
type PluginFactory interface {
	CreateParserPlugin() ParserPlugin
}

// Factory is the PluginFactory for Builder.
type Factory struct {
	logger      *zap.Logger
	debugTokens bool
}

// NewFactory creates a Factory whose builders log to logger and, when
// debugTokens is set, dump every unit's tokens at debug level.
func NewFactory(logger *zap.Logger, debugTokens bool) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{logger: logger, debugTokens: debugTokens}
}

func (f *Factory) CreateParserPlugin() ParserPlugin {
	return NewBuilder(f.logger, f.debugTokens)
}
