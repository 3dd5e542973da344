// Package batch builds many independent compilation units concurrently.
// Each unit gets its own ParserPlugin so no builder state is shared.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/builder"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one unit. Exactly one of Module and Err is set.
type Result struct {
	Unit   *builder.SourceUnit
	Module *ast.ModuleNode
	Err    error
}

// Compiler runs a bounded pool of builders.
type Compiler struct {
	factory builder.PluginFactory
	workers int
	logger  *zap.Logger
}

// New creates a Compiler that runs at most workers builds at once. A
// non-positive workers value means one.
func New(factory builder.PluginFactory, workers int, logger *zap.Logger) *Compiler {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{factory: factory, workers: workers, logger: logger}
}

// Compile builds every unit. Results keep the order of units. The returned
// error combines the failures of all units; units not started before ctx
// is done fail with the context error.
func (c *Compiler) Compile(ctx context.Context, units []*builder.SourceUnit) ([]Result, error) {
	results := make([]Result, len(units))
	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, unit := range units {
		results[i].Unit = unit
		if err := ctx.Err(); err != nil {
			results[i].Err = gasterr.NewCompilationFailed(unit.Name, err)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = gasterr.NewCompilationFailed(unit.Name, err)
				return nil
			}
			results[i].Module, results[i].Err = c.compileOne(unit)
			return nil
		})
	}
	_ = g.Wait()

	var err error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			err = multierr.Append(err, r.Err)
		}
	}
	c.logger.Debug("batch finished",
		zap.Int("units", len(units)),
		zap.Int("failed", failed),
		zap.Int("workers", c.workers))
	return results, err
}

// compileOne builds unit with a fresh plugin. A panic inside the plugin is
// an implementation defect; it is logged with its stack and returned as an
// internal error instead of taking down the other workers.
func (c *Compiler) compileOne(unit *builder.SourceUnit) (module *ast.ModuleNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("builder panicked",
				zap.String("unit", unit.Name),
				zap.Bool("internal_bug", true),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			module, err = nil, gasterr.NewCompilationFailed(unit.Name, panicToError(r))
		}
	}()
	return c.factory.CreateParserPlugin().Build(unit)
}

func panicToError(r any) error {
	if e, ok := r.(error); ok {
		return gasterr.NewInternalError(0, 0, "panic: "+e.Error())
	}
	return gasterr.NewInternalError(0, 0, fmt.Sprintf("panic: %v", r))
}

// ReadFiles loads each path as a source unit named by its path. Units that
// could not be read are skipped and their errors combined.
func ReadFiles(paths []string) ([]*builder.SourceUnit, error) {
	var units []*builder.SourceUnit
	var errs error
	for _, path := range paths {
		unit, err := readFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		units = append(units, unit)
	}
	return units, errs
}

func readFile(path string) (_ *builder.SourceUnit, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return builder.ReadSourceUnit(path, f)
}
