package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/ast"
	"martianoff/gast/internal/batch"
	"martianoff/gast/internal/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func units(sources ...string) []*builder.SourceUnit {
	var out []*builder.SourceUnit
	for i, src := range sources {
		out = append(out, builder.NewSourceUnit(filepath.Join("unit", string(rune('a'+i))+".groovy"), src))
	}
	return out
}

func TestCompile(t *testing.T) {
	logger := zaptest.NewLogger(t)
	c := batch.New(builder.NewFactory(logger, false), 4, logger)
	results, err := c.Compile(context.Background(), units(
		"class A { def x = 1 }",
		"println 'hi'",
		"",
		"interface I { void run() }",
	))
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.NoError(t, r.Err)
		require.NotNil(t, r.Module)
		assert.Equal(t, r.Unit.Name, r.Module.Description, "result %d keeps input order", i)
	}
	assert.NotNil(t, results[0].Module.Class("A"))
	assert.NotNil(t, results[3].Module.Class("I"))
}

func TestCompile_Failures(t *testing.T) {
	c := batch.New(builder.NewFactory(nil, false), 2, zaptest.NewLogger(t))
	results, err := c.Compile(context.Background(), units(
		"def ok = 1",
		"class {",
		"x = (1",
	))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)

	assert.NoError(t, results[0].Err)
	for _, r := range results[1:] {
		assert.Nil(t, r.Module)
		var failed *gasterr.CompilationFailedError
		require.True(t, errors.As(r.Err, &failed))
		assert.Equal(t, r.Unit.Name, failed.Unit)
	}
}

type panickingPlugin struct{}

func (panickingPlugin) Build(*builder.SourceUnit) (*ast.ModuleNode, error) {
	panic("boom")
}

type countingFactory struct {
	created atomic.Int32
	plugin  builder.ParserPlugin
}

func (f *countingFactory) CreateParserPlugin() builder.ParserPlugin {
	f.created.Add(1)
	return f.plugin
}

func TestCompile_Panic(t *testing.T) {
	factory := &countingFactory{plugin: panickingPlugin{}}
	c := batch.New(factory, 3, zaptest.NewLogger(t))
	results, err := c.Compile(context.Background(), units("a", "b", "c"))
	require.Error(t, err)
	assert.Equal(t, int32(3), factory.created.Load(), "one plugin per unit")
	for _, r := range results {
		assert.True(t, gasterr.IsInternal(r.Err))
		assert.Contains(t, r.Err.Error(), "panic: boom")
	}
}

func TestCompile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := batch.New(builder.NewFactory(nil, false), 1, nil)
	results, err := c.Compile(ctx, units("def a = 1", "def b = 2"))
	require.Error(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestNew_DefaultsWorkers(t *testing.T) {
	c := batch.New(builder.NewFactory(nil, false), 0, nil)
	results, err := c.Compile(context.Background(), units("1 + 1"))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.groovy")
	require.NoError(t, os.WriteFile(good, []byte("println 1\n"), 0644))

	got, err := batch.ReadFiles([]string{good, filepath.Join(dir, "Missing.groovy")})
	require.Error(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, good, got[0].Name)
	assert.Equal(t, "println 1\n", got[0].Source)
	assert.NotNil(t, got[0].Errors)
}
