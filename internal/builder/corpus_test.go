package builder_test

import (
	"os"
	"path/filepath"
	"testing"

	"martianoff/gast/internal/builder"
	"martianoff/gast/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCorpus(t *testing.T) {
	tests := []struct {
		file       string
		pkg        string
		classes    []string
		statements int
	}{
		{"hello.groovy", "", nil, 2},
		{"shapes.groovy", "demo.shapes.", []string{"demo.shapes.Shape", "demo.shapes.Base", "demo.shapes.Circle", "demo.shapes.Color"}, 2},
		{"control.groovy", "", nil, 7},
	}
	b := builder.NewBuilder(zaptest.NewLogger(t), false)
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := testutil.MustPath(t, filepath.ToSlash(filepath.Join("testdata", "groovy", tt.file)))
			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			unit, err := builder.ReadSourceUnit(path, f)
			require.NoError(t, err)

			module, err := b.Build(unit)
			require.NoError(t, err)
			assert.False(t, unit.Errors.HasErrors(), "%v", unit.Errors.Err())
			assert.Equal(t, tt.pkg, module.PackageName())

			var names []string
			for _, c := range module.Classes {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.classes, names)
			assert.Len(t, module.Statements.Statements, tt.statements)
		})
	}
}

func TestCorpus_Broken(t *testing.T) {
	for _, path := range testutil.Glob(t, "testdata/broken", "*.groovy") {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source := testutil.ReadFile(t, "testdata/broken/"+filepath.Base(path))
			_, err := builder.NewBuilder(nil, false).Build(builder.NewSourceUnit(path, source))
			assert.Error(t, err)
		})
	}
}
