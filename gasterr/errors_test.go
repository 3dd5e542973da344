package gasterr_test

import (
	"errors"
	"fmt"
	"testing"

	"martianoff/gast/gasterr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxError(t *testing.T) {
	err := gasterr.NewSyntaxError(10, 5, "unexpected token")
	assert.Equal(t, gasterr.TypeSyntax, err.Type())
	assert.Equal(t, 10, err.Line)
	assert.Equal(t, 5, err.Column)
	assert.Contains(t, err.Error(), "[SyntaxError] line 10:5 unexpected token")
}

func TestSemanticError(t *testing.T) {
	err := gasterr.NewSemanticError("Cannot repeat modifier: static")
	assert.Equal(t, gasterr.TypeSemantic, err.Type())
	assert.Equal(t, "[SemanticError] Cannot repeat modifier: static", err.Error())
}

func TestSemanticErrorInFile(t *testing.T) {
	err := gasterr.NewSemanticErrorInFile("Script.groovy", 10, 5, "Cannot repeat modifier: static")
	assert.Equal(t, 10, err.Line)
	assert.Equal(t, 5, err.Column)
	assert.Equal(t, "[SemanticError] Script.groovy:10:5 Cannot repeat modifier: static", err.Error())
}

func TestSemanticErrorAt(t *testing.T) {
	err := gasterr.NewSemanticErrorAt(3, 7, "duplicate")
	assert.Equal(t, "[SemanticError] line 3:7 duplicate", err.Error())
}

func TestInternalError(t *testing.T) {
	err := gasterr.NewInternalError(2, 1, "unsupported statement type")
	assert.Equal(t, gasterr.TypeInternal, err.Type())
	assert.Equal(t, "[InternalError] line 2:1 unsupported statement type", err.Error())

	noPos := gasterr.NewInternalError(0, 0, "boom")
	assert.Equal(t, "[InternalError] boom", noPos.Error())
}

func TestCompilationFailedWrapsCause(t *testing.T) {
	cause := gasterr.NewSyntaxError(4, 2, "tuple declaration must have an initial value.")
	err := gasterr.NewCompilationFailed("Script.groovy", cause)

	assert.Equal(t, gasterr.PhaseParsing, err.Phase)
	assert.Equal(t, "Script.groovy", err.Unit)
	assert.Equal(t, gasterr.TypeCompilationFailed, err.Type())
	assert.Contains(t, err.Error(), "Script.groovy failed during parsing")

	var se *gasterr.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Line)
	assert.False(t, gasterr.IsInternal(err))

	wrapped := fmt.Errorf("build: %w", gasterr.NewCompilationFailed("A.groovy", gasterr.NewInternalError(1, 1, "bug")))
	assert.True(t, gasterr.IsInternal(wrapped))
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		line   int
		column int
		ok     bool
	}{
		{"syntax", gasterr.NewSyntaxError(1, 2, "x"), 1, 2, true},
		{"internal", gasterr.NewInternalError(3, 4, "x"), 3, 4, true},
		{"semantic", gasterr.NewSemanticErrorAt(5, 6, "x"), 5, 6, true},
		{"wrapped", gasterr.NewCompilationFailed("u", gasterr.NewSyntaxError(7, 8, "x")), 7, 8, true},
		{"plain", errors.New("x"), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column, ok := gasterr.Position(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.column, column)
		})
	}
}

func TestMultiError(t *testing.T) {
	e1 := gasterr.NewSyntaxError(1, 1, "error 1")
	e2 := gasterr.NewSyntaxError(2, 2, "error 2")
	multi := &gasterr.MultiError{Errors: []error{e1, e2}}

	assert.Equal(t, gasterr.TypeSyntax, multi.Type())
	errMsg := multi.Error()
	assert.Contains(t, errMsg, "2 error(s) occurred:")
	assert.Contains(t, errMsg, "- [SyntaxError] line 1:1 error 1")
	assert.Contains(t, errMsg, "- [SyntaxError] line 2:2 error 2")

	var se *gasterr.SyntaxError
	require.True(t, errors.As(multi, &se))
	assert.Equal(t, 1, se.Line)
}

func TestCollector(t *testing.T) {
	c := gasterr.NewCollector("A.groovy")
	assert.False(t, c.HasErrors())
	assert.NoError(t, c.Err())

	c.ReportError("Cannot repeat modifier: static", 1, 8)
	c.ReportError("Cannot specify modifier: private", 1, 15)

	assert.True(t, c.HasErrors())
	require.Len(t, c.Errors(), 2)
	assert.Equal(t, "[SemanticError] A.groovy:1:8 Cannot repeat modifier: static", c.Errors()[0].Error())

	var multi *gasterr.MultiError
	require.True(t, errors.As(c.Err(), &multi))
	assert.Len(t, multi.Errors, 2)
}
