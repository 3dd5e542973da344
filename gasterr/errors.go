// Package gasterr defines the error taxonomy shared by the parser front end
// and the AST builder.
package gasterr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeSyntax            ErrorType = "SyntaxError"
	TypeSemantic          ErrorType = "SemanticError"
	TypeInternal          ErrorType = "InternalError"
	TypeCompilationFailed ErrorType = "CompilationFailed"
)

// PhaseParsing is the only compilation phase this module reports.
const PhaseParsing = "parsing"

// GastError is the interface for all errors raised by the front end.
type GastError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for front end errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// SyntaxError is a fatal error in the user's source. Reaching one aborts the
// walk for the whole compilation unit.
type SyntaxError struct {
	BaseError
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
}

// SemanticError is a non-fatal diagnostic such as a repeated modifier.
type SemanticError struct {
	BaseError
	Line     int
	Column   int
	FilePath string
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		if e.FilePath != "" {
			return fmt.Sprintf("[%s] %s:%d:%d %s", e.ErrType, e.FilePath, e.Line, e.Column, e.Msg)
		}
		return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// InternalError marks a defect in the builder itself, for example a parse
// tree node kind without a handler. It is fatal like a SyntaxError but is
// reported separately so it is not mistaken for a user error.
type InternalError struct {
	BaseError
	Line   int
	Column int
}

func (e *InternalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// CompilationFailedError wraps the fatal cause of a failed compilation unit.
type CompilationFailedError struct {
	Phase string
	Unit  string
	Cause error
}

func (e *CompilationFailedError) Error() string {
	return fmt.Sprintf("[%s] %s failed during %s: %v", TypeCompilationFailed, e.Unit, e.Phase, e.Cause)
}

func (e *CompilationFailedError) Type() ErrorType {
	return TypeCompilationFailed
}

func (e *CompilationFailedError) Unwrap() error {
	return e.Cause
}

// MultiError collects multiple errors.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if ge, ok := m.Errors[0].(GastError); ok {
			return ge.Type()
		}
	}
	return "MultiError"
}

func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(line, column int, msg string) *SyntaxError {
	return &SyntaxError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSyntax,
		},
		Line:   line,
		Column: column,
	}
}

// NewSemanticError creates a new SemanticError.
func NewSemanticError(msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
	}
}

// NewSemanticErrorAt creates a SemanticError with line and column position.
func NewSemanticErrorAt(line, column int, msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
		Line:   line,
		Column: column,
	}
}

// NewSemanticErrorInFile creates a SemanticError with file path, line, and column position.
func NewSemanticErrorInFile(filePath string, line, column int, msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
		Line:     line,
		Column:   column,
		FilePath: filePath,
	}
}

// NewInternalError creates a new InternalError.
func NewInternalError(line, column int, msg string) *InternalError {
	return &InternalError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeInternal,
		},
		Line:   line,
		Column: column,
	}
}

// NewCompilationFailed wraps cause with the parsing phase and unit name.
func NewCompilationFailed(unit string, cause error) *CompilationFailedError {
	return &CompilationFailedError{
		Phase: PhaseParsing,
		Unit:  unit,
		Cause: cause,
	}
}

// IsInternal reports whether err, or anything it wraps, is an InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

// Position extracts the line and column carried by err, if any.
func Position(err error) (line, column int, ok bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Line, se.Column, true
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.Line, ie.Column, true
	}
	var me *SemanticError
	if errors.As(err, &me) {
		return me.Line, me.Column, true
	}
	return 0, 0, false
}
