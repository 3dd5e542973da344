// Package ast is the abstract syntax tree produced by the builder: one module
// graph per compilation unit, every node carrying a source span.
package ast

import "fmt"

// Span locates a node in the source. Lines and columns are 1-based and the
// end column is exclusive.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// NoLocation marks nodes synthesized without corresponding source text.
var NoLocation = Span{StartLine: -1, StartColumn: -1, EndLine: -1, EndColumn: -1}

// IsZero reports whether the span was never stamped.
func (s Span) IsZero() bool {
	return s == Span{}
}

// IsNoLocation reports whether the span is the synthetic marker.
func (s Span) IsNoLocation() bool {
	return s == NoLocation
}

// Valid reports whether s is a real, non-degenerate source range.
func (s Span) Valid() bool {
	if s.StartLine <= 0 || s.StartColumn <= 0 {
		return false
	}
	if s.StartLine > s.EndLine {
		return false
	}
	return s.StartLine < s.EndLine || s.StartColumn <= s.EndColumn
}

func (s Span) String() string {
	switch {
	case s.IsNoLocation():
		return "<synthetic>"
	case s.IsZero():
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
	SetSpan(Span)
}

// Located is embedded by every node to hold its span.
type Located struct {
	span Span
}

func (l *Located) Span() Span {
	return l.span
}

func (l *Located) SetSpan(s Span) {
	l.span = s
}

// MarkNoLocation flags the node as synthetic.
func (l *Located) MarkNoLocation() {
	l.span = NoLocation
}

// AnnotatedNode is a node that can carry annotations.
type AnnotatedNode interface {
	Node
	AddAnnotation(*AnnotationNode)
	Annotations() []*AnnotationNode
}

// Annotated is embedded by declarations that accept annotations.
type Annotated struct {
	Located
	annotations []*AnnotationNode
	Synthetic   bool
}

func (a *Annotated) AddAnnotation(an *AnnotationNode) {
	a.annotations = append(a.annotations, an)
}

func (a *Annotated) Annotations() []*AnnotationNode {
	return a.annotations
}

// AnnotationsOf returns the annotations whose type has the given name.
func (a *Annotated) AnnotationsOf(typeName string) []*AnnotationNode {
	var result []*AnnotationNode
	for _, an := range a.annotations {
		if an.ClassNode != nil && an.ClassNode.Name == typeName {
			result = append(result, an)
		}
	}
	return result
}

// Token is an operator occurrence recorded on expressions.
type Token struct {
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	return t.Text
}
