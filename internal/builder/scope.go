package builder

import (
	"fmt"

	"martianoff/gast/internal/ast"
)

// withClass runs fn with c as the innermost enclosing class.
func (b *astBuilder) withClass(c *ast.ClassNode, fn func() error) error {
	b.classes = append(b.classes, c)
	defer func() { b.classes = b.classes[:len(b.classes)-1] }()
	return fn()
}

// currentClass returns the innermost enclosing class, or nil at top level.
func (b *astBuilder) currentClass() *ast.ClassNode {
	if len(b.classes) == 0 {
		return nil
	}
	return b.classes[len(b.classes)-1]
}

// withMethodBody runs fn while collecting the anonymous classes declared in
// a method or constructor body, and returns them.
func (b *astBuilder) withMethodBody(fn func() error) ([]*ast.ClassNode, error) {
	b.pending = append(b.pending, nil)
	defer func() { b.pending = b.pending[:len(b.pending)-1] }()
	err := fn()
	return b.pending[len(b.pending)-1], err
}

// registerInner records c for the innermost method body, if any.
func (b *astBuilder) registerInner(c *ast.ClassNode) {
	if n := len(b.pending); n > 0 {
		b.pending[n-1] = append(b.pending[n-1], c)
	}
}

// anonymousName returns the next anonymous class name under outer. The
// counter is shared by the whole module, so names never repeat.
func (b *astBuilder) anonymousName(outer *ast.ClassNode) string {
	b.anonymousCount++
	return fmt.Sprintf("%s$%d", outer.Name, b.anonymousCount)
}
