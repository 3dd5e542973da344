package ast

import (
	"path/filepath"
	"strings"
	"unicode"
)

// PackageNode is the package declaration. Name keeps its trailing dot.
type PackageNode struct {
	Annotated
	Name string
}

// ImportNode is one import of any of the four kinds.
type ImportNode struct {
	Annotated
	Type        *ClassNode
	Alias       string
	FieldName   string
	PackageName string
	Static      bool
	Star        bool
}

// ImportMap is an alias-keyed mapping that keeps first-insertion order.
type ImportMap struct {
	keys  []string
	nodes map[string]*ImportNode
}

// Put stores n under key. A repeated key replaces the value in place.
func (m *ImportMap) Put(key string, n *ImportNode) {
	if m.nodes == nil {
		m.nodes = map[string]*ImportNode{}
	}
	if _, ok := m.nodes[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.nodes[key] = n
}

func (m *ImportMap) Get(key string) *ImportNode {
	return m.nodes[key]
}

func (m *ImportMap) Len() int {
	return len(m.keys)
}

func (m *ImportMap) Keys() []string {
	return m.keys
}

// Values returns the imports in key order.
func (m *ImportMap) Values() []*ImportNode {
	result := make([]*ImportNode, 0, len(m.keys))
	for _, k := range m.keys {
		result = append(result, m.nodes[k])
	}
	return result
}

// ModuleNode is the root of one compilation unit.
type ModuleNode struct {
	Located
	Description string
	Package     *PackageNode

	Imports           ImportMap
	StarImports       []*ImportNode
	StaticImports     ImportMap
	StaticStarImports ImportMap

	Classes    []*ClassNode
	Statements *BlockStatement
	Methods    []*MethodNode

	scriptClass *ClassNode
}

// NewModule creates an empty module for the unit named description.
func NewModule(description string) *ModuleNode {
	block := &BlockStatement{}
	block.MarkNoLocation()
	return &ModuleNode{Description: description, Statements: block}
}

// PackageName returns the package prefix, with trailing dot, or "".
func (m *ModuleNode) PackageName() string {
	if m.Package == nil {
		return ""
	}
	return m.Package.Name
}

// SetPackage sets the package declaration.
func (m *ModuleNode) SetPackage(p *PackageNode) {
	m.Package = p
}

// AddImport adds a plain import keyed by alias.
func (m *ModuleNode) AddImport(alias string, typ *ClassNode, annotations []*AnnotationNode) *ImportNode {
	n := &ImportNode{Type: typ, Alias: alias}
	for _, a := range annotations {
		n.AddAnnotation(a)
	}
	m.Imports.Put(alias, n)
	return n
}

// AddStarImport adds an on-demand import of packageName, which ends in a dot.
func (m *ModuleNode) AddStarImport(packageName string, annotations []*AnnotationNode) *ImportNode {
	n := &ImportNode{PackageName: packageName, Star: true}
	for _, a := range annotations {
		n.AddAnnotation(a)
	}
	m.StarImports = append(m.StarImports, n)
	return n
}

// AddStaticImport adds an import of one static member keyed by alias.
func (m *ModuleNode) AddStaticImport(typ *ClassNode, fieldName, alias string, annotations []*AnnotationNode) *ImportNode {
	n := &ImportNode{Type: typ, FieldName: fieldName, Alias: alias, Static: true}
	for _, a := range annotations {
		n.AddAnnotation(a)
	}
	m.StaticImports.Put(alias, n)
	return n
}

// AddStaticStarImport adds an import of all static members of typ.
func (m *ModuleNode) AddStaticStarImport(name string, typ *ClassNode, annotations []*AnnotationNode) *ImportNode {
	n := &ImportNode{Type: typ, Static: true, Star: true}
	for _, a := range annotations {
		n.AddAnnotation(a)
	}
	m.StaticStarImports.Put(name, n)
	return n
}

// AddClass appends a declared class.
func (m *ModuleNode) AddClass(c *ClassNode) {
	c.Module = m
	m.Classes = append(m.Classes, c)
}

// AddStatement appends to the script body.
func (m *ModuleNode) AddStatement(s Statement) {
	m.Statements.Statements = append(m.Statements.Statements, s)
}

// AddMethod appends a script method.
func (m *ModuleNode) AddMethod(method *MethodNode) {
	m.Methods = append(m.Methods, method)
}

// Class returns the declared class named name, or nil.
func (m *ModuleNode) Class(name string) *ClassNode {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsEmpty reports whether the module declares nothing at all.
func (m *ModuleNode) IsEmpty() bool {
	return len(m.Classes) == 0 && len(m.Statements.Statements) == 0 && len(m.Methods) == 0
}

// ScriptClass returns the implicit class that owns top-level code. It is
// created on first use and is not listed in Classes.
func (m *ModuleNode) ScriptClass() *ClassNode {
	if m.scriptClass == nil {
		superType := MakeType(ScriptTypeName)
		superType.MarkNoLocation()
		c := NewClass(m.PackageName()+ScriptName(m.Description), AccPublic, superType)
		c.Module = m
		c.MarkNoLocation()
		m.scriptClass = c
	}
	return m.scriptClass
}

// ScriptName derives a class name from a unit description.
func ScriptName(description string) string {
	base := filepath.Base(description)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "script"
	}
	var sb strings.Builder
	for i, r := range base {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
			sb.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
