package ast

import "strings"

// Well-known type names.
const (
	ObjectTypeName     = "java.lang.Object"
	EnumTypeName       = "java.lang.Enum"
	AnnotationTypeName = "java.lang.annotation.Annotation"
	ScriptTypeName     = "groovy.lang.Script"
	TraitTypeName      = "groovy.transform.Trait"
)

// ClassNode is both a declared class and a reference to a type. Declared
// classes have Primary set; references are created fresh per use so each
// can carry its own span.
type ClassNode struct {
	Annotated
	Name       string
	Modifiers  int
	SuperClass *ClassNode
	Interfaces []*ClassNode

	// GenericsTypes is nil without type parameters and empty for a diamond.
	GenericsTypes []*GenericsType
	UsingGenerics bool

	Fields             []*FieldNode
	Properties         []*PropertyNode
	Methods            []*MethodNode
	Constructors       []*ConstructorNode
	ObjectInitializers []Statement

	// Mixins is nil for interfaces and never nil for other declared classes.
	Mixins []*MixinNode

	OuterClass      *ClassNode
	EnclosingMethod *MethodNode
	Anonymous       bool
	SyntheticPublic bool
	Primary         bool
	Module          *ModuleNode

	// ComponentType is set on array types.
	ComponentType *ClassNode
}

// MixinNode names a mixed-in type.
type MixinNode struct {
	Located
	Type *ClassNode
}

// MakeType returns an unresolved type reference.
func MakeType(name string) *ClassNode {
	return &ClassNode{Name: name}
}

func syntheticType(name string) *ClassNode {
	c := MakeType(name)
	c.MarkNoLocation()
	return c
}

// ObjectType is the implicit root type.
func ObjectType() *ClassNode { return syntheticType(ObjectTypeName) }

// VoidType is the return type of initializers.
func VoidType() *ClassNode { return syntheticType("void") }

// EnumType is the implicit superclass of enums.
func EnumType() *ClassNode { return syntheticType(EnumTypeName) }

// AnnotationType is the implicit interface of annotation declarations.
func AnnotationType() *ClassNode { return syntheticType(AnnotationTypeName) }

// ThisType and SuperType mark this(...) and super(...) constructor calls.
func ThisType() *ClassNode  { return syntheticType("this") }
func SuperType() *ClassNode { return syntheticType("super") }

// NewClass creates a declared class.
func NewClass(name string, modifiers int, superClass *ClassNode) *ClassNode {
	return &ClassNode{
		Name:       name,
		Modifiers:  modifiers,
		SuperClass: superClass,
		Primary:    true,
		Mixins:     []*MixinNode{},
	}
}

// NewInnerClass creates a class nested in outer.
func NewInnerClass(outer *ClassNode, name string, modifiers int, superClass *ClassNode) *ClassNode {
	c := NewClass(name, modifiers, superClass)
	c.OuterClass = outer
	return c
}

// MakeArray returns the array type whose element is c.
func (c *ClassNode) MakeArray() *ClassNode {
	return &ClassNode{Name: c.Name + "[]", ComponentType: c}
}

func (c *ClassNode) IsArray() bool {
	return c.ComponentType != nil
}

func (c *ClassNode) IsInterface() bool {
	return c.Modifiers&AccInterface != 0
}

func (c *ClassNode) IsEnum() bool {
	return c.Modifiers&AccEnum != 0
}

func (c *ClassNode) IsAnnotationDefinition() bool {
	return c.Modifiers&AccAnnotation != 0
}

// IsObject reports whether c names the implicit root type.
func (c *ClassNode) IsObject() bool {
	return c.Name == ObjectTypeName
}

// IsUsingGenerics reports whether c or any type it extends has type arguments.
func (c *ClassNode) IsUsingGenerics() bool {
	return c.UsingGenerics || c.GenericsTypes != nil
}

// NameWithoutPackage strips the package prefix and any outer class names.
func (c *ClassNode) NameWithoutPackage() string {
	name := c.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// AddField appends f and sets its owner.
func (c *ClassNode) AddField(f *FieldNode) {
	f.Owner = c
	c.Fields = append(c.Fields, f)
}

// AddProperty appends p and its backing field.
func (c *ClassNode) AddProperty(p *PropertyNode) {
	c.AddField(p.Field)
	c.Properties = append(c.Properties, p)
}

// AddMethod appends m and sets its declaring class.
func (c *ClassNode) AddMethod(m *MethodNode) {
	m.DeclaringClass = c
	c.Methods = append(c.Methods, m)
}

// AddConstructor appends ctor and sets its declaring class.
func (c *ClassNode) AddConstructor(ctor *ConstructorNode) {
	ctor.DeclaringClass = c
	c.Constructors = append(c.Constructors, ctor)
}

// AddObjectInitializer appends an instance initializer block.
func (c *ClassNode) AddObjectInitializer(s Statement) {
	c.ObjectInitializers = append(c.ObjectInitializers, s)
}

// Field returns the field named name, or nil.
func (c *ClassNode) Field(name string) *FieldNode {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Property returns the property named name, or nil.
func (c *ClassNode) Property(name string) *PropertyNode {
	for _, p := range c.Properties {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Method returns the first method named name, or nil.
func (c *ClassNode) Method(name string) *MethodNode {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// StaticInitializer returns the class's <clinit> method, creating it on first
// use.
func (c *ClassNode) StaticInitializer() *MethodNode {
	if m := c.Method("<clinit>"); m != nil {
		return m
	}
	body := &BlockStatement{}
	body.MarkNoLocation()
	m := NewMethod("<clinit>", AccStatic, VoidType(), nil, nil, body)
	m.Synthetic = true
	m.MarkNoLocation()
	c.AddMethod(m)
	return m
}

// AddStaticInitializerStatements appends stmts to the <clinit> body.
func (c *ClassNode) AddStaticInitializerStatements(stmts []Statement) {
	body := c.StaticInitializer().Code.(*BlockStatement)
	body.Statements = append(body.Statements, stmts...)
}

// GenericsType is one type argument or type parameter.
type GenericsType struct {
	Located
	Name        string
	Type        *ClassNode
	UpperBounds []*ClassNode
	LowerBound  *ClassNode
	Wildcard    bool
	Placeholder bool
}

// NewGenericsType wraps a concrete type argument.
func NewGenericsType(t *ClassNode) *GenericsType {
	return &GenericsType{Name: t.Name, Type: t}
}

func (g *GenericsType) String() string {
	var sb strings.Builder
	if g.Wildcard {
		sb.WriteString("?")
	} else {
		sb.WriteString(g.Name)
	}
	if len(g.UpperBounds) > 0 {
		sb.WriteString(" extends ")
		for i, b := range g.UpperBounds {
			if i > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(b.Name)
		}
	}
	if g.LowerBound != nil {
		sb.WriteString(" super ")
		sb.WriteString(g.LowerBound.Name)
	}
	return sb.String()
}
