package ast

// MethodNode is a method declaration, a script method, or a synthetic
// initializer.
type MethodNode struct {
	Annotated
	Name           string
	Modifiers      int
	ReturnType     *ClassNode
	Parameters     []*Parameter
	Exceptions     []*ClassNode
	GenericsTypes  []*GenericsType
	Code           Statement
	DeclaringClass *ClassNode

	SyntheticPublic   bool
	AnnotationDefault bool
}

// NewMethod creates a method.
func NewMethod(name string, modifiers int, returnType *ClassNode, params []*Parameter, exceptions []*ClassNode, code Statement) *MethodNode {
	return &MethodNode{
		Name:       name,
		Modifiers:  modifiers,
		ReturnType: returnType,
		Parameters: params,
		Exceptions: exceptions,
		Code:       code,
	}
}

func (m *MethodNode) IsAbstract() bool {
	return m.Modifiers&AccAbstract != 0
}

func (m *MethodNode) IsStatic() bool {
	return m.Modifiers&AccStatic != 0
}

// ConstructorNode is a constructor. ReturnType is always nil.
type ConstructorNode struct {
	MethodNode
}

// NewConstructor creates a constructor.
func NewConstructor(modifiers int, params []*Parameter, exceptions []*ClassNode, code Statement) *ConstructorNode {
	return &ConstructorNode{MethodNode: MethodNode{
		Name:       "<init>",
		Modifiers:  modifiers,
		Parameters: params,
		Exceptions: exceptions,
		Code:       code,
	}}
}

// FieldNode is a field, including the backing field of a property.
type FieldNode struct {
	Annotated
	Name              string
	Modifiers         int
	Type              *ClassNode
	Owner             *ClassNode
	InitialExpression Expression
}

// NewField creates a field.
func NewField(name string, modifiers int, typ *ClassNode, owner *ClassNode, init Expression) *FieldNode {
	return &FieldNode{
		Name:              name,
		Modifiers:         modifiers,
		Type:              typ,
		Owner:             owner,
		InitialExpression: init,
	}
}

func (f *FieldNode) IsStatic() bool {
	return f.Modifiers&AccStatic != 0
}

// PropertyNode is a property with a generated backing field. Modifiers hold
// the accessor visibility.
type PropertyNode struct {
	Annotated
	Field       *FieldNode
	Modifiers   int
	GetterBlock Statement
	SetterBlock Statement
}

// NewProperty creates a property around field.
func NewProperty(field *FieldNode, modifiers int) *PropertyNode {
	return &PropertyNode{Field: field, Modifiers: modifiers}
}

func (p *PropertyNode) Name() string {
	return p.Field.Name
}

func (p *PropertyNode) Type() *ClassNode {
	return p.Field.Type
}

func (p *PropertyNode) InitialExpression() Expression {
	return p.Field.InitialExpression
}

// Parameter is a method, closure, catch or loop parameter.
type Parameter struct {
	Annotated
	Name         string
	Type         *ClassNode
	Modifiers    int
	DefaultValue Expression
}

// NewParameter creates a parameter.
func NewParameter(typ *ClassNode, name string) *Parameter {
	return &Parameter{Type: typ, Name: name}
}

// ForLoopDummyName names the placeholder variable of a classic for loop.
const ForLoopDummyName = "forLoopDummyParameter"

// ForLoopDummy returns the placeholder parameter of a classic for loop.
func ForLoopDummy() *Parameter {
	p := NewParameter(ObjectType(), ForLoopDummyName)
	p.MarkNoLocation()
	return p
}

func (p *Parameter) IsForLoopDummy() bool {
	return p.Name == ForLoopDummyName && p.Span().IsNoLocation()
}

func (p *Parameter) HasDefaultValue() bool {
	return p.DefaultValue != nil
}

// AnnotationNode is an annotation use. Members keep insertion order.
type AnnotationNode struct {
	Located
	ClassNode *ClassNode
	names     []string
	members   map[string]Expression
}

// NewAnnotation creates an annotation of the given type.
func NewAnnotation(typ *ClassNode) *AnnotationNode {
	return &AnnotationNode{ClassNode: typ, members: map[string]Expression{}}
}

// SetMember sets a member, replacing any previous value in place.
func (a *AnnotationNode) SetMember(name string, value Expression) {
	if _, ok := a.members[name]; !ok {
		a.names = append(a.names, name)
	}
	a.members[name] = value
}

// AddMember sets a member. It reports false and keeps the first value when
// name is already present.
func (a *AnnotationNode) AddMember(name string, value Expression) bool {
	if _, ok := a.members[name]; ok {
		return false
	}
	a.SetMember(name, value)
	return true
}

func (a *AnnotationNode) Member(name string) Expression {
	return a.members[name]
}

// MemberNames returns member names in insertion order.
func (a *AnnotationNode) MemberNames() []string {
	return a.names
}
