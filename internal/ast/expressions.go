package ast

// Expression is the closed set of expression nodes.
type Expression interface {
	Node
	expressionNode()
}

type expr struct {
	Located
}

func (*expr) expressionNode() {}

type (
	// ConstantExpression holds a literal. Value is nil, bool, string, a Go
	// integer or float, *big.Int or *big.Rat.
	ConstantExpression struct {
		expr
		Value     any
		Primitive bool
	}

	VariableExpression struct {
		expr
		Name      string
		Type      *ClassNode
		Modifiers int
	}

	PropertyExpression struct {
		expr
		Object     Expression
		Property   Expression
		Safe       bool
		SpreadSafe bool
	}

	// AttributeExpression is direct field access with .@
	AttributeExpression struct {
		PropertyExpression
	}

	MethodPointerExpression struct {
		expr
		Expression Expression
		MethodName Expression
	}

	MethodCallExpression struct {
		expr
		Object       Expression
		Method       Expression
		Arguments    Expression
		ImplicitThis bool
		Safe         bool
		SpreadSafe   bool
	}

	ConstructorCallExpression struct {
		expr
		Type                     *ClassNode
		Arguments                Expression
		UsingAnonymousInnerClass bool
	}

	BinaryExpression struct {
		expr
		Left      Expression
		Operation Token
		Right     Expression
	}

	// DeclarationExpression is a variable declaration. Left is a
	// VariableExpression or, for tuples, an ArgumentListExpression.
	DeclarationExpression struct {
		BinaryExpression
		annotations []*AnnotationNode
	}

	RangeExpression struct {
		expr
		From      Expression
		To        Expression
		Inclusive bool
	}

	CastExpression struct {
		expr
		Type       *ClassNode
		Expression Expression
		Coerce     bool
	}

	ClassExpression struct {
		expr
		Type *ClassNode
	}

	TernaryExpression struct {
		expr
		Condition *BooleanExpression
		True      Expression
		False     Expression
	}

	ElvisOperatorExpression struct {
		expr
		Base  Expression
		False Expression
	}

	BooleanExpression struct {
		expr
		Expression Expression
	}

	NotExpression struct {
		expr
		Expression Expression
	}

	BitwiseNegationExpression struct {
		expr
		Expression Expression
	}

	UnaryMinusExpression struct {
		expr
		Expression Expression
	}

	UnaryPlusExpression struct {
		expr
		Expression Expression
	}

	PrefixExpression struct {
		expr
		Operation  Token
		Expression Expression
	}

	PostfixExpression struct {
		expr
		Expression Expression
		Operation  Token
	}

	// ClosureExpression is a closure literal. ExplicitParameters is set when
	// the source has a parameter separator, even with no parameters.
	ClosureExpression struct {
		expr
		Parameters         []*Parameter
		ExplicitParameters bool
		Code               Statement
	}

	ListExpression struct {
		expr
		Expressions []Expression
		Wrapped     bool
	}

	MapExpression struct {
		expr
		Entries []*MapEntryExpression
	}

	MapEntryExpression struct {
		expr
		Key   Expression
		Value Expression
	}

	SpreadExpression struct {
		expr
		Expression Expression
	}

	SpreadMapExpression struct {
		expr
		Expression Expression
	}

	TupleExpression struct {
		expr
		Expressions []Expression
	}

	ArgumentListExpression struct {
		TupleExpression
	}

	// NamedArgumentListExpression is the map of named call arguments.
	NamedArgumentListExpression struct {
		MapExpression
	}

	// ClosureListExpression holds the three clauses of a classic for loop.
	ClosureListExpression struct {
		expr
		Expressions []Expression
	}

	// EmptyExpression stands in for an omitted expression.
	EmptyExpression struct {
		expr
	}

	// GStringExpression is an interpolated string. Strings always has one
	// more element than Values.
	GStringExpression struct {
		expr
		Verbatim string
		Strings  []*ConstantExpression
		Values   []Expression
	}

	ArrayExpression struct {
		expr
		ElementType     *ClassNode
		Expressions     []Expression
		SizeExpressions []Expression
	}

	AnnotationConstantExpression struct {
		expr
		Annotation *AnnotationNode
	}
)

// NewConstant creates a constant.
func NewConstant(value any) *ConstantExpression {
	return &ConstantExpression{Value: value}
}

// NullConstant creates a null constant.
func NullConstant() *ConstantExpression {
	return NewConstant(nil)
}

// NewVariable creates an object-typed variable reference.
func NewVariable(name string) *VariableExpression {
	return &VariableExpression{Name: name, Type: ObjectType()}
}

// ThisExpression and SuperExpression return the implicit receivers.
func ThisExpression() *VariableExpression  { return NewVariable("this") }
func SuperExpression() *VariableExpression { return NewVariable("super") }

func (v *VariableExpression) IsThis() bool {
	return v.Name == "this"
}

func (v *VariableExpression) IsSuper() bool {
	return v.Name == "super"
}

// NewEmptyExpression returns a synthetic placeholder.
func NewEmptyExpression() *EmptyExpression {
	e := &EmptyExpression{}
	e.MarkNoLocation()
	return e
}

// NewBoolean wraps e as a condition and copies its span.
func NewBoolean(e Expression) *BooleanExpression {
	b := &BooleanExpression{Expression: e}
	b.SetSpan(e.Span())
	return b
}

// NewArgumentList creates an ordinary argument list.
func NewArgumentList(args ...Expression) *ArgumentListExpression {
	return &ArgumentListExpression{TupleExpression{Expressions: args}}
}

// MethodAsString returns the call's method name when it is a constant.
func (m *MethodCallExpression) MethodAsString() string {
	if c, ok := m.Method.(*ConstantExpression); ok {
		if s, ok := c.Value.(string); ok {
			return s
		}
	}
	return ""
}

// PropertyAsString returns the property name when it is a constant.
func (p *PropertyExpression) PropertyAsString() string {
	if c, ok := p.Property.(*ConstantExpression); ok {
		if s, ok := c.Value.(string); ok {
			return s
		}
	}
	return ""
}

func (c *ConstructorCallExpression) IsThisCall() bool {
	return c.Type != nil && c.Type.Name == "this"
}

func (c *ConstructorCallExpression) IsSuperCall() bool {
	return c.Type != nil && c.Type.Name == "super"
}

func (d *DeclarationExpression) AddAnnotation(a *AnnotationNode) {
	d.annotations = append(d.annotations, a)
}

func (d *DeclarationExpression) Annotations() []*AnnotationNode {
	return d.annotations
}

// IsMultipleAssignment reports whether d declares a tuple.
func (d *DeclarationExpression) IsMultipleAssignment() bool {
	_, ok := d.Left.(*ArgumentListExpression)
	return ok
}

// Variable returns the declared variable of a single declaration.
func (d *DeclarationExpression) Variable() *VariableExpression {
	v, _ := d.Left.(*VariableExpression)
	return v
}

// AddEntry appends a map entry.
func (m *MapExpression) AddEntry(e *MapEntryExpression) {
	m.Entries = append(m.Entries, e)
}

// Arguments returns the elements of any argument-list shape: an ordinary
// argument list, a tuple, or a named-argument tuple.
func Arguments(e Expression) ([]Expression, bool) {
	switch a := e.(type) {
	case *ArgumentListExpression:
		return a.Expressions, true
	case *TupleExpression:
		return a.Expressions, true
	}
	return nil, false
}

// IsEmptyArguments reports whether e is an argument list with no elements.
func IsEmptyArguments(e Expression) bool {
	args, ok := Arguments(e)
	return ok && len(args) == 0
}
