package parser

import (
	"strings"

	"github.com/antlr4-go/antlr/v4"
)

// Context is a node of the concrete syntax tree. Every context covers a
// contiguous run of significant tokens.
type Context interface {
	GetStart() antlr.Token
	GetStop() antlr.Token
	GetText() string
	setTokens(tokens []antlr.Token)
}

// BaseContext holds the token run of a context.
type BaseContext struct {
	tokens []antlr.Token
}

func (c *BaseContext) GetStart() antlr.Token {
	if len(c.tokens) == 0 {
		return nil
	}
	return c.tokens[0]
}

func (c *BaseContext) GetStop() antlr.Token {
	if len(c.tokens) == 0 {
		return nil
	}
	return c.tokens[len(c.tokens)-1]
}

// GetText concatenates the token texts without separators, like antlr.
func (c *BaseContext) GetText() string {
	var sb strings.Builder
	for _, t := range c.tokens {
		sb.WriteString(t.GetText())
	}
	return sb.String()
}

func (c *BaseContext) setTokens(tokens []antlr.Token) {
	c.tokens = tokens
}

// StatementContext is implemented by every statement-level context.
type StatementContext interface {
	Context
	statementContext()
}

// ExpressionContext is implemented by every expression context.
type ExpressionContext interface {
	Context
	expressionContext()
}

// AnnotationParameterContext is implemented by annotation argument shapes.
type AnnotationParameterContext interface {
	Context
	annotationParameterContext()
}

type statementBase struct{ BaseContext }

func (*statementBase) statementContext() {}

type expressionBase struct{ BaseContext }

func (*expressionBase) expressionContext() {}

type annotationParameterBase struct{ BaseContext }

func (*annotationParameterBase) annotationParameterContext() {}

// TerminalContext wraps a single token.
type TerminalContext struct {
	BaseContext
	Symbol antlr.Token
}

func newTerminal(t antlr.Token) *TerminalContext {
	c := &TerminalContext{Symbol: t}
	c.setTokens([]antlr.Token{t})
	return c
}

// Top level.

type CompilationUnitContext struct {
	BaseContext
	// Children holds package, import, class, method and statement
	// contexts in source order.
	Children []Context
}

type PackageDefinitionContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Names       []antlr.Token
}

type ImportStatementContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Static      antlr.Token
	Names       []antlr.Token
	Star        antlr.Token
	Alias       antlr.Token
}

// Declarations.

type ClassDeclarationContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Modifiers   []antlr.Token
	At          antlr.Token
	Kind        antlr.Token
	Name        antlr.Token
	Generics    *GenericDeclarationListContext
	Extends     []*GenericClassNameContext
	Implements  []*GenericClassNameContext
	Body        *ClassBodyContext
}

func (c *ClassDeclarationContext) IsInterface() bool {
	return c.Kind.GetTokenType() == KW_INTERFACE
}

func (c *ClassDeclarationContext) IsAnnotationDefinition() bool {
	return c.At != nil
}

func (c *ClassDeclarationContext) IsEnum() bool {
	return c.Kind.GetTokenType() == KW_ENUM
}

func (c *ClassDeclarationContext) IsTrait() bool {
	return c.Kind.GetTokenType() == KW_TRAIT
}

type ClassBodyContext struct {
	BaseContext
	EnumConstants []*EnumConstantContext
	// Members are method, field, constructor, initializer or nested class
	// declaration contexts.
	Members []Context
}

type EnumConstantContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Name        antlr.Token
	Arguments   *ArgumentListContext
}

type MethodDeclarationContext struct {
	BaseContext
	Annotations  []*AnnotationClauseContext
	Modifiers    []antlr.Token
	Def          antlr.Token
	Generics     *GenericDeclarationListContext
	ReturnType   *GenericClassNameContext
	Name         antlr.Token
	Parameters   *ArgumentDeclarationListContext
	Throws       []*ClassNameContext
	Body         *BlockStatementContext
	Default      antlr.Token
	DefaultValue AnnotationParameterContext
}

type FieldDeclarationContext struct {
	BaseContext
	Annotations  []*AnnotationClauseContext
	Modifiers    []antlr.Token
	Def          antlr.Token
	Type         *GenericClassNameContext
	Declarations []*VariableDeclaratorContext
}

type VariableDeclaratorContext struct {
	BaseContext
	Name   antlr.Token
	Assign antlr.Token
	Init   ExpressionContext
}

type ConstructorDeclarationContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Modifiers   []antlr.Token
	Name        antlr.Token
	Parameters  *ArgumentDeclarationListContext
	Throws      []*ClassNameContext
	Body        *BlockStatementContext
}

type ObjectInitializerContext struct {
	BaseContext
	Body *BlockStatementContext
}

type ClassInitializerContext struct {
	BaseContext
	Body *BlockStatementContext
}

// Types.

type ClassNameContext struct {
	BaseContext
	BuiltIn antlr.Token
	Names   []antlr.Token
}

// Name returns the dotted type name.
func (c *ClassNameContext) Name() string {
	if c.BuiltIn != nil {
		return c.BuiltIn.GetText()
	}
	parts := make([]string, len(c.Names))
	for i, t := range c.Names {
		parts[i] = t.GetText()
	}
	return strings.Join(parts, ".")
}

type GenericClassNameContext struct {
	BaseContext
	Class    *ClassNameContext
	Generics *GenericListContext
	// Dimensions counts [] pairs.
	Dimensions int
	Ellipsis   antlr.Token
}

type GenericListContext struct {
	BaseContext
	Elements []*GenericListElementContext
}

// GenericListElementContext is either a concrete Type or a wildcard with
// an optional bound.
type GenericListElementContext struct {
	BaseContext
	Type     *GenericClassNameContext
	Wildcard antlr.Token
	Extends  antlr.Token
	Super    antlr.Token
	Bound    *GenericClassNameContext
}

type GenericDeclarationListContext struct {
	BaseContext
	Elements []*GenericDeclarationContext
}

// GenericDeclarationContext declares a type parameter. Types[0] is the
// parameter, the rest are its upper bounds.
type GenericDeclarationContext struct {
	BaseContext
	Types   []*GenericClassNameContext
	Extends antlr.Token
}

type ArgumentDeclarationListContext struct {
	BaseContext
	Parameters []*ArgumentDeclarationContext
}

type ArgumentDeclarationContext struct {
	BaseContext
	Annotations []*AnnotationClauseContext
	Final       antlr.Token
	Def         antlr.Token
	Type        *GenericClassNameContext
	Name        antlr.Token
	Default     ExpressionContext
}

// Annotations.

type AnnotationClauseContext struct {
	BaseContext
	Type    *GenericClassNameContext
	Element *AnnotationElementContext
	Pairs   []*AnnotationElementPairContext
}

type AnnotationElementPairContext struct {
	BaseContext
	Name    antlr.Token
	Element *AnnotationElementContext
}

type AnnotationElementContext struct {
	BaseContext
	Clause    *AnnotationClauseContext
	Parameter AnnotationParameterContext
}

type (
	AnnotationParamArrayContext struct {
		annotationParameterBase
		Elements []AnnotationParameterContext
	}
	AnnotationParamBoolContext struct {
		annotationParameterBase
		Symbol antlr.Token
	}
	AnnotationParamClassContext struct {
		annotationParameterBase
		Type *GenericClassNameContext
	}
	AnnotationParamDecimalContext struct {
		annotationParameterBase
		Symbol antlr.Token
	}
	AnnotationParamIntegerContext struct {
		annotationParameterBase
		Symbol antlr.Token
	}
	AnnotationParamNullContext struct {
		annotationParameterBase
		Symbol antlr.Token
	}
	AnnotationParamPathContext struct {
		annotationParameterBase
		Names []antlr.Token
	}
	AnnotationParamStringContext struct {
		annotationParameterBase
		Symbol antlr.Token
	}
	AnnotationParamClosureContext struct {
		annotationParameterBase
		Closure *ClosureExpressionRuleContext
	}
	// AnnotationParamExpressionContext is any other expression. Annotations
	// do not accept it; it is kept so the builder can say so.
	AnnotationParamExpressionContext struct {
		annotationParameterBase
		Expression ExpressionContext
	}
)

// Statements.

type (
	BlockStatementContext struct {
		statementBase
		Statements []StatementContext
	}

	ExpressionStatementContext struct {
		statementBase
		Expression ExpressionContext
	}

	// CommandExpressionStatementContext is a call chain written without
	// parentheses. Children alternate method-name terminals and argument
	// lists; an odd trailing terminal is a property.
	CommandExpressionStatementContext struct {
		statementBase
		Expression ExpressionContext
		Op         antlr.Token
		Children   []Context
	}

	DeclarationStatementContext struct {
		statementBase
		Declaration *DeclarationRuleContext
	}

	IfStatementContext struct {
		statementBase
		Condition ExpressionContext
		Then      StatementContext
		Else      StatementContext
	}

	WhileStatementContext struct {
		statementBase
		Condition ExpressionContext
		Body      StatementContext
	}

	// ClassicForStatementContext keeps the header as written: terminals for
	// the parentheses and semicolons with the optional clauses in between.
	ClassicForStatementContext struct {
		statementBase
		Header []Context
		Body   StatementContext
	}

	ForInStatementContext struct {
		statementBase
		Def        antlr.Token
		Type       *GenericClassNameContext
		Name       antlr.Token
		Collection ExpressionContext
		Body       StatementContext
	}

	ForColonStatementContext struct {
		statementBase
		Type       *GenericClassNameContext
		Name       antlr.Token
		Collection ExpressionContext
		Body       StatementContext
	}

	SwitchStatementContext struct {
		statementBase
		Expression ExpressionContext
		Cases      []*CaseStatementContext
		Default    *DefaultStatementContext
	}

	CaseStatementContext struct {
		statementBase
		Case       antlr.Token
		Expression ExpressionContext
		Statements []StatementContext
	}

	DefaultStatementContext struct {
		statementBase
		Default    antlr.Token
		Statements []StatementContext
	}

	ControlStatementContext struct {
		statementBase
		Keyword antlr.Token
		Label   antlr.Token
	}

	ReturnStatementContext struct {
		statementBase
		Expression ExpressionContext
	}

	AssertStatementContext struct {
		statementBase
		Condition ExpressionContext
		Message   ExpressionContext
	}

	LabeledStatementContext struct {
		statementBase
		Label     antlr.Token
		Statement StatementContext
	}

	SynchronizedStatementContext struct {
		statementBase
		Expression ExpressionContext
		Body       *BlockStatementContext
	}

	ThrowStatementContext struct {
		statementBase
		Expression ExpressionContext
	}

	TryCatchFinallyStatementContext struct {
		statementBase
		Try     *BlockStatementContext
		Catches []*CatchBlockContext
		Finally *FinallyBlockContext
	}

	CatchBlockContext struct {
		statementBase
		Types []*ClassNameContext
		Name  antlr.Token
		Body  *BlockStatementContext
	}

	FinallyBlockContext struct {
		statementBase
		Body *BlockStatementContext
	}
)

// Declarations inside statements.

type DeclarationRuleContext struct {
	BaseContext
	Annotations  []*AnnotationClauseContext
	Final        antlr.Token
	Def          antlr.Token
	Type         *GenericClassNameContext
	Declarations []*VariableDeclaratorContext
	Tuple        *TupleDeclarationContext
}

type TupleDeclarationContext struct {
	BaseContext
	Variables []*TupleVariableContext
	Assign    antlr.Token
	Init      ExpressionContext
}

type TupleVariableContext struct {
	BaseContext
	Type *GenericClassNameContext
	Name antlr.Token
}

// Expressions.

type (
	ParenthesisExpressionContext struct {
		expressionBase
		Expression ExpressionContext
	}

	ConstantIntegerContext struct {
		expressionBase
		Symbol antlr.Token
	}

	ConstantDecimalContext struct {
		expressionBase
		Symbol antlr.Token
	}

	ConstantStringContext struct {
		expressionBase
		Symbol antlr.Token
	}

	BoolExpressionContext struct {
		expressionBase
		Symbol antlr.Token
	}

	NullExpressionContext struct {
		expressionBase
		Symbol antlr.Token
	}

	ThisExpressionContext struct {
		expressionBase
		Symbol antlr.Token
	}

	SuperExpressionContext struct {
		expressionBase
		Symbol antlr.Token
	}

	VariableExpressionContext struct {
		expressionBase
		Symbol antlr.Token
	}

	// GStringContext is an interpolated string: a start fragment, one
	// part per further value and an end fragment.
	GStringContext struct {
		expressionBase
		Begin  antlr.Token
		Parts  []antlr.Token
		End    antlr.Token
		Values []*GStringValueContext
	}

	// GStringValueContext is one embedded value. All fields are nil for ${}.
	GStringValueContext struct {
		BaseContext
		Path       *GStringPathContext
		Closure    *ClosureExpressionRuleContext
		Expression ExpressionContext
	}

	GStringPathContext struct {
		BaseContext
		Name  antlr.Token
		Parts []antlr.Token
	}

	ListConstructorContext struct {
		expressionBase
		Elements []ExpressionContext
	}

	MapConstructorContext struct {
		expressionBase
		Entries []*MapEntryContext
	}

	// MapEntryContext is key: value. The key is exactly one of Spread (*),
	// Key (a name, string or number token), KeyGString or KeyExpression.
	MapEntryContext struct {
		BaseContext
		Spread        antlr.Token
		Key           antlr.Token
		KeyGString    *GStringContext
		KeyExpression ExpressionContext
		Value         ExpressionContext
	}

	ClosureExpressionRuleContext struct {
		expressionBase
		Parameters *ArgumentDeclarationListContext
		Arrow      antlr.Token
		Body       *BlockStatementContext
	}

	NewArrayExpressionContext struct {
		expressionBase
		New   antlr.Token
		Type  *ClassNameContext
		Sizes []ExpressionContext
	}

	NewInstanceExpressionContext struct {
		expressionBase
		New       antlr.Token
		Type      *GenericClassNameContext
		Diamond   antlr.Token
		Arguments *ArgumentListContext
		Body      *ClassBodyContext
	}

	FieldAccessExpressionContext struct {
		expressionBase
		Expression ExpressionContext
		Op         antlr.Token
		Selector   antlr.Token
		String     antlr.Token
		GString    *GStringContext
	}

	// CallExpressionContext is a method call. Expression is nil for calls
	// on the implicit receiver.
	CallExpressionContext struct {
		expressionBase
		Expression ExpressionContext
		Op         antlr.Token
		Call       *CallExpressionRuleContext
	}

	// CallExpressionRuleContext names the callee with exactly one of
	// Closure (a closure literal called directly), Selector, String or
	// GString.
	CallExpressionRuleContext struct {
		BaseContext
		Closure   *ClosureExpressionRuleContext
		Selector  antlr.Token
		String    antlr.Token
		GString   *GStringContext
		Arguments *ArgumentListContext
		Closures  []*ClosureExpressionRuleContext
	}

	ConstructorCallExpressionContext struct {
		expressionBase
		Keyword   antlr.Token
		Arguments *ArgumentListContext
	}

	IndexExpressionContext struct {
		expressionBase
		Expression ExpressionContext
		LBrack     antlr.Token
		Indices    []ExpressionContext
	}

	PrefixExpressionContext struct {
		expressionBase
		Op         antlr.Token
		Expression ExpressionContext
	}

	PostfixExpressionContext struct {
		expressionBase
		Expression ExpressionContext
		Op         antlr.Token
	}

	UnaryExpressionContext struct {
		expressionBase
		Op         antlr.Token
		Expression ExpressionContext
	}

	SpreadExpressionContext struct {
		expressionBase
		Expression ExpressionContext
	}

	CastExpressionContext struct {
		expressionBase
		Type       *GenericClassNameContext
		Expression ExpressionContext
	}

	// BinaryExpressionContext keeps its children as parsed: the left
	// operand, the operator terminal (a shift written as consecutive >
	// terminals), then the right operand, which is a type for as and
	// instanceof.
	BinaryExpressionContext struct {
		expressionBase
		Children []Context
	}

	TernaryExpressionContext struct {
		expressionBase
		Condition ExpressionContext
		True      ExpressionContext
		False     ExpressionContext
	}

	ElvisExpressionContext struct {
		expressionBase
		Base  ExpressionContext
		False ExpressionContext
	}

	// AssignmentExpressionContext is either Left op Right or, when LParen
	// is set, the tuple assignment (Names...) = Right.
	AssignmentExpressionContext struct {
		expressionBase
		LParen antlr.Token
		Names  []antlr.Token
		Left   ExpressionContext
		Op     antlr.Token
		Right  ExpressionContext
	}
)

// Left returns the left operand of a binary expression.
func (c *BinaryExpressionContext) Left() ExpressionContext {
	e, _ := c.Children[0].(ExpressionContext)
	return e
}

// Right returns the last child: the right operand or, for as and
// instanceof, the target type.
func (c *BinaryExpressionContext) Right() Context {
	return c.Children[len(c.Children)-1]
}

type ArgumentListContext struct {
	BaseContext
	Arguments []*ArgumentContext
}

// ArgumentContext is a map entry (named argument) or an expression.
type ArgumentContext struct {
	BaseContext
	MapEntry   *MapEntryContext
	Expression ExpressionContext
}
