package ast

// Statement is the closed set of statement nodes.
type Statement interface {
	Node
	Labels() []string
	AddLabel(label string)
	statementNode()
}

type stmt struct {
	Located
	labels []string
}

func (s *stmt) Labels() []string {
	return s.labels
}

func (s *stmt) AddLabel(label string) {
	s.labels = append(s.labels, label)
}

func (*stmt) statementNode() {}

type (
	// BlockStatement owns an ordered statement list.
	BlockStatement struct {
		stmt
		Statements []Statement
	}

	ExpressionStatement struct {
		stmt
		Expression Expression
	}

	// EmptyStatement stands in for a missing branch or body.
	EmptyStatement struct {
		stmt
	}

	IfStatement struct {
		stmt
		Condition *BooleanExpression
		Then      Statement
		Else      Statement
	}

	WhileStatement struct {
		stmt
		Condition *BooleanExpression
		Body      Statement
	}

	// ForStatement covers for-in, for-colon and classic loops. A classic
	// loop has the dummy variable and a ClosureListExpression collection.
	ForStatement struct {
		stmt
		Variable   *Parameter
		Collection Expression
		Body       Statement
	}

	SwitchStatement struct {
		stmt
		Expression Expression
		Cases      []*CaseStatement
		Default    Statement
	}

	CaseStatement struct {
		stmt
		Expression Expression
		Body       Statement
	}

	BreakStatement struct {
		stmt
		Label string
	}

	ContinueStatement struct {
		stmt
		Label string
	}

	ReturnStatement struct {
		stmt
		Expression Expression
	}

	AssertStatement struct {
		stmt
		Condition *BooleanExpression
		Message   Expression
	}

	SynchronizedStatement struct {
		stmt
		Expression Expression
		Body       Statement
	}

	ThrowStatement struct {
		stmt
		Expression Expression
	}

	TryCatchStatement struct {
		stmt
		Try     Statement
		Catches []*CatchStatement
		Finally Statement
	}

	CatchStatement struct {
		stmt
		Variable *Parameter
		Body     Statement
	}
)

// NewEmptyStatement returns a synthetic empty statement.
func NewEmptyStatement() *EmptyStatement {
	s := &EmptyStatement{}
	s.MarkNoLocation()
	return s
}

// Add appends s to the block.
func (b *BlockStatement) Add(s Statement) {
	b.Statements = append(b.Statements, s)
}

func (b *BlockStatement) IsEmpty() bool {
	return len(b.Statements) == 0
}

// IsClassic reports whether f is a three-clause loop.
func (f *ForStatement) IsClassic() bool {
	_, ok := f.Collection.(*ClosureListExpression)
	return ok && f.Variable != nil && f.Variable.IsForLoopDummy()
}
