package tox

// Node is implemented by every AST node. Nodes are built once by the parser
// and never mutated afterward; a parsed Program may be shared between
// interpreters, which is why resolution state lives outside the tree.
type Node interface {
	Line() int
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is an ordered statement sequence, the unit the parser emits and
// the interpreter executes.
type Program struct {
	Statements []Statement
}

func (p *Program) Line() int {
	if len(p.Statements) == 0 {
		return 0
	}
	return p.Statements[0].Line()
}

type LiteralExpr struct {
	Value Value
	line  int
}

func (e *LiteralExpr) exprNode() {}
func (e *LiteralExpr) Line() int { return e.line }

type GroupingExpr struct {
	Expr Expression
	line int
}

func (e *GroupingExpr) exprNode() {}
func (e *GroupingExpr) Line() int { return e.line }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	line     int
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) Line() int { return e.line }

type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	line     int
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) Line() int { return e.line }

// LogicalExpr is kept apart from BinaryExpr because or/and short-circuit
// and yield an operand rather than a computed value.
type LogicalExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	line     int
}

func (e *LogicalExpr) exprNode() {}
func (e *LogicalExpr) Line() int { return e.line }

type VariableExpr struct {
	Name string
	line int
}

func (e *VariableExpr) exprNode() {}
func (e *VariableExpr) Line() int { return e.line }

type AssignExpr struct {
	Name  string
	Value Expression
	line  int
}

func (e *AssignExpr) exprNode() {}
func (e *AssignExpr) Line() int { return e.line }

type CallExpr struct {
	Callee Expression
	Args   []Expression
	line   int
}

func (e *CallExpr) exprNode() {}
func (e *CallExpr) Line() int { return e.line }

// FunctionLiteral is an anonymous function expression: func (a, b) { ... }
type FunctionLiteral struct {
	Params []string
	Body   []Statement
	line   int
}

func (e *FunctionLiteral) exprNode() {}
func (e *FunctionLiteral) Line() int { return e.line }
