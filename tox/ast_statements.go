package tox

type ExprStmt struct {
	Expr Expression
	line int
}

func (s *ExprStmt) stmtNode() {}
func (s *ExprStmt) Line() int { return s.line }

type PrintStmt struct {
	Expr Expression
	line int
}

func (s *PrintStmt) stmtNode() {}
func (s *PrintStmt) Line() int { return s.line }

// VarStmt declares a variable. A declaration without an initializer parses
// with a nil literal as Initializer, so Initializer is never nil.
type VarStmt struct {
	Name        string
	Initializer Expression
	line        int
}

func (s *VarStmt) stmtNode() {}
func (s *VarStmt) Line() int { return s.line }

type BlockStmt struct {
	Statements []Statement
	line       int
}

func (s *BlockStmt) stmtNode() {}
func (s *BlockStmt) Line() int { return s.line }

type IfStmt struct {
	Condition Expression
	Then      Statement
	Else      Statement
	line      int
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Line() int { return s.line }

type WhileStmt struct {
	Condition Expression
	Body      Statement
	line      int
}

func (s *WhileStmt) stmtNode() {}
func (s *WhileStmt) Line() int { return s.line }

type FunctionStmt struct {
	Name   string
	Params []string
	Body   []Statement
	line   int
}

func (s *FunctionStmt) stmtNode() {}
func (s *FunctionStmt) Line() int { return s.line }

// ReturnStmt carries a nil Value for a bare `return;`, which yields nil at
// the call boundary.
type ReturnStmt struct {
	Value Expression
	line  int
}

func (s *ReturnStmt) stmtNode() {}
func (s *ReturnStmt) Line() int { return s.line }
