package tox

import "fmt"

type resolveError struct {
	line int
	msg  string
}

func (e *resolveError) Error() string {
	return fmt.Sprintf("resolve error at line %d: %s", e.line, e.msg)
}

func (e *resolveError) SourceLine() int { return e.line }

// resolver walks the statement tree with a stack of lexical scopes,
// innermost last. Each name passes through two states in its scope:
// declared but not yet initialized, then defined. The global frame is not
// modeled here; names that match no scope are left out of the binding
// table and looked up dynamically.
type resolver struct {
	scopes []map[string]bool
	locals map[Expression]int
}

// Resolve computes the binding distance for every variable reference and
// assignment in the program, keyed by node identity. A reference with no
// entry in the returned table is global. Resolution stops at the first
// error; a program that fails to resolve must not be evaluated.
func Resolve(program *Program) (map[Expression]int, error) {
	r := &resolver{locals: make(map[Expression]int)}
	if err := r.resolveStmts(program.Statements); err != nil {
		return nil, err
	}
	return r.locals, nil
}

func (r *resolver) resolveStmts(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveStmt(stmt Statement) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		return r.resolveExpr(s.Expr)
	case *PrintStmt:
		return r.resolveExpr(s.Expr)
	case *VarStmt:
		r.declare(s.Name)
		if err := r.resolveExpr(s.Initializer); err != nil {
			return err
		}
		r.define(s.Name)
		return nil
	case *BlockStmt:
		r.beginScope()
		err := r.resolveStmts(s.Statements)
		r.endScope()
		return err
	case *IfStmt:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStmt(s.Else)
		}
		return nil
	case *WhileStmt:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		return r.resolveStmt(s.Body)
	case *FunctionStmt:
		// The name is defined before the body resolves so the function
		// can call itself.
		r.declare(s.Name)
		r.define(s.Name)
		return r.resolveFunction(s.Params, s.Body)
	case *ReturnStmt:
		if s.Value != nil {
			return r.resolveExpr(s.Value)
		}
		return nil
	default:
		return fmt.Errorf("cannot resolve statement %T", stmt)
	}
}

func (r *resolver) resolveExpr(expr Expression) error {
	switch e := expr.(type) {
	case *LiteralExpr:
		return nil
	case *GroupingExpr:
		return r.resolveExpr(e.Expr)
	case *UnaryExpr:
		return r.resolveExpr(e.Right)
	case *BinaryExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *LogicalExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				return &resolveError{
					line: e.Line(),
					msg:  fmt.Sprintf("cannot read local variable %s in its own initializer", e.Name),
				}
			}
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *AssignExpr:
		if err := r.resolveExpr(e.Value); err != nil {
			return err
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *CallExpr:
		if err := r.resolveExpr(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil
	case *FunctionLiteral:
		return r.resolveFunction(e.Params, e.Body)
	default:
		return fmt.Errorf("cannot resolve expression %T", expr)
	}
}

func (r *resolver) resolveFunction(params []string, body []Statement) error {
	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	err := r.resolveStmts(body)
	r.endScope()
	return err
}

// resolveLocal records the hop count from the reference's scope to the
// nearest enclosing scope declaring the name. No match means the name is
// global and gets no entry.
func (r *resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}
