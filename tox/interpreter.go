package tox

import (
	"fmt"
	"io"
	"maps"
	"os"
)

// RuntimeError aborts the evaluation that raised it. In a session the
// failure is scoped to the current submission; the session itself
// continues with its globals intact.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
}

func (e *RuntimeError) SourceLine() int { return e.Line }

// Interpreter evaluates programs against a persistent global frame. One
// interpreter serves one session: an interactive loop keeps a single
// instance alive across submissions so globals and closures survive, while
// one-shot execution uses a fresh instance.
//
// Evaluation is single threaded. An Interpreter must not be shared across
// goroutines.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expression]int
	out     io.Writer
}

// NewInterpreter constructs an interpreter writing print output to out,
// with the built-in functions bound in the global frame. A nil out falls
// back to standard output.
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	interp := &Interpreter{
		globals: NewEnvironment(nil),
		locals:  make(map[Expression]int),
		out:     out,
	}
	interp.env = interp.globals
	defineBuiltins(interp.globals)
	return interp
}

// Run scans, parses, resolves and evaluates source as one submission.
func (i *Interpreter) Run(source string) error {
	tokens, err := Scan(source)
	if err != nil {
		return err
	}
	program, err := Parse(tokens)
	if err != nil {
		return err
	}
	return i.RunProgram(program)
}

// RunProgram resolves and evaluates an already parsed program.
func (i *Interpreter) RunProgram(program *Program) error {
	locals, err := Resolve(program)
	if err != nil {
		return err
	}
	return i.runResolved(program, locals)
}

// runResolved merges the binding table into the session's table and
// evaluates the program. Merging, not replacing, matters: closures created
// by earlier submissions still reference their own nodes, and those
// bindings must keep working for the rest of the session.
func (i *Interpreter) runResolved(program *Program, locals map[Expression]int) error {
	maps.Copy(i.locals, locals)
	for _, stmt := range program.Statements {
		_, returned, err := i.execStmt(stmt)
		if err != nil {
			return err
		}
		if returned {
			break
		}
	}
	return nil
}

// Globals returns a copy of the global frame's current bindings.
func (i *Interpreter) Globals() map[string]Value {
	return i.globals.Snapshot()
}

// execStmt evaluates one statement. The bool reports that a return
// statement executed; every construct that runs inner statements checks it
// after each one and stops, so the signal short-circuits out of nested
// blocks and loops up to the nearest call boundary.
func (i *Interpreter) execStmt(stmt Statement) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := i.evalExpr(s.Expr)
		return NewNil(), false, err
	case *PrintStmt:
		val, err := i.evalExpr(s.Expr)
		if err != nil {
			return NewNil(), false, err
		}
		if _, err := fmt.Fprintln(i.out, val.String()); err != nil {
			return NewNil(), false, err
		}
		return NewNil(), false, nil
	case *VarStmt:
		val, err := i.evalExpr(s.Initializer)
		if err != nil {
			return NewNil(), false, err
		}
		i.env.Define(s.Name, val)
		return NewNil(), false, nil
	case *BlockStmt:
		return i.execBlock(s.Statements)
	case *IfStmt:
		cond, err := i.evalExpr(s.Condition)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return i.execStmt(s.Then)
		}
		if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return NewNil(), false, nil
	case *WhileStmt:
		for {
			cond, err := i.evalExpr(s.Condition)
			if err != nil {
				return NewNil(), false, err
			}
			if !cond.Truthy() {
				return NewNil(), false, nil
			}
			val, returned, err := i.execStmt(s.Body)
			if err != nil || returned {
				return val, returned, err
			}
		}
	case *FunctionStmt:
		i.env.Define(s.Name, i.makeFunction(s.Name, s.Params, s.Body))
		return NewNil(), false, nil
	case *ReturnStmt:
		if s.Value == nil {
			return NewNil(), true, nil
		}
		val, err := i.evalExpr(s.Value)
		if err != nil {
			return NewNil(), false, err
		}
		return val, true, nil
	default:
		return NewNil(), false, i.errorAt(stmt.Line(), "cannot execute statement %T", stmt)
	}
}

// execBlock runs statements in a fresh frame enclosing the current one.
// The prior frame is restored on every exit path, errors included.
func (i *Interpreter) execBlock(stmts []Statement) (Value, bool, error) {
	prev := i.env
	i.env = NewEnvironment(prev)
	defer func() { i.env = prev }()

	for _, stmt := range stmts {
		val, returned, err := i.execStmt(stmt)
		if err != nil || returned {
			return val, returned, err
		}
	}
	return NewNil(), false, nil
}

// makeFunction builds a callable closing over the frame current at
// declaration time. Invocation binds parameters in a fresh frame enclosing
// that captured frame, so later mutation of captured variables stays
// visible through the closure.
func (i *Interpreter) makeFunction(name string, params []string, body []Statement) Value {
	closure := i.env
	return NewCallable(&Callable{
		Name:  name,
		Arity: len(params),
		Call: func(args []Value) (Value, error) {
			frame := NewEnvironment(closure)
			for idx, param := range params {
				frame.Define(param, args[idx])
			}

			prev := i.env
			i.env = frame
			defer func() { i.env = prev }()

			for _, stmt := range body {
				val, returned, err := i.execStmt(stmt)
				if err != nil {
					return NewNil(), err
				}
				if returned {
					return val, nil
				}
			}
			return NewNil(), nil
		},
	})
}

func (i *Interpreter) errorAt(line int, format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}
