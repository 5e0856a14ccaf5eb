package tox

import "errors"

func (i *Interpreter) evalExpr(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return i.evalExpr(e.Expr)
	case *UnaryExpr:
		return i.evalUnary(e)
	case *BinaryExpr:
		return i.evalBinary(e)
	case *LogicalExpr:
		return i.evalLogical(e)
	case *VariableExpr:
		return i.lookupVariable(e)
	case *AssignExpr:
		return i.evalAssign(e)
	case *CallExpr:
		return i.evalCall(e)
	case *FunctionLiteral:
		return i.makeFunction("anon_function", e.Params, e.Body), nil
	default:
		return NewNil(), i.errorAt(expr.Line(), "cannot evaluate expression %T", expr)
	}
}

// lookupVariable reads through the binding table: a recorded distance
// addresses the frame that many hops out, anything else is a dynamic
// lookup in the global frame.
func (i *Interpreter) lookupVariable(e *VariableExpr) (Value, error) {
	if distance, ok := i.locals[e]; ok {
		if val, ok := i.env.GetAt(e.Name, distance); ok {
			return val, nil
		}
		return NewNil(), i.errorAt(e.Line(), "undefined variable %s", e.Name)
	}
	if val, ok := i.globals.GetAt(e.Name, 0); ok {
		return val, nil
	}
	return NewNil(), i.errorAt(e.Line(), "undefined variable %s", e.Name)
}

// evalAssign writes through the binding table the same way lookupVariable
// reads. A local assignment requires an existing binding at the resolved
// frame; a global assignment always succeeds, creating the binding when
// absent. The expression yields the assigned value.
func (i *Interpreter) evalAssign(e *AssignExpr) (Value, error) {
	val, err := i.evalExpr(e.Value)
	if err != nil {
		return NewNil(), err
	}
	if distance, ok := i.locals[e]; ok {
		if !i.env.AssignAt(e.Name, val, distance) {
			return NewNil(), i.errorAt(e.Line(), "variable %s has not been declared", e.Name)
		}
		return val, nil
	}
	i.globals.Define(e.Name, val)
	return val, nil
}

// evalLogical yields the deciding operand itself, never a coerced boolean.
func (i *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return NewNil(), err
	}
	if e.Operator == tokenOr {
		if left.Truthy() {
			return left, nil
		}
	} else if !left.Truthy() {
		return left, nil
	}
	return i.evalExpr(e.Right)
}

func (i *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := i.evalExpr(e.Callee)
	if err != nil {
		return NewNil(), err
	}
	args := make([]Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := i.evalExpr(argExpr)
		if err != nil {
			return NewNil(), err
		}
		args = append(args, arg)
	}

	if callee.Kind() != KindCallable {
		return NewNil(), i.errorAt(e.Line(), "%s is not callable", callee.Kind())
	}
	fn := callee.Callable()
	if len(args) != fn.Arity {
		return NewNil(), i.errorAt(e.Line(), "callable %s expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
	}

	val, err := fn.Call(args)
	if err != nil {
		return NewNil(), i.asRuntimeError(err, e.Line())
	}
	return val, nil
}

// asRuntimeError tags err with the call site line unless deeper evaluation
// already attached a position.
func (i *Interpreter) asRuntimeError(err error, line int) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return &RuntimeError{Message: err.Error(), Line: line}
}
