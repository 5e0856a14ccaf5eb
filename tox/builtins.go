package tox

import "time"

// defineBuiltins binds the native functions into a global frame. Builtins
// are ordinary callables; user code can shadow or reassign them.
func defineBuiltins(globals *Environment) {
	globals.Define("clock", NewCallable(&Callable{
		Name:  "clock",
		Arity: 0,
		Call: func(args []Value) (Value, error) {
			return NewNumber(float64(time.Now().UnixMilli()) / 1000.0), nil
		},
	}))
}
