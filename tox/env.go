package tox

import "fmt"

// InvariantError reports a broken assumption between the resolver and the
// evaluator, such as a binding distance larger than the actual frame depth.
// It is raised as a panic rather than returned: the condition is an
// implementation defect, never a user error, and must not be absorbed into
// normal error flow.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Message
}

// Environment is one frame of the lexical scope chain. Frames are aliased
// freely: every closure holds a reference to the frame that was current at
// its declaration, and writes through any reference are visible to all
// holders.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]Value)}
}

// Define binds name in this frame only, overwriting any existing binding.
func (e *Environment) Define(name string, val Value) {
	e.values[name] = val
}

// GetAt reads name from the frame exactly distance hops up the chain. The
// lookup does not continue past the target frame; a miss there reports the
// name unbound.
func (e *Environment) GetAt(name string, distance int) (Value, bool) {
	val, ok := e.ancestor(distance).values[name]
	return val, ok
}

// AssignAt overwrites name in the frame exactly distance hops up the
// chain. It reports false when the name has no binding at the target
// frame; unlike Define it never creates one.
func (e *Environment) AssignAt(name string, val Value, distance int) bool {
	frame := e.ancestor(distance)
	if _, ok := frame.values[name]; !ok {
		return false
	}
	frame.values[name] = val
	return true
}

// Snapshot copies this frame's bindings, ignoring enclosing frames.
func (e *Environment) Snapshot() map[string]Value {
	snapshot := make(map[string]Value, len(e.values))
	for name, val := range e.values {
		snapshot[name] = val
	}
	return snapshot
}

func (e *Environment) ancestor(distance int) *Environment {
	frame := e
	for i := 0; i < distance; i++ {
		if frame.enclosing == nil {
			panic(&InvariantError{
				Message: fmt.Sprintf("binding distance %d exceeds frame depth %d", distance, i),
			})
		}
		frame = frame.enclosing
	}
	return frame
}
