package tox

import (
	"io"

	"github.com/dgraph-io/ristretto"
)

// Config controls engine construction.
type Config struct {
	// Out receives print output. Defaults to standard output.
	Out io.Writer
	// CompileCacheSize caps the number of compiled programs kept for
	// reuse across submissions. Defaults to 256.
	CompileCacheSize int
}

// Engine runs source against a persistent interpreter session and caches
// compilation by source text, so an interactive loop re-running a
// submission skips the scan, parse and resolve work. Like the interpreter
// it wraps, an Engine is single threaded.
type Engine struct {
	interp *Interpreter
	cache  *ristretto.Cache
}

// compiledProgram pairs a parsed program with its binding table. The two
// travel together: distances are keyed by node identity, so a table is
// only valid for the exact tree it was computed from.
type compiledProgram struct {
	program *Program
	locals  map[Expression]int
}

// NewEngine constructs an Engine with defaults applied and the built-ins
// bound.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.CompileCacheSize <= 0 {
		cfg.CompileCacheSize = 256
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CompileCacheSize * 10),
		MaxCost:     int64(cfg.CompileCacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Engine{
		interp: NewInterpreter(cfg.Out),
		cache:  cache,
	}, nil
}

// Compile scans, parses and resolves source without evaluating it.
func (e *Engine) Compile(source string) (*Program, error) {
	compiled, err := e.compile(source)
	if err != nil {
		return nil, err
	}
	return compiled.program, nil
}

func (e *Engine) compile(source string) (*compiledProgram, error) {
	if cached, found := e.cache.Get(source); found {
		if compiled, ok := cached.(*compiledProgram); ok {
			return compiled, nil
		}
	}

	tokens, err := Scan(source)
	if err != nil {
		return nil, err
	}
	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	locals, err := Resolve(program)
	if err != nil {
		return nil, err
	}

	compiled := &compiledProgram{program: program, locals: locals}
	e.cache.Set(source, compiled, 1)
	return compiled, nil
}

// Run compiles and evaluates source as one submission. A failed
// submission leaves the session's globals intact.
func (e *Engine) Run(source string) error {
	compiled, err := e.compile(source)
	if err != nil {
		return err
	}
	return e.interp.runResolved(compiled.program, compiled.locals)
}

// Globals returns a copy of the session's global bindings.
func (e *Engine) Globals() map[string]Value {
	return e.interp.Globals()
}

// Reset discards all session state. Compiled programs stay cached; they
// carry no evaluation state.
func (e *Engine) Reset() {
	e.interp = NewInterpreter(e.interp.out)
}
