// Package tox implements the tox language: a small dynamically typed,
// C-styled scripting language with first-class functions and lexical
// closures. The pipeline has four stages:
//   - Scan turns source text into tokens, collecting every lexical error
//     in the file before reporting.
//   - Parse builds an AST by recursive descent with panic-mode recovery,
//     so one malformed statement never hides the rest.
//   - A resolver computes the enclosing-scope distance for every variable
//     reference ahead of execution, keyed by node identity.
//   - The interpreter walks the tree against chained environment frames;
//     closures capture their defining frame by reference.
//
// Interpreter executes source directly; Engine adds a cache of compiled
// programs for hosts that run the same snippets repeatedly. Comments start
// with `//` and run to end of line. The only side effect of a program is
// the output of its print statements, written to the configured writer.
package tox
