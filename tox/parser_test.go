package tox

import (
	"fmt"
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

func parseToAst(t *testing.T, source string) string {
	t.Helper()
	return AstString(parseSource(t, source))
}

func parseFailure(t *testing.T, source string) error {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	if _, err := Parse(tokens); err != nil {
		return err
	}
	t.Fatalf("parse %q should fail", source)
	return nil
}

func TestParseUnaryGroupingPrecedence(t *testing.T) {
	got := parseToAst(t, "-123 * (45.67);")
	if got != "(* (- 123) (group 45.67))" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParsePrecedenceLevels(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"3 - 4 * 2;", "(- 3 (* 4 2))"},
		{"1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"8 / 4 / 2;", "(/ (/ 8 4) 2)"},
		{"1 + 2 < 3 + 4;", "(< (+ 1 2) (+ 3 4))"},
		{"1 < 2 == true;", "(== (< 1 2) true)"},
		{"!true == false;", "(== (! true) false)"},
		{"1 == 2 and 3 == 4;", "(and (== 1 2) (== 3 4))"},
		{"1 and 2 or 3 and 4;", "(or (and 1 2) (and 3 4))"},
		{"1 or 2 or 3;", "(or (or 1 2) 3)"},
	}
	for _, c := range cases {
		if got := parseToAst(t, c.source); got != c.want {
			t.Fatalf("%q: got %q want %q", c.source, got, c.want)
		}
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	got := parseToAst(t, "a = b = 1;")
	if got != "(= a (= b 1))" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParseAssignmentBindsLooserThanOr(t *testing.T) {
	got := parseToAst(t, "a = 1 or 2;")
	if got != "(= a (or 1 2))" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	err := parseFailure(t, "1 = 2;")
	if !strings.Contains(err.Error(), "invalid assignment target") {
		t.Fatalf("unexpected error: %v", err)
	}
	err = parseFailure(t, "a + b = 1;")
	if !strings.Contains(err.Error(), "invalid assignment target") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCallChaining(t *testing.T) {
	got := parseToAst(t, "f(1)(2, 3);")
	if got != "(call (call f 1) 2 3)" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParseStatementShapes(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"print 1 + 2;", "(print (+ 1 2))"},
		{"var a;", "(var a nil)"},
		{"var a = 1;", "(var a 1)"},
		{"{ var a = 1; print a; }", "(block (var a 1) (print a))"},
		{"if (a) print 1;", "(if a (print 1))"},
		{"if (a) print 1; else print 2;", "(if a (print 1) (print 2))"},
		{"while (a < 3) a = a + 1;", "(while (< a 3) (= a (+ a 1)))"},
		{"func f(a, b) { return a; }", "(func f (a b) (return a))"},
		{"return;", "(return)"},
		{"var f = func (x) { return x; };", "(var f (func (x) (return x)))"},
	}
	for _, c := range cases {
		if got := parseToAst(t, c.source); got != c.want {
			t.Fatalf("%q: got %q want %q", c.source, got, c.want)
		}
	}
}

func TestAstStringJoinsStatements(t *testing.T) {
	got := parseToAst(t, "var a = 1;\nprint a;")
	if got != "(var a 1)\n(print a)" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	got := parseToAst(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	want := "(block (var i 0) (while (< i 3) (block (print i) (= i (+ i 1)))))"
	if got != want {
		t.Fatalf("ast: got %q want %q", got, want)
	}
}

func TestParseForWithEmptyClauses(t *testing.T) {
	got := parseToAst(t, "for (;;) print 1;")
	if got != "(while true (print 1))" {
		t.Fatalf("ast: got %q", got)
	}
}

func TestParseForWithExpressionInitializer(t *testing.T) {
	got := parseToAst(t, "for (i = 0; i < 2;) print i;")
	want := "(block (= i 0) (while (< i 2) (print i)))"
	if got != want {
		t.Fatalf("ast: got %q want %q", got, want)
	}
}

func TestParseAnonymousFunctionExpressionStatement(t *testing.T) {
	program := parseSource(t, "func (x) { return x; }(3);")
	stmt, ok := program.Statements[0].(*ExprStmt)
	if !ok {
		t.Fatalf("statement: got %T", program.Statements[0])
	}
	call, ok := stmt.Expr.(*CallExpr)
	if !ok {
		t.Fatalf("expression: got %T", stmt.Expr)
	}
	if _, ok := call.Callee.(*FunctionLiteral); !ok {
		t.Fatalf("callee: got %T", call.Callee)
	}
}

func TestParseRecoversAndReportsAllErrors(t *testing.T) {
	source := "var ;\nprint 1;\nvar ;"
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatalf("expected errors")
	}
	if got := strings.Count(err.Error(), "expected variable name"); got != 2 {
		t.Fatalf("expected both declarations reported, got %d in %v", got, err)
	}
	if !strings.Contains(err.Error(), "line 1") || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line tags for both errors: %v", err)
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	err := parseFailure(t, "print 1")
	if !strings.Contains(err.Error(), "expected ';' after value") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "end of input") {
		t.Fatalf("error should describe the offending token: %v", err)
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	err := parseFailure(t, "{ print 1;")
	if !strings.Contains(err.Error(), "expected '}' after block") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseArgumentCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("f(")
	for i := 0; i <= maxCallArgs; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("1")
	}
	b.WriteString(");")

	err := parseFailure(t, b.String())
	if !strings.Contains(err.Error(), "cannot have more than 255 arguments") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseParameterCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("func f(")
	for i := 0; i <= maxCallArgs; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "p%d", i)
	}
	b.WriteString(") { return 1; }")

	err := parseFailure(t, b.String())
	if !strings.Contains(err.Error(), "cannot have more than 255 parameters") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseReservedClassKeyword(t *testing.T) {
	err := parseFailure(t, "class Foo { }")
	if !strings.Contains(err.Error(), "unexpected 'class'") {
		t.Fatalf("unexpected error: %v", err)
	}
}
