package tox

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatErrorWithSourceAttachesFrame(t *testing.T) {
	source := "var a = 1;\nprint @;"
	_, err := Scan(source)
	if err == nil {
		t.Fatalf("expected lex error")
	}

	got := FormatErrorWithSource(err, source)
	if !strings.Contains(got, "lex error at line 2") {
		t.Fatalf("missing message: %q", got)
	}
	if !strings.Contains(got, "--> line 2") {
		t.Fatalf("missing frame pointer: %q", got)
	}
	if !strings.Contains(got, "2 | print @;") {
		t.Fatalf("missing source line: %q", got)
	}
}

func TestFormatErrorWithSourceSplitsJoinedErrors(t *testing.T) {
	source := "@\n#"
	_, err := Scan(source)
	if err == nil {
		t.Fatalf("expected lex errors")
	}

	got := FormatErrorWithSource(err, source)
	if !strings.Contains(got, "1 | @") || !strings.Contains(got, "2 | #") {
		t.Fatalf("each error should carry its own frame: %q", got)
	}
}

func TestFormatErrorWithSourcePlainError(t *testing.T) {
	got := FormatErrorWithSource(errors.New("boom"), "print 1;")
	if got != "boom" {
		t.Fatalf("untagged errors render as their message: %q", got)
	}
}

func TestFormatErrorWithSourceOutOfRangeLine(t *testing.T) {
	err := &RuntimeError{Message: "late failure", Line: 99}
	got := FormatErrorWithSource(err, "print 1;")
	if got != err.Error() {
		t.Fatalf("out of range lines get no frame: %q", got)
	}
}

func TestFormatErrorWithSourceNil(t *testing.T) {
	if got := FormatErrorWithSource(nil, "print 1;"); got != "" {
		t.Fatalf("nil error renders empty: %q", got)
	}
}

func TestIsIncompleteClassifiesCompileErrors(t *testing.T) {
	compile := func(source string) error {
		tokens, err := Scan(source)
		if err != nil {
			return err
		}
		_, err = Parse(tokens)
		return err
	}

	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"missing semicolon at end", "print 1", true},
		{"open block", "if (true) {", true},
		{"open block with inner statement", "if (true) {\nprint 1;", true},
		{"open paren", "print (1", true},
		{"open string", "print \"abc", true},
		{"open function body", "func add(a, b) {\nreturn a + b;", true},
		{"bad character", "print @;", false},
		{"invalid assignment target", "1 = 2;", false},
		{"real error before open block", "var 1 = 2;\nif (x) {", false},
		{"reserved word", "class Foo;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compile(tt.source)
			if err == nil {
				t.Fatalf("expected a compile error")
			}
			if got := IsIncomplete(err); got != tt.want {
				t.Fatalf("IsIncomplete = %v, want %v (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestIsIncompleteNonCompileErrors(t *testing.T) {
	if IsIncomplete(nil) {
		t.Fatalf("nil error is not incomplete")
	}
	if IsIncomplete(errors.New("boom")) {
		t.Fatalf("untagged errors are not incomplete")
	}
	if IsIncomplete(&RuntimeError{Message: "undefined variable x", Line: 1}) {
		t.Fatalf("runtime errors are not incomplete")
	}
}

func TestRuntimeErrorText(t *testing.T) {
	err := &RuntimeError{Message: "undefined variable x", Line: 3}
	if err.Error() != "runtime error at line 3: undefined variable x" {
		t.Fatalf("unexpected text: %q", err.Error())
	}
	if err.SourceLine() != 3 {
		t.Fatalf("source line: got %d", err.SourceLine())
	}
}
