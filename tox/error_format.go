package tox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// sourceLiner is implemented by every pipeline error that points at a
// source line.
type sourceLiner interface {
	SourceLine() int
}

// FormatErrorWithSource renders err for human display, attaching a code
// frame to every line-tagged error it contains. Aggregated errors are
// flattened so each failure gets its own block.
func FormatErrorWithSource(err error, source string) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	for idx, sub := range flattenErrors(err) {
		if idx > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sub.Error())
		var liner sourceLiner
		if errors.As(sub, &liner) {
			if frame := formatCodeFrame(source, liner.SourceLine()); frame != "" {
				b.WriteString("\n")
				b.WriteString(frame)
			}
		}
	}
	return b.String()
}

// IsIncomplete reports whether every failure in err comes from source that
// ended in the middle of a construct, meaning more input could still yield
// a clean compile. Interactive front ends use it to keep a submission open
// instead of reporting it.
func IsIncomplete(err error) bool {
	if err == nil {
		return false
	}
	for _, sub := range flattenErrors(err) {
		open, ok := sub.(interface{ incompleteInput() bool })
		if !ok || !open.incompleteInput() {
			return false
		}
	}
	return true
}

func flattenErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, sub := range joined.Unwrap() {
			out = append(out, flattenErrors(sub)...)
		}
		return out
	}
	return []error{err}
}

func formatCodeFrame(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	lineLabel := strconv.Itoa(line)
	return fmt.Sprintf("  --> line %d\n %s | %s", line, lineLabel, lines[line-1])
}
