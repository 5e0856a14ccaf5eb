package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) replModel {
	t.Helper()
	m, err := newReplModel(replConfig{Prompt: "tox> "})
	if err != nil {
		t.Fatalf("newReplModel: %v", err)
	}
	return m
}

func pressEnter(t *testing.T, m replModel, input string) replModel {
	t.Helper()
	m.textInput.SetValue(input)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateExitWordQuits(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("exit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
}

func TestUpdateBlankLineQuitsAtReadyPrompt(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
}

func TestUpdateBlankLineKeptInOpenSubmission(t *testing.T) {
	m := newTestModel(t)

	m = pressEnter(t, m, "if (true) {")
	m = pressEnter(t, m, "")
	if m.quitting {
		t.Fatalf("blank line inside a submission should not quit")
	}
	if len(m.pending) != 2 {
		t.Fatalf("pending length: got %d", len(m.pending))
	}

	m = pressEnter(t, m, "print 1; }")
	if len(m.history) != 1 || m.history[0].output != "1" {
		t.Fatalf("submission did not run: %+v", m.history)
	}
}

func TestUpdateHelpCommandTogglesPanel(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue(":help")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEnterRunsCompleteSubmission(t *testing.T) {
	m := newTestModel(t)
	m = pressEnter(t, m, "print 1 + 2;")

	if len(m.history) != 1 {
		t.Fatalf("history length: got %d", len(m.history))
	}
	entry := m.history[0]
	if entry.isErr {
		t.Fatalf("unexpected error: %s", entry.output)
	}
	if entry.output != "3" {
		t.Fatalf("unexpected output: %q", entry.output)
	}
	if len(m.cmdHistory) != 1 || m.cmdHistory[0] != "print 1 + 2;" {
		t.Fatalf("command history: %v", m.cmdHistory)
	}
	if m.textInput.Value() != "" {
		t.Fatalf("input not cleared after submission")
	}
}

func TestEnterAccumulatesOpenBlock(t *testing.T) {
	m := newTestModel(t)

	m = pressEnter(t, m, "if (true) {")
	if len(m.pending) != 1 {
		t.Fatalf("pending after open brace: got %d", len(m.pending))
	}
	if m.textInput.Prompt != "...> " {
		t.Fatalf("continuation prompt: got %q", m.textInput.Prompt)
	}

	// Ends in ';' but the block is still open, so the probe keeps it.
	m = pressEnter(t, m, "print 1;")
	if len(m.pending) != 2 {
		t.Fatalf("pending after inner statement: got %d", len(m.pending))
	}
	if len(m.history) != 0 {
		t.Fatalf("nothing should have run yet")
	}

	m = pressEnter(t, m, "}")
	if len(m.pending) != 0 {
		t.Fatalf("pending after close: got %d", len(m.pending))
	}
	if len(m.history) != 1 {
		t.Fatalf("history length: got %d", len(m.history))
	}
	entry := m.history[0]
	if entry.isErr {
		t.Fatalf("unexpected error: %s", entry.output)
	}
	if entry.output != "1" {
		t.Fatalf("unexpected output: %q", entry.output)
	}
	if m.textInput.Prompt != "tox> " {
		t.Fatalf("ready prompt not restored: got %q", m.textInput.Prompt)
	}
}

func TestEvaluatePersistsBindings(t *testing.T) {
	m := newTestModel(t)

	if output, isErr := m.evaluate("var a = 2;"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	output, isErr := m.evaluate("print a;")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "2" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestEvaluateReportsRuntimeError(t *testing.T) {
	m := newTestModel(t)

	output, isErr := m.evaluate("print missing;")
	if !isErr {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(output, "undefined variable missing") {
		t.Fatalf("missing message: %q", output)
	}
	if !strings.Contains(output, "--> line 1") {
		t.Fatalf("missing code frame: %q", output)
	}
}

func TestAstToggleAddsTree(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleCommand(":ast")
	if !m.showAst {
		t.Fatalf("ast toggle should be enabled")
	}

	m = pressEnter(t, m, "print 1;")
	entry := m.history[len(m.history)-1]
	if entry.isErr {
		t.Fatalf("unexpected error: %s", entry.output)
	}
	if !strings.HasPrefix(entry.output, "(print 1)") {
		t.Fatalf("tree should lead the output: %q", entry.output)
	}
	if !strings.HasSuffix(entry.output, "\n1") {
		t.Fatalf("printed line should follow the tree: %q", entry.output)
	}
}

func TestResetCommandDropsBindings(t *testing.T) {
	m := newTestModel(t)

	if output, isErr := m.evaluate("var a = 1;"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	m, _ = m.handleCommand(":reset")

	if _, ok := m.engine.Globals()["a"]; ok {
		t.Fatalf("reset should drop user bindings")
	}
	if _, isErr := m.evaluate("print clock() >= 0;"); isErr {
		t.Fatalf("builtins should survive reset")
	}
}

func TestUnknownCommandReported(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleCommand(":bogus")
	entry := m.history[len(m.history)-1]
	if !entry.isErr {
		t.Fatalf("unknown command should be an error entry")
	}
	if !strings.Contains(entry.output, "unknown command: :bogus") {
		t.Fatalf("unexpected output: %q", entry.output)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("pri")

	m = m.handleAutocomplete()
	if m.textInput.Value() != "print" {
		t.Fatalf("unexpected completion: %q", m.textInput.Value())
	}
}

func TestAutocompleteListsMultipleMatches(t *testing.T) {
	m := newTestModel(t)
	m.textInput.SetValue("f")

	m = m.handleAutocomplete()
	entry := m.history[len(m.history)-1]
	if entry.output != "completions: false, for, func" {
		t.Fatalf("unexpected completions: %q", entry.output)
	}
}

func TestAutocompleteIncludesGlobals(t *testing.T) {
	m := newTestModel(t)
	if output, isErr := m.evaluate("var counter = 0;"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	m.textInput.SetValue("cou")
	m = m.handleAutocomplete()
	if m.textInput.Value() != "counter" {
		t.Fatalf("unexpected completion: %q", m.textInput.Value())
	}
}
