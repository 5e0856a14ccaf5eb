package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/toxlang/tox/tox"
)

// submissionComplete reports whether accumulated input ends at a statement
// boundary. Statements end in ';' and blocks in '}', so nothing is handed
// to the engine until the last non-blank character is one of those.
func submissionComplete(source string) bool {
	trimmed := strings.TrimSpace(source)
	return strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}")
}

// submissionReady layers a compile probe on top of submissionComplete: a
// buffer ending in ';' can still sit inside an open block or string, and
// in that case the submission keeps growing instead of failing.
func submissionReady(engine *tox.Engine, source string) bool {
	if !submissionComplete(source) {
		return false
	}
	_, err := engine.Compile(source)
	return err == nil || !tox.IsIncomplete(err)
}

// contPrompt mirrors the width of the ready prompt so continuation lines
// stay aligned underneath it.
func contPrompt(prompt string) string {
	if len(prompt) < 3 {
		return "> "
	}
	return strings.Repeat(".", len(prompt)-2) + "> "
}

type plainSession struct {
	engine  *tox.Engine
	showAst bool
}

const plainHelp = `:help   show this help
:vars   list global bindings
:ast    toggle showing each submission's syntax tree
:clear  clear the screen
:reset  start a fresh session
:quit   exit
`

func (s *plainSession) command(input string) (quit bool) {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case ":help", ":h":
		fmt.Print(plainHelp)
	case ":vars", ":v":
		globals := s.engine.Globals()
		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s = %s\n", name, globals[name].String())
		}
	case ":ast", ":a":
		s.showAst = !s.showAst
		if s.showAst {
			fmt.Println("ast display on")
		} else {
			fmt.Println("ast display off")
		}
	case ":clear", ":c":
		fmt.Print("\x1b[2J\x1b[H")
	case ":reset", ":r":
		s.engine.Reset()
		fmt.Println("session reset")
	case ":quit", ":q":
		return true
	default:
		fmt.Printf("unknown command: %s\n", cmd)
	}
	return false
}

func (s *plainSession) run(source string) {
	if s.showAst {
		if program, err := s.engine.Compile(source); err == nil {
			fmt.Println(tox.AstString(program))
		}
	}
	if err := s.engine.Run(source); err != nil {
		fmt.Fprintln(os.Stderr, tox.FormatErrorWithSource(err, source))
	}
}

// runPlainSession is the line-oriented loop used when stdin is not a
// terminal or when the full-screen session is switched off. A blank line
// or "exit" at the ready prompt ends the session; errors are reported and
// the session keeps going.
func runPlainSession(cfg replConfig) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	engine, err := tox.NewEngine(tox.Config{Out: os.Stdout})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	session := &plainSession{engine: engine}

	cont := contPrompt(cfg.Prompt)
	var pending []string
	for {
		prompt := cfg.Prompt
		if len(pending) > 0 {
			prompt = cont
		}

		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				pending = nil
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if len(pending) == 0 {
			if trimmed == "" || trimmed == "exit" {
				return 0
			}
			if strings.HasPrefix(trimmed, ":") {
				if session.command(trimmed) {
					return 0
				}
				ln.AppendHistory(trimmed)
				continue
			}
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")
		if !submissionReady(engine, source) {
			continue
		}
		pending = nil
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		session.run(source)
	}
}
