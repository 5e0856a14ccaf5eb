package tox

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

type lexError struct {
	line       int
	msg        string
	incomplete bool
}

func (e *lexError) Error() string {
	return fmt.Sprintf("lex error at line %d: %s", e.line, e.msg)
}

func (e *lexError) SourceLine() int { return e.line }

func (e *lexError) incompleteInput() bool { return e.incomplete }

// scanner walks the source once, left to right, without backtracking.
type scanner struct {
	source string
	tokens []Token
	errs   []error

	start  int
	offset int
	line   int
}

// Scan tokenizes source and appends a terminating EOF token. Lexical errors
// do not abort the scan; they are collected across the whole input and
// returned joined, in which case the token slice is nil.
func Scan(source string) ([]Token, error) {
	s := &scanner{source: source, line: 1}

	for !s.atEnd() {
		s.start = s.offset
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: tokenEOF, Line: s.line})

	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}
	return s.tokens, nil
}

func (s *scanner) scanToken() {
	ch := s.advance()

	switch ch {
	case '(':
		s.addToken(tokenLeftParen)
	case ')':
		s.addToken(tokenRightParen)
	case '{':
		s.addToken(tokenLeftBrace)
	case '}':
		s.addToken(tokenRightBrace)
	case ',':
		s.addToken(tokenComma)
	case '.':
		s.addToken(tokenDot)
	case '-':
		s.addToken(tokenMinus)
	case '+':
		s.addToken(tokenPlus)
	case ';':
		s.addToken(tokenSemicolon)
	case '*':
		s.addToken(tokenStar)
	case '!':
		if s.match('=') {
			s.addToken(tokenBangEqual)
		} else {
			s.addToken(tokenBang)
		}
	case '=':
		if s.match('=') {
			s.addToken(tokenEqualEqual)
		} else {
			s.addToken(tokenEqual)
		}
	case '>':
		if s.match('=') {
			s.addToken(tokenGreaterEqual)
		} else {
			s.addToken(tokenGreater)
		}
	case '<':
		if s.match('=') {
			s.addToken(tokenLessEqual)
		} else {
			s.addToken(tokenLess)
		}
	case '/':
		if s.match('/') {
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		} else {
			s.addToken(tokenSlash)
		}
	case '"':
		s.scanString()
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.errorf("unrecognized character %q", ch)
		}
	}
}

// scanString reads to the closing quote with no escape processing. The
// string may span lines; an unterminated string is reported against the
// line it started on.
func (s *scanner) scanString() {
	startLine := s.line

	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.errs = append(s.errs, &lexError{line: startLine, msg: "unterminated string", incomplete: true})
		return
	}

	s.advance()
	s.addTokenLiteral(tokenString, s.source[s.start+1:s.offset-1])
}

// scanNumber consumes digits and at most one decimal point, and only when
// the point is followed by a digit. A trailing `5.` therefore leaves the
// dot for the next token, and `.1` never reaches here at all.
func (s *scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	text := s.source[s.start:s.offset]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.errorf("malformed number %q", text)
		return
	}
	s.addTokenLiteral(tokenNumber, value)
}

func (s *scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(lookupKeyword(s.source[s.start:s.offset]))
}

func (s *scanner) atEnd() bool {
	return s.offset >= len(s.source)
}

func (s *scanner) advance() rune {
	r, w := utf8.DecodeRuneInString(s.source[s.offset:])
	s.offset += w
	return r
}

func (s *scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.offset:])
	return r
}

func (s *scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s.source[s.offset:])
	if s.offset+w >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.offset+w:])
	return r
}

func (s *scanner) match(expected rune) bool {
	if s.atEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) addToken(tt TokenType) {
	s.addTokenLiteral(tt, nil)
}

func (s *scanner) addTokenLiteral(tt TokenType, literal any) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.source[s.start:s.offset],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *scanner) errorf(format string, args ...any) {
	s.errs = append(s.errs, &lexError{line: s.line, msg: fmt.Sprintf(format, args...)})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
