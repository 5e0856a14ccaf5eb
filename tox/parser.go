package tox

import (
	"errors"
	"fmt"
)

// maxCallArgs caps argument and parameter lists. Exceeding it is a parse
// error, never a truncation.
const maxCallArgs = 255

type parseError struct {
	line       int
	msg        string
	incomplete bool
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.line, e.msg)
}

func (e *parseError) SourceLine() int { return e.line }

func (e *parseError) incompleteInput() bool { return e.incomplete }

type parser struct {
	tokens  []Token
	current int
	errs    []error
}

// Parse turns a scanned token slice into a statement sequence. When a
// top-level declaration fails the error is recorded and the parser
// synchronizes to the next statement boundary before resuming, so a single
// malformed statement never hides the rest of the input. All recorded
// errors come back joined.
func Parse(tokens []Token) (*Program, error) {
	p := &parser{tokens: tokens}
	program := &Program{}

	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	return program, nil
}

func (p *parser) declaration() (Statement, error) {
	switch {
	case p.match(tokenVar):
		return p.varDeclaration()
	case p.check(tokenFunc) && p.checkNext(tokenIdent):
		p.advance()
		return p.funcDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) varDeclaration() (Statement, error) {
	name, err := p.consume(tokenIdent, "expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer Expression = &LiteralExpr{Value: NewNil(), line: name.Line}
	if p.match(tokenEqual) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(tokenSemicolon, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name.Lexeme, Initializer: initializer, line: name.Line}, nil
}

func (p *parser) funcDeclaration() (Statement, error) {
	name, err := p.consume(tokenIdent, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLeftParen, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLeftBrace, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name.Lexeme, Params: params, Body: body, line: name.Line}, nil
}

func (p *parser) parameters() ([]string, error) {
	var params []string
	if !p.check(tokenRightParen) {
		for {
			if len(params) >= maxCallArgs {
				return nil, p.errorAtCurrent("cannot have more than 255 parameters")
			}
			name, err := p.consume(tokenIdent, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, name.Lexeme)
			if !p.match(tokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(tokenRightParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) statement() (Statement, error) {
	switch {
	case p.match(tokenPrint):
		return p.printStatement()
	case p.match(tokenLeftBrace):
		return p.blockStatement()
	case p.match(tokenIf):
		return p.ifStatement()
	case p.match(tokenWhile):
		return p.whileStatement()
	case p.match(tokenFor):
		return p.forStatement()
	case p.match(tokenReturn):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() (Statement, error) {
	keyword := p.previous()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenSemicolon, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: expr, line: keyword.Line}, nil
}

func (p *parser) blockStatement() (Statement, error) {
	brace := p.previous()
	stmts, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &BlockStmt{Statements: stmts, line: brace.Line}, nil
}

// blockStatements parses declarations up to the closing brace, which it
// consumes. Errors inside a block propagate up to the top-level recovery
// point rather than synchronizing locally.
func (p *parser) blockStatements() ([]Statement, error) {
	var stmts []Statement
	for !p.check(tokenRightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(tokenRightBrace, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) ifStatement() (Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(tokenLeftParen, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRightParen, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt Statement
	if p.match(tokenElse) {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, Then: then, Else: elseStmt, line: keyword.Line}, nil
}

func (p *parser) whileStatement() (Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(tokenLeftParen, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRightParen, "expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, Body: body, line: keyword.Line}, nil
}

// forStatement desugars to a while loop at parse time: the increment, when
// present, is appended to the body inside a block, and the initializer,
// when present, wraps the loop in an outer block so the loop variable goes
// out of scope with the statement.
func (p *parser) forStatement() (Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(tokenLeftParen, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer Statement
	var err error
	switch {
	case p.match(tokenSemicolon):
	case p.match(tokenVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition Expression
	if !p.check(tokenSemicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(tokenSemicolon, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var increment Expression
	if !p.check(tokenRightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(tokenRightParen, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{
			Statements: []Statement{body, &ExprStmt{Expr: increment, line: increment.Line()}},
			line:       body.Line(),
		}
	}
	if condition == nil {
		condition = &LiteralExpr{Value: NewBool(true), line: keyword.Line}
	}

	var loop Statement = &WhileStmt{Condition: condition, Body: body, line: keyword.Line}
	if initializer != nil {
		loop = &BlockStmt{Statements: []Statement{initializer, loop}, line: keyword.Line}
	}
	return loop, nil
}

func (p *parser) returnStatement() (Statement, error) {
	keyword := p.previous()
	var value Expression
	if !p.check(tokenSemicolon) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := p.consume(tokenSemicolon, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value, line: keyword.Line}, nil
}

func (p *parser) expressionStatement() (Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenSemicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, line: expr.Line()}, nil
}

func (p *parser) expression() (Expression, error) {
	return p.assignment()
}

// assignment is right-associative; every other binary level below loops on
// its operator set, building left-leaning trees.
func (p *parser) assignment() (Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(tokenEqual) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: target.Name, Value: value, line: target.line}, nil
		}
		return nil, &parseError{line: equals.Line, msg: "invalid assignment target"}
	}
	return expr, nil
}

func (p *parser) or() (Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) and() (Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) equality() (Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(tokenBangEqual, tokenEqualEqual) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) comparison() (Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(tokenGreater, tokenGreaterEqual, tokenLess, tokenLessEqual) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) term() (Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(tokenMinus, tokenPlus) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) factor() (Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenSlash, tokenStar) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op.Type, Right: right, line: op.Line}
	}
	return expr, nil
}

func (p *parser) unary() (Expression, error) {
	if p.match(tokenBang, tokenMinus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op.Type, Right: right, line: op.Line}, nil
	}
	return p.call()
}

func (p *parser) call() (Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenLeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *parser) finishCall(callee Expression) (Expression, error) {
	var args []Expression
	if !p.check(tokenRightParen) {
		for {
			if len(args) >= maxCallArgs {
				return nil, p.errorAtCurrent("cannot have more than 255 arguments")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(tokenComma) {
				break
			}
		}
	}
	paren, err := p.consume(tokenRightParen, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Args: args, line: paren.Line}, nil
}

func (p *parser) primary() (Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case tokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(tokenRightParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expr: expr, line: tok.Line}, nil
	case tokenNumber:
		p.advance()
		return &LiteralExpr{Value: NewNumber(tok.Literal.(float64)), line: tok.Line}, nil
	case tokenString:
		p.advance()
		return &LiteralExpr{Value: NewString(tok.Literal.(string)), line: tok.Line}, nil
	case tokenTrue:
		p.advance()
		return &LiteralExpr{Value: NewBool(true), line: tok.Line}, nil
	case tokenFalse:
		p.advance()
		return &LiteralExpr{Value: NewBool(false), line: tok.Line}, nil
	case tokenNil:
		p.advance()
		return &LiteralExpr{Value: NewNil(), line: tok.Line}, nil
	case tokenIdent:
		p.advance()
		return &VariableExpr{Name: tok.Lexeme, line: tok.Line}, nil
	case tokenFunc:
		p.advance()
		return p.functionLiteral(tok)
	}
	return nil, &parseError{
		line:       tok.Line,
		msg:        "unexpected " + describeToken(tok),
		incomplete: tok.Type == tokenEOF,
	}
}

func (p *parser) functionLiteral(keyword Token) (Expression, error) {
	if _, err := p.consume(tokenLeftParen, "expected '(' after 'func'"); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLeftBrace, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &FunctionLiteral{Params: params, Body: body, line: keyword.Line}, nil
}

func (p *parser) atEnd() bool {
	return p.peek().Type == tokenEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(tt TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *parser) checkNext(tt TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.tokens[p.current+1].Type == tt
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	tok := p.peek()
	return Token{}, &parseError{
		line:       tok.Line,
		msg:        msg + ", got " + describeToken(tok),
		incomplete: tok.Type == tokenEOF,
	}
}

func (p *parser) errorAtCurrent(msg string) error {
	return &parseError{line: p.peek().Line, msg: msg}
}

// synchronize advances to the next statement-starting keyword, or to end of
// input, discarding tokens that belong to the failed declaration.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		switch p.peek().Type {
		case tokenClass, tokenFunc, tokenVar, tokenFor, tokenIf, tokenWhile, tokenPrint, tokenReturn:
			return
		}
		p.advance()
	}
}

func describeToken(tok Token) string {
	if tok.Type == tokenEOF {
		return "end of input"
	}
	return "'" + tok.Lexeme + "'"
}
