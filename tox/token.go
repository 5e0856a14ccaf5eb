package tox

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenLeftParen  TokenType = "("
	tokenRightParen TokenType = ")"
	tokenLeftBrace  TokenType = "{"
	tokenRightBrace TokenType = "}"
	tokenComma      TokenType = ","
	tokenDot        TokenType = "."
	tokenMinus      TokenType = "-"
	tokenPlus       TokenType = "+"
	tokenSemicolon  TokenType = ";"
	tokenSlash      TokenType = "/"
	tokenStar       TokenType = "*"

	tokenBang         TokenType = "!"
	tokenBangEqual    TokenType = "!="
	tokenEqual        TokenType = "="
	tokenEqualEqual   TokenType = "=="
	tokenGreater      TokenType = ">"
	tokenGreaterEqual TokenType = ">="
	tokenLess         TokenType = "<"
	tokenLessEqual    TokenType = "<="

	tokenAnd    TokenType = "AND"
	tokenClass  TokenType = "CLASS"
	tokenElse   TokenType = "ELSE"
	tokenFalse  TokenType = "FALSE"
	tokenFor    TokenType = "FOR"
	tokenFunc   TokenType = "FUNC"
	tokenIf     TokenType = "IF"
	tokenNil    TokenType = "NIL"
	tokenOr     TokenType = "OR"
	tokenPrint  TokenType = "PRINT"
	tokenReturn TokenType = "RETURN"
	tokenSuper  TokenType = "SUPER"
	tokenThis   TokenType = "THIS"
	tokenTrue   TokenType = "TRUE"
	tokenVar    TokenType = "VAR"
	tokenWhile  TokenType = "WHILE"
)

// Token carries lexical information for the parser. Number tokens hold a
// float64 in Literal, string tokens hold the unquoted text; Literal is nil
// for everything else.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}

func lookupKeyword(ident string) TokenType {
	switch ident {
	case "and":
		return tokenAnd
	case "class":
		return tokenClass
	case "else":
		return tokenElse
	case "false":
		return tokenFalse
	case "for":
		return tokenFor
	case "func":
		return tokenFunc
	case "if":
		return tokenIf
	case "nil":
		return tokenNil
	case "or":
		return tokenOr
	case "print":
		return tokenPrint
	case "return":
		return tokenReturn
	case "super":
		return tokenSuper
	case "this":
		return tokenThis
	case "true":
		return tokenTrue
	case "var":
		return tokenVar
	case "while":
		return tokenWhile
	}
	return tokenIdent
}
