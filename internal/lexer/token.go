// Package lexer implements the cookable lexical analyzer.
package lexer

import (
	"fmt"

	"github.com/cookable-lang/cookable/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

const (
	TokenEOF TokenType = iota

	// literals
	TokenIdentifier
	TokenInteger
	TokenString

	// keywords
	TokenFunction // cookable
	TokenCall     // cook
	TokenAssign   // is
	TokenClass    // pookie
	TokenImport   // gyatt
	TokenWhile    // skibidi
	TokenFor      // goon
	TokenIn       // in
	TokenIf       // suspect
	TokenThen     // then
	TokenElse     // cap
	TokenEnd      // slay
	TokenReturn   // blud
	TokenContinue // ghost
	TokenNew      // new
	TokenDo       // do
	TokenTrue     // sigma
	TokenFalse    // ohio

	// operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenEq // == or rizz
	TokenGt
	TokenLt

	// punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
)

// Token is a lexical token. Literal holds the identifier name, the string
// contents or the digits of an integer; Value holds the integer's magnitude,
// at most 1<<63 so that the most negative int64 can be written. The parser
// range-checks it once the sign is known.
type Token struct {
	Type    TokenType
	Literal string
	Value   uint64
	Pos     position.Position
}

// Line returns the 1-based line the token starts on.
func (t Token) Line() int { return t.Pos.Line }

// String renders the token the way diagnostics refer to it.
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier:
		return fmt.Sprintf("IDENTIFIER(%s)", t.Literal)
	case TokenInteger:
		return fmt.Sprintf("INTEGER(%d)", t.Value)
	case TokenString:
		return fmt.Sprintf("STRING(%q)", t.Literal)
	}
	return t.Type.String()
}

var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenString:     "STRING",

	TokenFunction: "COOKABLE",
	TokenCall:     "COOK",
	TokenAssign:   "IS",
	TokenClass:    "POOKIE",
	TokenImport:   "GYATT",
	TokenWhile:    "SKIBIDI",
	TokenFor:      "GOON",
	TokenIn:       "IN",
	TokenIf:       "SUSPECT",
	TokenThen:     "THEN",
	TokenElse:     "CAP",
	TokenEnd:      "SLAY",
	TokenReturn:   "BLUD",
	TokenContinue: "GHOST",
	TokenNew:      "NEW",
	TokenDo:       "DO",
	TokenTrue:     "SIGMA",
	TokenFalse:    "OHIO",

	TokenPlus:  "PLUS",
	TokenMinus: "MINUS",
	TokenMul:   "MUL",
	TokenDiv:   "DIV",
	TokenEq:    "EQ",
	TokenGt:    "GT",
	TokenLt:    "LT",

	TokenLParen:   "LPAREN",
	TokenRParen:   "RPAREN",
	TokenLBracket: "LBRACKET",
	TokenRBracket: "RBRACKET",
	TokenComma:    "COMMA",
	TokenDot:      "DOT",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"cookable": TokenFunction,
	"cook":     TokenCall,
	"is":       TokenAssign,
	"pookie":   TokenClass,
	"gyatt":    TokenImport,
	"skibidi":  TokenWhile,
	"goon":     TokenFor,
	"in":       TokenIn,
	"suspect":  TokenIf,
	"then":     TokenThen,
	"cap":      TokenElse,
	"slay":     TokenEnd,
	"blud":     TokenReturn,
	"ghost":    TokenContinue,
	"new":      TokenNew,
	"do":       TokenDo,
	"sigma":    TokenTrue,
	"ohio":     TokenFalse,
	"rizz":     TokenEq,
}

// lookupIdent checks if identifier is keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}
