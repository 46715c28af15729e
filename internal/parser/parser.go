// Package parser implements the cookable recursive descent parser.
//
// The parser keeps exactly one token of lookahead and stops at the first
// error; there is no statement-level recovery.
package parser

import (
	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Token
}

// NewParser creates a new parser instance and reads the first token.
func NewParser(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lexer: l}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseSource lexes and parses a whole script.
func ParseSource(src, filename string) ([]ast.Stmt, error) {
	p, err := NewParser(lexer.NewWithFilename(src, filename))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse consumes tokens until EOF and returns the top-level statements.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	statements := make([]ast.Stmt, 0)
	for !p.currentTokenIs(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) line() int {
	return p.current.Line()
}

// expect consumes the current token if it has the given type.
func (p *Parser) expect(tokenType lexer.TokenType) error {
	if !p.currentTokenIs(tokenType) {
		return errors.UnexpectedToken(tokenType.String(), p.current.String(), p.line())
	}
	return p.nextToken()
}

// expectIdentifier returns the current identifier and advances; otherwise it
// fails with a GeneralError carrying message.
func (p *Parser) expectIdentifier(message string) (string, error) {
	if !p.currentTokenIs(lexer.TokenIdentifier) {
		return "", errors.General(errors.PhaseParse, p.line(), "%s, found %s", message, p.current)
	}
	name := p.current.Literal
	return name, p.nextToken()
}

// parseBlock parses statements until one of the terminators (or EOF) is the
// current token. The terminator itself is not consumed.
func (p *Parser) parseBlock(terminators ...lexer.TokenType) ([]ast.Stmt, error) {
	body := make([]ast.Stmt, 0)
	for !p.currentTokenIs(lexer.TokenEOF) {
		for _, t := range terminators {
			if p.currentTokenIs(t) {
				return body, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
