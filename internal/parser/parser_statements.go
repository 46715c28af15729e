package parser

import (
	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
)

// ConstructorName is the method every class must define.
const ConstructorName = "__edge__"

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.current.Type {
	case lexer.TokenClass:
		return p.parseClass()
	case lexer.TokenFunction:
		return p.parseFunction()
	case lexer.TokenIdentifier:
		return p.parseAssignOrExpression()
	case lexer.TokenCall:
		return p.parseCallStatement()
	case lexer.TokenImport:
		return p.parseImport()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenContinue:
		return p.parseContinue()
	default:
		return nil, errors.UnknownUnexpectedToken(p.current.String(), p.line())
	}
}

// parseClass parses `pookie Name() <methods> slay`.
func (p *Parser) parseClass() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenClass); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("Expected class name")
	if err != nil {
		return nil, err
	}
	if err := p.expectEmptyParens(); err != nil {
		return nil, err
	}

	methods := make([]*ast.Function, 0)
	hasConstructor := false
	for !p.currentTokenIs(lexer.TokenEnd) && !p.currentTokenIs(lexer.TokenEOF) {
		method, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if method.Name == ConstructorName {
			hasConstructor = true
		}
		methods = append(methods, method)
	}

	if p.currentTokenIs(lexer.TokenEOF) {
		return nil, p.expect(lexer.TokenEnd)
	}
	if !hasConstructor {
		return nil, errors.General(errors.PhaseParse, p.line(),
			"Class %s must have an %s method", name, ConstructorName)
	}
	if err := p.expect(lexer.TokenEnd); err != nil {
		return nil, err
	}

	return &ast.Class{Name: name, Methods: methods, Line: line}, nil
}

// parseFunction parses `cookable name() <body> slay`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	line := p.line()
	if err := p.expect(lexer.TokenFunction); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("Expected function name")
	if err != nil {
		return nil, err
	}
	if err := p.expectEmptyParens(); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(lexer.TokenEnd)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenEnd); err != nil {
		return nil, err
	}

	return &ast.Function{Name: name, Body: body, Line: line}, nil
}

func (p *Parser) expectEmptyParens() error {
	if err := p.expect(lexer.TokenLParen); err != nil {
		return err
	}
	return p.expect(lexer.TokenRParen)
}

// parseAssignOrExpression handles statements that start with an identifier:
// `x is v`, `recv.field is v`, or an expression such as `f(1)` or `a.b(2)`.
func (p *Parser) parseAssignOrExpression() (ast.Stmt, error) {
	line := p.line()
	head, err := p.parseIdentifierChain()
	if err != nil {
		return nil, err
	}

	if p.currentTokenIs(lexer.TokenAssign) {
		stmt := &ast.VariableAssign{Line: line}
		switch target := head.(type) {
		case *ast.Ident:
			stmt.Name = target.Name
		case *ast.ObjectValue:
			stmt.Name = target.Name
			stmt.Receiver = target.Receiver
		default:
			return nil, errors.General(errors.PhaseParse, line, "cannot assign to %s", head)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if stmt.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
		return stmt, nil
	}

	expr, err := p.parseInfix(head, LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Expression{Value: expr, Line: line}, nil
}

// parseCallStatement parses `cook f(args)` or `cook recv.m(args)`.
func (p *Parser) parseCallStatement() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenCall); err != nil {
		return nil, err
	}
	if !p.currentTokenIs(lexer.TokenIdentifier) {
		return nil, errors.General(errors.PhaseParse, line,
			"Expected a function or object name after 'cook', but found: %s", p.current)
	}

	expr, err := p.parseIdentifierChain()
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(*ast.FunctionCall); !ok {
		return nil, errors.UnexpectedToken(lexer.TokenLParen.String(), p.current.String(), p.line())
	}
	return &ast.Expression{Value: expr, Line: line}, nil
}

// parseImport parses `gyatt library`.
func (p *Parser) parseImport() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenImport); err != nil {
		return nil, err
	}
	library, err := p.expectIdentifier("Expected a library name after 'gyatt'")
	if err != nil {
		return nil, err
	}
	return &ast.Import{Library: library, Line: line}, nil
}

// parseWhile parses `skibidi (cond) do <body> slay`.
func (p *Parser) parseWhile() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenDo); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(lexer.TokenEnd)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenEnd); err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, Line: line}, nil
}

// parseFor parses `goon (x in [a, b]) do <body> slay`. The collection must be
// a list literal.
func (p *Parser) parseFor() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenFor); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	iterator, err := p.expectIdentifier("Expected iterator variable name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenIn); err != nil {
		return nil, err
	}

	collection, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	list, ok := collection.(*ast.List)
	if !ok {
		return nil, errors.General(errors.PhaseParse, p.line(), "Expected list after 'in', found %s", collection)
	}

	if err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenDo); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(lexer.TokenEnd)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenEnd); err != nil {
		return nil, err
	}

	return &ast.ForLoop{Iterator: iterator, Collection: list, Body: body, Line: line}, nil
}

// parseIf parses `suspect (cond) then <then> [cap <else>] slay`.
func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenIf); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenThen); err != nil {
		return nil, err
	}

	stmt := &ast.If{Cond: cond, Line: line}
	if stmt.Then, err = p.parseBlock(lexer.TokenElse, lexer.TokenEnd); err != nil {
		return nil, err
	}

	if p.currentTokenIs(lexer.TokenElse) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseBlock(lexer.TokenEnd); err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.TokenEnd); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCondition() (ast.Expr, error) {
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseReturn parses `blud expr`.
func (p *Parser) parseReturn() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenReturn); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Line: line}, nil
}

// parseContinue parses `ghost`.
func (p *Parser) parseContinue() (ast.Stmt, error) {
	line := p.line()
	if err := p.expect(lexer.TokenContinue); err != nil {
		return nil, err
	}
	return &ast.Continue{Line: line}, nil
}
