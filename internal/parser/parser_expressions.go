package parser

import (
	"math"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
)

// Precedence levels for binary operators.
type Precedence int

const (
	LOWEST  Precedence = iota
	EQUALS             // ==
	SUM                // + - > <
	PRODUCT            // * /
)

var precedences = map[lexer.TokenType]Precedence{
	lexer.TokenEq:    EQUALS,
	lexer.TokenPlus:  SUM,
	lexer.TokenMinus: SUM,
	lexer.TokenGt:    SUM,
	lexer.TokenLt:    SUM,
	lexer.TokenMul:   PRODUCT,
	lexer.TokenDiv:   PRODUCT,
}

// parseExpression parses a full binary expression.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseExpressionWithPrecedence(LOWEST)
}

func (p *Parser) parseExpressionWithPrecedence(min Precedence) (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseInfix(left, min)
}

// parseInfix folds binary operators onto left while their precedence is at
// least min. The right operand binds one level tighter, so every operator is
// left-associative.
func (p *Parser) parseInfix(left ast.Expr, min Precedence) (ast.Expr, error) {
	for {
		prec, ok := precedences[p.current.Type]
		if !ok || prec < min {
			return left, nil
		}

		op := p.current
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Type, Right: right, Line: op.Line()}
	}
}

// parsePrimary parses literals, identifiers with their member/call chains,
// list literals, `new` expressions and negative number literals.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current
	line := tok.Line()

	switch tok.Type {
	case lexer.TokenInteger:
		if tok.Value > math.MaxInt64 {
			return nil, errors.General(errors.PhaseParse, line,
				"integer literal %s does not fit in 64 bits", tok.Literal)
		}
		return &ast.Number{Value: int64(tok.Value), Line: line}, p.nextToken()
	case lexer.TokenString:
		return &ast.StringLiteral{Value: tok.Literal, Line: line}, p.nextToken()
	case lexer.TokenTrue:
		return &ast.Boolean{Value: true, Line: line}, p.nextToken()
	case lexer.TokenFalse:
		return &ast.Boolean{Value: false, Line: line}, p.nextToken()
	case lexer.TokenIdentifier:
		return p.parseIdentifierChain()
	case lexer.TokenLBracket:
		return p.parseList()
	case lexer.TokenNew:
		return p.parseNewInstance()
	case lexer.TokenMinus:
		return p.parseNegativeNumber()
	case lexer.TokenCall:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return p.parsePrimary()
	default:
		return nil, errors.UnknownUnexpectedToken(tok.String(), line)
	}
}

// parseNegativeNumber folds `-N` into a single literal. Only integer
// literals can be negated.
func (p *Parser) parseNegativeNumber() (ast.Expr, error) {
	line := p.line()
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if !p.currentTokenIs(lexer.TokenInteger) {
		return nil, errors.General(errors.PhaseParse, line,
			"Expected a number after '-', found %s", p.current)
	}
	// The lexer caps magnitudes at 1<<63, so negating in uint64 and
	// converting yields math.MinInt64 for the largest one.
	value := int64(-p.current.Value)
	return &ast.Number{Value: value, Line: line}, p.nextToken()
}

// parseIdentifierChain parses `name`, `name(args)` and any trailing
// `.member` / `.method(args)` accesses.
func (p *Parser) parseIdentifierChain() (ast.Expr, error) {
	tok := p.current
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	var expr ast.Expr = &ast.Ident{Name: tok.Literal, Line: tok.Line()}

	for {
		switch {
		case p.currentTokenIs(lexer.TokenDot):
			line := p.line()
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			if !p.currentTokenIs(lexer.TokenIdentifier) {
				return nil, errors.General(errors.PhaseParse, line,
					"Expected identifier after '.', found %s", p.current)
			}
			member := p.current.Literal
			if err := p.nextToken(); err != nil {
				return nil, err
			}

			if p.currentTokenIs(lexer.TokenLParen) {
				args, err := p.parseCallArguments()
				if err != nil {
					return nil, err
				}
				expr = &ast.FunctionCall{Name: member, Receiver: expr, Args: args, Line: line}
				continue
			}
			expr = &ast.ObjectValue{Receiver: expr, Name: member, Line: line}

		case p.currentTokenIs(lexer.TokenLParen):
			ident, ok := expr.(*ast.Ident)
			if !ok {
				return expr, nil
			}
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Name: ident.Name, Args: args, Line: ident.Line}

		default:
			return expr, nil
		}
	}
}

// parseCallArguments parses `(a, b, c)`.
func (p *Parser) parseCallArguments() ([]ast.Expr, error) {
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	args := make([]ast.Expr, 0)
	if p.currentTokenIs(lexer.TokenRParen) {
		return args, p.nextToken()
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.currentTokenIs(lexer.TokenComma) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseList parses `[a, b, c]`; a trailing comma is allowed.
func (p *Parser) parseList() (ast.Expr, error) {
	line := p.line()
	if err := p.expect(lexer.TokenLBracket); err != nil {
		return nil, err
	}

	elements := make([]ast.Expr, 0)
	for !p.currentTokenIs(lexer.TokenRBracket) {
		element, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)

		if !p.currentTokenIs(lexer.TokenComma) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.List{Elements: elements, Line: line}, nil
}

// parseNewInstance parses `new Class(args)`.
func (p *Parser) parseNewInstance() (ast.Expr, error) {
	line := p.line()
	if err := p.expect(lexer.TokenNew); err != nil {
		return nil, err
	}

	className, err := p.expectIdentifier("Expected class name after 'new'")
	if err != nil {
		return nil, err
	}
	args, err := p.parseCallArguments()
	if err != nil {
		return nil, err
	}
	return &ast.NewInstance{ClassName: className, Args: args, Line: line}, nil
}
