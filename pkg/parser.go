package kaleido

import (
	"github.com/pkg/errors"
)

// OpPrecedence maps a binary operator character to its binding power;
// higher binds tighter. Characters absent from the table are not binary
// operators. The table is read-only once built and may be shared across
// parsers.
type OpPrecedence map[rune]int

// DefaultPrecedence returns the language's operator table.
func DefaultPrecedence() OpPrecedence {
	return OpPrecedence{
		'<': 10,
		'+': 20,
		'-': 20,
		'*': 40,
	}
}

func (p OpPrecedence) of(t Token) int {
	if t.Typ != TokenOperator {
		return -1
	}

	if prec, ok := p[t.Op()]; ok {
		return prec
	}

	return -1
}

// Parser consumes a token stream one top-level construct at a time. Each
// entry point leaves the cursor on the first token after its construct, so
// the caller can dispatch on Cur without lookahead of its own.
type Parser struct {
	tokenizer Tokenizer
	prec      OpPrecedence

	cur    Token
	primed bool
}

func NewParser(tokenizer Tokenizer, prec OpPrecedence) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		prec:      prec,
	}
}

// Cur returns the current token, reading the first one on demand so that
// construction alone never blocks on input.
func (p *Parser) Cur() Token {
	if !p.primed {
		p.next()
	}

	return p.cur
}

// Skip discards the current token. The driver uses it to step over the
// token a failed construct choked on.
func (p *Parser) Skip() {
	p.next()
}

func (p *Parser) next() Token {
	p.primed = true
	p.cur = p.tokenizer.Next()

	return p.cur
}

// ParseDefinition consumes `def prototype expr`.
func (p *Parser) ParseDefinition() (*Function, error) {
	if p.Cur().Typ != TokenDef {
		return nil, errors.New("expected 'def' in definition")
	}
	p.next() // eat def

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto, Body: body}, nil
}

// ParseExtern consumes `extern prototype`, a signature with no body.
func (p *Parser) ParseExtern() (*Prototype, error) {
	if p.Cur().Typ != TokenExtern {
		return nil, errors.New("expected 'extern' in declaration")
	}
	p.next() // eat extern

	return p.parsePrototype()
}

// ParseTopLevelExpr wraps a bare expression in an anonymous, parameterless
// function so it can be lowered like any definition.
func (p *Parser) ParseTopLevelExpr() (*Function, error) {
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: &Prototype{}, Body: body}, nil
}

func (p *Parser) parseExpression() (Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS folds operators of at least minPrec onto lhs by precedence
// climbing: a tighter-binding operator on the right is folded first by
// recursing with a higher floor, while equal precedence stays with the
// left-hand side, which keeps the listed operators left-associative.
func (p *Parser) parseBinOpRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		prec := p.prec.of(p.Cur())
		if prec < minPrec {
			return lhs, nil
		}

		op := p.Cur().Op()
		p.next() // eat the operator

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if prec < p.prec.of(p.Cur()) {
			if rhs, err = p.parseBinOpRHS(prec+1, rhs); err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch tok := p.Cur(); {
	case tok.Typ == TokenNumber:
		p.next()
		return &NumberExpr{Value: tok.Num}, nil
	case tok.Typ == TokenIdentifier:
		return p.parseIdentifierExpr()
	case tok.Is('('):
		return p.parseParenExpr()
	default:
		return nil, errors.New("unknown token when expecting an expression")
	}
}

func (p *Parser) parseParenExpr() (Expr, error) {
	p.next() // eat '('

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.Cur().Is(')') {
		return nil, errors.New("expected ')'")
	}
	p.next() // eat ')'

	return e, nil
}

// parseIdentifierExpr produces a variable reference, or a call when the
// identifier is followed by '('.
func (p *Parser) parseIdentifierExpr() (Expr, error) {
	name := p.Cur().Value
	p.next()

	if !p.Cur().Is('(') {
		return &VariableExpr{Name: name}, nil
	}
	p.next() // eat '('

	var args []Expr
	if !p.Cur().Is(')') {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.Cur().Is(')') {
				break
			}
			if !p.Cur().Is(',') {
				return nil, errors.New("expected ')' or ',' in argument list")
			}
			p.next() // eat ','
		}
	}
	p.next() // eat ')'

	return &CallExpr{Callee: name, Args: args}, nil
}

// parsePrototype consumes `name(params)`. Parameters are identifier tokens;
// commas between them are tolerated and ignored.
func (p *Parser) parsePrototype() (*Prototype, error) {
	if p.Cur().Typ != TokenIdentifier {
		return nil, errors.New("expected function name in prototype")
	}
	name := p.Cur().Value

	if !p.next().Is('(') {
		return nil, errors.New("expected '(' in prototype")
	}

	var params []string
	for {
		tok := p.next()
		if tok.Typ == TokenIdentifier {
			params = append(params, tok.Value)
			continue
		}
		if tok.Is(',') {
			continue
		}

		break
	}

	if !p.Cur().Is(')') {
		return nil, errors.New("expected ')' in prototype")
	}
	p.next() // eat ')'

	return &Prototype{Name: name, Params: params}, nil
}
