package dsl

import (
	"fmt"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
)

// ParseError reports a lexical or syntactic problem at a source position.
type ParseError struct {
	Message  string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dsl: %s (at position %d)", e.Message, e.Position)
}

// Parser builds a clause list from a token stream via recursive descent.
type Parser struct {
	tokens  []Token
	current int

	conditionalID int64
	objectID      int64
}

// Parse tokenizes and parses a formula string into a clause list. Every
// clause produced is tagged with conditionalID and objectID, mirroring the
// provenance ids a real analyzer would attach per source conditional.
func Parse(input string, conditionalID, objectID int64) ([]clause.Clause, error) {
	tokens := NewLexer(input).Lex()
	for _, t := range tokens {
		if t.Type == TokenError {
			return nil, &ParseError{Message: fmt.Sprintf("unexpected character %q", t.Value), Position: t.Position}
		}
	}

	p := &Parser{tokens: tokens, conditionalID: conditionalID, objectID: objectID}
	clauses, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, &ParseError{Message: fmt.Sprintf("unexpected %s", p.peek().Type), Position: p.peek().Position}
	}
	return clauses, nil
}

func (p *Parser) parseFormula() ([]clause.Clause, error) {
	var clauses []clause.Clause
	c, err := p.parseClause()
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, c)

	for p.match(TokenSemi) {
		if p.isAtEnd() {
			break
		}
		c, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

func (p *Parser) parseClause() (clause.Clause, error) {
	possibilities := map[assertion.VarKey][]assertion.Assertion{}

	v, list, err := p.parseVarGroup()
	if err != nil {
		return clause.Clause{}, err
	}
	if _, dup := possibilities[v]; dup {
		return clause.Clause{}, &ParseError{Message: fmt.Sprintf("duplicate var %q in clause", v), Position: p.previous().Position}
	}
	possibilities[v] = list

	for p.match(TokenPipe) {
		v, list, err := p.parseVarGroup()
		if err != nil {
			return clause.Clause{}, err
		}
		if _, dup := possibilities[v]; dup {
			return clause.Clause{}, &ParseError{Message: fmt.Sprintf("duplicate var %q in clause", v), Position: p.previous().Position}
		}
		possibilities[v] = list
	}

	return clause.New(possibilities, p.conditionalID, p.objectID), nil
}

func (p *Parser) parseVarGroup() (assertion.VarKey, []assertion.Assertion, error) {
	negated := p.match(TokenBang)

	if !p.match(TokenIdent) {
		return "", nil, &ParseError{Message: "expected a variable name", Position: p.peek().Position}
	}
	name := p.previous().Value
	v := assertion.VarKey(name)

	if !p.match(TokenColon) {
		a := assertion.Assertion(assertion.NewAtom(name))
		if negated {
			a = a.Negate()
		}
		return v, []assertion.Assertion{a}, nil
	}
	if negated {
		return "", nil, &ParseError{Message: "'!' cannot be combined with an explicit possibility list", Position: p.previous().Position}
	}

	list, err := p.parsePossibilityList()
	if err != nil {
		return "", nil, err
	}
	return v, list, nil
}

func (p *Parser) parsePossibilityList() ([]assertion.Assertion, error) {
	var list []assertion.Assertion

	negated := p.match(TokenBang)
	if !p.match(TokenIdent) {
		return nil, &ParseError{Message: "expected a possibility name", Position: p.peek().Position}
	}
	a := assertion.Assertion(assertion.NewAtom(p.previous().Value))
	if negated {
		a = a.Negate()
	}
	list = append(list, a)

	for p.match(TokenComma) {
		negated := p.match(TokenBang)
		if !p.match(TokenIdent) {
			return nil, &ParseError{Message: "expected a possibility name", Position: p.peek().Position}
		}
		a := assertion.Assertion(assertion.NewAtom(p.previous().Value))
		if negated {
			a = a.Negate()
		}
		list = append(list, a)
	}
	return list, nil
}

func (p *Parser) match(types ...TokenType) bool {
	if p.check(types...) {
		p.current++
		return true
	}
	return false
}

func (p *Parser) check(types ...TokenType) bool {
	if p.isAtEnd() && !contains(types, TokenEOF) {
		return false
	}
	for _, t := range types {
		if p.peek().Type == t {
			return true
		}
	}
	return false
}

func contains(types []TokenType, t TokenType) bool {
	for _, tt := range types {
		if tt == t {
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}
