package logic

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a formula from its textual form. Grammar, loosest first:
//
//	implies = or ( "->" implies )?          right-associative
//	or      = and ( "|" and )*
//	and     = not ( "&" not )*
//	not     = "!" not | atomic
//	atomic  = "true" | "false" | ident | "(" implies ")"
//
// Identifiers are letters, digits and underscores, starting with a
// letter.
func Parse(input string) (Formula, error) {
	p := &parser{input: input}
	f, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, fmt.Errorf("formula %q: trailing input at offset %d", input, p.pos)
	}
	return f, nil
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(input string) Formula {
	f, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseSequent reads "hyp, hyp |- concl" or a bare formula (no
// hypotheses).
func ParseSequent(input string) (Sequent, error) {
	lhs, rhs, found := strings.Cut(input, "|-")
	if !found {
		concl, err := Parse(input)
		if err != nil {
			return Sequent{}, err
		}
		return Sequent{Concl: concl}, nil
	}

	var hyps []Formula
	lhs = strings.TrimSpace(lhs)
	if lhs != "" {
		for _, part := range strings.Split(lhs, ",") {
			h, err := Parse(part)
			if err != nil {
				return Sequent{}, err
			}
			hyps = append(hyps, h)
		}
	}
	concl, err := Parse(rhs)
	if err != nil {
		return Sequent{}, err
	}
	return Sequent{Hyps: hyps, Concl: concl}, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek(s string) bool {
	p.skipSpace()
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) eat(s string) bool {
	if p.peek(s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) parseImplies() (Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.eat("->") {
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return Implies{L: left, R: right}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek("|") && !p.peek("|-") {
		p.eat("|")
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Formula, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.eat("&") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Formula, error) {
	if p.eat("!") {
		f, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{F: f}, nil
	}
	return p.parseAtomic()
}

func (p *parser) parseAtomic() (Formula, error) {
	p.skipSpace()
	if p.eat("(") {
		f, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, fmt.Errorf("formula %q: missing ')' at offset %d", p.input, p.pos)
		}
		return f, nil
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || c == '_' || (p.pos > start && unicode.IsDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return nil, fmt.Errorf("formula %q: expected formula at offset %d", p.input, start)
	}

	switch name := p.input[start:p.pos]; name {
	case "true":
		return True, nil
	case "false":
		return False, nil
	default:
		return Atom(name), nil
	}
}
