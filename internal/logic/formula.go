// Package logic is a small propositional sequent calculus used as the
// demonstration rule domain for the search engine: it supplies the
// opaque goal states, a rule set covering all three phases, and the
// bulk simplifier. The engine itself never imports this package; it is
// a collaborator wired in by the CLI and the integration tests.
package logic

import (
	"fmt"
	"strings"
)

// Formula is a propositional formula. The set of shapes is closed; all
// of them are comparable, so formulas compare structurally with ==.
type Formula interface {
	fmt.Stringer
	isFormula()
}

// Atom is a propositional variable.
type Atom string

// Const is a truth constant.
type Const bool

// True and False are the two constant formulas.
const (
	True  Const = true
	False Const = false
)

// Not negates a formula.
type Not struct{ F Formula }

// And conjoins two formulas.
type And struct{ L, R Formula }

// Or disjoins two formulas.
type Or struct{ L, R Formula }

// Implies is material implication.
type Implies struct{ L, R Formula }

func (Atom) isFormula()    {}
func (Const) isFormula()   {}
func (Not) isFormula()     {}
func (And) isFormula()     {}
func (Or) isFormula()      {}
func (Implies) isFormula() {}

func (a Atom) String() string { return string(a) }

func (c Const) String() string {
	if bool(c) {
		return "true"
	}
	return "false"
}

func (n Not) String() string { return "!" + paren(n.F, precNot) }

func (a And) String() string {
	return paren(a.L, precAnd) + " & " + paren(a.R, precAnd)
}

func (o Or) String() string {
	return paren(o.L, precOr) + " | " + paren(o.R, precOr)
}

func (i Implies) String() string {
	// Right-associative: the left operand needs parens at equal
	// precedence, the right does not.
	return paren(i.L, precImplies+1) + " -> " + paren(i.R, precImplies)
}

const (
	precImplies = iota
	precOr
	precAnd
	precNot
	precAtomic
)

func precedence(f Formula) int {
	switch f.(type) {
	case Implies:
		return precImplies
	case Or:
		return precOr
	case And:
		return precAnd
	case Not:
		return precNot
	}
	return precAtomic
}

func paren(f Formula, min int) string {
	if precedence(f) < min {
		return "(" + f.String() + ")"
	}
	return f.String()
}

// Sequent is the goal state: prove Concl from Hyps. Sequents are the
// opaque payloads the engine carries around.
type Sequent struct {
	Hyps  []Formula
	Concl Formula
}

func (s Sequent) String() string {
	if len(s.Hyps) == 0 {
		return "|- " + s.Concl.String()
	}
	parts := make([]string, len(s.Hyps))
	for i, h := range s.Hyps {
		parts[i] = h.String()
	}
	return strings.Join(parts, ", ") + " |- " + s.Concl.String()
}

// Goal builds a sequent with no hypotheses.
func Goal(concl Formula) Sequent {
	return Sequent{Concl: concl}
}

// withHyp returns a copy of s with f appended to the hypotheses,
// skipping exact duplicates.
func (s Sequent) withHyp(f Formula) Sequent {
	for _, h := range s.Hyps {
		if h == f {
			return Sequent{Hyps: s.Hyps, Concl: s.Concl}
		}
	}
	hyps := make([]Formula, 0, len(s.Hyps)+1)
	hyps = append(hyps, s.Hyps...)
	hyps = append(hyps, f)
	return Sequent{Hyps: hyps, Concl: s.Concl}
}

// withoutHyp returns a copy of s with the hypothesis at index i removed.
func (s Sequent) withoutHyp(i int) Sequent {
	hyps := make([]Formula, 0, len(s.Hyps)-1)
	hyps = append(hyps, s.Hyps[:i]...)
	hyps = append(hyps, s.Hyps[i+1:]...)
	return Sequent{Hyps: hyps, Concl: s.Concl}
}

// hasHyp reports whether f occurs among the hypotheses.
func (s Sequent) hasHyp(f Formula) bool {
	for _, h := range s.Hyps {
		if h == f {
			return true
		}
	}
	return false
}
