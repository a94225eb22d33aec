package logic

import (
	"fmt"

	"github.com/Peiyang-Song/aesop/internal/rules"
)

// Rules returns the propositional rule set. Every engine feature is
// exercised: negative- and positive-penalty normalization, safe rules
// with single and multiple subgoals, and unsafe rules with one or many
// alternatives.
func Rules() *rules.Set {
	return rules.NewSet(
		rules.Rule{Name: "norm/not-not", Phase: rules.PhaseNorm, Penalty: -5, Proc: rules.Proc(notNot)},
		rules.Rule{Name: "norm/not-concl", Phase: rules.PhaseNorm, Penalty: 5, Proc: rules.Proc(notConcl)},

		rules.Rule{Name: "safe/assumption", Phase: rules.PhaseSafe, Penalty: 0, Proc: rules.Proc(assumption)},
		rules.Rule{Name: "safe/intro-implies", Phase: rules.PhaseSafe, Penalty: 5, Proc: rules.Proc(introImplies)},
		rules.Rule{Name: "safe/split-and", Phase: rules.PhaseSafe, Penalty: 10, Proc: rules.Proc(splitAnd)},
		rules.Rule{Name: "safe/elim-and-hyp", Phase: rules.PhaseSafe, Penalty: 15, Proc: rules.Proc(elimAndHyp)},
		rules.Rule{Name: "safe/elim-or-hyp", Phase: rules.PhaseSafe, Penalty: 20, Proc: rules.Proc(elimOrHyp)},

		rules.Rule{Name: "unsafe/elim-implies-hyp", Phase: rules.PhaseUnsafe, Probability: 85, Proc: rules.Proc(elimImpliesHyp)},
		rules.Rule{Name: "unsafe/split-or", Phase: rules.PhaseUnsafe, Probability: 50, Proc: rules.Proc(splitOr)},
		rules.Rule{Name: "unsafe/by-contradiction", Phase: rules.PhaseUnsafe, Probability: 25, Proc: rules.Proc(byContradiction)},
	)
}

func asSequent(state rules.State) (Sequent, error) {
	s, ok := state.(Sequent)
	if !ok {
		return Sequent{}, fmt.Errorf("logic rules want a Sequent state, got %T", state)
	}
	return s, nil
}

// notNot strips a doubly negated conclusion: !!A becomes A.
func notNot(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	outer, ok := s.Concl.(Not)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	inner, ok := outer.F.(Not)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	return rules.Rewrite(Sequent{Hyps: s.Hyps, Concl: inner.F}), nil
}

// notConcl turns a negated conclusion into a refutation obligation:
// from `Γ |- !A` to `Γ, A |- false`. The two are equiprovable, so this
// is a normalization rewrite, not an expansion.
func notConcl(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	n, ok := s.Concl.(Not)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	next := Sequent{Hyps: s.Hyps, Concl: False}.withHyp(n.F)
	return rules.Rewrite(next), nil
}

// assumption discharges a goal whose conclusion is immediate: true, a
// hypothesis, or anything under contradictory hypotheses.
func assumption(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	if s.Concl == True || s.hasHyp(s.Concl) || s.hasHyp(False) {
		return rules.Discharged(), nil
	}
	for _, h := range s.Hyps {
		if n, ok := h.(Not); ok && s.hasHyp(n.F) {
			return rules.Discharged(), nil
		}
	}
	return nil, rules.ErrNotApplicable
}

// introImplies moves an implication antecedent into the hypotheses.
func introImplies(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	imp, ok := s.Concl.(Implies)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	next := Sequent{Hyps: s.Hyps, Concl: imp.R}.withHyp(imp.L)
	return &rules.Application{Alternatives: []rules.Outcome{{Subgoals: []rules.State{next}}}}, nil
}

// splitAnd proves a conjunction by proving both halves: one outcome
// with two subgoals.
func splitAnd(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	and, ok := s.Concl.(And)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	left := Sequent{Hyps: s.Hyps, Concl: and.L}
	right := Sequent{Hyps: s.Hyps, Concl: and.R}
	return &rules.Application{Alternatives: []rules.Outcome{
		{Subgoals: []rules.State{left, right}},
	}}, nil
}

// elimAndHyp splits the first conjunctive hypothesis into its parts.
func elimAndHyp(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	for i, h := range s.Hyps {
		and, ok := h.(And)
		if !ok {
			continue
		}
		next := s.withoutHyp(i).withHyp(and.L).withHyp(and.R)
		return &rules.Application{Alternatives: []rules.Outcome{
			{Subgoals: []rules.State{next}},
		}}, nil
	}
	return nil, rules.ErrNotApplicable
}

// elimOrHyp cases on the first disjunctive hypothesis: both branches
// must be proved, so this is one outcome with two subgoals.
func elimOrHyp(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	for i, h := range s.Hyps {
		or, ok := h.(Or)
		if !ok {
			continue
		}
		rest := s.withoutHyp(i)
		return &rules.Application{Alternatives: []rules.Outcome{
			{Subgoals: []rules.State{rest.withHyp(or.L), rest.withHyp(or.R)}},
		}}, nil
	}
	return nil, rules.ErrNotApplicable
}

// elimImpliesHyp spends the first implication hypothesis: prove its
// antecedent, then continue with its consequent. Dropping the
// hypothesis can lose provability, hence unsafe.
func elimImpliesHyp(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	for i, h := range s.Hyps {
		imp, ok := h.(Implies)
		if !ok {
			continue
		}
		rest := s.withoutHyp(i)
		antecedent := Sequent{Hyps: rest.Hyps, Concl: imp.L}
		continued := rest.withHyp(imp.R)
		return &rules.Application{Alternatives: []rules.Outcome{
			{Subgoals: []rules.State{antecedent, continued}},
		}}, nil
	}
	return nil, rules.ErrNotApplicable
}

// splitOr commits to one side of a disjunctive conclusion: two
// alternatives, each with a single subgoal.
func splitOr(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	or, ok := s.Concl.(Or)
	if !ok {
		return nil, rules.ErrNotApplicable
	}
	return &rules.Application{Alternatives: []rules.Outcome{
		{Subgoals: []rules.State{Sequent{Hyps: s.Hyps, Concl: or.L}}},
		{Subgoals: []rules.State{Sequent{Hyps: s.Hyps, Concl: or.R}}},
	}}, nil
}

// byContradiction assumes the negated conclusion and hunts for falsity.
// Not applicable when the conclusion already is false, which also keeps
// it from feeding on its own output.
func byContradiction(state rules.State) (*rules.Application, error) {
	s, err := asSequent(state)
	if err != nil {
		return nil, err
	}
	if s.Concl == False {
		return nil, rules.ErrNotApplicable
	}
	next := Sequent{Hyps: s.Hyps, Concl: False}.withHyp(Not{F: s.Concl})
	return &rules.Application{Alternatives: []rules.Outcome{
		{Subgoals: []rules.State{next}},
	}}, nil
}
