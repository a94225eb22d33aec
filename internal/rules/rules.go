// Package rules defines the rule abstraction consumed by the search
// engine: phases, ordering weights, the goal-state transformer, and the
// interfaces the engine uses to obtain candidate rules and to run the
// bulk simplification pass. How a rule decides whether it applies, and
// what a goal state looks like inside, is entirely the rule author's
// business; the engine treats states as opaque values.
package rules

import (
	"errors"
	"fmt"
	"sort"
)

// State is an opaque goal payload. The engine never inspects it, it
// only hands it to transformers and carries the results around.
type State = any

// ErrNotApplicable is the expected failure: the rule judged itself
// inapplicable to the goal. The engine recovers locally and moves on to
// the next candidate. Any other error from a transformer is treated as
// a defect in the rule and aborts the whole search.
var ErrNotApplicable = errors.New("rule not applicable")

// Phase governs when a rule is tried and how the engine backtracks
// over it.
type Phase uint8

const (
	// PhaseNorm rules rewrite a goal in place before anything else is
	// tried. They must make progress: a normalization rule returning
	// its input unchanged loops the engine forever.
	PhaseNorm Phase = iota
	// PhaseSafe rules never need backtracking: the first success per
	// goal is committed and safe rules are not retried.
	PhaseSafe
	// PhaseUnsafe rules may lead the search astray; each is tried at
	// most once per goal and the goal stays active while untried
	// unsafe rules remain.
	PhaseUnsafe
)

func (p Phase) String() string {
	switch p {
	case PhaseNorm:
		return "norm"
	case PhaseSafe:
		return "safe"
	case PhaseUnsafe:
		return "unsafe"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Outcome is one alternative a rule produced: an ordered list of new
// goal states. An empty list discharges the goal outright.
type Outcome struct {
	Subgoals []State
}

// Application is a successful transformer run. Alternatives become
// separate rule applications in the tree ("multi-rule" semantics).
// Disproved reports that the rule refuted the goal instead.
type Application struct {
	Alternatives []Outcome
	Disproved    bool
}

// Rewrite is a convenience constructor for the common single-outcome,
// single-subgoal case.
func Rewrite(state State) *Application {
	return &Application{Alternatives: []Outcome{{Subgoals: []State{state}}}}
}

// Discharged is a convenience constructor for a single empty outcome,
// i.e. the rule proved the goal.
func Discharged() *Application {
	return &Application{Alternatives: []Outcome{{}}}
}

// Rule is one candidate rewrite. Penalty orders normalization and safe
// rules (lower tried first, negative penalty normalization rules run
// before the bulk simplifier); Probability is the unsafe success
// estimate in percent (higher tried first) and degrades the priority of
// subgoals it creates.
type Rule struct {
	Name        string
	Phase       Phase
	Penalty     int
	Probability int
	Proc        Transformer
}

// Apply runs the rule's transformer against a goal state.
func (r Rule) Apply(state State) (*Application, error) {
	return r.Proc.apply(state)
}

// Source yields candidate rules for a goal in phase order: ascending
// penalty for normalization and safe rules, descending probability for
// unsafe rules. Indexing rules by goal shape lives behind this
// interface, outside the engine.
type Source interface {
	Candidates(state State, phase Phase) []Rule
}

// Simplifier is the bulk simplification pass run once per normalization
// cycle. It returns the new state and whether anything changed.
type Simplifier interface {
	Simplify(state State) (State, bool, error)
}

// NopSimplifier never changes anything. Used when a rule set has no
// bulk pass.
type NopSimplifier struct{}

func (NopSimplifier) Simplify(state State) (State, bool, error) {
	return state, false, nil
}

// Set is a fixed rule list implementing Source. Candidates ignore the
// goal state and return every rule of the phase in deterministic order;
// penalty and probability ties break on the rule name.
type Set struct {
	byPhase map[Phase][]Rule
}

// NewSet builds a Set from the given rules.
func NewSet(list ...Rule) *Set {
	s := &Set{byPhase: make(map[Phase][]Rule)}
	for _, r := range list {
		s.byPhase[r.Phase] = append(s.byPhase[r.Phase], r)
	}
	for phase, rs := range s.byPhase {
		ordered := rs
		switch phase {
		case PhaseUnsafe:
			sort.SliceStable(ordered, func(i, j int) bool {
				if ordered[i].Probability != ordered[j].Probability {
					return ordered[i].Probability > ordered[j].Probability
				}
				return ordered[i].Name < ordered[j].Name
			})
		default:
			sort.SliceStable(ordered, func(i, j int) bool {
				if ordered[i].Penalty != ordered[j].Penalty {
					return ordered[i].Penalty < ordered[j].Penalty
				}
				return ordered[i].Name < ordered[j].Name
			})
		}
	}
	return s
}

// Candidates implements Source.
func (s *Set) Candidates(_ State, phase Phase) []Rule {
	return s.byPhase[phase]
}
