package rules

import "fmt"

// Kind discriminates the closed set of transformer variants. Rule
// dispatch is a tagged switch over these kinds rather than open dynamic
// dispatch; domain-specific behavior goes through KindProc.
type Kind uint8

const (
	// KindTrivial discharges any goal unconditionally: one alternative
	// with no subgoals. Useful for axioms and as a test fixture.
	KindTrivial Kind = iota
	// KindRefute reports any goal as disproved unconditionally.
	KindRefute
	// KindProc runs an opaque callable supplied by the rule author.
	KindProc
)

// Transformer turns a goal state into zero or more alternative
// outcomes, or fails. The zero value is KindTrivial.
type Transformer struct {
	kind Kind
	fn   func(State) (*Application, error)
}

// Trivial returns the always-discharging transformer.
func Trivial() Transformer { return Transformer{kind: KindTrivial} }

// Refute returns the always-disproving transformer.
func Refute() Transformer { return Transformer{kind: KindRefute} }

// Proc wraps a custom transformer procedure. The procedure must return
// ErrNotApplicable (possibly wrapped) when the rule does not apply;
// every other error counts as a rule defect and is fatal to the search.
// The procedure must never return an outcome identical to its input:
// the engine does not detect no-op rewrites and a no-op normalization
// or safe rule loops forever.
func Proc(fn func(State) (*Application, error)) Transformer {
	return Transformer{kind: KindProc, fn: fn}
}

// Kind returns the transformer variant.
func (t Transformer) Kind() Kind { return t.kind }

func (t Transformer) apply(state State) (*Application, error) {
	switch t.kind {
	case KindTrivial:
		return Discharged(), nil
	case KindRefute:
		return &Application{Disproved: true}, nil
	case KindProc:
		if t.fn == nil {
			return nil, fmt.Errorf("proc transformer with nil procedure")
		}
		return t.fn(state)
	}
	return nil, fmt.Errorf("unknown transformer kind %d", t.kind)
}
