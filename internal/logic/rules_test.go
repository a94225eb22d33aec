package logic

import (
	"errors"
	"testing"

	"github.com/Peiyang-Song/aesop/internal/rules"
)

func mustSeq(t *testing.T, input string) Sequent {
	t.Helper()
	s, err := ParseSequent(input)
	if err != nil {
		t.Fatalf("ParseSequent(%q): %v", input, err)
	}
	return s
}

func applyOne(t *testing.T, fn func(rules.State) (*rules.Application, error), input string) *rules.Application {
	t.Helper()
	app, err := fn(mustSeq(t, input))
	if err != nil {
		t.Fatalf("rule on %q: %v", input, err)
	}
	return app
}

func onlySubgoal(t *testing.T, app *rules.Application) Sequent {
	t.Helper()
	if len(app.Alternatives) != 1 || len(app.Alternatives[0].Subgoals) != 1 {
		t.Fatalf("want a single subgoal, got %+v", app)
	}
	return app.Alternatives[0].Subgoals[0].(Sequent)
}

func TestNotNot(t *testing.T) {
	got := onlySubgoal(t, applyOne(t, notNot, "!!a"))
	if got.Concl != Atom("a") {
		t.Errorf("concl = %v, want a", got.Concl)
	}
	if _, err := notNot(mustSeq(t, "!a")); !errors.Is(err, rules.ErrNotApplicable) {
		t.Errorf("single negation should not apply, got %v", err)
	}
}

func TestNotConcl(t *testing.T) {
	got := onlySubgoal(t, applyOne(t, notConcl, "b |- !a"))
	if got.String() != "b, a |- false" {
		t.Errorf("rewrite = %q, want %q", got.String(), "b, a |- false")
	}
}

func TestAssumption(t *testing.T) {
	discharged := []string{
		"|- true",
		"a |- a",
		"false |- b",
		"a, !a |- b",
	}
	for _, input := range discharged {
		app := applyOne(t, assumption, input)
		if len(app.Alternatives) != 1 || len(app.Alternatives[0].Subgoals) != 0 {
			t.Errorf("assumption on %q should discharge, got %+v", input, app)
		}
	}

	for _, input := range []string{"|- a", "b |- a", "!a |- b"} {
		if _, err := assumption(mustSeq(t, input)); !errors.Is(err, rules.ErrNotApplicable) {
			t.Errorf("assumption on %q should not apply, got %v", input, err)
		}
	}
}

func TestIntroImplies(t *testing.T) {
	got := onlySubgoal(t, applyOne(t, introImplies, "|- a -> b"))
	if got.String() != "a |- b" {
		t.Errorf("rewrite = %q, want %q", got.String(), "a |- b")
	}
}

func TestSplitAnd(t *testing.T) {
	app := applyOne(t, splitAnd, "h |- a & b")
	if len(app.Alternatives) != 1 {
		t.Fatalf("split-and must be a single outcome, got %d", len(app.Alternatives))
	}
	subs := app.Alternatives[0].Subgoals
	if len(subs) != 2 {
		t.Fatalf("want 2 subgoals, got %d", len(subs))
	}
	if subs[0].(Sequent).String() != "h |- a" || subs[1].(Sequent).String() != "h |- b" {
		t.Errorf("subgoals = %v, %v", subs[0], subs[1])
	}
}

func TestElimAndHyp(t *testing.T) {
	got := onlySubgoal(t, applyOne(t, elimAndHyp, "a & b |- c"))
	if got.String() != "a, b |- c" {
		t.Errorf("rewrite = %q, want %q", got.String(), "a, b |- c")
	}
}

func TestElimOrHyp(t *testing.T) {
	app := applyOne(t, elimOrHyp, "a | b |- c")
	subs := app.Alternatives[0].Subgoals
	if len(app.Alternatives) != 1 || len(subs) != 2 {
		t.Fatalf("elim-or-hyp wants one outcome with both cases, got %+v", app)
	}
	if subs[0].(Sequent).String() != "a |- c" || subs[1].(Sequent).String() != "b |- c" {
		t.Errorf("cases = %v, %v", subs[0], subs[1])
	}
}

func TestElimImpliesHyp(t *testing.T) {
	app := applyOne(t, elimImpliesHyp, "a -> b |- c")
	subs := app.Alternatives[0].Subgoals
	if len(subs) != 2 {
		t.Fatalf("want antecedent and continuation, got %+v", app)
	}
	if subs[0].(Sequent).String() != "|- a" {
		t.Errorf("antecedent = %v", subs[0])
	}
	if subs[1].(Sequent).String() != "b |- c" {
		t.Errorf("continuation = %v", subs[1])
	}
}

func TestSplitOr_TwoAlternatives(t *testing.T) {
	app := applyOne(t, splitOr, "|- a | b")
	if len(app.Alternatives) != 2 {
		t.Fatalf("split-or must offer both sides, got %d alternatives", len(app.Alternatives))
	}
	left := app.Alternatives[0].Subgoals[0].(Sequent)
	right := app.Alternatives[1].Subgoals[0].(Sequent)
	if left.Concl != Atom("a") || right.Concl != Atom("b") {
		t.Errorf("alternatives = %v, %v", left, right)
	}
}

func TestByContradiction(t *testing.T) {
	got := onlySubgoal(t, applyOne(t, byContradiction, "|- a"))
	if got.String() != "!a |- false" {
		t.Errorf("rewrite = %q, want %q", got.String(), "!a |- false")
	}

	// Must not apply to its own output, or the search never bottoms out.
	if _, err := byContradiction(mustSeq(t, "!a |- false")); !errors.Is(err, rules.ErrNotApplicable) {
		t.Errorf("by-contradiction on a false conclusion should not apply, got %v", err)
	}
}

func TestRules_RejectForeignState(t *testing.T) {
	for _, r := range Rules().Candidates(nil, rules.PhaseSafe) {
		if _, err := r.Apply("not a sequent"); err == nil || errors.Is(err, rules.ErrNotApplicable) {
			t.Errorf("rule %s should fail hard on a foreign state, got %v", r.Name, err)
		}
	}
}
