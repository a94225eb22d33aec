package search

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Peiyang-Song/aesop/internal/rules"
	"github.com/Peiyang-Song/aesop/internal/tree"
)

// Rule invocation: each function here adapts one rule phase onto the
// tree. All of them are parametrized over the tree so that safe-prefix
// recovery can replay them on its own tree.

// applyRule runs one transformer, containing panics and classifying
// errors. ErrNotApplicable passes through untouched (expected failure);
// everything else comes back wrapped in ErrRuleFault.
func (s *Searcher) applyRule(r rules.Rule, state rules.State) (app *rules.Application, err error) {
	defer func() {
		if p := recover(); p != nil {
			app = nil
			err = fmt.Errorf("%w: rule %q panicked: %v", ErrRuleFault, r.Name, p)
		}
	}()

	app, err = r.Apply(state)
	if err != nil {
		if errors.Is(err, rules.ErrNotApplicable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: rule %q: %v", ErrRuleFault, r.Name, err)
	}
	if app == nil || (len(app.Alternatives) == 0 && !app.Disproved) {
		return nil, fmt.Errorf("%w: rule %q succeeded with no alternatives", ErrRuleFault, r.Name)
	}
	return app, nil
}

// attach materializes a successful application: one rapp per
// alternative, child goals at the given priority. It returns the new
// goals that are still active after propagation (an empty alternative
// proves the goal on the spot and prunes its siblings).
func (s *Searcher) attach(t *tree.Tree, gid tree.GoalID, r rules.Rule, app *rules.Application, priority tree.Percent) []tree.GoalID {
	var created []tree.GoalID
	for alt, outcome := range app.Alternatives {
		_, kids := t.AttachRapp(gid, tree.RuleRef{Name: r.Name, Alt: alt}, outcome.Subgoals, priority)
		created = append(created, kids...)
	}
	s.log.Debug("rule applied",
		zap.Int32("goal", int32(gid)),
		zap.String("rule", r.Name),
		zap.String("phase", r.Phase.String()),
		zap.Int("alternatives", len(app.Alternatives)),
		zap.Int("subgoals", len(created)))

	active := created[:0]
	for _, kid := range created {
		if t.Goal(kid).Active() {
			active = append(active, kid)
		}
	}
	return active
}

// normalizeGoal runs the normalization protocol to quiescence: repeat
// { negative-penalty rules in ascending order, restarting from the
// first on every success; one bulk simplification pass; non-negative
// rules ascending, restarting the whole cycle on success } until a full
// pass changes nothing. Rewrites replace the goal's payload in place.
// A normalization rule may also discharge the goal (recorded as a rapp
// so the witness selector sees it) or refute it outright.
func (s *Searcher) normalizeGoal(t *tree.Tree, gid tree.GoalID) error {
	state := t.Goal(gid).State()
	for {
		changed := false

	negative:
		for {
			for _, r := range s.source.Candidates(state, rules.PhaseNorm) {
				if r.Penalty >= 0 {
					continue
				}
				next, decided, err := s.normalizeOnce(t, gid, r, state)
				if err != nil {
					if errors.Is(err, rules.ErrNotApplicable) {
						continue
					}
					return err
				}
				if decided {
					return nil
				}
				state = next
				changed = true
				continue negative
			}
			break
		}

		simplified, simpChanged, err := s.simp.Simplify(state)
		if err != nil {
			return fmt.Errorf("%w: simplifier: %v", ErrRuleFault, err)
		}
		if simpChanged {
			state = simplified
			t.ReplaceState(gid, state)
			changed = true
		}

		for _, r := range s.source.Candidates(state, rules.PhaseNorm) {
			if r.Penalty < 0 {
				continue
			}
			next, decided, err := s.normalizeOnce(t, gid, r, state)
			if err != nil {
				if errors.Is(err, rules.ErrNotApplicable) {
					continue
				}
				return err
			}
			if decided {
				return nil
			}
			state = next
			changed = true
			break
		}

		if !changed {
			break
		}
	}
	t.MarkNormalized(gid)
	return nil
}

// normalizeOnce applies a single normalization rule. It returns the
// rewritten state, or decided=true when the rule settled the goal's
// provability. Normalization rules must produce exactly one alternative
// with at most one subgoal; anything else is a rule defect.
func (s *Searcher) normalizeOnce(t *tree.Tree, gid tree.GoalID, r rules.Rule, state rules.State) (rules.State, bool, error) {
	app, err := s.applyRule(r, state)
	if err != nil {
		return nil, false, err
	}
	if app.Disproved {
		s.log.Debug("normalization refuted goal",
			zap.Int32("goal", int32(gid)), zap.String("rule", r.Name))
		t.MarkGoalUnprovable(gid)
		return nil, true, nil
	}
	if len(app.Alternatives) != 1 {
		return nil, false, fmt.Errorf("%w: normalization rule %q returned %d alternatives",
			ErrRuleFault, r.Name, len(app.Alternatives))
	}
	subgoals := app.Alternatives[0].Subgoals
	switch len(subgoals) {
	case 0:
		// Discharged outright; attach the proving rapp so the
		// application is counted and witnessed.
		s.attach(t, gid, r, app, t.Goal(gid).Priority())
		return nil, true, nil
	case 1:
		t.ReplaceState(gid, subgoals[0])
		s.log.Debug("normalization rewrite",
			zap.Int32("goal", int32(gid)), zap.String("rule", r.Name))
		return subgoals[0], false, nil
	}
	return nil, false, fmt.Errorf("%w: normalization rule %q returned %d subgoals",
		ErrRuleFault, r.Name, len(subgoals))
}

// safeStep tries safe rules in ascending penalty order and commits the
// first success; child goals inherit the parent priority unchanged. The
// goal counts as safe-expanded afterwards whether or not a rule
// applied, and safe rules are never retried on it.
func (s *Searcher) safeStep(t *tree.Tree, gid tree.GoalID) ([]tree.GoalID, error) {
	state := t.Goal(gid).State()
	for _, r := range s.source.Candidates(state, rules.PhaseSafe) {
		app, err := s.applyRule(r, state)
		if err != nil {
			if errors.Is(err, rules.ErrNotApplicable) {
				continue
			}
			return nil, err
		}
		if app.Disproved {
			t.MarkGoalUnprovable(gid)
			return nil, nil
		}
		created := s.attach(t, gid, r, app, t.Goal(gid).Priority())
		t.MarkSafeExpanded(gid)
		return created, nil
	}
	t.MarkSafeExpanded(gid)
	return nil, nil
}

// unsafeStep tries exactly one untried unsafe rule, the one with the
// highest remaining success probability. Child goals get the parent
// priority degraded by the rule's probability. The goal stays active
// while untried unsafe rules remain; once the last candidate was
// attempted it is fully expanded, which may settle it unprovable by
// exhaustion.
func (s *Searcher) unsafeStep(t *tree.Tree, gid tree.GoalID) ([]tree.GoalID, error) {
	goal := t.Goal(gid)
	state := goal.State()
	candidates := s.source.Candidates(state, rules.PhaseUnsafe)

	idx := goal.UnsafeTried()
	if idx >= len(candidates) {
		t.MarkFullyExpanded(gid)
		return nil, nil
	}

	r := candidates[idx]
	t.BumpUnsafeTried(gid)

	app, err := s.applyRule(r, state)
	if err != nil {
		if errors.Is(err, rules.ErrNotApplicable) {
			if idx+1 >= len(candidates) {
				t.MarkFullyExpanded(gid)
			}
			return nil, nil
		}
		return nil, err
	}
	if app.Disproved {
		t.MarkGoalUnprovable(gid)
		return nil, nil
	}

	degraded := goal.Priority() * tree.Percent(r.Probability) / 100
	created := s.attach(t, gid, r, app, degraded)
	if idx+1 >= len(candidates) {
		t.MarkFullyExpanded(gid)
	}
	return created, nil
}
