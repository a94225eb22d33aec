package search

import (
	"github.com/Peiyang-Song/aesop/internal/tree"
)

// Safe-prefix recovery. On limit-reached or root-unprovable the main
// tree is order-dependent: a goal may sit unprovable only because a
// sibling failed first, without ever having been expanded itself.
// Recovery replays normalization and safe rules only, from the root's
// current state, on a fresh tree. Safe rules need no backtracking, so
// the replay is canonical: the same residual obligations come out no
// matter which exploration order the failed run took.

// recoverSafePrefix builds the canonical safe prefix and collects its
// unresolved leaves. When the prefix alone proves the root (the main
// run was cut off with safe work pending) the witness is returned
// instead.
func (s *Searcher) recoverSafePrefix() ([]Residual, *Witness, error) {
	rt := tree.New(s.t.Goal(s.t.Root()).State())

	// Plain FIFO walk; ordering cannot matter here, that is the point.
	pending := []tree.GoalID{rt.Root()}
	for len(pending) > 0 {
		gid := pending[0]
		pending = pending[1:]

		if !rt.Goal(gid).Active() {
			continue
		}
		if err := s.normalizeGoal(rt, gid); err != nil {
			// A rule fault during recovery is as fatal as during
			// the main run.
			return nil, nil, err
		}
		if !rt.Goal(gid).Active() {
			continue
		}
		created, err := s.safeStep(rt, gid)
		if err != nil {
			return nil, nil, err
		}
		pending = append(pending, created...)
	}

	if rt.Goal(rt.Root()).Provability() == tree.Proved {
		w, err := selectWitness(rt, rt.Root())
		if err != nil {
			return nil, nil, err
		}
		return nil, w, nil
	}

	var residuals []Residual
	s.collectResiduals(rt, rt.Root(), &residuals)
	return residuals, nil, nil
}

// collectResiduals walks the prefix tree gathering undecided leaves: a
// goal with no rule application still worth following is an obligation
// the caller keeps.
func (s *Searcher) collectResiduals(t *tree.Tree, gid tree.GoalID, out *[]Residual) {
	g := t.Goal(gid)
	if g.Provability() == tree.Proved || g.Irrelevant() {
		return
	}

	descended := false
	for _, rid := range g.Children() {
		r := t.Rapp(rid)
		if r.Irrelevant() || r.Provability() == tree.Unprovable {
			continue
		}
		descended = true
		for _, kid := range r.Children() {
			s.collectResiduals(t, kid, out)
		}
	}
	if !descended {
		*out = append(*out, Residual{
			Goal:     gid,
			State:    g.State(),
			Depth:    g.Depth(),
			Priority: g.Priority(),
		})
	}
}
