package search

import (
	"fmt"

	"github.com/Peiyang-Song/aesop/internal/tree"
)

// selectWitness walks a proved tree picking one witnessing rule
// application per proved goal: the first proved rapp in child order
// (deterministic, otherwise unspecified). Every subgoal of the chosen
// rapp must itself be proved; anything else is a violated invariant and
// signals an engine bug, not a property of the input.
func selectWitness(t *tree.Tree, gid tree.GoalID) (*Witness, error) {
	g := t.Goal(gid)
	if g.Provability() != tree.Proved {
		return nil, fmt.Errorf("%w: witness requested for %s goal g%d",
			ErrInternal, g.Provability(), gid)
	}

	for _, rid := range g.Children() {
		r := t.Rapp(rid)
		if r.Provability() != tree.Proved {
			continue
		}
		w := &Witness{
			Goal:  gid,
			State: g.State(),
			Rule:  r.Rule(),
		}
		for _, kid := range r.Children() {
			sub, err := selectWitness(t, kid)
			if err != nil {
				return nil, err
			}
			w.Subproofs = append(w.Subproofs, sub)
		}
		return w, nil
	}
	return nil, fmt.Errorf("%w: proved goal g%d has no proved rule application",
		ErrInternal, gid)
}
