package logic

import (
	"fmt"

	"github.com/Peiyang-Song/aesop/internal/rules"
)

// Simplifier is the bulk pass run once per normalization cycle: it
// constant-folds every formula in the sequent, drops trivially true
// hypotheses and deduplicates the rest.
type Simplifier struct{}

var _ rules.Simplifier = Simplifier{}

// Simplify implements rules.Simplifier.
func (Simplifier) Simplify(state rules.State) (rules.State, bool, error) {
	s, ok := state.(Sequent)
	if !ok {
		return nil, false, fmt.Errorf("logic simplifier wants a Sequent state, got %T", state)
	}

	changed := false
	concl, c := fold(s.Concl)
	changed = changed || c

	hyps := make([]Formula, 0, len(s.Hyps))
	for _, h := range s.Hyps {
		folded, c := fold(h)
		if c {
			changed = true
		}
		if folded == True {
			changed = true
			continue
		}
		dup := false
		for _, seen := range hyps {
			if seen == folded {
				dup = true
				break
			}
		}
		if dup {
			changed = true
			continue
		}
		hyps = append(hyps, folded)
	}

	if !changed {
		return state, false, nil
	}
	return Sequent{Hyps: hyps, Concl: concl}, true, nil
}

// fold rewrites a formula bottom-up with the usual constant identities
// and double-negation elimination.
func fold(f Formula) (Formula, bool) {
	switch v := f.(type) {
	case Not:
		inner, changed := fold(v.F)
		switch iv := inner.(type) {
		case Const:
			return Const(!bool(iv)), true
		case Not:
			return iv.F, true
		}
		if changed {
			return Not{F: inner}, true
		}
		return f, false

	case And:
		l, lc := fold(v.L)
		r, rc := fold(v.R)
		switch {
		case l == False || r == False:
			return False, true
		case l == True:
			return r, true
		case r == True:
			return l, true
		}
		if lc || rc {
			return And{L: l, R: r}, true
		}
		return f, false

	case Or:
		l, lc := fold(v.L)
		r, rc := fold(v.R)
		switch {
		case l == True || r == True:
			return True, true
		case l == False:
			return r, true
		case r == False:
			return l, true
		}
		if lc || rc {
			return Or{L: l, R: r}, true
		}
		return f, false

	case Implies:
		l, lc := fold(v.L)
		r, rc := fold(v.R)
		switch {
		case l == False || r == True:
			return True, true
		case l == True:
			return r, true
		}
		if lc || rc {
			return Implies{L: l, R: r}, true
		}
		return f, false
	}
	return f, false
}
