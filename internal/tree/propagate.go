package tree

// Provability and irrelevance propagation.
//
// The invariants maintained here:
//   - a goal is proved iff some non-irrelevant child rapp is proved;
//   - a rapp is proved iff all its child goals are proved (zero
//     children proves it trivially);
//   - a goal is unprovable iff it exhausted every rule phase and all
//     non-irrelevant child rapps are unprovable, or it was forced;
//   - a rapp is unprovable iff any child goal is unprovable;
//   - once a rapp is proved, its sibling rapps are irrelevant;
//   - once a rapp is unprovable, its child goals are irrelevant;
//   - irrelevance is monotone downward and never unset.

// MarkNormalized records that the normalization protocol reached
// quiescence on the goal.
func (t *Tree) MarkNormalized(id GoalID) {
	if t.goals[id].progress < Normalized {
		t.goals[id].progress = Normalized
	}
}

// MarkSafeExpanded records that the safe-rule phase ran on the goal,
// whether or not a safe rule applied. Safe rules are never retried.
func (t *Tree) MarkSafeExpanded(id GoalID) {
	if t.goals[id].progress < SafeExpanded {
		t.goals[id].progress = SafeExpanded
	}
}

// BumpUnsafeTried records one more attempted unsafe rule candidate.
func (t *Tree) BumpUnsafeTried(id GoalID) {
	t.goals[id].unsafeTried++
}

// MarkFullyExpanded records that every unsafe rule candidate has been
// attempted. If all child rapps already failed, the goal is now
// unprovable by exhaustion.
func (t *Tree) MarkFullyExpanded(id GoalID) {
	g := &t.goals[id]
	if g.progress < FullyExpanded {
		g.progress = FullyExpanded
	}
	t.finalizeExhausted(id)
}

// MarkGoalProved marks a goal proved outright (a normalization rule
// discharged it) and propagates upward.
func (t *Tree) MarkGoalProved(id GoalID) {
	t.goalProved(id)
}

// MarkGoalUnprovable marks a goal unprovable outright (a rule refuted
// it) and propagates upward.
func (t *Tree) MarkGoalUnprovable(id GoalID) {
	t.goalUnprovable(id)
}

// ForceUnprovable short-circuits expansion of a goal from outside the
// rule protocol, e.g. when the depth limit is hit. The goal counts as
// exhausted without any rule having been tried.
func (t *Tree) ForceUnprovable(id GoalID) {
	g := &t.goals[id]
	if g.provability != Undetermined {
		return
	}
	g.forced = true
	g.progress = FullyExpanded
	t.goalUnprovable(id)
}

// finalizeExhausted decides a goal that has no rule phases left: it is
// unprovable once every non-irrelevant child rapp is unprovable
// (vacuously, when it has no children at all).
func (t *Tree) finalizeExhausted(id GoalID) {
	g := &t.goals[id]
	if g.provability != Undetermined || g.progress != FullyExpanded {
		return
	}
	for _, rid := range g.children {
		r := &t.rapps[rid]
		if r.irrelevant {
			continue
		}
		if r.provability != Unprovable {
			return
		}
	}
	t.goalUnprovable(id)
}

func (t *Tree) goalProved(id GoalID) {
	g := &t.goals[id]
	if g.provability != Undetermined {
		return
	}
	g.provability = Proved

	// Remaining alternatives no longer matter.
	for _, rid := range g.children {
		if t.rapps[rid].provability != Proved {
			t.markRappIrrelevant(rid)
		}
	}

	if g.parent == NoParent {
		return
	}
	parent := &t.rapps[g.parent]
	if parent.provability != Undetermined {
		return
	}
	for _, gid := range parent.children {
		if t.goals[gid].provability != Proved {
			return
		}
	}
	t.rappProved(g.parent)
}

func (t *Tree) rappProved(id RappID) {
	r := &t.rapps[id]
	if r.provability != Undetermined {
		return
	}
	r.provability = Proved

	// One proved alternative settles the parent goal; its sibling
	// rapps become irrelevant.
	for _, sib := range t.goals[r.parent].children {
		if sib != id {
			t.markRappIrrelevant(sib)
		}
	}
	t.goalProved(r.parent)
}

func (t *Tree) goalUnprovable(id GoalID) {
	g := &t.goals[id]
	if g.provability != Undetermined {
		return
	}
	g.provability = Unprovable

	// The goal is decided; any alternative still in flight is dead work.
	for _, rid := range g.children {
		if t.rapps[rid].provability == Undetermined {
			t.markRappIrrelevant(rid)
		}
	}

	if g.parent != NoParent {
		t.rappUnprovable(g.parent)
	}
}

func (t *Tree) rappUnprovable(id RappID) {
	r := &t.rapps[id]
	if r.provability != Undetermined {
		return
	}
	r.provability = Unprovable

	// This branch failed; whatever remains below it is dead work.
	for _, gid := range r.children {
		t.markGoalIrrelevant(gid)
	}
	t.finalizeExhausted(r.parent)
}

func (t *Tree) markGoalIrrelevant(id GoalID) {
	g := &t.goals[id]
	if g.irrelevant {
		return
	}
	g.irrelevant = true
	for _, rid := range g.children {
		t.markRappIrrelevant(rid)
	}
}

func (t *Tree) markRappIrrelevant(id RappID) {
	r := &t.rapps[id]
	if r.irrelevant {
		return
	}
	r.irrelevant = true
	for _, gid := range r.children {
		t.markGoalIrrelevant(gid)
	}
}
