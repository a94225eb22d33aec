// Package tree implements the AND-OR search tree for the proof search
// engine. Goals are OR-nodes (proved when one child rule application
// succeeds), rule applications ("rapps") are AND-nodes (proved when all
// child goals succeed). Nodes live in an arena and are addressed by
// stable integer handles, so parent/child links are plain ids with O(1)
// navigation in both directions and no reference cycles.
package tree

import "fmt"

// GoalID is a stable handle for a goal node. Ids are dense indices into
// the tree's arena and are unique for the lifetime of the tree.
type GoalID int32

// RappID is a stable handle for a rule application node.
type RappID int32

// NoParent marks the root goal, which is not owned by any rapp.
const NoParent RappID = -1

// Percent is a probability in [0, 100]. Goal priorities and unsafe rule
// success estimates are both expressed as Percent.
type Percent int

// Clamp bounds p to the valid [0, 100] range.
func (p Percent) Clamp() Percent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Progress tracks how far the engine has advanced a goal through the
// rule phases. Each loop iteration resumes a goal at its current
// progress rather than suspending control flow.
type Progress uint8

const (
	// Unnormalized means no rule has touched the goal yet.
	Unnormalized Progress = iota
	// Normalized means the normalization protocol ran to quiescence.
	Normalized
	// SafeExpanded means safe rules were attempted (successfully or not).
	SafeExpanded
	// FullyExpanded means every unsafe rule was also attempted.
	FullyExpanded
)

func (p Progress) String() string {
	switch p {
	case Unnormalized:
		return "unnormalized"
	case Normalized:
		return "normalized"
	case SafeExpanded:
		return "safe-expanded"
	case FullyExpanded:
		return "fully-expanded"
	}
	return fmt.Sprintf("progress(%d)", uint8(p))
}

// Provability is the three-valued proof status of a goal or rapp.
type Provability uint8

const (
	Undetermined Provability = iota
	Proved
	Unprovable
)

func (p Provability) String() string {
	switch p {
	case Undetermined:
		return "undetermined"
	case Proved:
		return "proved"
	case Unprovable:
		return "unprovable"
	}
	return fmt.Sprintf("provability(%d)", uint8(p))
}

// RuleRef identifies which rule, and which alternative of a multi-outcome
// rule, produced a rapp. It is read-only after the rapp is created.
type RuleRef struct {
	Name string
	Alt  int
}

func (r RuleRef) String() string {
	if r.Alt == 0 {
		return r.Name
	}
	return fmt.Sprintf("%s#%d", r.Name, r.Alt)
}

// Goal is a proof obligation. Goals are exclusively owned by their
// parent rapp (or by the tree for the root) and own their child rapps.
type Goal struct {
	id       GoalID
	parent   RappID
	state    any
	priority Percent
	depth    int

	progress    Progress
	provability Provability
	irrelevant  bool
	forced      bool

	// unsafeTried counts how many unsafe rule candidates have been
	// attempted against this goal (one per visit).
	unsafeTried int

	// lastVisit is the loop iteration that last touched this goal.
	// Diagnostics only; never read by the algorithm.
	lastVisit uint64

	children []RappID
}

// ID returns the goal's stable handle.
func (g *Goal) ID() GoalID { return g.id }

// Parent returns the owning rapp, or NoParent for the root.
func (g *Goal) Parent() RappID { return g.parent }

// State returns the opaque goal payload. The tree never inspects it.
func (g *Goal) State() any { return g.state }

// Priority is the goal's provability estimate inherited at creation.
func (g *Goal) Priority() Percent { return g.priority }

// Depth is the number of ancestor rapps above this goal.
func (g *Goal) Depth() int { return g.depth }

// Progress reports how far rule expansion has advanced.
func (g *Goal) Progress() Progress { return g.progress }

// Provability reports the goal's proof status.
func (g *Goal) Provability() Provability { return g.provability }

// Irrelevant reports whether the goal's outcome can no longer affect
// the overall search result.
func (g *Goal) Irrelevant() bool { return g.irrelevant }

// Forced reports whether the goal was forced unprovable externally
// (e.g. by the depth limit) rather than by rule exhaustion.
func (g *Goal) Forced() bool { return g.forced }

// UnsafeTried returns how many unsafe rule candidates were attempted.
func (g *Goal) UnsafeTried() int { return g.unsafeTried }

// LastVisit returns the iteration recorded by SetVisited.
func (g *Goal) LastVisit() uint64 { return g.lastVisit }

// Children returns the goal's child rapps in creation order. The slice
// is owned by the tree and must not be mutated.
func (g *Goal) Children() []RappID { return g.children }

// Active reports whether the goal is still eligible for rule attempts:
// undetermined, relevant, and not yet fully expanded.
func (g *Goal) Active() bool {
	return g.provability == Undetermined && !g.irrelevant && g.progress != FullyExpanded
}

// Rapp is one attempted rule application: the AND-node between a goal
// and the subgoals the rule produced. Its child list is fixed at
// creation; only the provability and irrelevance tags evolve.
type Rapp struct {
	id     RappID
	parent GoalID
	rule   RuleRef

	provability Provability
	irrelevant  bool

	children []GoalID
}

// ID returns the rapp's stable handle.
func (r *Rapp) ID() RappID { return r.id }

// Parent returns the goal that owns this rapp.
func (r *Rapp) Parent() GoalID { return r.parent }

// Rule identifies the rule and alternative that created this rapp.
func (r *Rapp) Rule() RuleRef { return r.rule }

// Provability reports the rapp's proof status.
func (r *Rapp) Provability() Provability { return r.provability }

// Irrelevant reports whether the rapp can no longer affect the search.
func (r *Rapp) Irrelevant() bool { return r.irrelevant }

// Children returns the subgoals in creation order. The slice is owned
// by the tree and must not be mutated.
func (r *Rapp) Children() []GoalID { return r.children }

// Tree holds the whole AND-OR tree: the arena of goals and rapps, the
// root handle, and the creation counters used for limit enforcement.
// The tree is owned by a single search and is not safe for concurrent
// use; the whole structure is released together when the search ends.
type Tree struct {
	goals []Goal
	rapps []Rapp
	root  GoalID
}

// New creates a tree holding a single root goal at full priority and
// depth zero.
func New(rootState any) *Tree {
	t := &Tree{}
	t.root = t.newGoal(NoParent, rootState, 100, 0)
	return t
}

// Root returns the root goal handle.
func (t *Tree) Root() GoalID { return t.root }

// Goal returns the goal node for a handle. Handles come from this tree;
// passing a foreign or out-of-range handle panics.
func (t *Tree) Goal(id GoalID) *Goal { return &t.goals[id] }

// Rapp returns the rapp node for a handle.
func (t *Tree) Rapp(id RappID) *Rapp { return &t.rapps[id] }

// NumGoals returns how many goals were ever created, including
// irrelevant ones. Counters move on creation only, never on mutation.
func (t *Tree) NumGoals() int { return len(t.goals) }

// NumRapps returns how many rapps were ever created.
func (t *Tree) NumRapps() int { return len(t.rapps) }

func (t *Tree) newGoal(parent RappID, state any, priority Percent, depth int) GoalID {
	id := GoalID(len(t.goals))
	t.goals = append(t.goals, Goal{
		id:       id,
		parent:   parent,
		state:    state,
		priority: priority.Clamp(),
		depth:    depth,
	})
	return id
}

// AttachRapp creates one rapp under parent for a single rule
// alternative, together with one child goal per subgoal state. Child
// goals inherit the given priority and sit one rapp deeper than the
// parent goal. A rapp with no subgoals is trivially proved, which
// immediately propagates through the tree. Attaching to a goal that is
// already decided or irrelevant (an earlier alternative of the same
// application settled it) yields a rapp that is irrelevant from birth,
// subgoals included. The new child goal handles are returned in
// creation order.
func (t *Tree) AttachRapp(parent GoalID, rule RuleRef, subgoals []any, priority Percent) (RappID, []GoalID) {
	rid := RappID(len(t.rapps))
	t.rapps = append(t.rapps, Rapp{
		id:     rid,
		parent: parent,
		rule:   rule,
	})

	depth := t.goals[parent].depth + 1
	children := make([]GoalID, 0, len(subgoals))
	for _, state := range subgoals {
		gid := t.newGoal(rid, state, priority, depth)
		children = append(children, gid)
	}
	t.rapps[rid].children = children
	t.goals[parent].children = append(t.goals[parent].children, rid)

	if t.goals[parent].provability != Undetermined || t.goals[parent].irrelevant {
		t.markRappIrrelevant(rid)
		return rid, children
	}
	if len(children) == 0 {
		t.rappProved(rid)
	}
	return rid, children
}

// ReplaceState swaps the goal's payload in place. Normalization rewrites
// a goal without changing its identity, so no new node is created.
func (t *Tree) ReplaceState(id GoalID, state any) {
	t.goals[id].state = state
}

// SetVisited records the loop iteration that last touched the goal.
func (t *Tree) SetVisited(id GoalID, iteration uint64) {
	t.goals[id].lastVisit = iteration
}
