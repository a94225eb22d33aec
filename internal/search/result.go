package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Peiyang-Song/aesop/internal/rules"
	"github.com/Peiyang-Song/aesop/internal/tree"
)

// Error taxonomy. Rule inapplicability (rules.ErrNotApplicable) is
// recovered locally inside the loop and never surfaces here.
var (
	// ErrNoProof is returned in terminal mode when the search ends
	// without a full proof (limit reached or root unprovable).
	ErrNoProof = errors.New("no proof found")

	// ErrRuleFault wraps an unexpected failure inside a rule
	// transformer: a non-ErrNotApplicable error, a panic, or a
	// malformed application. Fatal, no recovery is attempted.
	ErrRuleFault = errors.New("rule fault")

	// ErrInternal marks a violated engine invariant, e.g. a proved
	// goal without a proved rule application. Fatal.
	ErrInternal = errors.New("internal invariant violated")
)

// Status is the terminal state of a search.
type Status uint8

const (
	StatusProved Status = iota
	StatusUnprovable
	StatusLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusProved:
		return "proved"
	case StatusUnprovable:
		return "unprovable"
	case StatusLimitReached:
		return "limit-reached"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Stats summarizes the work one search performed. Counts include
// irrelevant nodes: they were real work.
type Stats struct {
	Goals      int
	Rapps      int
	Iterations uint64
	Elapsed    time.Duration
}

// Witness is one selected proof: per proved goal, the rule application
// that discharged it and the subproofs of its subgoals. It is handed to
// the proof-assembly collaborator for rendering.
type Witness struct {
	Goal      tree.GoalID
	State     rules.State
	Rule      tree.RuleRef
	Subproofs []*Witness
}

// Residual is one unresolved leaf of the canonical safe prefix: an
// obligation the caller is left with on non-fatal failure.
type Residual struct {
	Goal     tree.GoalID
	State    rules.State
	Depth    int
	Priority tree.Percent
}

// Result is the outcome of one search run. Witness is set iff the
// status is proved; Residuals are set on non-fatal failure (and empty
// when the safe prefix left nothing open).
type Result struct {
	Status    Status
	Message   string
	Witness   *Witness
	Residuals []Residual
	Stats     Stats
	RunID     uuid.UUID
}
