// Package search implements the best-first proof search engine: the
// main loop over the AND-OR tree, the three rule phases (normalization,
// safe, unsafe), resource limits, safe-prefix recovery on failure, and
// proof witness selection on success.
//
// The engine is single-threaded by design: the loop is the sole mutator
// of the tree and rule transformers run synchronously to completion
// between tree reads. Determinism of the reported proof or residual set
// depends on this sequential, priority-ordered execution.
package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Peiyang-Song/aesop/internal/queue"
	"github.com/Peiyang-Song/aesop/internal/rules"
	"github.com/Peiyang-Song/aesop/internal/tree"
)

// Config carries the engine knobs. Zero limits mean unlimited.
type Config struct {
	// MaxGoals stops the search once this many goals were created.
	MaxGoals int
	// MaxRuleApplications stops the search once this many rapps were
	// created.
	MaxRuleApplications int
	// MaxDepth forces goals at this rule-application depth unprovable
	// without trying any rule on them.
	MaxDepth int
	// Terminal converts limit-reached and root-unprovable outcomes
	// into hard errors instead of best-effort residuals.
	Terminal bool
	// Strategy selects the frontier ordering; empty means best-first.
	Strategy string
}

// Searcher runs proof searches. One Searcher may run several searches
// sequentially; each Run owns a fresh tree and frontier, discarded
// atomically when it returns.
type Searcher struct {
	cfg    Config
	source rules.Source
	simp   rules.Simplifier
	log    *zap.Logger
	runID  uuid.UUID

	t         *tree.Tree
	frontier  queue.Strategy
	iteration uint64
}

// New creates a searcher. A nil simplifier disables the bulk pass and a
// nil logger disables diagnostics; both are valid.
func New(cfg Config, source rules.Source, simp rules.Simplifier, log *zap.Logger) *Searcher {
	if simp == nil {
		simp = rules.NopSimplifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{cfg: cfg, source: source, simp: simp, log: log}
}

// Tree exposes the current run's tree for diagnostics snapshots.
func (s *Searcher) Tree() *tree.Tree { return s.t }

// Run searches for a proof of rootState. It returns a Result on every
// non-fatal termination (full proof, or residuals in non-terminal
// mode) and an error on fatal faults, internal inconsistencies, or any
// failed search in terminal mode.
func (s *Searcher) Run(rootState rules.State) (*Result, error) {
	start := time.Now()
	s.runID = uuid.New()
	s.iteration = 0
	s.t = tree.New(rootState)

	var err error
	s.frontier, err = queue.New(s.cfg.Strategy)
	if err != nil {
		return nil, err
	}
	s.enqueue([]tree.GoalID{s.t.Root()})

	s.log.Info("search started",
		zap.String("run", s.runID.String()),
		zap.String("strategy", s.frontier.Name()),
		zap.Int("max_goals", s.cfg.MaxGoals),
		zap.Int("max_rapps", s.cfg.MaxRuleApplications),
		zap.Int("max_depth", s.cfg.MaxDepth))

	for {
		root := s.t.Goal(s.t.Root())
		if root.Provability() == tree.Unprovable {
			return s.finishUnproved(StatusUnprovable, "root goal unprovable", start)
		}
		if root.Provability() == tree.Proved {
			return s.finishProved(start)
		}
		if msg := s.limitBreached(); msg != "" {
			return s.finishUnproved(StatusLimitReached, msg, start)
		}

		gid, ok := s.popActive()
		if !ok {
			// Correct bookkeeping keeps at least one active goal
			// while the root is undetermined.
			return nil, s.fatal(fmt.Errorf("%w: no active goals but root undetermined", ErrInternal))
		}

		s.iteration++
		s.t.SetVisited(gid, s.iteration)

		if s.cfg.MaxDepth > 0 && s.t.Goal(gid).Depth() >= s.cfg.MaxDepth {
			s.log.Debug("depth limit hit",
				zap.Int32("goal", int32(gid)), zap.Int("depth", s.t.Goal(gid).Depth()))
			s.t.ForceUnprovable(gid)
			continue
		}

		if err := s.step(gid); err != nil {
			return nil, s.fatal(err)
		}

		if s.t.Goal(gid).Active() {
			s.enqueue([]tree.GoalID{gid})
		}
		if s.iteration%32 == 0 {
			s.log.Debug("frontier", zap.String("queue", s.frontier.PeekSummary()),
				zap.Int("goals", s.t.NumGoals()), zap.Int("rapps", s.t.NumRapps()))
		}
	}
}

// step advances a goal by exactly one phase: normalize first, then the
// safe pass, then one unsafe rule per visit.
func (s *Searcher) step(gid tree.GoalID) error {
	switch s.t.Goal(gid).Progress() {
	case tree.Unnormalized:
		return s.normalizeGoal(s.t, gid)
	case tree.Normalized:
		created, err := s.safeStep(s.t, gid)
		s.enqueue(created)
		return err
	case tree.SafeExpanded:
		created, err := s.unsafeStep(s.t, gid)
		s.enqueue(created)
		return err
	}
	return fmt.Errorf("%w: fully expanded goal g%d popped as active", ErrInternal, gid)
}

// popActive pops frontier entries until one still refers to an active
// goal. Entries go stale when their goal is decided or pruned after
// insertion; they are skipped here instead of being removed eagerly.
func (s *Searcher) popActive() (tree.GoalID, bool) {
	for {
		e, ok := s.frontier.PopNext()
		if !ok {
			return 0, false
		}
		if s.t.Goal(e.Goal).Active() {
			return e.Goal, true
		}
	}
}

func (s *Searcher) enqueue(goals []tree.GoalID) {
	if len(goals) == 0 {
		return
	}
	entries := make([]queue.Entry, 0, len(goals))
	for _, gid := range goals {
		entries = append(entries, queue.Entry{Goal: gid, Priority: s.t.Goal(gid).Priority()})
	}
	s.frontier.Enqueue(entries)
}

func (s *Searcher) limitBreached() string {
	if s.cfg.MaxGoals > 0 && s.t.NumGoals() >= s.cfg.MaxGoals {
		return fmt.Sprintf("goal limit reached (%d goals)", s.t.NumGoals())
	}
	if s.cfg.MaxRuleApplications > 0 && s.t.NumRapps() >= s.cfg.MaxRuleApplications {
		return fmt.Sprintf("rule application limit reached (%d applications)", s.t.NumRapps())
	}
	return ""
}

func (s *Searcher) stats(start time.Time) Stats {
	return Stats{
		Goals:      s.t.NumGoals(),
		Rapps:      s.t.NumRapps(),
		Iterations: s.iteration,
		Elapsed:    time.Since(start),
	}
}

func (s *Searcher) finishProved(start time.Time) (*Result, error) {
	w, err := selectWitness(s.t, s.t.Root())
	if err != nil {
		return nil, s.fatal(err)
	}
	st := s.stats(start)
	s.log.Info("search proved root goal",
		zap.String("run", s.runID.String()),
		zap.Int("goals", st.Goals), zap.Int("rapps", st.Rapps),
		zap.Uint64("iterations", st.Iterations), zap.Duration("elapsed", st.Elapsed))
	return &Result{
		Status:  StatusProved,
		Message: "proved",
		Witness: w,
		Stats:   st,
		RunID:   s.runID,
	}, nil
}

// finishUnproved handles both non-fatal failure modes. In terminal mode
// it fails hard with the descriptive message; otherwise it runs
// safe-prefix recovery and reports the residual obligations. Recovery
// may still prove the root outright (the main run can be cut off by a
// limit with safe work pending), in which case a proved result is
// returned.
func (s *Searcher) finishUnproved(status Status, msg string, start time.Time) (*Result, error) {
	s.log.Info("search failed", zap.String("run", s.runID.String()),
		zap.String("status", status.String()), zap.String("reason", msg))

	if s.cfg.Terminal {
		return nil, fmt.Errorf("%w: %s", ErrNoProof, msg)
	}

	residuals, witness, err := s.recoverSafePrefix()
	if err != nil {
		return nil, s.fatal(err)
	}
	st := s.stats(start)
	if witness != nil {
		s.log.Info("safe prefix proved root goal", zap.String("run", s.runID.String()))
		return &Result{
			Status:  StatusProved,
			Message: "proved by safe prefix",
			Witness: witness,
			Stats:   st,
			RunID:   s.runID,
		}, nil
	}
	s.log.Debug("residual obligations", zap.Int("count", len(residuals)))
	return &Result{
		Status:    status,
		Message:   msg,
		Residuals: residuals,
		Stats:     st,
		RunID:     s.runID,
	}, nil
}

// fatal logs a final-state snapshot and returns the error unchanged.
func (s *Searcher) fatal(err error) error {
	s.log.Error("search aborted",
		zap.String("run", s.runID.String()),
		zap.Error(err),
		zap.Uint64("iteration", s.iteration),
		zap.String("snapshot", s.t.Snapshot()))
	return err
}
