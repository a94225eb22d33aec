package main

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Peiyang-Song/aesop/internal/logic"
	"github.com/Peiyang-Song/aesop/internal/search"
)

// namedGoal is one parsed problem.
type namedGoal struct {
	Name string
	Goal logic.Sequent
}

// Outcome pairs a problem with its search result, or the hard error the
// search ended with (terminal mode, rule fault).
type Outcome struct {
	Name   string
	Result *search.Result
	Err    error
}

// batchRunner proves a list of problems. Each problem gets its own
// searcher and its own tree; the engine stays single-threaded per
// search, concurrency only exists between independent searches.
type batchRunner struct {
	cfg search.Config
	log *zap.Logger
}

func newBatchRunner(cfg search.Config, log *zap.Logger) *batchRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &batchRunner{cfg: cfg, log: log}
}

// Run proves every problem, at most parallel at a time, and returns
// outcomes in problem order. Failures don't cancel the remaining
// problems; each outcome carries its own error.
func (b *batchRunner) Run(problems []namedGoal, parallel int) []Outcome {
	if parallel < 1 {
		parallel = 1
	}

	outcomes := make([]Outcome, len(problems))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, p := range problems {
		i, p := i, p
		g.Go(func() error {
			s := search.New(b.cfg, logic.Rules(), logic.Simplifier{},
				b.log.With(zap.String("problem", p.Name)))
			res, err := s.Run(p.Goal)
			outcomes[i] = Outcome{Name: p.Name, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
