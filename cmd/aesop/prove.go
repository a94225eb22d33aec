package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Peiyang-Song/aesop/internal/config"
	"github.com/Peiyang-Song/aesop/internal/logic"
	"github.com/Peiyang-Song/aesop/internal/search"
)

var (
	strategyFlag string
	maxGoals     int
	maxRapps     int
	maxDepth     int
	terminal     bool
	parallel     int
	jsonOut      bool
)

// proveCmd runs every problem in a file through the search engine.
var proveCmd = &cobra.Command{
	Use:   "prove [problem-file]",
	Short: "Prove the goals listed in a YAML problem file",
	Long: `Reads a YAML problem file and searches for a proof of each goal.

Problem file format:

  problems:
    - name: and-elim
      goal: a & b -> a
    - name: with-hypotheses
      goal: a -> b, a |- b
  search:          # optional per-file overrides
    max_depth: 20

Goals are propositional formulas over !, &, |, -> with optional
hypotheses before a "|-". On failure the residual obligations of the
safe prefix are printed instead of a proof.`,
	Args: cobra.ExactArgs(1),
	RunE: runProve,
}

func init() {
	proveCmd.Flags().StringVar(&strategyFlag, "strategy", "", "frontier strategy: best-first, depth-first, breadth-first")
	proveCmd.Flags().IntVar(&maxGoals, "max-goals", 0, "goal creation limit (0 = from config)")
	proveCmd.Flags().IntVar(&maxRapps, "max-rule-applications", 0, "rule application limit (0 = from config)")
	proveCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "rule application depth limit (0 = from config)")
	proveCmd.Flags().BoolVar(&terminal, "terminal", false, "fail hard instead of reporting residual goals")
	proveCmd.Flags().IntVar(&parallel, "parallel", 1, "number of problems proved concurrently")
	proveCmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
}

func runProve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pf, err := config.LoadProblems(args[0])
	if err != nil {
		return err
	}
	if pf.Search != nil {
		cfg.Search = *pf.Search
	}
	applyFlagOverrides(cmd, &cfg.Search)

	problems := make([]namedGoal, 0, len(pf.Problems))
	for _, p := range pf.Problems {
		seq, err := logic.ParseSequent(p.Goal)
		if err != nil {
			return fmt.Errorf("problem %q: %w", p.Name, err)
		}
		problems = append(problems, namedGoal{Name: p.Name, Goal: seq})
	}

	runner := newBatchRunner(search.Config{
		MaxGoals:            cfg.Search.MaxGoals,
		MaxRuleApplications: cfg.Search.MaxRuleApplications,
		MaxDepth:            cfg.Search.MaxDepth,
		Terminal:            cfg.Search.Terminal,
		Strategy:            cfg.Search.Strategy,
	}, logger)

	outcomes := runner.Run(problems, parallel)

	failed := 0
	for _, o := range outcomes {
		if jsonOut {
			out, err := renderJSON(o)
			if err != nil {
				return err
			}
			fmt.Println(out)
		} else {
			fmt.Print(renderOutcome(o))
		}
		if o.Err != nil || o.Result.Status != search.StatusProved {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d/%d problems not proved\n", failed, len(outcomes))
		for _, o := range outcomes {
			if o.Err != nil {
				return o.Err
			}
		}
	}
	return nil
}

// applyFlagOverrides lets explicit prove flags win over the config and
// the problem file.
func applyFlagOverrides(cmd *cobra.Command, sc *config.SearchConfig) {
	if cmd.Flags().Changed("strategy") {
		sc.Strategy = strategyFlag
	}
	if cmd.Flags().Changed("max-goals") {
		sc.MaxGoals = maxGoals
	}
	if cmd.Flags().Changed("max-rule-applications") {
		sc.MaxRuleApplications = maxRapps
	}
	if cmd.Flags().Changed("max-depth") {
		sc.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("terminal") {
		sc.Terminal = terminal
	}
}
