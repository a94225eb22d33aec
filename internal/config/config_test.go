package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
search:
  max_depth: 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.MaxDepth != 7 {
		t.Errorf("max_depth = %d, want 7", cfg.Search.MaxDepth)
	}
	// Everything omitted keeps the default.
	if cfg.Search.Strategy != "best-first" {
		t.Errorf("strategy = %q, want best-first", cfg.Search.Strategy)
	}
	if cfg.Search.MaxGoals != 10000 {
		t.Errorf("max_goals = %d, want 10000", cfg.Search.MaxGoals)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_Full(t *testing.T) {
	path := writeFile(t, "config.yaml", `
search:
  strategy: depth-first
  max_goals: 100
  max_rule_applications: 200
  max_depth: 10
  terminal: true
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := SearchConfig{
		Strategy:            "depth-first",
		MaxGoals:            100,
		MaxRuleApplications: 200,
		MaxDepth:            10,
		Terminal:            true,
	}
	if cfg.Search != want {
		t.Errorf("search = %+v, want %+v", cfg.Search, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := writeFile(t, "bad.yaml", "search: [not, a, mapping]")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	strategy := writeFile(t, "strategy.yaml", "search:\n  strategy: sideways\n")
	if _, err := Load(strategy); err == nil {
		t.Error("unknown strategy should fail validation")
	}

	negative := writeFile(t, "negative.yaml", "search:\n  max_goals: -1\n")
	if _, err := Load(negative); err == nil {
		t.Error("negative limit should fail validation")
	}
}

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadProblems(t *testing.T) {
	path := writeFile(t, "problems.yaml", `
problems:
  - name: and-elim
    goal: a & b -> a
  - goal: a -> a
search:
  max_depth: 20
`)
	pf, err := LoadProblems(path)
	if err != nil {
		t.Fatalf("LoadProblems: %v", err)
	}
	if len(pf.Problems) != 2 {
		t.Fatalf("got %d problems, want 2", len(pf.Problems))
	}
	if pf.Problems[0].Name != "and-elim" {
		t.Errorf("name = %q", pf.Problems[0].Name)
	}
	// Unnamed problems get a positional name.
	if pf.Problems[1].Name != "problem-2" {
		t.Errorf("auto name = %q, want problem-2", pf.Problems[1].Name)
	}
	if pf.Search == nil || pf.Search.MaxDepth != 20 {
		t.Errorf("per-file search override not parsed: %+v", pf.Search)
	}
}

func TestLoadProblems_Errors(t *testing.T) {
	empty := writeFile(t, "empty.yaml", "problems: []\n")
	if _, err := LoadProblems(empty); err == nil {
		t.Error("empty problem list should fail")
	}

	noGoal := writeFile(t, "nogoal.yaml", "problems:\n  - name: x\n")
	if _, err := LoadProblems(noGoal); err == nil {
		t.Error("problem without goal should fail")
	}
}
