package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Problem is one named proof obligation in a problem file. Goal is a
// formula, optionally with hypotheses ("h1, h2 |- concl").
type Problem struct {
	Name string `yaml:"name"`
	Goal string `yaml:"goal"`
}

// ProblemFile is the YAML document the prove command consumes. Search
// overrides, when present, replace the config-file search settings for
// every problem in the file.
type ProblemFile struct {
	Problems []Problem     `yaml:"problems"`
	Search   *SearchConfig `yaml:"search"`
}

// LoadProblems reads and validates a problem file.
func LoadProblems(path string) (ProblemFile, error) {
	var pf ProblemFile
	data, err := os.ReadFile(path)
	if err != nil {
		return pf, fmt.Errorf("read problems: %w", err)
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("parse problems %s: %w", path, err)
	}
	if len(pf.Problems) == 0 {
		return pf, fmt.Errorf("problems %s: no problems listed", path)
	}
	for i, p := range pf.Problems {
		if p.Goal == "" {
			return pf, fmt.Errorf("problems %s: problem %d has no goal", path, i)
		}
		if p.Name == "" {
			pf.Problems[i].Name = fmt.Sprintf("problem-%d", i+1)
		}
	}
	return pf, nil
}
