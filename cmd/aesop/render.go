package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Peiyang-Song/aesop/internal/search"
)

var (
	styleProved   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleRule     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleResidual = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDim      = lipgloss.NewStyle().Faint(true)
)

// renderOutcome formats one problem's result for the terminal: the
// witness tree when proved, the residual obligations otherwise.
func renderOutcome(o Outcome) string {
	var sb strings.Builder

	if o.Err != nil {
		fmt.Fprintf(&sb, "%s %s: %v\n", styleFailed.Render("FAIL"), o.Name, o.Err)
		return sb.String()
	}

	r := o.Result
	switch r.Status {
	case search.StatusProved:
		fmt.Fprintf(&sb, "%s %s\n", styleProved.Render("PROVED"), o.Name)
		renderWitness(&sb, r.Witness, "", true)
	default:
		fmt.Fprintf(&sb, "%s %s: %s\n", styleFailed.Render(strings.ToUpper(r.Status.String())), o.Name, r.Message)
		for _, res := range r.Residuals {
			fmt.Fprintf(&sb, "  %s %v\n", styleResidual.Render("residual"), res.State)
		}
	}
	fmt.Fprintf(&sb, "%s\n", styleDim.Render(fmt.Sprintf(
		"  %d goals, %d rule applications, %d iterations, %v",
		r.Stats.Goals, r.Stats.Rapps, r.Stats.Iterations, r.Stats.Elapsed.Round(time.Microsecond))))
	return sb.String()
}

// renderWitness draws the selected proof as an ASCII tree, one line per
// proved goal with the witnessing rule application.
func renderWitness(sb *strings.Builder, w *search.Witness, prefix string, isLast bool) {
	if w == nil {
		return
	}

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	fmt.Fprintf(sb, "  %s%s%v %s\n", prefix, connector, w.State,
		styleRule.Render("["+w.Rule.String()+"]"))

	for i, sub := range w.Subproofs {
		renderWitness(sb, sub, childPrefix, i == len(w.Subproofs)-1)
	}
}

// renderJSON formats one outcome as a JSON document.
func renderJSON(o Outcome) (string, error) {
	type jsonWitness struct {
		Goal     string         `json:"goal"`
		Rule     string         `json:"rule"`
		Subgoals []*jsonWitness `json:"subgoals,omitempty"`
	}

	var convert func(*search.Witness) *jsonWitness
	convert = func(w *search.Witness) *jsonWitness {
		if w == nil {
			return nil
		}
		jw := &jsonWitness{
			Goal: fmt.Sprintf("%v", w.State),
			Rule: w.Rule.String(),
		}
		for _, sub := range w.Subproofs {
			jw.Subgoals = append(jw.Subgoals, convert(sub))
		}
		return jw
	}

	doc := struct {
		Name       string       `json:"name"`
		Status     string       `json:"status"`
		Message    string       `json:"message,omitempty"`
		Error      string       `json:"error,omitempty"`
		Witness    *jsonWitness `json:"witness,omitempty"`
		Residuals  []string     `json:"residuals,omitempty"`
		Goals      int          `json:"goals"`
		Rapps      int          `json:"rule_applications"`
		Iterations uint64       `json:"iterations"`
	}{Name: o.Name}

	if o.Err != nil {
		doc.Status = "error"
		doc.Error = o.Err.Error()
	} else {
		r := o.Result
		doc.Status = r.Status.String()
		doc.Message = r.Message
		doc.Witness = convert(r.Witness)
		for _, res := range r.Residuals {
			doc.Residuals = append(doc.Residuals, fmt.Sprintf("%v", res.State))
		}
		doc.Goals = r.Stats.Goals
		doc.Rapps = r.Stats.Rapps
		doc.Iterations = r.Stats.Iterations
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
