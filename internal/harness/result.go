package harness

import (
	"fmt"
	"strings"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Name is the scenario name.
	Name string

	// Pass is true when every step and expectation matched.
	Pass bool

	// Steps records each step in order.
	Steps []StepResult

	// Errors describes every mismatch. Empty if Pass is true.
	Errors []string

	// Tree is the Dump of the final network.
	Tree string
}

// StepResult records one executed step.
type StepResult struct {
	Index   int
	Summary string

	// Code is the error code the step failed with, or "".
	Code string
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Render formats the result for golden comparison.
func (r *Result) Render() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	b.WriteString("steps:\n")
	for _, s := range r.Steps {
		outcome := "ok"
		if s.Code != "" {
			outcome = s.Code
		}
		fmt.Fprintf(&b, "  %d %s: %s\n", s.Index, s.Summary, outcome)
	}
	if len(r.Errors) > 0 {
		b.WriteString("errors:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	b.WriteString("tree:\n")
	b.WriteString(r.Tree)
	return []byte(b.String())
}

func summarize(st Step) string {
	switch st.Op {
	case OpReload:
		return st.Op
	case OpAlias, OpMove:
		return fmt.Sprintf("%s %s -> %s", st.Op, st.Path, st.To)
	case OpTag:
		return fmt.Sprintf("%s %s #%s", st.Op, st.Path, st.Tag)
	case OpReorder:
		return fmt.Sprintf("%s %s %v", st.Op, st.Path, st.Order)
	case OpTitle, OpBody:
		return fmt.Sprintf("%s %s %q", st.Op, st.Path, st.Text)
	default:
		return fmt.Sprintf("%s %s", st.Op, st.Path)
	}
}
