// Package display holds the view models shared by every output format
package display

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stamp/pkg/catalog"
	"github.com/arthur-debert/stamp/pkg/materialize"
	"github.com/arthur-debert/stamp/pkg/types"
)

// outcomeOrder is the order used in summaries
var outcomeOrder = []types.Outcome{
	types.OutcomeCreated,
	types.OutcomeOverwritten,
	types.OutcomeSkipped,
	types.OutcomeExists,
}

// Report describes what a command did to one or more target trees
type Report struct {
	Command string      `json:"command"`
	DryRun  bool        `json:"dry_run"`
	Jobs    []JobReport `json:"jobs"`
}

// JobReport is one materialization job
type JobReport struct {
	Template string              `json:"template"`
	Target   string              `json:"target"`
	State    types.JobState      `json:"state"`
	Entries  []types.EntryResult `json:"entries"`
}

// NewJobReport captures a job result, which may be partial
func NewJobReport(template, target string, result *materialize.Result) JobReport {
	report := JobReport{Template: template, Target: target, State: types.JobFailed}
	if result != nil {
		report.State = result.State
		report.Entries = result.Entries
	}
	return report
}

// Totals counts outcomes across every job
func (r *Report) Totals() map[types.Outcome]int {
	totals := make(map[types.Outcome]int)
	for _, job := range r.Jobs {
		for _, e := range job.Entries {
			totals[e.Outcome]++
		}
	}
	return totals
}

// Summary is a one-line account such as "4 created, 2 skipped"
func (r *Report) Summary() string {
	totals := r.Totals()
	var parts []string
	for _, outcome := range outcomeOrder {
		if n := totals[outcome]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(outcome))))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// DisplayPath shows an entry relative to its job target. Directories end
// with a slash and the target root itself is ".".
func (j JobReport) DisplayPath(e types.EntryResult) string {
	rel, err := filepath.Rel(j.Target, e.TargetPath)
	if err != nil {
		rel = e.TargetPath
	}
	if e.Kind == types.KindDirectory && rel != "." {
		rel += string(filepath.Separator)
	}
	return rel
}

// Catalog lists the families of a templates directory
type Catalog struct {
	Root     string   `json:"root"`
	Families []Family `json:"families"`
}

// Family describes one template family
type Family struct {
	Name      string     `json:"name"`
	Variants  []string   `json:"variants"`
	Examples  []string   `json:"examples"`
	Variables []Variable `json:"variables"`
	Readme    string     `json:"readme,omitempty"`
}

// Variable describes one declared variable
type Variable struct {
	Name     string `json:"name"`
	Flag     string `json:"flag"`
	Marker   string `json:"marker"`
	Help     string `json:"help,omitempty"`
	Default  string `json:"default,omitempty"`
	Required bool   `json:"required"`
}

// NewFamily builds the view of a catalog family
func NewFamily(f *catalog.Family) (Family, error) {
	variants, err := f.Variants()
	if err != nil {
		return Family{}, err
	}
	examples, err := f.Examples()
	if err != nil {
		return Family{}, err
	}

	out := Family{Name: f.Name, Variants: variants, Examples: examples}
	vars := f.Variables()
	for _, name := range vars.Names() {
		v := vars[name]
		out.Variables = append(out.Variables, Variable{
			Name:     v.Name,
			Flag:     "--" + v.Flag(),
			Marker:   v.Marker(),
			Help:     v.Help,
			Default:  v.Default,
			Required: v.IsRequired(),
		})
	}
	return out, nil
}
