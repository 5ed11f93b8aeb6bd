package materialize

import "github.com/arthur-debert/stamp/pkg/types"

// Result is the record of one run, in walk order
type Result struct {
	State   types.JobState      `json:"state"`
	Entries []types.EntryResult `json:"entries"`
}

// Count returns how many entries ended with outcome
func (r *Result) Count(outcome types.Outcome) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Files returns the file entries only
func (r *Result) Files() []types.EntryResult {
	if r == nil {
		return nil
	}
	var files []types.EntryResult
	for _, e := range r.Entries {
		if e.Kind == types.KindFile {
			files = append(files, e)
		}
	}
	return files
}

func (r *Result) add(entry types.SourceEntry, target string, outcome types.Outcome) {
	r.Entries = append(r.Entries, types.EntryResult{
		Entry:      entry,
		RelPath:    entry.RelPath,
		Kind:       entry.Kind,
		TargetPath: target,
		Outcome:    outcome,
	})
}
