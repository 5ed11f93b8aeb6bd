package types

// Outcome is what happened to a single target path during a run
type Outcome string

const (
	// OutcomeCreated means the path did not exist and was created
	OutcomeCreated Outcome = "CREATED"

	// OutcomeOverwritten means an existing file was replaced
	OutcomeOverwritten Outcome = "OVERWRITTEN"

	// OutcomeSkipped means an existing file was left untouched
	OutcomeSkipped Outcome = "SKIPPED"

	// OutcomeExists means a directory was already present
	OutcomeExists Outcome = "EXISTS"
)

// JobState tracks the lifecycle of a materialization job
type JobState string

const (
	JobInitialized JobState = "INITIALIZED"
	JobRunning     JobState = "RUNNING"
	JobCompleted   JobState = "COMPLETED"
	JobFailed      JobState = "FAILED"
)

// EntryResult records the outcome of one source entry
type EntryResult struct {
	Entry      SourceEntry `json:"-"`
	RelPath    string      `json:"path"`
	Kind       EntryKind   `json:"kind"`
	TargetPath string      `json:"target"`
	Outcome    Outcome     `json:"outcome"`
}
