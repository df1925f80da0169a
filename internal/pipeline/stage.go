package pipeline

// Stage describes one external-process invocation.
type Stage struct {
	// Name identifies the stage in diagnostics.
	Name string

	// Tool is the executable to invoke, Args its arguments.
	Tool string
	Args []string

	// SuccessCodes is the set of exit codes that let the pipeline proceed.
	SuccessCodes []int

	// GatePath, when non-empty, must exist on disk for the stage to run;
	// otherwise the stage is skipped with SkipMessage. Existence is checked
	// at the moment the stage is reached, since it is an earlier stage that
	// may or may not have produced the file.
	GatePath    string
	SkipMessage string

	// OnSuccess, when set, runs after the stage succeeds. Failures inside
	// the hook never affect the pipeline.
	OnSuccess func()
}

// OutcomeKind classifies what happened to one stage.
type OutcomeKind int

const (
	// Advanced means the stage ran and its exit code was in the success set.
	Advanced OutcomeKind = iota

	// Skipped means the stage's gate artifact was absent.
	Skipped

	// Failed means the stage ran and exited outside its success set, or
	// could not be started at all. Terminal for the whole pipeline.
	Failed
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case Advanced:
		return "advanced"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of evaluating one stage.
type Outcome struct {
	Stage string
	Kind  OutcomeKind

	// Code is the observed exit code; meaningful for Advanced and Failed.
	Code int
}
