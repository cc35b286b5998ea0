package quickcheck

// Status is the terminal state of a driver run.
type Status int

const (
	// StatusAllPassed means every trial held.
	StatusAllPassed Status = iota + 1
	// StatusFailed means a counterexample was found (and minimized).
	StatusFailed
	// StatusIncomplete means the run was cut short by cancellation or by
	// persistent generation failures; no verdict was reached.
	StatusIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusAllPassed:
		return "all passed"
	case StatusFailed:
		return "failed"
	case StatusIncomplete:
		return "incomplete"
	}
	return "unknown"
}

// FailKind records how the property rejected an input.
type FailKind int

const (
	// FailFalse: the property returned false.
	FailFalse FailKind = iota + 1
	// FailError: the property returned a non-nil error.
	FailError
	// FailPanic: the property panicked; the recovered payload is kept.
	FailPanic
)

func (k FailKind) String() string {
	switch k {
	case FailFalse:
		return "false result"
	case FailError:
		return "error"
	case FailPanic:
		return "panic"
	}
	return "unknown"
}

// TrialError records a generation failure that aborted a single trial.
type TrialError struct {
	Trial int
	Err   error
}

// Failure describes a falsified property: the original counterexample, its
// minimized form, and how the failure manifested.
type Failure struct {
	Original  []Value
	Minimized []Value

	// Kind and Err describe the minimized failure. For FailFalse Err is nil.
	Kind FailKind
	Err  error

	// ShrinkSteps counts accepted shrink steps. BudgetExceeded flags that
	// the step ceiling was hit, so Minimized may not be 1-minimal.
	ShrinkSteps    int
	BudgetExceeded bool
}

// RunResult is what a driver run reports back.
type RunResult struct {
	Status Status

	// Seed reproduces the run byte for byte when fed back into Config.
	Seed int64

	// TrialsRun counts trials that passed; Discards counts inputs the
	// property rejected via Discard.
	TrialsRun int
	Discards  int

	// GenErrors lists trials aborted by generation failures. They never
	// abort the run on their own, but a run that cannot generate enough
	// inputs ends Incomplete.
	GenErrors []TrialError

	// Failure is set when Status is StatusFailed.
	Failure *Failure
}
