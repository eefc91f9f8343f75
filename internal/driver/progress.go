package driver

// ProgressStatus is the state a file moved into.
type ProgressStatus int

const (
	// ProgressQueued is sent once per file before linting starts.
	ProgressQueued ProgressStatus = iota
	ProgressStarted
	ProgressDone
)

func (s ProgressStatus) String() string {
	switch s {
	case ProgressQueued:
		return "queued"
	case ProgressStarted:
		return "started"
	case ProgressDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressEvent describes one file changing state during LintPaths.
type ProgressEvent struct {
	Path   string
	Index  int // position in the sorted input list
	Total  int
	Status ProgressStatus
	// Report is set for ProgressDone.
	Report *Report
}

// ProgressSink receives progress events. LintPaths calls it from worker
// goroutines, so implementations must be goroutine-safe.
type ProgressSink func(ProgressEvent)

func (s ProgressSink) emit(ev ProgressEvent) {
	if s != nil {
		s(ev)
	}
}
