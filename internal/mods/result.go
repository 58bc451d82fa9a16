package mods

// Phase is the state of a chain execution.
type Phase int

const (
	PhasePending Phase = iota
	PhaseReading
	PhaseTransforming
	PhaseWriting
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseReading:
		return "reading"
	case PhaseTransforming:
		return "transforming"
	case PhaseWriting:
		return "writing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChainResult is the outcome of one (platform, file key) chain.
type ChainResult struct {
	Platform Platform
	FileKey  string
	Layers   []Layer

	// Results holds the final mod results on success. On failure it holds
	// the last value a layer returned successfully, if any.
	Results any

	Phase Phase
	Trace []Phase

	// Path, Read, and Wrote are set by a base mod. Before and After are
	// BLAKE3 digests of the file content read and written; Before is empty
	// when the file did not exist.
	Path   string
	Read   bool
	Wrote  bool
	Before string
	After  string

	Err *Error
}

// Changed reports whether the chain wrote content different from what it
// read.
func (r *ChainResult) Changed() bool {
	return r.Wrote && r.Before != r.After
}

// Evaluation is the aggregate outcome of one Evaluate call. It is returned
// even when chains failed, so partial work stays visible.
type Evaluation struct {
	Config  *Config
	Results []*ChainResult
	// Executed lists, per platform, the file keys whose chains ran.
	Executed map[Platform][]string
	// Skipped lists requested platforms with no registered mods.
	Skipped []Platform
	// Unsupported lists requested platforms mods cannot target.
	Unsupported []Platform
	// Warnings holds informational errors: unsupported platforms requested
	// or registered against.
	Warnings []*Error
}

// Result returns the chain result for (p, fileKey), or nil if that chain
// did not run.
func (e *Evaluation) Result(p Platform, fileKey string) *ChainResult {
	for _, r := range e.Results {
		if r.Platform == p && r.FileKey == fileKey {
			return r
		}
	}
	return nil
}

// Failures returns the errors of every failed chain.
func (e *Evaluation) Failures() []*Error {
	var errs []*Error
	for _, r := range e.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// ResultsFor returns the typed mod results for key from ev.
func ResultsFor[T any](ev *Evaluation, key Key[T]) (T, bool) {
	var zero T
	if ev == nil {
		return zero, false
	}
	r := ev.Result(key.Platform, key.Name)
	if r == nil || r.Results == nil {
		return zero, false
	}
	v, ok := r.Results.(T)
	return v, ok
}
