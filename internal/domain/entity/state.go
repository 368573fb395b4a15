package entity

type PipelineState string

const (
	StateValidating PipelineState = "VALIDATING"
	StateExtracting PipelineState = "EXTRACTING"
	StateModelCheck PipelineState = "MODEL_CHECK"
	StateLoading    PipelineState = "LOADING"
	StatePredicting PipelineState = "PREDICTING"
	StateDone       PipelineState = "DONE"
	StateFailed     PipelineState = "FAILED"
)

// next lists the forward transition of each non-terminal state.
var next = map[PipelineState]PipelineState{
	StateValidating: StateExtracting,
	StateExtracting: StateModelCheck,
	StateModelCheck: StateLoading,
	StateLoading:    StatePredicting,
	StatePredicting: StateDone,
}

// CanFail reports whether a run may terminate as FAILED from s. Extraction
// never fails a run.
func (s PipelineState) CanFail() bool {
	switch s {
	case StateValidating, StateModelCheck, StateLoading, StatePredicting:
		return true
	default:
		return false
	}
}

func (s PipelineState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether from -> to is an allowed transition.
func CanTransition(from, to PipelineState) bool {
	if to == StateFailed {
		return from.CanFail()
	}
	n, ok := next[from]
	return ok && n == to
}
