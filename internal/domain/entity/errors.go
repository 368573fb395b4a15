package entity

import "errors"

var (
	ErrSourceNotFound = errors.New("source video not found")
	ErrExtraction     = errors.New("pose extraction failed")
	ErrModelNotFound  = errors.New("trained model not found")
	ErrModelLoad      = errors.New("model load failed")
	ErrPrediction     = errors.New("prediction failed")
	ErrEmptyResult    = errors.New("analysis returned an empty result")
)

// PipelineError is returned by a failed analysis run. It records the state the
// run was in when it failed and unwraps to one of the sentinels above.
type PipelineError struct {
	State  PipelineState
	Kind   error
	Detail string
	Err    error
}

func (e *PipelineError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err == nil {
		return msg
	}
	if e.Detail == "" && errors.Is(e.Err, e.Kind) {
		return e.Err.Error()
	}
	return msg + ": " + e.Err.Error()
}

func (e *PipelineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewPipelineError(state PipelineState, kind error, detail string, cause error) *PipelineError {
	return &PipelineError{State: state, Kind: kind, Detail: detail, Err: cause}
}

// FailedState reports the state recorded on err, if err is a *PipelineError.
func FailedState(err error) (PipelineState, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.State, true
	}
	return "", false
}
