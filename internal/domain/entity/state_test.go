package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	happy := []PipelineState{StateValidating, StateExtracting, StateModelCheck, StateLoading, StatePredicting, StateDone}
	for i := 0; i < len(happy)-1; i++ {
		assert.True(t, CanTransition(happy[i], happy[i+1]), "%s -> %s", happy[i], happy[i+1])
	}

	for _, s := range []PipelineState{StateValidating, StateModelCheck, StateLoading, StatePredicting} {
		assert.True(t, CanTransition(s, StateFailed), s)
	}

	assert.False(t, CanTransition(StateExtracting, StateFailed))
	assert.False(t, CanTransition(StateValidating, StateLoading))
	assert.False(t, CanTransition(StateDone, StateFailed))
	assert.False(t, CanTransition(StateFailed, StateValidating))
	assert.False(t, CanTransition(StatePredicting, StateExtracting))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StateDone.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StatePredicting.IsTerminal())
}

func TestPipelineError(t *testing.T) {
	cause := fmt.Errorf("%w: bad weights", ErrModelLoad)
	err := error(NewPipelineError(StateLoading, ErrModelLoad, "", cause))

	assert.ErrorIs(t, err, ErrModelLoad)
	assert.Equal(t, "model load failed: bad weights", err.Error())

	state, ok := FailedState(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, StateLoading, state)

	err = NewPipelineError(StateValidating, ErrSourceNotFound, "uploads/walk.mp4", nil)
	assert.Equal(t, "source video not found: uploads/walk.mp4", err.Error())
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.False(t, errors.Is(err, ErrPrediction))

	err = NewPipelineError(StatePredicting, ErrPrediction, "", errors.New("stat walk_skeleton.mp4: no such file"))
	assert.Equal(t, "prediction failed: stat walk_skeleton.mp4: no such file", err.Error())

	_, ok = FailedState(errors.New("plain"))
	assert.False(t, ok)
}

func TestAnalysisEventRoutingKey(t *testing.T) {
	assert.Equal(t, "analysis.completed", AnalysisEvent{Status: AnalysisStatusCompleted}.RoutingKey())
	assert.Equal(t, "analysis.failed", AnalysisEvent{Status: AnalysisStatusFailed}.RoutingKey())
}
