package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassificationResult(t *testing.T) {
	r, err := NewClassificationResult(map[string]float64{"walk": 0.87, "run": 0.08, "fall": 0.05})
	require.NoError(t, err)

	assert.Equal(t, "walk", r.PredictedClass)
	assert.Equal(t, 0.87, r.Confidence)
	assert.Equal(t, r.Probabilities[r.PredictedClass], r.Confidence)
	assert.Equal(t, []string{"walk", "run", "fall"}, r.Labels())
}

func TestNewClassificationResultTieBreak(t *testing.T) {
	r, err := NewClassificationResult(map[string]float64{"run": 0.4, "fall": 0.4, "walk": 0.2})
	require.NoError(t, err)
	assert.Equal(t, "fall", r.PredictedClass)
	assert.Equal(t, []string{"fall", "run", "walk"}, r.Labels())
}

func TestNewClassificationResultCopiesInput(t *testing.T) {
	in := map[string]float64{"walk": 0.9, "run": 0.1}
	r, err := NewClassificationResult(in)
	require.NoError(t, err)

	in["walk"] = 0
	assert.Equal(t, 0.9, r.Probabilities["walk"])
}

func TestNewClassificationResultRejects(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]float64
	}{
		{"empty", map[string]float64{}},
		{"does not sum to one", map[string]float64{"walk": 0.5, "run": 0.2}},
		{"negative", map[string]float64{"walk": 1.1, "run": -0.1}},
		{"empty label", map[string]float64{"": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassificationResult(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  *ClassificationResult
		wantErr bool
	}{
		{
			name: "valid within tolerance",
			result: &ClassificationResult{
				PredictedClass: "walk",
				Confidence:     0.8705,
				Probabilities:  map[string]float64{"walk": 0.8705, "run": 0.08, "fall": 0.05},
			},
		},
		{
			name: "confidence mismatch",
			result: &ClassificationResult{
				PredictedClass: "walk",
				Confidence:     0.9,
				Probabilities:  map[string]float64{"walk": 0.87, "run": 0.08, "fall": 0.05},
			},
			wantErr: true,
		},
		{
			name: "predicted class missing",
			result: &ClassificationResult{
				PredictedClass: "jump",
				Confidence:     0.87,
				Probabilities:  map[string]float64{"walk": 0.87, "run": 0.13},
			},
			wantErr: true,
		},
		{
			name: "not argmax",
			result: &ClassificationResult{
				PredictedClass: "run",
				Confidence:     0.13,
				Probabilities:  map[string]float64{"walk": 0.87, "run": 0.13},
			},
			wantErr: true,
		},
		{
			name:    "empty",
			result:  &ClassificationResult{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIsEmpty(t *testing.T) {
	var nilResult *ClassificationResult
	assert.True(t, nilResult.IsEmpty())
	assert.True(t, (&ClassificationResult{PredictedClass: "walk"}).IsEmpty())
	assert.False(t, (&ClassificationResult{PredictedClass: "walk", Probabilities: map[string]float64{"walk": 1}}).IsEmpty())
}
