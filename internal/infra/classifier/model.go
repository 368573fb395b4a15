package classifier

import (
	"encoding/json"
	"fmt"
	"io"
)

// Model is the trained artifact: a linear scorer over movement features.
//
// Weights has one row per class and FeaturesPerJoint*len(Joints) columns.
// FeatureMean and FeatureStd, when present, standardise features before
// scoring.
type Model struct {
	Version     string      `json:"version"`
	Classes     []string    `json:"classes"`
	Joints      []string    `json:"joints"`
	Weights     [][]float64 `json:"weights"`
	Bias        []float64   `json:"bias"`
	FeatureMean []float64   `json:"feature_mean,omitempty"`
	FeatureStd  []float64   `json:"feature_std,omitempty"`
}

func decodeModel(r io.Reader) (*Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Model) featureDim() int {
	return FeaturesPerJoint * len(m.Joints)
}

func (m *Model) validate() error {
	if len(m.Classes) == 0 {
		return fmt.Errorf("model declares no classes")
	}
	seen := make(map[string]bool, len(m.Classes))
	for _, c := range m.Classes {
		if c == "" {
			return fmt.Errorf("model declares an empty class label")
		}
		if seen[c] {
			return fmt.Errorf("duplicate class %q", c)
		}
		seen[c] = true
	}
	if len(m.Joints) == 0 {
		return fmt.Errorf("model declares no joints")
	}

	dim := m.featureDim()
	if len(m.Weights) != len(m.Classes) {
		return fmt.Errorf("weights have %d rows, want %d", len(m.Weights), len(m.Classes))
	}
	for i, row := range m.Weights {
		if len(row) != dim {
			return fmt.Errorf("weights row %d has %d columns, want %d", i, len(row), dim)
		}
	}
	if len(m.Bias) != len(m.Classes) {
		return fmt.Errorf("bias has %d entries, want %d", len(m.Bias), len(m.Classes))
	}
	if n := len(m.FeatureMean); n != 0 && n != dim {
		return fmt.Errorf("feature_mean has %d entries, want %d", n, dim)
	}
	if n := len(m.FeatureStd); n != 0 && n != dim {
		return fmt.Errorf("feature_std has %d entries, want %d", n, dim)
	}
	return nil
}
