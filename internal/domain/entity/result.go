package entity

import (
	"fmt"
	"math"
	"sort"
)

// ProbabilityTolerance bounds how far a distribution may drift from summing to 1.
const ProbabilityTolerance = 1e-3

// ClassificationResult is the output of one successful analysis run.
type ClassificationResult struct {
	PredictedClass string             `json:"predicted_class"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"probabilities"`
}

// NewClassificationResult builds a result from a probability distribution,
// picking the argmax as the predicted class. Ties go to the lexically smallest
// label so the choice does not depend on map iteration order.
func NewClassificationResult(probabilities map[string]float64) (*ClassificationResult, error) {
	if len(probabilities) == 0 {
		return nil, fmt.Errorf("empty probability distribution")
	}

	labels := make([]string, 0, len(probabilities))
	for label := range probabilities {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	dist := make(map[string]float64, len(probabilities))
	best := ""
	for _, label := range labels {
		p := probabilities[label]
		dist[label] = p
		if best == "" || p > dist[best] {
			best = label
		}
	}

	r := &ClassificationResult{
		PredictedClass: best,
		Confidence:     dist[best],
		Probabilities:  dist,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// IsEmpty reports whether r carries no usable prediction.
func (r *ClassificationResult) IsEmpty() bool {
	return r == nil || r.PredictedClass == "" || len(r.Probabilities) == 0
}

// Validate checks the record invariants: every probability in [0,1], the
// distribution sums to 1, and the predicted class is the argmax with its
// probability equal to Confidence.
func (r *ClassificationResult) Validate() error {
	if r.IsEmpty() {
		return fmt.Errorf("result is empty")
	}

	sum := 0.0
	for label, p := range r.Probabilities {
		if label == "" {
			return fmt.Errorf("empty class label")
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("probability for %q out of range: %v", label, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > ProbabilityTolerance {
		return fmt.Errorf("probabilities sum to %.6f", sum)
	}

	p, ok := r.Probabilities[r.PredictedClass]
	if !ok {
		return fmt.Errorf("predicted class %q missing from probabilities", r.PredictedClass)
	}
	if p != r.Confidence {
		return fmt.Errorf("confidence %v does not match probability %v of %q", r.Confidence, p, r.PredictedClass)
	}
	for label, q := range r.Probabilities {
		if q > p {
			return fmt.Errorf("predicted class %q is not the argmax (%q has %v)", r.PredictedClass, label, q)
		}
	}
	return nil
}

// Labels returns the class labels in descending probability order.
func (r *ClassificationResult) Labels() []string {
	labels := make([]string, 0, len(r.Probabilities))
	for label := range r.Probabilities {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		pi, pj := r.Probabilities[labels[i]], r.Probabilities[labels[j]]
		if pi != pj {
			return pi > pj
		}
		return labels[i] < labels[j]
	})
	return labels
}
