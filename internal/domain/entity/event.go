package entity

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "COMPLETED"
	AnalysisStatusFailed    AnalysisStatus = "FAILED"
)

// AnalysisEvent is the outbound message published once a run has finished.
type AnalysisEvent struct {
	EventID        uuid.UUID          `json:"event_id"`
	RunID          uuid.UUID          `json:"run_id"`
	Status         AnalysisStatus     `json:"status"`
	Filename       string             `json:"filename"`
	PredictedClass string             `json:"predicted_class,omitempty"`
	Confidence     float64            `json:"confidence,omitempty"`
	Probabilities  map[string]float64 `json:"probabilities,omitempty"`
	FailedState    PipelineState      `json:"failed_state,omitempty"`
	ErrorMessage   string             `json:"error_message,omitempty"`
	ArchivedKeys   []string           `json:"archived_keys,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
}

// RoutingKey returns the topic routing key for the event status.
func (e AnalysisEvent) RoutingKey() string {
	if e.Status == AnalysisStatusCompleted {
		return "analysis.completed"
	}
	return "analysis.failed"
}
