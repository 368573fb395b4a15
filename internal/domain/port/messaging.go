package port

import (
	"context"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
)

type EventPublisher interface {
	PublishAnalysis(ctx context.Context, event entity.AnalysisEvent) error
}
