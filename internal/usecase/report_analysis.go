package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/domain/port"
	"github.com/hank31169638/cloud-tennis/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// AnalysisReport describes a finished run for the reporting sinks.
type AnalysisReport struct {
	RunID      uuid.UUID
	Filename   string
	SourcePath string
	Result     *entity.ClassificationResult
	Err        error
}

// ReportAnalysisUseCase archives the videos of successful runs and publishes
// an event for every run. Both sinks are optional and best-effort: failures
// are logged and counted, never returned.
type ReportAnalysisUseCase struct {
	archive   port.ArtifactArchive
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportAnalysisUseCase accepts nil sinks; a nil sink is skipped.
func NewReportAnalysisUseCase(archive port.ArtifactArchive, publisher port.EventPublisher, logger *zap.Logger) *ReportAnalysisUseCase {
	return &ReportAnalysisUseCase{
		archive:   archive,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ReportAnalysisUseCase) Report(ctx context.Context, report AnalysisReport) {
	if uc.archive == nil && uc.publisher == nil {
		return
	}

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "ReportAnalysisUseCase.Report")
	defer span.End()

	log := uc.logger.With(zap.String("run_id", report.RunID.String()), zap.String("filename", report.Filename))

	var archived []string
	if report.Err == nil && uc.archive != nil {
		archived = uc.archiveArtifacts(ctx, report, log)
	}

	if uc.publisher != nil {
		event := uc.buildEvent(report, archived)
		if err := uc.publisher.PublishAnalysis(ctx, event); err != nil {
			metrics.ReportFailuresTotal.WithLabelValues("events").Inc()
			log.Warn("failed to publish analysis event", zap.Error(err))
		}
	}
}

func (uc *ReportAnalysisUseCase) archiveArtifacts(ctx context.Context, report AnalysisReport, log *zap.Logger) []string {
	source := entity.NewVideoArtifact(report.SourcePath)
	var keys []string
	for _, a := range []entity.VideoArtifact{source, source.Skeleton()} {
		if !a.Exists() {
			continue
		}
		key := fmt.Sprintf("%s/%s", report.RunID.String(), filepath.Base(a.Path))
		if err := uc.archive.ArchiveVideo(ctx, key, a.Path); err != nil {
			metrics.ReportFailuresTotal.WithLabelValues("archive").Inc()
			log.Warn("failed to archive video", zap.String("path", a.Path), zap.Error(err))
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func (uc *ReportAnalysisUseCase) buildEvent(report AnalysisReport, archived []string) entity.AnalysisEvent {
	event := entity.AnalysisEvent{
		EventID:      uuid.New(),
		RunID:        report.RunID,
		Filename:     report.Filename,
		ArchivedKeys: archived,
		Timestamp:    uc.now(),
	}
	if report.Err != nil {
		event.Status = entity.AnalysisStatusFailed
		event.ErrorMessage = report.Err.Error()
		if state, ok := entity.FailedState(report.Err); ok {
			event.FailedState = state
		}
		return event
	}

	event.Status = entity.AnalysisStatusCompleted
	if report.Result != nil {
		event.PredictedClass = report.Result.PredictedClass
		event.Confidence = report.Result.Confidence
		event.Probabilities = report.Result.Probabilities
	}
	return event
}
