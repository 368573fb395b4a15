package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportFixture(t *testing.T) (string, string, AnalysisReport) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "walk.mp4")
	skeleton := filepath.Join(dir, "walk_skeleton.mp4")
	require.NoError(t, os.WriteFile(source, []byte("video"), 0o644))
	require.NoError(t, os.WriteFile(skeleton, []byte("skeleton"), 0o644))

	req := entity.NewPipelineRequest(source)
	return source, skeleton, AnalysisReport{
		RunID:      req.RunID,
		Filename:   "walk.mp4",
		SourcePath: source,
		Result:     walkResult(),
	}
}

func TestReportSuccessArchivesAndPublishes(t *testing.T) {
	source, skeleton, report := newReportFixture(t)
	archive := new(MockArchive)
	publisher := new(MockPublisher)

	sourceKey := report.RunID.String() + "/walk.mp4"
	skeletonKey := report.RunID.String() + "/walk_skeleton.mp4"
	archive.On("ArchiveVideo", mock.Anything, sourceKey, source).Return(nil).Once()
	archive.On("ArchiveVideo", mock.Anything, skeletonKey, skeleton).Return(nil).Once()

	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	publisher.On("PublishAnalysis", mock.Anything, mock.MatchedBy(func(e entity.AnalysisEvent) bool {
		return e.RunID == report.RunID &&
			e.Status == entity.AnalysisStatusCompleted &&
			e.PredictedClass == "walk" &&
			e.Confidence == 0.87 &&
			e.Timestamp.Equal(fixed) &&
			assert.ObjectsAreEqual([]string{sourceKey, skeletonKey}, e.ArchivedKeys)
	})).Return(nil).Once()

	uc := NewReportAnalysisUseCase(archive, publisher, zap.NewNop())
	uc.now = func() time.Time { return fixed }
	uc.Report(context.Background(), report)

	archive.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReportSkipsMissingSkeleton(t *testing.T) {
	source, skeleton, report := newReportFixture(t)
	require.NoError(t, os.Remove(skeleton))
	archive := new(MockArchive)
	archive.On("ArchiveVideo", mock.Anything, mock.Anything, source).Return(nil).Once()

	NewReportAnalysisUseCase(archive, nil, zap.NewNop()).Report(context.Background(), report)

	archive.AssertNumberOfCalls(t, "ArchiveVideo", 1)
}

func TestReportFailureOnlyPublishes(t *testing.T) {
	_, _, report := newReportFixture(t)
	report.Result = nil
	report.Err = entity.NewPipelineError(entity.StateModelCheck, entity.ErrModelNotFound, "pose_classifier_model.json", nil)

	archive := new(MockArchive)
	publisher := new(MockPublisher)
	publisher.On("PublishAnalysis", mock.Anything, mock.MatchedBy(func(e entity.AnalysisEvent) bool {
		return e.Status == entity.AnalysisStatusFailed &&
			e.FailedState == entity.StateModelCheck &&
			e.ErrorMessage == report.Err.Error() &&
			e.RoutingKey() == "analysis.failed"
	})).Return(nil).Once()

	NewReportAnalysisUseCase(archive, publisher, zap.NewNop()).Report(context.Background(), report)

	archive.AssertNotCalled(t, "ArchiveVideo", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestReportSinkErrorsAreSwallowed(t *testing.T) {
	_, _, report := newReportFixture(t)
	archive := new(MockArchive)
	publisher := new(MockPublisher)
	archive.On("ArchiveVideo", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))
	publisher.On("PublishAnalysis", mock.Anything, mock.MatchedBy(func(e entity.AnalysisEvent) bool {
		return len(e.ArchivedKeys) == 0
	})).Return(errors.New("channel closed")).Once()

	assert.NotPanics(t, func() {
		NewReportAnalysisUseCase(archive, publisher, zap.NewNop()).Report(context.Background(), report)
	})
	archive.AssertNumberOfCalls(t, "ArchiveVideo", 2)
	publisher.AssertExpectations(t)
}

func TestReportWithoutSinks(t *testing.T) {
	_, _, report := newReportFixture(t)
	assert.NotPanics(t, func() {
		NewReportAnalysisUseCase(nil, nil, zap.NewNop()).Report(context.Background(), report)
	})
}
