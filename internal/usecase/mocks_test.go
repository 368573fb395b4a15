package usecase

import (
	"context"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/domain/port"
	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractPose(ctx context.Context, sourcePath, destinationPath string) error {
	args := m.Called(ctx, sourcePath, destinationPath)
	return args.Error(0)
}

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context) (port.Classifier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.Classifier), args.Error(1)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(ctx context.Context, videoPath string) (*entity.ClassificationResult, error) {
	args := m.Called(ctx, videoPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClassificationResult), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) ArchiveVideo(ctx context.Context, objectKey, localPath string) error {
	args := m.Called(ctx, objectKey, localPath)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAnalysis(ctx context.Context, event entity.AnalysisEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
