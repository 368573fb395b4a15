package port

import (
	"context"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
)

// ClassifierLoader acquires the trained model. A Classifier can only be
// obtained through Load, so prediction without a loaded model is not
// expressible.
type ClassifierLoader interface {
	Load(ctx context.Context) (Classifier, error)
}

// Classifier is a loaded model. Predict must be deterministic for a fixed
// model and input video.
type Classifier interface {
	Predict(ctx context.Context, videoPath string) (*entity.ClassificationResult, error)
}
