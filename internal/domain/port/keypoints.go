package port

import (
	"context"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
)

// KeypointReader detects the subject's skeleton in every frame of a video.
type KeypointReader interface {
	ReadKeypoints(ctx context.Context, videoPath string) (*entity.PoseSequence, error)
}
