package port

import "context"

// PoseExtractor renders a copy of the source video with the detected skeleton
// drawn over the subject. Success is signalled only by a nil error.
type PoseExtractor interface {
	ExtractPose(ctx context.Context, sourcePath string, destinationPath string) error
}
