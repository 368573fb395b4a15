package pose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"go.uber.org/zap"
)

// KeypointReader asks the pose engine for the per-frame skeleton of a video.
// The engine writes a JSON entity.PoseSequence to stdout.
type KeypointReader struct {
	bin    string
	logger *zap.Logger
}

func NewKeypointReader(bin string, logger *zap.Logger) *KeypointReader {
	return &KeypointReader{bin: bin, logger: logger}
}

func (r *KeypointReader) ReadKeypoints(ctx context.Context, videoPath string) (*entity.PoseSequence, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.bin,
		"keypoints",
		"--input", videoPath,
		"--format", "json",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pose engine: %w, output: %s", err, strings.TrimSpace(stderr.String()))
	}

	var seq entity.PoseSequence
	if err := json.Unmarshal(stdout.Bytes(), &seq); err != nil {
		return nil, fmt.Errorf("decode keypoints: %w", err)
	}
	if err := validateSequence(&seq); err != nil {
		return nil, err
	}

	r.logger.Debug("keypoints read",
		zap.String("video", videoPath),
		zap.Int("frames", len(seq.Frames)),
		zap.Int("joints", len(seq.Joints)),
	)
	return &seq, nil
}

func validateSequence(seq *entity.PoseSequence) error {
	if len(seq.Joints) == 0 {
		return fmt.Errorf("keypoints: no joints declared")
	}
	for _, f := range seq.Frames {
		if n := len(f.Keypoints); n != 0 && n != len(seq.Joints) {
			return fmt.Errorf("keypoints: frame %d has %d keypoints, want %d", f.Index, n, len(seq.Joints))
		}
	}
	return nil
}
