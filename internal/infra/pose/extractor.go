package pose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"go.uber.org/zap"
)

// DurationProber reports the playable duration of a rendered video.
type DurationProber interface {
	Duration(ctx context.Context, videoPath string) (float64, error)
}

// Extractor renders skeleton overlay videos with the external pose engine.
type Extractor struct {
	bin    string
	prober DurationProber
	logger *zap.Logger
}

// NewExtractor returns an Extractor running bin. prober may be nil, in which
// case a rendered file is accepted as soon as it is non-empty.
func NewExtractor(bin string, prober DurationProber, logger *zap.Logger) *Extractor {
	return &Extractor{bin: bin, prober: prober, logger: logger}
}

// ExtractPose renders into a temporary sibling of destinationPath and renames
// it into place only once the output has been checked, so a failed render
// never leaves a file at destinationPath.
func (e *Extractor) ExtractPose(ctx context.Context, sourcePath string, destinationPath string) error {
	partial := partialPath(destinationPath)
	defer os.Remove(partial)

	cmd := exec.CommandContext(ctx, e.bin,
		"render",
		"--input", sourcePath,
		"--output", partial,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: pose engine: %v, output: %s", entity.ErrExtraction, err, strings.TrimSpace(string(output)))
	}

	info, err := os.Stat(partial)
	if err != nil {
		return fmt.Errorf("%w: rendered video missing: %v", entity.ErrExtraction, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: rendered video is empty", entity.ErrExtraction)
	}

	if e.prober != nil {
		duration, err := e.prober.Duration(ctx, partial)
		if err != nil {
			return fmt.Errorf("%w: probe rendered video: %v", entity.ErrExtraction, err)
		}
		if duration <= 0 {
			return fmt.Errorf("%w: rendered video has no duration", entity.ErrExtraction)
		}
		e.logger.Debug("rendered video probed", zap.Float64("duration_secs", duration))
	}

	if err := os.Rename(partial, destinationPath); err != nil {
		return fmt.Errorf("%w: move rendered video: %v", entity.ErrExtraction, err)
	}

	e.logger.Info("skeleton video rendered",
		zap.String("source", sourcePath),
		zap.String("skeleton", destinationPath),
		zap.Int64("bytes", info.Size()),
	)
	return nil
}

// partialPath keeps the extension so the engine still picks the container
// from the output name.
func partialPath(destinationPath string) string {
	ext := filepath.Ext(destinationPath)
	return strings.TrimSuffix(destinationPath, ext) + ".partial" + ext
}
