package classifier

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/domain/port"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Loader reads the trained model from a fixed path. Every call to Load reads
// the file again; nothing is cached between runs.
type Loader struct {
	modelPath string
	keypoints port.KeypointReader
	logger    *zap.Logger
}

func NewLoader(modelPath string, keypoints port.KeypointReader, logger *zap.Logger) *Loader {
	return &Loader{modelPath: modelPath, keypoints: keypoints, logger: logger}
}

func (l *Loader) Load(ctx context.Context) (port.Classifier, error) {
	f, err := os.Open(l.modelPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrModelNotFound, l.modelPath)
		}
		return nil, fmt.Errorf("%w: open %s: %w", entity.ErrModelLoad, l.modelPath, err)
	}
	defer f.Close()

	model, err := decodeModel(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entity.ErrModelLoad, l.modelPath, err)
	}

	l.logger.Info("model loaded",
		zap.String("path", l.modelPath),
		zap.String("version", model.Version),
		zap.Strings("classes", model.Classes),
	)
	return newClassifier(model, l.keypoints, l.logger), nil
}

// Classifier is a loaded model bound to a keypoint reader. It is only built by
// Loader.Load.
type Classifier struct {
	model     *Model
	weights   *mat.Dense
	keypoints port.KeypointReader
	logger    *zap.Logger
}

func newClassifier(m *Model, keypoints port.KeypointReader, logger *zap.Logger) *Classifier {
	dim := m.featureDim()
	flat := make([]float64, 0, len(m.Classes)*dim)
	for _, row := range m.Weights {
		flat = append(flat, row...)
	}
	return &Classifier{
		model:     m,
		weights:   mat.NewDense(len(m.Classes), dim, flat),
		keypoints: keypoints,
		logger:    logger,
	}
}

func (c *Classifier) Predict(ctx context.Context, videoPath string) (*entity.ClassificationResult, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPrediction, err)
	}

	seq, err := c.keypoints.ReadKeypoints(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPrediction, err)
	}

	features, err := extractFeatures(seq, c.model.Joints)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entity.ErrPrediction, videoPath, err)
	}

	probs := c.score(features)
	dist := make(map[string]float64, len(probs))
	for i, class := range c.model.Classes {
		dist[class] = probs[i]
	}

	result, err := entity.NewClassificationResult(dist)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPrediction, err)
	}

	c.logger.Debug("prediction scored",
		zap.String("video", videoPath),
		zap.String("predicted_class", result.PredictedClass),
		zap.Float64("confidence", result.Confidence),
	)
	return result, nil
}

// score standardises features and returns softmax(W·f + b).
func (c *Classifier) score(features []float64) []float64 {
	f := make([]float64, len(features))
	copy(f, features)
	if len(c.model.FeatureMean) > 0 {
		floats.Sub(f, c.model.FeatureMean)
	}
	if len(c.model.FeatureStd) > 0 {
		for i, s := range c.model.FeatureStd {
			if s > 0 {
				f[i] /= s
			}
		}
	}

	logits := mat.NewVecDense(len(c.model.Classes), nil)
	logits.MulVec(c.weights, mat.NewVecDense(len(f), f))
	logits.AddVec(logits, mat.NewVecDense(len(c.model.Bias), c.model.Bias))

	return softmax(logits.RawVector().Data)
}

func softmax(logits []float64) []float64 {
	out := make([]float64, len(logits))
	top := floats.Max(logits)
	for i, z := range logits {
		out[i] = math.Exp(z - top)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}
