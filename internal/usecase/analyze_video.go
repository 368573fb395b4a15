package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/domain/port"
	"github.com/hank31169638/cloud-tennis/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// AnalyzeVideoUseCase runs one video through pose extraction and
// classification. Extraction is best-effort; every other stage is fatal.
type AnalyzeVideoUseCase struct {
	extractor port.PoseExtractor
	loader    port.ClassifierLoader
	logger    *zap.Logger
	modelPath string
}

type AnalyzeVideoConfig struct {
	ModelPath string
}

func NewAnalyzeVideoUseCase(
	extractor port.PoseExtractor,
	loader port.ClassifierLoader,
	logger *zap.Logger,
	cfg AnalyzeVideoConfig,
) *AnalyzeVideoUseCase {
	return &AnalyzeVideoUseCase{
		extractor: extractor,
		loader:    loader,
		logger:    logger,
		modelPath: cfg.ModelPath,
	}
}

// Execute analyses the video at sourcePath under a fresh run ID.
func (uc *AnalyzeVideoUseCase) Execute(ctx context.Context, sourcePath string) (*entity.ClassificationResult, error) {
	return uc.Run(ctx, entity.NewPipelineRequest(sourcePath))
}

// Run analyses req.SourcePath. On failure the error is an
// *entity.PipelineError naming the state the run failed in.
func (uc *AnalyzeVideoUseCase) Run(ctx context.Context, req entity.PipelineRequest) (*entity.ClassificationResult, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeVideoUseCase.Run")
	defer span.End()

	span.SetAttributes(
		attribute.String("run.id", req.RunID.String()),
		attribute.String("run.source", req.SourcePath),
	)

	totalTimer := time.Now()
	log := uc.logger.With(zap.String("run_id", req.RunID.String()), zap.String("source", req.SourcePath))
	run := &pipelineRun{state: entity.StateValidating, log: log}

	log.Info("analysis started")

	result, err := uc.analyze(ctx, run, req)
	metrics.StageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.AnalysesTotal.WithLabelValues("failed").Inc()
		state, _ := entity.FailedState(err)
		log.Error("analysis failed", zap.String("failed_state", string(state)), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("result.class", result.PredictedClass),
		attribute.Float64("result.confidence", result.Confidence),
	)
	metrics.AnalysesTotal.WithLabelValues("completed").Inc()
	metrics.PredictedClassTotal.WithLabelValues(result.PredictedClass).Inc()

	log.Info("analysis completed",
		zap.String("predicted_class", result.PredictedClass),
		zap.Float64("confidence", result.Confidence),
	)
	return result, nil
}

func (uc *AnalyzeVideoUseCase) analyze(ctx context.Context, run *pipelineRun, req entity.PipelineRequest) (*entity.ClassificationResult, error) {
	source := entity.NewVideoArtifact(req.SourcePath)
	if !source.Exists() {
		return nil, run.fail(entity.ErrSourceNotFound, req.SourcePath, nil)
	}

	run.advance(entity.StateExtracting)
	outcome := uc.extract(ctx, source, run.log)

	run.advance(entity.StateModelCheck)
	if !entity.FileExists(uc.modelPath) {
		detail := fmt.Sprintf("%s (run training first to create it)", uc.modelPath)
		return nil, run.fail(entity.ErrModelNotFound, detail, nil)
	}

	run.advance(entity.StateLoading)
	classifier, err := uc.load(ctx)
	if err != nil {
		kind := entity.ErrModelLoad
		if errors.Is(err, entity.ErrModelNotFound) {
			kind = entity.ErrModelNotFound
		}
		return nil, run.fail(kind, "", err)
	}

	// Classification always reads the skeleton artifact, whether or not
	// extraction reported success.
	run.advance(entity.StatePredicting)
	result, err := uc.predict(ctx, classifier, outcome.SkeletonPath)
	if err != nil {
		return nil, run.fail(entity.ErrPrediction, "", err)
	}
	if result.IsEmpty() {
		return nil, run.fail(entity.ErrEmptyResult, outcome.SkeletonPath, nil)
	}
	if err := result.Validate(); err != nil {
		return nil, run.fail(entity.ErrPrediction, "invalid result", err)
	}

	run.advance(entity.StateDone)
	return result, nil
}

// extract never fails the run: an extractor error becomes a warning outcome
// that still carries the skeleton path.
func (uc *AnalyzeVideoUseCase) extract(ctx context.Context, source entity.VideoArtifact, log *zap.Logger) entity.ExtractionOutcome {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "extract_pose")
	defer span.End()

	start := time.Now()
	skeleton := source.Skeleton()
	log.Info("rendering skeleton video", zap.String("skeleton", skeleton.Path))

	var outcome entity.ExtractionOutcome
	if err := uc.extractor.ExtractPose(ctx, source.Path, skeleton.Path); err != nil {
		outcome = entity.ExtractionWarning(skeleton.Path, err)
	} else {
		outcome = entity.ExtractionSucceeded(skeleton.Path)
	}
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())

	if !outcome.Succeeded() {
		span.RecordError(outcome.Warning)
		metrics.ExtractionWarningsTotal.Inc()
		log.Warn("skeleton video rendering failed, continuing", zap.Error(outcome.Warning))
	}
	return outcome
}

func (uc *AnalyzeVideoUseCase) load(ctx context.Context) (port.Classifier, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "load_model")
	defer span.End()

	start := time.Now()
	classifier, err := uc.loader.Load(ctx)
	metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return classifier, nil
}

func (uc *AnalyzeVideoUseCase) predict(ctx context.Context, classifier port.Classifier, videoPath string) (*entity.ClassificationResult, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "predict")
	defer span.End()

	span.SetAttributes(attribute.String("predict.video", videoPath))

	start := time.Now()
	result, err := classifier.Predict(ctx, videoPath)
	metrics.StageDuration.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

// pipelineRun tracks the state of a single run.
type pipelineRun struct {
	state entity.PipelineState
	log   *zap.Logger
}

func (r *pipelineRun) advance(to entity.PipelineState) {
	if !entity.CanTransition(r.state, to) {
		r.log.DPanic("invalid pipeline transition",
			zap.String("from", string(r.state)),
			zap.String("to", string(to)),
		)
	}
	r.log.Debug("pipeline transition", zap.String("from", string(r.state)), zap.String("to", string(to)))
	r.state = to
}

func (r *pipelineRun) fail(kind error, detail string, cause error) error {
	from := r.state
	r.advance(entity.StateFailed)
	return entity.NewPipelineError(from, kind, detail, cause)
}
