package httpapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/infra/metrics"
	"github.com/hank31169638/cloud-tennis/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UploadField is the multipart field carrying the video.
const UploadField = "file"

type Analyzer interface {
	Run(ctx context.Context, req entity.PipelineRequest) (*entity.ClassificationResult, error)
}

type Reporter interface {
	Report(ctx context.Context, report usecase.AnalysisReport)
}

// AnalyzeResponse is the success body of POST /analyze.
type AnalyzeResponse struct {
	PredictedClass string             `json:"predicted_class"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"probabilities"`
	Filename       string             `json:"filename"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	analyzer  Analyzer
	reporter  Reporter
	uploadDir string
	logger    *zap.Logger
}

// NewHandler wires the HTTP surface to analyzer. reporter may be nil.
func NewHandler(analyzer Analyzer, reporter Reporter, uploadDir string, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer:  analyzer,
		reporter:  reporter,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/analyze", h.Analyze)
	e.POST("/api/analyze", h.Analyze)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Analyze(c echo.Context) error {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("no file field %q in request", UploadField)})
	}
	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file selected"})
	}

	filename := SecureFilename(fh.Filename)
	if filename == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filename"})
	}

	log := h.logger.With(zap.String("filename", filename))
	savePath := filepath.Join(h.uploadDir, filename)
	n, err := saveUpload(fh, savePath)
	if err != nil {
		log.Error("failed to save upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("failed to save file: %v", err)})
	}
	metrics.UploadBytesTotal.Add(float64(n))
	log.Info("upload saved", zap.String("path", savePath), zap.Int64("bytes", n))

	ctx := c.Request().Context()
	req := entity.NewPipelineRequest(savePath)
	result, err := h.analyzer.Run(ctx, req)
	// An Analyzer must not return an empty result with a nil error; treat a
	// violation as a failed run rather than answering 200 with no class.
	if err == nil && result.IsEmpty() {
		err = entity.ErrEmptyResult
	}

	if h.reporter != nil {
		h.reporter.Report(ctx, usecase.AnalysisReport{
			RunID:      req.RunID,
			Filename:   filename,
			SourcePath: savePath,
			Result:     result,
			Err:        err,
		})
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("analysis failed: %v", err)})
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		PredictedClass: result.PredictedClass,
		Confidence:     result.Confidence,
		Probabilities:  result.Probabilities,
		Filename:       filename,
	})
}

func saveUpload(fh *multipart.FileHeader, dst string) (int64, error) {
	src, err := fh.Open()
	if err != nil {
		return 0, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, src)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
