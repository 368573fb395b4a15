package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hank31169638/cloud-tennis/internal/domain/port"
	"github.com/hank31169638/cloud-tennis/internal/infra/classifier"
	"github.com/hank31169638/cloud-tennis/internal/infra/config"
	"github.com/hank31169638/cloud-tennis/internal/infra/ffmpeg"
	"github.com/hank31169638/cloud-tennis/internal/infra/httpapi"
	"github.com/hank31169638/cloud-tennis/internal/infra/metrics"
	miniostorage "github.com/hank31169638/cloud-tennis/internal/infra/minio"
	"github.com/hank31169638/cloud-tennis/internal/infra/pose"
	"github.com/hank31169638/cloud-tennis/internal/infra/rabbitmq"
	"github.com/hank31169638/cloud-tennis/internal/infra/tracing"
	"github.com/hank31169638/cloud-tennis/internal/usecase"
	"github.com/hank31169638/cloud-tennis/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting motion-analysis-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if Jaeger unavailable)
	tp, err := tracing.InitTracer(ctx, tracing.Config{
		Endpoint:    cfg.JaegerEndpoint,
		SampleRatio: cfg.TraceSampling,
		Version:     cfg.Version,
	})
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else if tp != nil {
		defer tp.Shutdown(ctx)
	}

	fatalOnErr(os.MkdirAll(cfg.UploadDir, 0755), "create upload dir")
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		log.Warn("trained model not found, analyses will fail until it is created",
			zap.String("model_path", cfg.ModelPath))
	}

	// Optional reporting sinks
	var archive port.ArtifactArchive
	if cfg.ArchiveEnabled() {
		storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:      cfg.MinIOEndpoint,
			AccessKey:     cfg.MinIOAccessKey,
			SecretKey:     cfg.MinIOSecretKey,
			UseSSL:        cfg.MinIOUseSSL,
			ArchiveBucket: cfg.MinIOArchiveBucket,
		})
		fatalOnErr(err, "create minio storage")
		fatalOnErr(storage.EnsureBucket(ctx), "ensure minio bucket")
		archive = storage
	}

	var events port.EventPublisher
	if cfg.EventsEnabled() {
		rmqConn, err := amqp.Dial(cfg.RabbitMQURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer rmqConn.Close()

		pub, err := rabbitmq.NewPublisher(rmqConn, cfg.RabbitMQExchange)
		fatalOnErr(err, "create rabbitmq publisher")
		defer pub.Close()
		events = pub
	}

	// Infra adapters
	var prober pose.DurationProber
	if cfg.DurationProbeEnabled() {
		prober = ffmpeg.NewProber(cfg.FFprobeBin)
	}
	extractor := pose.NewExtractor(cfg.PoseEngineBin, prober, log)
	keypoints := pose.NewKeypointReader(cfg.PoseEngineBin, log)
	loader := classifier.NewLoader(cfg.ModelPath, keypoints, log)

	// Use cases
	analyze := usecase.NewAnalyzeVideoUseCase(extractor, loader, log,
		usecase.AnalyzeVideoConfig{ModelPath: cfg.ModelPath})
	report := usecase.NewReportAnalysisUseCase(archive, events, log)

	// Metrics server
	modelReady := func() error {
		if _, err := os.Stat(cfg.ModelPath); err != nil {
			return fmt.Errorf("model not available: %w", err)
		}
		return nil
	}
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, modelReady, log)

	handler := httpapi.NewHandler(analyze, report, cfg.UploadDir, log)
	e := httpapi.NewServer(handler, httpapi.ServerConfig{
		UploadMaxSize:    cfg.UploadMaxSize,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		StaticDir:        cfg.StaticDir,
	}, log)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("http server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}
	if metricsSrv != nil {
		metricsSrv.Shutdown(shutdownCtx)
	}

	log.Info("motion-analysis-service stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
