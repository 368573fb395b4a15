// Command predict analyses a single local video and prints the predicted
// action with the probability of every class.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hank31169638/cloud-tennis/internal/domain/entity"
	"github.com/hank31169638/cloud-tennis/internal/infra/classifier"
	"github.com/hank31169638/cloud-tennis/internal/infra/config"
	"github.com/hank31169638/cloud-tennis/internal/infra/ffmpeg"
	"github.com/hank31169638/cloud-tennis/internal/infra/pose"
	"github.com/hank31169638/cloud-tennis/internal/usecase"
	"github.com/hank31169638/cloud-tennis/pkg/logger"
)

const barWidth = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	modelPath := flag.String("model", cfg.ModelPath, "path to the trained model")
	engine := flag.String("engine", cfg.PoseEngineBin, "pose engine binary")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: predict [-model PATH] [-engine BIN] VIDEO")
		os.Exit(2)
	}

	log, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var prober pose.DurationProber
	if cfg.DurationProbeEnabled() {
		prober = ffmpeg.NewProber(cfg.FFprobeBin)
	}
	extractor := pose.NewExtractor(*engine, prober, log)
	loader := classifier.NewLoader(*modelPath, pose.NewKeypointReader(*engine, log), log)
	uc := usecase.NewAnalyzeVideoUseCase(extractor, loader, log,
		usecase.AnalyzeVideoConfig{ModelPath: *modelPath})

	video := flag.Arg(0)
	fmt.Printf("analysing %s\n", video)

	result, err := uc.Execute(context.Background(), video)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printResult(os.Stdout, result)
}

func printResult(w io.Writer, result *entity.ClassificationResult) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "predicted class: %s\n", strings.ToUpper(result.PredictedClass))
	fmt.Fprintf(w, "confidence:      %.2f%%\n", result.Confidence*100)
	fmt.Fprintln(w, "\nprobabilities:")
	for _, class := range result.Labels() {
		p := result.Probabilities[class]
		fmt.Fprintf(w, "  %-8s: %6.2f%% %s\n", class, p*100, bar(p))
	}
	fmt.Fprintln(w, rule)
}

func bar(p float64) string {
	n := int(p * barWidth)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
