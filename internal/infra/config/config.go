package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port             int      `env:"PORT"               envDefault:"5000"`
	UploadDir        string   `env:"UPLOAD_DIR"         envDefault:"uploads"`
	UploadMaxSize    string   `env:"UPLOAD_MAX_SIZE"    envDefault:"512M"`
	StaticDir        string   `env:"STATIC_DIR"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	ModelPath     string `env:"MODEL_PATH"      envDefault:"pose_classifier_model.json"`
	PoseEngineBin string `env:"POSE_ENGINE_BIN" envDefault:"pose-engine"`
	FFprobeBin    string `env:"FFPROBE_BIN"     envDefault:"ffprobe"`
	ProbeSkeleton bool   `env:"PROBE_SKELETON"  envDefault:"true"`

	MinIOEndpoint      string `env:"MINIO_ENDPOINT"`
	MinIOAccessKey     string `env:"MINIO_ACCESS_KEY"      envDefault:"minioadmin"`
	MinIOSecretKey     string `env:"MINIO_SECRET_KEY"      envDefault:"minioadmin"`
	MinIOUseSSL        bool   `env:"MINIO_USE_SSL"         envDefault:"false"`
	MinIOArchiveBucket string `env:"MINIO_ARCHIVE_BUCKET"  envDefault:"motion-artifacts"`

	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"motion.analysis"`

	MetricsPort    int     `env:"METRICS_PORT"    envDefault:"8083"`
	JaegerEndpoint string  `env:"JAEGER_ENDPOINT"`
	TraceSampling  float64 `env:"TRACE_SAMPLE_RATIO" envDefault:"1"`
	LogLevel       string  `env:"LOG_LEVEL"       envDefault:"info"`
	Version        string  `env:"SERVICE_VERSION" envDefault:"dev"`
}

// ArchiveEnabled reports whether successful runs are copied to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.MinIOEndpoint != ""
}

// EventsEnabled reports whether analysis events are published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// DurationProbeEnabled reports whether rendered skeleton videos are probed
// before they are accepted.
func (c *Config) DurationProbeEnabled() bool {
	return c.ProbeSkeleton && c.FFprobeBin != ""
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
