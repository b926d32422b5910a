package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`

	// Any OpenAI-compatible chat endpoint; Gemini's compatibility layer by default.
	LLMAPIKey        string        `envconfig:"LLM_API_KEY"`
	LLMBaseURL       string        `envconfig:"LLM_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	LLMSummaryModel  string        `envconfig:"LLM_SUMMARY_MODEL" default:"gemini-2.5-pro"`
	LLMAnalysisModel string        `envconfig:"LLM_ANALYSIS_MODEL" default:"gemini-2.5-flash"`
	LLMTimeout       time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`

	SentryDSN        string  `envconfig:"SENTRY_DSN"`
	SentrySampleRate float64 `envconfig:"SENTRY_SAMPLE_RATE" default:"0"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"lexsearch-datasets"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Empty leaves /admin routes open.
	AdminToken   string `envconfig:"ADMIN_TOKEN"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"52428800"`

	BackfillInterval time.Duration `envconfig:"BACKFILL_INTERVAL" default:"0"`
	BackfillBatch    int           `envconfig:"BACKFILL_BATCH" default:"20"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("LEXSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch c.Environment {
	case "local", "dev", "development", "docker", "test", "prod", "production":
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q", c.Environment)
	}
	if c.DBMinConns < 0 || c.DBMaxConns < 1 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid pool bounds: min %d, max %d", c.DBMinConns, c.DBMaxConns)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.BackfillInterval > 0 && c.BackfillBatch < 1 {
		return fmt.Errorf("BACKFILL_BATCH must be positive when backfill is enabled")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}

func (c *Config) HasLLM() bool {
	return c.LLMAPIKey != ""
}

// HasS3 reports whether dataset imports can read s3:// locations. An empty
// endpoint means AWS itself.
func (c *Config) HasS3() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

func (c *Config) HasBackfill() bool {
	return c.BackfillInterval > 0 && c.HasLLM()
}

// TracesSampleRate falls back to full sampling outside production and 10% in it.
func (c *Config) TracesSampleRate() float64 {
	if c.SentrySampleRate > 0 {
		return c.SentrySampleRate
	}
	if c.IsProduction() {
		return 0.1
	}
	return 1.0
}
