package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"consilium/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	Orchestrator  OrchestratorConfig
	Report        ReportConfig
	Server        ServerConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"consilium"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type AIConfig struct {
	OpenAIKey   string        `envconfig:"OPENAI_API_KEY"`
	Model       string        `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	Temperature float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.3"`
	MaxTokens   int64         `envconfig:"OPENAI_MAX_TOKENS" default:"4096"`
	Timeout     time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`

	// Requests per minute against the chat completions API.
	// OpenAI Tier 1 allows 500 RPM; stay well under it by default.
	RequestsPerMinute float64 `envconfig:"OPENAI_REQUESTS_PER_MINUTE" default:"60"`
}

type OrchestratorConfig struct {
	EnableDialogue bool          `envconfig:"ENABLE_DIALOGUE" default:"true"`
	AgentTimeout   time.Duration `envconfig:"AGENT_TIMEOUT" default:"2m"`

	// Dialogue uses a higher temperature than analysis to encourage
	// the moderator to surface tensions rather than restate inputs.
	DialogueTemperature float64 `envconfig:"DIALOGUE_TEMPERATURE" default:"0.7"`
}

type ReportConfig struct {
	OutputDir string `envconfig:"REPORT_OUTPUT_DIR" default:"reports"`
}

type ServerConfig struct {
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
