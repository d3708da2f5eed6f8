package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings holds the process configuration. It is read once from the
// environment at startup and treated as immutable afterwards.
type Settings struct {
	APIKey         string `envconfig:"OPENAI_API_KEY"`
	BaseURL        string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model          string `envconfig:"GPT_MODEL" default:"gpt-3.5-turbo"`
	User           string `envconfig:"GPT_USER" default:"gpt-cli"`
	TimeoutSeconds int    `envconfig:"GPT_TIMEOUT_SECONDS" default:"600"`
}

// ConfigError reports a missing or unusable piece of configuration. It is
// always surfaced before any network activity.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Settings, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var s Settings
	if err := envconfig.Process("gpt", &s); err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}
	if s.APIKey == "" {
		return nil, &ConfigError{Reason: "OPENAI_API_KEY is not set"}
	}
	return &s, nil
}

// Timeout returns the per-request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
