package openai

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL    = "https://api.openai.com"
	defaultEmbedModel = "text-embedding-3-small"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 4
)

type Config struct {
	APIKey     string
	BaseURL    string
	EmbedModel string
	Timeout    time.Duration
	MaxRetries int
}

type ConfigErrorCode string

const (
	ConfigErrorMissingAPIKey     ConfigErrorCode = "missing_api_key"
	ConfigErrorInvalidBaseURL    ConfigErrorCode = "invalid_base_url"
	ConfigErrorInvalidTimeout    ConfigErrorCode = "invalid_timeout"
	ConfigErrorInvalidMaxRetries ConfigErrorCode = "invalid_max_retries"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid openai config"
	}
	switch e.Code {
	case ConfigErrorMissingAPIKey:
		return "OPENAI_API_KEY is required"
	case ConfigErrorInvalidBaseURL:
		return fmt.Sprintf(
			"invalid OPENAI_BASE_URL=%q; expected absolute URL like https://api.openai.com",
			e.Value,
		)
	case ConfigErrorInvalidTimeout:
		return fmt.Sprintf(
			"invalid OPENAI_TIMEOUT_SECONDS=%q; expected positive integer",
			e.Value,
		)
	case ConfigErrorInvalidMaxRetries:
		return fmt.Sprintf(
			"invalid OPENAI_MAX_RETRIES=%q; expected non-negative integer",
			e.Value,
		)
	default:
		return "invalid openai config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:    strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		EmbedModel: strings.TrimSpace(os.Getenv("OPENAI_EMBED_MODEL")),
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = defaultEmbedModel
	}

	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, &ConfigError{
				Code:  ConfigErrorInvalidTimeout,
				Value: raw,
				Cause: err,
			}
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	if raw := strings.TrimSpace(os.Getenv("OPENAI_MAX_RETRIES")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Config{}, &ConfigError{
				Code:  ConfigErrorInvalidMaxRetries,
				Value: raw,
				Cause: err,
			}
		}
		cfg.MaxRetries = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &ConfigError{Code: ConfigErrorMissingAPIKey}
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || strings.TrimSpace(parsed.Scheme) == "" || strings.TrimSpace(parsed.Host) == "" {
		return &ConfigError{
			Code:  ConfigErrorInvalidBaseURL,
			Value: cfg.BaseURL,
			Cause: err,
		}
	}
	return nil
}
