package openai

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY",
		"OPENAI_BASE_URL",
		"OPENAI_EMBED_MODEL",
		"OPENAI_TIMEOUT_SECONDS",
		"OPENAI_MAX_RETRIES",
	} {
		t.Setenv(key, "")
	}
}

func TestResolveConfigFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("APIKey: got=%q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://api.openai.com" {
		t.Fatalf("BaseURL default: got=%q", cfg.BaseURL)
	}
	if cfg.EmbedModel != "text-embedding-3-small" {
		t.Fatalf("EmbedModel default: got=%q", cfg.EmbedModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("Timeout default: got=%s", cfg.Timeout)
	}
	if cfg.MaxRetries != 4 {
		t.Fatalf("MaxRetries default: got=%d", cfg.MaxRetries)
	}
}

func TestResolveConfigFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.internal:8443")
	t.Setenv("OPENAI_EMBED_MODEL", "text-embedding-3-large")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "5")
	t.Setenv("OPENAI_MAX_RETRIES", "0")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.BaseURL != "https://proxy.internal:8443" {
		t.Fatalf("BaseURL: got=%q", cfg.BaseURL)
	}
	if cfg.EmbedModel != "text-embedding-3-large" {
		t.Fatalf("EmbedModel: got=%q", cfg.EmbedModel)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout: got=%s", cfg.Timeout)
	}
	if cfg.MaxRetries != 0 {
		t.Fatalf("MaxRetries: got=%d", cfg.MaxRetries)
	}
}

func TestResolveConfigFromEnvErrors(t *testing.T) {
	cases := []struct {
		name     string
		env      map[string]string
		wantCode ConfigErrorCode
	}{
		{
			name:     "missing_api_key",
			env:      map[string]string{},
			wantCode: ConfigErrorMissingAPIKey,
		},
		{
			name: "invalid_base_url",
			env: map[string]string{
				"OPENAI_API_KEY":  "sk-test",
				"OPENAI_BASE_URL": "not a url",
			},
			wantCode: ConfigErrorInvalidBaseURL,
		},
		{
			name: "invalid_timeout",
			env: map[string]string{
				"OPENAI_API_KEY":         "sk-test",
				"OPENAI_TIMEOUT_SECONDS": "zero",
			},
			wantCode: ConfigErrorInvalidTimeout,
		},
		{
			name: "negative_timeout",
			env: map[string]string{
				"OPENAI_API_KEY":         "sk-test",
				"OPENAI_TIMEOUT_SECONDS": "-3",
			},
			wantCode: ConfigErrorInvalidTimeout,
		},
		{
			name: "invalid_max_retries",
			env: map[string]string{
				"OPENAI_API_KEY":     "sk-test",
				"OPENAI_MAX_RETRIES": "-1",
			},
			wantCode: ConfigErrorInvalidMaxRetries,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := ResolveConfigFromEnv()
			if err == nil {
				t.Fatalf("expected error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Code != tc.wantCode {
				t.Fatalf("code: want=%q got=%q", tc.wantCode, cfgErr.Code)
			}
		})
	}
}
