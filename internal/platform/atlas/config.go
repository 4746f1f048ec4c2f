package atlas

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabase       = "mcat_study_tool"
	defaultCollection     = "khan_resources"
	defaultVectorIndex    = "vector_index"
	defaultVectorDim      = 1536
	defaultConnectTimeout = 30 * time.Second
)

type Config struct {
	URI            string
	Database       string
	Collection     string
	VectorIndex    string
	VectorDim      int
	ConnectTimeout time.Duration
}

type ConfigErrorCode string

const (
	ConfigErrorMissingURI        ConfigErrorCode = "missing_uri"
	ConfigErrorInvalidURI        ConfigErrorCode = "invalid_uri"
	ConfigErrorMissingDatabase   ConfigErrorCode = "missing_database"
	ConfigErrorMissingCollection ConfigErrorCode = "missing_collection"
	ConfigErrorMissingIndex      ConfigErrorCode = "missing_vector_index"
	ConfigErrorInvalidVectorDim  ConfigErrorCode = "invalid_vector_dim"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid atlas config"
	}
	switch e.Code {
	case ConfigErrorMissingURI:
		return "MONGODB_URI is required"
	case ConfigErrorInvalidURI:
		return fmt.Sprintf(
			"invalid MONGODB_URI=%q; expected mongodb:// or mongodb+srv:// connection string",
			e.Value,
		)
	case ConfigErrorMissingDatabase:
		return "MONGODB_DATABASE is required"
	case ConfigErrorMissingCollection:
		return "MONGODB_COLLECTION is required"
	case ConfigErrorMissingIndex:
		return "MONGODB_VECTOR_INDEX is required"
	case ConfigErrorInvalidVectorDim:
		return fmt.Sprintf(
			"invalid MONGODB_VECTOR_DIM=%q; expected positive integer",
			e.Value,
		)
	default:
		return "invalid atlas config"
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
		URI:            strings.TrimSpace(os.Getenv("MONGODB_URI")),
		Database:       strings.TrimSpace(os.Getenv("MONGODB_DATABASE")),
		Collection:     strings.TrimSpace(os.Getenv("MONGODB_COLLECTION")),
		VectorIndex:    strings.TrimSpace(os.Getenv("MONGODB_VECTOR_INDEX")),
		VectorDim:      defaultVectorDim,
		ConnectTimeout: defaultConnectTimeout,
	}
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if cfg.VectorIndex == "" {
		cfg.VectorIndex = defaultVectorIndex
	}

	if raw := strings.TrimSpace(os.Getenv("MONGODB_VECTOR_DIM")); raw != "" {
		dim, err := strconv.Atoi(raw)
		if err != nil || dim <= 0 {
			return Config{}, &ConfigError{
				Code:  ConfigErrorInvalidVectorDim,
				Value: raw,
				Cause: err,
			}
		}
		cfg.VectorDim = dim
	}

	if raw := strings.TrimSpace(os.Getenv("MONGODB_CONNECT_TIMEOUT_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.ConnectTimeout = time.Duration(secs) * time.Second
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return &ConfigError{Code: ConfigErrorMissingURI}
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return &ConfigError{Code: ConfigErrorInvalidURI, Value: uri}
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return &ConfigError{Code: ConfigErrorMissingDatabase}
	}
	if strings.TrimSpace(cfg.Collection) == "" {
		return &ConfigError{Code: ConfigErrorMissingCollection}
	}
	if strings.TrimSpace(cfg.VectorIndex) == "" {
		return &ConfigError{Code: ConfigErrorMissingIndex}
	}
	if cfg.VectorDim <= 0 {
		return &ConfigError{
			Code:  ConfigErrorInvalidVectorDim,
			Value: strconv.Itoa(cfg.VectorDim),
		}
	}
	return nil
}
