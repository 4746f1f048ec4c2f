package app

import (
	"strings"

	"github.com/yungbote/studyscout-backend/internal/platform/atlas"
	"github.com/yungbote/studyscout-backend/internal/platform/envutil"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
	"github.com/yungbote/studyscout-backend/internal/platform/openai"
)

const serviceName = "studyscout-backend"

type Config struct {
	Port                string
	Environment         string
	ServiceVersion      string
	CategoryMappingPath string
	NumCandidates       int
	AllowOrigins        []string

	OpenAI openai.Config
	Atlas  atlas.Config
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:                envutil.Str("PORT", "8000"),
		Environment:         envutil.Str("APP_ENV", "development"),
		ServiceVersion:      envutil.Str("SERVICE_VERSION", "dev"),
		CategoryMappingPath: envutil.Str("CATEGORY_MAPPING_PATH", "config/category_mapping.json"),
		NumCandidates:       envutil.Int("SEARCH_NUM_CANDIDATES", 0),
	}

	if raw := envutil.Str("CORS_ALLOW_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}

	openaiCfg, err := openai.ResolveConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.OpenAI = openaiCfg

	atlasCfg, err := atlas.ResolveConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Atlas = atlasCfg

	log.Debug("Configuration loaded",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"category_mapping_path", cfg.CategoryMappingPath,
		"embed_model", cfg.OpenAI.EmbedModel,
		"atlas_database", cfg.Atlas.Database,
		"atlas_collection", cfg.Atlas.Collection,
	)
	return cfg, nil
}
