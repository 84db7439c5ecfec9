package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMTemperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.9"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`

	RemoteCallsPerWindow int           `env:"REMOTE_CALLS_PER_WINDOW" envDefault:"0"`
	RemoteCallWindow     time.Duration `env:"REMOTE_CALL_WINDOW" envDefault:"1m"`
	GenerationLockTTL    time.Duration `env:"GENERATION_LOCK_TTL" envDefault:"90s"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.LLMModel = strings.TrimSpace(cfg.LLMModel)
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModels[cfg.LLMProvider]
	}
	return &cfg, nil
}

// defaultModels por proveedor cuando LLM_MODEL no viene definido.
var defaultModels = map[string]string{
	"gemini": "gemini-2.5-flash",
	"openai": "gpt-4o-mini",
}

// RemoteConfigured indica si hay credenciales para el modelo remoto.
// Sin clave el motor responde siempre con la heurística local.
func (c *Config) RemoteConfigured() bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.LLMAPIKey) != ""
}
