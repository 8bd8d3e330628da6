package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server reads at startup. Values come from the
// yaml file when present, overridden by environment variables.
type Config struct {
	LogLevel     string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	WebDir       string `yaml:"web-dir" env:"WEB_DIR" env-default:"./web"`
	NamesFile    string `yaml:"names-file" env:"NAMES_FILE" env-default:"names.txt"`
	MemoryFile   string `yaml:"memory-file" env:"MEMORY_FILE" env-default:"ai_memory.json"`
	RedisAddr    string `yaml:"redis-addr" env:"REDIS_ADDR" env-default:""`
	OTLPEndpoint string `yaml:"otlp-endpoint" env:"OTLP_ENDPOINT" env-default:""`
	Search       Search `yaml:"search"`
}

// Search bounds the hardest bot's adversarial search.
type Search struct {
	Depth    int           `yaml:"depth" env:"SEARCH_DEPTH" env-default:"4"`
	MaxNodes int           `yaml:"max-nodes" env:"SEARCH_MAX_NODES" env-default:"500000"`
	Timeout  time.Duration `yaml:"timeout" env:"SEARCH_TIMEOUT" env-default:"2s"`
}

// Load reads configuration from path, falling back to environment-only when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	return cfg, nil
}
