package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Profile   ProfileConfig   `yaml:"profile" mapstructure:"profile"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects and configures the row-store backend.
type SourceConfig struct {
	// Driver is one of "postgrest", "postgres", or "sqlite".
	Driver string `yaml:"driver" mapstructure:"driver"`
	// URL is the PostgREST base URL or the Postgres connection string.
	URL string `yaml:"url" mapstructure:"url"`
	// Key is the PostgREST API key.
	Key string `yaml:"key" mapstructure:"key"`
	// Schema is the PostgREST schema profile, when not the default.
	Schema string `yaml:"schema" mapstructure:"schema"`
	// SnapshotPath is the SQLite snapshot file for the sqlite driver.
	SnapshotPath string `yaml:"snapshot_path" mapstructure:"snapshot_path"`
	// RateLimit caps PostgREST requests per second.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ProfileConfig tunes profile aggregation.
type ProfileConfig struct {
	FlowLimit    int  `yaml:"flow_limit" mapstructure:"flow_limit"`
	FetchLimit   int  `yaml:"fetch_limit" mapstructure:"fetch_limit"`
	RequireEmail bool `yaml:"require_email" mapstructure:"require_email"`
}

// ServerConfig configures the admin HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// AnthropicConfig enables the optional narrative brief generator.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRADELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.driver", "postgrest")
	v.SetDefault("source.rate_limit", 20)
	v.SetDefault("profile.flow_limit", 10)
	v.SetDefault("profile.fetch_limit", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
