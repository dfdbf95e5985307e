package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// AnalysisConfig holds tunables for the analysis pipeline
type AnalysisConfig struct {
	MinTextLength int `mapstructure:"min_text_length"`
	MaxEntities   int `mapstructure:"max_entities"`
	MaxSpans      int `mapstructure:"max_spans"`
	MaxBatchSize  int `mapstructure:"max_batch_size"`
}

// LLMConfig holds external classifier configuration.
// An empty API key for the selected provider disables blending process-wide.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"` // "claude" or "openai"
	ClaudeAPIKey string        `mapstructure:"claude_api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Model        string        `mapstructure:"model"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ContextChars int           `mapstructure:"context_chars"`
}

// Enabled reports whether a usable credential is configured for the provider.
func (c LLMConfig) Enabled() bool {
	switch c.Provider {
	case "claude":
		return c.ClaudeAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	}
	return false
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/redflag-lab")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("REDFLAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.enabled", "REDFLAG_REDIS_ENABLED")
	v.BindEnv("redis.host", "REDFLAG_REDIS_HOST")
	v.BindEnv("redis.port", "REDFLAG_REDIS_PORT")
	v.BindEnv("redis.password", "REDFLAG_REDIS_PASSWORD")
	v.BindEnv("llm.provider", "REDFLAG_LLM_PROVIDER")
	v.BindEnv("llm.claude_api_key", "REDFLAG_LLM_CLAUDE_API_KEY")
	v.BindEnv("llm.openai_api_key", "REDFLAG_LLM_OPENAI_API_KEY")
	v.BindEnv("app.environment", "REDFLAG_APP_ENVIRONMENT")

	// Read config file; defaults are complete, so a missing file is fine
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "redflag-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "redflag:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "Authorization"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("analysis.min_text_length", 4)
	v.SetDefault("analysis.max_entities", 30)
	v.SetDefault("analysis.max_spans", 30)
	v.SetDefault("analysis.max_batch_size", 25)

	v.SetDefault("llm.provider", "claude")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_tokens", 1500)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", "10s")
	v.SetDefault("llm.context_chars", 3500)
}
