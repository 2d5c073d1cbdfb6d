package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	AI     AIConfig
	S3     S3Config
	App    AppConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AIConfig selects and authenticates the evaluation provider.
// APIKey is the only secret the service needs.
type AIConfig struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
	PresignTTL      time.Duration
}

type AppConfig struct {
	DryRun             bool
	LogLevel           string
	MaxMultipartMemory int64
}

var defaultModels = map[string]string{
	"gemini":    "gemini-1.5-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-sonnet-latest",
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 120*time.Second)
	v.SetDefault("AI_PROVIDER", "gemini")
	v.SetDefault("AI_API_KEY", "")
	v.SetDefault("AI_MODEL", "")
	v.SetDefault("AI_BASE_URL", "")
	v.SetDefault("AI_MAX_TOKENS", 1024)
	v.SetDefault("S3_ENDPOINT", "localhost:9000")
	v.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_BUCKET_NAME", "artifacts")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PRESIGN_TTL", 15*time.Minute)
	v.SetDefault("APP_DRY_RUN", false)
	v.SetDefault("APP_LOG_LEVEL", "info")
	v.SetDefault("APP_MAX_MULTIPART_MEMORY", 32<<20) // 32MB

	v.AutomaticEnv()

	provider := strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER")))
	model := v.GetString("AI_MODEL")
	if model == "" {
		model = defaultModels[provider]
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		AI: AIConfig{
			Provider:  provider,
			APIKey:    v.GetString("AI_API_KEY"),
			Model:     model,
			BaseURL:   v.GetString("AI_BASE_URL"),
			MaxTokens: v.GetInt("AI_MAX_TOKENS"),
		},
		S3: S3Config{
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          v.GetBool("S3_USE_SSL"),
			BucketName:      v.GetString("S3_BUCKET_NAME"),
			Region:          v.GetString("S3_REGION"),
			PresignTTL:      v.GetDuration("S3_PRESIGN_TTL"),
		},
		App: AppConfig{
			DryRun:             v.GetBool("APP_DRY_RUN"),
			LogLevel:           v.GetString("APP_LOG_LEVEL"),
			MaxMultipartMemory: v.GetInt64("APP_MAX_MULTIPART_MEMORY"),
		},
	}

	if !cfg.App.DryRun {
		if _, ok := defaultModels[cfg.AI.Provider]; !ok {
			return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
		}
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// StagesArtifacts reports whether the configured provider addresses images by
// URL and therefore needs the S3 staging bucket.
func (c *Config) StagesArtifacts() bool {
	return !c.App.DryRun && (c.AI.Provider == "openai" || c.AI.Provider == "anthropic")
}
