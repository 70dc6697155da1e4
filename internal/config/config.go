package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"skillpath_backend/internal/simulate"
)

const envPrefix = "SKILLPATH"

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Tracing    TracingConfig   `mapstructure:"tracing"`
	CORS       CORSConfig      `mapstructure:"cors"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Simulation simulate.Delays `mapstructure:"simulation"`
	Upload     UploadConfig    `mapstructure:"upload"`
	Market     MarketConfig    `mapstructure:"market"`
	Wizard     WizardConfig    `mapstructure:"wizard"`
	AI         AIConfig        `mapstructure:"ai"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime)
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	BaseURL       string `mapstructure:"base_url"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMinutes) * time.Minute
}

type UploadConfig struct {
	MaxSizeMB int64 `mapstructure:"max_size_mb"`
}

func (u UploadConfig) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

type MarketConfig struct {
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

func (m MarketConfig) CacheTTL() time.Duration {
	return time.Duration(m.CacheTTLMinutes) * time.Minute
}

type WizardConfig struct {
	TTLHours int `mapstructure:"ttl_hours"`
}

func (w WizardConfig) TTL() time.Duration {
	return time.Duration(w.TTLHours) * time.Hour
}

// AIConfig configures the chat assistant. A provider is available when it
// has an API key.
type AIConfig struct {
	TimeoutSeconds int              `mapstructure:"timeout_seconds"`
	MaxTokens      int              `mapstructure:"max_tokens"`
	Claude         AIProviderConfig `mapstructure:"claude"`
	OpenAI         AIProviderConfig `mapstructure:"openai"`
}

func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AIProviderConfig points at an OpenAI compatible chat completions API.
type AIProviderConfig struct {
	BaseURL string   `mapstructure:"base_url"`
	APIKey  string   `mapstructure:"api_key"`
	Model   string   `mapstructure:"model"`
	Models  []string `mapstructure:"models"`
}

func setDefaults(v *viper.Viper) {
	d := simulate.DefaultDelays()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "skillpath")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./uploads")
	v.SetDefault("storage.base_url", "/uploads")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("simulation.job_search", d.JobSearch)
	v.SetDefault("simulation.resume_upload", d.ResumeUpload)
	v.SetDefault("simulation.resume_analysis", d.ResumeAnalysis)
	v.SetDefault("simulation.assessment", d.Assessment)
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("market.cache_ttl_minutes", 30)
	v.SetDefault("wizard.ttl_hours", 24)
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.max_tokens", 1000)
	v.SetDefault("ai.claude.base_url", "https://api.anthropic.com/v1")
	v.SetDefault("ai.claude.api_key", "")
	v.SetDefault("ai.claude.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("ai.claude.models", []string{"claude-3-5-sonnet-20241022", "claude-3-opus-20240229", "claude-3-haiku-20240307"})
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-3.5-turbo")
	v.SetDefault("ai.openai.models", []string{"gpt-4", "gpt-4-turbo-preview", "gpt-3.5-turbo"})
}

// bindEnv maps a key to SKILLPATH_<NAME> and, for deployment compatibility,
// to the bare <NAME>.
func bindEnv(v *viper.Viper, key, name string) {
	_ = v.BindEnv(key, envPrefix+"_"+name, name)
}

// LoadConfig reads config.yaml from dir, overlays the environment (including
// an optional .env file) and validates the result. A missing config file is
// not an error; defaults and the environment are used instead.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	bindEnv(v, "database.host", "DATABASE_HOST")
	bindEnv(v, "database.port", "DATABASE_PORT")
	bindEnv(v, "database.user", "DATABASE_USER")
	bindEnv(v, "database.password", "DATABASE_PASSWORD")
	bindEnv(v, "database.dbname", "DATABASE_NAME")

	// JWT
	bindEnv(v, "jwt.secret", "JWT_SECRET")

	// Redis
	bindEnv(v, "redis.host", "REDIS_HOST")
	bindEnv(v, "redis.port", "REDIS_PORT")
	bindEnv(v, "redis.password", "REDIS_PASSWORD")

	// Server
	bindEnv(v, "server.mode", "SERVER_MODE")
	bindEnv(v, "server.port", "SERVER_PORT")

	// Storage
	bindEnv(v, "storage.type", "STORAGE_TYPE")
	bindEnv(v, "storage.oss_endpoint", "OSS_ENDPOINT")
	bindEnv(v, "storage.oss_access_key", "OSS_ACCESS_KEY")
	bindEnv(v, "storage.oss_secret_key", "OSS_SECRET_KEY")
	bindEnv(v, "storage.oss_bucket", "OSS_BUCKET")
	bindEnv(v, "storage.minio_endpoint", "MINIO_ENDPOINT")
	bindEnv(v, "storage.minio_access_key", "MINIO_ACCESS_KEY")
	bindEnv(v, "storage.minio_secret_key", "MINIO_SECRET_KEY")
	bindEnv(v, "storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	bindEnv(v, "tracing.enabled", "TRACING_ENABLED")
	bindEnv(v, "tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// AI
	bindEnv(v, "ai.claude.api_key", "ANTHROPIC_API_KEY")
	bindEnv(v, "ai.claude.base_url", "ANTHROPIC_BASE_URL")
	bindEnv(v, "ai.openai.api_key", "OPENAI_API_KEY")
	bindEnv(v, "ai.openai.base_url", "OPENAI_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if err := os.MkdirAll(filepath.Clean(cfg.Storage.LocalPath), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("upload.max_size_mb must be positive, got %d", c.Upload.MaxSizeMB)
	}
	for name, d := range map[string]time.Duration{
		"job_search":      c.Simulation.JobSearch,
		"resume_upload":   c.Simulation.ResumeUpload,
		"resume_analysis": c.Simulation.ResumeAnalysis,
		"assessment":      c.Simulation.Assessment,
	} {
		if d < 0 {
			return fmt.Errorf("simulation.%s must not be negative", name)
		}
	}
	return nil
}
