package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"luckyticket/internal/pkg/validator"
)

const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

type Config struct {
	AppEnv   string         `mapstructure:"app_env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Upload   UploadConfig   `mapstructure:"upload"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	APIPrefix       string        `mapstructure:"api_prefix"`
	TrustProxy      bool          `mapstructure:"trust_proxy"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn" validate:"required"`
}

type UploadConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=local minio"`
	Dir       string `mapstructure:"dir" validate:"required"`
	MaxBodyMB int    `mapstructure:"max_body_mb" validate:"gt=0"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
	Endpoint    string `mapstructure:"endpoint"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads .env (when present), an optional config.yaml from configDir or the
// working directory, and environment overrides such as UPLOAD_DIR or DATABASE_URL.
func Load(configDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	normalize(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()

	configDir = strings.TrimSpace(configDir)
	if configDir == "" {
		configDir = "config"
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("app_env", "dev")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.api_prefix", "/api")
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.dsn", "luckyticket.db")
	v.SetDefault("upload.backend", BackendLocal)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_body_mb", 10)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "minioadmin")
	v.SetDefault("minio.secret_key", "minioadmin")
	v.SetDefault("minio.bucket", "luckyticket")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "5m")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "luckyticket")
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.dsn", "DATABASE_URL", "DATABASE_DSN")
	_ = v.BindEnv("app_env", "APP_ENV", "ENV")

	return v
}

func normalize(cfg *Config) {
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Server.APIPrefix = "/" + strings.Trim(strings.TrimSpace(cfg.Server.APIPrefix), "/")
	if cfg.Server.APIPrefix == "/" {
		cfg.Server.APIPrefix = ""
	}
	cfg.Upload.Backend = strings.ToLower(strings.TrimSpace(cfg.Upload.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	origins := cfg.CORS.AllowedOrigins[:0]
	for _, o := range cfg.CORS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORS.AllowedOrigins = origins
}

func validateConfig(cfg *Config) error {
	if err := validator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Upload.Backend == BackendMinIO {
		if strings.TrimSpace(cfg.MinIO.Endpoint) == "" || strings.TrimSpace(cfg.MinIO.Bucket) == "" {
			return fmt.Errorf("invalid config: minio.endpoint and minio.bucket are required for the minio backend")
		}
	}
	if cfg.Redis.Enabled && strings.TrimSpace(cfg.Redis.Addr) == "" {
		return fmt.Errorf("invalid config: redis.addr must be set when redis is enabled")
	}
	if cfg.Tracing.Enabled && strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		return fmt.Errorf("invalid config: tracing.endpoint must be set when tracing is enabled")
	}
	if IsProdLike(cfg.AppEnv) && cfg.Server.Mode != "release" {
		return fmt.Errorf("invalid config: in prod/release server.mode must be release")
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxBodyMB) * 1024 * 1024
}
