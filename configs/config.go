package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ServiceAdmin = "admin"
	ServiceShop  = "shop"
)

const (
	DefaultPort            = 5000
	DefaultDatabaseName    = "ecommerce"
	DefaultConnectTimeout  = 10 * time.Second
	DefaultConnectAttempts = 3
	DefaultBodyLimit       = 100 << 10
	DefaultSearchCacheTTL  = 5 * time.Minute
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

type AppConfig struct {
	Env  string `yaml:"env" env:"APP_ENV"`
	Port int    `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
}

type DatabaseConfig struct {
	URI             string        `yaml:"uri" env:"MONGODB_URI" validate:"required"`
	Name            string        `yaml:"name" env:"MONGODB_DATABASE" validate:"required"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" validate:"gt=0"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"DB_CONNECT_ATTEMPTS" validate:"min=1"`
}

type CORSConfig struct {
	ClientOrigin string `yaml:"client_origin" env:"CLIENT_URL" validate:"required,url"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error fatal"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

type RedisConfig struct {
	URL string        `yaml:"url" env:"REDIS_URL"`
	TTL time.Duration `yaml:"ttl" env:"SEARCH_CACHE_TTL"`
}

type HTTPConfig struct {
	BodyLimit       int64         `yaml:"body_limit" env:"BODY_LIMIT" validate:"gt=0"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Config struct {
	Service  string         `yaml:"-"`
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// LoadConfig builds the configuration of one service. Values come from, in
// increasing priority: defaults, the YAML file named by CONFIG_PATH, .env
// files and the process environment.
func LoadConfig(service string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := defaultConfig(service)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigurationError{Field: "CONFIG_PATH", Message: "cannot read config file", Err: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigurationError{Field: "CONFIG_PATH", Message: "cannot parse config file", Err: err}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig(service string) *Config {
	return &Config{
		Service: service,
		App:     AppConfig{Env: "development", Port: DefaultPort},
		Database: DatabaseConfig{
			Name:            DefaultDatabaseName,
			ConnectTimeout:  DefaultConnectTimeout,
			ConnectAttempts: DefaultConnectAttempts,
		},
		Log:   LogConfig{Level: "info"},
		Redis: RedisConfig{TTL: DefaultSearchCacheTTL},
		HTTP: HTTPConfig{
			BodyLimit:       DefaultBodyLimit,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}

// loadEnvFiles loads ENV_FILE when set, otherwise .env.local and .env.
// Missing files are ignored; variables already in the environment win.
func loadEnvFiles() error {
	files := []string{".env.local", ".env"}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		files = []string{envFile}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &ConfigurationError{Field: "ENV_FILE", Message: fmt.Sprintf("cannot load %s", file), Err: err}
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.Database.URI, "MONGODB_URI")
	setString(&cfg.Database.Name, "MONGODB_DATABASE")
	setString(&cfg.CORS.ClientOrigin, "CLIENT_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Redis.URL, "REDIS_URL")

	// <SERVICE>_SERVICE_PORT lets both services share a host and an .env file.
	if err := setInt(&cfg.App.Port, "PORT"); err != nil {
		return err
	}
	if cfg.Service != "" {
		if err := setInt(&cfg.App.Port, strings.ToUpper(cfg.Service)+"_SERVICE_PORT"); err != nil {
			return err
		}
	}

	if err := setInt(&cfg.Database.ConnectAttempts, "DB_CONNECT_ATTEMPTS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Database.ConnectTimeout, "DB_CONNECT_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Redis.TTL, "SEARCH_CACHE_TTL"); err != nil {
		return err
	}

	if raw := os.Getenv("BODY_LIMIT"); raw != "" {
		limit, err := ParseByteSize(raw)
		if err != nil {
			return &ConfigurationError{Field: "BODY_LIMIT", Message: "must be a byte size such as 100kb", Err: err}
		}
		cfg.HTTP.BodyLimit = limit
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return &ConfigurationError{Field: key, Message: "must be an integer", Err: err}
	}
	*dst = v
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return &ConfigurationError{Field: key, Message: "must be a duration such as 10s", Err: err}
	}
	*dst = v
	return nil
}

// ParseByteSize parses sizes like "512", "100kb" or "1mb".
func ParseByteSize(raw string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	multiplier := int64(1)

	switch {
	case strings.HasSuffix(s, "kb"):
		multiplier, s = 1<<10, strings.TrimSuffix(s, "kb")
	case strings.HasSuffix(s, "mb"):
		multiplier, s = 1<<20, strings.TrimSuffix(s, "mb")
	case strings.HasSuffix(s, "b"):
		s = strings.TrimSuffix(s, "b")
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("byte size must be positive, got %d", n)
	}
	return n * multiplier, nil
}
