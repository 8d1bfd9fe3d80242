package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. DISPATCH_HTTP_PORT.
const EnvPrefix = "DISPATCH"

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config is read from DISPATCH_* variables. Field names map to variable
// names by splitting words, e.g. Store.PollInterval is
// DISPATCH_STORE_POLL_INTERVAL.
type Config struct {
	AppEnv   string `split_words:"true" default:"development"`
	LogLevel string `split_words:"true" default:"info"`
	HTTPPort string `split_words:"true" default:"8082"`

	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Photos   PhotosConfig
}

type StoreConfig struct {
	Driver       string        `default:"memory"`
	Timeout      time.Duration `default:"5s"`
	PollInterval time.Duration `split_words:"true" default:"2s"`
}

type PostgresConfig struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	User     string `default:"postgres"`
	Password string
	Name     string `default:"dispatch"`
	SSLMode  string `split_words:"true" default:"disable"`
}

// DSN builds a libpq connection URL.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	URL    string `default:"redis://localhost:6379/0"`
	Prefix string `default:"dispatch"`
}

type MongoConfig struct {
	URI      string `default:"mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `default:"dispatch"`
	Direct   bool   `default:"false"`
}

type JWTConfig struct {
	Secret string        `required:"true"`
	Issuer string        `default:"dispatch"`
	TTL    time.Duration `default:"1h"`
}

type PhotosConfig struct {
	Endpoint      string `default:"http://localhost:9000"`
	Bucket        string `default:"dispatch"`
	Token         string
	PublicBaseURL string        `split_words:"true"`
	Timeout       time.Duration `default:"30s"`
}

// IsProduction reports whether logs should be JSON.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// LoadConfig reads the given .env files (".env" when none are named) into the
// process environment, then parses DISPATCH_* variables. Missing files are
// skipped; variables already set win over file values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	drivers := []string{StoreMemory, StoreRedis, StoreMongo, StorePostgres}
	if !slices.Contains(drivers, cfg.Store.Driver) {
		return Config{}, fmt.Errorf("unknown store driver %q, want one of %s", cfg.Store.Driver, strings.Join(drivers, ", "))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	if cfg.Store.PollInterval < time.Second {
		return Config{}, fmt.Errorf("poll interval %s is below one second", cfg.Store.PollInterval)
	}

	return cfg, nil
}
