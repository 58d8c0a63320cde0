package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/yungbote/farm-catalog-backend/internal/data/db"
	"github.com/yungbote/farm-catalog-backend/internal/observability"
)

type (
	Config struct {
		App   AppConfig   `yaml:"app"`
		HTTP  HTTPConfig  `yaml:"http"`
		DB    DBConfig    `yaml:"db"`
		Redis RedisConfig `yaml:"redis"`
		Otel  OtelConfig  `yaml:"otel"`
		Seed  SeedConfig  `yaml:"seed"`
	}

	AppConfig struct {
		Name     string `yaml:"name" env:"APP_NAME" env-default:"farm-catalog"`
		Version  string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
		Env      string `yaml:"env" env:"APP_ENV,LOG_MODE" env-default:"development"`
		LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	}

	HTTPConfig struct {
		Addr             string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
		ShutdownTimeout  time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
		CORSAllowOrigins []string      `yaml:"cors-allow-origins" env:"CORS_ALLOW_ORIGINS"`
	}

	DBConfig struct {
		Driver         string        `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
		DSN            string        `yaml:"dsn" env:"DB_DSN"`
		Host           string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
		Port           string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
		User           string        `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
		Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
		Name           string        `yaml:"name" env:"POSTGRES_NAME" env-default:"farm_catalog"`
		SQLitePath     string        `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"farm_catalog.db"`
		ConnectTimeout time.Duration `yaml:"connect-timeout" env:"DB_CONNECT_TIMEOUT" env-default:"30s"`
		MaxOpenConns   int           `yaml:"max-open-conns" env:"DB_MAX_OPEN_CONNS"`
	}

	RedisConfig struct {
		Addr    string `yaml:"addr" env:"REDIS_ADDR"`
		Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"catalog-events"`
	}

	OtelConfig struct {
		Enabled      bool    `yaml:"enabled" env:"OTEL_ENABLED"`
		Endpoint     string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Insecure     bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
		Headers      string  `yaml:"headers" env:"OTEL_EXPORTER_OTLP_HEADERS"`
		SamplerRatio float64 `yaml:"sampler-ratio" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
	}

	SeedConfig struct {
		OnStart bool   `yaml:"on-start" env:"SEED_ON_START"`
		File    string `yaml:"file" env:"SEED_FILE"`
	}
)

// LoadConfig reads path (when set) and then the environment, which wins.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config error: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: must be %s or %s", c.DB.Driver, db.DriverPostgres, db.DriverSQLite)
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	return nil
}

func (c Config) LogMode() string {
	if strings.EqualFold(strings.TrimSpace(c.App.Env), "production") {
		return "production"
	}
	return "development"
}

func (c Config) Database() db.Config {
	return db.Config{
		Driver:         strings.ToLower(strings.TrimSpace(c.DB.Driver)),
		DSN:            c.DB.DSN,
		Host:           c.DB.Host,
		Port:           c.DB.Port,
		User:           c.DB.User,
		Password:       c.DB.Password,
		Name:           c.DB.Name,
		SQLitePath:     c.DB.SQLitePath,
		ConnectTimeout: c.DB.ConnectTimeout,
		MaxOpenConns:   c.DB.MaxOpenConns,
	}
}

func (c Config) Tracing() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:      c.Otel.Enabled,
		ServiceName:  c.App.Name,
		Environment:  c.App.Env,
		Version:      c.App.Version,
		Endpoint:     c.Otel.Endpoint,
		Insecure:     c.Otel.Insecure,
		SamplerRatio: c.Otel.SamplerRatio,
		Headers:      observability.ParseHeaders(c.Otel.Headers),
	}
}
