package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreMongo    StoreKind = "mongo"
	StorePostgres StoreKind = "postgres"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreKind      `yaml:"store"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`

	// SeedCSV: CSV de outcomes AAC que se carga al arrancar en modo memory (opcional).
	SeedCSV string `yaml:"seed_csv"`
}

type HTTPConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type MongoConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type SessionsConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:         "8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Store: StoreMemory,
		Mongo: MongoConfig{
			Host:       "localhost",
			Port:       "27017",
			Database:   "AAC",
			Collection: "animals",
		},
		Sessions: SessionsConfig{
			TTL: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			App:    "shelter-dashboard",
		},
	}
}

// Load arma la config: defaults -> YAML (si path no está vacío y existe) -> env.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// sin archivo => defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.HTTP.Port, "PORT")
	set(&c.Mongo.Host, "MONGO_HOST")
	set(&c.Mongo.Port, "MONGO_PORT")
	set(&c.Mongo.User, "MONGO_USER")
	set(&c.Mongo.Password, "MONGO_PASS")
	set(&c.Mongo.Database, "MONGO_DB")
	set(&c.Mongo.Collection, "MONGO_COLLECTION")
	set(&c.Postgres.DSN, "DB_DSN")
	set(&c.SeedCSV, "SEED_CSV")
	set(&c.Logging.Level, "LOG_LEVEL")
	set(&c.Logging.Format, "LOG_FORMAT")
	set(&c.Logging.App, "APP_NAME")

	if v := strings.TrimSpace(getenv("STORE")); v != "" {
		c.Store = StoreKind(strings.ToLower(v))
	}
	if v := strings.TrimSpace(getenv("SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SESSION_TTL %q: %v", ErrInvalidConfig, v, err)
		}
		c.Sessions.TTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreMongo:
		if strings.TrimSpace(c.Mongo.Host) == "" || strings.TrimSpace(c.Mongo.Port) == "" {
			return fmt.Errorf("%w: mongo host and port required", ErrInvalidConfig)
		}
		if strings.TrimSpace(c.Mongo.Database) == "" || strings.TrimSpace(c.Mongo.Collection) == "" {
			return fmt.Errorf("%w: mongo database and collection required", ErrInvalidConfig)
		}
	case StorePostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("%w: DB_DSN required for postgres store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}

	if strings.TrimSpace(c.HTTP.Port) == "" {
		return fmt.Errorf("%w: http port required", ErrInvalidConfig)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	}
	return nil
}

// Addr devuelve ":<port>" para http.Server.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.HTTP.Port)
}
