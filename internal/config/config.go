package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
}

// StoreConfig selects the backend holding users and contacts.
type StoreConfig struct {
	Driver string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// SQLiteConfig holds the embedded database location.
type SQLiteConfig struct {
	Path          string
	RunMigrations bool
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI            string
	Database       string
	EnsureIndexes  bool
	ConnectTimeout int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled            bool
	Addr               string
	Password           string
	DB                 int
	IdentityTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "contact-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		SQLite: SQLiteConfig{
			Path:          getEnv("SQLITE_PATH", "contacts.db"),
			RunMigrations: getEnvAsBool("SQLITE_RUN_MIGRATIONS", true),
		},
		Mongo: MongoConfig{
			URI:            os.Getenv("MONGO_URI"),
			Database:       getEnv("MONGO_DATABASE", "contact_manager"),
			EnsureIndexes:  getEnvAsBool("MONGO_ENSURE_INDEXES", true),
			ConnectTimeout: getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Enabled:            getEnvAsBool("REDIS_ENABLED", false),
			Addr:               getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:           os.Getenv("REDIS_PASSWORD"),
			DB:                 redisDB,
			IdentityTTLSeconds: getEnvAsInt("REDIS_IDENTITY_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60*24*7),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store driver has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IdentityTTL returns how long resolved identities stay cached.
func (r RedisConfig) IdentityTTL() time.Duration {
	if r.IdentityTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.IdentityTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
