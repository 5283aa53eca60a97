package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Process backends selectable for the durable tier.
const (
	ProcessBackendPostgres = "postgres"
	ProcessBackendRedis    = "redis"
	ProcessBackendSQLite   = "sqlite"
)

// Config captures everything main needs to wire the service.
type Config struct {
	Server     Server
	Log        Log
	Database   DatabaseConfig
	Redis      RedisConfig
	SQLite     SQLiteConfig
	Validation Validation
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// DatabaseConfig configures the PostgreSQL pool shared by the record and process stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// RedisConfig configures the Redis process backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SQLiteConfig configures the embedded process backend.
type SQLiteConfig struct {
	Path string
}

// Validation configures the orchestrator and its stores.
type Validation struct {
	ProcessBackend string
	RecordsTable   string
	ProcessesTable string
	ContactField   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            envString("RECORDCHECK_ADDR", ":8080"),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Log: Log{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectTimeout:  envDuration("DATABASE_CONNECT_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		SQLite: SQLiteConfig{
			Path: envString("SQLITE_PATH", "recordcheck.db"),
		},
		Validation: Validation{
			ProcessBackend: strings.ToLower(envString("PROCESS_BACKEND", ProcessBackendPostgres)),
			RecordsTable:   envString("RECORDS_TABLE", "records"),
			ProcessesTable: envString("PROCESSES_TABLE", "validation_processes"),
			ContactField:   envString("CONTACT_FIELD", "email"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations main cannot wire.
func (c Config) Validate() error {
	switch c.Validation.ProcessBackend {
	case ProcessBackendPostgres, ProcessBackendRedis, ProcessBackendSQLite:
	default:
		return fmt.Errorf("unknown PROCESS_BACKEND %q", c.Validation.ProcessBackend)
	}
	if c.Validation.ContactField == "" {
		return fmt.Errorf("CONTACT_FIELD cannot be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt and envDuration fall back on unparsable values rather than failing startup.
func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
