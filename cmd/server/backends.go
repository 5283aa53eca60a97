package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"recordcheck/internal/platform/config"
	"recordcheck/internal/platform/postgres"
	"recordcheck/internal/platform/redis"
	"recordcheck/internal/platform/sqlite"
	"recordcheck/internal/validation/handler"
	"recordcheck/internal/validation/service"
	"recordcheck/internal/validation/store/process"
	"recordcheck/internal/validation/store/record"
)

// backends opens storage connections on demand for the factory and remembers them for
// health probes and shutdown.
type backends struct {
	cfg    config.Config
	logger *slog.Logger

	mu     sync.Mutex
	pg     *sql.DB
	redis  *redis.Client
	lite   *sql.DB
	probes []handler.Probe
}

func newBackends(cfg config.Config, logger *slog.Logger) *backends {
	return &backends{cfg: cfg, logger: logger}
}

// postgresDB opens the shared pool once; record and process stores share it.
func (b *backends) postgresDB(ctx context.Context) (*sql.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pg != nil {
		return b.pg, nil
	}
	if b.cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := postgres.New(ctx, b.cfg.Database)
	if err != nil {
		return nil, err
	}
	b.pg = db
	b.probes = append(b.probes, handler.Probe{
		Name:  "database",
		Check: func(ctx context.Context) error { return postgres.Health(ctx, db) },
	})
	return db, nil
}

// Records builds the durable record store.
func (b *backends) Records(ctx context.Context) (service.RecordStore, error) {
	db, err := b.postgresDB(ctx)
	if err != nil {
		return nil, err
	}
	store := record.NewPostgres(db,
		record.WithTable(b.cfg.Validation.RecordsTable),
		record.WithLogger(b.logger),
	)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("records table unreachable: %w", err)
	}
	return store, nil
}

// Processes builds the durable process store selected by PROCESS_BACKEND.
func (b *backends) Processes(ctx context.Context) (service.ProcessStore, error) {
	table := process.WithTable(b.cfg.Validation.ProcessesTable)

	switch b.cfg.Validation.ProcessBackend {
	case config.ProcessBackendPostgres:
		db, err := b.postgresDB(ctx)
		if err != nil {
			return nil, err
		}
		store := process.NewPostgres(db, table)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.ProcessBackendRedis:
		client, err := redis.New(ctx, b.cfg.Redis)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("REDIS_URL is not set")
		}
		b.mu.Lock()
		b.redis = client
		b.probes = append(b.probes, handler.Probe{Name: "redis", Check: client.Health})
		b.mu.Unlock()
		return process.NewRedis(client.Client), nil

	case config.ProcessBackendSQLite:
		db, err := sqlite.Open(ctx, b.cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		store, err := process.NewSQLite(ctx, db, table)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		b.mu.Lock()
		b.lite = db
		b.probes = append(b.probes, handler.Probe{Name: "sqlite", Check: db.PingContext})
		b.mu.Unlock()
		return store, nil

	default:
		return nil, fmt.Errorf("unknown process backend %q", b.cfg.Validation.ProcessBackend)
	}
}

// Probes returns health checks for every connection opened so far.
func (b *backends) Probes() []handler.Probe {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]handler.Probe(nil), b.probes...)
}

// Close releases every opened connection.
func (b *backends) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pg != nil {
		_ = b.pg.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.lite != nil {
		_ = b.lite.Close()
	}
}
