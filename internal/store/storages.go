package store

import (
	"context"
	"fmt"

	"github.com/mediamz/accounts/internal/config"
	"github.com/mediamz/accounts/internal/logger"
)

// Storages aggregates all repository implementations backed by the shared
// database connection.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages connects to the database engine selected by cfg.DB.Type,
// applies pending migrations, and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Type {
	case config.DBTypePostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DBTypeSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.DB.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
