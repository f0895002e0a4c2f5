package store

import (
	"database/sql"
	"strings"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/migrations"
)

// DB wraps the shared *sql.DB handle together with the dialect it was
// opened for ("pgx" or "sqlite3") so that migrations and error
// classification can adapt to the engine.
type DB struct {
	*sql.DB
	dialect string
	logger  *logger.Logger
}

// Migrate applies all embedded goose migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// isUniqueViolation reports whether err was caused by a unique-constraint
// violation, regardless of the underlying engine.
func (db *DB) isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if postgresError(err) != "" {
		return postgresError(err) == uniqueViolationCode
	}

	// mattn/go-sqlite3 exposes constraint failures only through the
	// error text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
