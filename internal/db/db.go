package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	apperrors "mathdeck/internal/errors"
	"mathdeck/internal/logger"
)

type DB struct {
	*sql.DB
	log *logger.Logger
}

// Open opens the user's problem store and makes sure the schema exists.
// Foreign key enforcement is off by default in SQLite, so it is switched
// on in the DSN for every connection. A failure here is fatal to the
// application and surfaces as STORE_UNAVAILABLE.
func Open(path string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening problem store: %s", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, apperrors.NewStoreUnavailable(err)
	}
	sqlDB.SetMaxOpenConns(1) // SQLite best practice for single writer

	// sql.Open is lazy; ping so a missing or locked file fails now.
	if err := sqlDB.PingContext(context.Background()); err != nil {
		log.Error("database unreachable: %v", err)
		_ = sqlDB.Close()
		return nil, apperrors.NewStoreUnavailable(err)
	}

	db := &DB{DB: sqlDB, log: log}

	log.Debug("ensuring schema")
	if err := db.ensureSchema(context.Background()); err != nil {
		log.Error("failed to ensure schema: %v", err)
		_ = sqlDB.Close()
		return nil, apperrors.NewStoreUnavailable(err)
	}

	log.Info("problem store ready")
	return db, nil
}

// ensureSchema applies the CREATE TABLE IF NOT EXISTS statements.
// Safe to call on every process start.
func (db *DB) ensureSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
