package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
const ExpectedSchemaVersion = 3

// migration moves the schema to version by running its statements in order
// inside one transaction.
type migration struct {
	description string
	statements  []string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "transactions and review outcomes",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS transactions (
				id TEXT PRIMARY KEY,
				hash TEXT UNIQUE NOT NULL,
				user_id INTEGER NOT NULL,
				timestamp DATETIME NOT NULL,
				merchant TEXT NOT NULL,
				amount TEXT NOT NULL,
				account_id TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_user_timestamp ON transactions(user_id, timestamp)`,
			`CREATE TABLE IF NOT EXISTS classifications (
				transaction_id TEXT PRIMARY KEY REFERENCES transactions(id),
				category TEXT NOT NULL,
				status TEXT NOT NULL,
				confidence REAL DEFAULT 0,
				classified_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_classifications_status ON classifications(status)`,
		},
	},
	{
		version:     2,
		description: "correction log for classifier retraining",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS corrections (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_id TEXT,
				text TEXT NOT NULL,
				category TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		version:     3,
		description: "review outcome history",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS classification_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_id TEXT NOT NULL REFERENCES transactions(id),
				category TEXT NOT NULL,
				status TEXT NOT NULL,
				confidence REAL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_classification_history_transaction ON classification_history(transaction_id)`,
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion. The version is kept
// in PRAGMA user_version; each step commits together with its version bump.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		slog.Info("Applied migration", "version", m.version, "description", m.description)
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}
	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
	}

	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("failed to set schema version %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}
	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
