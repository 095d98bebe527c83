package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: obligations, liabilities, payments, goals",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS recurring_obligations (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					description TEXT,
					category_id INTEGER,
					account_id INTEGER,
					currency TEXT NOT NULL DEFAULT 'USD',
					amount_type TEXT NOT NULL DEFAULT 'fixed',
					amount REAL NOT NULL DEFAULT 0,
					estimated_amount REAL NOT NULL DEFAULT 0,
					frequency TEXT NOT NULL,
					interval INTEGER NOT NULL DEFAULT 1,
					start_date DATETIME NOT NULL,
					end_date DATETIME,
					day_of_occurrence INTEGER NOT NULL DEFAULT 0,
					custom_unit TEXT,
					custom_interval INTEGER NOT NULL DEFAULT 0,
					lifecycle TEXT NOT NULL DEFAULT 'active',
					next_due_date DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_recurring_lifecycle ON recurring_obligations(lifecycle)`,
				`CREATE INDEX idx_recurring_next_due ON recurring_obligations(next_due_date)`,

				`CREATE TABLE IF NOT EXISTS liabilities (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					currency TEXT NOT NULL DEFAULT 'USD',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS liability_schedule_entries (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					liability_id INTEGER NOT NULL,
					sequence INTEGER NOT NULL DEFAULT 0,
					due_date DATETIME NOT NULL,
					amount REAL NOT NULL,
					status TEXT NOT NULL DEFAULT '',
					principal REAL,
					interest REAL,
					FOREIGN KEY (liability_id) REFERENCES liabilities(id)
				)`,
				`CREATE INDEX idx_liability_entries_due ON liability_schedule_entries(due_date)`,

				`CREATE TABLE IF NOT EXISTS scheduled_payments (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					description TEXT,
					category_id INTEGER,
					account_id INTEGER,
					currency TEXT NOT NULL DEFAULT 'USD',
					amount REAL NOT NULL,
					due_date DATETIME NOT NULL,
					status TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_scheduled_payments_due ON scheduled_payments(due_date)`,

				`CREATE TABLE IF NOT EXISTS goals (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					currency TEXT NOT NULL DEFAULT 'USD',
					target_amount REAL NOT NULL DEFAULT 0,
					saved_amount REAL NOT NULL DEFAULT 0,
					target_date DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Display name lookup tables",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL UNIQUE,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS accounts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL UNIQUE,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Index liability entries by status for overdue scans",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_liability_entries_status
				ON liability_schedule_entries(status)`)
			return err
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
		current = migration.Version
	}

	if current != ExpectedSchemaVersion {
		return fmt.Errorf("schema version mismatch: have %d, expected %d", current, ExpectedSchemaVersion)
	}
	return nil
}
