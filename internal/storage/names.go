package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/pennyworth-app/pennyworth/internal/common"
)

// GetCategoryName resolves a category's display name.
func (s *SQLiteStorage) GetCategoryName(ctx context.Context, id int64) (string, error) {
	return s.lookupName(ctx, "categories", id)
}

// GetAccountName resolves an account's display name.
func (s *SQLiteStorage) GetAccountName(ctx context.Context, id int64) (string, error) {
	return s.lookupName(ctx, "accounts", id)
}

// CreateCategory inserts a category used for display-only lookups.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string) (int64, error) {
	return s.insertName(ctx, "categories", name)
}

// CreateAccount inserts an account used for display-only lookups.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, name string) (int64, error) {
	return s.insertName(ctx, "accounts", name)
}

func (s *SQLiteStorage) lookupName(ctx context.Context, table string, id int64) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT name FROM %s WHERE id = ?", table), id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s %d: %w", table, id, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up %s name: %w", table, err)
	}
	return name, nil
}

func (s *SQLiteStorage) insertName(ctx context.Context, table, name string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), name)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("%s %q: %w", table, name, common.ErrDuplicateEntry)
		}
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return result.LastInsertId()
}
