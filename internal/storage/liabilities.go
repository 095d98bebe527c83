package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// GetLiabilityEntriesInRange returns schedule entries due inside [start, end],
// joined with the owning liability for a display title.
func (s *SQLiteStorage) GetLiabilityEntriesInRange(ctx context.Context, start, end time.Time) ([]model.LiabilityScheduleEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.liability_id, e.sequence, e.due_date, e.amount, e.status,
		       e.principal, e.interest, l.name, l.currency
		FROM liability_schedule_entries e
		JOIN liabilities l ON l.id = e.liability_id
		WHERE e.due_date >= ? AND e.due_date <= ?
		ORDER BY e.due_date, e.id
	`, model.DateOf(start), model.DateOf(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query liability entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LiabilityScheduleEntry
	for rows.Next() {
		var (
			entry     model.LiabilityScheduleEntry
			status    string
			principal sql.NullFloat64
			interest  sql.NullFloat64
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.LiabilityID,
			&entry.Sequence,
			&entry.DueDate,
			&entry.Amount,
			&status,
			&principal,
			&interest,
			&entry.Title,
			&entry.Currency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan liability entry: %w", err)
		}
		entry.Status = model.Status(status)
		entry.DueDate = model.DateOf(entry.DueDate)
		if principal.Valid {
			entry.Principal = &principal.Float64
		}
		if interest.Valid {
			entry.Interest = &interest.Float64
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CreateLiabilityEntry inserts a schedule entry, creating the owning
// liability row on first use of a title.
func (s *SQLiteStorage) CreateLiabilityEntry(ctx context.Context, entry *model.LiabilityScheduleEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	if entry.LiabilityID == 0 {
		id, err := s.findOrCreateLiability(ctx, entry.Title, entry.Currency)
		if err != nil {
			return err
		}
		entry.LiabilityID = id
	}

	var principal, interest any
	if entry.Principal != nil {
		principal = *entry.Principal
	}
	if entry.Interest != nil {
		interest = *entry.Interest
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO liability_schedule_entries (
			liability_id, sequence, due_date, amount, status, principal, interest
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.LiabilityID,
		entry.Sequence,
		model.DateOf(entry.DueDate),
		entry.Amount,
		string(entry.Status),
		principal,
		interest,
	)
	if err != nil {
		return fmt.Errorf("failed to insert liability entry: %w", err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted entry id: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) findOrCreateLiability(ctx context.Context, name, currency string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM liabilities WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up liability: %w", err)
	}

	if currency == "" {
		currency = "USD"
	}
	result, err := s.db.ExecContext(ctx, `INSERT INTO liabilities (name, currency) VALUES (?, ?)`, name, currency)
	if err != nil {
		return 0, fmt.Errorf("failed to insert liability: %w", err)
	}
	return result.LastInsertId()
}
