package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
)

const recurringColumns = `id, title, description, category_id, account_id, currency,
	amount_type, amount, estimated_amount,
	frequency, interval, start_date, end_date, day_of_occurrence, custom_unit, custom_interval,
	lifecycle, next_due_date, created_at, updated_at`

// GetActiveRecurringObligations returns every obligation still generating
// occurrences, ordered by the cached next due date with exhausted series
// last.
func (s *SQLiteStorage) GetActiveRecurringObligations(ctx context.Context) ([]model.RecurringObligation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM recurring_obligations
		WHERE lifecycle = ?
		ORDER BY next_due_date IS NULL, next_due_date, id
	`, recurringColumns), string(model.LifecycleActive))
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring obligations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var obligations []model.RecurringObligation
	for rows.Next() {
		obligation, err := scanRecurringObligation(rows)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, *obligation)
	}
	return obligations, rows.Err()
}

// GetRecurringObligationByID fetches a single obligation regardless of
// lifecycle.
func (s *SQLiteStorage) GetRecurringObligationByID(ctx context.Context, id int64) (*model.RecurringObligation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM recurring_obligations WHERE id = ?
	`, recurringColumns), id)

	obligation, err := scanRecurringObligation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recurring obligation %d: %w", id, common.ErrNotFound)
	}
	return obligation, err
}

// CreateRecurringObligation inserts a new obligation. The recurrence rule is
// validated first so malformed definitions never reach the database.
func (s *SQLiteStorage) CreateRecurringObligation(ctx context.Context, obligation *model.RecurringObligation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateObligation(obligation); err != nil {
		return err
	}

	if obligation.Lifecycle == "" {
		obligation.Lifecycle = model.LifecycleActive
	}

	var endDate any
	if obligation.Recurrence.EndDate != nil {
		endDate = *obligation.Recurrence.EndDate
	}
	var nextDue any
	if obligation.NextDueDate != nil {
		nextDue = *obligation.NextDueDate
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_obligations (
			title, description, category_id, account_id, currency,
			amount_type, amount, estimated_amount,
			frequency, interval, start_date, end_date, day_of_occurrence, custom_unit, custom_interval,
			lifecycle, next_due_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		obligation.Title,
		obligation.Description,
		obligation.CategoryID,
		obligation.AccountID,
		obligation.Currency,
		string(obligation.AmountType),
		obligation.Amount,
		obligation.EstimatedAmount,
		string(obligation.Recurrence.Frequency),
		obligation.Recurrence.Interval,
		obligation.Recurrence.StartDate,
		endDate,
		obligation.Recurrence.DayOfOccurrence,
		string(obligation.Recurrence.CustomUnit),
		obligation.Recurrence.CustomInterval,
		string(obligation.Lifecycle),
		nextDue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring obligation: %w", err)
	}

	obligation.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted obligation id: %w", err)
	}
	return nil
}

// UpdateNextDueDate refreshes the cached next due date scalar. A nil value
// clears the cache for exhausted series.
func (s *SQLiteStorage) UpdateNextDueDate(ctx context.Context, id int64, nextDue *time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var value any
	if nextDue != nil {
		value = *nextDue
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE recurring_obligations
		SET next_due_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, value, id)
	if err != nil {
		return fmt.Errorf("failed to update next due date: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recurring obligation %d: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecurringObligation(row rowScanner) (*model.RecurringObligation, error) {
	var (
		ob          model.RecurringObligation
		description sql.NullString
		categoryID  sql.NullInt64
		accountID   sql.NullInt64
		amountType  string
		frequency   string
		endDate     sql.NullTime
		customUnit  sql.NullString
		lifecycle   string
		nextDue     sql.NullTime
	)

	err := row.Scan(
		&ob.ID,
		&ob.Title,
		&description,
		&categoryID,
		&accountID,
		&ob.Currency,
		&amountType,
		&ob.Amount,
		&ob.EstimatedAmount,
		&frequency,
		&ob.Recurrence.Interval,
		&ob.Recurrence.StartDate,
		&endDate,
		&ob.Recurrence.DayOfOccurrence,
		&customUnit,
		&ob.Recurrence.CustomInterval,
		&lifecycle,
		&nextDue,
		&ob.CreatedAt,
		&ob.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring obligation: %w", err)
	}

	ob.Description = description.String
	if categoryID.Valid {
		ob.CategoryID = &categoryID.Int64
	}
	if accountID.Valid {
		ob.AccountID = &accountID.Int64
	}
	ob.AmountType = model.AmountType(amountType)
	ob.Recurrence.Frequency = model.Frequency(frequency)
	if endDate.Valid {
		end := model.DateOf(endDate.Time)
		ob.Recurrence.EndDate = &end
	}
	if customUnit.Valid {
		ob.Recurrence.CustomUnit = model.Frequency(customUnit.String)
	}
	ob.Lifecycle = model.Lifecycle(lifecycle)
	if nextDue.Valid {
		next := model.DateOf(nextDue.Time)
		ob.NextDueDate = &next
	}
	ob.Recurrence.StartDate = model.DateOf(ob.Recurrence.StartDate)
	return &ob, nil
}
