package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// GetScheduledPaymentsInRange returns one-off payments due inside [start, end].
func (s *SQLiteStorage) GetScheduledPaymentsInRange(ctx context.Context, start, end time.Time) ([]model.ScheduledPayment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, category_id, account_id, currency, amount, due_date, status, created_at
		FROM scheduled_payments
		WHERE due_date >= ? AND due_date <= ?
		ORDER BY due_date, id
	`, model.DateOf(start), model.DateOf(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payments []model.ScheduledPayment
	for rows.Next() {
		var (
			payment     model.ScheduledPayment
			description sql.NullString
			categoryID  sql.NullInt64
			accountID   sql.NullInt64
			status      string
		)
		if err := rows.Scan(
			&payment.ID,
			&payment.Title,
			&description,
			&categoryID,
			&accountID,
			&payment.Currency,
			&payment.Amount,
			&payment.DueDate,
			&status,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled payment: %w", err)
		}
		payment.Description = description.String
		if categoryID.Valid {
			payment.CategoryID = &categoryID.Int64
		}
		if accountID.Valid {
			payment.AccountID = &accountID.Int64
		}
		payment.Status = model.Status(status)
		payment.DueDate = model.DateOf(payment.DueDate)
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// CreateScheduledPayment inserts a one-off payment.
func (s *SQLiteStorage) CreateScheduledPayment(ctx context.Context, payment *model.ScheduledPayment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePayment(payment); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scheduled_payments (title, description, category_id, account_id, currency, amount, due_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		payment.Title,
		payment.Description,
		payment.CategoryID,
		payment.AccountID,
		payment.Currency,
		payment.Amount,
		model.DateOf(payment.DueDate),
		string(payment.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scheduled payment: %w", err)
	}

	payment.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted payment id: %w", err)
	}
	return nil
}
