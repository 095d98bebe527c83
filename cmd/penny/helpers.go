package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/adapter"
	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/config"
	"github.com/pennyworth-app/pennyworth/internal/engine"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
	"github.com/pennyworth-app/pennyworth/internal/storage"
)

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, config.Config{}, common.NewUserError(
			fmt.Sprintf("failed to open database at %s", cfg.DBPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, config.Config{}, common.NewUserError("failed to migrate database", err)
	}
	return store, cfg, nil
}

// buildAggregator wires the four source adapters over a shared store.
func buildAggregator(store service.Storage) *engine.Aggregator {
	resolver := service.StorageResolver{Storage: store}
	return engine.New(
		adapter.NewRecurringAdapter(store, resolver),
		adapter.NewLiabilityAdapter(store, resolver),
		adapter.NewPaymentAdapter(store, resolver),
		adapter.NewGoalAdapter(store, resolver),
	)
}

// parseDateFlag parses a --from/--to/--as-of style flag, defaulting when
// empty.
func parseDateFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return model.DateOf(fallback), nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return model.DateOf(parsed), nil
}

// parseStatuses converts --status flag values into the shared status enum.
func parseStatuses(values []string) ([]model.Status, error) {
	statuses := make([]model.Status, 0, len(values))
	for _, v := range values {
		status := model.Status(v)
		switch status {
		case model.StatusUpcoming, model.StatusDueToday, model.StatusOverdue,
			model.StatusPaid, model.StatusCancelled, model.StatusSkipped, model.StatusPostponed:
			statuses = append(statuses, status)
		default:
			return nil, fmt.Errorf("unknown status %q", v)
		}
	}
	return statuses, nil
}
