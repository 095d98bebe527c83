// Package adapter normalizes the four obligation source types into the
// canonical unified record shape. Each adapter pulls raw rows through the
// injected storage accessor, derives occurrences, and classifies them
// against the window's as-of date.
package adapter

import (
	"context"
	"log/slog"

	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// resolveNames fills display-only category and account labels. A failed
// lookup degrades to an empty field; it never fails the fetch.
func resolveNames(ctx context.Context, resolver service.NameResolver, record *model.UnifiedObligationRecord, categoryID, accountID *int64) {
	if resolver == nil {
		return
	}
	if categoryID != nil {
		name, err := resolver.CategoryName(ctx, *categoryID)
		if err != nil {
			slog.Debug("category name lookup failed",
				"source_type", record.SourceType,
				"source_id", record.SourceID,
				"category_id", *categoryID,
				"error", err)
		} else {
			record.CategoryName = name
		}
	}
	if accountID != nil {
		name, err := resolver.AccountName(ctx, *accountID)
		if err != nil {
			slog.Debug("account name lookup failed",
				"source_type", record.SourceType,
				"source_id", record.SourceID,
				"account_id", *accountID,
				"error", err)
		} else {
			record.AccountName = name
		}
	}
}
