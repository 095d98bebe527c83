// Package engine implements the aggregation service that merges every
// obligation source into one consistent, sortable, filterable timeline.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// Result is the merged obligation feed. Partial is set when one or more
// adapters failed; their source types are listed in FailedSources and the
// remaining sources still surface, so a single broken source degrades the
// view instead of blanking it.
type Result struct {
	Records       []model.UnifiedObligationRecord
	FailedSources []model.SourceType
	Partial       bool
}

// Summary aggregates the feed for the bills overview screen.
type Summary struct {
	CountsByStatus  map[model.Status]int
	AmountsBySource map[model.SourceType]float64
	TotalAmount     float64
	Total           int
}

// Aggregator merges the four obligation source adapters into a unified view.
type Aggregator struct {
	adapters []service.Adapter
}

// New creates an aggregator over the given adapters.
func New(adapters ...service.Adapter) *Aggregator {
	return &Aggregator{adapters: adapters}
}

// FetchAllUpcoming fans out to every adapter concurrently, merges the
// results, applies post-filters, and sorts ascending by due date with ties
// broken deterministically by (source type, source id). Each record's
// DaysUntil is computed against the window's as-of date.
func (a *Aggregator) FetchAllUpcoming(ctx context.Context, window model.Window, filter service.ObligationFilter) (*Result, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	var (
		mu     sync.Mutex
		merged []model.UnifiedObligationRecord
		failed []model.SourceType
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range a.adapters {
		adapter := adapter
		g.Go(func() error {
			records, err := adapter.FetchOccurrencesInWindow(gctx, window, filter)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A failing adapter degrades the view, it never aborts it.
				slog.Error("adapter fetch failed",
					"source_type", adapter.SourceType(),
					"error", err)
				failed = append(failed, adapter.SourceType())
				return nil
			}
			merged = append(merged, records...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged = applyFilter(merged, filter)

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].DueDate.Equal(merged[j].DueDate) {
			return merged[i].DueDate.Before(merged[j].DueDate)
		}
		if merged[i].SourceType != merged[j].SourceType {
			return merged[i].SourceType < merged[j].SourceType
		}
		return merged[i].SourceID < merged[j].SourceID
	})

	for i := range merged {
		merged[i].DaysUntil = model.DaysUntil(merged[i].DueDate, window.AsOf)
	}

	sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })

	return &Result{
		Records:       merged,
		FailedSources: failed,
		Partial:       len(failed) > 0,
	}, nil
}

// GetSummary derives aggregate statistics from a single pass over the
// unified feed. Paid and cancelled records are excluded unless the filter
// opts in.
func (a *Aggregator) GetSummary(ctx context.Context, window model.Window, filter service.ObligationFilter) (*Summary, error) {
	result, err := a.FetchAllUpcoming(ctx, window, filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		CountsByStatus:  make(map[model.Status]int),
		AmountsBySource: make(map[model.SourceType]float64),
	}
	for _, record := range result.Records {
		summary.Total++
		summary.TotalAmount += record.Amount
		summary.CountsByStatus[record.Status]++
		summary.AmountsBySource[record.SourceType] += record.Amount
	}
	return summary, nil
}

// applyFilter drops records the caller filtered out: terminal paid/cancelled
// unless opted in, then status set, category, account, and free-text match
// on title or description.
func applyFilter(records []model.UnifiedObligationRecord, filter service.ObligationFilter) []model.UnifiedObligationRecord {
	filtered := records[:0]
	for _, record := range records {
		if record.Status == model.StatusPaid && !filter.IncludePaid {
			continue
		}
		if record.Status == model.StatusCancelled && !filter.IncludeCancelled {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, record.Status) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(filter.Category, record.CategoryName) {
			continue
		}
		if filter.Account != "" && !strings.EqualFold(filter.Account, record.AccountName) {
			continue
		}
		if filter.Search != "" && !matchesSearch(record, filter.Search) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

func containsStatus(statuses []model.Status, status model.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func matchesSearch(record model.UnifiedObligationRecord, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(record.Title), needle) ||
		strings.Contains(strings.ToLower(record.Description), needle)
}
