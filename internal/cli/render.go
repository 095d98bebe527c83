package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/pennyworth-app/pennyworth/internal/engine"
	"github.com/pennyworth-app/pennyworth/internal/model"
)

// RenderBillsTable renders the unified obligation feed as an aligned table.
func RenderBillsTable(result *engine.Result) string {
	var b strings.Builder

	header := fmt.Sprintf("%-12s %-10s %-28s %10s %9s  %s",
		"DUE", "SOURCE", "TITLE", "AMOUNT", "DAYS", "STATUS")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, record := range result.Records {
		line := fmt.Sprintf("%-12s %-10s %-28s %10.2f %9d  %s",
			record.DueDate.Format("2006-01-02"),
			record.SourceType,
			truncate(record.Title, 28),
			record.Amount,
			record.DaysUntil,
			styleStatus(record.Status))
		b.WriteString(TableCellStyle.Render(line))
		b.WriteString("\n")
	}

	if len(result.Records) == 0 {
		b.WriteString(SubtleStyle.Render("no obligations in window"))
		b.WriteString("\n")
	}

	if result.Partial {
		sources := make([]string, len(result.FailedSources))
		for i, s := range result.FailedSources {
			sources[i] = string(s)
		}
		b.WriteString(FormatWarning(fmt.Sprintf(
			"partial results: failed sources: %s", strings.Join(sources, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders aggregate statistics for the bills overview.
func RenderSummary(summary *engine.Summary) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Bills summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total obligations: %d\n", summary.Total))
	b.WriteString(fmt.Sprintf("Total amount:      %.2f\n", summary.TotalAmount))

	if len(summary.CountsByStatus) > 0 {
		b.WriteString("\nBy status:\n")
		for _, status := range []model.Status{
			model.StatusOverdue, model.StatusDueToday, model.StatusUpcoming,
			model.StatusPaid, model.StatusCancelled, model.StatusSkipped, model.StatusPostponed,
		} {
			if count := summary.CountsByStatus[status]; count > 0 {
				b.WriteString(fmt.Sprintf("  %-10s %d\n", status, count))
			}
		}
	}

	if len(summary.AmountsBySource) > 0 {
		b.WriteString("\nBy source:\n")
		for _, source := range []model.SourceType{
			model.SourceGoal, model.SourceLiability, model.SourcePayment, model.SourceRecurring,
		} {
			if amount, ok := summary.AmountsBySource[source]; ok {
				b.WriteString(fmt.Sprintf("  %-10s %.2f\n", source, amount))
			}
		}
	}
	return b.String()
}

// FormatTerm renders a remaining-payments figure, treating +Inf as "never
// pays off" instead of a numeric term.
func FormatTerm(n float64) string {
	if math.IsInf(n, 1) {
		return ErrorStyle.Render("never (payment does not cover interest)")
	}
	return fmt.Sprintf("%.0f payments", n)
}

func styleStatus(status model.Status) string {
	switch status {
	case model.StatusOverdue:
		return OverdueStyle.Render(string(status))
	case model.StatusDueToday:
		return DueTodayStyle.Render(string(status))
	case model.StatusPaid, model.StatusCancelled, model.StatusSkipped, model.StatusPostponed:
		return SubtleStyle.Render(string(status))
	default:
		return string(status)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:limit]
	}
	return s[:limit-3] + "..."
}
