package model

import (
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/common"
)

// Frequency is the unit a recurrence rule steps by.
type Frequency string

const (
	// FrequencyDay repeats every Interval days.
	FrequencyDay Frequency = "day"
	// FrequencyWeek repeats every Interval weeks.
	FrequencyWeek Frequency = "week"
	// FrequencyMonth repeats every Interval months.
	FrequencyMonth Frequency = "month"
	// FrequencyQuarter repeats every Interval quarters (3 months each).
	FrequencyQuarter Frequency = "quarter"
	// FrequencyYear repeats every Interval years.
	FrequencyYear Frequency = "year"
	// FrequencyCustom steps by CustomInterval units of CustomUnit.
	FrequencyCustom Frequency = "custom"
)

// RecurrenceDefinition describes when a recurring obligation falls due.
// Decoded once at the storage boundary into this explicit shape; engine logic
// never sees raw column values.
type RecurrenceDefinition struct {
	StartDate       time.Time
	EndDate         *time.Time
	Frequency       Frequency
	CustomUnit      Frequency // required when Frequency is custom
	Interval        int
	CustomInterval  int
	DayOfOccurrence int // day-of-month 1-31, or weekday ordinal for weekly; 0 when unset
}

// Validate checks the structural invariants of the definition. Definitions
// that fail validation must never reach occurrence generation.
func (d *RecurrenceDefinition) Validate() error {
	if d.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %d", common.ErrInvalidRecurrence, d.Interval)
	}

	switch d.Frequency {
	case FrequencyDay, FrequencyWeek, FrequencyMonth, FrequencyQuarter, FrequencyYear:
	case FrequencyCustom:
		if d.CustomInterval <= 0 {
			return fmt.Errorf("%w: custom frequency requires a positive custom interval", common.ErrInvalidRecurrence)
		}
		switch d.CustomUnit {
		case FrequencyDay, FrequencyWeek, FrequencyMonth, FrequencyYear:
		default:
			return fmt.Errorf("%w: custom frequency requires a custom unit", common.ErrInvalidRecurrence)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", common.ErrInvalidRecurrence, d.Frequency)
	}

	if d.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", common.ErrInvalidRecurrence)
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return fmt.Errorf("%w: end date %s precedes start date %s",
			common.ErrInvalidRecurrence,
			d.EndDate.Format("2006-01-02"),
			d.StartDate.Format("2006-01-02"))
	}
	if d.DayOfOccurrence < 0 || d.DayOfOccurrence > 31 {
		return fmt.Errorf("%w: day of occurrence %d out of range", common.ErrInvalidRecurrence, d.DayOfOccurrence)
	}
	return nil
}
