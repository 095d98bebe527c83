package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyworth-app/pennyworth/internal/common"
)

func TestRecurrenceDefinitionValidate(t *testing.T) {
	start := Date(2025, time.January, 1)
	endBefore := Date(2024, time.December, 1)

	tests := []struct {
		name    string
		def     RecurrenceDefinition
		wantErr bool
	}{
		{
			name: "valid monthly definition",
			def: RecurrenceDefinition{
				Frequency: FrequencyMonth,
				Interval:  1,
				StartDate: start,
			},
		},
		{
			name: "valid custom definition",
			def: RecurrenceDefinition{
				Frequency:      FrequencyCustom,
				Interval:       1,
				CustomUnit:     FrequencyWeek,
				CustomInterval: 2,
				StartDate:      start,
			},
		},
		{
			name: "zero interval rejected",
			def: RecurrenceDefinition{
				Frequency: FrequencyMonth,
				Interval:  0,
				StartDate: start,
			},
			wantErr: true,
		},
		{
			name: "negative interval rejected",
			def: RecurrenceDefinition{
				Frequency: FrequencyWeek,
				Interval:  -1,
				StartDate: start,
			},
			wantErr: true,
		},
		{
			name: "end date before start date rejected",
			def: RecurrenceDefinition{
				Frequency: FrequencyMonth,
				Interval:  1,
				StartDate: start,
				EndDate:   &endBefore,
			},
			wantErr: true,
		},
		{
			name: "custom frequency without custom unit rejected",
			def: RecurrenceDefinition{
				Frequency:      FrequencyCustom,
				Interval:       1,
				CustomInterval: 2,
				StartDate:      start,
			},
			wantErr: true,
		},
		{
			name: "custom frequency without custom interval rejected",
			def: RecurrenceDefinition{
				Frequency:  FrequencyCustom,
				Interval:   1,
				CustomUnit: FrequencyDay,
				StartDate:  start,
			},
			wantErr: true,
		},
		{
			name: "unknown frequency rejected",
			def: RecurrenceDefinition{
				Frequency: "fortnight",
				Interval:  1,
				StartDate: start,
			},
			wantErr: true,
		},
		{
			name: "missing start date rejected",
			def: RecurrenceDefinition{
				Frequency: FrequencyDay,
				Interval:  1,
			},
			wantErr: true,
		},
		{
			name: "day of occurrence above 31 rejected",
			def: RecurrenceDefinition{
				Frequency:       FrequencyMonth,
				Interval:        1,
				StartDate:       start,
				DayOfOccurrence: 32,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidRecurrence)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
