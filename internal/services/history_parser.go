package services

import (
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

const WarningInvalidDates = "warning.invalid_dates"

// periodDateLayouts lists the accepted spellings of a period start. Month-first
// slash dates win over day-first ones, matching what spreadsheet exports emit by default.
var periodDateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006",
	"1-2-2006",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	"2006-1-2T15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"20060102",
}

type PeriodHistory struct {
	Records []models.PeriodRecord
	Invalid int
}

func (history PeriodHistory) Dates() []time.Time {
	dates := make([]time.Time, 0, len(history.Records))
	for _, record := range history.Records {
		dates = append(dates, record.StartDate)
	}
	return dates
}

func (history PeriodHistory) Warnings() []string {
	if history.Invalid > 0 {
		return []string{WarningInvalidDates}
	}
	return nil
}

// ParsePeriodHistory drops every value that is not a recognizable date and returns the
// rest sorted ascending. Duplicate dates are kept.
func ParsePeriodHistory(rawValues []string) PeriodHistory {
	history := PeriodHistory{Records: make([]models.PeriodRecord, 0, len(rawValues))}
	for _, raw := range rawValues {
		day, ok := ParsePeriodDate(raw)
		if !ok {
			history.Invalid++
			continue
		}
		history.Records = append(history.Records, models.PeriodRecord{StartDate: day})
	}

	sort.SliceStable(history.Records, func(i, j int) bool {
		return history.Records[i].StartDate.Before(history.Records[j].StartDate)
	})
	return history
}

func ParsePeriodDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range periodDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return dateOnly(parsed), true
	}
	return time.Time{}, false
}

func FormatPeriodDates(dates []time.Time) []string {
	formatted := make([]string, 0, len(dates))
	for _, day := range dates {
		formatted = append(formatted, day.Format(DateLayout))
	}
	return formatted
}
