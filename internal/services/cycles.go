package services

import (
	"time"
)

const DateLayout = "2006-01-02"

// CycleLengths returns the day gaps between consecutive sorted start dates. Fewer than
// two dates yield nil.
func CycleLengths(starts []time.Time) []int {
	if len(starts) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		lengths = append(lengths, daysBetween(starts[i-1], starts[i]))
	}
	return lengths
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts calendar days from Unix seconds; time.Duration saturates past
// about 292 years.
func daysBetween(from time.Time, to time.Time) int {
	return int((dateOnly(to).Unix() - dateOnly(from).Unix()) / secondsPerDay)
}

func addDays(day time.Time, days int) time.Time {
	return dateOnly(day).AddDate(0, 0, days)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
