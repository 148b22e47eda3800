package services

import (
	"testing"
	"time"
)

func TestCycleLengths(t *testing.T) {
	starts := []time.Time{
		mustParseDay("2024-01-01"),
		mustParseDay("2024-01-29"),
		mustParseDay("2024-02-27"),
	}

	lengths := CycleLengths(starts)
	if len(lengths) != 2 {
		t.Fatalf("expected 2 cycle lengths, got %d", len(lengths))
	}
	if lengths[0] != 28 || lengths[1] != 29 {
		t.Fatalf("expected lengths [28 29], got %v", lengths)
	}
}

func TestCycleLengthsAcrossCenturies(t *testing.T) {
	starts := []time.Time{
		mustParseDay("1700-01-01"),
		mustParseDay("2100-01-01"),
		mustParseDay("2100-01-29"),
	}

	lengths := CycleLengths(starts)
	if len(lengths) != 2 || lengths[0] != 146097 || lengths[1] != 28 {
		t.Fatalf("expected lengths [146097 28], got %v", lengths)
	}
}

func TestCycleLengthsProducesOneFewerThanDates(t *testing.T) {
	starts := []time.Time{
		mustParseDay("2023-10-03"),
		mustParseDay("2023-10-31"),
		mustParseDay("2023-11-30"),
		mustParseDay("2023-12-27"),
		mustParseDay("2024-01-25"),
		mustParseDay("2024-01-25"),
	}

	lengths := CycleLengths(starts)
	if len(lengths) != len(starts)-1 {
		t.Fatalf("expected %d lengths, got %d", len(starts)-1, len(lengths))
	}
	for i, length := range lengths {
		want := int(starts[i+1].Sub(starts[i]).Hours() / 24)
		if length != want {
			t.Fatalf("length %d: expected %d, got %d", i, want, length)
		}
		if length < 0 {
			t.Fatalf("length %d is negative: %d", i, length)
		}
	}
	if lengths[len(lengths)-1] != 0 {
		t.Fatalf("expected duplicate date to give a zero length, got %d", lengths[len(lengths)-1])
	}
}

func TestCycleLengthsNeedsTwoDates(t *testing.T) {
	if lengths := CycleLengths(nil); lengths != nil {
		t.Fatalf("expected nil lengths for empty input, got %v", lengths)
	}
	if lengths := CycleLengths([]time.Time{mustParseDay("2024-01-01")}); lengths != nil {
		t.Fatalf("expected nil lengths for a single date, got %v", lengths)
	}
}

func TestCycleLengthsAcrossDaylightSavingChange(t *testing.T) {
	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	starts := []time.Time{
		time.Date(2024, time.March, 20, 0, 0, 0, 0, location),
		time.Date(2024, time.April, 17, 0, 0, 0, 0, location),
	}

	lengths := CycleLengths(starts)
	if len(lengths) != 1 || lengths[0] != 28 {
		t.Fatalf("expected [28] across DST change, got %v", lengths)
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}
