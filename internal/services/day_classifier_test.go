package services

import (
	"testing"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

func TestClassifyCycleDaysStandardCycle(t *testing.T) {
	cycle := ProjectCycles(mustParseDay("2024-02-27"), []int{28})[0]
	days := ClassifyCycleDays(cycle, 5)

	if len(days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(days))
	}
	assertDay(t, "first day", days[0].Date, "2024-03-26")
	assertDay(t, "last day", days[27].Date, "2024-04-22")

	for i, day := range days {
		if day.CycleDay != i+1 {
			t.Fatalf("day %d: expected cycle day %d, got %d", i, i+1, day.CycleDay)
		}
		switch {
		case day.CycleDay <= 5:
			if day.Status != models.DayStatusMenstruation {
				t.Fatalf("day %d: expected menstruation, got %s", day.CycleDay, day.Status)
			}
		case day.CycleDay >= 9 && day.CycleDay <= 15:
			if day.Status != models.DayStatusFertile {
				t.Fatalf("day %d: expected fertile, got %s", day.CycleDay, day.Status)
			}
		default:
			if day.Status != models.DayStatusSafe {
				t.Fatalf("day %d: expected safe, got %s", day.CycleDay, day.Status)
			}
		}
	}

	if days[2].Note != "Day 3" {
		t.Fatalf("expected menstruation note Day 3, got %q", days[2].Note)
	}
	if days[13].Note != models.NoteOvulation {
		t.Fatalf("expected ovulation note on day 14, got %q", days[13].Note)
	}
	for _, day := range days {
		if day.CycleDay != 14 && day.Note == models.NoteOvulation {
			t.Fatalf("unexpected ovulation note on day %d", day.CycleDay)
		}
	}

	expected := map[int][3]float64{
		9:  {10, 1.5, 1.0},
		10: {15, 2.2, 1.5},
		11: {20, 3.0, 2.0},
		12: {27, 4.0, 2.7},
		13: {30, 4.5, 3.0},
		14: {33, 5.0, 3.3},
		15: {10, 1.5, 1.0},
	}
	for _, day := range days {
		want, fertile := expected[day.CycleDay]
		if !fertile {
			if day.ProbNoProtection != 0 || day.ProbCondom != 0 || day.ProbPlanB != 0 {
				t.Fatalf("day %d: expected zero probabilities, got %+v", day.CycleDay, day)
			}
			continue
		}
		if day.ProbNoProtection != want[0] || day.ProbCondom != want[1] || day.ProbPlanB != want[2] {
			t.Fatalf("day %d: expected %v, got %v/%v/%v", day.CycleDay, want, day.ProbNoProtection, day.ProbCondom, day.ProbPlanB)
		}
	}
}

func TestClassifyCycleDaysMenstruationTakesPriority(t *testing.T) {
	cycle := ProjectCycles(mustParseDay("2024-01-01"), []int{20})[0]
	days := ClassifyCycleDays(cycle, 5)

	for _, day := range days[:5] {
		if day.Status != models.DayStatusMenstruation {
			t.Fatalf("day %d: expected menstruation, got %s", day.CycleDay, day.Status)
		}
		if day.ProbNoProtection != 0 {
			t.Fatalf("day %d: expected no probability during menstruation, got %v", day.CycleDay, day.ProbNoProtection)
		}
	}
	if days[5].Status != models.DayStatusFertile || days[5].Note != models.NoteOvulation {
		t.Fatalf("expected day 6 fertile ovulation, got %s %q", days[5].Status, days[5].Note)
	}
	if days[5].ProbNoProtection != 33 {
		t.Fatalf("expected 33%% on ovulation day, got %v", days[5].ProbNoProtection)
	}
	if days[6].Status != models.DayStatusFertile || days[6].ProbNoProtection != 10 {
		t.Fatalf("expected day 7 fertile at 10%%, got %s %v", days[6].Status, days[6].ProbNoProtection)
	}
	if days[7].Status != models.DayStatusSafe {
		t.Fatalf("expected day 8 safe, got %s", days[7].Status)
	}
}

func TestClassifyCycleDaysMenstruationCount(t *testing.T) {
	for _, tc := range []struct {
		length int
		days   int
	}{
		{length: 28, days: 3},
		{length: 28, days: 10},
		{length: 4, days: 7},
		{length: 1, days: 1},
	} {
		cycle := ProjectCycles(mustParseDay("2024-01-01"), []int{tc.length})[0]
		classified := ClassifyCycleDays(cycle, tc.days)

		count := 0
		for _, day := range classified {
			if day.Status == models.DayStatusMenstruation {
				count++
				if day.CycleDay > tc.days {
					t.Fatalf("length %d: menstruation on day %d beyond %d", tc.length, day.CycleDay, tc.days)
				}
			}
		}
		want := min(tc.days, tc.length)
		if count != want {
			t.Fatalf("length %d menstruation %d: expected %d menstruation days, got %d", tc.length, tc.days, want, count)
		}
	}
}

func TestClassifyCycleDaysShortCycleHasNoFertileDays(t *testing.T) {
	cycle := ProjectCycles(mustParseDay("2024-05-01"), []int{10})[0]
	days := ClassifyCycleDays(cycle, 3)

	for _, day := range days {
		if day.Status == models.DayStatusFertile {
			t.Fatalf("day %d: expected no fertile days for a 10-day cycle", day.CycleDay)
		}
	}
}

func TestClassifyCycleDaysNonPositiveLength(t *testing.T) {
	cycle := ProjectCycles(mustParseDay("2024-05-01"), []int{0})[0]
	if days := ClassifyCycleDays(cycle, 5); len(days) != 0 {
		t.Fatalf("expected no days for zero length, got %d", len(days))
	}
}

func TestClassifyCycleDaysProbabilityRounding(t *testing.T) {
	cycle := ProjectCycles(mustParseDay("2024-02-27"), []int{33})[0]
	for _, day := range ClassifyCycleDays(cycle, 5) {
		if day.ProbCondom != roundToTenth(day.ProbNoProtection*0.15) {
			t.Fatalf("day %d: condom %v != round(%v * 0.15)", day.CycleDay, day.ProbCondom, day.ProbNoProtection)
		}
		if day.ProbPlanB != roundToTenth(day.ProbNoProtection*0.10) {
			t.Fatalf("day %d: plan b %v != round(%v * 0.10)", day.CycleDay, day.ProbPlanB, day.ProbNoProtection)
		}
	}
}

func TestConceptionChanceDefaultsToZero(t *testing.T) {
	if ConceptionChance(-6) != 0 || ConceptionChance(3) != 0 {
		t.Fatal("expected offsets outside the table to give 0")
	}
	if ConceptionChance(2) != 5 {
		t.Fatalf("expected +2 offset to give 5, got %v", ConceptionChance(2))
	}
}

func TestRoundToTenthTiesToEven(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{input: 2.25, want: 2.2},
		{input: 0.75, want: 0.8},
		{input: 4.05, want: 4.0},
		{input: 4.95, want: 5.0},
		{input: 3.3, want: 3.3},
		{input: 0, want: 0},
	}
	for _, tc := range tests {
		if got := roundToTenth(tc.input); got != tc.want {
			t.Fatalf("roundToTenth(%v): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}
