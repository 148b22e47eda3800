package services

import (
	"fmt"
	"strconv"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

const (
	condomFailureShare = 0.15
	planBFailureShare  = 0.10
)

// conceptionChanceByOvulationOffset maps days relative to ovulation to the chance of
// conception from unprotected intercourse, in percent.
var conceptionChanceByOvulationOffset = map[int]float64{
	-5: 10.0,
	-4: 15.0,
	-3: 20.0,
	-2: 27.0,
	-1: 30.0,
	0:  33.0,
	1:  10.0,
	2:  5.0,
}

func ConceptionChance(daysFromOvulation int) float64 {
	return conceptionChanceByOvulationOffset[daysFromOvulation]
}

// ClassifyCycleDays labels each day of the cycle. Menstruation is checked first. The
// fertile range compares the 0-based offsets against the 1-based cycle day as is.
func ClassifyCycleDays(cycle models.ForecastedCycle, menstruationDays int) []models.CalendarDay {
	if cycle.LengthDays <= 0 {
		return []models.CalendarDay{}
	}

	days := make([]models.CalendarDay, 0, cycle.LengthDays)
	for offset := 0; offset < cycle.LengthDays; offset++ {
		cycleDay := offset + 1
		day := models.CalendarDay{
			Date:     addDays(cycle.StartDate, offset),
			CycleDay: cycleDay,
			Status:   models.DayStatusSafe,
		}

		switch {
		case cycleDay <= menstruationDays:
			day.Status = models.DayStatusMenstruation
			day.Note = fmt.Sprintf("Day %d", cycleDay)
		case cycleDay >= cycle.FertileStartOffset && cycleDay <= cycle.FertileEndOffset:
			day.Status = models.DayStatusFertile
			if cycleDay == cycle.OvulationOffset {
				day.Note = models.NoteOvulation
			}
		}

		chance := ConceptionChance(cycleDay - cycle.OvulationOffset)
		if day.Status == models.DayStatusFertile {
			day.ProbNoProtection = chance
		}
		day.ProbCondom = roundToTenth(day.ProbNoProtection * condomFailureShare)
		day.ProbPlanB = roundToTenth(day.ProbNoProtection * planBFailureShare)

		days = append(days, day)
	}
	return days
}

// roundToTenth rounds the exact binary value to one decimal, ties to even.
func roundToTenth(value float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}
