package services

import (
	"time"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

const (
	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
)

// ProjectCycles chains forecast lengths forward from the last observed start: each
// length is added to the previous start to obtain the next one.
func ProjectCycles(lastStart time.Time, lengths []int) []models.ForecastedCycle {
	cycles := make([]models.ForecastedCycle, 0, len(lengths))
	cursor := dateOnly(lastStart)
	for index, length := range lengths {
		start := addDays(cursor, length)
		cycles = append(cycles, projectCycle(index+1, start, length))
		cursor = start
	}
	return cycles
}

func projectCycle(index int, start time.Time, length int) models.ForecastedCycle {
	ovulationOffset, fertileStartOffset, fertileEndOffset := CycleOffsets(length)
	return models.ForecastedCycle{
		Index:              index,
		StartDate:          start,
		LengthDays:         length,
		OvulationDate:      addDays(start, ovulationOffset),
		FertileStartDate:   addDays(start, fertileStartOffset),
		FertileEndDate:     addDays(start, fertileEndOffset),
		OvulationOffset:    ovulationOffset,
		FertileStartOffset: fertileStartOffset,
		FertileEndOffset:   fertileEndOffset,
	}
}

// CycleOffsets places ovulation a fixed luteal phase before the next start. No clamping
// is applied, so lengths up to the luteal phase give zero or negative offsets.
func CycleOffsets(length int) (int, int, int) {
	ovulation := length - models.LutealPhaseDays
	return ovulation, ovulation - fertileDaysBeforeOvulation, ovulation + fertileDaysAfterOvulation
}
