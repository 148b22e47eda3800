package services

import (
	"errors"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

var (
	ErrMenstruationDaysInvalid    = errors.New("menstruation days must be positive")
	ErrMenstruationDaysOutOfRange = errors.New("menstruation days out of range")
	ErrForecastCyclesOutOfRange   = errors.New("forecast cycles out of range")
	ErrInsufficientHistory        = errors.New("at least two valid period start dates are required")
)

// ValidateForecastSettings accepts any positive values. The web form applies the
// narrower conventional ranges through ValidateConventionalForecastSettings.
func ValidateForecastSettings(settings models.ForecastSettings) error {
	if settings.MenstruationDays < 1 {
		return ErrMenstruationDaysInvalid
	}
	if settings.Cycles < 1 {
		return ErrForecastCountInvalid
	}
	return nil
}

func ValidateConventionalForecastSettings(settings models.ForecastSettings) error {
	if !IsConventionalMenstruationDays(settings.MenstruationDays) {
		return ErrMenstruationDaysOutOfRange
	}
	if !IsConventionalForecastCycles(settings.Cycles) {
		return ErrForecastCyclesOutOfRange
	}
	return nil
}

func IsConventionalMenstruationDays(value int) bool {
	return value >= models.MinMenstruationDays && value <= models.MaxMenstruationDays
}

func IsConventionalForecastCycles(value int) bool {
	return value >= models.MinForecastCycles && value <= models.MaxForecastCycles
}
