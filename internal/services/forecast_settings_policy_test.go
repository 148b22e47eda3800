package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

func TestValidateConventionalForecastSettings(t *testing.T) {
	tests := []struct {
		settings models.ForecastSettings
		want     error
	}{
		{settings: models.ForecastSettings{MenstruationDays: 3, Cycles: 1}, want: nil},
		{settings: models.ForecastSettings{MenstruationDays: 10, Cycles: 12}, want: nil},
		{settings: models.ForecastSettings{MenstruationDays: 2, Cycles: 1}, want: ErrMenstruationDaysOutOfRange},
		{settings: models.ForecastSettings{MenstruationDays: 11, Cycles: 1}, want: ErrMenstruationDaysOutOfRange},
		{settings: models.ForecastSettings{MenstruationDays: 5, Cycles: 0}, want: ErrForecastCyclesOutOfRange},
		{settings: models.ForecastSettings{MenstruationDays: 5, Cycles: 13}, want: ErrForecastCyclesOutOfRange},
	}

	for _, tc := range tests {
		err := ValidateConventionalForecastSettings(tc.settings)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.settings, tc.want, err)
		}
	}
}

func TestValidateForecastSettingsAcceptsAnyPositive(t *testing.T) {
	if err := ValidateForecastSettings(models.ForecastSettings{MenstruationDays: 1, Cycles: 100}); err != nil {
		t.Fatalf("expected positive settings to pass, got %v", err)
	}
	if err := ValidateForecastSettings(models.DefaultForecastSettings()); err != nil {
		t.Fatalf("expected default settings to pass, got %v", err)
	}
	if err := ValidateForecastSettings(models.ForecastSettings{MenstruationDays: -1, Cycles: 1}); !errors.Is(err, ErrMenstruationDaysInvalid) {
		t.Fatalf("expected ErrMenstruationDaysInvalid, got %v", err)
	}
}
