package models

import "time"

const (
	DefaultMenstruationDays = 5
	DefaultForecastCycles   = 1

	MinMenstruationDays = 3
	MaxMenstruationDays = 10
	MinForecastCycles   = 1
	MaxForecastCycles   = 12

	LutealPhaseDays = 14
)

// PeriodRecord is one observed period start taken from the uploaded history.
type PeriodRecord struct {
	StartDate time.Time
}

type ForecastSettings struct {
	MenstruationDays int
	Cycles           int
}

func DefaultForecastSettings() ForecastSettings {
	return ForecastSettings{
		MenstruationDays: DefaultMenstruationDays,
		Cycles:           DefaultForecastCycles,
	}
}
