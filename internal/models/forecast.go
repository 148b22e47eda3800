package models

import "time"

type DayStatus string

const (
	DayStatusMenstruation DayStatus = "Menstruation"
	DayStatusFertile      DayStatus = "Fertile"
	DayStatusSafe         DayStatus = "Safe"
)

const NoteOvulation = "Ovulation"

// ForecastedCycle is a projected cycle. Offsets are 0-based day counts from StartDate
// and are kept unclamped, so short cycles can carry negative offsets.
type ForecastedCycle struct {
	Index              int
	StartDate          time.Time
	LengthDays         int
	OvulationDate      time.Time
	FertileStartDate   time.Time
	FertileEndDate     time.Time
	OvulationOffset    int
	FertileStartOffset int
	FertileEndOffset   int
}

type CalendarDay struct {
	Date             time.Time
	CycleDay         int
	Status           DayStatus
	Note             string
	ProbNoProtection float64
	ProbCondom       float64
	ProbPlanB        float64
}

type CycleCalendar struct {
	Label string
	Cycle ForecastedCycle
	Days  []CalendarDay
}

type AR1Model struct {
	Mean         float64 `json:"mean"`
	Phi          float64 `json:"phi"`
	Intercept    float64 `json:"intercept"`
	Sigma2       float64 `json:"sigma2"`
	Observations int     `json:"observations"`
	LastValue    float64 `json:"last_value"`
	Degenerate   bool    `json:"degenerate"`
}

type ForecastPoint struct {
	Step   int     `json:"step"`
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"std_err"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
}

type ForecastResult struct {
	RunID        string
	History      []PeriodRecord
	InvalidDates int
	Warnings     []string
	CycleLengths []int
	Settings     ForecastSettings
	Model        AR1Model
	Forecast     []ForecastPoint
	Cycles       []ForecastedCycle
	Calendars    []CycleCalendar
}

func (result ForecastResult) HistoryDates() []time.Time {
	dates := make([]time.Time, 0, len(result.History))
	for _, record := range result.History {
		dates = append(dates, record.StartDate)
	}
	return dates
}

func (result ForecastResult) Calendar(label string) (CycleCalendar, bool) {
	for _, calendar := range result.Calendars {
		if calendar.Label == label {
			return calendar, true
		}
	}
	return CycleCalendar{}, false
}
