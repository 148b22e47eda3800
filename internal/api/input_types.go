package api

import "github.com/terraincognita07/cycleforecast/internal/models"

type forecastRequest struct {
	PeriodStarts     []string `json:"period_starts"`
	MenstruationDays *int     `json:"menstruation_days"`
	PredictN         *int     `json:"predict_n"`
}

type forecastResponse struct {
	RunID        string                 `json:"run_id"`
	History      []string               `json:"history"`
	InvalidDates int                    `json:"invalid_dates"`
	Warnings     []warningResponse      `json:"warnings"`
	CycleLengths []int                  `json:"cycle_lengths"`
	Settings     settingsResponse       `json:"settings"`
	Model        models.AR1Model        `json:"model"`
	Forecast     []models.ForecastPoint `json:"forecast"`
	Cycles       []cycleResponse        `json:"cycles"`
	ExportToken  string                 `json:"export_token,omitempty"`
}

type warningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type settingsResponse struct {
	MenstruationDays int `json:"menstruation_days"`
	PredictN         int `json:"predict_n"`
}

type cycleResponse struct {
	Index         int           `json:"index"`
	Label         string        `json:"label"`
	StartDate     string        `json:"start_date"`
	LengthDays    int           `json:"length_days"`
	OvulationDate string        `json:"ovulation_date"`
	FertileStart  string        `json:"fertile_start"`
	FertileEnd    string        `json:"fertile_end"`
	Days          []dayResponse `json:"days"`
}

type dayResponse struct {
	Date             string  `json:"date"`
	CycleDay         int     `json:"cycle_day"`
	Status           string  `json:"status"`
	Note             string  `json:"note"`
	ProbNoProtection float64 `json:"prob_no_protection"`
	ProbCondom       float64 `json:"prob_condom"`
	ProbPlanB        float64 `json:"prob_plan_b"`
}
