package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"go.uber.org/zap"
)

type ForecastService struct {
	logger *zap.Logger
}

func NewForecastService(logger *zap.Logger) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{logger: logger}
}

// RunCSV reads the period_start column of a delimited file and runs the forecast.
func (service *ForecastService) RunCSV(reader io.Reader, settings models.ForecastSettings) (models.ForecastResult, error) {
	rawValues, err := ReadPeriodStartColumn(reader)
	if err != nil {
		service.logger.Info("history file rejected", zap.Error(err))
		return models.ForecastResult{}, err
	}
	return service.Run(rawValues, settings)
}

func (service *ForecastService) Run(rawValues []string, settings models.ForecastSettings) (models.ForecastResult, error) {
	if err := ValidateForecastSettings(settings); err != nil {
		return models.ForecastResult{}, err
	}
	return service.RunHistory(ParsePeriodHistory(rawValues), settings)
}

// RunHistory is a pure function of its inputs: the same history and settings always
// produce the same result, run id included.
func (service *ForecastService) RunHistory(history PeriodHistory, settings models.ForecastSettings) (models.ForecastResult, error) {
	if err := ValidateForecastSettings(settings); err != nil {
		return models.ForecastResult{}, err
	}

	dates := history.Dates()
	runID := forecastRunID(dates, settings)
	logger := service.logger.With(zap.String("run_id", runID))

	if history.Invalid > 0 {
		logger.Info("dropped invalid period dates", zap.Int("invalid", history.Invalid), zap.Int("valid", len(dates)))
	}
	if len(dates) < 2 {
		logger.Info("forecast rejected", zap.Int("valid_dates", len(dates)))
		return models.ForecastResult{}, ErrInsufficientHistory
	}

	lengths := CycleLengths(dates)
	forecastLengths, model, points, err := ForecastCycleLengths(lengths, settings.Cycles)
	if err != nil {
		logger.Warn("forecast model failed", zap.Ints("cycle_lengths", lengths), zap.Error(err))
		return models.ForecastResult{}, err
	}

	warnings := history.Warnings()
	if model.Degenerate {
		warnings = append(warnings, WarningDegenerateHistory)
	}

	cycles := ProjectCycles(dates[len(dates)-1], forecastLengths)
	calendars := make([]models.CycleCalendar, 0, len(cycles))
	for _, cycle := range cycles {
		calendars = append(calendars, models.CycleCalendar{
			Label: CycleLabel(cycle.Index),
			Cycle: cycle,
			Days:  ClassifyCycleDays(cycle, settings.MenstruationDays),
		})
	}

	logger.Debug("forecast completed",
		zap.Int("history", len(dates)),
		zap.Float64("mean", model.Mean),
		zap.Float64("phi", model.Phi),
		zap.Ints("forecast_lengths", forecastLengths),
	)

	return models.ForecastResult{
		RunID:        runID,
		History:      history.Records,
		InvalidDates: history.Invalid,
		Warnings:     warnings,
		CycleLengths: lengths,
		Settings:     settings,
		Model:        model,
		Forecast:     points,
		Cycles:       cycles,
		Calendars:    calendars,
	}, nil
}

func CycleLabel(index int) string {
	return fmt.Sprintf("Cycle %d", index)
}

func forecastRunID(dates []time.Time, settings models.ForecastSettings) string {
	var builder strings.Builder
	for _, day := range dates {
		builder.WriteString(day.Format(DateLayout))
		builder.WriteByte(';')
	}
	builder.WriteString(strconv.Itoa(settings.MenstruationDays))
	builder.WriteByte('/')
	builder.WriteString(strconv.Itoa(settings.Cycles))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(builder.String())).String()
}
