package api

import (
	"fmt"

	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/services"
	"go.uber.org/zap"
)

// runForecast refuses requests whose projected calendar exceeds maxCalendarDays before
// any day rows are built.
func (handler *Handler) runForecast(rawDates []string, settings models.ForecastSettings) (models.ForecastResult, error) {
	if err := services.ValidateForecastSettings(settings); err != nil {
		return models.ForecastResult{}, err
	}

	history := services.ParsePeriodHistory(rawDates)
	lengths := services.CycleLengths(history.Dates())
	if forecastLengths, _, _, err := services.ForecastCycleLengths(lengths, settings.Cycles); err == nil {
		total := calendarDayCount(forecastLengths)
		if total > handler.maxCalendarDays {
			handler.logger.Info("forecast calendar over budget",
				zap.Int("calendar_days", total),
				zap.Int("max_calendar_days", handler.maxCalendarDays),
			)
			return models.ForecastResult{}, fmt.Errorf("%w: %d days over a limit of %d", errCalendarTooLarge, total, handler.maxCalendarDays)
		}
	}

	return handler.forecasts.RunHistory(history, settings)
}

func calendarDayCount(lengths []int) int {
	total := 0
	for _, length := range lengths {
		if length > 0 {
			total += length
		}
	}
	return total
}
