package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/services"
	"go.uber.org/zap"
)

// APIForecast accepts either a JSON body with period_starts or a multipart upload with
// a file field, and answers with the full forecast as JSON.
func (handler *Handler) APIForecast(c *fiber.Ctx) error {
	if !handler.allowSubmission(c) {
		return forecastError(c, errTooManyRequests)
	}

	rawDates, settings, err := handler.parseAPIForecastRequest(c)
	if err != nil {
		return forecastError(c, err)
	}
	if err := validateAPISettings(settings); err != nil {
		return forecastError(c, err)
	}

	result, err := handler.runForecast(rawDates, settings)
	if err != nil {
		return forecastError(c, err)
	}

	exportToken, err := handler.exportTokens.issue(result, handler.now())
	if err != nil {
		handler.logger.Error("issue export token", zap.String("run_id", result.RunID), zap.Error(err))
		return forecastError(c, err)
	}

	return c.JSON(buildForecastResponse(currentMessages(c), result, exportToken))
}

func (handler *Handler) parseAPIForecastRequest(c *fiber.Ctx) ([]string, models.ForecastSettings, error) {
	settings := models.DefaultForecastSettings()

	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		menstruationDays, err := parseOptionalIntField(c.FormValue("menstruation_days"), settings.MenstruationDays)
		if err != nil {
			return nil, settings, err
		}
		cycles, err := parseOptionalIntField(c.FormValue("predict_n"), settings.Cycles)
		if err != nil {
			return nil, settings, err
		}
		settings.MenstruationDays = menstruationDays
		settings.Cycles = cycles

		rawDates, err := handler.readHistoryUpload(c)
		return rawDates, settings, err
	}

	request := forecastRequest{}
	if err := c.BodyParser(&request); err != nil {
		return nil, settings, errInvalidInput
	}
	if request.MenstruationDays != nil {
		settings.MenstruationDays = *request.MenstruationDays
	}
	if request.PredictN != nil {
		settings.Cycles = *request.PredictN
	}
	return request.PeriodStarts, settings, nil
}

func buildForecastResponse(messages map[string]string, result models.ForecastResult, exportToken string) forecastResponse {
	warnings := make([]warningResponse, 0, len(result.Warnings))
	for _, code := range result.Warnings {
		warnings = append(warnings, warningResponse{Code: code, Message: translateMessage(messages, code)})
	}

	cycles := make([]cycleResponse, 0, len(result.Calendars))
	for _, calendar := range result.Calendars {
		cycle := calendar.Cycle
		days := make([]dayResponse, 0, len(calendar.Days))
		for _, day := range calendar.Days {
			days = append(days, dayResponse{
				Date:             day.Date.Format(services.DateLayout),
				CycleDay:         day.CycleDay,
				Status:           string(day.Status),
				Note:             day.Note,
				ProbNoProtection: day.ProbNoProtection,
				ProbCondom:       day.ProbCondom,
				ProbPlanB:        day.ProbPlanB,
			})
		}
		cycles = append(cycles, cycleResponse{
			Index:         cycle.Index,
			Label:         calendar.Label,
			StartDate:     cycle.StartDate.Format(services.DateLayout),
			LengthDays:    cycle.LengthDays,
			OvulationDate: cycle.OvulationDate.Format(services.DateLayout),
			FertileStart:  cycle.FertileStartDate.Format(services.DateLayout),
			FertileEnd:    cycle.FertileEndDate.Format(services.DateLayout),
			Days:          days,
		})
	}

	return forecastResponse{
		RunID:        result.RunID,
		History:      services.FormatPeriodDates(result.HistoryDates()),
		InvalidDates: result.InvalidDates,
		Warnings:     warnings,
		CycleLengths: result.CycleLengths,
		Settings: settingsResponse{
			MenstruationDays: result.Settings.MenstruationDays,
			PredictN:         result.Settings.Cycles,
		},
		Model:       result.Model,
		Forecast:    result.Forecast,
		Cycles:      cycles,
		ExportToken: exportToken,
	}
}
