package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/services"
)

// apiMaxForecastCycles bounds the JSON API, which skips the form's conventional ranges.
const apiMaxForecastCycles = 120

func defaultForecastForm() forecastFormValues {
	defaults := models.DefaultForecastSettings()
	return forecastFormValues{
		MenstruationDays: defaults.MenstruationDays,
		PredictN:         defaults.Cycles,
	}
}

func forecastLimits() forecastFormLimits {
	return forecastFormLimits{
		MinMenstruationDays: models.MinMenstruationDays,
		MaxMenstruationDays: models.MaxMenstruationDays,
		MinForecastCycles:   models.MinForecastCycles,
		MaxForecastCycles:   models.MaxForecastCycles,
	}
}

func (values forecastFormValues) settings() models.ForecastSettings {
	return models.ForecastSettings{
		MenstruationDays: values.MenstruationDays,
		Cycles:           values.PredictN,
	}
}

// parseForecastForm reads the two integer settings. Blank fields keep their defaults so
// the values can be echoed back into the form on error.
func parseForecastForm(c *fiber.Ctx) (forecastFormValues, error) {
	values := defaultForecastForm()

	menstruationDays, err := parseOptionalIntField(c.FormValue("menstruation_days"), values.MenstruationDays)
	if err != nil {
		return values, err
	}
	values.MenstruationDays = menstruationDays

	predictN, err := parseOptionalIntField(c.FormValue("predict_n"), values.PredictN)
	if err != nil {
		return values, err
	}
	values.PredictN = predictN

	if err := services.ValidateConventionalForecastSettings(values.settings()); err != nil {
		return values, err
	}
	return values, nil
}

func parseOptionalIntField(raw string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback, fmt.Errorf("%w: %q is not an integer", errInvalidInput, trimmed)
	}
	return value, nil
}

func validateAPISettings(settings models.ForecastSettings) error {
	if err := services.ValidateForecastSettings(settings); err != nil {
		return err
	}
	if settings.Cycles > apiMaxForecastCycles {
		return services.ErrForecastCyclesOutOfRange
	}
	return nil
}

// readHistoryUpload returns the raw period_start values of the uploaded file.
func (handler *Handler) readHistoryUpload(c *fiber.Ctx) ([]string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
			return nil, errFileTooLarge
		}
		return nil, errFileRequired
	}
	if header.Size == 0 {
		return nil, errFileRequired
	}
	if header.Size > int64(handler.maxUploadBytes) {
		return nil, errFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer closeUpload(file)

	return services.ReadPeriodStartColumn(io.LimitReader(file, int64(handler.maxUploadBytes)))
}

func closeUpload(file multipart.File) {
	_ = file.Close()
}
