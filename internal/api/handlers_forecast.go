package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"go.uber.org/zap"
)

func (handler *Handler) ShowUploadPage(c *fiber.Ctx) error {
	return handler.renderUploadPage(c, defaultForecastForm(), "")
}

func (handler *Handler) SubmitForecast(c *fiber.Ctx) error {
	form, err := parseForecastForm(c)
	if err != nil {
		return handler.renderUploadError(c, form, err)
	}
	if !handler.allowSubmission(c) {
		return handler.renderUploadError(c, form, errTooManyRequests)
	}

	rawDates, err := handler.readHistoryUpload(c)
	if err != nil {
		return handler.renderUploadError(c, form, err)
	}

	result, err := handler.runForecast(rawDates, form.settings())
	if err != nil {
		return handler.renderUploadError(c, form, err)
	}

	exportToken, err := handler.exportTokens.issue(result, handler.now())
	if err != nil {
		handler.logger.Error("issue export token", zap.String("run_id", result.RunID), zap.Error(err))
		return handler.renderUploadError(c, form, err)
	}

	return handler.render(c, "results", resultsPageData(currentMessages(c), result, exportToken))
}

func (handler *Handler) renderUploadPage(c *fiber.Ctx, form forecastFormValues, errorKey string) error {
	messages := currentMessages(c)
	return handler.render(c, "index", fiber.Map{
		"Title":  translateMessage(messages, "upload.title"),
		"Form":   form,
		"Limits": forecastLimits(),
		"Error":  errorKey,
	})
}

func (handler *Handler) renderUploadError(c *fiber.Ctx, form forecastFormValues, err error) error {
	key, status := forecastErrorKey(err)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error("forecast request failed", zap.Error(err))
	} else {
		handler.logger.Info("forecast request rejected", zap.String("reason", key), zap.Error(err))
	}

	c.Status(status)
	return handler.renderUploadPage(c, form, key)
}

func resultsPageData(messages map[string]string, result models.ForecastResult, exportToken string) fiber.Map {
	var primary models.CycleCalendar
	var others []models.CycleCalendar
	if len(result.Calendars) > 0 {
		primary = result.Calendars[0]
		others = result.Calendars[1:]
	}

	return fiber.Map{
		"Title":           translateMessage(messages, "results.title"),
		"Result":          result,
		"Warnings":        result.Warnings,
		"PrimaryCalendar": primary,
		"OtherCalendars":  others,
		"ExportToken":     exportToken,
	}
}
