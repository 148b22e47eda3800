package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/export"
	"go.uber.org/zap"
)

func (handler *Handler) ExportWorkbook(c *fiber.Ctx) error {
	result, err := handler.forecastFromExportToken(c)
	if err != nil {
		return handler.exportError(c, err)
	}

	workbook, err := export.BuildWorkbook(result)
	if err != nil {
		handler.logger.Error("build workbook", zap.String("run_id", result.RunID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, translateMessage(currentMessages(c), "error.generic"))
	}

	setExportAttachmentHeaders(c, export.WorkbookContentType, export.WorkbookFilename)
	return c.Send(workbook)
}

func (handler *Handler) ExportCalendar(c *fiber.Ctx) error {
	result, err := handler.forecastFromExportToken(c)
	if err != nil {
		return handler.exportError(c, err)
	}

	content := export.BuildICS(result, calendarLabels(currentMessages(c)), handler.now())
	setExportAttachmentHeaders(c, export.CalendarContentType, export.CalendarFilename)
	return c.SendString(content)
}

// exportError answers API clients with JSON and browsers with the upload page, since
// the export buttons are plain form posts.
func (handler *Handler) exportError(c *fiber.Ctx, err error) error {
	if acceptsJSON(c) {
		handler.logger.Info("export rejected", zap.Error(err))
		return forecastError(c, err)
	}
	return handler.renderUploadError(c, defaultForecastForm(), err)
}
