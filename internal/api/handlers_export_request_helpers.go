package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/models"
)

// forecastFromExportToken reruns the forecast described by the signed form token.
func (handler *Handler) forecastFromExportToken(c *fiber.Ctx) (models.ForecastResult, error) {
	claims, err := handler.exportTokens.parse(c.FormValue("export_token"), handler.now())
	if err != nil {
		return models.ForecastResult{}, err
	}

	result, err := handler.runForecast(claims.Dates, claims.settings())
	if err != nil {
		return models.ForecastResult{}, err
	}
	if result.RunID != claims.Subject {
		return models.ForecastResult{}, errExportTokenInvalid
	}
	return result, nil
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
}
