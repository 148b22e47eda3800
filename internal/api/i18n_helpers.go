package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleforecast/internal/export"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/services"
)

var (
	errFileRequired       = errors.New("history file is required")
	errFileTooLarge       = errors.New("history file is too large")
	errInvalidInput       = errors.New("invalid input")
	errTooManyRequests    = errors.New("too many forecast requests")
	errExportTokenInvalid = errors.New("invalid export token")
	errCalendarTooLarge   = errors.New("forecast calendar too large")
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func statusTranslationKey(status models.DayStatus) string {
	switch status {
	case models.DayStatusMenstruation:
		return "status.menstruation"
	case models.DayStatusFertile:
		return "status.fertile"
	default:
		return "status.safe"
	}
}

// forecastErrorKey maps pipeline and request errors to message keys and HTTP statuses.
func forecastErrorKey(err error) (string, int) {
	switch {
	case errors.Is(err, errFileRequired):
		return "error.file_required", fiber.StatusBadRequest
	case errors.Is(err, errFileTooLarge):
		return "error.file_too_large", fiber.StatusRequestEntityTooLarge
	case errors.Is(err, errInvalidInput):
		return "error.invalid_input", fiber.StatusBadRequest
	case errors.Is(err, errTooManyRequests):
		return "error.too_many_requests", fiber.StatusTooManyRequests
	case errors.Is(err, errExportTokenInvalid):
		return "error.export_token_invalid", fiber.StatusBadRequest
	case errors.Is(err, services.ErrHistoryUnreadable):
		return "error.history_unreadable", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrHistoryColumnMissing):
		return "error.history_column_missing", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrHistoryEmpty):
		return "error.history_empty", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInsufficientHistory):
		return "error.insufficient_history", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInsufficientCycleLengths):
		return "error.insufficient_cycle_lengths", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrMenstruationDaysOutOfRange):
		return "error.menstruation_days_range", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrForecastCyclesOutOfRange):
		return "error.forecast_cycles_range", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrMenstruationDaysInvalid), errors.Is(err, services.ErrForecastCountInvalid):
		return "error.invalid_input", fiber.StatusUnprocessableEntity
	case errors.Is(err, errCalendarTooLarge):
		return "error.calendar_too_large", fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrForecastFitFailed):
		return "error.fit_failed", fiber.StatusUnprocessableEntity
	default:
		return "error.generic", fiber.StatusInternalServerError
	}
}

func calendarLabels(messages map[string]string) export.CalendarLabels {
	return export.CalendarLabels{
		CalendarName: translateMessage(messages, "ics.calendar_name"),
		Period:       translateMessage(messages, "ics.period"),
		Fertile:      translateMessage(messages, "ics.fertile"),
		Ovulation:    translateMessage(messages, "ics.ovulation"),
	}
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["NoDataLabel"]; !ok {
		noData := translateMessage(messages, "common.not_available")
		if noData == "common.not_available" {
			noData = "-"
		}
		data["NoDataLabel"] = noData
	}

	return data
}

// currentPathWithQuery is the language switch target. POST-only pages fall back to the
// upload page since a redirect would turn them into a GET.
func currentPathWithQuery(c *fiber.Ctx) string {
	if c.Method() != fiber.MethodGet {
		return "/"
	}
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
