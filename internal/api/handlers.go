package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycleforecast/internal/i18n"
	"github.com/terraincognita07/cycleforecast/internal/services"
	"github.com/terraincognita07/cycleforecast/internal/templates"
	"go.uber.org/zap"
)

func NewHandler(options HandlerOptions, i18nManager *i18n.Manager, logger *zap.Logger) (*Handler, error) {
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	maxUploadBytes := options.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	tokenTTL := options.ExportTokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultExportTokenTTL
	}
	submitLimit := options.RateLimitPerMinute
	if submitLimit <= 0 {
		submitLimit = defaultRateLimitPerMinute
	}

	maxCalendarDays := options.MaxCalendarDays
	if maxCalendarDays <= 0 {
		maxCalendarDays = defaultMaxCalendarDays
	}

	tokens, err := newExportTokenCodec([]byte(options.SecretKey), tokenTTL)
	if err != nil {
		return nil, err
	}

	parsedTemplates, err := parsePageTemplates(templates.FS, newTemplateFuncMap(), pageTemplates)
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:          logger,
		forecasts:       services.NewForecastService(logger.Named("forecast")),
		i18n:            i18nManager,
		templates:       parsedTemplates,
		exportTokens:    tokens,
		location:        location,
		cookieSecure:    options.CookieSecure,
		maxUploadBytes:  maxUploadBytes,
		maxCalendarDays: maxCalendarDays,
		submissions:     newSubmissionLimiter(submitLimit, submitLimitWindow),
		now:             time.Now,
	}, nil
}
