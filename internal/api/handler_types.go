package api

import (
	"html/template"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cycleforecast/internal/i18n"
	"github.com/terraincognita07/cycleforecast/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	forecasts       *services.ForecastService
	i18n            *i18n.Manager
	templates       map[string]*template.Template
	exportTokens    *exportTokenCodec
	location        *time.Location
	cookieSecure    bool
	maxUploadBytes  int
	maxCalendarDays int
	submissions     *submissionLimiter
	now             func() time.Time
}

type HandlerOptions struct {
	SecretKey          string
	Location           *time.Location
	CookieSecure       bool
	MaxUploadBytes     int
	ExportTokenTTL     time.Duration
	RateLimitPerMinute int
	MaxCalendarDays    int
}

type forecastFormValues struct {
	MenstruationDays int
	PredictN         int
}

type forecastFormLimits struct {
	MinMenstruationDays int
	MaxMenstruationDays int
	MinForecastCycles   int
	MaxForecastCycles   int
}

type exportClaims struct {
	Dates            []string `json:"dates"`
	MenstruationDays int      `json:"md"`
	Cycles           int      `json:"n"`
	jwt.RegisteredClaims
}

const (
	defaultMaxUploadBytes     = 1 << 20
	defaultExportTokenTTL     = time.Hour
	defaultRateLimitPerMinute = 30
	defaultMaxCalendarDays    = 5000
	submitLimitWindow         = time.Minute
)
