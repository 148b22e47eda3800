package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/cycleforecast/internal/api"
	"github.com/terraincognita07/cycleforecast/internal/cli"
	"github.com/terraincognita07/cycleforecast/internal/config"
	"github.com/terraincognita07/cycleforecast/internal/i18n"
	"github.com/terraincognita07/cycleforecast/internal/logger"
	"go.uber.org/zap"
)

const (
	serviceName       = "cycleforecast"
	bodyLimitSlack    = 64 << 10
	shutdownTimeout   = 10 * time.Second
	csrfCookieName    = "cycleforecast_csrf"
	csrfFormFieldName = "csrf_token"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "forecast" {
		runForecastCommand(os.Args[2:])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	time.Local = cfg.Location

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.EphemeralSecret {
		log.Warn("SECRET_KEY is not set, export links will not survive a restart")
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		log.Fatal("i18n init failed", zap.Error(err))
	}

	handler, err := api.NewHandler(api.HandlerOptions{
		SecretKey:          cfg.SecretKey,
		Location:           cfg.Location,
		CookieSecure:       cfg.CookieSecure,
		MaxUploadBytes:     cfg.MaxUploadBytes,
		ExportTokenTTL:     cfg.ExportTokenTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MaxCalendarDays:    cfg.MaxCalendarDays,
	}, i18nManager, log)
	if err != nil {
		log.Fatal("handler init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               "Cycle Forecast",
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxUploadBytes + bodyLimitSlack,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server listening",
		zap.String("addr", "http://0.0.0.0:"+cfg.Port),
		zap.String("tz", cfg.Location.String()),
		zap.String("default_language", i18nManager.DefaultLanguage()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func runForecastCommand(args []string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log, err := logger.New(level, "console", serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cli.RunForecastCommand(args, os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "forecast failed: %v\n", err)
		os.Exit(1)
	}
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:" + csrfFormFieldName,
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}
}
