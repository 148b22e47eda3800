package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/cycleforecast/internal/security"
)

const (
	defaultPort               = "8080"
	defaultLanguage           = "en"
	defaultMaxUploadBytes     = 1 << 20
	defaultExportTokenTTL     = time.Hour
	defaultRateLimitPerMinute = 30
	defaultMaxCalendarDays    = 5000
	minSecretKeyLength        = 32
)

var (
	errSecretKeyMissing     = errors.New("SECRET_KEY is required")
	errSecretKeyPlaceholder = errors.New("SECRET_KEY uses an example placeholder")
	errSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
	"changeme":                                   {},
}

type Config struct {
	Port               string
	SecretKey          string
	EphemeralSecret    bool
	DefaultLanguage    string
	Location           *time.Location
	CookieSecure       bool
	LogLevel           string
	LogFormat          string
	MaxUploadBytes     int
	ExportTokenTTL     time.Duration
	RateLimitPerMinute int
	MaxCalendarDays    int
}

// Load reads server settings from the environment. An unset SECRET_KEY yields a random
// per-process key; a set but weak one is an error.
func Load() (Config, error) {
	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}

	secretKey, err := ResolveSecretKey()
	ephemeral := false
	if errors.Is(err, errSecretKeyMissing) {
		secretKey, err = security.NewSecret(48)
		ephemeral = true
	}
	if err != nil {
		return Config{}, err
	}

	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}
	maxUploadBytes, err := parsePositiveIntEnv("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := parsePositiveIntEnv("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute)
	if err != nil {
		return Config{}, err
	}
	maxCalendarDays, err := parsePositiveIntEnv("MAX_CALENDAR_DAYS", defaultMaxCalendarDays)
	if err != nil {
		return Config{}, err
	}
	tokenTTL, err := parseDurationEnv("EXPORT_TOKEN_TTL", defaultExportTokenTTL)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:               port,
		SecretKey:          secretKey,
		EphemeralSecret:    ephemeral,
		DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", defaultLanguage),
		Location:           LoadLocation(getEnv("TZ", "UTC")),
		CookieSecure:       cookieSecure,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		MaxUploadBytes:     maxUploadBytes,
		ExportTokenTTL:     tokenTTL,
		RateLimitPerMinute: rateLimit,
		MaxCalendarDays:    maxCalendarDays,
	}, nil
}

func ResolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return strconv.Itoa(port), nil
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", errSecretKeyTooShort
	}
	return secret, nil
}

// LoadLocation falls back to UTC for unknown zone names.
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, raw)
	}
	return value, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, raw)
	}
	return value, nil
}
