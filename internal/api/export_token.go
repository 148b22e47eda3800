package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/security"
	"github.com/terraincognita07/cycleforecast/internal/services"
)

const (
	exportTokenPurpose = "export-token"
	exportTokenIssuer  = "cycleforecast"
)

// exportTokenCodec signs the cleaned history and settings of a forecast so a later
// download can rerun the same pipeline without server-side state.
type exportTokenCodec struct {
	key []byte
	ttl time.Duration
}

func newExportTokenCodec(secretKey []byte, ttl time.Duration) (*exportTokenCodec, error) {
	key, err := security.DeriveKey(secretKey, exportTokenPurpose, 32)
	if err != nil {
		return nil, fmt.Errorf("init export tokens: %w", err)
	}
	return &exportTokenCodec{key: key, ttl: ttl}, nil
}

func (codec *exportTokenCodec) issue(result models.ForecastResult, now time.Time) (string, error) {
	claims := exportClaims{
		Dates:            services.FormatPeriodDates(result.HistoryDates()),
		MenstruationDays: result.Settings.MenstruationDays,
		Cycles:           result.Settings.Cycles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    exportTokenIssuer,
			Subject:   result.RunID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(codec.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(codec.key)
	if err != nil {
		return "", fmt.Errorf("sign export token: %w", err)
	}
	return signed, nil
}

func (codec *exportTokenCodec) parse(raw string, now time.Time) (exportClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return exportClaims{}, errExportTokenInvalid
	}

	claims := exportClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return codec.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(exportTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return exportClaims{}, errors.Join(errExportTokenInvalid, err)
	}
	if len(claims.Dates) == 0 || claims.Subject == "" {
		return exportClaims{}, errExportTokenInvalid
	}
	return claims, nil
}

func (claims exportClaims) settings() models.ForecastSettings {
	return models.ForecastSettings{
		MenstruationDays: claims.MenstruationDays,
		Cycles:           claims.Cycles,
	}
}
