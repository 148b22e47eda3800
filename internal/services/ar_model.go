package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/terraincognita07/cycleforecast/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const WarningDegenerateHistory = "warning.degenerate_history"

var (
	ErrInsufficientCycleLengths = errors.New("at least two cycle lengths are required")
	ErrForecastCountInvalid     = errors.New("forecast count must be positive")
	ErrForecastFitFailed        = errors.New("forecast model fit failed")
)

// forecastBandZ is the two-sided 95% normal quantile.
const forecastBandZ = 1.959963984540054

// FitAR1 estimates x_t = c + phi*x_{t-1} + e_t with Yule-Walker equations. The estimate
// is always stationary and is defined for two observations. A constant series has no
// autocovariance; it fits phi = 0 and is flagged Degenerate.
func FitAR1(series []float64) (models.AR1Model, error) {
	n := len(series)
	if n < 2 {
		return models.AR1Model{}, ErrInsufficientCycleLengths
	}
	for index, value := range series {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return models.AR1Model{}, fmt.Errorf("%w: non-finite observation at %d", ErrForecastFitFailed, index)
		}
	}

	mean := stat.Mean(series, nil)
	deviations := make([]float64, n)
	copy(deviations, series)
	floats.AddConst(-mean, deviations)

	gamma0 := floats.Dot(deviations, deviations) / float64(n)
	gamma1 := floats.Dot(deviations[1:], deviations[:n-1]) / float64(n)

	model := models.AR1Model{
		Mean:         mean,
		Intercept:    mean,
		Observations: n,
		LastValue:    series[n-1],
	}
	if gamma0 <= 1e-12*math.Max(1, mean*mean) {
		model.Degenerate = true
		return model, nil
	}

	phi := gamma1 / gamma0
	model.Phi = phi
	model.Intercept = mean * (1 - phi)
	model.Sigma2 = gamma0 * (1 - phi*phi)

	if !finite(model.Mean, model.Phi, model.Intercept, model.Sigma2) {
		return models.AR1Model{}, fmt.Errorf("%w: non-finite estimate", ErrForecastFitFailed)
	}
	return model, nil
}

// ForecastAR1 returns the conditional mean and standard error for each of the next
// steps values after the last observation.
func ForecastAR1(model models.AR1Model, steps int) []models.ForecastPoint {
	if steps <= 0 {
		return nil
	}

	points := make([]models.ForecastPoint, 0, steps)
	deviation := model.LastValue - model.Mean
	power := 1.0
	variance := 0.0
	for step := 1; step <= steps; step++ {
		variance += model.Sigma2 * power * power
		power *= model.Phi

		mean := model.Mean + power*deviation
		stdErr := math.Sqrt(variance)
		points = append(points, models.ForecastPoint{
			Step:   step,
			Mean:   mean,
			StdErr: stdErr,
			Lower:  mean - forecastBandZ*stdErr,
			Upper:  mean + forecastBandZ*stdErr,
		})
	}
	return points
}

// ForecastCycleLengths fits the history and returns count day counts. Forecasts are
// rounded half to even.
func ForecastCycleLengths(lengths []int, count int) ([]int, models.AR1Model, []models.ForecastPoint, error) {
	if count < 1 {
		return nil, models.AR1Model{}, nil, ErrForecastCountInvalid
	}

	series := make([]float64, 0, len(lengths))
	for _, length := range lengths {
		series = append(series, float64(length))
	}

	model, err := FitAR1(series)
	if err != nil {
		return nil, models.AR1Model{}, nil, err
	}

	points := ForecastAR1(model, count)
	rounded := make([]int, 0, len(points))
	for _, point := range points {
		if !finite(point.Mean) {
			return nil, models.AR1Model{}, nil, fmt.Errorf("%w: non-finite forecast at step %d", ErrForecastFitFailed, point.Step)
		}
		rounded = append(rounded, int(math.RoundToEven(point.Mean)))
	}
	return rounded, model, points, nil
}

func finite(values ...float64) bool {
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}
