package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newJSONForecastRequest(body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Language", "en")
	return request
}

func decodeForecastResponse(t *testing.T, response *http.Response) forecastResponse {
	t.Helper()

	payload := forecastResponse{}
	if err := json.Unmarshal([]byte(mustReadBody(t, response)), &payload); err != nil {
		t.Fatalf("decode forecast response: %v", err)
	}
	return payload
}

func TestAPIForecastJSONScenario(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(newJSONForecastRequest(`{"period_starts":["2024-02-27","2024-01-01","2024-01-29"],"menstruation_days":5,"predict_n":1}`), -1)
	if err != nil {
		t.Fatalf("api forecast request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := decodeForecastResponse(t, response)

	if strings.Join(payload.History, ",") != "2024-01-01,2024-01-29,2024-02-27" {
		t.Fatalf("expected sorted history, got %v", payload.History)
	}
	if len(payload.CycleLengths) != 2 || payload.CycleLengths[0] != 28 || payload.CycleLengths[1] != 29 {
		t.Fatalf("expected cycle lengths [28 29], got %v", payload.CycleLengths)
	}
	if len(payload.Cycles) != 1 {
		t.Fatalf("expected one cycle, got %d", len(payload.Cycles))
	}

	cycle := payload.Cycles[0]
	if cycle.Label != "Cycle 1" || cycle.StartDate != "2024-03-26" || cycle.LengthDays != 28 {
		t.Fatalf("unexpected cycle: %+v", cycle)
	}
	if cycle.OvulationDate != "2024-04-09" || cycle.FertileStart != "2024-04-04" || cycle.FertileEnd != "2024-04-10" {
		t.Fatalf("unexpected cycle dates: %+v", cycle)
	}
	if len(cycle.Days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(cycle.Days))
	}
	for _, day := range cycle.Days[:5] {
		if day.Status != "Menstruation" {
			t.Fatalf("day %d: expected Menstruation, got %s", day.CycleDay, day.Status)
		}
	}
	if day := cycle.Days[13]; day.Note != "Ovulation" || day.ProbNoProtection != 33 || day.ProbCondom != 5 || day.ProbPlanB != 3.3 {
		t.Fatalf("unexpected ovulation day: %+v", day)
	}
	if payload.Model.Observations != 2 || payload.Settings.PredictN != 1 {
		t.Fatalf("unexpected model or settings: %+v %+v", payload.Model, payload.Settings)
	}
	if payload.RunID == "" || payload.ExportToken == "" {
		t.Fatal("expected run id and export token")
	}
}

func TestAPIForecastDefaultsAndWarnings(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(newJSONForecastRequest(`{"period_starts":["2024-01-01","oops","2024-01-29","2024-02-26"]}`), -1)
	if err != nil {
		t.Fatalf("api forecast request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := decodeForecastResponse(t, response)
	if payload.Settings.MenstruationDays != 5 || payload.Settings.PredictN != 1 {
		t.Fatalf("expected default settings, got %+v", payload.Settings)
	}
	if payload.InvalidDates != 1 {
		t.Fatalf("expected 1 invalid date, got %d", payload.InvalidDates)
	}

	codes := make([]string, 0, len(payload.Warnings))
	for _, warning := range payload.Warnings {
		codes = append(codes, warning.Code)
		if warning.Message == warning.Code {
			t.Fatalf("expected localized warning message for %s", warning.Code)
		}
	}
	if strings.Join(codes, ",") != "warning.invalid_dates,warning.degenerate_history" {
		t.Fatalf("unexpected warnings %v", codes)
	}
}

func TestAPIForecastMultipartUpload(t *testing.T) {
	app, _ := newTestApp(t)

	request := newUploadRequest(t, "/api/forecast", map[string]string{"menstruation_days": "4", "predict_n": "3"}, scenarioHistoryCSV)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("api forecast request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := decodeForecastResponse(t, response)
	if len(payload.Cycles) != 3 || payload.Settings.MenstruationDays != 4 {
		t.Fatalf("unexpected multipart result: %d cycles, settings %+v", len(payload.Cycles), payload.Settings)
	}
}

func TestAPIForecastErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "malformed json", body: `{"period_starts":`, wantStatus: http.StatusBadRequest, wantCode: "error.invalid_input"},
		{name: "no dates", body: `{"period_starts":[]}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "error.insufficient_history"},
		{name: "two dates", body: `{"period_starts":["2024-01-01","2024-01-29"]}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "error.insufficient_cycle_lengths"},
		{name: "zero menstruation days", body: `{"period_starts":["2024-01-01","2024-01-29","2024-02-27"],"menstruation_days":0}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "error.invalid_input"},
		{name: "calendar over budget", body: `{"period_starts":["1800-01-01","2000-01-01","2200-01-01"],"predict_n":120}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "error.calendar_too_large"},
		{name: "too many cycles", body: `{"period_starts":["2024-01-01","2024-01-29","2024-02-27"],"predict_n":500}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "error.forecast_cycles_range"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			response, err := app.Test(newJSONForecastRequest(test.body), -1)
			if err != nil {
				t.Fatalf("api forecast request failed: %v", err)
			}
			defer response.Body.Close()

			if response.StatusCode != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, response.StatusCode)
			}
			payload := map[string]string{}
			if err := json.Unmarshal([]byte(mustReadBody(t, response)), &payload); err != nil {
				t.Fatalf("decode error payload: %v", err)
			}
			if payload["code"] != test.wantCode {
				t.Fatalf("expected code %q, got %q", test.wantCode, payload["code"])
			}
			if payload["error"] == "" {
				t.Fatal("expected localized error message")
			}
		})
	}
}

func TestAPIForecastAcceptsUnconventionalSettings(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(newJSONForecastRequest(`{"period_starts":["2024-01-01","2024-01-29","2024-02-27"],"menstruation_days":14,"predict_n":24}`), -1)
	if err != nil {
		t.Fatalf("api forecast request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if payload := decodeForecastResponse(t, response); len(payload.Cycles) != 24 {
		t.Fatalf("expected 24 cycles, got %d", len(payload.Cycles))
	}
}
