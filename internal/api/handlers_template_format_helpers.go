package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/cycleforecast/internal/models"
)

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func formatTemplateDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}

// formatTemplateFloat prints probabilities the way they are stored: one decimal at
// most, no trailing zero.
func formatTemplateFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatTemplateDecimal(value float64) string {
	return fmt.Sprintf("%.3f", value)
}

func templateStatusLabel(messages map[string]string, status models.DayStatus) string {
	return translateMessage(messages, statusTranslationKey(status))
}

func templateStatusClass(status models.DayStatus) string {
	return "status-" + strings.ToLower(string(status))
}

func templateDayNote(messages map[string]string, day models.CalendarDay) string {
	switch {
	case day.Status == models.DayStatusMenstruation:
		return fmt.Sprintf(translateMessage(messages, "note.day"), day.CycleDay)
	case day.Note == models.NoteOvulation:
		return translateMessage(messages, "note.ovulation")
	default:
		return day.Note
	}
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict expects key/value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
