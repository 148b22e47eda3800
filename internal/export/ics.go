package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cycleforecast/internal/models"
)

const (
	CalendarFilename    = "predicted_cycles.ics"
	CalendarContentType = "text/calendar; charset=utf-8"

	icsProductID = "-//cycleforecast//Cycle Forecast//EN"
)

var icsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/terraincognita07/cycleforecast/ics"))

type CalendarLabels struct {
	CalendarName string
	Period       string
	Fertile      string
	Ovulation    string
}

func DefaultCalendarLabels() CalendarLabels {
	return CalendarLabels{
		CalendarName: "Predicted cycles",
		Period:       "Predicted period",
		Fertile:      "Fertile window",
		Ovulation:    "Ovulation",
	}
}

type calendarEvent struct {
	uid     string
	summary string
	start   time.Time
	days    int
}

// BuildICS renders every forecast cycle as all-day events: the predicted period, the
// fertile window and the ovulation day, taken from the classified calendar rows so the
// file agrees with the day-by-day tables. UIDs derive from the run id, so re-exporting
// the same forecast updates events in place.
func BuildICS(result models.ForecastResult, labels CalendarLabels, stamp time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:" + icsProductID + "\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	if labels.CalendarName != "" {
		sb.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(labels.CalendarName)))
	}

	for _, event := range cycleEvents(result, labels) {
		sb.WriteString("BEGIN:VEVENT\r\n")
		sb.WriteString(fmt.Sprintf("UID:%s\r\n", event.uid))
		sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
		sb.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(event.start)))
		sb.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(event.start.AddDate(0, 0, event.days))))
		sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.summary)))
		sb.WriteString("TRANSP:TRANSPARENT\r\n")
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func cycleEvents(result models.ForecastResult, labels CalendarLabels) []calendarEvent {
	events := make([]calendarEvent, 0, len(result.Calendars)*3)
	for _, calendar := range result.Calendars {
		index := calendar.Cycle.Index

		if start, days, ok := statusSpan(calendar.Days, models.DayStatusMenstruation); ok {
			events = append(events, calendarEvent{
				uid:     eventUID(result.RunID, index, "period"),
				summary: fmt.Sprintf("%s (%d)", labels.Period, index),
				start:   start,
				days:    days,
			})
		}
		if start, days, ok := statusSpan(calendar.Days, models.DayStatusFertile); ok {
			events = append(events, calendarEvent{
				uid:     eventUID(result.RunID, index, "fertile"),
				summary: fmt.Sprintf("%s (%d)", labels.Fertile, index),
				start:   start,
				days:    days,
			})
		}
		for _, day := range calendar.Days {
			if day.Note == models.NoteOvulation {
				events = append(events, calendarEvent{
					uid:     eventUID(result.RunID, index, "ovulation"),
					summary: fmt.Sprintf("%s (%d)", labels.Ovulation, index),
					start:   day.Date,
					days:    1,
				})
				break
			}
		}
	}
	return events
}

// statusSpan returns the first date and day count of the rows carrying status. Rows of
// one status are contiguous within a cycle.
func statusSpan(days []models.CalendarDay, status models.DayStatus) (time.Time, int, bool) {
	var start time.Time
	count := 0
	for _, day := range days {
		if day.Status != status {
			continue
		}
		if count == 0 {
			start = day.Date
		}
		count++
	}
	return start, count, count > 0
}

func eventUID(runID string, index int, kind string) string {
	name := fmt.Sprintf("%s/%d/%s", runID, index, kind)
	return uuid.NewSHA1(icsNamespace, []byte(name)).String() + "@cycleforecast"
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
