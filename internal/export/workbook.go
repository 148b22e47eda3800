package export

import (
	"fmt"

	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	WorkbookFilename    = "predicted_cycles.xlsx"
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SummarySheet        = "Summary"

	dateLayout = "2006-01-02"
)

var SummaryHeaders = []string{
	"Cycle #",
	"Start Date",
	"Length (days)",
	"Ovulation",
	"Fertile Start",
	"Fertile End",
}

var CalendarHeaders = []string{
	"Date",
	"Cycle Day",
	"Status",
	"Note",
	"Prob % (No Prot.)",
	"Prob % (Condom)",
	"Prob % (Plan B)",
}

var (
	summaryColumnWidths  = []float64{10, 14, 14, 14, 14, 14}
	calendarColumnWidths = []float64{14, 11, 15, 12, 18, 17, 16}
)

// BuildWorkbook writes the summary sheet followed by one sheet per forecast cycle,
// in forecast order.
func BuildWorkbook(result models.ForecastResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F3E5F5"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSheetHeader(f, SummarySheet, SummaryHeaders, summaryColumnWidths, headerStyle); err != nil {
		return nil, err
	}
	for rowIndex, cycle := range result.Cycles {
		row := []any{
			cycle.Index,
			cycle.StartDate.Format(dateLayout),
			cycle.LengthDays,
			cycle.OvulationDate.Format(dateLayout),
			cycle.FertileStartDate.Format(dateLayout),
			cycle.FertileEndDate.Format(dateLayout),
		}
		if err := writeRow(f, SummarySheet, rowIndex+2, row); err != nil {
			return nil, err
		}
	}

	for _, calendar := range result.Calendars {
		if _, err := f.NewSheet(calendar.Label); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", calendar.Label, err)
		}
		if err := writeSheetHeader(f, calendar.Label, CalendarHeaders, calendarColumnWidths, headerStyle); err != nil {
			return nil, err
		}
		for rowIndex, day := range calendar.Days {
			row := []any{
				day.Date.Format(dateLayout),
				day.CycleDay,
				string(day.Status),
				day.Note,
				day.ProbNoProtection,
				day.ProbCondom,
				day.ProbPlanB,
			}
			if err := writeRow(f, calendar.Label, rowIndex+2, row); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func writeSheetHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for index, header := range headers {
		cell, err := excelize.CoordinatesToCellName(index+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", index, err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header %s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style header %s!%s: %w", sheet, cell, err)
		}

		if index < len(widths) {
			column, err := excelize.ColumnNumberToName(index + 1)
			if err != nil {
				return fmt.Errorf("column %d: %w", index, err)
			}
			if err := f.SetColWidth(sheet, column, column, widths[index]); err != nil {
				return fmt.Errorf("set width %s!%s: %w", sheet, column, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header %s: %w", sheet, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
