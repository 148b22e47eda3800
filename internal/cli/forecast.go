package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/terraincognita07/cycleforecast/internal/export"
	"github.com/terraincognita07/cycleforecast/internal/models"
	"github.com/terraincognita07/cycleforecast/internal/services"
	"go.uber.org/zap"
)

type forecastOptions struct {
	input            string
	output           string
	menstruationDays int
	cycles           int
}

// RunForecastCommand forecasts from a history file on disk, prints the summary and the
// first cycle calendar, and writes the workbook next to it.
func RunForecastCommand(args []string, stdout io.Writer, logger *zap.Logger) error {
	options, err := parseForecastFlags(args)
	if err != nil {
		return err
	}

	file, err := os.Open(options.input)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	settings := models.ForecastSettings{
		MenstruationDays: options.menstruationDays,
		Cycles:           options.cycles,
	}
	if err := services.ValidateConventionalForecastSettings(settings); err != nil {
		return err
	}

	result, err := services.NewForecastService(logger).RunCSV(file, settings)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(stdout, "warning: %s\n", warningText(warning, result))
	}
	if err := printSummary(stdout, result); err != nil {
		return err
	}
	if calendar, ok := result.Calendar(services.CycleLabel(1)); ok {
		if err := printCalendar(stdout, calendar); err != nil {
			return err
		}
	}

	content, err := export.BuildWorkbook(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(options.output, content, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	fmt.Fprintf(stdout, "\nWorkbook written to %s\n", options.output)
	return nil
}

func parseForecastFlags(args []string) (forecastOptions, error) {
	options := forecastOptions{}

	flags := flag.NewFlagSet("forecast", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&options.input, "input", "", "history file with a period_start column")
	flags.StringVar(&options.output, "output", export.WorkbookFilename, "workbook destination")
	flags.IntVar(&options.menstruationDays, "menstruation-days", models.DefaultMenstruationDays, "menstruation length in days")
	flags.IntVar(&options.cycles, "cycles", models.DefaultForecastCycles, "number of cycles to forecast")

	if err := flags.Parse(args); err != nil {
		return forecastOptions{}, fmt.Errorf("parse flags: %w", err)
	}
	if flags.NArg() > 0 {
		return forecastOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	options.input = strings.TrimSpace(options.input)
	options.output = strings.TrimSpace(options.output)
	if options.input == "" {
		return forecastOptions{}, errors.New("-input is required")
	}
	if options.output == "" {
		return forecastOptions{}, errors.New("-output must not be empty")
	}
	return options, nil
}

func warningText(warning string, result models.ForecastResult) string {
	switch warning {
	case services.WarningInvalidDates:
		return fmt.Sprintf("%d invalid date(s) were dropped", result.InvalidDates)
	case services.WarningDegenerateHistory:
		return "cycle lengths are constant, the forecast repeats the mean"
	default:
		return warning
	}
}

func printSummary(stdout io.Writer, result models.ForecastResult) error {
	fmt.Fprintln(stdout, "Predicted cycles")
	writer := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(export.SummaryHeaders, "\t"))
	for _, cycle := range result.Cycles {
		fmt.Fprintf(writer, "%d\t%s\t%d\t%s\t%s\t%s\n",
			cycle.Index,
			cycle.StartDate.Format(services.DateLayout),
			cycle.LengthDays,
			cycle.OvulationDate.Format(services.DateLayout),
			cycle.FertileStartDate.Format(services.DateLayout),
			cycle.FertileEndDate.Format(services.DateLayout),
		)
	}
	return writer.Flush()
}

func printCalendar(stdout io.Writer, calendar models.CycleCalendar) error {
	fmt.Fprintf(stdout, "\n%s calendar\n", calendar.Label)
	writer := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(export.CalendarHeaders, "\t"))
	for _, day := range calendar.Days {
		fmt.Fprintf(writer, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			day.Date.Format(services.DateLayout),
			day.CycleDay,
			day.Status,
			day.Note,
			formatPercent(day.ProbNoProtection),
			formatPercent(day.ProbCondom),
			formatPercent(day.ProbPlanB),
		)
	}
	return writer.Flush()
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
