package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/klabast/wb-services/oweek/internal/app"
	"github.com/klabast/wb-services/oweek/internal/calendar"
)

const cellWidth = 4

// PrintMonth handles the print-month subcommand
func PrintMonth(args []string) {
	if err := runPrintMonth(args, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func runPrintMonth(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("print-month", flag.ContinueOnError)
	configFlag := fs.String("config", "", "Path to oweek.yaml (default: $CONFIG_FILE or ./oweek.yaml)")
	year := fs.Int("year", 0, "Year to show (default: current year)")
	month := fs.Int("month", -1, "Month to show, zero-based (0 = January, default: current month)")
	delta := fs.Int("delta", 0, "Months to move from -year/-month (may be negative)")
	noColor := fs.Bool("no-color", false, "Disable colors")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oweek print-month [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints a month of the O-Week calendar.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The timezone decides the current month, so the config comes first
	if err := app.Configure(*configFlag); err != nil {
		return err
	}

	state := calendar.Current(app.Clock)
	if isFlagSet(fs, "year") {
		state.Year = *year
	}
	if isFlagSet(fs, "month") {
		state.Month = *month
	}
	if !state.Valid() {
		return fmt.Errorf("%s: %d (expected 0-11)", app.ErrInvalidMonth, *month)
	}
	if !state.InYearRange() {
		return fmt.Errorf("%s: %d (expected %d-%d)", app.ErrInvalidYear, state.Year, calendar.MinYear, calendar.MaxYear)
	}
	if *delta < -calendar.MaxDelta || *delta > calendar.MaxDelta {
		return fmt.Errorf("%s: %d", app.ErrInvalidDelta, *delta)
	}
	state = calendar.Advance(state, *delta)
	if !state.InYearRange() {
		return fmt.Errorf("%s: %d (expected %d-%d)", app.ErrInvalidYear, state.Year, calendar.MinYear, calendar.MaxYear)
	}

	_, err := fmt.Fprint(w, RenderMonth(w, state, app.Clock, app.GetNamibianHolidays(state.Year), *noColor))
	return err
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// RenderMonth draws the month as a 7-column grid. Today is bracketed and
// holidays carry a '*' and are listed below the grid.
func RenderMonth(w io.Writer, s calendar.State, clock calendar.Clock, holidays map[string]string, noColor bool) string {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	width := cellWidth * len(calendar.WeekdayInitials)
	titleStyle := r.NewStyle().Bold(true).Width(width).Align(lipgloss.Center)
	headerStyle := r.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	todayStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#d16d7a"))
	holidayStyle := r.NewStyle().Foreground(lipgloss.Color("#5f9fb0"))

	var header strings.Builder
	for _, d := range calendar.WeekdayInitials {
		header.WriteString(fmt.Sprintf("%3s ", d))
	}

	todayIndex, hasToday := calendar.TodayCellIndex(s, clock)

	var rows []string
	var row strings.Builder
	var marked []string
	for i, c := range calendar.BuildGrid(s.Year, s.Month) {
		if i > 0 && i%7 == 0 {
			rows = append(rows, strings.TrimRight(row.String(), " "))
			row.Reset()
		}

		if c.Blank() {
			row.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}

		date := fmt.Sprintf("%04d-%02d-%02d", s.Year, s.Month+1, c.Day)
		name, isHoliday := holidays[date]

		switch {
		case hasToday && i == todayIndex:
			row.WriteString(todayStyle.Render(fmt.Sprintf("[%2d]", c.Day)))
		case isHoliday:
			row.WriteString(holidayStyle.Render(fmt.Sprintf(" %2d*", c.Day)))
		default:
			row.WriteString(fmt.Sprintf(" %2d ", c.Day))
		}
		if isHoliday {
			marked = append(marked, fmt.Sprintf("  * %2d %s", c.Day, name))
		}
	}
	rows = append(rows, strings.TrimRight(row.String(), " "))

	lines := []string{
		titleStyle.Render(calendar.Label(s)),
		headerStyle.Render(strings.TrimRight(header.String(), " ")),
	}
	lines = append(lines, rows...)

	if len(marked) > 0 {
		sort.Strings(marked)
		lines = append(lines, "")
		lines = append(lines, marked...)
	}

	return strings.Join(lines, "\n") + "\n"
}
