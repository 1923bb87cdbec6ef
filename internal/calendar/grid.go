package calendar

import (
	"fmt"
	"time"
)

// Bounds for years and month steps taken from user input. Advance itself
// accepts any value.
const (
	MinYear = 1
	MaxYear = 9999
	// MaxDelta spans January of MinYear to December of MaxYear
	MaxDelta = (MaxYear-MinYear+1)*12 - 1
)

// WeekdayInitials are the column headers of a Monday-first grid
var WeekdayInitials = []string{"M", "T", "W", "T", "F", "S", "S"}

// State is the month currently shown. Month is zero-based (0 = January).
type State struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Cell is one entry of the grid. Day is 0 for the blank cells before the 1st.
type Cell struct {
	Day int `json:"day"`
}

// Blank reports whether the cell is a placeholder before day 1
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Clock supplies the current date
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (UTC if nil)
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Current returns the month containing the clock's current date
func Current(clock Clock) State {
	now := clock.Now()
	return State{Year: now.Year(), Month: int(now.Month()) - 1}
}

func mustMonth(month int) {
	if month < 0 || month > 11 {
		panic(fmt.Sprintf("calendar: month %d out of range [0,11]", month))
	}
}

// WeekdayOffset returns the weekday of the 1st of the month, Monday=0 .. Sunday=6
func WeekdayOffset(year, month int) int {
	mustMonth(month)
	first := time.Date(year, time.Month(month+1), 1, 12, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// DaysInMonth returns the Gregorian length of the month
func DaysInMonth(year, month int) int {
	mustMonth(month)
	// Day 0 of the following month is the last day of this one
	return time.Date(year, time.Month(month+2), 0, 12, 0, 0, 0, time.UTC).Day()
}

// BuildGrid returns the blank leading cells followed by one cell per day
func BuildGrid(year, month int) []Cell {
	offset := WeekdayOffset(year, month)
	days := DaysInMonth(year, month)

	cells := make([]Cell, offset, offset+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d})
	}
	return cells
}

// Advance moves s by delta months, rolling the year over as needed
func Advance(s State, delta int) State {
	total := s.Year*12 + s.Month + delta
	year, month := total/12, total%12
	if month < 0 {
		month += 12
		year--
	}
	return State{Year: year, Month: month}
}

// IsCurrentMonth reports whether s is the clock's current month
func IsCurrentMonth(s State, clock Clock) bool {
	return Current(clock) == s
}

// TodayCellIndex returns the grid index of today's cell. ok is false when s
// is not the current month.
func TodayCellIndex(s State, clock Clock) (index int, ok bool) {
	now := clock.Now()
	if (State{Year: now.Year(), Month: int(now.Month()) - 1}) != s {
		return 0, false
	}
	return WeekdayOffset(s.Year, s.Month) + now.Day() - 1, true
}

// Label formats s as "January 2025"
func Label(s State) string {
	return fmt.Sprintf("%s %d", time.Month(s.Month+1), s.Year)
}

// Prev and Next are the neighbouring months
func (s State) Prev() State { return Advance(s, -1) }
func (s State) Next() State { return Advance(s, 1) }

// Valid reports whether Month is within [0,11]
func (s State) Valid() bool {
	return s.Month >= 0 && s.Month <= 11
}

// InYearRange reports whether Year is within [MinYear, MaxYear]
func (s State) InYearRange() bool {
	return s.Year >= MinYear && s.Year <= MaxYear
}
