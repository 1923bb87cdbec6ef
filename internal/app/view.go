package app

import (
	"fmt"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

// BuildMonthView assembles the grid for s with today, holidays and events filled in
func BuildMonthView(s calendar.State, clock calendar.Clock) MonthView {
	grid := calendar.BuildGrid(s.Year, s.Month)
	holidays := GetNamibianHolidays(s.Year)

	byDate := make(map[string][]Event)
	for _, e := range EventsInMonth(s) {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	view := MonthView{
		Year:        s.Year,
		Month:       s.Month,
		Label:       calendar.Label(s),
		Weekdays:    calendar.WeekdayInitials,
		Offset:      calendar.WeekdayOffset(s.Year, s.Month),
		DaysInMonth: calendar.DaysInMonth(s.Year, s.Month),
		Prev:        s.Prev(),
		Next:        s.Next(),
		Cells:       make([]DayCell, len(grid)),
	}

	if idx, ok := calendar.TodayCellIndex(s, clock); ok {
		view.IsCurrentMonth = true
		view.TodayIndex = &idx
	}

	prefix := monthPrefix(s)
	for i, c := range grid {
		if c.Blank() {
			continue
		}
		date := fmt.Sprintf("%s-%02d", prefix, c.Day)
		view.Cells[i] = DayCell{
			Day:     c.Day,
			Today:   view.TodayIndex != nil && *view.TodayIndex == i,
			Holiday: holidays[date],
			Events:  byDate[date],
		}
	}

	return view
}
