package app

import (
	"time"
)

// GetNamibianHolidays returns all public holidays in Namibia for the given year,
// keyed by YYYY-MM-DD
func GetNamibianHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays; since is the first year a holiday applies (0 = always)
	fixed := []struct {
		month time.Month
		day   int
		name  string
		since int
	}{
		{time.January, 1, "New Year's Day", 0},
		{time.March, 21, "Independence Day", 0},
		{time.May, 1, "Workers' Day", 0},
		{time.May, 4, "Cassinga Day", 0},
		{time.May, 25, "Africa Day", 0},
		{time.May, 28, "Genocide Remembrance Day", 2025},
		{time.August, 26, "Heroes' Day", 0},
		{time.December, 10, "Human Rights Day", 0},
		{time.December, 25, "Christmas Day", 0},
		{time.December, 26, "Family Day", 0},
	}
	n := 0
	for _, h := range fixed {
		if year >= h.since {
			fixed[n] = h
			n++
		}
	}
	fixed = fixed[:n]

	for _, h := range fixed {
		holidays[formatDate(year, int(h.month), h.day)] = h.name
	}

	// Easter-based holidays (movable)
	easter := calculateEaster(year)
	holidays[formatDateFromTime(easter.AddDate(0, 0, -2))] = "Good Friday"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 1))] = "Easter Monday"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 39))] = "Ascension Day"

	// A holiday on a Sunday is observed on the following Monday
	for _, h := range fixed {
		d := time.Date(year, h.month, h.day, 12, 0, 0, 0, time.UTC)
		if d.Weekday() != time.Sunday {
			continue
		}
		monday := formatDateFromTime(d.AddDate(0, 0, 1))
		if _, taken := holidays[monday]; !taken {
			holidays[monday] = h.name + " (observed)"
		}
	}

	return holidays
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Noon keeps the date stable when formatting
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// formatDate formats a date as YYYY-MM-DD (month is 1-based)
func formatDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format(DateLayout)
}

func formatDateFromTime(t time.Time) string {
	return t.Format(DateLayout)
}
