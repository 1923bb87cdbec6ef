package app

import (
	"testing"
	"time"
)

func TestCalculateEaster(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
		{2000, "2000-04-23"},
	}

	for _, tt := range tests {
		if got := formatDateFromTime(calculateEaster(tt.year)); got != tt.want {
			t.Errorf("calculateEaster(%d) = %s, want %s", tt.year, got, tt.want)
		}
	}
}

func TestGetNamibianHolidays(t *testing.T) {
	holidays := GetNamibianHolidays(2025)

	tests := []struct {
		date string
		want string
	}{
		{"2025-01-01", "New Year's Day"},
		{"2025-03-21", "Independence Day"},
		{"2025-04-18", "Good Friday"},
		{"2025-04-21", "Easter Monday"},
		{"2025-05-29", "Ascension Day"},
		{"2025-05-25", "Africa Day"},
		{"2025-05-26", "Africa Day (observed)"}, // 25 May 2025 is a Sunday
		{"2025-05-28", "Genocide Remembrance Day"},
		{"2025-08-26", "Heroes' Day"},
		{"2025-12-26", "Family Day"},
	}

	for _, tt := range tests {
		if got := holidays[tt.date]; got != tt.want {
			t.Errorf("holidays[%s] = %q, want %q", tt.date, got, tt.want)
		}
	}

	if _, ok := holidays["2025-06-16"]; ok {
		t.Error("2025-06-16 is not a Namibian public holiday")
	}
}

func TestObservedHolidayDoesNotOverwrite(t *testing.T) {
	// 2022: Christmas Day is a Sunday, Family Day already occupies the Monday
	holidays := GetNamibianHolidays(2022)
	if d := time.Date(2022, time.December, 25, 0, 0, 0, 0, time.UTC); d.Weekday() != time.Sunday {
		t.Fatalf("test precondition: %v is not a Sunday", d)
	}
	if got := holidays["2022-12-26"]; got != "Family Day" {
		t.Errorf("holidays[2022-12-26] = %q, want Family Day", got)
	}
}

func TestGenocideRemembranceDaySince2025(t *testing.T) {
	if name, ok := GetNamibianHolidays(2024)["2024-05-28"]; ok {
		t.Errorf("2024-05-28 should not be a holiday, got %q", name)
	}
	if got := GetNamibianHolidays(2026)["2026-05-28"]; got != "Genocide Remembrance Day" {
		t.Errorf("holidays[2026-05-28] = %q", got)
	}

	// 28 May 2028 is a Sunday
	if got := GetNamibianHolidays(2028)["2028-05-29"]; got != "Genocide Remembrance Day (observed)" {
		t.Errorf("holidays[2028-05-29] = %q", got)
	}
}
