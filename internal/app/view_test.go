package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

func TestBuildMonthViewCurrentMonth(t *testing.T) {
	// 4 February 2025 is a Tuesday; February 2025 starts on a Saturday
	setupEvents(t, oweekStart, []Event{
		{ID: "reg", Date: "2025-02-03", Category: "registration", Title: "Registration"},
		{ID: "tour", Date: "2025-02-04", Category: "campus_tour", Title: "Campus tour"},
	})

	view := BuildMonthView(calendar.State{Year: 2025, Month: 1}, Clock)

	if view.Label != "February 2025" || view.Offset != 5 || view.DaysInMonth != 28 {
		t.Errorf("Unexpected header: %q offset=%d days=%d", view.Label, view.Offset, view.DaysInMonth)
	}
	if len(view.Cells) != 33 {
		t.Fatalf("Expected 33 cells, got %d", len(view.Cells))
	}
	if !view.IsCurrentMonth || view.TodayIndex == nil || *view.TodayIndex != 8 {
		t.Fatalf("Expected today at index 8, got %v", view.TodayIndex)
	}

	want := DayCell{
		Day:    4,
		Today:  true,
		Events: []Event{{ID: "tour", Date: "2025-02-04", Category: "campus_tour", Title: "Campus tour"}},
	}
	if diff := cmp.Diff(want, view.Cells[8]); diff != "" {
		t.Errorf("today cell mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < view.Offset; i++ {
		if diff := cmp.Diff(DayCell{}, view.Cells[i]); diff != "" {
			t.Errorf("cell %d should be blank:\n%s", i, diff)
		}
	}

	if view.Prev != (calendar.State{Year: 2025, Month: 0}) || view.Next != (calendar.State{Year: 2025, Month: 2}) {
		t.Errorf("Unexpected neighbours %+v / %+v", view.Prev, view.Next)
	}
}

func TestBuildMonthViewOtherMonth(t *testing.T) {
	setupEvents(t, oweekStart, nil)

	// March 2025: Independence Day on the 21st, March starts on a Saturday
	view := BuildMonthView(calendar.State{Year: 2025, Month: 2}, Clock)

	if view.IsCurrentMonth || view.TodayIndex != nil {
		t.Errorf("March should have no today marker, got %v", view.TodayIndex)
	}
	for _, c := range view.Cells {
		if c.Today {
			t.Errorf("Unexpected today flag on day %d", c.Day)
		}
	}
	if got := view.Cells[view.Offset+20]; got.Day != 21 || got.Holiday != "Independence Day" {
		t.Errorf("Expected Independence Day on the 21st, got %+v", got)
	}
}
