package app

import "github.com/klabast/wb-services/oweek/internal/calendar"

// Event is a single O-Week programme entry
type Event struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// EventData is the on-disk events file
type EventData struct {
	Events   []Event           `json:"events"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DayCell is a grid cell as sent to the page
type DayCell struct {
	Day     int     `json:"day"`
	Today   bool    `json:"today,omitempty"`
	Holiday string  `json:"holiday,omitempty"`
	Events  []Event `json:"events,omitempty"`
}

// MonthView is everything the page needs to draw one month
type MonthView struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	Label          string         `json:"label"`
	Weekdays       []string       `json:"weekdays"`
	Offset         int            `json:"offset"`
	DaysInMonth    int            `json:"daysInMonth"`
	IsCurrentMonth bool           `json:"isCurrentMonth"`
	TodayIndex     *int           `json:"todayIndex"`
	Prev           calendar.State `json:"prev"`
	Next           calendar.State `json:"next"`
	Cells          []DayCell      `json:"cells"`
}
