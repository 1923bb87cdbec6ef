package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// RequireEditMode validates that edit mode is enabled
func RequireEditMode(w http.ResponseWriter) bool {
	if !EditMode {
		http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
		return false
	}
	return true
}

// SortEventsByDate sorts events by date, keeping insertion order within a day
func SortEventsByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}

// FilterByCategories keeps the events whose category is in the comma-separated
// list. An empty list keeps everything.
func FilterByCategories(events []Event, list string) []Event {
	if list == "" {
		return events
	}

	wanted := make(map[string]bool)
	for _, c := range strings.Split(list, ",") {
		wanted[strings.TrimSpace(c)] = true
	}

	filtered := []Event{}
	for _, e := range events {
		if wanted[e.Category] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// parseMonthQuery reads year and month (zero-based) from the query, falling
// back to the current month for missing values
func parseMonthQuery(r *http.Request) (calendar.State, string) {
	state := calendar.Current(Clock)
	q := r.URL.Query()

	if v := q.Get("year"); v != "" {
		year, ok := parseYear(v)
		if !ok {
			return state, ErrInvalidYear
		}
		state.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 0 || month > 11 {
			return state, ErrInvalidMonth
		}
		state.Month = month
	}
	return state, ""
}

// parseYear accepts four-digit Gregorian years only
func parseYear(v string) (int, bool) {
	year, err := strconv.Atoi(v)
	if err != nil || !(calendar.State{Year: year}).InYearRange() {
		return 0, false
	}
	return year, true
}

// applyDelta moves s by the delta query value. The result must stay within
// the accepted years.
func applyDelta(s calendar.State, v string) (calendar.State, string) {
	if v == "" {
		return s, ""
	}
	delta, err := strconv.Atoi(v)
	if err != nil || delta < -calendar.MaxDelta || delta > calendar.MaxDelta {
		return s, ErrInvalidDelta
	}
	next := calendar.Advance(s, delta)
	if !next.InYearRange() {
		return s, ErrInvalidYear
	}
	return next, ""
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
