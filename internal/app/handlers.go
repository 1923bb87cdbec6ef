package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

// ServeIndex serves the single-page shell
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(IndexHTML); err != nil {
		log.Printf("Error writing index HTML: %v", err)
	}
}

// GetConfig returns the application configuration
func GetConfig(w http.ResponseWriter, r *http.Request) {
	current := calendar.Current(Clock)

	writeJSON(w, map[string]interface{}{
		"title":      Settings.Title,
		"weekdays":   calendar.WeekdayInitials,
		"categories": Categories,
		"navLinks":   NavLinks,
		"current":    current,
		"editMode":   EditMode,
		"holidays":   GetNamibianHolidays(current.Year),
	})
}

// HandleMonth returns the grid of a month
// Query params: year, month (zero-based), delta (months to move, may be negative)
func HandleMonth(w http.ResponseWriter, r *http.Request) {
	state, errMsg := parseMonthQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	state, errMsg = applyDelta(state, r.URL.Query().Get("delta"))
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	writeJSON(w, BuildMonthView(state, Clock))
}

// HandleEvents returns the events of a month
// Query params: year, month (zero-based), categories (optional)
func HandleEvents(w http.ResponseWriter, r *http.Request) {
	state, errMsg := parseMonthQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	events := FilterByCategories(EventsInMonth(state), r.URL.Query().Get("categories"))
	writeJSON(w, map[string]interface{}{
		"year":   state.Year,
		"month":  state.Month,
		"events": events,
	})
}

// HandleEventsCommit commits temporary changes
func HandleEventsCommit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := CommitEvents(); err != nil {
		log.Printf("Error committing events: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

// HandleEventsRevert reverts temporary changes
func HandleEventsRevert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := RevertEvents(); err != nil {
		log.Printf("Error reverting events: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

// HandleEventsStatus returns whether there are unsaved changes
func HandleEventsStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireEditMode(w) {
		return
	}

	writeJSON(w, map[string]bool{"has_changes": HasTmpEvents()})
}

// AddEvent adds a new event to the programme (edit mode only)
func AddEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Date        string `json:"date"`
		Category    string `json:"category"`
		Title       string `json:"title"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}
	if _, ok := Categories[req.Category]; !ok {
		http.Error(w, ErrInvalidCategory, http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, ErrMissingTitle, http.StatusBadRequest)
		return
	}

	EventMutex.Lock()
	defer EventMutex.Unlock()

	for _, e := range Events.Events {
		if e.Date == req.Date && e.Title == req.Title {
			writeJSON(w, map[string]string{"status": "exists", "id": e.ID})
			return
		}
	}

	event := Event{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Category:    req.Category,
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
	}
	Events.Events = append(Events.Events, event)
	SortEventsByDate(Events.Events)

	// Auto-save to tmp file
	if err := saveTmpEvents(); err != nil {
		log.Printf("Error saving tmp events: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "ok", "id": event.ID})
}

// DeleteEvent deletes an event by id (edit mode only)
func DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	EventMutex.Lock()
	defer EventMutex.Unlock()

	kept := []Event{}
	for _, e := range Events.Events {
		if e.ID != req.ID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(Events.Events) {
		http.Error(w, ErrEventNotFound, http.StatusNotFound)
		return
	}
	Events.Events = kept

	if err := saveTmpEvents(); err != nil {
		log.Printf("Error saving tmp events: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

// MoveEvent moves an event to a different date (edit mode only)
func MoveEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		ID      string `json:"id"`
		NewDate string `json:"new_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(DateLayout, req.NewDate); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	EventMutex.Lock()
	defer EventMutex.Unlock()

	found := false
	for i := range Events.Events {
		if Events.Events[i].ID == req.ID {
			Events.Events[i].Date = req.NewDate
			found = true
			break
		}
	}
	if !found {
		http.Error(w, ErrEventNotFound, http.StatusNotFound)
		return
	}
	SortEventsByDate(Events.Events)

	if err := saveTmpEvents(); err != nil {
		log.Printf("Error saving tmp events: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: format, year, month (optional, zero-based), categories (optional)
func HandleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")

	year, ok := parseYear(q.Get("year"))
	if !ok {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	// The trailing dash keeps "20" from matching 2000-2099
	prefix := fmt.Sprintf("%04d-", year)
	name := strconv.Itoa(year)
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 0 || month > 11 {
			http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
			return
		}
		prefix = monthPrefix(calendar.State{Year: year, Month: month})
		name = prefix
	}

	events := FilterByCategories(EventsWithPrefix(prefix), q.Get("categories"))

	switch format {
	case "ics":
		GenerateICS(w, r, name, events)
	case "csv":
		GenerateCSV(w, name, events)
	case "json":
		GenerateJSON(w, name, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe returns an ICS feed with events from (current year - 1) onwards
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	minYear := Clock.Now().Year() - 1

	events := FilterByCategories(EventsWithPrefix(""), r.URL.Query().Get("categories"))

	var recent []Event
	for _, e := range events {
		if len(e.Date) >= 4 {
			eventYear, err := strconv.Atoi(e.Date[:4])
			if err == nil && eventYear >= minYear {
				recent = append(recent, e)
			}
		}
	}

	GenerateSubscriptionICS(w, r, recent)
}
