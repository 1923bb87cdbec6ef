package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// escapeICS escapes a TEXT property value (RFC 5545 3.3.11)
func escapeICS(s string) string {
	return icsEscaper.Replace(s)
}

// eventUID is stable across exports so calendar apps can update entries
func eventUID(e Event) string {
	return fmt.Sprintf("%s@%s", e.ID, ICSDomain)
}

// writeVEvent writes one all-day VEVENT without closing it
func writeVEvent(w io.Writer, e Event, eventDate time.Time, stamp string) {
	fmt.Fprintln(w, "BEGIN:VEVENT")
	fmt.Fprintf(w, "UID:%s\n", eventUID(e))
	fmt.Fprintf(w, "DTSTAMP:%s\n", stamp)
	fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", eventDate.Format("20060102"))
	fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", eventDate.AddDate(0, 0, 1).Format("20060102"))
	fmt.Fprintf(w, "SUMMARY:%s\n", escapeICS(e.Title))
	if e.Description != "" {
		fmt.Fprintf(w, "DESCRIPTION:%s\n", escapeICS(e.Description))
	}
	if e.Location != "" {
		fmt.Fprintf(w, "LOCATION:%s\n", escapeICS(e.Location))
	}
	if name, ok := Categories[e.Category]; ok {
		fmt.Fprintf(w, "CATEGORIES:%s\n", escapeICS(name))
	}
}

// GenerateICS generates an iCalendar (ICS) file with optional reminders
func GenerateICS(w http.ResponseWriter, r *http.Request, name string, events []Event) {
	reminder1Day := r.URL.Query().Get("reminder1Day") == "true"
	reminderSameDay := r.URL.Query().Get("reminderSameDay") == "true"
	time1Day := r.URL.Query().Get("time1Day")
	timeSameDay := r.URL.Query().Get("timeSameDay")

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=oweek_%s.ics", name))

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:%s %s\n", escapeICS(Settings.Title), name)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", Settings.Timezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		eventDate, err := time.Parse(DateLayout, event.Date)
		if err != nil {
			continue
		}

		writeVEvent(w, event, eventDate, stamp)

		if reminder1Day && time1Day != "" {
			AddAlarm(w, eventDate, 1, time1Day, event.Title)
		}
		if reminderSameDay && timeSameDay != "" {
			AddAlarm(w, eventDate, 0, timeSameDay, event.Title)
		}

		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// AddAlarm adds a reminder at alarmTime (HH:MM) daysBefore the event
func AddAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime string, description string) {
	parts := strings.Split(alarmTime, ":")
	if len(parts) != 2 {
		return
	}

	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return
	}

	// The trigger is relative to the all-day event's start at 00:00
	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmDateTime := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, time.UTC)
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	totalMinutes := int(alarmDateTime.Sub(eventStart).Minutes())
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}

	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	fmt.Fprintln(w, "BEGIN:VALARM")
	fmt.Fprintln(w, "ACTION:DISPLAY")
	fmt.Fprintf(w, "DESCRIPTION:Reminder: %s\n", escapeICS(description))
	fmt.Fprintf(w, "TRIGGER:%sP%dDT%dH%dM\n", sign, days, hours, minutes)
	fmt.Fprintln(w, "END:VALARM")
}

// GenerateCSV generates a CSV file with the events
func GenerateCSV(w http.ResponseWriter, name string, events []Event) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=oweek_%s.csv", name))

	cw := csv.NewWriter(w)
	rows := [][]string{{"Date", "Category", "Title", "Location", "Description"}}
	for _, e := range events {
		rows = append(rows, []string{e.Date, e.Category, e.Title, e.Location, e.Description})
	}
	if err := cw.WriteAll(rows); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

// GenerateJSON generates a JSON file with the events
func GenerateJSON(w http.ResponseWriter, name string, events []Event) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=oweek_%s.json", name))

	data := map[string]interface{}{
		"period": name,
		"events": events,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrFailedToGenerateJSON, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS generates an ICS subscription feed: inline content,
// METHOD:PUBLISH with a refresh interval, and no VALARM blocks
func GenerateSubscriptionICS(w http.ResponseWriter, r *http.Request, events []Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH")
	fmt.Fprintf(w, "X-WR-CALNAME:%s\n", escapeICS(Settings.Title))
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", Settings.Timezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:PT1H")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		eventDate, err := time.Parse(DateLayout, event.Date)
		if err != nil {
			continue
		}
		writeVEvent(w, event, eventDate, stamp)
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}
