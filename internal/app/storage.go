package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

// LoadEvents loads the events from EventsFile. A missing file yields an empty programme.
func LoadEvents() error {
	if _, err := os.Stat(EventsFile); os.IsNotExist(err) {
		log.Printf("No events file at %s, starting with an empty programme", EventsFile)
		EventMutex.Lock()
		Events = &EventData{Events: []Event{}}
		EventMutex.Unlock()
		return nil
	}
	return loadEventsFromFile(EventsFile)
}

// LoadEventsWithTmpCheck loads events from the tmp file if it exists, otherwise from the main file
func LoadEventsWithTmpCheck() error {
	tmpFile := EventsFile + TmpSuffix

	if _, err := os.Stat(tmpFile); err == nil {
		log.Printf("⚠️  Found temporary events file: %s (loading unsaved changes)", tmpFile)
		return loadEventsFromFile(tmpFile)
	}

	return LoadEvents()
}

func loadEventsFromFile(filename string) error {
	loaded, err := readEventsFile(filename)
	if err != nil {
		return err
	}

	EventMutex.Lock()
	Events = loaded
	EventMutex.Unlock()

	return nil
}

// readEventsFile parses filename without touching Events
func readEventsFile(filename string) (*EventData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var loaded EventData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if loaded.Events == nil {
		loaded.Events = []Event{}
	}
	SortEventsByDate(loaded.Events)
	return &loaded, nil
}

// saveTmpEvents writes the current events to the tmp file (caller must hold lock)
func saveTmpEvents() error {
	if Events.Metadata == nil {
		Events.Metadata = make(map[string]string)
	}
	Events.Metadata[MetadataUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(Events, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(EventsFile+TmpSuffix, data, FilePermissions)
}

// CommitEvents makes the tmp file the new events file, keeping a timestamped backup
func CommitEvents() error {
	EventMutex.Lock()
	defer EventMutex.Unlock()

	tmpFile := EventsFile + TmpSuffix

	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to commit")
	}

	backupDirPath := filepath.Join(filepath.Dir(EventsFile), BackupDir)
	if err := os.MkdirAll(backupDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(EventsFile); err == nil {
		backupFile := filepath.Join(backupDirPath,
			fmt.Sprintf("%d_%s%s", time.Now().Unix(), filepath.Base(EventsFile), BackupSuffix))
		if err := os.Rename(EventsFile, backupFile); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("✅ Backup created: %s", backupFile)
	}

	if err := os.Rename(tmpFile, EventsFile); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}

	log.Printf("✅ Changes committed to %s", EventsFile)
	return nil
}

// RevertEvents discards tmp changes and reloads from the main file. EventMutex
// is held across both steps.
func RevertEvents() error {
	EventMutex.Lock()
	defer EventMutex.Unlock()

	tmpFile := EventsFile + TmpSuffix

	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to revert")
	}

	if err := os.Remove(tmpFile); err != nil {
		return fmt.Errorf("failed to remove tmp file: %w", err)
	}

	loaded, err := readEventsFile(EventsFile)
	if os.IsNotExist(err) {
		loaded, err = &EventData{Events: []Event{}}, nil
	}
	if err != nil {
		return fmt.Errorf("failed to reload events: %w", err)
	}
	Events = loaded

	log.Printf("✅ Changes reverted, reloaded from %s", EventsFile)
	return nil
}

// HasTmpEvents checks if a temporary events file exists
func HasTmpEvents() bool {
	_, err := os.Stat(EventsFile + TmpSuffix)
	return err == nil
}

// EventsWithPrefix returns a copy of the events whose date starts with prefix
// ("2025-" for a year, "2025-02" for a month, "" for all)
func EventsWithPrefix(prefix string) []Event {
	EventMutex.RLock()
	defer EventMutex.RUnlock()

	events := []Event{}
	for _, e := range Events.Events {
		if strings.HasPrefix(e.Date, prefix) {
			events = append(events, e)
		}
	}
	return events
}

// EventsInMonth returns the events of the given month, sorted by date
func EventsInMonth(s calendar.State) []Event {
	return EventsWithPrefix(monthPrefix(s))
}

// monthPrefix formats s as YYYY-MM
func monthPrefix(s calendar.State) string {
	return fmt.Sprintf("%04d-%02d", s.Year, s.Month+1)
}
