package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/klabast/wb-services/oweek/internal/calendar"
)

// Constants
const (
	DefaultEventsFile = "events.json"
	DefaultConfigFile = "oweek.yaml"
	DefaultTimezone   = "Africa/Windhoek"
	DefaultTitle      = "NUST O'Week"
	DefaultPort       = 8080
	BackupDir         = "backup"
	BackupSuffix      = ".backup"
	TmpSuffix         = ".tmp.json"
	FilePermissions   = 0644
	DateLayout        = "2006-01-02"

	// Error messages
	ErrEditModeDisabled     = "Edit mode disabled"
	ErrInvalidDateFormat    = "Invalid date format"
	ErrInvalidYear          = "Invalid year"
	ErrInvalidMonth         = "Invalid month"
	ErrInvalidDelta         = "Invalid delta"
	ErrInvalidFormat        = "Invalid format"
	ErrInvalidCategory      = "Invalid category"
	ErrMissingTitle         = "Missing title"
	ErrEventNotFound        = "Event not found"
	ErrInternalServer       = "Internal server error"
	ErrFailedToSave         = "Failed to save events"
	ErrFailedToGenerateJSON = "Failed to generate JSON"

	// Metadata keys
	MetadataUpdatedAt = "updated_at"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// ICS constants
	ICSProductID = "-//NUST//OWeek//EN"
	ICSDomain    = "oweek.nust.na"
)

// Config holds the settings read from oweek.yaml
type Config struct {
	Title      string `yaml:"title"`
	Port       int    `yaml:"port"`
	EventsFile string `yaml:"events_file"`
	Timezone   string `yaml:"timezone"`
}

// Global variables
var (
	Settings   = DefaultConfig()
	EventsFile = DefaultEventsFile
	Events     = &EventData{Events: []Event{}}
	EventMutex sync.RWMutex
	EditMode   bool

	// Clock is the date source for "today"; tests replace it
	Clock calendar.Clock = calendar.SystemClock{}

	// Embedded files (set by main)
	StaticFiles interface{}
	IndexHTML   []byte
)

// Categories maps event category keys to display names
var Categories = map[string]string{
	"registration": "Registration",
	"orientation":  "Orientation",
	"campus_tour":  "Campus Tour",
	"faculty":      "Faculty Session",
	"social":       "Social",
	"sports":       "Sports",
	"council":      "SRC",
}

// NavLink is an entry of the side navigation
type NavLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// NavLinks lists the side navigation entries
var NavLinks = []NavLink{
	{Name: "Events", Link: "events"},
	{Name: "Campus", Link: "campus"},
	{Name: "Faculties", Link: "faculties"},
	{Name: "Gallery", Link: "gallery"},
	{Name: "SRC's", Link: "council"},
	{Name: "FAQs", Link: "faq"},
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Title:      DefaultTitle,
		Port:       DefaultPort,
		EventsFile: DefaultEventsFile,
		Timezone:   DefaultTimezone,
	}
}

// LoadConfig reads the YAML config at path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// ApplyConfig installs cfg as the active settings. Relative event file paths
// are resolved against baseDir.
func ApplyConfig(cfg Config, baseDir string) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	Settings = cfg
	Clock = calendar.SystemClock{Location: loc}

	EventsFile = cfg.EventsFile
	if !filepath.IsAbs(EventsFile) {
		EventsFile = filepath.Join(baseDir, EventsFile)
	}
	return nil
}

// ConfigPath returns the config file path: flag value, CONFIG_FILE, or
// oweek.yaml in the working directory
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_FILE"); env != "" {
		return env
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, DefaultConfigFile)
	}
	return DefaultConfigFile
}

// Configure loads the config file chosen by ConfigPath and applies it.
// Relative paths resolve against the config file's directory.
func Configure(flagValue string) error {
	path := ConfigPath(flagValue)
	cfg, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := ApplyConfig(cfg, filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}
	return nil
}
