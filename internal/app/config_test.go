package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    Config
		wantErr bool
	}{
		{
			name:    "Missing file uses defaults",
			content: nil,
			want:    DefaultConfig(),
		},
		{
			name:    "Partial override",
			content: strPtr("title: Test Week\nport: 9090\n"),
			want: Config{
				Title:      "Test Week",
				Port:       9090,
				EventsFile: DefaultEventsFile,
				Timezone:   DefaultTimezone,
			},
		},
		{
			name:    "Full override",
			content: strPtr("title: X\nport: 8000\nevents_file: /srv/x.json\ntimezone: UTC\n"),
			want: Config{
				Title:      "X",
				Port:       8000,
				EventsFile: "/srv/x.json",
				Timezone:   "UTC",
			},
		},
		{
			name:    "Invalid YAML",
			content: strPtr("port: [1, 2"),
			wantErr: true,
		},
		{
			name:    "Invalid port",
			content: strPtr("port: 70000\n"),
			wantErr: true,
		},
		{
			name:    "Invalid timezone",
			content: strPtr("timezone: Mars/Olympus\n"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "oweek.yaml")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0600); err != nil {
					t.Fatalf("Setup failed: %v", err)
				}
			}

			got, err := LoadConfig(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyConfig(t *testing.T) {
	oldSettings, oldFile, oldClock := Settings, EventsFile, Clock
	t.Cleanup(func() {
		Settings, EventsFile, Clock = oldSettings, oldFile, oldClock
	})

	cfg := DefaultConfig()
	cfg.EventsFile = "data/events.json"
	if err := ApplyConfig(cfg, "/srv/oweek"); err != nil {
		t.Fatalf("ApplyConfig() failed: %v", err)
	}
	if EventsFile != "/srv/oweek/data/events.json" {
		t.Errorf("EventsFile = %s", EventsFile)
	}
	if loc := Clock.Now().Location().String(); loc != DefaultTimezone {
		t.Errorf("Clock location = %s, want %s", loc, DefaultTimezone)
	}

	cfg.Timezone = "Nowhere/Invalid"
	if err := ApplyConfig(cfg, "/srv/oweek"); err == nil {
		t.Error("ApplyConfig() should reject an invalid timezone")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("CONFIG_FILE", "/etc/oweek.yaml")
	if got := ConfigPath("/tmp/flag.yaml"); got != "/tmp/flag.yaml" {
		t.Errorf("flag should win, got %s", got)
	}
	if got := ConfigPath(""); got != "/etc/oweek.yaml" {
		t.Errorf("CONFIG_FILE should be used, got %s", got)
	}
}

func strPtr(s string) *string { return &s }
