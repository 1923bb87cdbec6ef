package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPageRoutes(t *testing.T) {
	setupEvents(t, oweekStart, nil)
	IndexHTML = []byte("<html>oweek</html>")
	EditMode = false
	mux := Routes()

	tests := []struct {
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"/", http.StatusOK, ""},
		{"/login", http.StatusOK, ""},
		{"/user", http.StatusOK, ""},
		{"/campus", http.StatusOK, ""},
		{"/faq", http.StatusOK, ""},
		{"/events", http.StatusOK, ""},
		{"/council", http.StatusOK, ""},
		{"/gallery", http.StatusOK, ""},
		{"/faculties", http.StatusFound, "/"},
		{"/does/not/exist", http.StatusFound, "/"},
		{"/api/month", http.StatusOK, ""},
		{"/api/events/add", http.StatusFound, "/"}, // editor routes absent outside edit mode
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Expected Location %q, got %q", tt.wantLocation, loc)
			}
		})
	}
}

func TestEditRoutesRegistered(t *testing.T) {
	setupEvents(t, oweekStart, nil)
	EditMode = true
	EditUser, authHash = "", nil
	mux := Routes()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/events/status", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from status in edit mode, got %d", w.Code)
	}
}
