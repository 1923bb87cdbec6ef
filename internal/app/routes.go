package app

import (
	"io/fs"
	"net/http"
)

// Pages are the client-side routes served with the single-page shell
var Pages = map[string]bool{
	"/":        true,
	"/login":   true,
	"/user":    true,
	"/campus":  true,
	"/faq":     true,
	"/events":  true,
	"/council": true,
	"/gallery": true,
}

// HandlePage serves the shell for known pages and redirects anything else to /
func HandlePage(w http.ResponseWriter, r *http.Request) {
	if !Pages[r.URL.Path] {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	ServeIndex(w, r)
}

// Routes builds the request multiplexer
func Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", HandlePage)
	mux.HandleFunc("/api/config", GetConfig)
	mux.HandleFunc("/api/month", HandleMonth)
	mux.HandleFunc("/api/events", HandleEvents)
	mux.HandleFunc("/api/download", HandleDownload)
	mux.HandleFunc("/api/subscribe", HandleSubscribe)

	// Edit mode routes (protected with Basic Auth)
	if EditMode {
		mux.HandleFunc("/api/events/add", RequireAuth(AddEvent))
		mux.HandleFunc("/api/events/delete", RequireAuth(DeleteEvent))
		mux.HandleFunc("/api/events/move", RequireAuth(MoveEvent))
		mux.HandleFunc("/api/events/commit", RequireAuth(HandleEventsCommit))
		mux.HandleFunc("/api/events/revert", RequireAuth(HandleEventsRevert))
		mux.HandleFunc("/api/events/status", RequireAuth(HandleEventsStatus))
	}

	if static, ok := StaticFiles.(fs.FS); ok {
		mux.Handle("/static/", http.FileServer(http.FS(static)))
	}

	return mux
}
