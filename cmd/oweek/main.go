package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/klabast/wb-services/oweek/internal/app"
	"github.com/klabast/wb-services/oweek/internal/commands"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

func main() {
	// Subcommands
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "print-month" {
		commands.PrintMonth(os.Args[2:])
		return
	}

	var configFlag string
	flag.StringVar(&configFlag, "config", "", "Path to oweek.yaml (default: $CONFIG_FILE or ./oweek.yaml)")
	port := flag.Int("port", 0, "Port to listen on (overrides the config file)")
	flag.BoolVar(&app.EditMode, "edit", false, "Enable the event editor")
	flag.Parse()

	if err := app.Configure(configFlag); err != nil {
		log.Fatal(err)
	}
	if *port != 0 {
		app.Settings.Port = *port
	}

	app.StaticFiles = staticFiles
	app.IndexHTML = indexHTML

	if app.EditMode {
		if err := app.LoadAuthCredentials(); err != nil {
			log.Fatalf("Failed to load auth credentials: %v", err)
		}
	}

	var loadErr error
	if app.EditMode {
		loadErr = app.LoadEventsWithTmpCheck()
	} else {
		loadErr = app.LoadEvents()
	}
	if loadErr != nil {
		log.Fatalf("Failed to load events: %v", loadErr)
	}

	mode := app.ModeServe
	if app.EditMode {
		mode = app.ModeEdit
	}

	log.Printf("Starting %s in %s mode on http://localhost:%d", app.Settings.Title, mode, app.Settings.Port)
	log.Printf("Events file: %s (timezone %s)", app.EventsFile, app.Settings.Timezone)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", app.Settings.Port), app.Routes()); err != nil {
		log.Fatal(err)
	}
}
