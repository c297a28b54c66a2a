// Package main implements the entry point for the taskdeck API server,
// a multi-user todo backend with categories, public task sharing, file
// attachments, and daily due-date reminder mail.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
