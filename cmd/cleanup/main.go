package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/db"
)

func main() {
	log.Println("Token Cleanup Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	tokens := auth.NewTokenStore(database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := tokens.CountStale(ctx)
	if err != nil {
		log.Fatalf("Failed to count stale tokens: %v", err)
	}

	log.Printf("Found %d tokens belonging to deactivated users", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	purged, err := tokens.PurgeStale(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("Cleanup completed successfully: %d tokens removed", purged)
	log.Println("Token Cleanup Job - Finished")
}
