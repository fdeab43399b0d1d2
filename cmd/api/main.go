package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/db"
	"github.com/AfyaLink-Health/health-records-service/internal/httpapi"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/telemetry"
)

func main() {
	log.Println("health-records-service starting")

	ctx := context.Background()

	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: failed to initialize telemetry: %v", err)
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize metrics: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	var publisher messaging.PublisherInterface
	pub, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: failed to connect to RabbitMQ: %v", err)
		log.Println("Service will continue without event publishing")
	} else {
		publisher = pub
		defer pub.Close()
	}

	tokens := auth.NewTokenStore(database)

	perms := auth.DefaultPermissions()
	if path := os.Getenv("PERMISSIONS_FILE"); path != "" {
		loaded, err := auth.LoadPermissions(path)
		if err != nil {
			log.Fatalf("Failed to load permissions file %s: %v", path, err)
		}
		perms = loaded
	}

	router := httpapi.SetupRouter(database, tokens, perms, publisher, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      httpapi.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if provider != nil {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during telemetry shutdown: %v", err)
		}
	}

	log.Println("Shutdown complete")
}
