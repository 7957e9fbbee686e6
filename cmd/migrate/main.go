package main

import (
	"context"
	"log"
	"os"
	"time"

	"pbihub/adapters/store"
	"pbihub/internal/config"
	"pbihub/internal/migration"

	"github.com/joho/godotenv"
)

// migrate creates or upgrades the record store schema without starting the hub.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	driver, url := appConfig.Database.Driver, appConfig.Database.URL
	switch len(os.Args) {
	case 1:
	case 3:
		driver, url = os.Args[1], os.Args[2]
	default:
		log.Fatal("Usage: migrate [<driver> <database_url>]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Open runs the schema migrations before handing the connection back
	db, err := store.Open(ctx, driver, url)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer db.Close()

	log.Printf("Schema at version %s on %s", migration.NewRunner().Version(), driver)
}
