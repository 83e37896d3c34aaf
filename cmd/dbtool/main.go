package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"xctask-route-service/internal/platform/db"
)

// dbtool initializes the shared Postgres result cache schema for
// multi-instance deployments.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing result cache schema...")
	if err := db.InitResultCacheSchema(pg); err != nil {
		log.Fatal(err)
	}
	log.Println("Done")
}
