package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"xctask-route-service/internal/adapters/cache"
	"xctask-route-service/internal/adapters/repositories"
	"xctask-route-service/internal/api"
	"xctask-route-service/internal/config"
	"xctask-route-service/internal/platform/db"
	"xctask-route-service/internal/ports"
	"xctask-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/tasks.json")
	port := config.Get("PORT", "8080")
	backend := strings.ToLower(config.Get("CACHE_BACKEND", "sqlite"))

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo tasks on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	resultCache, cleanup, err := openResultCache(backend, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	repo := repositories.NewSqliteTaskRepository(sqliteDB)
	router := api.NewRouter(repo, resultCache, services.Options{})

	// Write timeout covers cold-cache optimization of large tasks.
	log.Printf("Server listening addr=:%s cache=%s", port, backend)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openResultCache selects the result cache adapter from CACHE_BACKEND:
// the local SQLite database (default), a shared Postgres instance, or
// Redis with a TTL.
func openResultCache(backend string, sqliteDB *sql.DB) (ports.ResultCache, func(), error) {
	switch backend {
	case "sqlite":
		return cache.NewSqliteResultCache(sqliteDB), nil, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("open result cache: DATABASE_URL is required for backend %q", backend)
		}
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open result cache: %w", err)
		}
		return cache.NewSQLResultCache(pg), func() { pg.Close() }, nil

	case "redis":
		addr := config.Get("REDIS_ADDR", "localhost:6379")
		ttl, err := time.ParseDuration(config.Get("REDIS_TTL", "24h"))
		if err != nil {
			return nil, nil, fmt.Errorf("open result cache: parse REDIS_TTL: %w", err)
		}
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisResultCache(client, ttl), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("open result cache: unknown CACHE_BACKEND %q", backend)
	}
}
