package api

import (
	"net/http"

	"xctask-route-service/internal/api/handlers"
	"xctask-route-service/internal/ports"
	"xctask-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.TaskRepository, cache ports.ResultCache, opts services.Options) http.Handler {
	mux := http.NewServeMux()

	taskHandler := &handlers.TaskHandler{Repo: repo}
	distanceHandler := &handlers.DistanceHandler{
		Repo:    repo,
		Cache:   cache,
		Options: opts,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /tasks", taskHandler.Upload)
	mux.HandleFunc("GET /tasks", taskHandler.List)
	mux.HandleFunc("GET /tasks/{code}", taskHandler.Get)
	mux.HandleFunc("GET /tasks/{code}/distances", distanceHandler.Distances)

	return loggingMiddleware(mux)
}
