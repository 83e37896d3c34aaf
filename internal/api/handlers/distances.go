package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"xctask-route-service/internal/api/dto"
	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/ports"
	"xctask-route-service/internal/services"
)

// DistanceHandler computes task distances, memoizing results through the
// configured cache. The cache key carries an options fingerprint so tuning
// changes never serve stale routes.
type DistanceHandler struct {
	Repo    ports.TaskRepository
	Cache   ports.ResultCache
	Options services.Options
}

func (h *DistanceHandler) cacheKey(code string) string {
	return fmt.Sprintf("%s|%+v", code, h.Options)
}

// Distances returns the center and optimized distances plus the contact
// polyline for a stored task.
func (h *DistanceHandler) Distances(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	task, _, err := h.Repo.GetTask(r.Context(), code)
	if errors.Is(err, ports.ErrTaskNotFound) {
		writeError(w, r, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("get task failed: code=%s err=%v", code, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	key := h.cacheKey(code)
	if h.Cache != nil {
		cached, ok, err := h.Cache.Get(r.Context(), key)
		if err != nil {
			// Cache faults degrade to recomputation.
			log.Printf("result cache get failed: code=%s err=%v", code, err)
		}
		if ok {
			writeJSON(w, r, http.StatusOK, dto.NewDistancesResponse(code, cached, true))
			return
		}
	}

	route, err := services.Optimize(task, h.Options)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTask), errors.Is(err, domain.ErrUnsupportedEarthModel):
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrGeodesicNonConvergence):
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Printf("optimize failed: code=%s err=%v", code, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), key, route); err != nil {
			log.Printf("result cache put failed: code=%s err=%v", code, err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.NewDistancesResponse(code, route, false))
}
