package handlers

import (
	"net/http"

	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
)

// ProviderHandler serves the provider directory and distance ranking
type ProviderHandler struct {
	directory repositories.ProviderRepository
	ranking   *services.RankingService
	locations *services.LocationService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(directory repositories.ProviderRepository, ranking *services.RankingService, locations *services.LocationService) *ProviderHandler {
	return &ProviderHandler{
		directory: directory,
		ranking:   ranking,
		locations: locations,
	}
}

// ListProviders handles GET /api/providers
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.directory.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

// RankProviders handles GET /api/providers/rank?specialty=&lat=&lng=&location=
// Without lat/lng or location the directory order is kept and distances are null.
func (h *ProviderHandler) RankProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	specialty, err := entities.ParseSpecialty(query.Get("specialty"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	in := services.LocationInput{Query: query.Get("location")}
	if in.Latitude, err = optionalFloat(r, "lat"); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if in.Longitude, err = optionalFloat(r, "lng"); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var origin *entities.Location
	if in.Latitude != nil || in.Longitude != nil || in.Query != "" {
		if origin, err = h.locations.Resolve(r.Context(), in); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	ranked, err := h.ranking.RankProviders(r.Context(), specialty, origin)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"specialty": specialty,
		"origin":    origin,
		"providers": ranked,
		"count":     len(ranked),
	})
}
