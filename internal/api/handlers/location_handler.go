package handlers

import (
	"net/http"

	"github.com/medisense/backend/internal/application/services"
)

// LocationHandler exposes stateless location resolution
type LocationHandler struct {
	locations *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// Resolve handles POST /api/locations/resolve
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var in services.LocationInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	loc, err := h.locations.Resolve(r.Context(), in)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, loc)
}
