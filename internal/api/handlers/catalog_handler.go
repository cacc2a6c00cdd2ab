package handlers

import (
	"net/http"

	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
)

// CatalogHandler serves the fixed reference vocabularies
type CatalogHandler struct {
	conditions repositories.ConditionRepository
	locations  *services.LocationService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(conditions repositories.ConditionRepository, locations *services.LocationService) *CatalogHandler {
	return &CatalogHandler{
		conditions: conditions,
		locations:  locations,
	}
}

// ListSymptoms handles GET /api/catalog/symptoms
func (h *CatalogHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms := entities.AllSymptoms()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}

// ListConditions handles GET /api/catalog/conditions
func (h *CatalogHandler) ListConditions(w http.ResponseWriter, r *http.Request) {
	conditions, err := h.conditions.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"conditions": conditions,
		"count":      len(conditions),
	})
}

// ListAreas handles GET /api/catalog/areas
func (h *CatalogHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.locations.QuickSelectNames(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"areas": areas,
	})
}

// ListTimeSlots handles GET /api/catalog/time-slots
func (h *CatalogHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"time_slots":  entities.TimeSlots,
		"date_format": "YYYY-MM-DD",
	})
}
