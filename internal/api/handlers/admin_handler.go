package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/medisense/backend/internal/adapters/export"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
	apperrors "github.com/medisense/backend/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the admin dashboard. Routes are guarded by
// middleware.RequireAdmin.
type AdminHandler struct {
	bookings *services.BookingService
	admin    *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(bookings *services.BookingService, admin *services.AdminService) *AdminHandler {
	return &AdminHandler{
		bookings: bookings,
		admin:    admin,
	}
}

// ListBookings handles GET /api/admin/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	records, err := h.bookings.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": records,
		"count":    len(records),
	})
}

// GetBooking handles GET /api/admin/bookings/{id}; id is numeric or BKnnn
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := entities.ParseBookingReference(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, apperrors.NewInvalidInputError(err.Error()))
		return
	}
	record, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

// ToggleBooking handles POST /api/admin/bookings/{id}/toggle
func (h *AdminHandler) ToggleBooking(w http.ResponseWriter, r *http.Request) {
	id, err := entities.ParseBookingReference(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, apperrors.NewInvalidInputError(err.Error()))
		return
	}
	record, err := h.bookings.ToggleStatus(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// ListProviders handles GET /api/admin/providers
func (h *AdminHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.admin.Providers(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

// ExportBookings handles GET /api/admin/bookings/export
func (h *AdminHandler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	records, err := h.bookings.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	data, err := export.GenerateBookingsWorkbook(records)
	if err != nil {
		respondWithAppError(w, r, apperrors.NewInternalError("failed to build workbook", err))
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
