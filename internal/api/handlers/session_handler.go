package handlers

import (
	"net/http"

	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
)

// SessionHandler drives one session through the booking workflow
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// AdminLoginRequest is the body of POST /api/sessions/{id}/admin-login
type AdminLoginRequest struct {
	Mobile string `json:"mobile"`
}

// ToggleSymptomRequest is the body of POST /api/sessions/{id}/symptoms/toggle
type ToggleSymptomRequest struct {
	Symptom string `json:"symptom"`
}

// ChooseProviderRequest is the body of POST /api/sessions/{id}/provider
type ChooseProviderRequest struct {
	ProviderID int `json:"provider_id"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Create(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.Get(r.Context(), r.PathValue("id")))
}

// Login handles POST /api/sessions/{id}/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var profile entities.PatientProfile
	if err := decodeJSON(r, &profile); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.Login(r.Context(), r.PathValue("id"), profile))
}

// AdminLogin handles POST /api/sessions/{id}/admin-login
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.AdminLogin(r.Context(), r.PathValue("id"), req.Mobile))
}

// SetLocation handles PUT /api/sessions/{id}/location
func (h *SessionHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var in services.LocationInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.SetLocation(r.Context(), r.PathValue("id"), in))
}

// ConfirmLocation handles POST /api/sessions/{id}/location/confirm
func (h *SessionHandler) ConfirmLocation(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.ConfirmLocation(r.Context(), r.PathValue("id")))
}

// ToggleSymptom handles POST /api/sessions/{id}/symptoms/toggle
func (h *SessionHandler) ToggleSymptom(w http.ResponseWriter, r *http.Request) {
	var req ToggleSymptomRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.ToggleSymptom(r.Context(), r.PathValue("id"), req.Symptom))
}

// ClearSymptoms handles DELETE /api/sessions/{id}/symptoms
func (h *SessionHandler) ClearSymptoms(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.ClearSymptoms(r.Context(), r.PathValue("id")))
}

// Analyze handles POST /api/sessions/{id}/analyze
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.Analyze(r.Context(), r.PathValue("id")))
}

// ChooseProvider handles POST /api/sessions/{id}/provider
func (h *SessionHandler) ChooseProvider(w http.ResponseWriter, r *http.Request) {
	var req ChooseProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.ChooseProvider(r.Context(), r.PathValue("id"), req.ProviderID))
}

// UpdateBookingForm handles PUT /api/sessions/{id}/booking-form
func (h *SessionHandler) UpdateBookingForm(w http.ResponseWriter, r *http.Request) {
	var form entities.BookingForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.reply(w, r)(h.sessions.UpdateBookingForm(r.Context(), r.PathValue("id"), form))
}

// ConfirmBooking handles POST /api/sessions/{id}/confirm
func (h *SessionHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.ConfirmBooking(r.Context(), r.PathValue("id")))
}

// Back handles POST /api/sessions/{id}/back
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.Back(r.Context(), r.PathValue("id")))
}

// Reset handles POST /api/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r)(h.sessions.Reset(r.Context(), r.PathValue("id")))
}

func (h *SessionHandler) reply(w http.ResponseWriter, r *http.Request) func(*services.SessionView, error) {
	return func(view *services.SessionView, err error) {
		if err != nil {
			respondWithAppError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, view)
	}
}
