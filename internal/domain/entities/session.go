package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-user context object threaded through every workflow
// operation. Everything except ID and CreatedAt is discarded on reset.
type Session struct {
	ID                 string           `json:"id"`
	State              WorkflowState    `json:"state"`
	Profile            PatientProfile   `json:"profile"`
	AdminAuthenticated bool             `json:"admin_authenticated"`
	Location           *Location        `json:"location,omitempty"`
	Selection          SymptomSelection `json:"selection"`
	Diagnosis          *Diagnosis       `json:"diagnosis,omitempty"`
	Providers          []RankedProvider `json:"providers,omitempty"`
	ChosenProvider     *Provider        `json:"chosen_provider,omitempty"`
	Form               BookingForm      `json:"form"`
	Progress           int              `json:"progress"`
	AnalysisID         string           `json:"analysis_id,omitempty"`
	LastBooking        *BookingRecord   `json:"last_booking,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewSession creates a session positioned at login
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		State:     StateLogin,
		Selection: SymptomSelection{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset returns the session to login and drops all session-scoped data
func (s *Session) Reset() {
	*s = Session{
		ID:        s.ID,
		State:     StateLogin,
		Selection: SymptomSelection{},
		CreatedAt: s.CreatedAt,
		UpdatedAt: time.Now(),
	}
}

// InvalidateDiagnosis drops everything derived from the symptom selection
func (s *Session) InvalidateDiagnosis() {
	s.Diagnosis = nil
	s.Providers = nil
	s.ChosenProvider = nil
	s.Form = BookingForm{}
	s.Progress = 0
}

// FindRankedProvider returns the ranked provider with the given id
func (s *Session) FindRankedProvider(id int) (*RankedProvider, bool) {
	for i := range s.Providers {
		if s.Providers[i].ID == id {
			return &s.Providers[i], true
		}
	}
	return nil, false
}

// Touch updates the modification time
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}
