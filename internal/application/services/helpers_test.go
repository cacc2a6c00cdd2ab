package services_test

import (
	"github.com/medisense/backend/internal/adapters/events"
	"github.com/medisense/backend/internal/adapters/ledger"
	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/adapters/sessions"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/application/workflow"
	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/domain/repositories"
)

const testAdminMobile = "8050200772"

var zeroPacing = services.AnalysisPacing{}

type stack struct {
	ledger    repositories.BookingRepository
	bus       providers.EventBus
	inference *services.InferenceService
	ranking   *services.RankingService
	locations *services.LocationService
	bookings  *services.BookingService
	admin     *services.AdminService
	sessions  *services.SessionService
}

func newStack(pacing services.AnalysisPacing) *stack {
	conditions := reference.NewConditionCatalog()
	directory := reference.NewProviderDirectory()
	areas := reference.NewAreaTable()

	st := &stack{
		ledger: ledger.NewSeededLedger(),
		bus:    events.NewMemoryEventBus(),
	}
	st.inference = services.NewInferenceService(conditions)
	st.ranking = services.NewRankingService(directory)
	st.locations = services.NewLocationService(areas)
	st.bookings = services.NewBookingService(st.ledger, st.bus, nil)
	st.admin = services.NewAdminService(testAdminMobile, st.ledger, conditions, directory, nil)
	st.sessions = services.NewSessionService(
		sessions.NewMemoryStore(),
		workflow.NewMachine(),
		st.locations,
		st.inference,
		st.ranking,
		st.bookings,
		st.admin,
		nil,
		pacing,
	)
	return st
}

func validProfile() entities.PatientProfile {
	return entities.PatientProfile{Name: "Karthik Rajesh", Mobile: "7654321890", Age: 19, Sex: "Male"}
}

func selection(symptoms ...entities.Symptom) entities.SymptomSelection {
	return entities.SymptomSelection(symptoms)
}
