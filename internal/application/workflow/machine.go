// Package workflow holds the transition table that sequences a session
// from login through booking confirmation.
package workflow

import (
	"fmt"

	"github.com/medisense/backend/internal/domain/entities"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// Snapshot is the part of a session the guards look at
type Snapshot struct {
	ProfileValid       bool
	AdminAuthenticated bool
	LocationResolved   bool
	SelectionSize      int
	DiagnosisReady     bool
	ProviderChosen     bool
	FormComplete       bool
}

// SnapshotOf captures the guard inputs of a session
func SnapshotOf(s *entities.Session) Snapshot {
	return Snapshot{
		ProfileValid:       len(s.Profile.Validate()) == 0,
		AdminAuthenticated: s.AdminAuthenticated,
		LocationResolved:   s.Location != nil,
		SelectionSize:      len(s.Selection),
		DiagnosisReady:     s.Diagnosis != nil,
		ProviderChosen:     s.ChosenProvider != nil,
		FormComplete:       s.Form.Complete(),
	}
}

// guard returns a user-facing reason when the transition is not allowed
type guard func(Snapshot) string

type transition struct {
	from   entities.WorkflowState
	event  entities.WorkflowEvent
	to     entities.WorkflowState
	guard  guard
	system bool // raised by the service, never offered to the user
}

type edge struct {
	from  entities.WorkflowState
	event entities.WorkflowEvent
}

var transitionTable = []transition{
	{from: entities.StateLogin, event: entities.EventUserLogin, to: entities.StateLocation, guard: func(s Snapshot) string {
		if !s.ProfileValid {
			return "Complete your profile before continuing."
		}
		return ""
	}},
	{from: entities.StateLogin, event: entities.EventAdminLogin, to: entities.StateAdmin, guard: func(s Snapshot) string {
		if !s.AdminAuthenticated {
			return "Admin authentication required."
		}
		return ""
	}},
	{from: entities.StateLocation, event: entities.EventConfirmLocation, to: entities.StateSymptoms, guard: func(s Snapshot) string {
		if !s.LocationResolved {
			return "Set your location before continuing."
		}
		return ""
	}},
	{from: entities.StateSymptoms, event: entities.EventAnalyze, to: entities.StateAnalyzing, guard: func(s Snapshot) string {
		if s.SelectionSize == 0 {
			return "Select at least one symptom."
		}
		return ""
	}},
	{from: entities.StateAnalyzing, event: entities.EventDiagnosisReady, to: entities.StateResult, system: true, guard: func(s Snapshot) string {
		if !s.DiagnosisReady {
			return "Diagnosis has not been computed."
		}
		return ""
	}},
	{from: entities.StateResult, event: entities.EventChooseProvider, to: entities.StateBooking, guard: func(s Snapshot) string {
		if !s.ProviderChosen {
			return "Choose a provider first."
		}
		return ""
	}},
	{from: entities.StateBooking, event: entities.EventConfirmBooking, to: entities.StateConfirmed, guard: func(s Snapshot) string {
		if !s.FormComplete {
			return "Choose a date and time."
		}
		return ""
	}},
	{from: entities.StateSymptoms, event: entities.EventBack, to: entities.StateLocation},
	{from: entities.StateResult, event: entities.EventBack, to: entities.StateSymptoms},
	{from: entities.StateBooking, event: entities.EventBack, to: entities.StateResult},
}

var allStates = []entities.WorkflowState{
	entities.StateLogin, entities.StateLocation, entities.StateSymptoms, entities.StateAnalyzing,
	entities.StateResult, entities.StateBooking, entities.StateConfirmed, entities.StateAdmin,
}

// Machine validates and applies workflow transitions. It holds no
// per-session data and is safe for concurrent use.
type Machine struct {
	order []transition
	index map[edge]transition
}

// NewMachine builds the machine from the transition table. Reset is
// added from every state.
func NewMachine() *Machine {
	m := &Machine{index: make(map[edge]transition)}
	for _, t := range transitionTable {
		m.add(t)
	}
	for _, st := range allStates {
		m.add(transition{from: st, event: entities.EventReset, to: entities.StateLogin})
	}
	return m
}

func (m *Machine) add(t transition) {
	m.order = append(m.order, t)
	m.index[edge{from: t.from, event: t.event}] = t
}

// Advance returns the state reached by applying event. On any failure it
// returns the unchanged state together with a guard violation.
func (m *Machine) Advance(state entities.WorkflowState, event entities.WorkflowEvent, snap Snapshot) (entities.WorkflowState, error) {
	t, ok := m.index[edge{from: state, event: event}]
	if !ok {
		return state, apperrors.NewGuardViolationError(
			fmt.Sprintf("%s is not allowed from %s", event, state))
	}
	if t.guard != nil {
		if reason := t.guard(snap); reason != "" {
			return state, apperrors.NewGuardViolationError(reason)
		}
	}
	return t.to, nil
}

// Can reports whether event would currently succeed
func (m *Machine) Can(state entities.WorkflowState, event entities.WorkflowEvent, snap Snapshot) bool {
	_, err := m.Advance(state, event, snap)
	return err == nil
}

// Allowed lists the user events whose guards pass in state, in table order.
// Analyzing offers only reset.
func (m *Machine) Allowed(state entities.WorkflowState, snap Snapshot) []entities.WorkflowEvent {
	events := make([]entities.WorkflowEvent, 0, 3)
	for _, t := range m.order {
		if t.from != state || t.system {
			continue
		}
		if t.guard == nil || t.guard(snap) == "" {
			events = append(events, t.event)
		}
	}
	return events
}

// Blocked returns the reason each user event from state is currently
// refused, keyed by event. Events that would succeed are omitted.
func (m *Machine) Blocked(state entities.WorkflowState, snap Snapshot) map[entities.WorkflowEvent]string {
	blocked := make(map[entities.WorkflowEvent]string)
	for _, t := range m.order {
		if t.from != state || t.system || t.guard == nil {
			continue
		}
		if reason := t.guard(snap); reason != "" {
			blocked[t.event] = reason
		}
	}
	return blocked
}

// Accepts reports whether state has an edge for event, ignoring guards
func (m *Machine) Accepts(state entities.WorkflowState, event entities.WorkflowEvent) bool {
	_, ok := m.index[edge{from: state, event: event}]
	return ok
}
