package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medisense/backend/internal/application/workflow"
	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/observability"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// AnalysisPacing controls the progress animation of the analyzing step.
// A zero Tick runs the analysis synchronously inside Analyze.
type AnalysisPacing struct {
	Tick   time.Duration
	Settle time.Duration
}

// SessionView is a session plus what the presentation layer may do next
type SessionView struct {
	*entities.Session
	Step          int                               `json:"step"`
	AllowedEvents []entities.WorkflowEvent          `json:"allowed_events"`
	BlockedEvents map[entities.WorkflowEvent]string `json:"blocked_events,omitempty"`
}

// SessionService drives one session at a time through the workflow machine.
// Every mutation loads the session, applies the change and saves it under a
// per-session lock; a failed step saves nothing.
type SessionService struct {
	repo      repositories.SessionRepository
	machine   *workflow.Machine
	locations *LocationService
	inference *InferenceService
	ranking   *RankingService
	bookings  *BookingService
	admin     *AdminService
	metrics   *observability.Metrics
	pacing    AnalysisPacing

	locks    sync.Map // session id -> *sync.Mutex
	mu       sync.Mutex
	analyses map[string]analysisTask
	progress func() int
}

type analysisTask struct {
	id     string
	cancel context.CancelFunc
}

// NewSessionService creates a new session service
func NewSessionService(
	repo repositories.SessionRepository,
	machine *workflow.Machine,
	locations *LocationService,
	inference *InferenceService,
	ranking *RankingService,
	bookings *BookingService,
	admin *AdminService,
	metrics *observability.Metrics,
	pacing AnalysisPacing,
) *SessionService {
	return &SessionService{
		repo:      repo,
		machine:   machine,
		locations: locations,
		inference: inference,
		ranking:   ranking,
		bookings:  bookings,
		admin:     admin,
		metrics:   metrics,
		pacing:    pacing,
		analyses:  make(map[string]analysisTask),
		progress:  func() int { return 5 + rand.IntN(15) },
	}
}

// Create starts a new session at login
func (s *SessionService) Create(ctx context.Context) (*SessionView, error) {
	sess := entities.NewSession()
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	observability.LoggerFromContext(ctx).Debug().Str("session_id", sess.ID).Msg("Session created")
	return s.view(sess), nil
}

// Get returns the current view of a session
func (s *SessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Login validates the patient profile and moves to location
func (s *SessionService) Login(ctx context.Context, id string, profile entities.PatientProfile) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectEvent(ctx, sess, entities.EventUserLogin); err != nil {
			return err
		}
		profile.Name = strings.TrimSpace(profile.Name)
		profile.Mobile = strings.TrimSpace(profile.Mobile)
		if err := apperrors.NewFieldError(profile.Validate()); err != nil {
			return err
		}
		sess.Profile = profile
		return s.advance(ctx, sess, entities.EventUserLogin)
	})
}

// AdminLogin checks the admin credential and moves to the dashboard.
// A wrong credential leaves the session at login.
func (s *SessionService) AdminLogin(ctx context.Context, id, mobile string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectEvent(ctx, sess, entities.EventAdminLogin); err != nil {
			return err
		}
		if err := s.admin.Authenticate(ctx, mobile); err != nil {
			return err
		}
		sess.AdminAuthenticated = true
		return s.advance(ctx, sess, entities.EventAdminLogin)
	})
}

// SetLocation resolves and stores the user's location without advancing
func (s *SessionService) SetLocation(ctx context.Context, id string, in LocationInput) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectState(sess, "set location", entities.StateLocation); err != nil {
			return err
		}
		loc, err := s.locations.Resolve(ctx, in)
		if err != nil {
			return err
		}
		sess.Location = loc
		return nil
	})
}

// ConfirmLocation moves on to symptom selection
func (s *SessionService) ConfirmLocation(ctx context.Context, id string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		return s.advance(ctx, sess, entities.EventConfirmLocation)
	})
}

// ToggleSymptom flips one symptom in the selection. Any change discards
// the previous diagnosis.
func (s *SessionService) ToggleSymptom(ctx context.Context, id, symptom string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectState(sess, "change symptoms", entities.StateSymptoms); err != nil {
			return err
		}
		sym, err := entities.ParseSymptom(symptom)
		if err != nil {
			return err
		}
		sess.Selection.Toggle(sym)
		sess.InvalidateDiagnosis()
		return nil
	})
}

// ClearSymptoms empties the selection
func (s *SessionService) ClearSymptoms(ctx context.Context, id string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectState(sess, "change symptoms", entities.StateSymptoms); err != nil {
			return err
		}
		if len(sess.Selection) > 0 {
			sess.Selection.Clear()
			sess.InvalidateDiagnosis()
		}
		return nil
	})
}

// Analyze enters the analyzing step. With pacing disabled the diagnosis
// and provider ranking are computed before returning and the session is
// already at result; otherwise a background task reports progress and
// finishes the step.
func (s *SessionService) Analyze(ctx context.Context, id string) (*SessionView, error) {
	view, err := s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.advance(ctx, sess, entities.EventAnalyze); err != nil {
			return err
		}
		sess.Progress = 0
		sess.AnalysisID = uuid.NewString()
		if s.pacing.Tick > 0 {
			return nil
		}
		if err := s.completeAnalysis(ctx, sess); err != nil {
			return err
		}
		sess.Progress = 100
		return s.advance(ctx, sess, entities.EventDiagnosisReady)
	})
	if err != nil || s.pacing.Tick <= 0 {
		return view, err
	}

	s.startPacedAnalysis(ctx, id, view.AnalysisID)
	return view, nil
}

// ChooseProvider picks one of the ranked providers and opens the booking form
func (s *SessionService) ChooseProvider(ctx context.Context, id string, providerID int) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectEvent(ctx, sess, entities.EventChooseProvider); err != nil {
			return err
		}
		rp, ok := sess.FindRankedProvider(providerID)
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("provider %d is not in the current results", providerID))
		}
		chosen := rp.Provider
		sess.ChosenProvider = &chosen
		sess.Form = entities.BookingForm{}
		return s.advance(ctx, sess, entities.EventChooseProvider)
	})
}

// UpdateBookingForm stores the appointment date, time and note
func (s *SessionService) UpdateBookingForm(ctx context.Context, id string, form entities.BookingForm) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectState(sess, "edit the booking form", entities.StateBooking); err != nil {
			return err
		}
		sess.Form = entities.BookingForm{
			Date: strings.TrimSpace(form.Date),
			Time: strings.TrimSpace(form.Time),
			Note: strings.TrimSpace(form.Note),
		}
		return nil
	})
}

// ConfirmBooking validates the form, appends the booking to the ledger and
// moves to confirmed
func (s *SessionService) ConfirmBooking(ctx context.Context, id string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.expectEvent(ctx, sess, entities.EventConfirmBooking); err != nil {
			return err
		}
		// A missing or malformed date or time is a form problem, reported per field
		if err := apperrors.NewFieldError(sess.Form.Validate()); err != nil {
			return err
		}
		if _, err := s.machine.Advance(sess.State, entities.EventConfirmBooking, workflow.SnapshotOf(sess)); err != nil {
			s.metrics.RecordGuardViolation(ctx, string(sess.State), string(entities.EventConfirmBooking))
			return err
		}

		draft := entities.BookingDraft{
			PatientName:   sess.Profile.Name,
			PatientMobile: sess.Profile.Mobile,
			PatientAge:    sess.Profile.Age,
			PatientSex:    sess.Profile.Sex,
			ProviderName:  sess.ChosenProvider.Name,
			Date:          sess.Form.Date,
			Time:          sess.Form.Time,
			Note:          sess.Form.Note,
		}
		if sess.Diagnosis != nil {
			draft.Condition = sess.Diagnosis.Condition.Name
		}

		record, err := s.bookings.Create(ctx, draft)
		if err != nil {
			return err
		}
		sess.LastBooking = record
		return s.advance(ctx, sess, entities.EventConfirmBooking)
	})
}

// Back follows the backward edge of the current step
func (s *SessionService) Back(ctx context.Context, id string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		return s.advance(ctx, sess, entities.EventBack)
	})
}

// Reset cancels any running analysis and returns the session to login.
// The ledger is not touched.
func (s *SessionService) Reset(ctx context.Context, id string) (*SessionView, error) {
	return s.mutate(ctx, id, func(sess *entities.Session) error {
		if err := s.advance(ctx, sess, entities.EventReset); err != nil {
			return err
		}
		s.cancelAnalysis(id)
		sess.Reset()
		return nil
	})
}

// RequireAdmin fails unless id names an authenticated admin session
func (s *SessionService) RequireAdmin(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewAuthFailureError("admin session required")
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewAuthFailureError("admin session required")
		}
		return err
	}
	if sess.State != entities.StateAdmin || !sess.AdminAuthenticated {
		return apperrors.NewAuthFailureError("admin session required")
	}
	return nil
}

// SweepIdle deletes sessions untouched for longer than idle, then drops the
// per-session locks and analyses of every session that no longer exists.
// Sessions expired by the store's own TTL are pruned the same way.
func (s *SessionService) SweepIdle(ctx context.Context, idle time.Duration) (int, error) {
	removed, err := s.repo.DeleteIdle(ctx, time.Now().Add(-idle))
	if err != nil {
		return removed, err
	}
	return removed, s.pruneLocks(ctx)
}

// pruneLocks forgets locks of vanished sessions. A lock that is held
// belongs to a request in flight and is left for the next sweep.
func (s *SessionService) pruneLocks(ctx context.Context) error {
	var firstErr error
	s.locks.Range(func(key, value any) bool {
		id := key.(string)
		_, err := s.repo.Get(ctx, id)
		switch {
		case err == nil:
			return true
		case !apperrors.Is(err, apperrors.ErrorTypeNotFound):
			firstErr = fmt.Errorf("failed to check session %s: %w", id, err)
			return false
		}

		lock := value.(*sync.Mutex)
		if !lock.TryLock() {
			return true
		}
		s.locks.Delete(id)
		lock.Unlock()
		s.cancelAnalysis(id)
		return true
	})
	return firstErr
}

// Shutdown cancels every running analysis
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, task := range s.analyses {
		task.cancel()
		delete(s.analyses, id)
	}
}

func (s *SessionService) mutate(ctx context.Context, id string, fn func(sess *entities.Session) error) (*SessionView, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.Touch()
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.view(sess), nil
}

func (s *SessionService) lockFor(id string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *SessionService) advance(ctx context.Context, sess *entities.Session, event entities.WorkflowEvent) error {
	next, err := s.machine.Advance(sess.State, event, workflow.SnapshotOf(sess))
	if err != nil {
		s.metrics.RecordGuardViolation(ctx, string(sess.State), string(event))
		observability.LoggerFromContext(ctx).Debug().
			Str("session_id", sess.ID).
			Str("state", string(sess.State)).
			Str("event", string(event)).
			Err(err).
			Msg("Transition refused")
		return err
	}
	sess.State = next
	return nil
}

// expectEvent rejects operations whose event has no edge from the current state
func (s *SessionService) expectEvent(ctx context.Context, sess *entities.Session, event entities.WorkflowEvent) error {
	if !s.machine.Accepts(sess.State, event) {
		s.metrics.RecordGuardViolation(ctx, string(sess.State), string(event))
		return apperrors.NewGuardViolationError(fmt.Sprintf("%s is not allowed from %s", event, sess.State))
	}
	return nil
}

func (s *SessionService) expectState(sess *entities.Session, action string, want entities.WorkflowState) error {
	if sess.State != want {
		return apperrors.NewGuardViolationError(fmt.Sprintf("cannot %s while in %s", action, sess.State))
	}
	return nil
}

// completeAnalysis fills in the diagnosis and ranked providers. An existing
// diagnosis is kept because the selection has not changed since it was made.
func (s *SessionService) completeAnalysis(ctx context.Context, sess *entities.Session) error {
	if sess.Diagnosis == nil {
		dx, err := s.inference.Infer(ctx, sess.Selection)
		if err != nil {
			return err
		}
		sess.Diagnosis = dx
		s.metrics.RecordDiagnosis(ctx, dx.Condition.Name)
	}

	ranked, err := s.ranking.RankProviders(ctx, sess.Diagnosis.Condition.Specialty, sess.Location)
	if err != nil {
		return err
	}
	sess.Providers = ranked
	sess.ChosenProvider = nil
	return nil
}

func (s *SessionService) startPacedAnalysis(ctx context.Context, id, analysisID string) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	if prev, ok := s.analyses[id]; ok {
		prev.cancel()
	}
	s.analyses[id] = analysisTask{id: analysisID, cancel: cancel}
	s.mu.Unlock()

	go func() {
		defer s.finishAnalysis(id, analysisID, cancel)
		if err := s.runPacedAnalysis(runCtx, id, analysisID); err != nil {
			observability.LoggerFromContext(runCtx).Error().
				Err(err).
				Str("session_id", id).
				Msg("Analysis failed")
		}
	}()
}

func (s *SessionService) runPacedAnalysis(ctx context.Context, id, analysisID string) error {
	ticker := time.NewTicker(s.pacing.Tick)
	defer ticker.Stop()

	progress := 0
	for progress < 100 {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		progress = min(progress+s.progress(), 100)
		done := progress == 100
		stale, err := s.updateAnalysis(ctx, id, analysisID, func(sess *entities.Session) error {
			sess.Progress = progress
			if done {
				return s.completeAnalysis(ctx, sess)
			}
			return nil
		})
		if err != nil || stale {
			return err
		}
	}

	select {
	case <-ctx.Done():
		return nil
	case <-time.After(s.pacing.Settle):
	}

	_, err := s.updateAnalysis(ctx, id, analysisID, func(sess *entities.Session) error {
		return s.advance(ctx, sess, entities.EventDiagnosisReady)
	})
	return err
}

// updateAnalysis applies fn if the session is still running this analysis.
// It reports stale when the session moved on or was deleted.
func (s *SessionService) updateAnalysis(ctx context.Context, id, analysisID string, fn func(sess *entities.Session) error) (bool, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if ctx.Err() != nil {
		return true, nil
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return true, nil
		}
		return false, err
	}
	if sess.State != entities.StateAnalyzing || sess.AnalysisID != analysisID {
		return true, nil
	}
	if err := fn(sess); err != nil {
		return false, err
	}
	sess.Touch()
	return false, s.repo.Save(ctx, sess)
}

func (s *SessionService) finishAnalysis(id, analysisID string, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	// a newer analysis may already own the slot
	if task, ok := s.analyses[id]; ok && task.id == analysisID {
		delete(s.analyses, id)
	}
}

func (s *SessionService) cancelAnalysis(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.analyses[id]; ok {
		task.cancel()
		delete(s.analyses, id)
	}
}

func (s *SessionService) view(sess *entities.Session) *SessionView {
	snap := workflow.SnapshotOf(sess)
	v := &SessionView{
		Session:       sess,
		Step:          sess.State.UserStep(),
		AllowedEvents: s.machine.Allowed(sess.State, snap),
	}
	if blocked := s.machine.Blocked(sess.State, snap); len(blocked) > 0 {
		v.BlockedEvents = blocked
	}
	return v
}
