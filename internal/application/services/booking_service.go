package services

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/observability"
)

// BookingService records bookings in the ledger and announces every change
type BookingService struct {
	ledger   repositories.BookingRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewBookingService creates a new booking service. eventBus and metrics may be nil.
func NewBookingService(ledger repositories.BookingRepository, eventBus providers.EventBus, metrics *observability.Metrics) *BookingService {
	return &BookingService{
		ledger:   ledger,
		eventBus: eventBus,
		metrics:  metrics,
	}
}

// Create appends a pending booking
func (s *BookingService) Create(ctx context.Context, draft entities.BookingDraft) (*entities.BookingRecord, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.Create")
	defer span.End()

	record, err := s.ledger.Append(ctx, draft)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("reference", record.Reference).
		Str("provider", record.ProviderName).
		Str("condition", record.Condition).
		Msg("Booking created")
	s.metrics.RecordBooking(ctx, record.ProviderName)
	s.publish(ctx, entities.BookingEventCreated, *record)

	return record, nil
}

// ToggleStatus flips a booking between pending and confirmed
func (s *BookingService) ToggleStatus(ctx context.Context, id int64) (*entities.BookingRecord, error) {
	record, err := s.ledger.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("reference", record.Reference).
		Str("status", string(record.Status)).
		Msg("Booking status toggled")
	s.publish(ctx, entities.BookingEventStatusToggled, *record)

	return record, nil
}

// Get retrieves one booking
func (s *BookingService) Get(ctx context.Context, id int64) (*entities.BookingRecord, error) {
	return s.ledger.Get(ctx, id)
}

// List returns every booking, newest first
func (s *BookingService) List(ctx context.Context) ([]entities.BookingRecord, error) {
	return s.ledger.List(ctx)
}

// publish is best effort; a lost event never fails the ledger write
func (s *BookingService) publish(ctx context.Context, eventType entities.BookingEventType, record entities.BookingRecord) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewBookingEvent(eventType, record)
	logger := observability.LoggerFromContext(ctx)

	if err := s.eventBus.Publish(ctx, providers.EventChannelBookings, event); err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to publish booking event")
		return
	}
	if err := s.eventBus.Publish(ctx, providers.GetProviderChannel(record.ProviderName), event); err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to publish provider booking event")
	}
}
