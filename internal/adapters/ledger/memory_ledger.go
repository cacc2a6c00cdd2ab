package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// MemoryLedger is the process-lifetime booking ledger. A single mutex
// guards both the id counter and the records slice.
type MemoryLedger struct {
	mu      sync.Mutex
	records []entities.BookingRecord // newest first
	nextID  int64
	now     func() time.Time
}

// NewMemoryLedger creates an empty ledger whose first id is 1
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1, now: time.Now}
}

// NewSeededLedger creates a ledger preloaded with the demo bookings
func NewSeededLedger() repositories.BookingRepository {
	l := NewMemoryLedger()
	l.seed(SeedBookings())
	return l
}

// seed loads records given newest first and advances the counter past them
func (l *MemoryLedger) seed(records []entities.BookingRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, records...)
	for _, r := range records {
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
	}
}

// Append stores a new pending booking at the head of the ledger
func (l *MemoryLedger) Append(ctx context.Context, draft entities.BookingDraft) (*entities.BookingRecord, error) {
	if err := apperrors.NewFieldError(draft.Validate()); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++

	record := entities.BookingRecord{
		ID:            id,
		Reference:     entities.BookingReference(id),
		PatientName:   draft.PatientName,
		PatientMobile: draft.PatientMobile,
		PatientAge:    draft.PatientAge,
		PatientSex:    draft.PatientSex,
		Condition:     draft.Condition,
		ProviderName:  draft.ProviderName,
		Date:          draft.Date,
		Time:          draft.Time,
		Note:          draft.Note,
		Status:        entities.BookingStatusPending,
		CreatedAt:     l.now(),
	}

	l.records = append([]entities.BookingRecord{record}, l.records...)
	return &record, nil
}

// ToggleStatus flips a booking between pending and confirmed
func (l *MemoryLedger) ToggleStatus(ctx context.Context, id int64) (*entities.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Status = l.records[i].Status.Toggled()
			record := l.records[i]
			return &record, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", entities.BookingReference(id)))
}

// Get retrieves a booking by id
func (l *MemoryLedger) Get(ctx context.Context, id int64) (*entities.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records {
		if r.ID == id {
			record := r
			return &record, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", entities.BookingReference(id)))
}

// List returns a snapshot of every booking, newest first
func (l *MemoryLedger) List(ctx context.Context) ([]entities.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]entities.BookingRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}
