package repositories

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
)

// BookingRepository is the append-only booking ledger
type BookingRepository interface {
	// Append stores a new booking as pending and assigns the next id
	Append(ctx context.Context, draft entities.BookingDraft) (*entities.BookingRecord, error)

	// ToggleStatus flips a booking between pending and confirmed
	ToggleStatus(ctx context.Context, id int64) (*entities.BookingRecord, error)

	// Get retrieves a booking by id
	Get(ctx context.Context, id int64) (*entities.BookingRecord, error)

	// List returns every booking, newest first
	List(ctx context.Context) ([]entities.BookingRecord, error)
}
