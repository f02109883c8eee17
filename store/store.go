// Package store persists guests and their check-ins in an external record store.
package store

import (
	"context"
	"errors"

	"guestpass-backend/models"
)

var (
	ErrNotFound         = errors.New("guest not found")
	ErrAlreadyCheckedIn = errors.New("guest already checked in for day")
	ErrDuplicateToken   = errors.New("token already registered")
)

// Store is the guest record store. AppendCheckIn must refuse a second event
// for the same token and day with ErrAlreadyCheckedIn.
type Store interface {
	SaveGuests(ctx context.Context, guests []models.Guest) error
	GuestByToken(ctx context.Context, token string) (models.Guest, error)
	AppendCheckIn(ctx context.Context, token string, event models.CheckInEvent) (models.Guest, error)
	ListGuests(ctx context.Context) ([]models.Guest, error)
	Ping(ctx context.Context) error
}
