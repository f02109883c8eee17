package store

import (
	"context"
	"sort"
	"sync"

	"guestpass-backend/models"
)

type MemoryStore struct {
	mu     sync.Mutex
	guests map[string]models.Guest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{guests: make(map[string]models.Guest)}
}

func (s *MemoryStore) SaveGuests(_ context.Context, guests []models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range guests {
		if _, exists := s.guests[g.Token]; exists {
			return ErrDuplicateToken
		}
	}
	for _, g := range guests {
		s.guests[g.Token] = g.Clone()
	}
	return nil
}

func (s *MemoryStore) GuestByToken(_ context.Context, token string) (models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[token]
	if !ok {
		return models.Guest{}, ErrNotFound
	}
	return g.Clone(), nil
}

func (s *MemoryStore) AppendCheckIn(_ context.Context, token string, event models.CheckInEvent) (models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[token]
	if !ok {
		return models.Guest{}, ErrNotFound
	}
	if g.HasCheckIn(event.Day) {
		return g.Clone(), ErrAlreadyCheckedIn
	}
	g = g.Clone()
	g.CheckIns = append(g.CheckIns, event)
	s.guests[token] = g
	return g.Clone(), nil
}

// ListGuests returns guests ordered by registration date.
func (s *MemoryStore) ListGuests(_ context.Context) ([]models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		out = append(out, g.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RegistrationDate.Equal(out[j].RegistrationDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].RegistrationDate.Before(out[j].RegistrationDate)
	})
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
