package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestpass-backend/models"
)

func testGuest(token string, guestType models.GuestType, registered time.Time) models.Guest {
	return models.Guest{
		ID:               string(guestType) + "-" + token,
		Token:            token,
		Type:             guestType,
		Title:            "Dr.",
		FirstName:        "John",
		Surname:          "Doe",
		FullName:         "Dr. John Doe",
		Phone:            "+2348012345678",
		RegistrationDate: registered,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	require.NoError(t, s.SaveGuests(ctx, []models.Guest{
		testGuest("TOK-1", models.GuestTypeVIP, now),
		testGuest("TOK-2", models.GuestTypeSpouse, now),
	}))

	g, err := s.GuestByToken(ctx, "TOK-2")
	require.NoError(t, err)
	assert.Equal(t, models.GuestTypeSpouse, g.Type)

	_, err = s.GuestByToken(ctx, "TOK-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveGuests_DuplicateTokenIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	require.NoError(t, s.SaveGuests(ctx, []models.Guest{testGuest("TOK-1", models.GuestTypeVIP, now)}))

	err := s.SaveGuests(ctx, []models.Guest{
		testGuest("TOK-2", models.GuestTypeVIP, now),
		testGuest("TOK-1", models.GuestTypePA, now),
	})
	assert.ErrorIs(t, err, ErrDuplicateToken)

	_, err = s.GuestByToken(ctx, "TOK-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AppendCheckIn(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveGuests(ctx, []models.Guest{testGuest("TOK-1", models.GuestTypeVIP, time.Now())}))

	ev := models.CheckInEvent{Day: "Day 1", Timestamp: time.Now(), ScannerName: "Gate A"}
	g, err := s.AppendCheckIn(ctx, "TOK-1", ev)
	require.NoError(t, err)
	require.Len(t, g.CheckIns, 1)
	assert.Equal(t, "Gate A", g.CheckIns[0].ScannerName)

	g, err = s.AppendCheckIn(ctx, "TOK-1", models.CheckInEvent{Day: "Day 1", Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Len(t, g.CheckIns, 1)

	g, err = s.AppendCheckIn(ctx, "TOK-1", models.CheckInEvent{Day: "Day 2", Timestamp: time.Now()})
	require.NoError(t, err)
	assert.Len(t, g.CheckIns, 2)

	_, err = s.AppendCheckIn(ctx, "TOK-404", ev)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnedGuestsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveGuests(ctx, []models.Guest{testGuest("TOK-1", models.GuestTypeVIP, time.Now())}))

	g, err := s.AppendCheckIn(ctx, "TOK-1", models.CheckInEvent{Day: "Day 1", Timestamp: time.Now()})
	require.NoError(t, err)
	g.CheckIns[0].Day = "tampered"

	stored, err := s.GuestByToken(ctx, "TOK-1")
	require.NoError(t, err)
	assert.Equal(t, "Day 1", stored.CheckIns[0].Day)
}

func TestMemoryStore_ListGuestsOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveGuests(ctx, []models.Guest{
		testGuest("TOK-B", models.GuestTypeVIP, base.Add(time.Hour)),
		testGuest("TOK-A", models.GuestTypeVIP, base),
	}))

	guests, err := s.ListGuests(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, "TOK-A", guests[0].Token)
	assert.Equal(t, "TOK-B", guests[1].Token)
	assert.NoError(t, s.Ping(ctx))
}
