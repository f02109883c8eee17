package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/models"
	"guestpass-backend/monitoring"
	"guestpass-backend/seating"
	"guestpass-backend/store"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrUnknownDay    = errors.New("unknown event day")
)

type CheckinService struct {
	store store.Store
	days  []string
	now   func() time.Time
}

func NewCheckinService(s store.Store, days []string) *CheckinService {
	return &CheckinService{store: s, days: days, now: time.Now}
}

func (s *CheckinService) Days() []string {
	return append([]string(nil), s.days...)
}

// Lookup resolves a token to a guest with its seating zone filled in.
func (s *CheckinService) Lookup(ctx context.Context, token string) (models.Guest, error) {
	g, err := s.store.GuestByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Guest{}, ErrGuestNotFound
		}
		return models.Guest{}, fmt.Errorf("lookup guest: %w", err)
	}
	seating.Apply(&g)
	return g, nil
}

// CheckIn records a guest's admission for day. A repeat scan on the same day is
// reported with AlreadyCheckedIn and the guest profile so staff can confirm identity.
// The returned error is ErrGuestNotFound, ErrUnknownDay or a store failure.
func (s *CheckinService) CheckIn(ctx context.Context, token, day, scannerName string) (models.CheckInResponse, error) {
	start := time.Now()
	logger := log.WithFields(log.Fields{"token": token, "day": day, "scanner": scannerName})

	g, err := s.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			logger.Warn("Check-in for unknown token")
			monitoring.TrackCheckIn(dayLabel(s.days, day), monitoring.OutcomeNotFound, time.Since(start))
			return models.CheckInResponse{Success: false, Message: "Guest not found. Please verify the pass and try again."}, err
		}
		logger.WithError(err).Error("Check-in lookup failed")
		monitoring.TrackCheckIn(dayLabel(s.days, day), monitoring.OutcomeError, time.Since(start))
		return models.CheckInResponse{Success: false, Message: "Check-in failed"}, err
	}

	if !lo.Contains(s.days, day) {
		monitoring.TrackCheckIn("unknown", monitoring.OutcomeBadDay, time.Since(start))
		return models.CheckInResponse{Success: false, Message: fmt.Sprintf("Unknown event day: %s", day)}, ErrUnknownDay
	}

	if g.HasCheckIn(day) {
		return s.duplicate(logger, g, day, start), nil
	}

	event := models.CheckInEvent{Day: day, Timestamp: s.now(), ScannerName: scannerName}
	updated, err := s.store.AppendCheckIn(ctx, token, event)
	switch {
	case errors.Is(err, store.ErrAlreadyCheckedIn):
		// another scanner recorded this day between our read and write
		seating.Apply(&updated)
		return s.duplicate(logger, updated, day, start), nil
	case errors.Is(err, store.ErrNotFound):
		monitoring.TrackCheckIn(day, monitoring.OutcomeNotFound, time.Since(start))
		return models.CheckInResponse{Success: false, Message: "Guest not found. Please verify the pass and try again."}, ErrGuestNotFound
	case err != nil:
		logger.WithError(err).Error("Failed to record check-in")
		monitoring.TrackCheckIn(day, monitoring.OutcomeError, time.Since(start))
		return models.CheckInResponse{Success: false, Message: "Check-in failed"}, fmt.Errorf("record checkin: %w", err)
	}

	seating.Apply(&updated)
	logger.WithField("zone", updated.Zone).Info("Guest checked in")
	monitoring.TrackCheckIn(day, monitoring.OutcomeSuccess, time.Since(start))

	return models.CheckInResponse{
		Success:          true,
		Message:          "Check-in successful",
		Guest:            &updated,
		AlreadyCheckedIn: false,
	}, nil
}

func (s *CheckinService) duplicate(logger *log.Entry, g models.Guest, day string, start time.Time) models.CheckInResponse {
	logger.Info("Guest already checked in")
	monitoring.TrackCheckIn(day, monitoring.OutcomeDuplicate, time.Since(start))
	return models.CheckInResponse{
		Success:          false,
		Message:          fmt.Sprintf("Guest already checked in for %s", day),
		Guest:            &g,
		AlreadyCheckedIn: true,
	}
}

// dayLabel keeps arbitrary client input out of metric labels.
func dayLabel(days []string, day string) string {
	if lo.Contains(days, day) {
		return day
	}
	return "unknown"
}
