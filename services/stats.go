package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"guestpass-backend/models"
	"guestpass-backend/seating"
	"guestpass-backend/store"
)

// ComputeStats aggregates guest counts for the dashboard. Per-day counts follow
// the order of days.
func ComputeStats(guests []models.Guest, days []string) models.DashboardStats {
	byType := lo.CountValuesBy(guests, func(g models.Guest) models.GuestType { return g.Type })

	stats := models.DashboardStats{
		TotalGuests:    len(guests),
		VIPCount:       byType[models.GuestTypeVIP],
		SpouseCount:    byType[models.GuestTypeSpouse],
		PACount:        byType[models.GuestTypePA],
		AssociateCount: byType[models.GuestTypeAssociate],
		WithCarCount:   lo.CountBy(guests, func(g models.Guest) bool { return g.WithCar }),
		PerDayCheckIns: make([]models.DayCount, 0, len(days)),
	}

	for _, g := range guests {
		stats.TotalCheckIns += len(g.CheckIns)
	}

	for _, day := range days {
		stats.PerDayCheckIns = append(stats.PerDayCheckIns, models.DayCount{
			Day:   day,
			Count: lo.CountBy(guests, func(g models.Guest) bool { return g.HasCheckIn(day) }),
		})
	}

	return stats
}

type StatsService struct {
	store store.Store
	days  []string
}

func NewStatsService(s store.Store, days []string) *StatsService {
	return &StatsService{store: s, days: days}
}

func (s *StatsService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("list guests: %w", err)
	}
	return ComputeStats(guests, s.days), nil
}

// Guests lists every registered guest with zones filled in, oldest registration first.
func (s *StatsService) Guests(ctx context.Context) ([]models.Guest, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	for i := range guests {
		seating.Apply(&guests[i])
	}
	return guests, nil
}

// CheckedIn lists the guests admitted on day.
func (s *StatsService) CheckedIn(ctx context.Context, day string) ([]models.Guest, error) {
	if !lo.Contains(s.days, day) {
		return nil, ErrUnknownDay
	}
	guests, err := s.Guests(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(guests, func(g models.Guest, _ int) bool { return g.HasCheckIn(day) }), nil
}
