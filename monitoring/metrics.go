package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check-in outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
	OutcomeBadDay    = "unknown_day"
	OutcomeError     = "error"
)

var (
	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration attempts by status",
		},
		[]string{"status"},
	)

	guestsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guests_registered_total",
			Help: "Guests registered by guest type",
		},
		[]string{"type"},
	)

	checkIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Check-in attempts by event day and outcome",
		},
		[]string{"day", "outcome"},
	)

	checkInDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkin_duration_seconds",
			Help:    "Time spent validating and recording a check-in",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func TrackRegistration(status string) {
	registrations.WithLabelValues(status).Inc()
}

func TrackGuestRegistered(guestType string) {
	guestsRegistered.WithLabelValues(guestType).Inc()
}

func TrackCheckIn(day, outcome string, took time.Duration) {
	checkIns.WithLabelValues(day, outcome).Inc()
	checkInDuration.Observe(took.Seconds())
}
