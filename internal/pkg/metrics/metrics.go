package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReserveDuration tracks the latency of ticket reservations
	ReserveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raffle_reserve_duration_seconds",
			Help:    "Duration of ticket reservation requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"result"}, // success, conflict or failed
	)

	// TicketsReserved counts tickets successfully reserved
	TicketsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raffle_tickets_reserved_total",
			Help: "Total number of tickets successfully reserved",
		},
	)
)

// RecordReserveDuration records the outcome and duration of a reservation
func RecordReserveDuration(result string, duration float64) {
	ReserveDuration.WithLabelValues(result).Observe(duration)
}
