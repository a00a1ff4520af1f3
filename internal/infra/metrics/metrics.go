package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grillbox"

type Metrics struct {
	BookingAttempts     *prometheus.CounterVec
	PaymentEvents       *prometheus.CounterVec
	SagaAlerts          *prometheus.CounterVec
	DeviceStateReports  *prometheus.CounterVec
	BookingSagaDuration prometheus.Histogram
}

// New registers the collectors on reg, so tests can use a private registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by result.",
		}, []string{"result"}),

		PaymentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_events_total",
			Help:      "Payment outcome events by outcome and result.",
		}, []string{"outcome", "result"}),

		SagaAlerts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_alerts_total",
			Help:      "Operator alerts raised by the booking workflow.",
		}, []string{"kind"}),

		DeviceStateReports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_state_reports_total",
			Help:      "Device state reports by result.",
		}, []string{"result"}),

		BookingSagaDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_saga_duration_seconds",
			Help:      "Time from booking request to pending booking or rejection.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
