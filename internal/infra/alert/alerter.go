package alert

import (
	"context"
	"log/slog"
	"time"

	"grillbox/internal/infra/metrics"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
)

const persistTimeout = 5 * time.Second

type Store interface {
	Create(ctx context.Context, alert saga.Alert) (uuid.UUID, error)
}

// Alerter logs, counts and persists every alert. Persisting is best effort:
// the log line and the counter are written first.
type Alerter struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewAlerter(store Store, m *metrics.Metrics, logger *slog.Logger) *Alerter {
	return &Alerter{store: store, metrics: m, logger: logger}
}

func (a *Alerter) Raise(ctx context.Context, alert saga.Alert) {
	attrs := []any{
		slog.String("kind", string(alert.Kind)),
		slog.Bool("billing", alert.Kind.IsBilling()),
		slog.String("device_id", alert.DeviceID.String()),
		slog.String("message", alert.Message),
	}
	if alert.BookingID != uuid.Nil {
		attrs = append(attrs, slog.String("booking_id", alert.BookingID.String()))
	}
	if alert.PaymentRef != "" {
		attrs = append(attrs, slog.String("payment_ref", alert.PaymentRef))
	}
	if alert.Err != nil {
		attrs = append(attrs,
			slog.String("error", alert.Err.Error()),
			slog.Any("stack", errs.ExtractStackLines(alert.Err, 10)))
	}
	a.logger.Error("Saga alert", attrs...)
	a.metrics.SagaAlerts.WithLabelValues(string(alert.Kind)).Inc()

	// The caller's context may already be cancelled.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if _, err := a.store.Create(persistCtx, alert); err != nil {
		a.logger.Error("Failed to persist saga alert",
			slog.String("kind", string(alert.Kind)),
			slog.String("error", err.Error()))
	}
}
