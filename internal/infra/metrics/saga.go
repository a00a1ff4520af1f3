package metrics

import (
	"context"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"
)

type InstrumentedBookingSaga struct {
	inner   saga.BookingSaga
	metrics *Metrics
}

func NewInstrumentedBookingSaga(inner saga.BookingSaga, m *Metrics) *InstrumentedBookingSaga {
	return &InstrumentedBookingSaga{inner: inner, metrics: m}
}

func (s *InstrumentedBookingSaga) CreateBooking(ctx context.Context, params saga.CreateBookingParams) (*booking.Booking, error) {
	start := time.Now()
	b, err := s.inner.CreateBooking(ctx, params)
	s.metrics.BookingSagaDuration.Observe(time.Since(start).Seconds())
	s.metrics.BookingAttempts.WithLabelValues(BookingResult(err)).Inc()
	return b, err
}

func BookingResult(err error) string {
	switch {
	case err == nil:
		return "created"
	case errs.Is(err, saga.ErrDeviceAlreadyBlocked):
		return "device_busy"
	case errs.Is(err, saga.ErrDeviceNotFound):
		return "device_not_found"
	case errs.Is(err, saga.ErrPaymentDeclined):
		return "declined"
	case errs.Is(err, saga.ErrPaymentOutcomeUnknown):
		return "outcome_unknown"
	case errs.Is(err, errs.ErrDomainValidation):
		return "invalid"
	default:
		return "error"
	}
}

type InstrumentedPaymentEventHandler struct {
	inner   saga.PaymentEventHandler
	metrics *Metrics
}

func NewInstrumentedPaymentEventHandler(inner saga.PaymentEventHandler, m *Metrics) *InstrumentedPaymentEventHandler {
	return &InstrumentedPaymentEventHandler{inner: inner, metrics: m}
}

func (h *InstrumentedPaymentEventHandler) HandlePaymentEvent(ctx context.Context, evt saga.PaymentEvent) (saga.ReconcileResult, error) {
	result, err := h.inner.HandlePaymentEvent(ctx, evt)
	label := string(result)
	switch {
	case errs.Is(err, saga.ErrDeviceUnlockFailed):
		label = "unlock_failed"
	case err != nil:
		label = "error"
	}
	h.metrics.PaymentEvents.WithLabelValues(string(evt.Outcome), label).Inc()
	return result, err
}
