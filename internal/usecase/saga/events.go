package saga

import (
	"strings"
	"time"

	"grillbox/internal/domain/booking"

	"github.com/google/uuid"
)

type PaymentOutcome string

const (
	OutcomeSettled PaymentOutcome = "settled"
	OutcomeFailed  PaymentOutcome = "failed"
)

func (o PaymentOutcome) IsValid() bool {
	return o == OutcomeSettled || o == OutcomeFailed
}

// AttemptMetadata is what the gateway attached to the charge at authorization.
type AttemptMetadata struct {
	AttemptID        uuid.UUID
	DeviceID         uuid.UUID
	UserID           uuid.UUID
	Timeslot         booking.Timeslot
	AmountCents      int64
	Currency         string
	PaymentMethodRef string
}

func (m *AttemptMetadata) complete() bool {
	return m != nil &&
		m.AttemptID != uuid.Nil &&
		m.DeviceID != uuid.Nil &&
		m.UserID != uuid.Nil &&
		!m.Timeslot.IsZero()
}

// PaymentEvent is one payment-outcome notification. The same event may arrive
// more than once.
type PaymentEvent struct {
	EventID    string
	PaymentRef string
	Outcome    PaymentOutcome
	Attempt    *AttemptMetadata
	OccurredAt time.Time
}

func (e PaymentEvent) Validate() error {
	if strings.TrimSpace(e.PaymentRef) == "" {
		return ErrInvalidPaymentEvent
	}
	if !e.Outcome.IsValid() {
		return ErrInvalidPaymentEvent
	}
	return nil
}

type ReconcileResult string

const (
	ResultApplied   ReconcileResult = "applied"
	ResultDuplicate ReconcileResult = "duplicate"
	// ResultOrphaned: the payment was recorded but the device belongs to another booking.
	ResultOrphaned ReconcileResult = "orphaned"
	// ResultNoBooking: a failed payment for an attempt that never recorded a booking.
	ResultNoBooking ReconcileResult = "no_booking"
)
