package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrAlreadyFinalized     = errors.New("booking is already finalized")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrMissingPaymentRef    = errors.New("payment reference is required")
	ErrMissingBookingFields = errors.New("booking id, device id and user id are required")
)

type Booking struct {
	id           uuid.UUID
	paymentRef   string
	deviceID     uuid.UUID
	userID       uuid.UUID
	status       Status
	requestedAt  time.Time
	sessionStart *time.Time
	timeslot     Timeslot
	payment      PaymentSnapshot
}

// NewPendingBooking builds the record persisted right after a successful
// authorization. The id is the authorization attempt id so a retried write
// lands on the same row.
func NewPendingBooking(
	attemptID uuid.UUID,
	paymentRef string,
	deviceID, userID uuid.UUID,
	slot Timeslot,
	payment PaymentSnapshot,
	requestedAt time.Time,
) (*Booking, error) {
	if attemptID == uuid.Nil || deviceID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrMissingBookingFields
	}
	if strings.TrimSpace(paymentRef) == "" {
		return nil, ErrMissingPaymentRef
	}
	if slot.IsZero() {
		return nil, ErrInvalidTimeslot
	}

	return &Booking{
		id:          attemptID,
		paymentRef:  paymentRef,
		deviceID:    deviceID,
		userID:      userID,
		status:      StatusPending,
		requestedAt: requestedAt,
		timeslot:    slot,
		payment:     payment,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	paymentRef string,
	deviceID, userID uuid.UUID,
	status Status,
	requestedAt time.Time,
	sessionStart *time.Time,
	slot Timeslot,
	payment PaymentSnapshot,
) *Booking {
	return &Booking{
		id:           id,
		paymentRef:   paymentRef,
		deviceID:     deviceID,
		userID:       userID,
		status:       status,
		requestedAt:  requestedAt,
		sessionStart: sessionStart,
		timeslot:     slot,
		payment:      payment,
	}
}

// CheckTransition validates a status change without applying it. Storage applies
// the change with a conditional update.
func (b *Booking) CheckTransition(next Status) error {
	if b.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}

func (b *Booking) IsPending() bool { return b.status == StatusPending }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool { return b.userID == userID }

// SessionEnd is nil until the session has started.
func (b *Booking) SessionEnd() *time.Time {
	if b.sessionStart == nil {
		return nil
	}
	end := b.sessionStart.Add(b.timeslot.Duration())
	return &end
}

// HoldsDeviceAt reports whether the booking still owns its device reservation.
// A payed booking whose unlock was never confirmed holds it for one timeslot
// from the request.
func (b *Booking) HoldsDeviceAt(now time.Time) bool {
	switch b.status {
	case StatusPending:
		return true
	case StatusPayed:
		end := b.requestedAt.Add(b.timeslot.Duration())
		if se := b.SessionEnd(); se != nil {
			end = *se
		}
		return end.After(now)
	default:
		return false
	}
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) PaymentRef() string       { return b.paymentRef }
func (b *Booking) DeviceID() uuid.UUID      { return b.deviceID }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) RequestedAt() time.Time   { return b.requestedAt }
func (b *Booking) SessionStart() *time.Time { return b.sessionStart }
func (b *Booking) Timeslot() Timeslot       { return b.timeslot }
func (b *Booking) Payment() PaymentSnapshot { return b.payment }
