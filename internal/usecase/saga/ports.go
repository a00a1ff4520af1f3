package saga

import (
	"context"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/domain/device"
	"grillbox/internal/domain/user"

	"github.com/google/uuid"
)

// Collaborators report failures marked with the errs taxonomy: errs.ErrNotFound,
// errs.ErrConflict, errs.ErrDeclined and errs.ErrTimeout.

// DeviceReader loads a device by id.
type DeviceReader interface {
	Get(ctx context.Context, id uuid.UUID) (*device.Device, error)
}

// DeviceRegistry owns the device reservation flag.
type DeviceRegistry interface {
	DeviceReader
	// ConditionalSetBlocked writes newValue only if blocked currently equals
	// expected. Reserving records holder; releasing succeeds only for the holder.
	ConditionalSetBlocked(ctx context.Context, id uuid.UUID, expected, newValue bool, holder uuid.UUID) (*device.Device, error)
}

// UserDirectory resolves the booking user and their payment customer.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type AuthorizationRequest struct {
	AttemptID        uuid.UUID
	CustomerRef      string
	PaymentMethodRef string
	AmountCents      int64
	Currency         string
	// Carried as processor metadata so a late settlement can be matched to
	// the attempt even when no booking row was written.
	DeviceID uuid.UUID
	UserID   uuid.UUID
	Timeslot booking.Timeslot
}

type Authorization struct {
	PaymentRef       string
	AmountCents      int64
	Currency         string
	PaymentMethodRef string
}

// PaymentGateway authorizes card payments at the processor.
type PaymentGateway interface {
	// Authorize must be safe to repeat with the same AttemptID.
	Authorize(ctx context.Context, req AuthorizationRequest) (*Authorization, error)
}

// BookingStore persists bookings and their status transitions.
type BookingStore interface {
	// Save is keyed by booking id; saving the same id twice returns the stored row.
	Save(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	FindByPaymentRef(ctx context.Context, paymentRef string) (*booking.Booking, error)
	// ConditionalSetStatus writes next only if the status currently equals expected.
	ConditionalSetStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status) (*booking.Booking, error)
	SetSessionStart(ctx context.Context, id uuid.UUID, at time.Time) error
	// ReservationHolders returns the bookings whose id holds a device reservation.
	ReservationHolders(ctx context.Context) ([]*booking.Booking, error)
}

// DeviceCommandChannel delivers commands to grills.
type DeviceCommandChannel interface {
	// SendUnlock returns once the channel accepted the command, not once the
	// device executed it.
	SendUnlock(ctx context.Context, externalDeviceID string) error
}

// Alerter notifies operators about states that need manual action.
type Alerter interface {
	Raise(ctx context.Context, alert Alert)
}
