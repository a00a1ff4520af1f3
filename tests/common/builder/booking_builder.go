//go:build unit || e2e

package builder

import (
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/handler/dto/request"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
	"grillbox/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	PaymentRef       string
	DeviceID         uuid.UUID
	UserID           uuid.UUID
	Status           booking.Status
	RequestedAt      time.Time
	SessionStart     *time.Time
	Timeslot         booking.Timeslot
	Currency         string
	PaymentMethodRef string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:               uuid.New(),
		PaymentRef:       "pi_" + uuid.NewString()[:8],
		DeviceID:         uuid.New(),
		UserID:           uuid.New(),
		Status:           booking.StatusPending,
		RequestedAt:      time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Timeslot:         booking.FortyFive,
		Currency:         "eur",
		PaymentMethodRef: "pm_card4242",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID,
		b.PaymentRef,
		b.DeviceID,
		b.UserID,
		b.Status,
		b.RequestedAt,
		b.SessionStart,
		b.Timeslot,
		booking.ReconstructPaymentSnapshot(b.Timeslot.CostCents(), b.Currency, booking.MaskMethodRef(b.PaymentMethodRef)),
	)
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	return sqlc.Bookings{
		ID:               b.ID,
		PaymentRef:       b.PaymentRef,
		DeviceID:         b.DeviceID,
		UserID:           b.UserID,
		Status:           b.Status.String(),
		RequestedAt:      pgconv.TimeToPgtype(b.RequestedAt),
		SessionStart:     pgconv.TimePtrToPgtype(b.SessionStart),
		Timeslot:         b.Timeslot.Name(),
		TimeslotMinutes:  int32(b.Timeslot.Minutes()), // #nosec G115 -- 45 or 90
		AmountCents:      b.Timeslot.CostCents(),
		Currency:         b.Currency,
		PaymentMethodRef: booking.MaskMethodRef(b.PaymentMethodRef),
		CreatedAt:        pgconv.TimeToPgtype(b.RequestedAt),
		UpdatedAt:        pgconv.TimeToPgtype(b.RequestedAt),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:               b.ID,
		PaymentRef:       b.PaymentRef,
		DeviceID:         b.DeviceID,
		UserID:           b.UserID,
		Status:           b.Status.String(),
		RequestedAt:      b.RequestedAt,
		SessionStart:     b.SessionStart,
		Timeslot:         b.Timeslot.Name(),
		TimeslotMinutes:  int32(b.Timeslot.Minutes()), // #nosec G115 -- 45 or 90
		AmountCents:      b.Timeslot.CostCents(),
		Currency:         b.Currency,
		PaymentMethodRef: booking.MaskMethodRef(b.PaymentMethodRef),
		CreatedAt:        b.RequestedAt,
		UpdatedAt:        b.RequestedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() request.CreateBookingRequest {
	return request.CreateBookingRequest{
		DeviceID:         b.DeviceID,
		PaymentMethodRef: b.PaymentMethodRef,
		Timeslot:         b.Timeslot.Name(),
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithPaymentRef(ref string) *BookingBuilder {
	b.PaymentRef = ref
	return b
}

func (b *BookingBuilder) WithDeviceID(id uuid.UUID) *BookingBuilder {
	b.DeviceID = id
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithRequestedAt(t time.Time) *BookingBuilder {
	b.RequestedAt = t
	return b
}

func (b *BookingBuilder) WithSessionStart(t time.Time) *BookingBuilder {
	b.SessionStart = &t
	return b
}

func (b *BookingBuilder) WithTimeslot(slot booking.Timeslot) *BookingBuilder {
	b.Timeslot = slot
	return b
}
