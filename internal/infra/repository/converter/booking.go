package converter

import (
	"fmt"
	"math"

	"grillbox/internal/domain/booking"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
)

func BookingToInfra(b *booking.Booking) sqlc.InsertBookingParams {
	slot := b.Timeslot()
	if slot.Minutes() > math.MaxInt32 {
		panic(fmt.Sprintf("timeslot minutes out of int32 range: %d", slot.Minutes()))
	}
	payment := b.Payment()

	return sqlc.InsertBookingParams{
		ID:               b.ID(),
		PaymentRef:       b.PaymentRef(),
		DeviceID:         b.DeviceID(),
		UserID:           b.UserID(),
		Status:           b.Status().String(),
		RequestedAt:      pgconv.TimeToPgtype(b.RequestedAt()),
		SessionStart:     pgconv.TimePtrToPgtype(b.SessionStart()),
		Timeslot:         slot.Name(),
		TimeslotMinutes:  int32(slot.Minutes()), // #nosec G115 -- bounded above
		AmountCents:      payment.AmountCents(),
		Currency:         payment.Currency(),
		PaymentMethodRef: payment.MethodRef(),
	}
}

func BookingToDomain(row sqlc.Bookings) (*booking.Booking, error) {
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	slot, err := booking.ParseTimeslot(row.Timeslot)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}

	return booking.ReconstructBooking(
		row.ID,
		row.PaymentRef,
		row.DeviceID,
		row.UserID,
		status,
		pgconv.TimeFromPgtype(row.RequestedAt),
		pgconv.TimePtrFromPgtype(row.SessionStart),
		slot,
		booking.ReconstructPaymentSnapshot(row.AmountCents, row.Currency, row.PaymentMethodRef),
	), nil
}

func BookingsToDomain(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := BookingToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
