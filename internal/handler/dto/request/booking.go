package request

import (
	"github.com/google/uuid"

	"grillbox/internal/domain/booking"
	"grillbox/internal/usecase/saga"
)

type CreateBookingRequest struct {
	DeviceID         uuid.UUID `json:"deviceId" binding:"required"`
	PaymentMethodRef string    `json:"paymentMethodId" binding:"required"`
	Timeslot         string    `json:"timeslot" binding:"required"`
}

// ToParams resolves the timeslot; the price always comes from the timeslot itself.
func (r CreateBookingRequest) ToParams(userID uuid.UUID) (saga.CreateBookingParams, error) {
	slot, err := booking.ParseTimeslot(r.Timeslot)
	if err != nil {
		return saga.CreateBookingParams{}, err
	}
	return saga.CreateBookingParams{
		DeviceID:         r.DeviceID,
		UserID:           userID,
		PaymentMethodRef: r.PaymentMethodRef,
		Timeslot:         slot,
	}, nil
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit"`
}
