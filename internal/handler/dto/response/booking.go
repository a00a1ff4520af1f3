package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"grillbox/internal/domain/booking"
	"grillbox/internal/usecase/queries"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	PaymentRef       string     `json:"paymentRef"`
	DeviceID         uuid.UUID  `json:"deviceId"`
	UserID           uuid.UUID  `json:"userId"`
	Status           string     `json:"status"`
	RequestedAt      time.Time  `json:"requestedAt"`
	SessionStart     *time.Time `json:"sessionStart,omitempty"`
	Timeslot         string     `json:"timeslot"`
	TimeslotMinutes  int32      `json:"timeslotMinutes"`
	AmountCents      int64      `json:"amountCents"`
	Currency         string     `json:"currency"`
	PaymentMethodRef string     `json:"paymentMethod"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	slot := b.Timeslot()
	payment := b.Payment()
	return &BookingResponse{
		ID:               b.ID(),
		PaymentRef:       b.PaymentRef(),
		DeviceID:         b.DeviceID(),
		UserID:           b.UserID(),
		Status:           b.Status().String(),
		RequestedAt:      b.RequestedAt(),
		SessionStart:     b.SessionStart(),
		Timeslot:         slot.Name(),
		TimeslotMinutes:  int32(slot.Minutes()), // #nosec G115 -- timeslots are 45 or 90 minutes
		AmountCents:      payment.AmountCents(),
		Currency:         payment.Currency(),
		PaymentMethodRef: payment.MethodRef(),
	}
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookingViews(views []*queries.BookingView, next *queries.Cursor) (*BookingListResponse, error) {
	items := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		resp, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	list := &BookingListResponse{Items: items}
	if next != nil {
		list.NextCursor = next.After
	}
	return list, nil
}
