package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is the caller-facing booking; the payment method reference is masked.
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	PaymentRef       string     `json:"payment_ref"`
	DeviceID         uuid.UUID  `json:"device_id"`
	UserID           uuid.UUID  `json:"user_id"`
	Status           string     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	SessionStart     *time.Time `json:"session_start,omitempty"`
	Timeslot         string     `json:"timeslot"`
	TimeslotMinutes  int32      `json:"timeslot_minutes"`
	AmountCents      int64      `json:"amount_cents"`
	Currency         string     `json:"currency"`
	PaymentMethodRef string     `json:"payment_method_ref"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type AddressView struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
}

type DeviceView struct {
	ID            uuid.UUID   `json:"id"`
	ExternalID    string      `json:"external_id"`
	Number        string      `json:"number"`
	Blocked       bool        `json:"blocked"`
	Locked        bool        `json:"locked"`
	Closed        bool        `json:"closed"`
	WifiSignal    *int32      `json:"wifi_signal,omitempty"`
	Plate1Temp    *float64    `json:"plate1_temp,omitempty"`
	Plate2Temp    *float64    `json:"plate2_temp,omitempty"`
	Plate1SetTemp *float64    `json:"plate1_set_temp,omitempty"`
	Plate2SetTemp *float64    `json:"plate2_set_temp,omitempty"`
	PublishTime   *time.Time  `json:"publish_time,omitempty"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	Address       AddressView `json:"address"`
}
