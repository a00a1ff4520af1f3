package saga

import "github.com/google/uuid"

type AlertKind string

const (
	// Device stayed blocked after a failed booking attempt.
	AlertCompensationFailed AlertKind = "compensation_failed"
	// Authorization timed out twice; the device is held until the processor reports.
	AlertPaymentOutcomeUnknown AlertKind = "payment_outcome_unknown"
	// Money was authorized but no booking row could be written.
	AlertBookingNotRecorded AlertKind = "booking_not_recorded"
	// Booking is payed but the device never confirmed the unlock.
	AlertUnlockFailed AlertKind = "device_unlock_failed"
	// A settlement arrived for a device another booking holds. Needs a refund.
	AlertOrphanPayment AlertKind = "orphan_payment"
)

// Billing alerts need a refund; the others need someone at the device or the database.
func (k AlertKind) IsBilling() bool {
	return k == AlertBookingNotRecorded || k == AlertOrphanPayment
}

type Alert struct {
	Kind       AlertKind
	DeviceID   uuid.UUID
	BookingID  uuid.UUID
	PaymentRef string
	Message    string
	Err        error
}
