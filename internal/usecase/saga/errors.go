package saga

import "errors"

var (
	ErrDeviceNotFound         = errors.New("device not found")
	ErrDeviceAlreadyBlocked   = errors.New("device already blocked")
	ErrUserNotFound           = errors.New("user not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrPaymentDeclined        = errors.New("payment declined")
	ErrPaymentOutcomeUnknown  = errors.New("payment outcome unknown")
	ErrBookingNotRecorded     = errors.New("payment authorized but booking not recorded")
	ErrUnlockTimeout          = errors.New("device did not report unlocked in time")
	ErrDeviceUnlockFailed     = errors.New("device unlock failed")
	ErrTransitionNotPersisted = errors.New("booking transition not persisted")
	ErrInvalidPaymentEvent    = errors.New("invalid payment event")
)
