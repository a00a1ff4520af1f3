package saga

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/domain/device"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/retry"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	DeviceID         uuid.UUID
	UserID           uuid.UUID
	PaymentMethodRef string
	Timeslot         booking.Timeslot
}

type BookingSaga interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error)
}

type CoordinatorConfig struct {
	PaymentTimeout       time.Duration
	StoreWriteAttempts   int
	CompensationAttempts int
	RetryBaseDelay       time.Duration
	CompensationTimeout  time.Duration
	Currency             string
}

type Coordinator struct {
	devices  DeviceRegistry
	users    UserDirectory
	payments PaymentGateway
	bookings BookingStore
	alerts   Alerter
	clock    clock.Clock
	logger   *slog.Logger
	cfg      CoordinatorConfig
	newID    func() uuid.UUID

	compensations sync.WaitGroup
}

func NewCoordinator(
	devices DeviceRegistry,
	users UserDirectory,
	payments PaymentGateway,
	bookings BookingStore,
	alerts Alerter,
	clk clock.Clock,
	logger *slog.Logger,
	cfg CoordinatorConfig,
) *Coordinator {
	return &Coordinator{
		devices:  devices,
		users:    users,
		payments: payments,
		bookings: bookings,
		alerts:   alerts,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
		newID:    uuid.New,
	}
}

// WithIDGenerator replaces the attempt id source.
func (c *Coordinator) WithIDGenerator(gen func() uuid.UUID) *Coordinator {
	c.newID = gen
	return c
}

// CreateBooking reserves the device, authorizes the payment and records a
// pending booking. The device is unlocked later, when the settlement arrives.
//
// The steps run detached from the caller's cancellation: once the device is
// reserved the workflow always reaches either a booking or a compensation.
func (c *Coordinator) CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error) {
	if params.Timeslot.IsZero() {
		return nil, errs.Mark(booking.ErrInvalidTimeslot, errs.ErrDomainValidation)
	}
	ctx = context.WithoutCancel(ctx)
	requestedAt := c.clock.Now()

	attemptID := c.newID()
	if _, err := c.reserve(ctx, params.DeviceID, attemptID); err != nil {
		return nil, err
	}

	logger := c.logger.With(
		slog.String("attempt_id", attemptID.String()),
		slog.String("device_id", params.DeviceID.String()),
		slog.String("user_id", params.UserID.String()),
	)

	u, err := c.users.FindByID(ctx, params.UserID)
	if err != nil {
		c.compensate(params.DeviceID, attemptID, err)
		if errs.Is(err, errs.ErrNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to resolve user")
	}
	if err := u.CanPay(); err != nil {
		c.compensate(params.DeviceID, attemptID, err)
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	auth, err := c.authorize(ctx, logger, AuthorizationRequest{
		AttemptID:        attemptID,
		CustomerRef:      u.CustomerRef(),
		PaymentMethodRef: params.PaymentMethodRef,
		AmountCents:      params.Timeslot.CostCents(),
		Currency:         c.cfg.Currency,
		DeviceID:         params.DeviceID,
		UserID:           params.UserID,
		Timeslot:         params.Timeslot,
	})
	if err != nil {
		if errs.Is(err, errs.ErrTimeout) {
			// Outcome unknown: the reservation stays until the processor reports.
			c.alerts.Raise(ctx, Alert{
				Kind:     AlertPaymentOutcomeUnknown,
				DeviceID: params.DeviceID,
				Message:  "authorization outcome unknown after reconciliation read; awaiting payment event",
				Err:      err,
			})
			return nil, errs.Mark(err, ErrPaymentOutcomeUnknown)
		}
		c.compensate(params.DeviceID, attemptID, err)
		if errs.Is(err, errs.ErrDeclined) {
			return nil, errs.Mark(err, ErrPaymentDeclined)
		}
		return nil, errs.Wrap(err, "failed to authorize payment")
	}

	b, err := c.record(ctx, attemptID, auth, params, requestedAt)
	if err != nil {
		logger.Error("Booking could not be recorded after authorization",
			slog.String("payment_ref", auth.PaymentRef),
			slog.String("error", err.Error()))
		c.alerts.Raise(ctx, Alert{
			Kind:       AlertBookingNotRecorded,
			DeviceID:   params.DeviceID,
			BookingID:  attemptID,
			PaymentRef: auth.PaymentRef,
			Message:    "payment authorized but booking write failed",
			Err:        err,
		})
		c.compensate(params.DeviceID, attemptID, err)
		return nil, errs.Mark(err, ErrBookingNotRecorded)
	}

	logger.Info("Booking created",
		slog.String("booking_id", b.ID().String()),
		slog.String("payment_ref", b.PaymentRef()),
		slog.String("timeslot", b.Timeslot().Name()))
	return b, nil
}

// Wait blocks until every compensation started so far has finished.
func (c *Coordinator) Wait() {
	c.compensations.Wait()
}

// reserve flips blocked false->true with the attempt as holder. A lost race is
// retried once; the re-read then reports the device as blocked.
func (c *Coordinator) reserve(ctx context.Context, deviceID, attemptID uuid.UUID) (*device.Device, error) {
	for attempt := 0; attempt < 2; attempt++ {
		d, err := c.devices.Get(ctx, deviceID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return nil, errs.Mark(err, ErrDeviceNotFound)
			}
			return nil, errs.Wrap(err, "failed to read device")
		}
		if err := d.CanReserve(); err != nil {
			return nil, errs.Mark(err, ErrDeviceAlreadyBlocked)
		}

		reserved, err := c.devices.ConditionalSetBlocked(ctx, deviceID, false, true, attemptID)
		if err == nil {
			return reserved, nil
		}
		switch {
		case errs.Is(err, errs.ErrConflict):
			c.logger.Info("Reservation lost a race, re-reading device",
				slog.String("device_id", deviceID.String()),
				slog.Int("attempt", attempt+1))
			continue
		case errs.Is(err, errs.ErrNotFound):
			return nil, errs.Mark(err, ErrDeviceNotFound)
		default:
			return nil, errs.Wrap(err, "failed to reserve device")
		}
	}
	return nil, errs.Mark(errs.Newf("device %s reserved concurrently", deviceID), ErrDeviceAlreadyBlocked)
}

// authorize makes one authorization call and, on timeout, one reconciliation
// read: the same attempt id makes the processor replay the first outcome.
func (c *Coordinator) authorize(ctx context.Context, logger *slog.Logger, req AuthorizationRequest) (*Authorization, error) {
	auth, err := c.authorizeOnce(ctx, req)
	if err == nil || !errs.Is(err, errs.ErrTimeout) {
		return auth, err
	}

	logger.Warn("Authorization timed out, reading outcome with the same attempt id",
		slog.String("error", err.Error()))
	return c.authorizeOnce(ctx, req)
}

func (c *Coordinator) authorizeOnce(ctx context.Context, req AuthorizationRequest) (*Authorization, error) {
	callCtx := ctx
	if c.cfg.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.PaymentTimeout)
		defer cancel()
	}

	auth, err := c.payments.Authorize(callCtx, req)
	if err != nil && callCtx.Err() != nil && !errs.Is(err, errs.ErrTimeout) {
		err = errs.Mark(err, errs.ErrTimeout)
	}
	return auth, err
}

func (c *Coordinator) record(
	ctx context.Context,
	attemptID uuid.UUID,
	auth *Authorization,
	params CreateBookingParams,
	requestedAt time.Time,
) (*booking.Booking, error) {
	payment, err := booking.NewPaymentSnapshot(auth.AmountCents, auth.Currency, auth.PaymentMethodRef)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	pending, err := booking.NewPendingBooking(attemptID, auth.PaymentRef, params.DeviceID, params.UserID, params.Timeslot, payment, requestedAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var saved *booking.Booking
	policy := retry.Policy{Attempts: c.cfg.StoreWriteAttempts, BaseDelay: c.cfg.RetryBaseDelay}
	err = retry.Do(ctx, c.clock, policy, isTransient, func(ctx context.Context, attempt int) error {
		b, err := c.bookings.Save(ctx, pending)
		if err != nil {
			c.logger.Warn("Booking write failed",
				slog.String("booking_id", attemptID.String()),
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			return err
		}
		saved = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// compensate releases the reservation in the background so the caller gets
// the original failure without waiting for the release.
func (c *Coordinator) compensate(deviceID, attemptID uuid.UUID, cause error) {
	c.compensations.Add(1)
	go func() {
		defer c.compensations.Done()

		ctx := context.Background()
		if c.cfg.CompensationTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.cfg.CompensationTimeout)
			defer cancel()
		}

		logger := c.logger.With(
			slog.String("device_id", deviceID.String()),
			slog.String("attempt_id", attemptID.String()),
			slog.String("cause", cause.Error()),
		)

		err := releaseDevice(ctx, c.devices, c.clock, retry.Policy{
			Attempts:  c.cfg.CompensationAttempts,
			BaseDelay: c.cfg.RetryBaseDelay,
		}, deviceID, attemptID)
		if err != nil {
			logger.Error("Compensation failed", slog.String("error", err.Error()))
			c.alerts.Raise(ctx, Alert{
				Kind:      AlertCompensationFailed,
				DeviceID:  deviceID,
				BookingID: attemptID,
				Message:   "device reservation could not be released",
				Err:       errs.Mark(err, errs.ErrInconsistent),
			})
			return
		}
		logger.Info("Device reservation released")
	}()
}

// releaseDevice re-reads the device and flips blocked true->false when holder
// owns the reservation. A device that is unblocked or reserved by someone else
// counts as released.
func releaseDevice(ctx context.Context, devices DeviceRegistry, clk clock.Clock, policy retry.Policy, deviceID, holder uuid.UUID) error {
	return retry.Do(ctx, clk, policy, isTransient, func(ctx context.Context, _ int) error {
		d, err := devices.Get(ctx, deviceID)
		if err != nil {
			return err
		}
		if !d.IsReservedBy(holder) {
			return nil
		}
		_, err = devices.ConditionalSetBlocked(ctx, deviceID, true, false, holder)
		if errs.Is(err, errs.ErrConflict) {
			return nil
		}
		return err
	})
}

// isTransient reports whether a collaborator failure is worth another attempt.
func isTransient(err error) bool {
	return !errs.Is(err, errs.ErrNotFound) &&
		!errs.Is(err, errs.ErrDomainValidation) &&
		!errs.Is(err, errs.ErrDeclined)
}
