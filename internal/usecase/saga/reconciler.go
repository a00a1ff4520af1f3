package saga

import (
	"context"
	"log/slog"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/retry"

	"github.com/google/uuid"
)

type PaymentEventHandler interface {
	HandlePaymentEvent(ctx context.Context, evt PaymentEvent) (ReconcileResult, error)
}

type ReconcilerConfig struct {
	Unlock          UnlockPolicy
	ReleaseAttempts int
	RetryBaseDelay  time.Duration
}

// Reconciler finalizes pending bookings from payment outcomes. The conditional
// pending->X status update is what makes redelivered events harmless.
type Reconciler struct {
	devices  DeviceRegistry
	bookings BookingStore
	commands DeviceCommandChannel
	watcher  UnlockConfirmer
	alerts   Alerter
	clock    clock.Clock
	logger   *slog.Logger
	cfg      ReconcilerConfig
}

func NewReconciler(
	devices DeviceRegistry,
	bookings BookingStore,
	commands DeviceCommandChannel,
	watcher UnlockConfirmer,
	alerts Alerter,
	clk clock.Clock,
	logger *slog.Logger,
	cfg ReconcilerConfig,
) *Reconciler {
	return &Reconciler{
		devices:  devices,
		bookings: bookings,
		commands: commands,
		watcher:  watcher,
		alerts:   alerts,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
	}
}

// HandlePaymentEvent applies one payment outcome.
//
// Errors marked ErrTransitionNotPersisted mean nothing was applied and the event
// must be delivered again. ErrDeviceUnlockFailed means the booking is payed and
// an operator has been alerted; redelivery would not help.
func (r *Reconciler) HandlePaymentEvent(ctx context.Context, evt PaymentEvent) (ReconcileResult, error) {
	if err := evt.Validate(); err != nil {
		return "", errs.Mark(errs.Wrapf(err, "event %q", evt.EventID), errs.ErrDomainValidation)
	}
	logger := r.logger.With(
		slog.String("payment_ref", evt.PaymentRef),
		slog.String("outcome", string(evt.Outcome)),
		slog.String("event_id", evt.EventID),
	)

	b, err := r.bookings.FindByPaymentRef(ctx, evt.PaymentRef)
	if err != nil {
		switch {
		case !errs.Is(err, errs.ErrNotFound):
			return "", errs.Mark(errs.Wrap(err, "failed to look up booking"), ErrTransitionNotPersisted)
		case !evt.Attempt.complete():
			return "", errs.Mark(err, ErrBookingNotFound)
		case evt.Outcome == OutcomeFailed:
			return r.abandon(ctx, logger, evt.Attempt)
		}
		return r.adopt(ctx, logger, evt)
	}
	if !b.IsPending() {
		logger.Info("Booking already finalized, ignoring event",
			slog.String("booking_id", b.ID().String()),
			slog.String("status", b.Status().String()))
		return ResultDuplicate, nil
	}

	if evt.Outcome == OutcomeSettled {
		return r.settle(ctx, logger, b)
	}
	return r.fail(ctx, logger, b)
}

// adopt records a settlement whose reference has no booking. The charge
// metadata names the attempt: that is the trace a timed-out authorization
// leaves behind. The device is claimed before the booking is written so a
// redelivery finds the reservation already owned by the attempt.
func (r *Reconciler) adopt(ctx context.Context, logger *slog.Logger, evt PaymentEvent) (ReconcileResult, error) {
	m := evt.Attempt
	payment, err := booking.NewPaymentSnapshot(m.AmountCents, m.Currency, m.PaymentMethodRef)
	if err != nil {
		payment = booking.ReconstructPaymentSnapshot(m.Timeslot.CostCents(), m.Currency, booking.MaskMethodRef(m.PaymentMethodRef))
	}
	pending, err := booking.NewPendingBooking(m.AttemptID, evt.PaymentRef, m.DeviceID, m.UserID, m.Timeslot, payment, evt.OccurredAt)
	if err != nil {
		return "", errs.Mark(err, errs.ErrDomainValidation)
	}

	owned, err := r.claim(ctx, m.DeviceID, m.AttemptID)
	if err != nil {
		return "", errs.Mark(err, ErrTransitionNotPersisted)
	}

	b, err := r.bookings.Save(ctx, pending)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to adopt booking"), ErrTransitionNotPersisted)
	}
	logger.Warn("Adopted booking for unknown payment reference",
		slog.String("booking_id", b.ID().String()),
		slog.Bool("device_owned", owned))
	if !b.IsPending() {
		return ResultDuplicate, nil
	}
	if owned {
		return r.settle(ctx, logger, b)
	}

	if _, _, err := r.transition(ctx, b, booking.StatusPayed); err != nil {
		return "", err
	}
	r.alerts.Raise(ctx, Alert{
		Kind:       AlertOrphanPayment,
		DeviceID:   b.DeviceID(),
		BookingID:  b.ID(),
		PaymentRef: b.PaymentRef(),
		Message:    "settlement for a device reserved by another attempt; refund required",
	})
	return ResultOrphaned, nil
}

// claim reserves the device for holder. It reports false when another attempt
// holds the reservation.
func (r *Reconciler) claim(ctx context.Context, deviceID, holder uuid.UUID) (bool, error) {
	_, err := r.devices.ConditionalSetBlocked(ctx, deviceID, false, true, holder)
	if err == nil {
		return true, nil
	}
	if !errs.Is(err, errs.ErrConflict) {
		return false, errs.Wrap(err, "failed to reserve device for adopted booking")
	}
	d, err := r.devices.Get(ctx, deviceID)
	if err != nil {
		return false, errs.Wrap(err, "failed to re-read device")
	}
	return d.IsReservedBy(holder), nil
}

// abandon handles a failed payment that never produced a booking. Nothing is
// recorded; the attempt's own reservation, if it still has one, is released.
func (r *Reconciler) abandon(ctx context.Context, logger *slog.Logger, m *AttemptMetadata) (ReconcileResult, error) {
	policy := retry.Policy{Attempts: r.cfg.ReleaseAttempts, BaseDelay: r.cfg.RetryBaseDelay}
	if err := releaseDevice(ctx, r.devices, r.clock, policy, m.DeviceID, m.AttemptID); err != nil {
		logger.Error("Device release for abandoned attempt did not succeed", slog.String("error", err.Error()))
		r.alerts.Raise(ctx, Alert{
			Kind:      AlertCompensationFailed,
			DeviceID:  m.DeviceID,
			BookingID: m.AttemptID,
			Message:   "device reservation could not be released after failed payment",
			Err:       errs.Mark(err, errs.ErrInconsistent),
		})
	}
	logger.Info("Failed payment without booking",
		slog.String("attempt_id", m.AttemptID.String()))
	return ResultNoBooking, nil
}

func (r *Reconciler) settle(ctx context.Context, logger *slog.Logger, b *booking.Booking) (ReconcileResult, error) {
	updated, won, err := r.transition(ctx, b, booking.StatusPayed)
	if err != nil {
		return "", err
	}
	if !won {
		logger.Info("Concurrent delivery finalized the booking first")
		return ResultDuplicate, nil
	}

	if err := r.unlock(ctx, logger, updated); err != nil {
		return ResultApplied, err
	}
	return ResultApplied, nil
}

// fail persists payment_failed before releasing the device. Only the
// booking's own reservation is released.
func (r *Reconciler) fail(ctx context.Context, logger *slog.Logger, b *booking.Booking) (ReconcileResult, error) {
	_, won, err := r.transition(ctx, b, booking.StatusPaymentFailed)
	if err != nil {
		return "", err
	}
	if !won {
		logger.Info("Concurrent delivery finalized the booking first")
		return ResultDuplicate, nil
	}

	policy := retry.Policy{Attempts: r.cfg.ReleaseAttempts, BaseDelay: r.cfg.RetryBaseDelay}
	if err := releaseDevice(ctx, r.devices, r.clock, policy, b.DeviceID(), b.ID()); err != nil {
		logger.Error("Device release after failed payment did not succeed", slog.String("error", err.Error()))
		r.alerts.Raise(ctx, Alert{
			Kind:       AlertCompensationFailed,
			DeviceID:   b.DeviceID(),
			BookingID:  b.ID(),
			PaymentRef: b.PaymentRef(),
			Message:    "device reservation could not be released after failed payment",
			Err:        errs.Mark(err, errs.ErrInconsistent),
		})
	}
	return ResultApplied, nil
}

// transition moves a pending booking to next. won is false when another
// delivery already finalized it.
func (r *Reconciler) transition(ctx context.Context, b *booking.Booking, next booking.Status) (*booking.Booking, bool, error) {
	if err := b.CheckTransition(next); err != nil {
		return nil, false, errs.Mark(err, errs.ErrDomainValidation)
	}

	for attempt := 0; attempt < 2; attempt++ {
		updated, err := r.bookings.ConditionalSetStatus(ctx, b.ID(), booking.StatusPending, next)
		if err == nil {
			return updated, true, nil
		}
		if !errs.Is(err, errs.ErrConflict) {
			return nil, false, errs.Mark(errs.Wrapf(err, "failed to set booking %s to %s", b.ID(), next), ErrTransitionNotPersisted)
		}

		current, err := r.bookings.FindByPaymentRef(ctx, b.PaymentRef())
		if err != nil {
			return nil, false, errs.Mark(errs.Wrap(err, "failed to re-read booking"), ErrTransitionNotPersisted)
		}
		if !current.IsPending() {
			return current, false, nil
		}
	}
	return nil, false, errs.Mark(errs.Newf("booking %s kept conflicting", b.ID()), ErrTransitionNotPersisted)
}

// unlock sends the command once and waits for the device to confirm it.
func (r *Reconciler) unlock(ctx context.Context, logger *slog.Logger, b *booking.Booking) error {
	fail := func(err error, msg string) error {
		err = errs.Mark(errs.Wrap(err, msg), ErrDeviceUnlockFailed)
		if ctx.Err() != nil {
			logger.Warn("Unlock interrupted", slog.String("error", err.Error()))
			return err
		}
		r.alerts.Raise(ctx, Alert{
			Kind:       AlertUnlockFailed,
			DeviceID:   b.DeviceID(),
			BookingID:  b.ID(),
			PaymentRef: b.PaymentRef(),
			Message:    msg,
			Err:        err,
		})
		return err
	}

	d, err := r.devices.Get(ctx, b.DeviceID())
	if err != nil {
		return fail(err, "failed to read device for unlock")
	}
	address, err := d.CommandAddress()
	if err != nil {
		return fail(err, "device has no command address")
	}
	if err := r.commands.SendUnlock(ctx, address); err != nil {
		return fail(err, "unlock command not accepted")
	}
	if _, err := r.watcher.ConfirmUnlock(ctx, d.ID(), r.cfg.Unlock); err != nil {
		return fail(err, "device did not confirm unlock")
	}

	startedAt := r.clock.Now()
	if err := r.bookings.SetSessionStart(ctx, b.ID(), startedAt); err != nil {
		logger.Error("Failed to record session start",
			slog.String("booking_id", b.ID().String()),
			slog.String("error", err.Error()))
		return nil
	}
	logger.Info("Session started",
		slog.String("booking_id", b.ID().String()),
		slog.Time("session_start", startedAt))
	return nil
}
