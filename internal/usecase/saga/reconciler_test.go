//go:build unit

package saga_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"
	"grillbox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPending stores a pending booking holding the device reservation.
func withPending(e *env) *booking.Booking {
	b := builder.NewBookingBuilder().
		WithDeviceID(e.device.ID()).
		WithUserID(e.user.ID()).
		WithRequestedAt(epoch).
		BuildDomain()
	e.devices.Reserve(e.device.ID(), b.ID())
	_, err := e.bookings.Save(context.Background(), b)
	if err != nil {
		panic(err)
	}
	e.bookings.SaveCalls = 0
	return b
}

func event(ref string, outcome saga.PaymentOutcome) saga.PaymentEvent {
	return saga.PaymentEvent{
		EventID:    "evt_" + uuid.NewString()[:8],
		PaymentRef: ref,
		Outcome:    outcome,
		OccurredAt: epoch,
	}
}

func TestHandlePaymentEvent_SettledUnlocksOnce(t *testing.T) {
	e := newEnv()
	b := withPending(e)
	// One read before the command, the watcher's first read sees it unlocked.
	e.devices.UnlockAfterReads(e.device.ID(), 2)
	r := e.reconciler()

	res, err := r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))
	require.NoError(t, err)
	assert.Equal(t, saga.ResultApplied, res)

	res, err = r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))
	require.NoError(t, err)
	assert.Equal(t, saga.ResultDuplicate, res)

	assert.Equal(t, []string{e.device.ExternalID()}, e.commands.Sent())
	assert.Equal(t, 1, e.bookings.Transitions)

	stored := e.bookings.Get(b.ID())
	assert.Equal(t, booking.StatusPayed, stored.Status())
	require.NotNil(t, stored.SessionStart())
	assert.Equal(t, epoch.Add(time.Second), *stored.SessionStart())
	assert.Empty(t, e.alerts.Raised())
}

func TestHandlePaymentEvent_ConcurrentDuplicatesUnlockOnce(t *testing.T) {
	e := newEnv()
	b := withPending(e)
	e.devices.UnlockAfterReads(e.device.ID(), 1)
	r := e.reconciler()

	const deliveries = 8
	results := make(chan saga.ReconcileResult, deliveries)
	var wg sync.WaitGroup
	for range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))
			assert.NoError(t, err)
			results <- res
		}()
	}
	wg.Wait()
	close(results)

	applied := 0
	for res := range results {
		if res == saga.ResultApplied {
			applied++
		}
	}
	assert.Equal(t, 1, applied)
	assert.Len(t, e.commands.Sent(), 1)
	assert.Equal(t, 1, e.bookings.Transitions)
	assert.Equal(t, booking.StatusPayed, e.bookings.Get(b.ID()).Status())
}

func TestHandlePaymentEvent_FailedReleasesDevice(t *testing.T) {
	e := newEnv()
	b := withPending(e)
	r := e.reconciler()

	res, err := r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeFailed))
	require.NoError(t, err)
	assert.Equal(t, saga.ResultApplied, res)

	assert.Equal(t, booking.StatusPaymentFailed, e.bookings.Get(b.ID()).Status())
	assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
	assert.Empty(t, e.commands.Sent())
}

func TestHandlePaymentEvent_StatusIsMonotonic(t *testing.T) {
	e := newEnv()
	b := withPending(e)
	r := e.reconciler()

	_, err := r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeFailed))
	require.NoError(t, err)

	res, err := r.HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))
	require.NoError(t, err)
	assert.Equal(t, saga.ResultDuplicate, res)
	assert.Equal(t, booking.StatusPaymentFailed, e.bookings.Get(b.ID()).Status())
	assert.Empty(t, e.commands.Sent())
}

func TestHandlePaymentEvent_UnlockFailures(t *testing.T) {
	t.Run("device never confirms", func(t *testing.T) {
		e := newEnv()
		b := withPending(e)

		res, err := e.reconciler().HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))

		assert.Equal(t, saga.ResultApplied, res)
		require.True(t, errs.Is(err, saga.ErrDeviceUnlockFailed), "got %v", err)
		assert.False(t, errs.Is(err, saga.ErrTransitionNotPersisted))
		assert.Equal(t, booking.StatusPayed, e.bookings.Get(b.ID()).Status(), "payment stays recorded")
		assert.Nil(t, e.bookings.Get(b.ID()).SessionStart())
		assert.Len(t, e.commands.Sent(), 1, "the command is sent once")
		assert.Equal(t, 11, e.devices.Reads(e.device.ID()))
		assert.Equal(t, []saga.AlertKind{saga.AlertUnlockFailed}, e.alerts.Kinds())
	})

	t.Run("command rejected", func(t *testing.T) {
		e := newEnv()
		b := withPending(e)
		e.commands.Err = errors.New("broker unavailable")

		_, err := e.reconciler().HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))

		require.True(t, errs.Is(err, saga.ErrDeviceUnlockFailed), "got %v", err)
		assert.Equal(t, booking.StatusPayed, e.bookings.Get(b.ID()).Status())
		assert.Equal(t, 1, e.devices.Reads(e.device.ID()), "no polling without an accepted command")
		assert.Equal(t, []saga.AlertKind{saga.AlertUnlockFailed}, e.alerts.Kinds())
	})
}

func TestHandlePaymentEvent_TransitionNotPersisted(t *testing.T) {
	e := newEnv()
	b := withPending(e)
	e.bookings.SetStatusErrs = []error{errDB}

	_, err := e.reconciler().HandlePaymentEvent(context.Background(), event(b.PaymentRef(), saga.OutcomeSettled))

	require.True(t, errs.Is(err, saga.ErrTransitionNotPersisted), "got %v", err)
	assert.Equal(t, booking.StatusPending, e.bookings.Get(b.ID()).Status())
	assert.Empty(t, e.commands.Sent())
}

func TestHandlePaymentEvent_UnknownReference(t *testing.T) {
	e := newEnv()

	_, err := e.reconciler().HandlePaymentEvent(context.Background(), event("pi_unknown", saga.OutcomeSettled))

	require.True(t, errs.Is(err, saga.ErrBookingNotFound), "got %v", err)
	assert.Empty(t, e.bookings.All())
}

func TestHandlePaymentEvent_InvalidEvent(t *testing.T) {
	e := newEnv()

	_, err := e.reconciler().HandlePaymentEvent(context.Background(), event("", saga.OutcomeSettled))
	require.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = e.reconciler().HandlePaymentEvent(context.Background(), event("pi_1", saga.PaymentOutcome("refunded")))
	require.True(t, errs.Is(err, errs.ErrDomainValidation))
}

func attemptFor(e *env) *saga.AttemptMetadata {
	return &saga.AttemptMetadata{
		AttemptID:        uuid.New(),
		DeviceID:         e.device.ID(),
		UserID:           e.user.ID(),
		Timeslot:         booking.FortyFive,
		AmountCents:      800,
		Currency:         "eur",
		PaymentMethodRef: "pm_card4242",
	}
}

func TestHandlePaymentEvent_AdoptsTimedOutAuthorization(t *testing.T) {
	e := newEnv()
	evt := event("pi_late", saga.OutcomeSettled)
	evt.Attempt = attemptFor(e)
	// The coordinator kept the reservation after the timeout.
	e.devices.Reserve(e.device.ID(), evt.Attempt.AttemptID)
	e.devices.UnlockAfterReads(e.device.ID(), 2)

	res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, saga.ResultApplied, res)

	stored := e.bookings.Get(evt.Attempt.AttemptID)
	require.NotNil(t, stored, "booking is keyed by the attempt id")
	assert.Equal(t, booking.StatusPayed, stored.Status())
	assert.Equal(t, "pi_late", stored.PaymentRef())
	assert.Equal(t, "pm_****4242", stored.Payment().MethodRef())
	assert.Len(t, e.commands.Sent(), 1)
}

func TestHandlePaymentEvent_FailedWithoutBooking(t *testing.T) {
	t.Run("releases the attempt's own reservation", func(t *testing.T) {
		e := newEnv()
		evt := event("pi_late", saga.OutcomeFailed)
		evt.Attempt = attemptFor(e)
		e.devices.Reserve(e.device.ID(), evt.Attempt.AttemptID)

		res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
		require.NoError(t, err)
		assert.Equal(t, saga.ResultNoBooking, res)

		assert.Empty(t, e.bookings.All(), "a failed payment records no booking")
		assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
	})

	t.Run("leaves another user's reservation alone", func(t *testing.T) {
		e := newEnv()
		// The declined attempt was already compensated and another user reserved since.
		current := uuid.New()
		e.devices.Reserve(e.device.ID(), current)
		evt := event("pi_declined", saga.OutcomeFailed)
		evt.Attempt = attemptFor(e)

		res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
		require.NoError(t, err)
		assert.Equal(t, saga.ResultNoBooking, res)

		assert.Empty(t, e.bookings.All())
		d := e.devices.Snapshot(e.device.ID())
		assert.True(t, d.IsBlocked())
		assert.True(t, d.IsReservedBy(current))
		assert.Zero(t, e.devices.SetBlockedCalls)
		assert.Empty(t, e.alerts.Raised())
	})
}

func TestHandlePaymentEvent_AdoptionOnDeviceReservedByInFlightAttempt(t *testing.T) {
	e := newEnv()
	// Another attempt holds the device but has not written its booking yet.
	inFlight := uuid.New()
	e.devices.Reserve(e.device.ID(), inFlight)
	evt := event("pi_late", saga.OutcomeSettled)
	evt.Attempt = attemptFor(e)

	res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, saga.ResultOrphaned, res)

	assert.Equal(t, booking.StatusPayed, e.bookings.Get(evt.Attempt.AttemptID).Status())
	assert.Empty(t, e.commands.Sent(), "no unlock for a device reserved by another attempt")
	assert.True(t, e.devices.Snapshot(e.device.ID()).IsReservedBy(inFlight))
	assert.Equal(t, []saga.AlertKind{saga.AlertOrphanPayment}, e.alerts.Kinds())
}

func TestHandlePaymentEvent_AdoptionClaimsFreeDevice(t *testing.T) {
	e := newEnv()
	e.devices.UnlockAfterReads(e.device.ID(), 1)
	evt := event("pi_late", saga.OutcomeSettled)
	evt.Attempt = attemptFor(e)

	res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, saga.ResultApplied, res)

	assert.True(t, e.devices.Snapshot(e.device.ID()).IsReservedBy(evt.Attempt.AttemptID))
	assert.Len(t, e.commands.Sent(), 1)
}

func TestHandlePaymentEvent_AdoptionOnDeviceHeldByAnother(t *testing.T) {
	e := newEnv()
	other := withPending(e)
	evt := event("pi_late", saga.OutcomeSettled)
	evt.Attempt = attemptFor(e)

	res, err := e.reconciler().HandlePaymentEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, saga.ResultOrphaned, res)

	assert.Equal(t, booking.StatusPayed, e.bookings.Get(evt.Attempt.AttemptID).Status())
	assert.Equal(t, booking.StatusPending, e.bookings.Get(other.ID()).Status())
	assert.Empty(t, e.commands.Sent(), "the other booking keeps the device")
	assert.True(t, e.devices.Snapshot(e.device.ID()).IsReservedBy(other.ID()))
	assert.Equal(t, []saga.AlertKind{saga.AlertOrphanPayment}, e.alerts.Kinds())
	assert.True(t, saga.AlertOrphanPayment.IsBilling())
}
