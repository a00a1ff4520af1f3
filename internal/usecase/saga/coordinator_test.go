//go:build unit

package saga_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"
	"grillbox/tests/common/builder"
	"grillbox/tests/common/sagafake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errDeclined = errs.Mark(errors.New("card_declined"), errs.ErrDeclined)
	errTimeout  = errs.Mark(errors.New("processor did not answer"), errs.ErrTimeout)
	errDB       = errors.New("connection reset by peer")
)

func declineAll(context.Context, saga.AuthorizationRequest) (*saga.Authorization, error) {
	return nil, errDeclined
}

func TestCreateBooking_HappyPath(t *testing.T) {
	e := newEnv()
	attemptID := uuid.New()
	c := e.coordinator().WithIDGenerator(func() uuid.UUID { return attemptID })

	b, err := c.CreateBooking(context.Background(), e.params())
	c.Wait()
	require.NoError(t, err)

	assert.Equal(t, attemptID, b.ID())
	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, "pi_"+attemptID.String(), b.PaymentRef())
	assert.Equal(t, int64(800), b.Payment().AmountCents())
	assert.Equal(t, "eur", b.Payment().Currency())
	assert.Equal(t, "pm_****4242", b.Payment().MethodRef())
	assert.Equal(t, epoch, b.RequestedAt())
	assert.Nil(t, b.SessionStart())

	assert.True(t, e.devices.Snapshot(e.device.ID()).IsReservedBy(attemptID), "reservation must be kept for the pending booking")
	assert.Empty(t, e.commands.Sent(), "unlocking is left to the reconciler")
	assert.Empty(t, e.alerts.Raised())

	reqs := e.payments.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, attemptID, reqs[0].AttemptID)
	assert.Equal(t, e.user.CustomerRef(), reqs[0].CustomerRef)
	assert.Equal(t, int64(800), reqs[0].AmountCents)
}

func TestCreateBooking_NinetyMinutesCost(t *testing.T) {
	e := newEnv()
	params := e.params()
	params.Timeslot = booking.Ninety

	b, err := e.coordinator().CreateBooking(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), b.Payment().AmountCents())
}

func TestCreateBooking_Rejections(t *testing.T) {
	t.Run("device already blocked", func(t *testing.T) {
		e := newEnv(func(d *builder.DeviceBuilder) { d.AsBlocked() })

		_, err := e.coordinator().CreateBooking(context.Background(), e.params())
		require.True(t, errs.Is(err, saga.ErrDeviceAlreadyBlocked), "got %v", err)
		assert.Zero(t, e.devices.SetBlockedCalls, "no mutation for a blocked device")
		assert.Empty(t, e.payments.Requests())
	})

	t.Run("device not found", func(t *testing.T) {
		e := newEnv()
		params := e.params()
		params.DeviceID = uuid.New()

		_, err := e.coordinator().CreateBooking(context.Background(), params)
		require.True(t, errs.Is(err, saga.ErrDeviceNotFound), "got %v", err)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("missing timeslot", func(t *testing.T) {
		e := newEnv()
		params := e.params()
		params.Timeslot = booking.Timeslot{}

		_, err := e.coordinator().CreateBooking(context.Background(), params)
		require.True(t, errs.Is(err, errs.ErrDomainValidation), "got %v", err)
		assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
	})
}

func TestCreateBooking_PaymentDeclinedCompensates(t *testing.T) {
	e := newEnv()
	e.payments.AuthorizeFunc = declineAll
	c := e.coordinator()

	b, err := c.CreateBooking(context.Background(), e.params())
	c.Wait()

	require.Nil(t, b)
	require.True(t, errs.Is(err, saga.ErrPaymentDeclined), "got %v", err)
	assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked(), "reservation must be released")
	assert.Empty(t, e.bookings.All(), "no booking for a declined payment")
	assert.Empty(t, e.alerts.Raised())
}

func TestCreateBooking_UserNotFoundCompensates(t *testing.T) {
	e := newEnv()
	params := e.params()
	params.UserID = uuid.New()
	c := e.coordinator()

	_, err := c.CreateBooking(context.Background(), params)
	c.Wait()

	require.True(t, errs.Is(err, saga.ErrUserNotFound), "got %v", err)
	assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
	assert.Empty(t, e.payments.Requests())
}

func TestCreateBooking_UserWithoutCustomer(t *testing.T) {
	e := newEnv()
	u, err := builder.NewUserBuilder().WithoutCustomer().BuildDomain()
	require.NoError(t, err)
	e.users = sagafake.NewUsers(u)
	params := e.params()
	params.UserID = u.ID()
	c := e.coordinator()

	_, err = c.CreateBooking(context.Background(), params)
	c.Wait()

	require.True(t, errs.Is(err, errs.ErrDomainValidation), "got %v", err)
	assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
}

func TestCreateBooking_TimeoutRunsReconciliationRead(t *testing.T) {
	t.Run("replay answers with the authorization", func(t *testing.T) {
		e := newEnv()
		calls := 0
		e.payments.AuthorizeFunc = func(_ context.Context, req saga.AuthorizationRequest) (*saga.Authorization, error) {
			calls++
			if calls == 1 {
				return nil, errTimeout
			}
			return &saga.Authorization{
				PaymentRef:       "pi_" + req.AttemptID.String(),
				AmountCents:      req.AmountCents,
				Currency:         req.Currency,
				PaymentMethodRef: req.PaymentMethodRef,
			}, nil
		}
		c := e.coordinator()

		b, err := c.CreateBooking(context.Background(), e.params())
		c.Wait()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())

		reqs := e.payments.Requests()
		require.Len(t, reqs, 2)
		assert.Equal(t, reqs[0].AttemptID, reqs[1].AttemptID, "reconciliation read reuses the attempt id")
	})

	t.Run("outcome still unknown keeps the reservation", func(t *testing.T) {
		e := newEnv()
		e.payments.AuthorizeFunc = func(context.Context, saga.AuthorizationRequest) (*saga.Authorization, error) {
			return nil, errTimeout
		}
		c := e.coordinator()

		_, err := c.CreateBooking(context.Background(), e.params())
		c.Wait()

		require.True(t, errs.Is(err, saga.ErrPaymentOutcomeUnknown), "got %v", err)
		reqs := e.payments.Requests()
		require.Len(t, reqs, 2)
		assert.True(t, e.devices.Snapshot(e.device.ID()).IsReservedBy(reqs[0].AttemptID), "never compensate blindly on timeout")
		assert.Equal(t, []saga.AlertKind{saga.AlertPaymentOutcomeUnknown}, e.alerts.Kinds())
		assert.Empty(t, e.bookings.All())
	})
}

func TestCreateBooking_StoreWrite(t *testing.T) {
	t.Run("transient failures are retried on the same id", func(t *testing.T) {
		e := newEnv()
		e.bookings.SaveErrs = []error{errDB, errDB}
		c := e.coordinator()

		b, err := c.CreateBooking(context.Background(), e.params())
		c.Wait()
		require.NoError(t, err)

		assert.Equal(t, 3, e.bookings.SaveCalls)
		require.Len(t, e.bookings.All(), 1)
		assert.Equal(t, b.ID(), e.bookings.All()[0].ID())
	})

	t.Run("exhausted retries compensate and alert", func(t *testing.T) {
		e := newEnv()
		e.bookings.SaveErrs = []error{errDB, errDB, errDB}
		c := e.coordinator()

		_, err := c.CreateBooking(context.Background(), e.params())
		c.Wait()

		require.True(t, errs.Is(err, saga.ErrBookingNotRecorded), "got %v", err)
		assert.Equal(t, 3, e.bookings.SaveCalls)
		assert.False(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
		assert.Equal(t, []saga.AlertKind{saga.AlertBookingNotRecorded}, e.alerts.Kinds())
	})
}

func TestCreateBooking_CompensationFailureIsRecordedNotReturned(t *testing.T) {
	e := newEnv()
	e.payments.AuthorizeFunc = declineAll
	// First write is the reservation; every release attempt fails after it.
	e.devices.SetBlockedErrs = []error{nil, errDB, errDB, errDB, errDB, errDB}
	c := e.coordinator()

	_, err := c.CreateBooking(context.Background(), e.params())
	c.Wait()

	require.True(t, errs.Is(err, saga.ErrPaymentDeclined), "got %v", err)
	assert.False(t, errs.Is(err, errs.ErrInconsistent), "caller sees only the original failure")

	alerts := e.alerts.Raised()
	require.Len(t, alerts, 1)
	assert.Equal(t, saga.AlertCompensationFailed, alerts[0].Kind)
	assert.True(t, errs.Is(alerts[0].Err, errs.ErrInconsistent))
	assert.True(t, e.devices.Snapshot(e.device.ID()).IsBlocked())
}

func TestCreateBooking_LostRaceIsRetriedOnce(t *testing.T) {
	e := newEnv()
	e.devices.SetBlockedErrs = []error{errs.Mark(errors.New("lost race"), errs.ErrConflict)}

	b, err := e.coordinator().CreateBooking(context.Background(), e.params())
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 2, e.devices.SetBlockedCalls)
}

func TestCreateBooking_DetachedFromCallerCancellation(t *testing.T) {
	e := newEnv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := e.coordinator().CreateBooking(ctx, e.params())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status())
}

func TestCreateBooking_NoDoubleBooking(t *testing.T) {
	e := newEnv()
	c := e.coordinator()

	const callers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		busy      int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CreateBooking(context.Background(), e.params())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, saga.ErrDeviceAlreadyBlocked):
				busy++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	c.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, busy)
	assert.Len(t, e.bookings.All(), 1)
	assert.Len(t, e.payments.Requests(), 1)
}
