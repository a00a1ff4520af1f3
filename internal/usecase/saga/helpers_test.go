//go:build unit

package saga_test

import (
	"log/slog"
	"time"

	"grillbox/internal/domain/device"
	"grillbox/internal/domain/user"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/usecase/saga"
	"grillbox/tests/common/builder"
	"grillbox/tests/common/sagafake"
)

var epoch = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	device   *device.Device
	user     *user.User
	devices  *sagafake.Devices
	bookings *sagafake.Bookings
	users    *sagafake.Users
	payments *sagafake.Payments
	commands *sagafake.Commands
	alerts   *sagafake.Alerts
	clock    *clock.MockClock
	logger   *slog.Logger
}

func newEnv(deviceOpts ...func(*builder.DeviceBuilder)) *env {
	db := builder.NewDeviceBuilder()
	for _, opt := range deviceOpts {
		db.With(opt)
	}
	d := db.BuildDomain()
	u, err := builder.NewUserBuilder().BuildDomain()
	if err != nil {
		panic(err)
	}

	devices := sagafake.NewDevices(d)
	return &env{
		device:   d,
		user:     u,
		devices:  devices,
		bookings: sagafake.NewBookings(devices),
		users:    sagafake.NewUsers(u),
		payments: sagafake.NewPayments(),
		commands: &sagafake.Commands{},
		alerts:   &sagafake.Alerts{},
		clock:    clock.NewMockClock(epoch),
		logger:   slog.New(slog.DiscardHandler),
	}
}

func (e *env) coordinator() *saga.Coordinator {
	return saga.NewCoordinator(e.devices, e.users, e.payments, e.bookings, e.alerts, e.clock, e.logger, saga.CoordinatorConfig{
		PaymentTimeout:       time.Second,
		StoreWriteAttempts:   3,
		CompensationAttempts: 5,
		RetryBaseDelay:       100 * time.Millisecond,
		CompensationTimeout:  5 * time.Second,
		Currency:             "eur",
	})
}

func (e *env) watcher() *saga.Watcher {
	return saga.NewWatcher(e.devices, e.clock, e.logger)
}

func (e *env) reconciler() *saga.Reconciler {
	return saga.NewReconciler(e.devices, e.bookings, e.commands, e.watcher(), e.alerts, e.clock, e.logger, saga.ReconcilerConfig{
		Unlock:          saga.DefaultUnlockPolicy(),
		ReleaseAttempts: 5,
		RetryBaseDelay:  100 * time.Millisecond,
	})
}

func (e *env) params() saga.CreateBookingParams {
	return saga.CreateBookingParams{
		DeviceID:         e.device.ID(),
		UserID:           e.user.ID(),
		PaymentMethodRef: "pm_card4242",
		Timeslot:         builder.NewBookingBuilder().Timeslot,
	}
}

// stalledClock never fires, so only context cancellation ends a wait.
type stalledClock struct {
	now time.Time
}

func (c stalledClock) Now() time.Time { return c.now }

func (c stalledClock) After(time.Duration) <-chan time.Time { return nil }
