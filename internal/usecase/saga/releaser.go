package saga

import (
	"context"
	"log/slog"
	"time"

	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/retry"
)

// SessionReleaser returns devices to the pool once the booking holding them
// no longer does.
type SessionReleaser struct {
	devices  DeviceRegistry
	bookings BookingStore
	clock    clock.Clock
	logger   *slog.Logger
	policy   retry.Policy
}

func NewSessionReleaser(devices DeviceRegistry, bookings BookingStore, clk clock.Clock, logger *slog.Logger, policy retry.Policy) *SessionReleaser {
	return &SessionReleaser{devices: devices, bookings: bookings, clock: clk, logger: logger, policy: policy}
}

// ReleaseExpired unblocks every device whose reservation belongs to a booking
// that no longer holds it: a payed session past its end or a failed payment
// whose release did not go through. Reservations of attempts that have no
// booking yet are never touched; those belong to the coordinator and the
// reconciler.
func (r *SessionReleaser) ReleaseExpired(ctx context.Context) (int, error) {
	holders, err := r.bookings.ReservationHolders(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "failed to list reservation holders")
	}

	now := r.clock.Now()
	released := 0
	for _, b := range holders {
		if b.HoldsDeviceAt(now) {
			continue
		}
		if err := releaseDevice(ctx, r.devices, r.clock, r.policy, b.DeviceID(), b.ID()); err != nil {
			r.logger.Error("Failed to release device after session end",
				slog.String("device_id", b.DeviceID().String()),
				slog.String("booking_id", b.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		released++
	}
	if released > 0 {
		r.logger.Info("Released devices after session end", slog.Int("count", released))
	}
	return released, nil
}

// Run calls ReleaseExpired every interval until ctx is done.
func (r *SessionReleaser) Run(ctx context.Context, interval time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.clock.After(interval):
		}
		if _, err := r.ReleaseExpired(ctx); err != nil {
			r.logger.Error("Session release sweep failed", slog.String("error", err.Error()))
		}
	}
}
