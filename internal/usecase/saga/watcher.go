package saga

import (
	"context"
	"log/slog"
	"time"

	"grillbox/internal/domain/device"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
)

type UnlockPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

func DefaultUnlockPolicy() UnlockPolicy {
	return UnlockPolicy{MaxAttempts: 10, Interval: time.Second}
}

type UnlockConfirmer interface {
	ConfirmUnlock(ctx context.Context, deviceID uuid.UUID, policy UnlockPolicy) (*device.Device, error)
}

// Watcher polls the registry until the device reports itself unlocked. It only
// reads: the unlock command is sent once by the caller.
type Watcher struct {
	devices DeviceReader
	clock   clock.Clock
	logger  *slog.Logger
}

func NewWatcher(devices DeviceReader, clk clock.Clock, logger *slog.Logger) *Watcher {
	return &Watcher{devices: devices, clock: clk, logger: logger}
}

// ConfirmUnlock waits one interval before every read, so the worst case is
// MaxAttempts reads spread over MaxAttempts*Interval.
func (w *Watcher) ConfirmUnlock(ctx context.Context, deviceID uuid.UUID, policy UnlockPolicy) (*device.Device, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, errs.Wrap(ctx.Err(), "unlock confirmation cancelled")
		case <-w.clock.After(policy.Interval):
		}

		d, err := w.devices.Get(ctx, deviceID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return nil, errs.Mark(err, ErrDeviceNotFound)
			}
			// A failed read is a spent attempt, not a verdict.
			w.logger.Warn("Device read failed while confirming unlock",
				slog.String("device_id", deviceID.String()),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if !d.IsLocked() {
			w.logger.Info("Device unlock confirmed",
				slog.String("device_id", deviceID.String()),
				slog.Int("attempt", attempt))
			return d, nil
		}
	}

	err := errs.Newf("device %s still locked after %d attempts", deviceID, policy.MaxAttempts)
	if lastErr != nil {
		err = errs.Wrapf(lastErr, "device %s not confirmed unlocked after %d attempts", deviceID, policy.MaxAttempts)
	}
	return nil, errs.Mark(errs.Mark(err, ErrUnlockTimeout), errs.ErrTimeout)
}
