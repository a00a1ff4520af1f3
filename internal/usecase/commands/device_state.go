package commands

import (
	"context"
	"log/slog"
	"strings"

	"grillbox/internal/domain/device"
	"grillbox/internal/infra"
	"grillbox/internal/pkg/errs"
)

var (
	ErrUnknownDevice      = errs.Mark(errs.New("state report for unknown device"), errs.ErrNotFound)
	ErrInvalidStateReport = errs.Mark(errs.New("invalid state report"), errs.ErrDomainValidation)
)

type StateReportResult string

const (
	StateReportApplied StateReportResult = "applied"
	StateReportStale   StateReportResult = "stale"
)

type DeviceStateCommands interface {
	ApplyStateReport(ctx context.Context, externalID string, report device.StateReport) (StateReportResult, error)
}

type deviceStateUseCaseImpl struct {
	devices   DeviceStateWriter
	telemetry TelemetryRecorder
	logger    *slog.Logger
}

func NewDeviceStateUseCase(devices DeviceStateWriter, telemetry TelemetryRecorder, logger *slog.Logger) DeviceStateCommands {
	return &deviceStateUseCaseImpl{devices: devices, telemetry: telemetry, logger: logger}
}

// ApplyStateReport stores what the device says about itself. Reports older
// than the stored publish time are dropped so redelivered messages cannot
// roll the state back.
func (uc *deviceStateUseCaseImpl) ApplyStateReport(ctx context.Context, externalID string, report device.StateReport) (StateReportResult, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" || report.PublishedAt.IsZero() {
		return "", ErrInvalidStateReport
	}

	d, err := uc.devices.ApplyStateReport(ctx, externalID, report)
	if err != nil {
		switch {
		case errs.Is(err, device.ErrStaleStateReport):
			uc.logger.Debug("Dropped stale device state report",
				"external_id", externalID,
				"published_at", report.PublishedAt)
			return StateReportStale, nil
		case infra.IsKind(err, infra.KindNotFound):
			return "", errs.Wrapf(ErrUnknownDevice, "external id %q", externalID)
		default:
			return "", errs.Wrap(err, "failed to apply device state report")
		}
	}

	uc.telemetry.Record(ctx, d)
	return StateReportApplied, nil
}
