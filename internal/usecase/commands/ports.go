package commands

import (
	"context"

	"grillbox/internal/domain/device"
	"grillbox/internal/domain/user"

	"github.com/google/uuid"
)

type DeviceStateWriter interface {
	ApplyStateReport(ctx context.Context, externalID string, report device.StateReport) (*device.Device, error)
}

// TelemetryRecorder keeps device history outside the operational store.
type TelemetryRecorder interface {
	Record(ctx context.Context, d *device.Device)
}

// CardOwnerDirectory resolves the processor customer of a user.
type CardOwnerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// CardVault keeps cards at the payment processor, keyed by customer.
type CardVault interface {
	ListCards(ctx context.Context, customerRef string) ([]Card, error)
	CreateSetup(ctx context.Context, customerRef string) (*CardSetup, error)
	// DetachCard fails with errs.ErrNotFound when the card is not saved to customerRef.
	DetachCard(ctx context.Context, customerRef, cardID string) (*Card, error)
}
