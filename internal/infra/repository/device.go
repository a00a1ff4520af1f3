package repository

import (
	"context"

	"grillbox/internal/domain/device"
	"grillbox/internal/infra"
	"grillbox/internal/infra/db"
	"grillbox/internal/infra/repository/converter"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeviceQueries interface {
	GetDevice(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Devices, error)
	GetDeviceByExternalID(ctx context.Context, db sqlc.DBTX, externalID string) (sqlc.Devices, error)
	GetDeviceByExternalIDForUpdate(ctx context.Context, db sqlc.DBTX, externalID string) (sqlc.Devices, error)
	ListDevices(ctx context.Context, db sqlc.DBTX) ([]sqlc.Devices, error)
	DeviceExists(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (bool, error)
	ConditionalSetDeviceBlocked(ctx context.Context, db sqlc.DBTX, arg sqlc.ConditionalSetDeviceBlockedParams) (sqlc.Devices, error)
	UpdateDeviceState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateDeviceStateParams) error
}

type Transactor interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx sqlc.DBTX) error) error
}

type DeviceRepository struct {
	queries DeviceQueries
	db      sqlc.DBTX
	tx      Transactor
}

func NewDeviceRepository(queries *sqlc.Queries, pool *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{
		queries: queries,
		db:      pool,
		tx:      db.NewTxRunner(pool),
	}
}

func (r *DeviceRepository) Get(ctx context.Context, id uuid.UUID) (*device.Device, error) {
	row, err := r.queries.GetDevice(ctx, r.db, id)
	if err != nil {
		return nil, infra.NotFoundOr("failed to get device", err)
	}
	return converter.DeviceToDomain(row), nil
}

func (r *DeviceRepository) GetByExternalID(ctx context.Context, externalID string) (*device.Device, error) {
	row, err := r.queries.GetDeviceByExternalID(ctx, r.db, externalID)
	if err != nil {
		return nil, infra.NotFoundOr("failed to get device by external id", err)
	}
	return converter.DeviceToDomain(row), nil
}

func (r *DeviceRepository) List(ctx context.Context) ([]*device.Device, error) {
	rows, err := r.queries.ListDevices(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list devices", err)
	}
	out := make([]*device.Device, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.DeviceToDomain(row))
	}
	return out, nil
}

// ConditionalSetBlocked is a single UPDATE ... WHERE blocked = expected; a
// release also requires holder to own the reservation. When no row matches,
// an existence check tells CONFLICT from NOT_FOUND.
func (r *DeviceRepository) ConditionalSetBlocked(ctx context.Context, id uuid.UUID, expected, newValue bool, holder uuid.UUID) (*device.Device, error) {
	row, err := r.queries.ConditionalSetDeviceBlocked(ctx, r.db, sqlc.ConditionalSetDeviceBlockedParams{
		NewValue: newValue,
		Holder:   holder,
		ID:       id,
		Expected: expected,
	})
	if err == nil {
		return converter.DeviceToDomain(row), nil
	}
	if !infra.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to set device blocked flag", err)
	}

	exists, existsErr := r.queries.DeviceExists(ctx, r.db, id)
	if existsErr != nil {
		return nil, infra.WrapRepoErr("failed to check device existence", existsErr)
	}
	if !exists {
		return nil, infra.WrapRepoErr("device not found", err, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("device blocked flag changed concurrently", err, infra.KindConflict)
}

// ApplyStateReport locks the device row, merges the report and writes back the
// device-owned columns.
func (r *DeviceRepository) ApplyStateReport(ctx context.Context, externalID string, report device.StateReport) (*device.Device, error) {
	var updated *device.Device
	err := r.tx.Within(ctx, func(ctx context.Context, tx sqlc.DBTX) error {
		row, err := r.queries.GetDeviceByExternalIDForUpdate(ctx, tx, externalID)
		if err != nil {
			return infra.NotFoundOr("failed to lock device", err)
		}

		d := converter.DeviceToDomain(row)
		if err := d.ApplyStateReport(report); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := r.queries.UpdateDeviceState(ctx, tx, converter.DeviceStateToInfra(d)); err != nil {
			return infra.WrapRepoErr("failed to update device state", err)
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
