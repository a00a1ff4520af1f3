package readstore

import (
	"context"

	"github.com/google/uuid"

	"grillbox/internal/infra"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
	"grillbox/internal/usecase/queries"
)

type DeviceReadQueries interface {
	GetDevice(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Devices, error)
	ListDevices(ctx context.Context, db sqlc.DBTX) ([]sqlc.Devices, error)
}

type DeviceReadStore struct {
	queries DeviceReadQueries
	db      sqlc.DBTX
}

func NewDeviceReadStore(queries DeviceReadQueries, db sqlc.DBTX) *DeviceReadStore {
	return &DeviceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *DeviceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DeviceView, error) {
	row, err := r.queries.GetDevice(ctx, r.db, id)
	if err != nil {
		return nil, infra.NotFoundOr("failed to find device by ID", err)
	}
	return toDeviceView(row), nil
}

func (r *DeviceReadStore) List(ctx context.Context) ([]*queries.DeviceView, error) {
	rows, err := r.queries.ListDevices(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list devices", err)
	}
	views := make([]*queries.DeviceView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toDeviceView(row))
	}
	return views, nil
}

func toDeviceView(row sqlc.Devices) *queries.DeviceView {
	return &queries.DeviceView{
		ID:            row.ID,
		ExternalID:    row.ExternalID,
		Number:        row.Number,
		Blocked:       row.Blocked,
		Locked:        row.Locked,
		Closed:        row.Closed,
		WifiSignal:    pgconv.Int32PtrFromPgtype(row.WifiSignal),
		Plate1Temp:    pgconv.Float64PtrFromPgtype(row.Plate1Temp),
		Plate2Temp:    pgconv.Float64PtrFromPgtype(row.Plate2Temp),
		Plate1SetTemp: pgconv.Float64PtrFromPgtype(row.Plate1SetTemp),
		Plate2SetTemp: pgconv.Float64PtrFromPgtype(row.Plate2SetTemp),
		PublishTime:   pgconv.TimePtrFromPgtype(row.PublishTime),
		Latitude:      row.Latitude,
		Longitude:     row.Longitude,
		Address: queries.AddressView{
			Name:        row.AddressName,
			Country:     row.Country,
			City:        row.City,
			PostalCode:  row.PostalCode,
			Street:      row.Street,
			HouseNumber: row.HouseNumber,
		},
	}
}
