package converter

import (
	"grillbox/internal/domain/device"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
)

func DeviceToDomain(row sqlc.Devices) *device.Device {
	return device.ReconstructDevice(
		row.ID,
		row.ExternalID,
		row.Number,
		device.Flags{
			Blocked: row.Blocked,
			Locked:  row.Locked,
			Closed:  row.Closed,
		},
		pgconv.UUIDFromPgtype(row.ReservedBy),
		device.Telemetry{
			WifiSignal:    pgconv.Int32PtrFromPgtype(row.WifiSignal),
			Plate1Temp:    pgconv.Float64PtrFromPgtype(row.Plate1Temp),
			Plate2Temp:    pgconv.Float64PtrFromPgtype(row.Plate2Temp),
			Plate1SetTemp: pgconv.Float64PtrFromPgtype(row.Plate1SetTemp),
			Plate2SetTemp: pgconv.Float64PtrFromPgtype(row.Plate2SetTemp),
		},
		pgconv.TimeFromPgtype(row.PublishTime),
		device.Location{Latitude: row.Latitude, Longitude: row.Longitude},
		device.Address{
			Name:        row.AddressName,
			Country:     row.Country,
			City:        row.City,
			PostalCode:  row.PostalCode,
			Street:      row.Street,
			HouseNumber: row.HouseNumber,
		},
	)
}

// DeviceStateToInfra carries only device-reported fields; blocked is never written here.
func DeviceStateToInfra(d *device.Device) sqlc.UpdateDeviceStateParams {
	flags := d.Flags()
	t := d.Telemetry()
	return sqlc.UpdateDeviceStateParams{
		ID:            d.ID(),
		Locked:        flags.Locked,
		Closed:        flags.Closed,
		WifiSignal:    pgconv.Int32PtrToPgtype(t.WifiSignal),
		Plate1Temp:    pgconv.Float64PtrToPgtype(t.Plate1Temp),
		Plate2Temp:    pgconv.Float64PtrToPgtype(t.Plate2Temp),
		Plate1SetTemp: pgconv.Float64PtrToPgtype(t.Plate1SetTemp),
		Plate2SetTemp: pgconv.Float64PtrToPgtype(t.Plate2SetTemp),
		PublishTime:   pgconv.TimeToPgtype(d.PublishTime()),
	}
}
