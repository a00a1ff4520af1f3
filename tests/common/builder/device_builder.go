//go:build unit || e2e

package builder

import (
	"time"

	"grillbox/internal/domain/device"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
	"grillbox/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DeviceBuilder struct {
	ID          uuid.UUID
	ExternalID  string
	Number      string
	Blocked     bool
	Locked      bool
	Closed      bool
	ReservedBy  uuid.UUID
	WifiSignal  *int32
	Plate1Temp  *float64
	PublishTime time.Time
	Latitude    float64
	Longitude   float64
	Address     device.Address
}

func NewDeviceBuilder() *DeviceBuilder {
	wifi := int32(-61)
	temp := 21.5
	return &DeviceBuilder{
		ID:          uuid.New(),
		ExternalID:  "gb-0001",
		Number:      "1",
		Locked:      true,
		Closed:      true,
		WifiSignal:  &wifi,
		Plate1Temp:  &temp,
		PublishTime: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Latitude:    52.52,
		Longitude:   13.405,
		Address: device.Address{
			Name:        "Tempelhofer Feld",
			Country:     "DE",
			City:        "Berlin",
			PostalCode:  "12101",
			Street:      "Tempelhofer Damm",
			HouseNumber: "1",
		},
	}
}

func (d *DeviceBuilder) With(mutate func(*DeviceBuilder)) *DeviceBuilder {
	mutate(d)
	return d
}

// Build methods
func (d *DeviceBuilder) BuildDomain() *device.Device {
	return device.ReconstructDevice(
		d.ID,
		d.ExternalID,
		d.Number,
		device.Flags{Blocked: d.Blocked, Locked: d.Locked, Closed: d.Closed},
		d.ReservedBy,
		device.Telemetry{WifiSignal: d.WifiSignal, Plate1Temp: d.Plate1Temp},
		d.PublishTime,
		device.Location{Latitude: d.Latitude, Longitude: d.Longitude},
		d.Address,
	)
}

func (d *DeviceBuilder) BuildInfra() sqlc.Devices {
	now := time.Now()
	return sqlc.Devices{
		ID:          d.ID,
		ExternalID:  d.ExternalID,
		Number:      d.Number,
		Blocked:     d.Blocked,
		Locked:      d.Locked,
		Closed:      d.Closed,
		ReservedBy:  pgconv.UUIDToPgtype(d.ReservedBy),
		WifiSignal:  pgconv.Int32PtrToPgtype(d.WifiSignal),
		Plate1Temp:  pgconv.Float64PtrToPgtype(d.Plate1Temp),
		PublishTime: pgconv.TimeToPgtype(d.PublishTime),
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		AddressName: d.Address.Name,
		Country:     d.Address.Country,
		City:        d.Address.City,
		PostalCode:  d.Address.PostalCode,
		Street:      d.Address.Street,
		HouseNumber: d.Address.HouseNumber,
		CreatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func (d *DeviceBuilder) BuildView() *queries.DeviceView {
	publish := d.PublishTime
	return &queries.DeviceView{
		ID:          d.ID,
		ExternalID:  d.ExternalID,
		Number:      d.Number,
		Blocked:     d.Blocked,
		Locked:      d.Locked,
		Closed:      d.Closed,
		WifiSignal:  d.WifiSignal,
		Plate1Temp:  d.Plate1Temp,
		PublishTime: &publish,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Address: queries.AddressView{
			Name:        d.Address.Name,
			Country:     d.Address.Country,
			City:        d.Address.City,
			PostalCode:  d.Address.PostalCode,
			Street:      d.Address.Street,
			HouseNumber: d.Address.HouseNumber,
		},
	}
}

// Fluent builder methods
func (d *DeviceBuilder) WithID(id uuid.UUID) *DeviceBuilder {
	d.ID = id
	return d
}

func (d *DeviceBuilder) WithExternalID(externalID string) *DeviceBuilder {
	d.ExternalID = externalID
	return d
}

func (d *DeviceBuilder) WithNumber(number string) *DeviceBuilder {
	d.Number = number
	return d
}

func (d *DeviceBuilder) WithPublishTime(t time.Time) *DeviceBuilder {
	d.PublishTime = t
	return d
}

// AsBlocked reserves the device for an attempt nobody else knows about.
func (d *DeviceBuilder) AsBlocked() *DeviceBuilder {
	return d.ReservedFor(uuid.New())
}

func (d *DeviceBuilder) ReservedFor(holder uuid.UUID) *DeviceBuilder {
	d.Blocked = true
	d.ReservedBy = holder
	return d
}

func (d *DeviceBuilder) AsUnlocked() *DeviceBuilder {
	d.Locked = false
	return d
}

func (d *DeviceBuilder) WithoutExternalID() *DeviceBuilder {
	d.ExternalID = ""
	return d
}
