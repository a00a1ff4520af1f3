package device

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyBlocked   = errors.New("device is already blocked")
	ErrMissingAddress   = errors.New("device has no external identifier")
	ErrStaleStateReport = errors.New("state report is older than the stored state")
)

type Device struct {
	id          uuid.UUID
	externalID  string
	number      string
	flags       Flags
	reservedBy  uuid.UUID
	telemetry   Telemetry
	publishTime time.Time
	location    Location
	address     Address
}

func ReconstructDevice(
	id uuid.UUID,
	externalID, number string,
	flags Flags,
	reservedBy uuid.UUID,
	telemetry Telemetry,
	publishTime time.Time,
	location Location,
	address Address,
) *Device {
	return &Device{
		id:          id,
		externalID:  externalID,
		number:      number,
		flags:       flags,
		reservedBy:  reservedBy,
		telemetry:   telemetry,
		publishTime: publishTime,
		location:    location,
		address:     address,
	}
}

// CanReserve fails when another booking already holds the device.
func (d *Device) CanReserve() error {
	if d.flags.Blocked {
		return ErrAlreadyBlocked
	}
	return nil
}

// IsReservedBy reports whether holder owns the current reservation.
func (d *Device) IsReservedBy(holder uuid.UUID) bool {
	return d.flags.Blocked && holder != uuid.Nil && d.reservedBy == holder
}

// CommandAddress is the identifier the command channel routes unlocks to.
func (d *Device) CommandAddress() (string, error) {
	if d.externalID == "" {
		return "", ErrMissingAddress
	}
	return d.externalID, nil
}

// ApplyStateReport merges a device-reported state. The blocked flag is never
// touched here: it belongs to the booking workflow.
func (d *Device) ApplyStateReport(r StateReport) error {
	if !d.publishTime.IsZero() && r.PublishedAt.Before(d.publishTime) {
		return ErrStaleStateReport
	}
	if r.Locked != nil {
		d.flags.Locked = *r.Locked
	}
	if r.Closed != nil {
		d.flags.Closed = *r.Closed
	}
	t := r.Telemetry
	if t.WifiSignal != nil {
		d.telemetry.WifiSignal = t.WifiSignal
	}
	if t.Plate1Temp != nil {
		d.telemetry.Plate1Temp = t.Plate1Temp
	}
	if t.Plate2Temp != nil {
		d.telemetry.Plate2Temp = t.Plate2Temp
	}
	if t.Plate1SetTemp != nil {
		d.telemetry.Plate1SetTemp = t.Plate1SetTemp
	}
	if t.Plate2SetTemp != nil {
		d.telemetry.Plate2SetTemp = t.Plate2SetTemp
	}
	d.publishTime = r.PublishedAt
	return nil
}

func (d *Device) IsBlocked() bool { return d.flags.Blocked }
func (d *Device) IsLocked() bool  { return d.flags.Locked }
func (d *Device) IsClosed() bool  { return d.flags.Closed }

func (d *Device) ID() uuid.UUID          { return d.id }
func (d *Device) ExternalID() string     { return d.externalID }
func (d *Device) Number() string         { return d.number }
func (d *Device) Flags() Flags           { return d.flags }
func (d *Device) ReservedBy() uuid.UUID  { return d.reservedBy }
func (d *Device) Telemetry() Telemetry   { return d.telemetry }
func (d *Device) PublishTime() time.Time { return d.publishTime }
func (d *Device) Location() Location     { return d.location }
func (d *Device) Address() Address       { return d.address }
