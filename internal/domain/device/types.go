package device

import "time"

type Flags struct {
	Blocked bool
	Locked  bool
	Closed  bool
}

type Telemetry struct {
	WifiSignal    *int32
	Plate1Temp    *float64
	Plate2Temp    *float64
	Plate1SetTemp *float64
	Plate2SetTemp *float64
}

type Location struct {
	Latitude  float64
	Longitude float64
}

type Address struct {
	Name        string
	Country     string
	City        string
	PostalCode  string
	Street      string
	HouseNumber string
}

// StateReport is what a device publishes about itself. Nil fields were not
// reported and keep their stored value.
type StateReport struct {
	Locked      *bool
	Closed      *bool
	Telemetry   Telemetry
	PublishedAt time.Time
}
