package response

import (
	"time"

	"github.com/google/uuid"

	"grillbox/internal/usecase/queries"
)

type AddressResponse struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
}

type DeviceResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Blocked       bool            `json:"blocked"`
	Locked        bool            `json:"locked"`
	Closed        bool            `json:"closed"`
	WifiSignal    *int32          `json:"wifiSignal,omitempty"`
	Plate1Temp    *float64        `json:"plate1Temp,omitempty"`
	Plate2Temp    *float64        `json:"plate2Temp,omitempty"`
	Plate1SetTemp *float64        `json:"plate1SetTemp,omitempty"`
	Plate2SetTemp *float64        `json:"plate2SetTemp,omitempty"`
	PublishTime   *time.Time      `json:"publishTime,omitempty"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Address       AddressResponse `json:"address"`
}

// FromDeviceView leaves out the external identifier: it addresses the
// command channel and is not shown to callers.
func FromDeviceView(v *queries.DeviceView) *DeviceResponse {
	return &DeviceResponse{
		ID:            v.ID,
		Number:        v.Number,
		Blocked:       v.Blocked,
		Locked:        v.Locked,
		Closed:        v.Closed,
		WifiSignal:    v.WifiSignal,
		Plate1Temp:    v.Plate1Temp,
		Plate2Temp:    v.Plate2Temp,
		Plate1SetTemp: v.Plate1SetTemp,
		Plate2SetTemp: v.Plate2SetTemp,
		PublishTime:   v.PublishTime,
		Latitude:      v.Latitude,
		Longitude:     v.Longitude,
		Address: AddressResponse{
			Name:        v.Address.Name,
			Country:     v.Address.Country,
			City:        v.Address.City,
			PostalCode:  v.Address.PostalCode,
			Street:      v.Address.Street,
			HouseNumber: v.Address.HouseNumber,
		},
	}
}

func FromDeviceViews(views []*queries.DeviceView) []*DeviceResponse {
	out := make([]*DeviceResponse, len(views))
	for i, v := range views {
		out[i] = FromDeviceView(v)
	}
	return out
}
