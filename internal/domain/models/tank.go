package models

import "github.com/shopspring/decimal"

// TankStatus classifies a tank by how full it is.
type TankStatus string

const (
	TankCritical TankStatus = "Critical"
	TankLow      TankStatus = "Low"
	TankGood     TankStatus = "Good"
)

var (
	criticalRatio = decimal.NewFromFloat(0.2)
	lowRatio      = decimal.NewFromFloat(0.4)
)

// Tank is a single fuel inventory unit at a station.
type Tank struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Station       string          `json:"station"`
	StationID     string          `json:"stationId"`
	FuelType      string          `json:"fuelType"`
	Capacity      decimal.Decimal `json:"capacity"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	PricePerLiter decimal.Decimal `json:"pricePerLiter"`
	Status        TankStatus      `json:"status"`
}

// StatusFor derives the tank status from its fill ratio.
func StatusFor(currentStock, capacity decimal.Decimal) TankStatus {
	if !capacity.IsPositive() {
		return TankCritical
	}
	ratio := currentStock.Div(capacity)
	switch {
	case ratio.LessThan(criticalRatio):
		return TankCritical
	case ratio.LessThan(lowRatio):
		return TankLow
	default:
		return TankGood
	}
}

// WithStatus returns a copy of t with Status recomputed.
func (t Tank) WithStatus() Tank {
	t.Status = StatusFor(t.CurrentStock, t.Capacity)
	return t
}

// StationKey is the stable identity of the tank's station.
func (t Tank) StationKey() string {
	if t.StationID != "" {
		return t.StationID
	}
	return t.Station
}

// TankInput carries the editable fields of a tank.
type TankInput struct {
	Name          string          `json:"name"`
	Station       string          `json:"station"`
	StationID     string          `json:"stationId"`
	FuelType      string          `json:"fuelType"`
	Capacity      decimal.Decimal `json:"capacity"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	PricePerLiter decimal.Decimal `json:"pricePerLiter"`
}

// Apply copies the input fields onto t and recomputes its status.
func (in TankInput) Apply(t Tank) Tank {
	t.Name = in.Name
	t.Station = in.Station
	t.StationID = in.StationID
	t.FuelType = in.FuelType
	t.Capacity = in.Capacity
	t.CurrentStock = in.CurrentStock
	t.PricePerLiter = in.PricePerLiter
	return t.WithStatus()
}

// Station is a destination outlet, identified by a stable id.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
