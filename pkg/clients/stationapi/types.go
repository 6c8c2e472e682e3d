package stationapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number is a numeric wire value that may arrive as a JSON number or a string.
type Number string

// UnmarshalJSON accepts numbers, numeric strings and null.
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(b)
	return nil
}

// MarshalJSON emits a JSON number when the value is numeric and a string otherwise.
func (n Number) MarshalJSON() ([]byte, error) {
	if _, err := decimal.NewFromString(string(n)); err == nil {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// NumberOf renders a decimal as a wire number.
func NumberOf(d decimal.Decimal) Number {
	return Number(d.String())
}

// TankRecord is a tank as exchanged with the station API.
type TankRecord struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Station       string `json:"station"`
	StationID     string `json:"stationId,omitempty"`
	FuelType      string `json:"fuelType"`
	Capacity      Number `json:"capacity"`
	CurrentStock  Number `json:"currentStock"`
	PricePerLiter Number `json:"pricePerLiter"`
	Status        string `json:"status,omitempty"`
}

// SupplyDestination is one station/quantity pair of a supply record.
type SupplyDestination struct {
	StationID string `json:"stationId,omitempty"`
	Station   string `json:"station"`
	Quantity  Number `json:"quantity"`
}

// SupplyRecord is a shared-product record as exchanged with the station API.
// It comes either with a Destinations list or with a single flattened
// Station/Quantity pair.
type SupplyRecord struct {
	ID             string              `json:"id,omitempty"`
	Date           string              `json:"date,omitempty"`
	Product        string              `json:"product,omitempty"`
	Destinations   []SupplyDestination `json:"destinations,omitempty"`
	StationID      string              `json:"stationId,omitempty"`
	Station        string              `json:"station,omitempty"`
	Quantity       Number              `json:"quantity,omitempty"`
	Rate           Number              `json:"rate,omitempty"`
	SalesRate      Number              `json:"salesRate,omitempty"`
	TotalQuantity  Number              `json:"totalQuantity,omitempty"`
	TotalCost      Number              `json:"totalCost,omitempty"`
	TotalSales     Number              `json:"totalSales,omitempty"`
	ExpectedProfit Number              `json:"expectedProfit,omitempty"`
	Status         string              `json:"status,omitempty"`
	CreatedBy      string              `json:"createdBy,omitempty"`
	CreatedAt      string              `json:"createdAt,omitempty"`
}

// PriceUpdateRequest is the payload of POST /price-updates.
type PriceUpdateRequest struct {
	UpdateScope        string   `json:"updateScope"`
	TargetTankID       *string  `json:"targetTankId"`
	TargetStation      []string `json:"targetStation"`
	FuelType           string   `json:"fuelType"`
	NewPrice           Number   `json:"newPrice"`
	EffectiveDate      string   `json:"effectiveDate"`
	Reason             string   `json:"reason"`
	UpdatedBy          string   `json:"updatedBy"`
	AffectedTankIDs    []string `json:"affectedTankIds"`
	TotalAffectedTanks int      `json:"totalAffectedTanks"`
}

// PriceUpdateResponse is the result of POST /price-updates.
type PriceUpdateResponse struct {
	Success       bool     `json:"success"`
	UpdatedCount  int      `json:"updatedCount"`
	AffectedTanks []string `json:"affectedTanks"`
	Message       string   `json:"message,omitempty"`
}
