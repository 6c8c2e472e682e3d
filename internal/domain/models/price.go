package models

import "github.com/shopspring/decimal"

// PriceScope is the breadth of tanks a price change applies to.
type PriceScope string

const (
	ScopeSelected PriceScope = "selected"
	ScopeStation  PriceScope = "station"
	ScopeAll      PriceScope = "all"
)

// AffectedTank is one tank touched by a price change.
type AffectedTank struct {
	TankID        string          `json:"tankId"`
	TankName      string          `json:"tankName"`
	Station       string          `json:"station"`
	StationID     string          `json:"stationId"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	NewPrice      decimal.Decimal `json:"newPrice"`
	Delta         decimal.Decimal `json:"delta"`
	PercentChange decimal.Decimal `json:"percentChange"`
}

// PriceChangeSet is the derived preview of a price change.
type PriceChangeSet struct {
	FuelType string          `json:"fuelType"`
	NewPrice decimal.Decimal `json:"newPrice"`
	Scope    PriceScope      `json:"scope"`
	Affected []AffectedTank  `json:"affected"`
}

// TankIDs lists the ids of the affected tanks in order.
func (s PriceChangeSet) TankIDs() []string {
	ids := make([]string, 0, len(s.Affected))
	for _, a := range s.Affected {
		ids = append(ids, a.TankID)
	}
	return ids
}

// PriceChangeRequest is an operator's request to propagate a new price.
type PriceChangeRequest struct {
	FuelType       string          `json:"fuelType"`
	NewPrice       decimal.Decimal `json:"newPrice"`
	Scope          PriceScope      `json:"scope"`
	SelectedTankID string          `json:"selectedTankId"`
	EffectiveDate  string          `json:"effectiveDate"`
	Reason         string          `json:"reason"`
	UpdatedBy      string          `json:"updatedBy"`
}

// PriceChangeResult reports a committed price change.
type PriceChangeResult struct {
	ChangeSet    PriceChangeSet `json:"changeSet"`
	UpdatedCount int            `json:"updatedCount"`
	Offline      bool           `json:"offline"`
}
