package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelTotals aggregates stock for one fuel type.
type FuelTotals struct {
	FuelType string          `json:"fuelType"`
	Tanks    int             `json:"tanks"`
	Capacity decimal.Decimal `json:"capacity"`
	Stock    decimal.Decimal `json:"stock"`
}

// StockSnapshot captures stock levels across all stations at a point in time.
type StockSnapshot struct {
	TakenAt  time.Time          `json:"takenAt"`
	Source   string             `json:"source"`
	Fuels    []FuelTotals       `json:"fuels"`
	Statuses map[TankStatus]int `json:"statuses"`
	LowStock []string           `json:"lowStock"`
}

// PriceChangeAudit is the persisted trace of a committed price change.
type PriceChangeAudit struct {
	CommittedAt  time.Time      `json:"committedAt"`
	ChangeSet    PriceChangeSet `json:"changeSet"`
	Reason       string         `json:"reason"`
	UpdatedBy    string         `json:"updatedBy"`
	UpdatedCount int            `json:"updatedCount"`
	Offline      bool           `json:"offline"`
}
