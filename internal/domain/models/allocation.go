package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationStatus is the approval state of a shared product record.
type AllocationStatus string

const (
	AllocationPending  AllocationStatus = "PENDING"
	AllocationApproved AllocationStatus = "APPROVED"
	AllocationRejected AllocationStatus = "REJECTED"
)

// ParseAllocationStatus maps a wire status onto a known value, defaulting to PENDING.
func ParseAllocationStatus(s string) AllocationStatus {
	switch AllocationStatus(s) {
	case AllocationApproved, AllocationRejected:
		return AllocationStatus(s)
	default:
		return AllocationPending
	}
}

// Destination is one station receiving part of a shared quantity.
type Destination struct {
	StationID string          `json:"stationId,omitempty"`
	Station   string          `json:"station"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AllocationRecord is a shared product transaction in canonical form.
type AllocationRecord struct {
	ID             string           `json:"id"`
	Date           string           `json:"date"`
	Product        string           `json:"product"`
	Destinations   []Destination    `json:"destinations"`
	Rate           decimal.Decimal  `json:"rate"`
	SalesRate      decimal.Decimal  `json:"salesRate"`
	TotalQuantity  decimal.Decimal  `json:"totalQuantity"`
	TotalCost      decimal.Decimal  `json:"totalCost"`
	TotalSales     decimal.Decimal  `json:"totalSales"`
	ExpectedProfit decimal.Decimal  `json:"expectedProfit"`
	Status         AllocationStatus `json:"status"`
	CreatedBy      string           `json:"createdBy"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// HasStation reports whether any destination matches the station id or name.
func (r AllocationRecord) HasStation(station string) bool {
	for _, d := range r.Destinations {
		if d.StationID == station || d.Station == station {
			return true
		}
	}
	return false
}

// ShareRequest is a validated allocation ready to be submitted.
type ShareRequest struct {
	Date           string          `json:"date"`
	Product        string          `json:"product"`
	Destinations   []Destination   `json:"destinations"`
	Rate           decimal.Decimal `json:"rate"`
	SalesRate      decimal.Decimal `json:"salesRate"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	ExpectedProfit decimal.Decimal `json:"expectedProfit"`
	CreatedBy      string          `json:"createdBy"`
}
