// Package records converts station API payloads into the canonical domain
// shapes and back. All shape detection happens here, once, at the boundary.
package records

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/fuelshare/internal/domain/amount"
	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

type shape int

const (
	shapeEmpty shape = iota
	shapeList
	shapeFlat
)

func shapeOf(raw stationapi.SupplyRecord) shape {
	switch {
	case raw.Destinations != nil:
		return shapeList
	case raw.Station != "" && raw.Quantity != "":
		return shapeFlat
	default:
		return shapeEmpty
	}
}

// Normalize turns any supply record shape into a canonical allocation record.
// It never fails; unusable fields degrade to zero values.
func Normalize(raw stationapi.SupplyRecord) models.AllocationRecord {
	var destinations []models.Destination

	switch shapeOf(raw) {
	case shapeList:
		destinations = make([]models.Destination, 0, len(raw.Destinations))
		for _, d := range raw.Destinations {
			destinations = append(destinations, destination(d.StationID, d.Station, d.Quantity))
		}
	case shapeFlat:
		destinations = []models.Destination{destination(raw.StationID, raw.Station, raw.Quantity)}
	default:
		destinations = []models.Destination{}
	}

	rec := models.AllocationRecord{
		ID:             raw.ID,
		Date:           NormalizeDate(raw.Date),
		Product:        raw.Product,
		Destinations:   destinations,
		Rate:           parse(raw.Rate),
		SalesRate:      parse(raw.SalesRate),
		TotalQuantity:  parse(raw.TotalQuantity),
		TotalCost:      parse(raw.TotalCost),
		TotalSales:     parse(raw.TotalSales),
		ExpectedProfit: parse(raw.ExpectedProfit),
		Status:         models.ParseAllocationStatus(raw.Status),
		CreatedBy:      raw.CreatedBy,
		CreatedAt:      parseTimestamp(raw.CreatedAt),
	}

	if rec.TotalQuantity.IsZero() {
		rec = WithTotals(rec)
	}
	return rec
}

// NormalizeAll normalizes a list of supply records.
func NormalizeAll(raw []stationapi.SupplyRecord) []models.AllocationRecord {
	out := make([]models.AllocationRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r))
	}
	return out
}

// WithTotals recomputes the derived totals of rec from its destinations and rates.
func WithTotals(rec models.AllocationRecord) models.AllocationRecord {
	totals := sharing.DestinationTotals(rec.Destinations, rec.Rate, rec.SalesRate)
	rec.TotalQuantity = totals.TotalQty
	rec.TotalCost = totals.AmountCost
	rec.TotalSales = totals.AmountSales
	rec.ExpectedProfit = totals.ExpectedProfit
	return rec
}

// Flatten splits a share request into one wire record per destination, the shape
// POST /supply accepts.
func Flatten(req models.ShareRequest, createdAt time.Time) []stationapi.SupplyRecord {
	out := make([]stationapi.SupplyRecord, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		totals := sharing.TotalsFor(d.Quantity, req.Rate, req.SalesRate)
		out = append(out, stationapi.SupplyRecord{
			Date:           req.Date,
			Product:        req.Product,
			StationID:      d.StationID,
			Station:        d.Station,
			Quantity:       stationapi.NumberOf(d.Quantity),
			Rate:           stationapi.NumberOf(req.Rate),
			SalesRate:      stationapi.NumberOf(req.SalesRate),
			TotalQuantity:  stationapi.NumberOf(totals.TotalQty),
			TotalCost:      stationapi.NumberOf(totals.AmountCost),
			TotalSales:     stationapi.NumberOf(totals.AmountSales),
			ExpectedProfit: stationapi.NumberOf(totals.ExpectedProfit),
			Status:         string(models.AllocationPending),
			CreatedBy:      req.CreatedBy,
			CreatedAt:      createdAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// ToWire renders a canonical record in the list shape used by PUT /supply/:id.
func ToWire(rec models.AllocationRecord) stationapi.SupplyRecord {
	destinations := make([]stationapi.SupplyDestination, 0, len(rec.Destinations))
	for _, d := range rec.Destinations {
		destinations = append(destinations, stationapi.SupplyDestination{
			StationID: d.StationID,
			Station:   d.Station,
			Quantity:  stationapi.NumberOf(d.Quantity),
		})
	}

	out := stationapi.SupplyRecord{
		ID:             rec.ID,
		Date:           rec.Date,
		Product:        rec.Product,
		Destinations:   destinations,
		Rate:           stationapi.NumberOf(rec.Rate),
		SalesRate:      stationapi.NumberOf(rec.SalesRate),
		TotalQuantity:  stationapi.NumberOf(rec.TotalQuantity),
		TotalCost:      stationapi.NumberOf(rec.TotalCost),
		TotalSales:     stationapi.NumberOf(rec.TotalSales),
		ExpectedProfit: stationapi.NumberOf(rec.ExpectedProfit),
		Status:         string(rec.Status),
		CreatedBy:      rec.CreatedBy,
	}
	if !rec.CreatedAt.IsZero() {
		out.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// TankFromWire converts a wire tank; the status is always derived locally.
func TankFromWire(raw stationapi.TankRecord) models.Tank {
	stationID := raw.StationID
	if stationID == "" {
		stationID = raw.Station
	}
	return models.Tank{
		ID:            raw.ID,
		Name:          raw.Name,
		Station:       raw.Station,
		StationID:     stationID,
		FuelType:      raw.FuelType,
		Capacity:      parse(raw.Capacity),
		CurrentStock:  parse(raw.CurrentStock),
		PricePerLiter: parse(raw.PricePerLiter),
	}.WithStatus()
}

// TanksFromWire converts a list of wire tanks.
func TanksFromWire(raw []stationapi.TankRecord) []models.Tank {
	out := make([]models.Tank, 0, len(raw))
	for _, r := range raw {
		out = append(out, TankFromWire(r))
	}
	return out
}

// TankToWire converts a tank into its wire form.
func TankToWire(t models.Tank) stationapi.TankRecord {
	return stationapi.TankRecord{
		ID:            t.ID,
		Name:          t.Name,
		Station:       t.Station,
		StationID:     t.StationID,
		FuelType:      t.FuelType,
		Capacity:      stationapi.NumberOf(t.Capacity),
		CurrentStock:  stationapi.NumberOf(t.CurrentStock),
		PricePerLiter: stationapi.NumberOf(t.PricePerLiter),
		Status:        string(models.StatusFor(t.CurrentStock, t.Capacity)),
	}
}

func destination(stationID, station string, quantity stationapi.Number) models.Destination {
	return models.Destination{StationID: stationID, Station: station, Quantity: parse(quantity)}
}

func parse(n stationapi.Number) decimal.Decimal {
	return amount.ParseOrZero(string(n))
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
