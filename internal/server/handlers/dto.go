package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/fuelshare/internal/domain/amount"
	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

// Numeric fields accept JSON numbers or strings; unparseable values count as zero.

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

type tankRequest struct {
	Name          string            `json:"name"`
	Station       string            `json:"station"`
	StationID     string            `json:"stationId"`
	FuelType      string            `json:"fuelType"`
	Capacity      stationapi.Number `json:"capacity"`
	CurrentStock  stationapi.Number `json:"currentStock"`
	PricePerLiter stationapi.Number `json:"pricePerLiter"`
}

func (r tankRequest) input() models.TankInput {
	return models.TankInput{
		Name:          r.Name,
		Station:       r.Station,
		StationID:     r.StationID,
		FuelType:      r.FuelType,
		Capacity:      number(r.Capacity),
		CurrentStock:  number(r.CurrentStock),
		PricePerLiter: number(r.PricePerLiter),
	}
}

type refillRequest struct {
	Liters stationapi.Number `json:"liters"`
}

type destinationRequest struct {
	StationID string            `json:"stationId"`
	Station   string            `json:"station"`
	Quantity  stationapi.Number `json:"quantity"`
}

type allocationRequest struct {
	Date         string               `json:"date"`
	Product      string               `json:"product"`
	Rate         stationapi.Number    `json:"rate"`
	SalesRate    stationapi.Number    `json:"salesRate"`
	Status       string               `json:"status"`
	Destinations []destinationRequest `json:"destinations"`
}

func (r allocationRequest) record(id string) models.AllocationRecord {
	destinations := make([]models.Destination, 0, len(r.Destinations))
	for _, d := range r.Destinations {
		destinations = append(destinations, models.Destination{
			StationID: d.StationID,
			Station:   d.Station,
			Quantity:  number(d.Quantity),
		})
	}

	rec := models.AllocationRecord{
		ID:           id,
		Date:         r.Date,
		Product:      r.Product,
		Destinations: destinations,
		Rate:         number(r.Rate),
		SalesRate:    number(r.SalesRate),
	}
	if r.Status != "" {
		rec.Status = models.ParseAllocationStatus(r.Status)
	}
	return rec
}

type priceRequest struct {
	FuelType       string            `json:"fuelType"`
	NewPrice       stationapi.Number `json:"newPrice"`
	Scope          string            `json:"scope"`
	SelectedTankID string            `json:"selectedTankId"`
	EffectiveDate  string            `json:"effectiveDate"`
	Reason         string            `json:"reason"`
}

func number(n stationapi.Number) decimal.Decimal {
	return amount.ParseOrZero(string(n))
}
