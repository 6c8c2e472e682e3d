// Package mockdata provides the fixed offline dataset and the in-memory
// collections mutated while the station API is unreachable.
package mockdata

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/fuelshare/internal/domain/amount"
	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/records"
)

//go:embed dataset.yaml
var embeddedDataset []byte

// Dataset is a full set of tanks and allocation records.
type Dataset struct {
	Tanks       []models.Tank
	Allocations []models.AllocationRecord
}

type yamlDataset struct {
	Tanks []struct {
		ID            string `yaml:"id"`
		Name          string `yaml:"name"`
		Station       string `yaml:"station"`
		StationID     string `yaml:"stationId"`
		FuelType      string `yaml:"fuelType"`
		Capacity      string `yaml:"capacity"`
		CurrentStock  string `yaml:"currentStock"`
		PricePerLiter string `yaml:"pricePerLiter"`
	} `yaml:"tanks"`
	Allocations []struct {
		ID           string `yaml:"id"`
		Date         string `yaml:"date"`
		Product      string `yaml:"product"`
		Destinations []struct {
			StationID string `yaml:"stationId"`
			Station   string `yaml:"station"`
			Quantity  string `yaml:"quantity"`
		} `yaml:"destinations"`
		Rate      string `yaml:"rate"`
		SalesRate string `yaml:"salesRate"`
		Status    string `yaml:"status"`
		CreatedBy string `yaml:"createdBy"`
		CreatedAt string `yaml:"createdAt"`
	} `yaml:"allocations"`
}

// Default returns the embedded dataset.
func Default() (Dataset, error) {
	return Parse(embeddedDataset)
}

// Load reads a dataset from a YAML file.
func Load(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read mock dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset.
func Parse(data []byte) (Dataset, error) {
	var raw yamlDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Dataset{}, fmt.Errorf("decode mock dataset: %w", err)
	}

	ds := Dataset{
		Tanks:       make([]models.Tank, 0, len(raw.Tanks)),
		Allocations: make([]models.AllocationRecord, 0, len(raw.Allocations)),
	}

	for _, t := range raw.Tanks {
		stationID := t.StationID
		if stationID == "" {
			stationID = t.Station
		}
		ds.Tanks = append(ds.Tanks, models.Tank{
			ID:            t.ID,
			Name:          t.Name,
			Station:       t.Station,
			StationID:     stationID,
			FuelType:      t.FuelType,
			Capacity:      amount.ParseOrZero(t.Capacity),
			CurrentStock:  amount.ParseOrZero(t.CurrentStock),
			PricePerLiter: amount.ParseOrZero(t.PricePerLiter),
		}.WithStatus())
	}

	for _, a := range raw.Allocations {
		destinations := make([]models.Destination, 0, len(a.Destinations))
		for _, d := range a.Destinations {
			destinations = append(destinations, models.Destination{
				StationID: d.StationID,
				Station:   d.Station,
				Quantity:  amount.ParseOrZero(d.Quantity),
			})
		}
		createdAt, _ := time.Parse(time.RFC3339, a.CreatedAt)
		ds.Allocations = append(ds.Allocations, records.WithTotals(models.AllocationRecord{
			ID:           a.ID,
			Date:         records.NormalizeDate(a.Date),
			Product:      a.Product,
			Destinations: destinations,
			Rate:         amount.ParseOrZero(a.Rate),
			SalesRate:    amount.ParseOrZero(a.SalesRate),
			Status:       models.ParseAllocationStatus(a.Status),
			CreatedBy:    a.CreatedBy,
			CreatedAt:    createdAt,
		}))
	}

	return ds, nil
}
