package mongodb

import (
	"time"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

// Decimals are stored as strings to keep exact values.

type fuelTotalsDoc struct {
	FuelType string `bson:"fuel_type"`
	Tanks    int    `bson:"tanks"`
	Capacity string `bson:"capacity"`
	Stock    string `bson:"stock"`
}

type stockSnapshotDoc struct {
	TakenAt  time.Time       `bson:"taken_at"`
	Source   string          `bson:"source"`
	Fuels    []fuelTotalsDoc `bson:"fuels"`
	Statuses map[string]int  `bson:"statuses"`
	LowStock []string        `bson:"low_stock"`
}

type affectedTankDoc struct {
	TankID        string `bson:"tank_id"`
	TankName      string `bson:"tank_name"`
	Station       string `bson:"station"`
	StationID     string `bson:"station_id"`
	CurrentPrice  string `bson:"current_price"`
	NewPrice      string `bson:"new_price"`
	Delta         string `bson:"delta"`
	PercentChange string `bson:"percent_change"`
}

type priceChangeDoc struct {
	CommittedAt  time.Time         `bson:"committed_at"`
	FuelType     string            `bson:"fuel_type"`
	NewPrice     string            `bson:"new_price"`
	Scope        string            `bson:"scope"`
	Affected     []affectedTankDoc `bson:"affected"`
	Reason       string            `bson:"reason"`
	UpdatedBy    string            `bson:"updated_by"`
	UpdatedCount int               `bson:"updated_count"`
	Offline      bool              `bson:"offline"`
}

func snapshotDocument(s models.StockSnapshot) stockSnapshotDoc {
	doc := stockSnapshotDoc{
		TakenAt:  s.TakenAt,
		Source:   s.Source,
		Fuels:    make([]fuelTotalsDoc, 0, len(s.Fuels)),
		Statuses: make(map[string]int, len(s.Statuses)),
		LowStock: s.LowStock,
	}
	for _, f := range s.Fuels {
		doc.Fuels = append(doc.Fuels, fuelTotalsDoc{
			FuelType: f.FuelType,
			Tanks:    f.Tanks,
			Capacity: f.Capacity.String(),
			Stock:    f.Stock.String(),
		})
	}
	for status, n := range s.Statuses {
		doc.Statuses[string(status)] = n
	}
	return doc
}

func priceChangeDocument(a models.PriceChangeAudit) priceChangeDoc {
	doc := priceChangeDoc{
		CommittedAt:  a.CommittedAt,
		FuelType:     a.ChangeSet.FuelType,
		NewPrice:     a.ChangeSet.NewPrice.String(),
		Scope:        string(a.ChangeSet.Scope),
		Affected:     make([]affectedTankDoc, 0, len(a.ChangeSet.Affected)),
		Reason:       a.Reason,
		UpdatedBy:    a.UpdatedBy,
		UpdatedCount: a.UpdatedCount,
		Offline:      a.Offline,
	}
	for _, t := range a.ChangeSet.Affected {
		doc.Affected = append(doc.Affected, affectedTankDoc{
			TankID:        t.TankID,
			TankName:      t.TankName,
			Station:       t.Station,
			StationID:     t.StationID,
			CurrentPrice:  t.CurrentPrice.String(),
			NewPrice:      t.NewPrice.String(),
			Delta:         t.Delta.String(),
			PercentChange: t.PercentChange.StringFixed(2),
		})
	}
	return doc
}
